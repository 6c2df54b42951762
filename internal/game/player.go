package game

import (
	"math"

	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

// Input is one frame of player intent. Game fills it from the keyboard; the
// headless harness fills it from a script.
type Input struct {
	Up, Down, Left, Right bool
}

// Player is the controlled ship. Aim and fire are automatic.
type Player struct {
	X, Y   float64
	Size   float64
	Speed  float64
	Health int

	AimX, AimY float64 // unit vector

	FireRate  int // frames between volleys
	Damage    int
	MultiShot int
	Bounces   int

	HasOrbital  bool
	OrbitAngle  float64
	HasDualGun  bool
	ItemsPicked int
}

func newPlayer(x, y float64) *Player {
	return &Player{
		X:         x,
		Y:         y,
		Size:      playerSize,
		Speed:     playerSpeed,
		Health:    1,
		AimX:      0,
		AimY:      -1,
		FireRate:  baseFireRate,
		Damage:    baseDamage,
		MultiShot: 1,
	}
}

// Alive reports whether the player still has health.
func (p *Player) Alive() bool { return p.Health > 0 }

// move applies one frame of input. Each axis is tested separately against the
// walls near the current position so the player slides along faces. The
// result is clamped to the world.
func (p *Player) move(in Input, w *world.World) {
	nx, ny := p.X, p.Y
	if in.Up {
		ny -= p.Speed
	}
	if in.Down {
		ny += p.Speed
	}
	if in.Left {
		nx -= p.Speed
	}
	if in.Right {
		nx += p.Speed
	}
	p.X, p.Y = slide(w, p.X, p.Y, nx, ny, p.Size)

	size := w.Size()
	p.X = clamp(p.X, p.Size, size-p.Size)
	p.Y = clamp(p.Y, p.Size, size-p.Size)
}

// updateAim points the gun at the nearest enemy in line of sight. The aim is
// unchanged when no enemy is visible.
func (p *Player) updateAim(enemies []*Enemy, w *world.World) {
	var target *Enemy
	best := math.Inf(1)
	for _, e := range enemies {
		d := math.Hypot(e.X-p.X, e.Y-p.Y)
		if d >= best {
			continue
		}
		if w.HasLineOfSight(p.X, p.Y, e.X, e.Y) {
			best = d
			target = e
		}
	}
	if target == nil {
		return
	}
	if ux, uy, ok := unit(target.X-p.X, target.Y-p.Y); ok {
		p.AimX, p.AimY = ux, uy
	}
}

// FireRatePercent is the volley rate relative to the starting rate.
func (p *Player) FireRatePercent() int {
	return baseFireRate * 100 / p.FireRate
}

// SpeedPercent is the movement speed relative to the starting speed.
func (p *Player) SpeedPercent() int {
	return int(p.Speed / playerSpeed * 100)
}

// volley returns the bullets of one trigger pull.
func (p *Player) volley(rng randSource) []*Bullet {
	guns := [][2]float64{{p.X, p.Y}}
	if p.HasDualGun {
		// Second barrel sits to the right of the aim direction.
		guns = append(guns, [2]float64{p.X - p.AimY*dualGunOffset, p.Y + p.AimX*dualGunOffset})
	}
	base := math.Atan2(p.AimY, p.AimX)
	var out []*Bullet
	for _, g := range guns {
		for i := 0; i < p.MultiShot; i++ {
			a := base + (float64(i)-float64(p.MultiShot-1)/2)*multiShotSpread
			out = append(out, newBullet(g[0], g[1], math.Cos(a), math.Sin(a), p.Damage, p.Bounces, rng))
		}
	}
	return out
}

// sawPositions returns the centres of the orbital saws.
func (p *Player) sawPositions() [orbitalSaws][2]float64 {
	var out [orbitalSaws][2]float64
	for i := range out {
		a := p.OrbitAngle + float64(i)*2*math.Pi/orbitalSaws
		out[i] = [2]float64{p.X + math.Cos(a)*orbitalRadius, p.Y + math.Sin(a)*orbitalRadius}
	}
	return out
}

// slide moves from (x,y) toward (nx,ny) one axis at a time, refusing any axis
// whose move would collide with a wall near the starting point.
func slide(w *world.World, x, y, nx, ny, size float64) (float64, float64) {
	walls := w.NearbyWalls(x, y)
	moveX, moveY := true, true
	for _, h := range walls {
		wl := w.Wall(h)
		if moveX && wl.Collides(nx, y, size) {
			moveX = false
		}
		if moveY && wl.Collides(x, ny, size) {
			moveY = false
		}
		if !moveX && !moveY {
			break
		}
	}
	if moveX {
		x = nx
	}
	if moveY {
		y = ny
	}
	return x, y
}

func unit(dx, dy float64) (float64, float64, bool) {
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0, false
	}
	return dx / l, dy / l, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
