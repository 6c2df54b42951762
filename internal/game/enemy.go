package game

import (
	"fmt"
	"math"

	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

// EnemyKind is the archetype of a regular enemy.
type EnemyKind uint8

const (
	EnemyNormal EnemyKind = iota
	EnemyFast
	EnemyTank
	EnemyShooter
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyNormal:
		return "normal"
	case EnemyFast:
		return "fast"
	case EnemyTank:
		return "tank"
	case EnemyShooter:
		return "shooter"
	default:
		return "unknown"
	}
}

// Enemy is a chaser. Regular enemies only move while they can see the
// player; bosses always move and path around walls when they cannot.
type Enemy struct {
	X, Y      float64
	Size      float64
	Speed     float64
	Health    int
	MaxHealth int
	Kind      EnemyKind

	Boss   bool
	Final  bool
	BossID int // 1-4 for mini-bosses, 0 otherwise

	shootRate     int
	shootCooldown int
	pattern       int
	patternTimer  int
	minionTimer   int

	path       [][2]float64
	pathAge    int
	pathCursor int
}

type enemyStats struct {
	size             float64
	speedLo, speedHi float64
	healthFactor     float64
}

var kindStats = [...]enemyStats{
	EnemyNormal:  {size: 15, speedLo: 1.5, speedHi: 3, healthFactor: 1},
	EnemyFast:    {size: 12, speedLo: 3.5, speedHi: 5, healthFactor: 0.5},
	EnemyTank:    {size: 20, speedLo: 0.8, speedHi: 1.2, healthFactor: 2},
	EnemyShooter: {size: 15, speedLo: 1.0, speedHi: 1.5, healthFactor: 0.7},
}

func newEnemy(x, y float64, kind EnemyKind, health int, rng randSource) *Enemy {
	st := kindStats[kind]
	e := &Enemy{
		X:         x,
		Y:         y,
		Size:      st.size,
		Speed:     st.speedLo + rng.Float64()*(st.speedHi-st.speedLo),
		Health:    health,
		MaxHealth: health,
		Kind:      kind,
		shootRate: 200,
	}
	if kind == EnemyShooter {
		e.shootRate = 90
	}
	return e
}

func newBoss(x, y float64, id, health int, final bool, rng randSource) *Enemy {
	e := &Enemy{
		X:         x,
		Y:         y,
		Size:      30,
		Speed:     0.5 + rng.Float64()*0.5,
		Health:    health,
		MaxHealth: health,
		Boss:      true,
		Final:     final,
		BossID:    id,
		shootRate: 100,
	}
	if final {
		e.Size = 40
		e.shootRate = 80
		e.BossID = 0
	}
	return e
}

// Label names the enemy for logs and the event feed.
func (e *Enemy) Label() string {
	switch {
	case e.Final:
		return "final boss"
	case e.Boss:
		return fmt.Sprintf("boss %d", e.BossID)
	default:
		return e.Kind.String()
	}
}

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool { return e.Health > 0 }

func (e *Enemy) canShoot() bool {
	return (e.Boss || e.Kind == EnemyShooter) && e.shootCooldown == 0
}

// update moves the enemy one frame toward the player at (px, py).
func (e *Enemy) update(px, py float64, w *world.World, hasLOS bool, frame int) {
	if e.shootCooldown > 0 {
		e.shootCooldown--
	}
	if e.Boss {
		e.patternTimer++
		if e.patternTimer > patternFrames {
			e.pattern = (e.pattern + 1) % len(e.patterns())
			e.patternTimer = 0
		}
	}

	tx, ty := px, py
	switch {
	case hasLOS:
		e.path = nil
	case e.Boss:
		var ok bool
		if tx, ty, ok = e.followPath(px, py, w, frame); !ok {
			return
		}
	default:
		return
	}

	ux, uy, ok := unit(tx-e.X, ty-e.Y)
	if !ok {
		return
	}
	e.X, e.Y = slide(w, e.X, e.Y, e.X+ux*e.Speed, e.Y+uy*e.Speed, e.Size)
}

// followPath returns the next waypoint toward the player, recomputing the
// A* path every bossRepathFrames.
func (e *Enemy) followPath(px, py float64, w *world.World, frame int) (float64, float64, bool) {
	if e.path == nil || frame-e.pathAge >= bossRepathFrames {
		e.path = w.NavGrid().FindPath(e.X, e.Y, px, py, bossPathMaxNodes)
		if e.path == nil {
			e.path = [][2]float64{}
		}
		e.pathAge = frame
		e.pathCursor = 0
	}
	if len(e.path) == 0 {
		// No route, usually because one end sits in clearance padding.
		return px, py, true
	}
	for e.pathCursor < len(e.path) {
		wp := e.path[e.pathCursor]
		if math.Hypot(wp[0]-e.X, wp[1]-e.Y) > waypointReachDist {
			return wp[0], wp[1], true
		}
		e.pathCursor++
	}
	return 0, 0, false
}

// volley describes one boss attack: count bullets either fanned around the
// aim line or spread evenly around a ring.
type volley struct {
	count  int
	spread float64 // fan: radians between bullets
	ring   bool
	aimed  bool    // ring: start from the aim line instead of angle 0
	spin   float64 // ring: rotation per pattern frame
}

var (
	bossPatterns = [5][]volley{
		1: {{count: 5, spread: 0.25}, {count: 6, ring: true}, {count: 8, spread: 0.2}},
		2: {{count: 5, ring: true, aimed: true, spin: 0.1}, {count: 3, spread: 0.4}, {count: 8, ring: true, spin: 0.05}},
		3: {{count: 10, spread: 0.15}, {count: 4, spread: 0.5}, {count: 12, spread: 0.12}},
		4: {{count: 10, ring: true}, {count: 6, spread: 0.35}, {count: 12, ring: true, spin: 0.08}},
	}
	finalPatterns = []volley{
		{count: 12, spread: 0.15},
		{count: 10, ring: true, spin: 0.1},
		{count: 16, spread: 0.12},
		{count: 12, ring: true},
	}
	shooterPattern = []volley{{count: 1}}
)

func (e *Enemy) patterns() []volley {
	switch {
	case e.Final:
		return finalPatterns
	case e.Boss && e.BossID >= 1 && e.BossID < len(bossPatterns):
		return bossPatterns[e.BossID]
	default:
		return shooterPattern
	}
}

// shoot fires the current pattern at (px, py) and resets the cooldown.
func (e *Enemy) shoot(px, py float64) []*EnemyBullet {
	e.shootCooldown = e.shootRate
	ux, uy, ok := unit(px-e.X, py-e.Y)
	if !ok {
		return nil
	}
	aim := math.Atan2(uy, ux)
	pats := e.patterns()
	v := pats[e.pattern%len(pats)]

	out := make([]*EnemyBullet, 0, v.count)
	for i := 0; i < v.count; i++ {
		var a float64
		if v.ring {
			a = float64(i)*2*math.Pi/float64(v.count) + float64(e.patternTimer)*v.spin
			if v.aimed {
				a += aim
			}
		} else {
			a = aim + (float64(i)-float64(v.count-1)/2)*v.spread
		}
		out = append(out, &EnemyBullet{X: e.X, Y: e.Y, DX: math.Cos(a), DY: math.Sin(a)})
	}
	return out
}
