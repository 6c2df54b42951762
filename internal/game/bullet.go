package game

import (
	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

// randSource is the subset of *rand.Rand the gameplay code draws from.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

// Bullet is a player projectile. Bouncing bullets reflect off walls and
// enemies until their bounce budget runs out.
type Bullet struct {
	X, Y        float64
	DX, DY      float64 // unit direction
	Damage      int
	BouncesLeft int
	MaxBounces  int
	Lifetime    int

	lastBounceFrame int
}

func newBullet(x, y, dx, dy float64, damage, bounces int, rng randSource) *Bullet {
	jx := dx + (rng.Float64()*2-1)*bulletInaccuracy
	jy := dy + (rng.Float64()*2-1)*bulletInaccuracy
	if ux, uy, ok := unit(jx, jy); ok {
		dx, dy = ux, uy
	}
	return &Bullet{
		X:               x,
		Y:               y,
		DX:              dx,
		DY:              dy,
		Damage:          damage,
		BouncesLeft:     bounces,
		MaxBounces:      bounces,
		Lifetime:        bulletLifetime,
		lastBounceFrame: -1,
	}
}

func (b *Bullet) step() {
	b.X += b.DX * bulletSpeed
	b.Y += b.DY * bulletSpeed
	b.Lifetime--
}

// bounce reflects the bullet off wl. The axis flipped is the one along which
// the bullet sits further from the wall centre, normalised by the wall's
// extent. At most one reflection happens per frame; a second contact in the
// same frame is absorbed. It returns false when the bullet has no bounces
// left and should be destroyed.
func (b *Bullet) bounce(wl *world.Wall, frame int) bool {
	if b.BouncesLeft <= 0 {
		return false
	}
	if frame == b.lastBounceFrame {
		return true
	}
	b.lastBounceFrame = frame

	dx := (b.X - wl.CenterX()) / wl.W
	dy := (b.Y - wl.CenterY()) / wl.H
	if abs(dx) > abs(dy) {
		b.DX = -b.DX
	} else {
		b.DY = -b.DY
	}
	b.BouncesLeft--
	b.X += b.DX * bulletSpeed * 2
	b.Y += b.DY * bulletSpeed * 2
	return true
}

// deflect sends the bullet away from an enemy it just hit.
func (b *Bullet) deflect(ex, ey float64) {
	if ux, uy, ok := unit(b.X-ex, b.Y-ey); ok {
		b.DX, b.DY = ux, uy
	}
	b.BouncesLeft--
	b.Lifetime = min(b.Lifetime, bounceHitLifetime)
	b.X += b.DX * bulletSpeed * 2
	b.Y += b.DY * bulletSpeed * 2
}

// EnemyBullet is a hostile projectile. It dies on any wall contact.
type EnemyBullet struct {
	X, Y   float64
	DX, DY float64
}

func (b *EnemyBullet) step() {
	b.X += b.DX * enemyBulletSpeed
	b.Y += b.DY * enemyBulletSpeed
}

func outOfWorld(x, y, size float64) bool {
	return x < 0 || y < 0 || x > size || y > size
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
