package game

import (
	"math"
	"testing"

	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

func TestBounceFlipsDominantAxis(t *testing.T) {
	// Tall wall to the right: horizontal offset dominates after normalising.
	tall := &world.Wall{X: 100, Y: 0, W: 40, H: 400}
	b := &Bullet{X: 95, Y: 200, DX: 1, BouncesLeft: 2, Lifetime: 100, lastBounceFrame: -1}
	if !b.bounce(tall, 1) {
		t.Fatal("bounce with budget left should keep the bullet")
	}
	if b.DX != -1 || b.DY != 0 {
		t.Fatalf("expected DX flipped to -1, got (%v,%v)", b.DX, b.DY)
	}
	if b.BouncesLeft != 1 {
		t.Fatalf("expected 1 bounce left, got %d", b.BouncesLeft)
	}
	if b.X != 95-2*bulletSpeed {
		t.Fatalf("expected bullet pushed back to %v, got %v", 95-2*bulletSpeed, b.X)
	}

	// Wide wall below: vertical offset dominates.
	wide := &world.Wall{X: 0, Y: 100, W: 400, H: 40}
	b = &Bullet{X: 200, Y: 95, DY: 1, BouncesLeft: 1, Lifetime: 100, lastBounceFrame: -1}
	b.bounce(wide, 1)
	if b.DX != 0 || b.DY != -1 {
		t.Fatalf("expected DY flipped to -1, got (%v,%v)", b.DX, b.DY)
	}
}

func TestBounceOncePerFrame(t *testing.T) {
	wl := &world.Wall{X: 100, Y: 0, W: 40, H: 400}
	b := &Bullet{X: 95, Y: 200, DX: 1, BouncesLeft: 3, Lifetime: 100, lastBounceFrame: -1}
	b.bounce(wl, 7)
	dx := b.DX
	if !b.bounce(wl, 7) {
		t.Fatal("second contact in the same frame should not destroy the bullet")
	}
	if b.DX != dx || b.BouncesLeft != 2 {
		t.Fatalf("second contact in the same frame reflected again: DX=%v left=%d", b.DX, b.BouncesLeft)
	}
	b.bounce(wl, 8)
	if b.BouncesLeft != 1 {
		t.Fatalf("expected a new frame to bounce again, left=%d", b.BouncesLeft)
	}
}

func TestBounceWithoutBudgetDestroys(t *testing.T) {
	wl := &world.Wall{X: 100, Y: 0, W: 40, H: 400}
	b := &Bullet{X: 95, Y: 200, DX: 1, lastBounceFrame: -1}
	if b.bounce(wl, 1) {
		t.Fatal("bullet with no bounces left should be destroyed")
	}
}

func TestDeflectOffEnemy(t *testing.T) {
	b := &Bullet{X: 10, Y: 0, DX: -1, BouncesLeft: 2, Lifetime: 250}
	b.deflect(0, 0)
	if b.DX != 1 || b.DY != 0 {
		t.Fatalf("expected deflection away from the enemy, got (%v,%v)", b.DX, b.DY)
	}
	if b.Lifetime != bounceHitLifetime {
		t.Fatalf("expected lifetime capped at %d, got %d", bounceHitLifetime, b.Lifetime)
	}
	if b.BouncesLeft != 1 {
		t.Fatalf("expected 1 bounce left, got %d", b.BouncesLeft)
	}
	if b.X != 10+2*bulletSpeed {
		t.Fatalf("expected bullet moved clear to %v, got %v", 10+2*bulletSpeed, b.X)
	}
}

func TestNewBulletJitterStaysNearAim(t *testing.T) {
	rng := testRand()
	for i := 0; i < 200; i++ {
		b := newBullet(0, 0, 1, 0, 5, 0, rng)
		if l := math.Hypot(b.DX, b.DY); math.Abs(l-1) > 1e-9 {
			t.Fatalf("direction not unit length: %v", l)
		}
		// Per-axis jitter of at most 0.15 bounds the angle well below 0.2 rad.
		if a := math.Abs(math.Atan2(b.DY, b.DX)); a > 0.2 {
			t.Fatalf("bullet %d strayed %.3f rad from the aim", i, a)
		}
		if b.Lifetime != bulletLifetime || b.MaxBounces != 0 {
			t.Fatalf("unexpected bullet state %+v", b)
		}
	}
}

func TestOutOfWorld(t *testing.T) {
	cases := []struct {
		x, y float64
		want bool
	}{
		{0, 0, false},
		{1200, 1200, false},
		{-1, 10, true},
		{10, 1201, true},
	}
	for _, c := range cases {
		if got := outOfWorld(c.x, c.y, 1200); got != c.want {
			t.Fatalf("outOfWorld(%v,%v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}
