package game

import (
	"math"
	"testing"
)

func TestEnemyStatsByKind(t *testing.T) {
	rng := testRand()
	for kind, st := range kindStats {
		e := newEnemy(0, 0, EnemyKind(kind), 100, rng)
		if e.Size != st.size {
			t.Fatalf("%s size = %v, want %v", e.Kind, e.Size, st.size)
		}
		if e.Speed < st.speedLo || e.Speed > st.speedHi {
			t.Fatalf("%s speed %v outside [%v,%v]", e.Kind, e.Speed, st.speedLo, st.speedHi)
		}
	}
	if newEnemy(0, 0, EnemyShooter, 1, rng).shootRate != 90 {
		t.Fatal("shooters fire every 90 frames")
	}
}

func TestOnlyShootersAndBossesShoot(t *testing.T) {
	rng := testRand()
	if newEnemy(0, 0, EnemyNormal, 1, rng).canShoot() {
		t.Fatal("normal enemies never shoot")
	}
	sh := newEnemy(0, 0, EnemyShooter, 1, rng)
	if !sh.canShoot() {
		t.Fatal("fresh shooter should be ready")
	}
	if got := len(sh.shoot(100, 0)); got != 1 {
		t.Fatalf("shooter volley = %d bullets, want 1", got)
	}
	if sh.canShoot() {
		t.Fatal("shooting should start the cooldown")
	}
}

func TestBossFanIsCentredOnAim(t *testing.T) {
	boss := newBoss(0, 0, 1, 500, false, testRand())
	bullets := boss.shoot(100, 0)
	if len(bullets) != 5 {
		t.Fatalf("boss 1 opening volley = %d bullets, want 5", len(bullets))
	}
	mid := bullets[2]
	if math.Abs(mid.DX-1) > 1e-9 || math.Abs(mid.DY) > 1e-9 {
		t.Fatalf("middle bullet should fly straight at the player, got (%v,%v)", mid.DX, mid.DY)
	}
	if math.Abs(bullets[0].DY+bullets[4].DY) > 1e-9 {
		t.Fatal("fan should be symmetric around the aim")
	}
	if boss.shootCooldown != 100 {
		t.Fatalf("boss cooldown = %d, want 100", boss.shootCooldown)
	}
}

func TestBossRingCoversCircle(t *testing.T) {
	boss := newBoss(0, 0, 1, 500, false, testRand())
	boss.pattern = 1
	bullets := boss.shoot(0, 100)
	if len(bullets) != 6 {
		t.Fatalf("ring volley = %d bullets, want 6", len(bullets))
	}
	var sx, sy float64
	for _, b := range bullets {
		sx += b.DX
		sy += b.DY
	}
	if math.Abs(sx) > 1e-9 || math.Abs(sy) > 1e-9 {
		t.Fatalf("evenly spaced ring should sum to zero, got (%v,%v)", sx, sy)
	}
	if math.Abs(bullets[0].DX-1) > 1e-9 {
		t.Fatal("unaimed ring starts at angle 0")
	}
}

func TestBossPatternRotates(t *testing.T) {
	boss := newBoss(0, 0, 2, 500, false, testRand())
	w := arenaWorld(t)
	for i := 0; i <= patternFrames; i++ {
		boss.update(600, 600, w, true, i)
	}
	if boss.pattern != 1 {
		t.Fatalf("pattern = %d after %d frames, want 1", boss.pattern, patternFrames+1)
	}
}

func TestFinalBossPatterns(t *testing.T) {
	final := newBoss(0, 0, 0, finalBossHealth, true, testRand())
	if final.Size != 40 || final.shootRate != 80 || final.BossID != 0 {
		t.Fatalf("unexpected final boss %+v", final)
	}
	if len(final.patterns()) != 4 {
		t.Fatalf("final boss has %d patterns, want 4", len(final.patterns()))
	}
	if got := len(final.shoot(100, 0)); got != 12 {
		t.Fatalf("final opening volley = %d, want 12", got)
	}
	if final.Label() != "final boss" {
		t.Fatalf("label = %q", final.Label())
	}
}

func TestRegularEnemyNeedsLineOfSight(t *testing.T) {
	w := arenaWorld(t)
	e := newEnemy(300, 600, EnemyNormal, 50, testRand())

	e.update(600, 600, w, false, 1)
	if e.X != 300 || e.Y != 600 {
		t.Fatalf("enemy moved without line of sight: (%v,%v)", e.X, e.Y)
	}
	e.update(600, 600, w, true, 2)
	if math.Abs(e.X-(300+e.Speed)) > 1e-9 || e.Y != 600 {
		t.Fatalf("enemy should step %v toward the player, at (%v,%v)", e.Speed, e.X, e.Y)
	}
}

func TestBossPathsWithoutLineOfSight(t *testing.T) {
	w := arenaWorld(t)
	boss := newBoss(300, 600, 1, 500, false, testRand())
	start := math.Hypot(600-boss.X, 600-boss.Y)
	for i := 1; i <= 20; i++ {
		boss.update(600, 600, w, false, i)
	}
	if boss.path == nil {
		t.Fatal("boss without line of sight should have planned a path")
	}
	if d := math.Hypot(600-boss.X, 600-boss.Y); d >= start {
		t.Fatalf("boss did not close in: %v -> %v", start, d)
	}
}

func TestEnemyLabels(t *testing.T) {
	rng := testRand()
	if l := newBoss(0, 0, 3, 1, false, rng).Label(); l != "boss 3" {
		t.Fatalf("label = %q, want boss 3", l)
	}
	if l := newEnemy(0, 0, EnemyFast, 1, rng).Label(); l != "fast" {
		t.Fatalf("label = %q, want fast", l)
	}
}
