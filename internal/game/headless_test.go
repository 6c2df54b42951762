package game

import (
	"testing"
)

func newSmallHeadless(t *testing.T, seed int64, opts ...HeadlessOption) *Headless {
	t.Helper()
	opts = append([]HeadlessOption{WithSeed(seed), WithWorldSize(4000), WithInvulnerable()}, opts...)
	h, err := NewHeadless(opts...)
	if err != nil {
		t.Fatalf("new headless: %v", err)
	}
	return h
}

func TestHeadlessDeterministic(t *testing.T) {
	a := newSmallHeadless(t, 7, WithScript(Wander(120)))
	b := newSmallHeadless(t, 7, WithScript(Wander(120)))
	a.RunFrames(900)
	b.RunFrames(900)

	pa, pb := a.Session.Player(), b.Session.Player()
	if pa.X != pb.X || pa.Y != pb.Y {
		t.Fatalf("player diverged: (%v,%v) vs (%v,%v)", pa.X, pa.Y, pb.X, pb.Y)
	}
	if a.Session.Kills() != b.Session.Kills() || len(a.Session.Enemies()) != len(b.Session.Enemies()) {
		t.Fatalf("sessions diverged: kills %d/%d enemies %d/%d",
			a.Session.Kills(), b.Session.Kills(), len(a.Session.Enemies()), len(b.Session.Enemies()))
	}
	if len(a.SimLog.Entries()) != len(b.SimLog.Entries()) {
		t.Fatalf("logs diverged: %d vs %d entries", len(a.SimLog.Entries()), len(b.SimLog.Entries()))
	}
}

func TestHeadlessRunsAndSpawns(t *testing.T) {
	h := newSmallHeadless(t, 3, WithVerbose(true))
	if out := h.RunFrames(700); out != Playing {
		t.Fatalf("invulnerable run ended early: %s", out)
	}
	if h.Session.Frame() != 700 {
		t.Fatalf("frame = %d, want 700", h.Session.Frame())
	}
	if n := h.SimLog.CountCategory("player", "pos"); n != 700 {
		t.Fatalf("verbose log has %d position entries, want 700", n)
	}
	if h.SimLog.CountCategory("spawn", "enemy") == 0 {
		t.Fatalf("expected spawns by frame 700\n%s", h.SimLog.Summary(h.Session))
	}
	if h.Session.World().LoadedChunks() == 0 {
		t.Fatal("chunks should be loaded around the player")
	}
}

func TestHeadlessRunUntil(t *testing.T) {
	h := newSmallHeadless(t, 5)
	f := h.RunUntil(func(s *Session) bool { return len(s.Enemies()) > 0 }, 1000)
	if f != spawnDelayBase+1 {
		t.Fatalf("first enemy at frame %d, want %d", f, spawnDelayBase+1)
	}
	if f := h.RunUntil(func(*Session) bool { return false }, 10); f != -1 {
		t.Fatalf("unsatisfied predicate should return -1, got %d", f)
	}
}

func TestHeadlessReporterSamples(t *testing.T) {
	h := newSmallHeadless(t, 9, WithScript(Wander(60)))
	h.RunFrames(600)
	hist := h.Reporter.History()
	if len(hist) != 600/reportEveryFrames {
		t.Fatalf("reporter has %d samples, want %d", len(hist), 600/reportEveryFrames)
	}
	wr := h.Reporter.WindowSummary()
	if wr == nil || wr.SampleCount != len(hist) || wr.ToFrame != 600 {
		t.Fatalf("unexpected window %+v", wr)
	}
	if wr.MaxChunks == 0 {
		t.Fatal("window should see loaded chunks")
	}
}

func TestHeadlessKillGoal(t *testing.T) {
	h := newSmallHeadless(t, 2, WithKillGoal(1))
	s := h.Session
	e := newEnemy(s.Player().X, s.Player().Y-100, EnemyNormal, 1, s.rng)
	s.enemies = append(s.enemies, e)
	s.bullets = append(s.bullets, &Bullet{X: e.X, Y: e.Y, Damage: 5, Lifetime: 10})
	s.resolveHits()
	if got := s.checkOutcome(); got != Victory {
		t.Fatalf("one kill with goal 1 should win, got %s", got)
	}
}
