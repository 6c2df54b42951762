package game

import (
	"strings"
	"testing"
)

func TestReporterWindowAverages(t *testing.T) {
	s := arenaSession(t)
	r := NewReporter(120)
	rng := s.rng

	s.frame = 60
	r.Collect(s)
	s.frame = 120
	s.kills = 2
	s.enemies = append(s.enemies, newEnemy(100, 100, EnemyFast, 10, rng), newEnemy(200, 100, EnemyFast, 10, rng))
	s.player.X += 30
	s.player.Y += 40
	r.Collect(s)

	wr := r.WindowSummary()
	if wr.SampleCount != 2 || wr.FromFrame != 60 || wr.ToFrame != 120 {
		t.Fatalf("unexpected window %+v", wr)
	}
	if wr.AvgEnemies != 1 || wr.AvgByKind[EnemyFast] != 1 {
		t.Fatalf("avg enemies = %v fast = %v, want 1/1", wr.AvgEnemies, wr.AvgByKind[EnemyFast])
	}
	if wr.KillsInWindow != 2 || wr.Distance != 50 {
		t.Fatalf("kills=%d distance=%v, want 2/50", wr.KillsInWindow, wr.Distance)
	}
	if !strings.Contains(wr.Format(), "fast=1.0") {
		t.Fatalf("format missing per-kind average:\n%s", wr.Format())
	}
	if !strings.HasPrefix(r.FormatLatest(), "F=120 kills=2 enemies=2") {
		t.Fatalf("unexpected latest line %q", r.FormatLatest())
	}
}

func TestReporterWindowExcludesOldSamples(t *testing.T) {
	s := arenaSession(t)
	r := NewReporter(120)
	for f := 60; f <= 600; f += 60 {
		s.frame = f
		r.Collect(s)
	}
	if wr := r.WindowSummary(); wr.SampleCount != 3 || wr.FromFrame != 480 {
		t.Fatalf("window should cover frames 480..600, got %+v", wr)
	}
}

func TestReporterEmpty(t *testing.T) {
	r := NewReporter(0)
	if r.Latest() != nil || r.WindowSummary() != nil {
		t.Fatal("empty reporter should have no reports")
	}
	var wr *WindowReport
	if wr.Format() != "No data collected yet.\n" {
		t.Fatal("nil window should format as a placeholder")
	}
}
