package game

import (
	"fmt"
	"math"
	"strings"
)

// reportWindowFrames is the default sliding window for recent-activity
// reports (~10s at 60TPS).
const reportWindowFrames = 600

// reportEveryFrames is how often the headless harness samples a session.
const reportEveryFrames = 60

// FrameReport is a snapshot of a session at one frame.
type FrameReport struct {
	Frame int
	Kills int

	Enemies      int
	ByKind       [4]int // regular enemies per EnemyKind
	BossAlive    bool
	Bullets      int
	EnemyBullets int
	Items        int
	LoadedChunks int

	PlayerX, PlayerY float64
}

// Reporter keeps a bounded history of FrameReports.
type Reporter struct {
	history      []FrameReport
	windowFrames int
}

// NewReporter returns a reporter that summarises the last windowFrames
// frames.
func NewReporter(windowFrames int) *Reporter {
	if windowFrames <= 0 {
		windowFrames = reportWindowFrames
	}
	return &Reporter{windowFrames: windowFrames}
}

// Collect snapshots s.
func (r *Reporter) Collect(s *Session) {
	p := s.Player()
	rpt := FrameReport{
		Frame:        s.Frame(),
		Kills:        s.Kills(),
		Enemies:      len(s.Enemies()),
		BossAlive:    s.Boss() != nil,
		Bullets:      len(s.Bullets()),
		EnemyBullets: len(s.EnemyBullets()),
		Items:        len(s.Items()),
		LoadedChunks: s.World().LoadedChunks(),
		PlayerX:      p.X,
		PlayerY:      p.Y,
	}
	for _, e := range s.Enemies() {
		if !e.Boss {
			rpt.ByKind[e.Kind]++
		}
	}
	r.history = append(r.history, rpt)

	// Prune beyond 2x window.
	maxKeep := max(100, r.windowFrames/reportEveryFrames*2)
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil.
func (r *Reporter) Latest() *FrameReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns the retained reports, oldest first.
func (r *Reporter) History() []FrameReport {
	return r.history
}

// WindowReport aggregates the reports inside the window.
type WindowReport struct {
	FromFrame, ToFrame int
	SampleCount        int

	AvgEnemies      float64
	AvgByKind       [4]float64
	AvgBullets      float64
	AvgEnemyBullets float64
	AvgChunks       float64
	MaxChunks       int
	BossFrames      int // samples with a boss alive

	KillsInWindow int
	Distance      float64 // player path length between samples
}

// WindowSummary averages the reports within the window ending at the latest
// sample.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	cutoff := r.history[len(r.history)-1].Frame - r.windowFrames
	start := len(r.history) - 1
	for start > 0 && r.history[start-1].Frame >= cutoff {
		start--
	}
	window := r.history[start:]

	n := float64(len(window))
	wr := &WindowReport{
		FromFrame:     window[0].Frame,
		ToFrame:       window[len(window)-1].Frame,
		SampleCount:   len(window),
		KillsInWindow: window[len(window)-1].Kills - window[0].Kills,
	}
	for i, rpt := range window {
		wr.AvgEnemies += float64(rpt.Enemies)
		for k, c := range rpt.ByKind {
			wr.AvgByKind[k] += float64(c)
		}
		wr.AvgBullets += float64(rpt.Bullets)
		wr.AvgEnemyBullets += float64(rpt.EnemyBullets)
		wr.AvgChunks += float64(rpt.LoadedChunks)
		wr.MaxChunks = max(wr.MaxChunks, rpt.LoadedChunks)
		if rpt.BossAlive {
			wr.BossFrames++
		}
		if i > 0 {
			prev := window[i-1]
			dx, dy := rpt.PlayerX-prev.PlayerX, rpt.PlayerY-prev.PlayerY
			wr.Distance += math.Hypot(dx, dy)
		}
	}
	wr.AvgEnemies /= n
	for k := range wr.AvgByKind {
		wr.AvgByKind[k] /= n
	}
	wr.AvgBullets /= n
	wr.AvgEnemyBullets /= n
	wr.AvgChunks /= n
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Activity Report (F=%d..%d, %d samples) ===\n",
		wr.FromFrame, wr.ToFrame, wr.SampleCount)
	fmt.Fprintf(&sb, "  enemies=%.1f", wr.AvgEnemies)
	for k, avg := range wr.AvgByKind {
		fmt.Fprintf(&sb, "  %s=%.1f", EnemyKind(k), avg)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "  bullets=%.1f  enemy_bullets=%.1f\n", wr.AvgBullets, wr.AvgEnemyBullets)
	fmt.Fprintf(&sb, "  chunks avg=%.1f max=%d\n", wr.AvgChunks, wr.MaxChunks)
	fmt.Fprintf(&sb, "  kills=%d  boss_samples=%d  distance=%.0fpx\n", wr.KillsInWindow, wr.BossFrames, wr.Distance)
	return sb.String()
}

// FormatLatest returns a one-line snapshot of the most recent report.
func (r *Reporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	return fmt.Sprintf("F=%d kills=%d enemies=%d bullets=%d/%d items=%d chunks=%d boss=%t\n",
		rpt.Frame, rpt.Kills, rpt.Enemies, rpt.Bullets, rpt.EnemyBullets, rpt.Items, rpt.LoadedChunks, rpt.BossAlive)
}
