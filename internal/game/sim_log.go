package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless run.
type SimLogEntry struct {
	Frame    int
	Category string  // spawn, boss, kill, item, player, world, outcome
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[F=00420] kill     enemy           tank at (2140,1980)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[F=%05d] %-8s %-15s %s", e.Frame, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless run. Unlike EventFeed
// (UI ring buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-frame entries are also
// recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add appends an event.
func (sl *SimLog) Add(frame int, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Frame:    frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose is Add for per-frame noise; dropped unless verbose.
func (sl *SimLog) AddVerbose(frame int, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(frame, category, key, value, numVal)
}

// Entries returns every recorded event, oldest first.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// matches reports whether e belongs to category and key. Empty strings match
// anything.
func (e SimLogEntry) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns the entries for category/key, oldest first.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory counts entries for category/key.
func (sl *SimLog) CountCategory(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// LastOf returns the newest entry for category/key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if sl.entries[i].matches(category, key) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// FirstFrame returns the frame of the first entry for category/key whose
// value contains valueSubstr, or -1.
func (sl *SimLog) FirstFrame(category, key, valueSubstr string) int {
	for _, e := range sl.entries {
		if e.matches(category, key) && strings.Contains(e.Value, valueSubstr) {
			return e.Frame
		}
	}
	return -1
}

// Format renders the whole log, one line per entry.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a session.
func (sl *SimLog) Summary(s *Session) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at F=%05d ---\n", s.Frame())
	fmt.Fprintf(&sb, "Outcome: %s  kills=%d/%d\n", s.Outcome(), s.Kills(), s.cfg.KillGoal)

	p := s.Player()
	fmt.Fprintf(&sb, "Player: (%.0f,%.0f) shots=%d fire=%d%% dmg=%d bounce=%d speed=%d%%",
		p.X, p.Y, p.MultiShot, p.FireRatePercent(), p.Damage, p.Bounces, p.SpeedPercent())
	if p.HasOrbital {
		sb.WriteString(" +orbital")
	}
	if p.HasDualGun {
		sb.WriteString(" +dual")
	}
	sb.WriteByte('\n')

	kinds := map[string]int{}
	for _, e := range s.Enemies() {
		kinds[e.Label()]++
	}
	fmt.Fprintf(&sb, "Enemies alive: %d", len(s.Enemies()))
	for _, k := range []string{"normal", "fast", "tank", "shooter"} {
		if n := kinds[k]; n > 0 {
			fmt.Fprintf(&sb, "  %s=%d", k, n)
		}
	}
	if b := s.Boss(); b != nil {
		fmt.Fprintf(&sb, "  %s hp=%d/%d", b.Label(), b.Health, b.MaxHealth)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Chunks loaded: %d  spawn_fallbacks=%d\n",
		s.World().LoadedChunks(), sl.CountCategory("spawn", "fallback"))
	return sb.String()
}
