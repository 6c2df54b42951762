package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

// Script produces the input for a frame. A nil script stands still.
type Script func(frame int, s *Session) Input

// Headless runs a Session without ebiten, for tests and batch reports. Runs
// are deterministic for a given seed and option set.
type Headless struct {
	Config   Config
	Session  *Session
	SimLog   *SimLog
	Reporter *Reporter

	seed   int64
	script Script
}

// headlessOptionKind controls the pass in which an option is applied.
type headlessOptionKind int

const (
	headlessOptWorld   headlessOptionKind = iota // config and seed, applied before generation
	headlessOptSession                           // applied once the session exists
)

// HeadlessOption is a builder function applied during NewHeadless.
type HeadlessOption struct {
	kind headlessOptionKind
	fn   func(*Headless)
}

// WithSeed fixes the world and session seed.
func WithSeed(seed int64) HeadlessOption {
	return HeadlessOption{headlessOptWorld, func(h *Headless) {
		h.seed = seed
	}}
}

// WithWorldSize shrinks or grows the world, scaling room sizes to match.
func WithWorldSize(px int) HeadlessOption {
	return HeadlessOption{headlessOptWorld, func(h *Headless) {
		h.Config.ScaleWorld(px)
	}}
}

// WithKillGoal overrides the number of kills needed to win.
func WithKillGoal(n int) HeadlessOption {
	return HeadlessOption{headlessOptWorld, func(h *Headless) {
		h.Config.KillGoal = n
	}}
}

// WithInvulnerable keeps the player alive through every hit.
func WithInvulnerable() HeadlessOption {
	return HeadlessOption{headlessOptWorld, func(h *Headless) {
		h.Config.Invulnerable = true
	}}
}

// WithLogger routes world and session logging to l.
func WithLogger(l logrus.FieldLogger) HeadlessOption {
	return HeadlessOption{headlessOptWorld, func(h *Headless) {
		h.Config.Log = l
		h.Config.World.Log = l
	}}
}

// WithVerbose enables per-frame SimLog entries.
func WithVerbose(v bool) HeadlessOption {
	return HeadlessOption{headlessOptSession, func(h *Headless) {
		h.SimLog = NewSimLog(v)
		h.Session.SetSimLog(h.SimLog)
	}}
}

// WithScript drives the player from fn.
func WithScript(fn Script) HeadlessOption {
	return HeadlessOption{headlessOptSession, func(h *Headless) {
		h.script = fn
	}}
}

// NewHeadless generates a world and starts a session on it, applying options
// in two passes:
//  1. World options (seed, size, goal, logging)
//  2. Session options (SimLog, script)
func NewHeadless(opts ...HeadlessOption) (*Headless, error) {
	h := &Headless{
		Config:   DefaultConfig(),
		SimLog:   NewSimLog(false),
		Reporter: NewReporter(reportWindowFrames),
		seed:     1,
	}
	for _, o := range opts {
		if o.kind == headlessOptWorld {
			o.fn(h)
		}
	}
	h.Config.World.Seed = h.seed

	w, err := world.Generate(h.Config.World)
	if err != nil {
		return nil, fmt.Errorf("headless: %w", err)
	}
	h.Session = NewSession(h.Config, w, h.seed)
	h.Session.SetSimLog(h.SimLog)

	for _, o := range opts {
		if o.kind == headlessOptSession {
			o.fn(h)
		}
	}
	return h, nil
}

// step advances one frame and samples the reporter once per second.
func (h *Headless) step() Outcome {
	in := Input{}
	if h.script != nil {
		in = h.script(h.Session.Frame()+1, h.Session)
	}
	out := h.Session.Step(in)
	if h.Session.Frame()%reportEveryFrames == 0 {
		h.Reporter.Collect(h.Session)
	}
	return out
}

// RunFrames advances the session n frames or until it ends.
func (h *Headless) RunFrames(n int) Outcome {
	for i := 0; i < n; i++ {
		if out := h.step(); out != Playing {
			return out
		}
	}
	return h.Session.Outcome()
}

// RunUntil advances up to maxFrames, stopping early once predicate holds.
// It returns the frame at which the predicate was satisfied, or -1.
func (h *Headless) RunUntil(predicate func(*Session) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		if h.step() != Playing {
			break
		}
		if predicate(h.Session) {
			return h.Session.Frame()
		}
	}
	if predicate(h.Session) {
		return h.Session.Frame()
	}
	return -1
}

// Wander is a Script that steers toward the next room centre every period
// frames, cycling through the rooms. It keeps soak runs moving through chunks.
func Wander(period int) Script {
	var tx, ty float64
	return func(frame int, s *Session) Input {
		rooms := s.World().Rooms()
		if len(rooms) == 0 {
			return Input{}
		}
		if frame == 1 || frame%period == 0 {
			tx, ty = rooms[(frame/period)%len(rooms)].Center()
		}
		p := s.Player()
		const dead = 6
		return Input{
			Up:    ty < p.Y-dead,
			Down:  ty > p.Y+dead,
			Left:  tx < p.X-dead,
			Right: tx > p.X+dead,
		}
	}
}
