package world

import (
	"errors"
	"testing"
)

func TestBuilder_StateMachine(t *testing.T) {
	b, err := NewBuilder(smallConfig(1))
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	if b.State() != StateUninitialized {
		t.Fatalf("state %v, want uninitialized", b.State())
	}
	w, err := b.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if b.State() != StateReady || w.State() != StateReady {
		t.Fatalf("builder %v / world %v, want ready", b.State(), w.State())
	}
	if _, err := b.Generate(); !errors.Is(err, ErrAlreadyGenerated) {
		t.Fatalf("second generate: got %v, want ErrAlreadyGenerated", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cases := map[string]func(*Config){
		"zero world":         func(c *Config) { c.WorldSize = 0 },
		"tile not divisor":   func(c *Config) { c.TileSize = 7 },
		"zero chunk":         func(c *Config) { c.ChunkSize = 0 },
		"inverted room size": func(c *Config) { c.RoomMinSize, c.RoomMaxSize = 30, 20 },
		"start room too big": func(c *Config) { c.StartRoomSize = 1000 },
		"zero corridor":      func(c *Config) { c.CorridorWidth = 0 },
		"unload below load":  func(c *Config) { c.UnloadRadius = 1 },
		"zero los step":      func(c *Config) { c.LOSStep = 0 },
		"negative spawn":     func(c *Config) { c.SpawnSafetyRadius = -1 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: got %v, want ErrInvalidConfig", name, err)
		}
		if _, err := Generate(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: Generate accepted an invalid config", name)
		}
	}
}

func TestWorld_RoomsInPixels(t *testing.T) {
	w := singleRoomWorld(t)
	rooms := w.Rooms()
	if len(rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rooms))
	}
	if rooms[0] != (Rect{X: 0, Y: 0, W: 400, H: 400}) {
		t.Fatalf("room rect %+v", rooms[0])
	}
	if cx, cy := rooms[0].Center(); cx != 200 || cy != 200 {
		t.Fatalf("room centre (%.0f,%.0f)", cx, cy)
	}
}

func TestWorld_PushOut(t *testing.T) {
	w := singleRoomWorld(t)
	if x, y := w.PushOut(200, 200, 10); x != 200 || y != 200 {
		t.Fatalf("clear point moved to (%.0f,%.0f)", x, y)
	}
	x, y := w.PushOut(3, 200, 10)
	if w.CollidesAt(x, y, 10) {
		t.Fatalf("pushed point (%.0f,%.0f) still collides", x, y)
	}
	if x <= 3 {
		t.Fatalf("expected a push into the room, got x=%.0f", x)
	}
}

func TestState_String(t *testing.T) {
	if StateGenerating.String() != "generating" || State(42).String() != "unknown" {
		t.Fatal("unexpected state names")
	}
}
