package game

import "testing"

func TestScaleWorldStaysValid(t *testing.T) {
	for _, px := range []int{1200, 2000, 4000, 6010, 12000, 24000} {
		cfg := DefaultConfig()
		cfg.ScaleWorld(px)
		if err := cfg.World.Validate(); err != nil {
			t.Fatalf("ScaleWorld(%d): %v", px, err)
		}
		if cfg.World.WorldSize%cfg.World.TileSize != 0 {
			t.Fatalf("ScaleWorld(%d) left a partial tile: %d", px, cfg.World.WorldSize)
		}
	}
}

func TestScaleWorldProportions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScaleWorld(4000)
	wc := cfg.World
	if wc.WorldSize != 4000 || wc.GridSize() != 100 {
		t.Fatalf("world = %dpx / %d tiles, want 4000/100", wc.WorldSize, wc.GridSize())
	}
	if wc.StartRoomSize != 17 || wc.RoomMinSize != 8 || wc.RoomMaxSize != 15 || wc.CorridorWidth != 4 {
		t.Fatalf("unexpected scaled rooms start=%d min=%d max=%d corridor=%d",
			wc.StartRoomSize, wc.RoomMinSize, wc.RoomMaxSize, wc.CorridorWidth)
	}

	cfg = DefaultConfig()
	cfg.ScaleWorld(0)
	if cfg.World.WorldSize != DefaultConfig().World.WorldSize {
		t.Fatal("ScaleWorld(0) should be a no-op")
	}
}

func TestConfigLoggerFallbacks(t *testing.T) {
	if DefaultConfig().logger() == nil {
		t.Fatal("config without a logger should fall back to a discard logger")
	}
}
