package world

import "testing"

// smallConfig is a 100×100 tile world with proportionally smaller rooms.
func smallConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.WorldSize = 4000
	cfg.Seed = seed
	cfg.StartRoomSize = 16
	cfg.RoomCount = 8
	cfg.RoomMinSize = 8
	cfg.RoomMaxSize = 14
	cfg.RoomPadding = 4
	cfg.CorridorWidth = 4
	return cfg
}

func generateSmall(t *testing.T, seed int64) *World {
	t.Helper()
	w, err := Generate(smallConfig(seed))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return w
}

// singleRoomWorld is a solid 20×20 block spanning tiles (-5,-5)-(14,14) with
// a 10×10 room carved at the origin. Tile size 40, so the room covers
// pixels (0,0)-(400,400).
func singleRoomWorld(t *testing.T) *World {
	t.Helper()
	b := NewGridBuilder()
	b.FillRect(-5, -5, 20, 20)
	b.ClearRect(0, 0, 10, 10)

	cfg := DefaultConfig()
	cfg.WorldSize = 800
	cfg.StartRoomSize = 10
	cfg.Seed = 1
	w, err := NewWorldFromGrid(cfg, b.Finalize(), []Room{{X: 0, Y: 0, W: 10, H: 10}})
	if err != nil {
		t.Fatalf("world from grid: %v", err)
	}
	return w
}

// footprintCounts returns how many walls cover each tile.
func footprintCounts(walls []Wall) map[Cell]int {
	counts := make(map[Cell]int)
	for _, w := range walls {
		for y := w.GY; y < w.GY+w.GH; y++ {
			for x := w.GX; x < w.GX+w.GW; x++ {
				counts[Cell{x, y}]++
			}
		}
	}
	return counts
}
