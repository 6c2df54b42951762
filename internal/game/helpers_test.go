package game

import (
	"math/rand"
	"testing"

	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

// arenaWorld is one open 30×30 tile room at the origin, ringed by a two tile
// thick wall. Tile size 40, so the floor covers pixels (0,0)-(1200,1200).
func arenaWorld(t *testing.T) *world.World {
	t.Helper()
	b := world.NewGridBuilder()
	b.FillRect(-2, -2, 34, 34)
	b.ClearRect(0, 0, 30, 30)

	cfg := world.DefaultConfig()
	cfg.WorldSize = 1200
	cfg.StartRoomSize = 30
	cfg.Seed = 1
	w, err := world.NewWorldFromGrid(cfg, b.Finalize(), []world.Room{{X: 0, Y: 0, W: 30, H: 30}})
	if err != nil {
		t.Fatalf("world from grid: %v", err)
	}
	return w
}

// arenaSession starts a session on arenaWorld with a 400×300 view, small
// enough that parts of the room are off-screen.
func arenaSession(t *testing.T) *Session {
	t.Helper()
	w := arenaWorld(t)
	cfg := DefaultConfig()
	cfg.ScreenWidth = 400
	cfg.ScreenHeight = 300
	cfg.World = w.Config()
	return NewSession(cfg, w, 1)
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(3)) // #nosec G404 -- test only
}
