package world

import (
	"slices"
	"testing"
)

func TestNearbyWalls_MatchesGlobalFilter(t *testing.T) {
	w := generateSmall(t, 21)
	size := float64(w.Config().ChunkSize)

	for _, p := range [][2]float64{{250, 250}, {2000, 2000}, {3990, 10}, {1499, 2501}, {-300, 4200}} {
		c := w.ChunkAt(p[0], p[1])
		x0, y0 := float64(c.X-1)*size, float64(c.Y-1)*size
		x1, y1 := float64(c.X+2)*size, float64(c.Y+2)*size

		var want []WallHandle
		for i := range w.Walls() {
			if w.Walls()[i].Overlaps(x0, y0, x1, y1) {
				want = append(want, WallHandle(i))
			}
		}
		got := w.NearbyWalls(p[0], p[1])
		if !slices.Equal(got, want) {
			t.Fatalf("nearby walls at %v: got %d handles, global filter %d", p, len(got), len(want))
		}
	}
}

func TestNearbyWalls_NoDuplicates(t *testing.T) {
	w := generateSmall(t, 22)
	got := w.NearbyWalls(2000, 2000)
	seen := make(map[WallHandle]bool)
	for _, h := range got {
		if seen[h] {
			t.Fatalf("handle %d returned twice", h)
		}
		seen[h] = true
	}
}

func TestNearbyWalls_MaterializesChunks(t *testing.T) {
	w := generateSmall(t, 23)
	if w.LoadedChunks() != 0 {
		t.Fatalf("fresh world has %d chunks loaded", w.LoadedChunks())
	}
	w.NearbyWalls(2250, 2250)
	if w.LoadedChunks() != 9 {
		t.Fatalf("nearby query loaded %d chunks, want 9", w.LoadedChunks())
	}
	if !w.IsLoaded(ChunkKey{4, 4}) || !w.IsLoaded(ChunkKey{3, 5}) {
		t.Fatal("expected the 3x3 block around chunk (4,4) to be cached")
	}
}

func TestChunkManager_LoadAndUnload(t *testing.T) {
	w := generateSmall(t, 24)

	w.LoadChunksAround(250, 250)
	if w.LoadedChunks() != 25 {
		t.Fatalf("loaded %d chunks, want 25", w.LoadedChunks())
	}
	w.UnloadDistantChunks(3750, 3750)
	if w.LoadedChunks() != 0 {
		t.Fatalf("%d chunks survived an unload from the far corner", w.LoadedChunks())
	}

	w.LoadChunksAround(3750, 3750)
	w.UnloadDistantChunks(2250, 3750)
	if w.LoadedChunks() != 20 {
		t.Fatalf("%d chunks left after partial unload, want 20", w.LoadedChunks())
	}
	if w.IsLoaded(ChunkKey{9, 7}) {
		t.Fatal("chunk five columns away should be evicted")
	}
	if !w.IsLoaded(ChunkKey{8, 7}) {
		t.Fatal("chunk four columns away should stay cached")
	}
}

func TestChunkManager_UnloadKeepsArena(t *testing.T) {
	w := generateSmall(t, 25)
	before := len(w.Walls())
	before0 := w.NearbyWalls(2000, 2000)
	w.UnloadDistantChunks(-100000, -100000)
	if len(w.Walls()) != before {
		t.Fatal("unloading chunks changed the wall arena")
	}
	if !slices.Equal(w.NearbyWalls(2000, 2000), before0) {
		t.Fatal("reloaded chunk returned different walls")
	}
}

func TestChunkAt_NegativeCoordinates(t *testing.T) {
	w := singleRoomWorld(t)
	if k := w.ChunkAt(-1, -1); k != (ChunkKey{-1, -1}) {
		t.Fatalf("ChunkAt(-1,-1)=%v, want {-1,-1}", k)
	}
	if k := w.ChunkAt(-500, 499); k != (ChunkKey{-1, 0}) {
		t.Fatalf("ChunkAt(-500,499)=%v, want {-1,0}", k)
	}
	if len(w.NearbyWalls(-100, -100)) == 0 {
		t.Fatal("walls left of the origin should be reachable")
	}
}

func TestVisibleWalls_SubsetAndComplete(t *testing.T) {
	w := generateSmall(t, 26)
	camX, camY, vw, vh := 1700.0, 1800.0, 800.0, 600.0
	buf := w.Config().VisibleBuffer

	got := w.VisibleWalls(camX, camY, vw, vh)
	set := make(map[WallHandle]bool, len(got))
	for _, h := range got {
		if !w.Wall(h).IsVisible(camX, camY, vw, vh, buf) {
			t.Fatalf("wall %d returned but not visible", h)
		}
		set[h] = true
	}
	for i := range w.Walls() {
		if w.Walls()[i].IsVisible(camX, camY, vw, vh, buf) && !set[WallHandle(i)] {
			t.Fatalf("visible wall %d missing from VisibleWalls", i)
		}
	}
}

func TestCollidesAt_RoomInteriorClear(t *testing.T) {
	w := singleRoomWorld(t)
	if w.CollidesAt(200, 200, 10) {
		t.Fatal("centre of the carved room should be clear")
	}
	if !w.CollidesAt(3, 200, 10) {
		t.Fatal("probe against the left border should collide")
	}
}
