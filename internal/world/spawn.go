package world

import (
	"math"

	"github.com/zyedidia/generic/mapset"
)

// SpawnTier tells which fallback produced a spawn position.
type SpawnTier uint8

const (
	SpawnSafe        SpawnTier = iota // passed the check at SpawnSafetyRadius
	SpawnReduced                      // passed at SpawnFallbackRadius
	SpawnRoomCenter                   // centre of a random room
	SpawnWorldCenter                  // centre of the world
)

func (t SpawnTier) String() string {
	switch t {
	case SpawnSafe:
		return "safe"
	case SpawnReduced:
		return "reduced"
	case SpawnRoomCenter:
		return "room_center"
	case SpawnWorldCenter:
		return "world_center"
	default:
		return "unknown"
	}
}

// noSpawnIndex is the set of cells where nothing may spawn: every solid tile
// plus every cell touched by a wall rectangle.
type noSpawnIndex struct {
	cells mapset.Set[Cell]
}

func buildNoSpawnIndex(grid *TileGrid, walls []Wall, tileSize int) *noSpawnIndex {
	idx := &noSpawnIndex{cells: mapset.New[Cell]()}
	for _, c := range grid.Tiles() {
		idx.cells.Put(c)
	}
	ts := float64(tileSize)
	for i := range walls {
		wl := &walls[i]
		x0, y0 := int(math.Floor(wl.X/ts)), int(math.Floor(wl.Y/ts))
		x1, y1 := int(math.Ceil((wl.X+wl.W)/ts)), int(math.Ceil((wl.Y+wl.H)/ts))
		for gy := y0; gy < y1; gy++ {
			for gx := x0; gx < x1; gx++ {
				idx.cells.Put(Cell{gx, gy})
			}
		}
	}
	return idx
}

// safe reports whether the inclusive square of the given radius around
// (gx, gy) holds no forbidden cell.
func (idx *noSpawnIndex) safe(gx, gy, radius int) bool {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if idx.cells.Has(Cell{gx + dx, gy + dy}) {
				return false
			}
		}
	}
	return true
}

// IsSpawnSafe reports whether the tile holding world point (x, y) and every
// tile within radius of it is free of walls. Points outside the world are
// never safe.
func (w *World) IsSpawnSafe(x, y float64, radius int) bool {
	if x < 0 || y < 0 || x >= float64(w.cfg.WorldSize) || y >= float64(w.cfg.WorldSize) {
		return false
	}
	ts := float64(w.cfg.TileSize)
	return w.noSpawn.safe(int(x/ts), int(y/ts), radius)
}

// RandomOpenPosition returns a tile-centred world position. It never fails;
// see RandomOpenPositionTier for how much safety the result carries.
func (w *World) RandomOpenPosition() (float64, float64) {
	x, y, _ := w.RandomOpenPositionTier()
	return x, y
}

// RandomOpenPositionTier rejection-samples tiles at SpawnSafetyRadius, then at
// SpawnFallbackRadius, then falls back to a room centre and finally to the
// world centre.
func (w *World) RandomOpenPositionTier() (float64, float64, SpawnTier) {
	if x, y, ok := w.sampleOpen(w.cfg.SpawnSafetyRadius); ok {
		return x, y, SpawnSafe
	}
	if x, y, ok := w.sampleOpen(w.cfg.SpawnFallbackRadius); ok {
		w.log.WithField("radius", w.cfg.SpawnFallbackRadius).Debug("spawn search fell back to reduced radius")
		return x, y, SpawnReduced
	}
	if len(w.rooms) > 0 {
		r := w.rooms[w.rng.Intn(len(w.rooms))]
		cx, cy := r.Center()
		x, y := w.tileCenter(cx, cy)
		w.log.Warn("spawn search fell back to a room centre")
		return x, y, SpawnRoomCenter
	}
	half := float64(w.cfg.WorldSize) / 2
	w.log.Warn("spawn search fell back to the world centre")
	return half, half, SpawnWorldCenter
}

func (w *World) sampleOpen(radius int) (float64, float64, bool) {
	size := w.cfg.GridSize()
	margin := w.cfg.EdgeMargin
	if size-margin <= margin {
		margin = 0
	}
	for i := 0; i < w.cfg.SpawnAttempts; i++ {
		gx := randRange(w.rng, margin, size-margin-1)
		gy := randRange(w.rng, margin, size-margin-1)
		if w.noSpawn.safe(gx, gy, radius) {
			x, y := w.tileCenter(gx, gy)
			return x, y, true
		}
	}
	return 0, 0, false
}

func (w *World) tileCenter(gx, gy int) (float64, float64) {
	ts := float64(w.cfg.TileSize)
	return float64(gx)*ts + ts/2, float64(gy)*ts + ts/2
}
