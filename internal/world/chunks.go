package world

import (
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// ChunkKey identifies a square chunk of world space.
type ChunkKey struct {
	X, Y int
}

// ChunkManager caches, per chunk, the handles of the walls intersecting it.
// Dropping a chunk only discards the cache entry; the arena is never touched.
type ChunkManager struct {
	size         float64
	walls        []Wall
	loaded       map[ChunkKey][]WallHandle
	loadRadius   int
	unloadRadius int
	nearbyRadius int
	buffer       float64
}

func newChunkManager(cfg Config, walls []Wall) *ChunkManager {
	return &ChunkManager{
		size:         float64(cfg.ChunkSize),
		walls:        walls,
		loaded:       make(map[ChunkKey][]WallHandle),
		loadRadius:   cfg.LoadRadius,
		unloadRadius: cfg.UnloadRadius,
		nearbyRadius: cfg.NearbyRadius,
		buffer:       cfg.VisibleBuffer,
	}
}

// ChunkAt returns the chunk containing the world point (x, y).
func (cm *ChunkManager) ChunkAt(x, y float64) ChunkKey {
	return ChunkKey{int(math.Floor(x / cm.size)), int(math.Floor(y / cm.size))}
}

// Wall returns the wall behind a handle. Walls are immutable; callers must not
// write through the pointer.
func (cm *ChunkManager) Wall(h WallHandle) *Wall {
	return &cm.walls[h]
}

// Walls returns the whole arena, indexed by WallHandle.
func (cm *ChunkManager) Walls() []Wall {
	return cm.walls
}

// LoadedChunks returns the number of chunks currently cached.
func (cm *ChunkManager) LoadedChunks() int {
	return len(cm.loaded)
}

// IsLoaded reports whether k is in the cache.
func (cm *ChunkManager) IsLoaded(k ChunkKey) bool {
	_, ok := cm.loaded[k]
	return ok
}

// LoadChunksAround caches every chunk within LoadRadius of the chunk holding (x, y).
func (cm *ChunkManager) LoadChunksAround(x, y float64) {
	c := cm.ChunkAt(x, y)
	for cy := c.Y - cm.loadRadius; cy <= c.Y+cm.loadRadius; cy++ {
		for cx := c.X - cm.loadRadius; cx <= c.X+cm.loadRadius; cx++ {
			cm.chunk(ChunkKey{cx, cy})
		}
	}
}

// UnloadDistantChunks evicts chunks whose Chebyshev distance from the chunk
// holding (x, y) exceeds UnloadRadius.
func (cm *ChunkManager) UnloadDistantChunks(x, y float64) {
	c := cm.ChunkAt(x, y)
	for k := range cm.loaded {
		if absInt(k.X-c.X) > cm.unloadRadius || absInt(k.Y-c.Y) > cm.unloadRadius {
			delete(cm.loaded, k)
		}
	}
}

// chunk returns the cached wall list of k, building it on a miss by scanning
// the arena against the chunk's bounds.
func (cm *ChunkManager) chunk(k ChunkKey) []WallHandle {
	if hs, ok := cm.loaded[k]; ok {
		return hs
	}
	x0, y0 := float64(k.X)*cm.size, float64(k.Y)*cm.size
	x1, y1 := x0+cm.size, y0+cm.size
	hs := []WallHandle{}
	for i := range cm.walls {
		if cm.walls[i].Overlaps(x0, y0, x1, y1) {
			hs = append(hs, WallHandle(i))
		}
	}
	cm.loaded[k] = hs
	return hs
}

// gather merges the wall lists of the chunk block [c0, c1], deduplicated by
// handle, keeping only walls accepted by keep (nil keeps all).
func (cm *ChunkManager) gather(c0, c1 ChunkKey, keep func(*Wall) bool) []WallHandle {
	seen := mapset.New[WallHandle]()
	for cy := c0.Y; cy <= c1.Y; cy++ {
		for cx := c0.X; cx <= c1.X; cx++ {
			for _, h := range cm.chunk(ChunkKey{cx, cy}) {
				if seen.Has(h) {
					continue
				}
				if keep == nil || keep(&cm.walls[h]) {
					seen.Put(h)
				}
			}
		}
	}
	out := make([]WallHandle, 0, seen.Size())
	seen.Each(func(h WallHandle) {
		out = append(out, h)
	})
	slices.Sort(out)
	return out
}

// NearbyWalls returns the walls of the NearbyRadius block (3×3 by default)
// around the chunk holding (x, y).
func (cm *ChunkManager) NearbyWalls(x, y float64) []WallHandle {
	c := cm.ChunkAt(x, y)
	r := cm.nearbyRadius
	return cm.gather(ChunkKey{c.X - r, c.Y - r}, ChunkKey{c.X + r, c.Y + r}, nil)
}

// VisibleWalls returns the walls inside the camera rectangle grown by the
// visibility buffer.
func (cm *ChunkManager) VisibleWalls(camX, camY, viewW, viewH float64) []WallHandle {
	c0 := cm.ChunkAt(camX-cm.buffer, camY-cm.buffer)
	c1 := cm.ChunkAt(camX+viewW+cm.buffer, camY+viewH+cm.buffer)
	return cm.gather(c0, c1, func(w *Wall) bool {
		return w.IsVisible(camX, camY, viewW, viewH, cm.buffer)
	})
}

// CollidesAt reports whether a probe of half-extent size at (x, y) hits any
// nearby wall.
func (cm *ChunkManager) CollidesAt(x, y, size float64) bool {
	for _, h := range cm.NearbyWalls(x, y) {
		if cm.walls[h].Collides(x, y, size) {
			return true
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
