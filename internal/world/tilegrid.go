package world

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// TileInfo is the neighbour metadata cached for one solid tile.
type TileInfo struct {
	NeighborCount uint8 // solid cardinal neighbours, 0–4
	Corner        bool  // at least one diagonal neighbour is open
}

// GridBuilder collects solid-tile edits. Neighbour metadata is only computed
// by Finalize, once per batch of edits.
type GridBuilder struct {
	solid mapset.Set[Cell]
}

// NewGridBuilder returns an empty (all open) builder.
func NewGridBuilder() *GridBuilder {
	return &GridBuilder{solid: mapset.New[Cell]()}
}

// PlaceTile marks (gx, gy) solid.
func (b *GridBuilder) PlaceTile(gx, gy int) {
	b.solid.Put(Cell{gx, gy})
}

// RemoveTile marks (gx, gy) open.
func (b *GridBuilder) RemoveTile(gx, gy int) {
	b.solid.Remove(Cell{gx, gy})
}

// HasTile reports whether (gx, gy) is solid.
func (b *GridBuilder) HasTile(gx, gy int) bool {
	return b.solid.Has(Cell{gx, gy})
}

// FillRect marks every tile of the w×h block at (gx, gy) solid.
func (b *GridBuilder) FillRect(gx, gy, w, h int) {
	for y := gy; y < gy+h; y++ {
		for x := gx; x < gx+w; x++ {
			b.PlaceTile(x, y)
		}
	}
}

// ClearRect opens every tile of the w×h block at (gx, gy).
func (b *GridBuilder) ClearRect(gx, gy, w, h int) {
	for y := gy; y < gy+h; y++ {
		for x := gx; x < gx+w; x++ {
			b.RemoveTile(x, y)
		}
	}
}

// Len returns the number of solid tiles.
func (b *GridBuilder) Len() int {
	return b.solid.Size()
}

// Finalize runs the full neighbour pass and returns an immutable snapshot.
// The builder stays usable; later edits do not affect returned grids.
func (b *GridBuilder) Finalize() *TileGrid {
	g := &TileGrid{tiles: make(map[Cell]TileInfo, b.solid.Size())}
	first := true
	b.solid.Each(func(c Cell) {
		g.tiles[c] = TileInfo{}
		if first {
			g.minX, g.maxX, g.minY, g.maxY = c.X, c.X, c.Y, c.Y
			first = false
			return
		}
		g.minX = min(g.minX, c.X)
		g.maxX = max(g.maxX, c.X)
		g.minY = min(g.minY, c.Y)
		g.maxY = max(g.maxY, c.Y)
	})
	g.recomputeAll()
	return g
}

// TileGrid is a finalized sparse set of solid tiles with neighbour metadata.
type TileGrid struct {
	tiles                  map[Cell]TileInfo
	minX, minY, maxX, maxY int
}

// recomputeAll refreshes the metadata of every tile. Always a full pass.
func (g *TileGrid) recomputeAll() {
	for c := range g.tiles {
		var n uint8
		for _, d := range cardinals {
			if g.HasTile(c.X+d[0], c.Y+d[1]) {
				n++
			}
		}
		corner := false
		for _, d := range diagonals {
			if !g.HasTile(c.X+d[0], c.Y+d[1]) {
				corner = true
				break
			}
		}
		g.tiles[c] = TileInfo{NeighborCount: n, Corner: corner}
	}
}

var (
	cardinals = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	diagonals = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
)

// HasTile reports whether (gx, gy) is solid.
func (g *TileGrid) HasTile(gx, gy int) bool {
	_, ok := g.tiles[Cell{gx, gy}]
	return ok
}

// Info returns the metadata of a solid tile.
func (g *TileGrid) Info(gx, gy int) (TileInfo, bool) {
	ti, ok := g.tiles[Cell{gx, gy}]
	return ti, ok
}

// Len returns the number of solid tiles.
func (g *TileGrid) Len() int {
	return len(g.tiles)
}

// Bounds returns the inclusive bounding box of the solid tiles.
// ok is false for an empty grid.
func (g *TileGrid) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	if len(g.tiles) == 0 {
		return 0, 0, 0, 0, false
	}
	return g.minX, g.minY, g.maxX, g.maxY, true
}

// Tiles returns every solid cell in row-major order.
func (g *TileGrid) Tiles() []Cell {
	out := make([]Cell, 0, len(g.tiles))
	for c := range g.tiles {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Cell) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// exposure is the 4-side solid-neighbour pattern of a tile.
type exposure struct {
	left, right, top, bottom bool
}

func (g *TileGrid) exposureAt(gx, gy int) exposure {
	return exposure{
		left:   g.HasTile(gx-1, gy),
		right:  g.HasTile(gx+1, gy),
		top:    g.HasTile(gx, gy-1),
		bottom: g.HasTile(gx, gy+1),
	}
}
