package world

import (
	"math/rand"
)

// Room is a carved rectangle in tile coordinates.
type Room struct {
	X, Y, W, H int
}

// Center returns the centre tile of the room.
func (r Room) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// overlapsPadded reports whether r, grown by pad tiles, touches o.
func (r Room) overlapsPadded(o Room, pad int) bool {
	return !(r.X+r.W+pad < o.X || r.X-pad > o.X+o.W ||
		r.Y+r.H+pad < o.Y || r.Y-pad > o.Y+o.H)
}

// genStats summarises one generator run for logging.
type genStats struct {
	requestedRooms int
	thinWallPasses int
	thinTilesFreed int
}

// generator carves rooms and corridors out of a solid grid.
type generator struct {
	cfg   Config
	rng   *rand.Rand
	grid  *GridBuilder
	size  int
	rooms []Room
	stats genStats
}

func newGenerator(cfg Config, rng *rand.Rand) *generator {
	return &generator{
		cfg:  cfg,
		rng:  rng,
		grid: NewGridBuilder(),
		size: cfg.GridSize(),
	}
}

// run executes the whole pipeline and returns the finalized grid.
func (g *generator) run() *TileGrid {
	g.grid.FillRect(0, 0, g.size, g.size)
	g.placeRooms()
	for _, r := range g.rooms {
		g.clearClamped(r.X, r.Y, r.W, r.H)
	}
	for i := 0; i+1 < len(g.rooms); i++ {
		g.connect(g.rooms[i], g.rooms[i+1])
	}
	extra := int(float64(len(g.rooms)) * g.cfg.ExtraConnections)
	for n := 0; n < extra; n++ {
		i, j := g.rng.Intn(len(g.rooms)), g.rng.Intn(len(g.rooms))
		if i != j {
			g.connect(g.rooms[i], g.rooms[j])
		}
	}
	g.enforceMinimumWallThickness()
	return g.grid.Finalize()
}

// placeRooms seeds the start room at the grid centre, then rejection-samples
// the rest. A room that never fits within RoomAttempts is dropped.
func (g *generator) placeRooms() {
	s := g.cfg.StartRoomSize
	c := g.size / 2
	g.rooms = append(g.rooms, Room{X: c - s/2, Y: c - s/2, W: s, H: s})
	g.stats.requestedRooms = g.cfg.RoomCount + 1

	margin := g.cfg.EdgeMargin
	for n := 0; n < g.cfg.RoomCount; n++ {
		for attempt := 0; attempt < g.cfg.RoomAttempts; attempt++ {
			w := randRange(g.rng, g.cfg.RoomMinSize, g.cfg.RoomMaxSize)
			h := randRange(g.rng, g.cfg.RoomMinSize, g.cfg.RoomMaxSize)
			if g.size-w-margin < margin || g.size-h-margin < margin {
				continue
			}
			cand := Room{
				X: randRange(g.rng, margin, g.size-w-margin),
				Y: randRange(g.rng, margin, g.size-h-margin),
				W: w,
				H: h,
			}
			if !g.overlapsAny(cand) {
				g.rooms = append(g.rooms, cand)
				break
			}
		}
	}
}

func (g *generator) overlapsAny(r Room) bool {
	for _, o := range g.rooms {
		if r.overlapsPadded(o, g.cfg.RoomPadding) {
			return true
		}
	}
	return false
}

// connect carves an L-shaped corridor: horizontal along a's centre row,
// then vertical along b's centre column.
func (g *generator) connect(a, b Room) {
	ax, ay := a.Center()
	bx, by := b.Center()
	half := g.cfg.CorridorWidth / 2

	for x := min(ax, bx); x <= max(ax, bx); x++ {
		for off := -half; off <= half; off++ {
			g.clearClamped(x, ay+off, 1, 1)
		}
	}
	for y := min(ay, by); y <= max(ay, by); y++ {
		for off := -half; off <= half; off++ {
			g.clearClamped(bx+off, y, 1, 1)
		}
	}
}

// clearClamped opens the block intersected with the grid.
func (g *generator) clearClamped(gx, gy, w, h int) {
	x0, y0 := max(gx, 0), max(gy, 0)
	x1, y1 := min(gx+w, g.size), min(gy+h, g.size)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	g.grid.ClearRect(x0, y0, x1-x0, y1-y0)
}

// enforceMinimumWallThickness repeatedly clears tiles that are one tile thick
// between two open cells, and pairs that are exactly two thick, until a pass
// changes nothing.
func (g *generator) enforceMinimumWallThickness() {
	if g.cfg.MinWallThickness <= 1 {
		return
	}
	has := g.grid.HasTile
	for {
		var drop []Cell
		for x := 0; x < g.size; x++ {
			for y := 0; y < g.size; y++ {
				if !has(x, y) {
					continue
				}
				leftOpen, rightOpen := !has(x-1, y), !has(x+1, y)
				if leftOpen && rightOpen {
					drop = append(drop, Cell{x, y})
					continue
				}
				topOpen, bottomOpen := !has(x, y-1), !has(x, y+1)
				if topOpen && bottomOpen {
					drop = append(drop, Cell{x, y})
					continue
				}
				if g.cfg.MinWallThickness < 3 {
					continue
				}
				if leftOpen && has(x+1, y) && !has(x+2, y) {
					drop = append(drop, Cell{x, y}, Cell{x + 1, y})
				}
				if topOpen && has(x, y+1) && !has(x, y+2) {
					drop = append(drop, Cell{x, y}, Cell{x, y + 1})
				}
			}
		}
		g.stats.thinWallPasses++
		if len(drop) == 0 {
			return
		}
		for _, c := range drop {
			if has(c.X, c.Y) {
				g.grid.RemoveTile(c.X, c.Y)
				g.stats.thinTilesFreed++
			}
		}
	}
}

// randRange returns a uniform int in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
