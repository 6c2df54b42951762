package world

import "github.com/zyedidia/generic/mapset"

// BuildWalls merges the solid tiles of grid into collision rectangles.
//
// Each uncovered tile starts a run that grows right while the next tile is
// solid, uncovered and shares the same exposure pattern, then grows down while
// a whole row of that width matches. maxW and maxH cap the run in tiles
// (0 = unbounded). Every solid tile ends up in exactly one wall.
func BuildWalls(grid *TileGrid, tileSize, maxW, maxH int) []Wall {
	visited := mapset.New[Cell]()
	ts := float64(tileSize)
	var walls []Wall

	matches := func(x, y int, p exposure) bool {
		return !visited.Has(Cell{x, y}) && grid.HasTile(x, y) && grid.exposureAt(x, y) == p
	}

	for _, c := range grid.Tiles() {
		if visited.Has(c) {
			continue
		}
		p := grid.exposureAt(c.X, c.Y)

		w := 1
		for (maxW == 0 || w < maxW) && matches(c.X+w, c.Y, p) {
			w++
		}

		h := 1
	grow:
		for maxH == 0 || h < maxH {
			for dx := 0; dx < w; dx++ {
				if !matches(c.X+dx, c.Y+h, p) {
					break grow
				}
			}
			h++
		}

		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < w; dx++ {
				visited.Put(Cell{c.X + dx, c.Y + dy})
			}
		}

		walls = append(walls, Wall{
			X:         float64(c.X) * ts,
			Y:         float64(c.Y) * ts,
			W:         float64(w) * ts,
			H:         float64(h) * ts,
			GX:        c.X,
			GY:        c.Y,
			GW:        w,
			GH:        h,
			HasLeft:   p.left,
			HasRight:  p.right,
			HasTop:    p.top,
			HasBottom: p.bottom,
		})
	}
	return walls
}
