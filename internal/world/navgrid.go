package world

import (
	"container/heap"
	"math"
)

// NavGrid is a walkability grid over the tile grid where true = blocked.
// Blocked cells are the solid tiles grown by a clearance in tiles.
type NavGrid struct {
	cols     int
	rows     int
	tileSize float64
	blocked  []bool
}

// NewNavGrid builds a size×size walkability grid from the solid tiles.
func NewNavGrid(grid *TileGrid, size, tileSize, clearance int) *NavGrid {
	ng := &NavGrid{
		cols:     size,
		rows:     size,
		tileSize: float64(tileSize),
		blocked:  make([]bool, size*size),
	}
	for _, c := range grid.Tiles() {
		for cy := max(0, c.Y-clearance); cy <= min(size-1, c.Y+clearance); cy++ {
			for cx := max(0, c.X-clearance); cx <= min(size-1, c.X+clearance); cx++ {
				ng.blocked[cy*size+cx] = true
			}
		}
	}
	return ng
}

// IsBlocked returns true if the cell at (cx, cy) is not walkable.
func (ng *NavGrid) IsBlocked(cx, cy int) bool {
	if cx < 0 || cy < 0 || cx >= ng.cols || cy >= ng.rows {
		return true
	}
	return ng.blocked[cy*ng.cols+cx]
}

// WorldToCell converts world pixel coordinates to grid cell coordinates.
func (ng *NavGrid) WorldToCell(wx, wy float64) (int, int) {
	return int(math.Floor(wx / ng.tileSize)), int(math.Floor(wy / ng.tileSize))
}

// CellToWorld converts grid cell coordinates to the world pixel centre.
func (ng *NavGrid) CellToWorld(cx, cy int) (float64, float64) {
	return float64(cx)*ng.tileSize + ng.tileSize/2, float64(cy)*ng.tileSize + ng.tileSize/2
}

type pathNode struct {
	cx, cy int
	g, h   float64
	parent *pathNode
	index  int
}

type openList []*pathNode

func (ol openList) Len() int           { return len(ol) }
func (ol openList) Less(i, j int) bool { return (ol[i].g + ol[i].h) < (ol[j].g + ol[j].h) }
func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}
func (ol *openList) Push(x any) { n := x.(*pathNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

var navDirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// FindPath returns world-coordinate waypoints from (sx,sy) to (gx,gy), or nil
// when either end is blocked, no path exists, or maxNodes expansions run out
// (maxNodes <= 0 means no limit).
func (ng *NavGrid) FindPath(sx, sy, gx, gy float64, maxNodes int) [][2]float64 {
	scx, scy := ng.WorldToCell(sx, sy)
	gcx, gcy := ng.WorldToCell(gx, gy)

	if ng.IsBlocked(scx, scy) || ng.IsBlocked(gcx, gcy) {
		return nil
	}

	key := func(cx, cy int) int { return cy*ng.cols + cx }
	heuristic := func(ax, ay, bx, by int) float64 {
		dx := math.Abs(float64(ax - bx))
		dy := math.Abs(float64(ay - by))
		return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
	}

	start := &pathNode{cx: scx, cy: scy, h: heuristic(scx, scy, gcx, gcy)}
	ol := &openList{start}
	heap.Init(ol)

	closed := make(map[int]bool)
	best := map[int]*pathNode{key(scx, scy): start}
	expanded := 0

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.cx == gcx && cur.cy == gcy {
			return ng.buildPath(cur)
		}
		k := key(cur.cx, cur.cy)
		if closed[k] {
			continue
		}
		closed[k] = true
		expanded++
		if maxNodes > 0 && expanded > maxNodes {
			return nil
		}

		for _, d := range navDirs {
			nx, ny := cur.cx+d[0], cur.cy+d[1]
			if ng.IsBlocked(nx, ny) {
				continue
			}
			// No diagonal corner-cutting through blocked cells.
			if d[0] != 0 && d[1] != 0 {
				if ng.IsBlocked(cur.cx+d[0], cur.cy) || ng.IsBlocked(cur.cx, cur.cy+d[1]) {
					continue
				}
			}
			nk := key(nx, ny)
			if closed[nk] {
				continue
			}
			cost := 1.0
			if d[0] != 0 && d[1] != 0 {
				cost = math.Sqrt2
			}
			g := cur.g + cost
			if prev, ok := best[nk]; ok && g >= prev.g {
				continue
			}
			node := &pathNode{cx: nx, cy: ny, g: g, h: heuristic(nx, ny, gcx, gcy), parent: cur}
			best[nk] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

func (ng *NavGrid) buildPath(end *pathNode) [][2]float64 {
	var cells [][2]int
	for n := end; n != nil; n = n.parent {
		cells = append(cells, [2]int{n.cx, n.cy})
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	path := make([][2]float64, len(cells))
	for i, c := range cells {
		wx, wy := ng.CellToWorld(c[0], c[1])
		path[i] = [2]float64{wx, wy}
	}
	return path
}
