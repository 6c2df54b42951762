package world

import "math"

// HasLineOfSight samples the segment (x1,y1)-(x2,y2) every LOSStep pixels
// (at least LOSMinSteps intervals) and probes each interior sample against
// the walls around the midpoint. Degenerate segments are always clear.
// Point sampling can miss a grazing corner; that is accepted.
func (w *World) HasLineOfSight(x1, y1, x2, y2 float64) bool {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return true
	}
	steps := max(int(dist/w.cfg.LOSStep), w.cfg.LOSMinSteps)
	walls := w.segmentWalls(x1, y1, x2, y2)
	r := w.cfg.LOSProbeRadius

	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		px, py := x1+dx*t, y1+dy*t
		for _, h := range walls {
			if w.walls[h].Collides(px, py, r) {
				return false
			}
		}
	}
	return true
}

// segmentWalls returns the walls near the segment midpoint, widened to every
// chunk the segment's bounding box touches when the segment outgrows the
// nearby block.
func (w *World) segmentWalls(x1, y1, x2, y2 float64) []WallHandle {
	mid := w.ChunkAt((x1+x2)/2, (y1+y2)/2)
	r := w.nearbyRadius
	c0 := ChunkKey{mid.X - r, mid.Y - r}
	c1 := ChunkKey{mid.X + r, mid.Y + r}

	a, b := w.ChunkAt(math.Min(x1, x2), math.Min(y1, y2)), w.ChunkAt(math.Max(x1, x2), math.Max(y1, y2))
	c0 = ChunkKey{min(c0.X, a.X), min(c0.Y, a.Y)}
	c1 = ChunkKey{max(c1.X, b.X), max(c1.Y, b.Y)}
	return w.gather(c0, c1, nil)
}

// Raycast returns the first wall whose rectangle the segment enters and the
// segment parameter t in [0,1] of the entry point. Unlike HasLineOfSight it
// is exact and ignores face exposure.
func (w *World) Raycast(x1, y1, x2, y2 float64) (WallHandle, float64, bool) {
	best, bestT, found := WallHandle(-1), math.Inf(1), false
	for _, h := range w.segmentWalls(x1, y1, x2, y2) {
		wl := &w.walls[h]
		t, hit := rayAABBHitT(x1, y1, x2, y2, wl.X, wl.Y, wl.X+wl.W, wl.Y+wl.H)
		if hit && t < bestT {
			best, bestT, found = h, t, true
		}
	}
	if !found {
		return -1, 1, false
	}
	return best, bestT, true
}

// rayAABBHitT returns the first segment parameter t in [0,1] where the line
// from (ox,oy)->(ex,ey) enters the AABB. The bool is false when no hit exists.
func rayAABBHitT(ox, oy, ex, ey, minX, minY, maxX, maxY float64) (float64, bool) {
	dx := ex - ox
	dy := ey - oy

	tMin := 0.0
	tMax := 1.0

	if math.Abs(dx) < 1e-12 {
		if ox < minX || ox > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - ox) * invD
		t2 := (maxX - ox) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if math.Abs(dy) < 1e-12 {
		if oy < minY || oy > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - oy) * invD
		t2 := (maxY - oy) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	return tMin, true
}
