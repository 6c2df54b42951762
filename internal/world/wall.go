package world

// collisionSlack widens each exposed face strip beyond the probe size.
const collisionSlack = 2

// WallHandle is the stable index of a Wall in a World's arena.
type WallHandle int32

// Wall is a merged collision rectangle in world pixels. A Has* flag is true
// when a solid tile sits directly across that face; such faces are internal
// and never report a collision.
type Wall struct {
	X, Y, W, H float64

	// Tile footprint.
	GX, GY, GW, GH int

	HasLeft   bool
	HasRight  bool
	HasTop    bool
	HasBottom bool
}

// CenterX returns the horizontal centre of the rectangle.
func (w *Wall) CenterX() float64 { return w.X + w.W/2 }

// CenterY returns the vertical centre of the rectangle.
func (w *Wall) CenterY() float64 { return w.Y + w.H/2 }

// Overlaps reports whether the wall intersects the open rectangle (x0,y0)-(x1,y1).
func (w *Wall) Overlaps(x0, y0, x1, y1 float64) bool {
	return w.X < x1 && w.X+w.W > x0 && w.Y < y1 && w.Y+w.H > y0
}

// Collides reports whether a probe of half-extent size centred on (x, y)
// touches one of the wall's exposed face strips. The interior and internal
// faces are transparent.
func (w *Wall) Collides(x, y, size float64) bool {
	if !w.Overlaps(x-size, y-size, x+size, y+size) {
		return false
	}
	margin := size + collisionSlack
	cx, cy := w.CenterX(), w.CenterY()

	if x < cx && abs(x-w.X) < margin && !w.HasLeft {
		return true
	}
	if x > cx && abs(x-(w.X+w.W)) < margin && !w.HasRight {
		return true
	}
	if y < cy && abs(y-w.Y) < margin && !w.HasTop {
		return true
	}
	if y > cy && abs(y-(w.Y+w.H)) < margin && !w.HasBottom {
		return true
	}
	return false
}

// IsVisible reports whether the wall falls inside the camera rectangle
// grown by buffer on every side.
func (w *Wall) IsVisible(camX, camY, viewW, viewH, buffer float64) bool {
	sx := w.X - camX
	sy := w.Y - camY
	return sx+w.W > -buffer && sx < viewW+buffer &&
		sy+w.H > -buffer && sy < viewH+buffer
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
