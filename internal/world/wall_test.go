package world

import "testing"

func TestWall_InternalFaceNeverCollides(t *testing.T) {
	// Solid neighbours on the left, top and bottom; only the right face is exposed.
	w := Wall{X: 100, Y: 100, W: 40, H: 40, HasLeft: true, HasTop: true, HasBottom: true}
	for y := 100.0; y <= 140; y++ {
		if w.Collides(97, y, 5) {
			t.Fatalf("probe against internal left face at y=%.0f collided", y)
		}
	}
	if !w.Collides(142, 120, 5) {
		t.Fatal("probe against exposed right face should collide")
	}
}

func TestWall_ExposedFaceCollides(t *testing.T) {
	w := Wall{X: 100, Y: 100, W: 40, H: 40}
	if !w.Collides(97, 120, 5) {
		t.Fatal("probe touching an exposed left face should collide")
	}
	if !w.Collides(120, 98, 5) {
		t.Fatal("probe touching an exposed top face should collide")
	}
}

func TestWall_EnclosedInteriorTransparent(t *testing.T) {
	w := Wall{X: 0, Y: 0, W: 200, H: 200, HasLeft: true, HasRight: true, HasTop: true, HasBottom: true}
	for _, p := range [][2]float64{{1, 1}, {100, 100}, {199, 50}, {50, 199}} {
		if w.Collides(p[0], p[1], 10) {
			t.Fatalf("fully enclosed wall collided at %v", p)
		}
	}
}

func TestWall_StripDepth(t *testing.T) {
	// Probes deep inside an exposed wall miss the strips.
	w := Wall{X: 0, Y: 0, W: 200, H: 200}
	if w.Collides(100, 100, 4) {
		t.Fatal("probe in the middle of a large wall should not hit a face strip")
	}
	if !w.Collides(5, 100, 4) {
		t.Fatal("probe within size+slack of the left face should collide")
	}
}

func TestWall_FarProbeMisses(t *testing.T) {
	w := Wall{X: 100, Y: 100, W: 40, H: 40}
	if w.Collides(0, 0, 5) {
		t.Fatal("distant probe collided")
	}
	if w.Collides(120, 150, 5) {
		t.Fatal("probe 10px below the wall collided")
	}
}

func TestWall_IsVisible(t *testing.T) {
	w := Wall{X: 1000, Y: 1000, W: 40, H: 40}
	if !w.IsVisible(900, 900, 200, 200, 0) {
		t.Fatal("wall inside the view should be visible")
	}
	if w.IsVisible(0, 0, 800, 600, 50) {
		t.Fatal("wall far outside the view should not be visible")
	}
	if !w.IsVisible(1080, 1000, 200, 200, 50) {
		t.Fatal("wall within the buffer should be visible")
	}
	if w.IsVisible(1100, 1000, 200, 200, 50) {
		t.Fatal("wall beyond the buffer should not be visible")
	}
}
