package geometry

import "testing"

func TestRasterizeHorizontal(t *testing.T) {
	seg := Segment[float64]{Start: Point[float64]{X: 0, Y: 0}, End: Point[float64]{X: 4, Y: 0}}
	pts := Rasterize(seg)
	if len(pts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(pts))
	}
	for i, p := range pts {
		if p.X != i || p.Y != 0 {
			t.Fatalf("point %d: got %+v", i, p)
		}
	}
}

func TestRasterizeDiagonal(t *testing.T) {
	seg := Segment[float64]{Start: Point[float64]{X: 0, Y: 0}, End: Point[float64]{X: 3, Y: 3}}
	pts := Rasterize(seg)
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
}

func TestTangentExternalSameSide(t *testing.T) {
	a := Circle[float64]{Center: Point[float64]{X: 0, Y: 0}, Radius: 1}
	b := Circle[float64]{Center: Point[float64]{X: 10, Y: 0}, Radius: 1}
	seg, ok := a.Tangent(ClockWise, b, ClockWise)
	if !ok {
		t.Fatal("expected external tangent to succeed")
	}
	if seg.Start == seg.End {
		t.Fatal("degenerate tangent segment")
	}
}

func TestTangentFailsWhenTooClose(t *testing.T) {
	a := Circle[float64]{Center: Point[float64]{X: 0, Y: 0}, Radius: 5}
	b := Circle[float64]{Center: Point[float64]{X: 1, Y: 0}, Radius: 5}
	_, ok := a.Tangent(ClockWise, b, CounterClockWise)
	if ok {
		t.Fatal("expected internal tangent to fail for overlapping circles")
	}
}
