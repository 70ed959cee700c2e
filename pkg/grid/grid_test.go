package grid

import (
	"testing"

	"github.com/Fepozopo/threadloom/pkg/geometry"
)

func TestPixelDistanceBounds(t *testing.T) {
	black := Pixel[float64]{0, 0, 0}
	white := Pixel[float64]{1, 1, 1}
	d := black.Distance(white)
	if d < 1.732 || d > 1.733 {
		t.Fatalf("expected sqrt(3) distance, got %v", d)
	}
}

func TestPixelIndexesInSegmentSkipsOutOfBounds(t *testing.T) {
	g := Grid{Width: 4, Height: 4}
	seg := geometry.Segment[float64]{
		Start: geometry.Point[float64]{X: -2, Y: 0},
		End:   geometry.Point[float64]{X: 5, Y: 0},
	}
	idxs := PixelIndexesInSegment(g, seg)
	for _, idx := range idxs {
		if idx < 0 || idx >= 16 {
			t.Fatalf("index %d out of bounds", idx)
		}
	}
	if len(idxs) != 4 {
		t.Fatalf("expected 4 in-bounds pixels, got %d", len(idxs))
	}
}

func TestPrecomputedSegmentRoundTrip(t *testing.T) {
	g := Grid{Width: 4, Height: 4}
	var buf PixelIndexBuffer
	seg := geometry.Segment[float64]{Start: geometry.Point[float64]{X: 0, Y: 0}, End: geometry.Point[float64]{X: 3, Y: 0}}
	p := Add(&buf, g, seg)
	if len(buf.Range(p)) != 4 {
		t.Fatalf("expected 4 indexes, got %d", len(buf.Range(p)))
	}
}
