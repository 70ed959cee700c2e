package nails

import (
	"testing"

	"github.com/Fepozopo/threadloom/pkg/geometry"
)

func TestPlaceEllipseCount(t *testing.T) {
	pts := PlaceEllipse[float64](100, 100, 16, 2)
	if len(pts) != 16 {
		t.Fatalf("expected 16 nails, got %d", len(pts))
	}
}

func TestPlaceRectangleRejectsNonMultipleOf4(t *testing.T) {
	pts := PlaceRectangle[float64](100, 50, 6, 1)
	if pts != nil {
		t.Fatal("expected nil for nail count not a multiple of 4")
	}
}

func TestPlaceRectangleCount(t *testing.T) {
	pts := PlaceRectangle[float64](200, 100, 40, 1)
	if len(pts) != 40 {
		t.Fatalf("expected 40 nails, got %d", len(pts))
	}
}

func TestCircularNextLinkWrapsSameSide(t *testing.T) {
	var c Circular[float64]
	if c.NextLink(LinkB) != LinkB {
		t.Fatal("circular nails continue on the same side")
	}
}

func TestCircularSegmentFailsWhenOverlapping(t *testing.T) {
	c := Circular[float64]{Radius: 5}
	a := Point[float64]{Pos: geometry.Point[float64]{X: 0, Y: 0}}
	b := Point[float64]{Pos: geometry.Point[float64]{X: 1, Y: 0}}
	_, ok := c.Segment(a, LinkA, b, LinkB)
	if ok {
		t.Fatal("expected overlapping circular nails to fail tangent construction")
	}
}
