// Package nails places nails around a frame and describes how a thread
// attaches to each one (its "links").
package nails

import (
	"math"

	"github.com/Fepozopo/threadloom/pkg/geometry"
)

// Link is a per-nail attachment side. For circular nails it is a
// geometry.Side (CW/CCW); for point nails there is only one trivial link.
type Link int

const (
	// LinkA is the only link for degenerate (point) nails, and one of the
	// two links (ClockWise) for circular nails.
	LinkA Link = Link(geometry.ClockWise)
	// LinkB is CounterClockWise for circular nails; unused for point nails.
	LinkB Link = Link(geometry.CounterClockWise)
)

func (l Link) side() geometry.Side { return geometry.Side(l) }

// Kind is the shape-specific geometry computer: it knows how many links a
// nail has, how to enumerate them, and how to build the segment that joins
// two (nail, link) endpoints.
type Kind[S geometry.Scalar] interface {
	// LinksPerNail is the compile-time-known K value for this nail shape.
	LinksPerNail() int
	// Links enumerates the shape's links in a fixed, deterministic order.
	Links() []Link
	// Segment builds the thread geometry between two endpoints. ok is
	// false when the geometry is inadmissible (e.g. circles too close for
	// a tangent to exist).
	Segment(a Point[S], aLink Link, b Point[S], bLink Link) (geometry.Segment[S], bool)
	// NextLink returns the link a thread continues on after arriving at
	// endLink; for circular nails this is the same side it arrived on.
	NextLink(endLink Link) Link
}

// Point is a single nail's placement: a position, plus shape-specific data
// (a radius for circular nails).
type Point[S geometry.Scalar] struct {
	Pos    geometry.Point[S]
	Radius S // unused for Point-kind nails
}

// Circular is the Kind for nails that are small physical pegs with two
// wrap sides (CW/CCW), connected by common tangents.
type Circular[S geometry.Scalar] struct {
	Radius S
}

func (Circular[S]) LinksPerNail() int { return 2 }

func (Circular[S]) Links() []Link { return []Link{LinkA, LinkB} }

func (c Circular[S]) Segment(a Point[S], aLink Link, b Point[S], bLink Link) (geometry.Segment[S], bool) {
	ca := geometry.Circle[S]{Center: a.Pos, Radius: c.Radius}
	cb := geometry.Circle[S]{Center: b.Pos, Radius: c.Radius}
	return ca.Tangent(aLink.side(), cb, bLink.side())
}

// NextLink wraps the thread around the same side it arrived on.
func (Circular[S]) NextLink(endLink Link) Link { return endLink }

// PointKind is the degenerate Kind for idealized zero-radius nails: the
// thread is simply the straight segment between the two nail positions,
// and both "sides" are equivalent.
type PointKind[S geometry.Scalar] struct{}

func (PointKind[S]) LinksPerNail() int { return 1 }

func (PointKind[S]) Links() []Link { return []Link{LinkA} }

func (PointKind[S]) Segment(a Point[S], _ Link, b Point[S], _ Link) (geometry.Segment[S], bool) {
	return geometry.Segment[S]{Start: a.Pos, End: b.Pos}, true
}

func (PointKind[S]) NextLink(endLink Link) Link { return endLink }

// PlaceEllipse places nailCount nails evenly around the ellipse inscribed
// in a width x height grid.
func PlaceEllipse[S geometry.Scalar](width, height S, nailCount int, radius S) []Point[S] {
	out := make([]Point[S], nailCount)
	for i := 0; i < nailCount; i++ {
		theta := 2 * math.Pi * float64(i) / float64(nailCount)
		out[i] = Point[S]{
			Pos: geometry.Point[S]{
				X: width / 2 * (1 + S(math.Cos(theta))),
				Y: height / 2 * (1 + S(math.Sin(theta))),
			},
			Radius: radius,
		}
	}
	return out
}

// PlaceRectangle places nailCount nails (a positive multiple of 4) around
// the border of a width x height rectangle, walking clockwise from the
// top side. Each side gets an equal nailCount/4 share regardless of its
// length, and nails are centered within their per-side slot, so none lands
// exactly on a corner; this is an approximation of the "corner anchors at
// 45deg+k*90deg, counts proportional to side length" rule (see DESIGN.md's
// Open Question entry for rectangle nail placement).
func PlaceRectangle[S geometry.Scalar](width, height S, nailCount int, radius S) []Point[S] {
	if nailCount <= 0 || nailCount%4 != 0 {
		return nil
	}
	perSideTarget := nailCount / 4
	sideLens := [4]S{width, height, width, height} // top, right, bottom, left
	starts := [4]geometry.Point[S]{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	}
	dirs := [4]geometry.Point[S]{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: 0},
		{X: 0, Y: -1},
	}

	out := make([]Point[S], 0, nailCount)
	for side := 0; side < 4; side++ {
		n := perSideTarget
		if n < 1 {
			n = 1
		}
		step := sideLens[side] / S(n)
		for k := 0; k < n; k++ {
			offset := step*S(k) + step/2
			pos := geometry.Point[S]{
				X: starts[side].X + dirs[side].X*offset,
				Y: starts[side].Y + dirs[side].Y*offset,
			}
			out = append(out, Point[S]{Pos: pos, Radius: radius})
		}
	}
	for len(out) > nailCount {
		out = out[:len(out)-1]
	}
	for len(out) < nailCount {
		out = append(out, out[len(out)-1])
	}
	return out
}
