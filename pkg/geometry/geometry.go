// Package geometry implements the scalar, point, segment, rasterization and
// circle-tangent primitives that every other threadloom package builds on.
package geometry

import "math"

// Scalar is the real-valued floating type used throughout the engine. The
// width is fixed where a caller instantiates the generic types; there is no
// runtime precision setting, and the cmd entrypoints use float64.
type Scalar interface {
	~float32 | ~float64
}

// Point is a 2D coordinate in image space. Besides the Scalar types it can
// be instantiated with int, which Rasterize uses for pixel coordinates.
type Point[S Scalar | ~int] struct {
	X, Y S
}

// Sub returns p-q.
func (p Point[S]) Sub(q Point[S]) Point[S] {
	return Point[S]{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p+q.
func (p Point[S]) Add(q Point[S]) Point[S] {
	return Point[S]{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p Point[S]) Scale(s S) Point[S] {
	return Point[S]{X: p.X * s, Y: p.Y * s}
}

// Segment is a straight thread between two endpoints.
type Segment[S Scalar] struct {
	Start, End Point[S]
}

// Scale returns the segment scaled by s, used when rendering at a different
// target resolution than the working grid.
func (s Segment[S]) Scale(factor S) Segment[S] {
	return Segment[S]{Start: s.Start.Scale(factor), End: s.End.Scale(factor)}
}

// Rasterize walks the segment with Bresenham's algorithm and returns the
// ordered, finite sequence of integer pixel coordinates it touches. Callers
// are responsible for discarding coordinates outside their grid bounds;
// Rasterize itself has no notion of grid size.
func Rasterize[S Scalar](seg Segment[S]) []Point[int] {
	x0 := int(math.Round(float64(seg.Start.X)))
	y0 := int(math.Round(float64(seg.Start.Y)))
	x1 := int(math.Round(float64(seg.End.X)))
	y1 := int(math.Round(float64(seg.End.Y)))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	var out []Point[int]
	x, y := x0, y0
	for {
		out = append(out, Point[int]{X: x, Y: y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x == x1 {
				break
			}
			err += dy
			x += sx
		}
		if e2 <= dx {
			if y == y1 {
				break
			}
			err += dx
			y += sy
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Side selects which common tangent a thread takes around a circular nail.
type Side int

const (
	ClockWise Side = iota
	CounterClockWise
)

// Circle is a circular nail's geometry: its center and radius.
type Circle[S Scalar] struct {
	Center Point[S]
	Radius S
}

// Tangent computes the common tangent segment between two equal-radius
// circles, selecting the external tangent when the two sides match and the
// internal tangent otherwise. It reports ok=false when the circles are too
// close for the requested tangent to exist.
func (c Circle[S]) Tangent(side Side, other Circle[S], otherSide Side) (Segment[S], bool) {
	if side == otherSide {
		return c.outerTangent(other, side)
	}
	return c.innerTangent(other, side)
}

func (c Circle[S]) innerTangent(other Circle[S], side Side) (Segment[S], bool) {
	dx := float64(other.Center.X - c.Center.X)
	dy := float64(other.Center.Y - c.Center.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	sumR := float64(c.Radius + other.Radius)
	if dist <= sumR {
		return Segment[S]{}, false
	}

	angle1 := math.Atan2(dy, dx)
	angle2 := math.Acos(sumR / dist)
	var xa, ya float64
	if side == ClockWise {
		xa, ya = math.Cos(angle1+angle2), math.Sin(angle1+angle2)
	} else {
		xa, ya = math.Cos(angle1-angle2), math.Sin(angle1-angle2)
	}
	return Segment[S]{
		Start: Point[S]{
			X: c.Center.X + c.Radius*S(xa),
			Y: c.Center.Y + c.Radius*S(ya),
		},
		End: Point[S]{
			X: other.Center.X - other.Radius*S(xa),
			Y: other.Center.Y - other.Radius*S(ya),
		},
	}, true
}

func (c Circle[S]) outerTangent(other Circle[S], side Side) (Segment[S], bool) {
	dx := float64(other.Center.X - c.Center.X)
	dy := float64(other.Center.Y - c.Center.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	diffR := math.Abs(float64(c.Radius - other.Radius))
	if dist <= diffR {
		return Segment[S]{}, false
	}

	angle1 := math.Atan2(dy, dx)
	angle2 := math.Acos(float64(c.Radius-other.Radius) / dist)
	var xa, ya float64
	if side == ClockWise {
		xa, ya = math.Cos(angle1+angle2), math.Sin(angle1+angle2)
	} else {
		xa, ya = math.Cos(angle1-angle2), math.Sin(angle1-angle2)
	}
	return Segment[S]{
		Start: Point[S]{
			X: c.Center.X + c.Radius*S(xa),
			Y: c.Center.Y + c.Radius*S(ya),
		},
		End: Point[S]{
			X: other.Center.X + other.Radius*S(xa),
			Y: other.Center.Y + other.Radius*S(ya),
		},
	}, true
}
