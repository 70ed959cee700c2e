// Package grid holds the working image in linear RGB and turns rasterized
// segments into pixel-index ranges the rest of the engine reads by index.
package grid

import (
	"math"

	"github.com/Fepozopo/threadloom/pkg/geometry"
)

// Pixel is a linear-RGB color triple in [0,1]. The maximum possible distance
// between two pixels is sqrt(3) (black to white), so the squared distance is
// bounded by 3 - the constant the weight-map construction in
// pkg/colormap builds around.
type Pixel[S geometry.Scalar] struct {
	R, G, B S
}

// Distance returns the Euclidean distance in RGB space between p and q.
func (p Pixel[S]) Distance(q Pixel[S]) S {
	dr := p.R - q.R
	dg := p.G - q.G
	db := p.B - q.B
	return sqrt(dr*dr + dg*dg + db*db)
}

func sqrt[S geometry.Scalar](v S) S {
	return S(math.Sqrt(float64(v)))
}

// Grid is the pixel dimensions of the working image.
type Grid struct {
	Width, Height uint
}

// Index returns the flat pixel index of (x,y): y*width+x.
func (g Grid) Index(x, y int) int {
	return y*int(g.Width) + x
}

// InBounds reports whether (x,y) lies within the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < int(g.Width) && y < int(g.Height)
}

// PixelIndexesInSegment rasterizes seg and returns the flat pixel indexes
// it touches, skipping any coordinates that fall outside the grid.
func PixelIndexesInSegment[S geometry.Scalar](g Grid, seg geometry.Segment[S]) []int {
	pts := geometry.Rasterize(seg)
	out := make([]int, 0, len(pts))
	for _, p := range pts {
		if g.InBounds(p.X, p.Y) {
			out = append(out, g.Index(p.X, p.Y))
		}
	}
	return out
}

// Image is a grid's worth of linear-RGB pixels, row-major.
type Image[S geometry.Scalar] struct {
	Grid   Grid
	Pixels []Pixel[S]
}

// At returns the pixel at (x,y).
func (img Image[S]) At(x, y int) Pixel[S] {
	return img.Pixels[img.Grid.Index(x, y)]
}

// PrecomputedSegment stores the flat-buffer (offset, len) range into a
// shared pixel-index buffer for one baked segment, avoiding a fresh
// rasterize-and-allocate on every best-line scan (the "correctness
// invariant" of spec section 4.4: rasterize(seg) is fixed and may be
// precomputed once).
type PrecomputedSegment struct {
	Offset, Len int
}

// PixelIndexBuffer is the flat buffer plus per-segment (offset,len) ranges
// described in spec section 9 ("global precomputed per-segment pixel-index
// lists").
type PixelIndexBuffer struct {
	Flat []int
}

// Add appends seg's pixel indexes to the buffer and returns its range.
func Add[S geometry.Scalar](buf *PixelIndexBuffer, g Grid, seg geometry.Segment[S]) PrecomputedSegment {
	offset := len(buf.Flat)
	idxs := PixelIndexesInSegment(g, seg)
	buf.Flat = append(buf.Flat, idxs...)
	return PrecomputedSegment{Offset: offset, Len: len(idxs)}
}

// Range returns the slice of pixel indexes for a precomputed segment.
func (buf *PixelIndexBuffer) Range(p PrecomputedSegment) []int {
	return buf.Flat[p.Offset : p.Offset+p.Len]
}
