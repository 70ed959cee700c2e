// Package dither implements the palette-quantizing pre-pass described as an
// external interface in the engine spec: it assigns each pixel to the
// nearest palette color and reports per-color pixel counts, fully decoupled
// from the rest of the engine.
package dither

import (
	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/grid"
)

// Pass is the narrow interface the engine depends on: given a working
// image and a palette (as linear-RGB colors), assign every pixel to a
// palette index and report how many pixels each index received.
type Pass[S geometry.Scalar] interface {
	Dither(img grid.Image[S], palette []grid.Pixel[S]) Result[S]
}

// Result is the dither pass's output: per-pixel and per-color bookkeeping.
// The error-diffused working copy of the image is discarded and not
// returned.
type Result[S geometry.Scalar] struct {
	// Assignment[p] is the palette index pixel p was assigned to.
	Assignment []int
	// CountPerColor[c] is the number of pixels assigned to palette index c.
	CountPerColor []int
}

// floydSteinbergWeights are the four diffusion fractions the classic
// Floyd-Steinberg kernel distributes a quantization error to: right,
// below-left, below, below-right.
type weight struct {
	dx, dy int
	frac   float64
}

var floydSteinbergWeights = [4]weight{
	{dx: 1, dy: 0, frac: 7.0 / 16.0},
	{dx: -1, dy: 1, frac: 3.0 / 16.0},
	{dx: 0, dy: 1, frac: 5.0 / 16.0},
	{dx: 1, dy: 1, frac: 1.0 / 16.0},
}

// FloydSteinberg is the standard serpentine-free Floyd-Steinberg ditherer:
// scan left-to-right, top-to-bottom, replace each pixel with its nearest
// palette color, and diffuse the quantization error to not-yet-visited
// neighbors.
type FloydSteinberg[S geometry.Scalar] struct{}

// Dither implements Pass.
func (FloydSteinberg[S]) Dither(img grid.Image[S], palette []grid.Pixel[S]) Result[S] {
	w := int(img.Grid.Width)
	h := int(img.Grid.Height)
	work := make([]grid.Pixel[S], len(img.Pixels))
	copy(work, img.Pixels)

	res := Result[S]{
		Assignment:    make([]int, len(work)),
		CountPerColor: make([]int, len(palette)),
	}
	if len(palette) == 0 {
		return res
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := img.Grid.Index(x, y)
			old := work[idx]

			best := 0
			bestDist := old.Distance(palette[0])
			for c := 1; c < len(palette); c++ {
				d := old.Distance(palette[c])
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			res.Assignment[idx] = best
			res.CountPerColor[best]++

			chosen := palette[best]
			errR := old.R - chosen.R
			errG := old.G - chosen.G
			errB := old.B - chosen.B

			for _, wgt := range floydSteinbergWeights {
				nx, ny := x+wgt.dx, y+wgt.dy
				if !img.Grid.InBounds(nx, ny) {
					continue
				}
				nIdx := img.Grid.Index(nx, ny)
				p := work[nIdx]
				f := S(wgt.frac)
				work[nIdx] = grid.Pixel[S]{
					R: p.R + errR*f,
					G: p.G + errG*f,
					B: p.B + errB*f,
				}
			}
		}
	}

	return res
}
