// Package colormap builds and owns the per-color residual weight maps that
// drive line selection: one map per palette color, seeded from the dither
// pass and the source image, shaped by a separable blur and a contrast
// blend.
package colormap

import (
	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/grid"
	"github.com/Fepozopo/threadloom/pkg/nails"
)

// maxRGBDistance is the literal constant 3 that recurs throughout spec
// section 4.2: the fixed-high value dithered pixels are seeded with, and
// the constant the demand term is subtracted from. It is not the true
// Euclidean black-to-white distance (sqrt(3)) — the spec deliberately uses
// 3 as a round upper bound.
const maxRGBDistance = 3

// Map is one palette color's residual-weight image, plus the endpoint at
// which its next thread must start.
type Map[S geometry.Scalar] struct {
	Weights     []S
	CurrentNail int
	CurrentLink nails.Link

	// ColorLinear is the linear-RGB color the weights were built against
	// (zeroed in grayscale mode). The search and darkness steps read only
	// Weights, not this field.
	ColorLinear grid.Pixel[S]
}

// Params bundles the per-color construction inputs from spec section 4.2.
type Params[S geometry.Scalar] struct {
	ColorLinear grid.Pixel[S]
	// Grayscale forces color_linear=(0,0,0), used when only one color is
	// selected (spec section 4.2's single-color special case).
	Grayscale bool
	StartNail int
	StartLink nails.Link
	BlurRadius int
	Contrast   S // alpha in [0,1]
}

// New constructs one color's weight map: seed from dither assignment,
// separable binomial blur, then blend against image-distance demand.
func New[S geometry.Scalar](img grid.Image[S], assignment []int, colorIdx int, p Params[S]) Map[S] {
	w := int(img.Grid.Width)
	h := int(img.Grid.Height)
	n := w * h

	weights := make([]S, n)
	for i, a := range assignment {
		if a == colorIdx {
			weights[i] = S(maxRGBDistance)
		}
	}

	weights = blurSeparable(weights, w, h, p.BlurRadius)

	colorLinear := p.ColorLinear
	if p.Grayscale {
		colorLinear = grid.Pixel[S]{}
	}

	alpha := p.Contrast
	for i := range weights {
		demand := S(maxRGBDistance) - img.Pixels[i].Distance(colorLinear)
		weights[i] = alpha*weights[i] + (1-alpha)*demand
	}

	return Map[S]{
		Weights:     weights,
		CurrentNail: p.StartNail,
		CurrentLink: p.StartLink,
		ColorLinear: colorLinear,
	}
}

// blurSeparable applies a 1-D binomial blur of the given radius
// horizontally then vertically, with replicate (clamp-to-edge) boundary
// handling. radius=0 is a no-op.
func blurSeparable[S geometry.Scalar](src []S, w, h, radius int) []S {
	if radius <= 0 {
		out := make([]S, len(src))
		copy(out, src)
		return out
	}
	kernel := binomialKernel[S](radius)

	tmp := make([]S, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum S
			for k := -radius; k <= radius; k++ {
				sx := clamp(x+k, 0, w-1)
				sum += src[y*w+sx] * kernel[k+radius]
			}
			tmp[y*w+x] = sum
		}
	}

	out := make([]S, len(src))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var sum S
			for k := -radius; k <= radius; k++ {
				sy := clamp(y+k, 0, h-1)
				sum += tmp[sy*w+x] * kernel[k+radius]
			}
			out[y*w+x] = sum
		}
	}
	return out
}

// binomialKernel returns the length-(2r+1) kernel C(2r,i)/2^(2r), the
// "triangular (binomial-like) blur" of spec section 4.2.
func binomialKernel[S geometry.Scalar](r int) []S {
	n := 2 * r
	coeffs := make([]float64, n+1)
	coeffs[0] = 1
	for i := 1; i <= n; i++ {
		coeffs[i] = coeffs[i-1] * float64(n-i+1) / float64(i)
	}
	denom := pow2(n)
	out := make([]S, n+1)
	for i, c := range coeffs {
		out[i] = S(c / denom)
	}
	return out
}

func pow2(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 2
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
