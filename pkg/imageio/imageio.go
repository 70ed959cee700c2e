// Package imageio turns a source file on disk into the linear-RGB working
// image the engine operates on: decode, EXIF auto-orient, Lanczos3 resize
// to the configured resolution, then sRGB-to-linear conversion.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/Fepozopo/threadloom/pkg/cli"
	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/grid"
	"github.com/Fepozopo/threadloom/pkg/stdimg"
)

// Load reads a source image from disk, auto-orients it via EXIF (handled
// by cli.LoadImage), resizes its longer side to resolution using
// Lanczos3, and returns the working grid plus its linear-RGB pixels.
func Load[S geometry.Scalar](path string, resolution int) (grid.Image[S], error) {
	img, _, err := cli.LoadImage(path)
	if err != nil {
		return grid.Image[S]{}, fmt.Errorf("load source image: %w", err)
	}

	nrgba := stdimg.ToNRGBA(img)
	b := nrgba.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return grid.Image[S]{}, fmt.Errorf("load source image: empty image")
	}

	dstW, dstH := srcW, srcH
	if srcW >= srcH {
		dstW = resolution
		dstH = int(math.Round(float64(resolution) * float64(srcH) / float64(srcW)))
	} else {
		dstH = resolution
		dstW = int(math.Round(float64(resolution) * float64(srcW) / float64(srcH)))
	}
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	resized := stdimg.ResampleLanczos(nrgba, dstW, dstH, 3.0)

	g := grid.Grid{Width: uint(dstW), Height: uint(dstH)}
	pixels := make([]grid.Pixel[S], dstW*dstH)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			off := resized.PixOffset(x, y)
			r8, g8, b8 := resized.Pix[off], resized.Pix[off+1], resized.Pix[off+2]
			pixels[g.Index(x, y)] = grid.Pixel[S]{
				R: sRGBToLinear[S](r8),
				G: sRGBToLinear[S](g8),
				B: sRGBToLinear[S](b8),
			}
		}
	}

	return grid.Image[S]{Grid: g, Pixels: pixels}, nil
}

// DecodeBytes decodes an in-memory encoded image without touching disk.
func DecodeBytes(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image bytes: %w", err)
	}
	return img, nil
}

// sRGBToLinear converts one 8-bit sRGB channel value to a linear-RGB
// S-valued sample in [0,1].
func sRGBToLinear[S geometry.Scalar](c uint8) S {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return S(v / 12.92)
	}
	return S(math.Pow((v+0.055)/1.055, 2.4))
}

// ColorLinear converts a palette entry's 8-bit sRGB triple to linear-RGB,
// matching the conversion applied to the source image.
func ColorLinear[S geometry.Scalar](r, g, b uint8) grid.Pixel[S] {
	return grid.Pixel[S]{R: sRGBToLinear[S](r), G: sRGBToLinear[S](g), B: sRGBToLinear[S](b)}
}
