// Package render turns a recorded step log into the three output
// contracts described by the engine: an SVG vector drawing, a raster PNG,
// and a plain-text build instruction sheet.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/nails"
	"github.com/Fepozopo/threadloom/pkg/segtable"
	"github.com/Fepozopo/threadloom/pkg/steplog"
)

// linkName renders a Link using the physical-build convention: instructions
// describe building the piece, not tearing it down, so CW/CCW are swapped
// relative to the engine's internal representation.
func linkName(l nails.Link) string {
	if l == nails.LinkA {
		return "CounterClockWise"
	}
	return "ClockWise"
}

// SVG renders the frame and step log to an SVG document. viewBox is
// (0,0,W,H); nails are drawn as circles (for circular nail shapes) or dots,
// then the step log's segments are drawn in reverse build order so that
// early threads appear visually on top.
func SVG[S geometry.Scalar](width, height int, nailList []nails.Point[S], circular bool, table *segtable.Table[S], log *steplog.Log, thickness float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\">\n", width, height)

	for _, n := range nailList {
		r := 2.0
		if circular {
			r = float64(n.Radius)
		}
		fmt.Fprintf(&b, "  <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"black\" />\n", float64(n.Pos.X), float64(n.Pos.Y), r)
	}

	for _, step := range log.Reversed() {
		seg := table.Segments[step.SegIndex].Segment
		col := log.Palette[step.ColorIdx]
		fmt.Fprintf(&b, "  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"rgb(%d,%d,%d)\" stroke-width=\"%g\" />\n",
			float64(seg.Start.X), float64(seg.Start.Y), float64(seg.End.X), float64(seg.End.Y),
			col.R, col.G, col.B, thickness)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// Raster renders the step log to a target-resolution NRGBA image, white
// background, each step's segment scaled and rasterized in reverse build
// order.
func Raster[S geometry.Scalar](gridW, gridH int, targetW, targetH int, table *segtable.Table[S], log *steplog.Log) *image.NRGBA {
	scale := float64(targetH) / float64(gridH)
	if alt := float64(targetW) / float64(gridW); alt < scale {
		scale = alt
	}

	out := image.NewNRGBA(image.Rect(0, 0, targetW, targetH))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < targetH; y++ {
		for x := 0; x < targetW; x++ {
			out.SetNRGBA(x, y, white)
		}
	}

	for _, step := range log.Reversed() {
		seg := table.Segments[step.SegIndex].Segment.Scale(S(scale))
		col := log.Palette[step.ColorIdx]
		c := color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255}
		for _, p := range geometry.Rasterize(seg) {
			if p.X >= 0 && p.Y >= 0 && p.X < targetW && p.Y < targetH {
				out.SetNRGBA(p.X, p.Y, c)
			}
		}
	}

	return out
}

// AnnotateLegend captions each palette color's name and final thread count
// onto the top-left corner of a raster render, one line per color in the
// order Instructions lists them. It mutates and returns img.
func AnnotateLegend(img *image.NRGBA, log *steplog.Log) *image.NRGBA {
	counts := make(map[int]int)
	for _, s := range log.Steps {
		counts[s.ColorIdx]++
	}

	face := basicfont.Face7x13
	const lineHeight = 14
	const margin = 4

	y := margin + face.Metrics().Ascent.Ceil()
	for _, colorIdx := range log.ColorsUsed() {
		col := log.Palette[colorIdx]
		text := fmt.Sprintf("%s: %d", col.Name, counts[colorIdx])

		// A light backing strip keeps the caption legible over a busy
		// render regardless of the thread color drawn beneath it.
		strip := image.Rect(0, y-face.Metrics().Ascent.Ceil(), img.Bounds().Dx(), y+face.Metrics().Descent.Ceil())
		draw.Draw(img, strip, &image.Uniform{C: color.NRGBA{R: 255, G: 255, B: 255, A: 200}}, image.Point{}, draw.Over)

		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255}),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(margin), Y: fixed.I(y)},
		}
		d.DrawString(text)

		y += lineHeight
	}

	return img
}

// EncodePNG encodes img as a PNG into a byte buffer.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode raster png: %w", err)
	}
	return buf.Bytes(), nil
}

// Instructions produces the plain-text build sheet: one initial
// attach-point line per distinct color used, followed by every reversed
// step's "from" endpoint.
func Instructions(log *steplog.Log) string {
	var b strings.Builder

	reversed := log.Reversed()
	for _, colorIdx := range log.ColorsUsed() {
		for _, s := range reversed {
			if s.ColorIdx == colorIdx {
				fmt.Fprintf(&b, "%s %d %s\n", log.Palette[colorIdx].Name, s.ToNail, linkName(s.ToLink))
				break
			}
		}
	}

	for _, s := range reversed {
		fmt.Fprintf(&b, "%s %d %s\n", log.Palette[s.ColorIdx].Name, s.FromNail, linkName(s.FromLink))
	}

	return b.String()
}
