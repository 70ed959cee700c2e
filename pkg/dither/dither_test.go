package dither

import (
	"testing"

	"github.com/Fepozopo/threadloom/pkg/grid"
)

func TestFloydSteinbergAssignsNearestColor(t *testing.T) {
	g := grid.Grid{Width: 2, Height: 1}
	img := grid.Image[float64]{
		Grid: g,
		Pixels: []grid.Pixel[float64]{
			{R: 0.95, G: 0.95, B: 0.95},
			{R: 0.05, G: 0.05, B: 0.05},
		},
	}
	palette := []grid.Pixel[float64]{
		{R: 0, G: 0, B: 0},
		{R: 1, G: 1, B: 1},
	}
	res := FloydSteinberg[float64]{}.Dither(img, palette)
	if res.Assignment[0] != 1 {
		t.Fatalf("expected bright pixel assigned to white (1), got %d", res.Assignment[0])
	}
	if res.CountPerColor[1] < 1 {
		t.Fatalf("expected at least one pixel counted for white")
	}
}

func TestFloydSteinbergEmptyPalette(t *testing.T) {
	g := grid.Grid{Width: 1, Height: 1}
	img := grid.Image[float64]{Grid: g, Pixels: []grid.Pixel[float64]{{}}}
	res := FloydSteinberg[float64]{}.Dither(img, nil)
	if len(res.CountPerColor) != 0 {
		t.Fatalf("expected no color counts for empty palette")
	}
}
