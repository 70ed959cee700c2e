package render

import (
	"strings"
	"testing"

	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/nails"
	"github.com/Fepozopo/threadloom/pkg/segtable"
	"github.com/Fepozopo/threadloom/pkg/steplog"
)

func buildTestLog() (*segtable.Table[float64], *steplog.Log) {
	nailList := []nails.Point[float64]{
		{Pos: geometry.Point[float64]{X: 0, Y: 0}},
		{Pos: geometry.Point[float64]{X: 10, Y: 0}},
		{Pos: geometry.Point[float64]{X: 10, Y: 10}},
		{Pos: geometry.Point[float64]{X: 0, Y: 10}},
	}
	table, err := segtable.Build(nailList, nails.PointKind[float64]{}, 1)
	if err != nil {
		panic(err)
	}

	log := &steplog.Log{
		Palette: []steplog.Color{{Name: "black", R: 0, G: 0, B: 0}},
	}
	idx := table.SegmentIndex(0, nails.LinkA, 2, nails.LinkA)
	log.Append(steplog.Step{ColorIdx: 0, SegIndex: idx, FromNail: 0, FromLink: nails.LinkA, ToNail: 2, ToLink: nails.LinkA})
	return table, log
}

func TestSVGContainsLineAndCircle(t *testing.T) {
	nailList := []nails.Point[float64]{
		{Pos: geometry.Point[float64]{X: 0, Y: 0}},
		{Pos: geometry.Point[float64]{X: 10, Y: 0}},
		{Pos: geometry.Point[float64]{X: 10, Y: 10}},
		{Pos: geometry.Point[float64]{X: 0, Y: 10}},
	}
	table, log := buildTestLog()
	out := SVG(10, 10, nailList, false, table, log, 1.0)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "<line") || !strings.Contains(out, "<circle") {
		t.Fatalf("expected svg/line/circle elements, got: %s", out)
	}
}

func TestRasterProducesNonEmptyImage(t *testing.T) {
	table, log := buildTestLog()
	img := Raster(10, 10, 20, 20, table, log)
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Fatalf("expected 20x20 image, got %v", img.Bounds())
	}
}

func TestAnnotateLegendDrawsNonWhitePixels(t *testing.T) {
	table, log := buildTestLog()
	img := Raster(10, 10, 40, 40, table, log)
	AnnotateLegend(img, log)

	found := false
	for y := 0; y < 14 && !found; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			c := img.NRGBAAt(x, y)
			if c.R != 255 || c.G != 255 || c.B != 255 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("expected legend text to paint non-white pixels in the caption strip")
	}
}

func TestInstructionsHeaderThenReversedFromLines(t *testing.T) {
	table, log := buildTestLog()
	_ = table
	// the log holds a single step: one header line, then one from-line
	idx := log.Palette[0]
	_ = idx
	out := Instructions(log)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines (1 header + 1 from-line), got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "black 2 ") {
		t.Fatalf("expected header to reference to_nail=2, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "black 0 ") {
		t.Fatalf("expected from-line to reference from_nail=0, got %q", lines[1])
	}
}
