package preview

import (
	"testing"

	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/nails"
	"github.com/Fepozopo/threadloom/pkg/segtable"
	"github.com/Fepozopo/threadloom/pkg/steplog"
)

// Draw and Update need a live ebiten graphics context to exercise
// meaningfully (ebiten.Image allocation panics without one), so this only
// covers the plain-Go surface: frame publishing and layout sizing.

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
	log := &steplog.Log{Palette: []steplog.Color{{Name: "black"}}}
	idx := table.SegmentIndex(0, nails.LinkA, 2, nails.LinkA)
	log.Append(steplog.Step{ColorIdx: 0, SegIndex: idx, FromNail: 0, FromLink: nails.LinkA, ToNail: 2, ToLink: nails.LinkA})
	return table, log
}

func TestLayoutReturnsFixedGridSize(t *testing.T) {
	g := New[float64](10, 10)
	w, h := g.Layout(1920, 1080)
	if w != 10 || h != 10 {
		t.Fatalf("expected layout (10,10), got (%d,%d)", w, h)
	}
}

func TestPublishSwapsInNonNilFrame(t *testing.T) {
	g := New[float64](10, 10)
	table, log := buildTestLog()

	g.Publish(table, log)

	g.mu.Lock()
	frame := g.frame
	g.mu.Unlock()
	if frame == nil {
		t.Fatal("expected a published frame, got nil")
	}
	if frame.Bounds().Dx() != 10 || frame.Bounds().Dy() != 10 {
		t.Fatalf("expected 10x10 frame, got %v", frame.Bounds())
	}
}

func TestUpdateNeverErrors(t *testing.T) {
	g := New[float64](10, 10)
	if err := g.Update(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
