// Package stringart drives the build loop: place nails, bake segments,
// seed color weight maps, then repeatedly schedule a color, search for its
// best unused line, darken its weights, and record the step.
package stringart

import (
	"context"
	"fmt"

	"github.com/Fepozopo/threadloom/pkg/colormap"
	"github.com/Fepozopo/threadloom/pkg/darkness"
	"github.com/Fepozopo/threadloom/pkg/dither"
	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/grid"
	"github.com/Fepozopo/threadloom/pkg/imageio"
	"github.com/Fepozopo/threadloom/pkg/nails"
	"github.com/Fepozopo/threadloom/pkg/scheduler"
	"github.com/Fepozopo/threadloom/pkg/search"
	"github.com/Fepozopo/threadloom/pkg/segtable"
	"github.com/Fepozopo/threadloom/pkg/steplog"
)

// Engine owns every piece of state the build loop touches: the baked
// segment table, one weight map per color, the working image, and the
// growing step log.
type Engine[S geometry.Scalar] struct {
	Nails  []nails.Point[S]
	Handle nails.Kind[S]
	Table  *segtable.Table[S]
	Image  grid.Image[S]
	Colors []colormap.Map[S]
	Log    *steplog.Log
	Buf    grid.PixelIndexBuffer
	Segs   []grid.PrecomputedSegment
	Dark   darkness.Mode[S]
	OnStep func(*steplog.Log)
}

// Build validates cfg, constructs the engine state, and runs the
// scheduler/search/darkness loop to completion. It checks ctx at each
// fork/join boundary so long builds can be cancelled between iterations;
// the core loop itself has no suspension points beyond that, matching
// the single fork-join barrier per iteration described for the search.
func Build[S geometry.Scalar](ctx context.Context, cfg Config[S]) (*Engine[S], error) {
	eng, sched, err := Setup(cfg)
	if err != nil {
		return nil, err
	}
	if err := eng.Run(ctx, sched); err != nil {
		return nil, err
	}
	return eng, nil
}

// Setup validates cfg and constructs the engine state (nail placement,
// baked segment table, seeded color weight maps) and the color scheduler,
// without running the build loop. Callers that want to observe
// intermediate steps (e.g. a live-preview window) call Setup, wire
// Engine.OnStep, then call Engine.Run themselves.
func Setup[S geometry.Scalar](cfg Config[S]) (*Engine[S], scheduler.Schedule, error) {
	if len(cfg.Palette) == 0 {
		return nil, nil, ErrEmptyPalette{}
	}

	nailList, err := placeNails(cfg)
	if err != nil {
		return nil, nil, err
	}
	handle := cfg.NailShape.Handle()

	for ci := range cfg.Palette {
		start := cfg.startFor(ci)
		if start.StartNail >= len(nailList) {
			return nil, nil, ErrInvalidInitialNail{ColorIdx: ci, StartNail: start.StartNail, NailCount: len(nailList)}
		}
	}

	table, err := segtable.Build(nailList, handle, cfg.MinNailDistance)
	if err != nil {
		return nil, nil, err
	}

	img, err := imageio.Load[S](cfg.SourcePath, cfg.Resolution)
	if err != nil {
		return nil, nil, ErrImageLoadFailure{Reason: err}
	}
	report(cfg, "load", 0.1)

	palette := make([]grid.Pixel[S], len(cfg.Palette))
	for i, c := range cfg.Palette {
		palette[i] = imageio.ColorLinear[S](c.R, c.G, c.B)
	}

	ditherRes := dither.FloydSteinberg[S]{}.Dither(img, palette)
	report(cfg, "dither", 0.2)

	grayscale := len(cfg.Palette) == 1
	colors := make([]colormap.Map[S], len(cfg.Palette))
	for i := range cfg.Palette {
		start := cfg.startFor(i)
		colors[i] = colormap.New(img, ditherRes.Assignment, i, colormap.Params[S]{
			ColorLinear: palette[i],
			Grayscale:   grayscale,
			StartNail:   start.StartNail,
			StartLink:   start.StartLink,
			BlurRadius:  cfg.BlurRadius,
			Contrast:    cfg.Contrast,
		})
	}
	report(cfg, "weights", 0.3)

	var buf grid.PixelIndexBuffer
	segs := make([]grid.PrecomputedSegment, len(table.Segments))
	for i, baked := range table.Segments {
		segs[i] = grid.Add(&buf, img.Grid, baked.Segment)
	}
	report(cfg, "precompute", 0.35)

	eng := &Engine[S]{
		Nails:  nailList,
		Handle: handle,
		Table:  table,
		Image:  img,
		Colors: colors,
		Log:    &steplog.Log{Palette: cfg.Palette},
		Buf:    buf,
		Segs:   segs,
		Dark:   cfg.DarknessMode,
		OnStep: cfg.OnStep,
	}

	sched, err := buildScheduler(cfg, ditherRes.CountPerColor)
	if err != nil {
		return nil, nil, err
	}

	return eng, sched, nil
}

func report[S geometry.Scalar](cfg Config[S], stage string, pct float64) {
	if cfg.Verbose != nil {
		cfg.Verbose(stage, pct)
	}
}

func placeNails[S geometry.Scalar](cfg Config[S]) ([]nails.Point[S], error) {
	switch cfg.Shape.Kind {
	case Rectangle:
		if cfg.Shape.NailCount <= 0 || cfg.Shape.NailCount%4 != 0 {
			return nil, ErrNailCountNotMultipleOf4{NailCount: cfg.Shape.NailCount}
		}
		w, h := S(cfg.Resolution), S(cfg.Resolution)
		return nails.PlaceRectangle(w, h, cfg.Shape.NailCount, cfg.NailShape.Radius), nil
	default:
		w, h := S(cfg.Resolution), S(cfg.Resolution)
		return nails.PlaceEllipse(w, h, cfg.Shape.NailCount, cfg.NailShape.Radius), nil
	}
}

func buildScheduler[S geometry.Scalar](cfg Config[S], countPerColor []int) (scheduler.Schedule, error) {
	switch cfg.Selection.Mode {
	case SelectManual:
		m, err := scheduler.NewManual(cfg.Selection.ManualGroups, len(cfg.Palette))
		if err != nil {
			return nil, ErrInvalidGroupIndex{}
		}
		return m, nil
	case SelectAuto:
		a, err := scheduler.NewAuto(cfg.Selection.AutoGroups, countPerColor, cfg.Selection.Threads)
		if err != nil {
			return nil, ErrInvalidGroupIndex{}
		}
		return a, nil
	default:
		return &singleCounter{remaining: cfg.Selection.Threads}, nil
	}
}

// singleCounter implements scheduler.Schedule for the Single mode: a
// remaining thread counter that always targets color 0.
type singleCounter struct {
	remaining int
}

func (s *singleCounter) Next() (int, bool) {
	if s.remaining <= 0 {
		return 0, false
	}
	s.remaining--
	return 0, true
}

// Run executes the C7->C8->C9->C3->C10 loop until the scheduler is
// exhausted or no admissible unused candidate remains.
func (e *Engine[S]) Run(ctx context.Context, sched scheduler.Schedule) error {
	links := e.Handle.Links()
	pixelsFor := search.PixelSourceFromBuffer(&e.Buf, e.Segs)

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("string art build cancelled: %w", ctx.Err())
		default:
		}

		colorIdx, ok := sched.Next()
		if !ok {
			return nil
		}

		cm := &e.Colors[colorIdx]
		result := search.Find[S](e.Table, pixelsFor, cm.Weights, cm.CurrentNail, cm.CurrentLink, links)
		if !result.Found {
			return nil
		}

		cand := result.Candidate
		pixels := pixelsFor(cand.SegIndex)
		for _, p := range pixels {
			cm.Weights[p] = e.Dark.Compute(cm.Weights[p])
		}

		e.Table.MarkUsed(cand.SegIndex)

		fromNail, fromLink := cm.CurrentNail, cm.CurrentLink
		cm.CurrentNail = cand.ToNail
		cm.CurrentLink = e.Handle.NextLink(cand.ToLink)

		e.Log.Append(steplog.Step{
			ColorIdx: colorIdx,
			SegIndex: cand.SegIndex,
			FromNail: fromNail,
			FromLink: fromLink,
			ToNail:   cand.ToNail,
			ToLink:   cand.ToLink,
		})

		if e.OnStep != nil {
			e.OnStep(e.Log)
		}
	}
}
