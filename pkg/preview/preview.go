// Package preview implements the live-preview ebiten.Game that displays a
// string-art build as it progresses, redrawing the raster render each time
// the engine reports a new step count.
package preview

import (
	"context"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/render"
	"github.com/Fepozopo/threadloom/pkg/segtable"
	"github.com/Fepozopo/threadloom/pkg/steplog"
)

// Game is the ebiten.Game driving the preview window. It holds no engine
// logic of its own: Draw rasterizes whatever step log state the engine
// goroutine last published.
type Game[S geometry.Scalar] struct {
	width, height int

	mu     sync.Mutex
	frame  *image.NRGBA
	nailsW int
	nailsH int
}

// New creates a preview Game for a width x height working grid.
func New[S geometry.Scalar](width, height int) *Game[S] {
	return &Game[S]{width: width, height: height}
}

// Publish re-rasterizes the current step log and swaps it in as the next
// frame to draw. Safe to call from the engine's build goroutine while
// ebiten drives Draw/Update on the main goroutine.
func (g *Game[S]) Publish(table *segtable.Table[S], log *steplog.Log) {
	img := render.Raster[S](g.width, g.height, g.width, g.height, table, log)
	g.mu.Lock()
	g.frame = img
	g.mu.Unlock()
}

// Layout returns the fixed working-grid resolution so ebiten scales the
// window rather than the engine redrawing at arbitrary sizes.
func (g *Game[S]) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Draw blits the most recently published frame onto the screen.
func (g *Game[S]) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	frame := g.frame
	g.mu.Unlock()
	if frame == nil {
		return
	}
	b := frame.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			screen.Set(x, y, frame.At(x, y))
		}
	}
}

// Update is required by ebiten.Game; the build runs on its own goroutine
// driven by context cancellation, not by ebiten's tick.
func (g *Game[S]) Update() error {
	return nil
}

// Run blocks running the build loop against ctx in a background goroutine
// while ebiten drives the window on the calling goroutine. runFn is
// expected to invoke Engine.Run after wiring Engine.OnStep to call
// g.Publish, so each step becomes visible on screen as it's chosen.
func Run[S geometry.Scalar](ctx context.Context, g *Game[S], runFn func(ctx context.Context) error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- runFn(ctx)
	}()

	if err := ebiten.RunGame(g); err != nil {
		return err
	}

	return <-errCh
}
