// Command threadloom-watch runs a string-art build while displaying its
// progress live in an ebiten window, redrawing the raster render after
// every line the engine chooses.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/Fepozopo/threadloom/pkg/darkness"
	"github.com/Fepozopo/threadloom/pkg/preview"
	"github.com/Fepozopo/threadloom/pkg/steplog"
	"github.com/Fepozopo/threadloom/pkg/stringart"
)

var (
	source     = flag.String("source", "", "path to the source image")
	resolution = flag.Int("resolution", 400, "longer-side pixel resolution of the working grid")
	nailCount  = flag.Int("nails", 200, "number of nails placed around the frame")
	minDist    = flag.Int("min-distance", 20, "minimum nail-index separation between two ends of a line")
	lines      = flag.Int("lines", 2000, "number of lines to draw")
	darknessF  = flag.Float64("darkness", 0.15, "percentage darkness falloff rho applied to a line's pixels each time it's drawn")
)

func main() {
	flag.Parse()
	if *source == "" {
		log.Fatal("usage: threadloom-watch -source=<image path>")
	}

	cfg := stringart.Config[float64]{
		SourcePath:      *source,
		Resolution:      *resolution,
		Shape:           stringart.TableShape{Kind: stringart.Ellipse, NailCount: *nailCount},
		MinNailDistance: *minDist,
		DarknessMode:    darkness.Percentage[float64]{Rho: *darknessF},
		Contrast:        0.5,
		BlurRadius:      2,
		Thickness:       1,
		Palette:         []steplog.Color{{Name: "black", R: 0, G: 0, B: 0}},
		Selection:       stringart.Selection{Mode: stringart.SelectSingle, Threads: *lines},
	}

	eng, sched, err := stringart.Setup(cfg)
	if err != nil {
		log.Fatalf("setup failed: %v", err)
	}

	game := preview.New[float64](cfg.Resolution, cfg.Resolution)
	eng.OnStep = func(l *steplog.Log) {
		game.Publish(eng.Table, l)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := preview.Run(ctx, game, func(ctx context.Context) error {
		return eng.Run(ctx, sched)
	}); err != nil {
		log.Fatalf("build failed: %v", err)
	}
}
