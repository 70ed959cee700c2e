package stringart

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/Fepozopo/threadloom/pkg/darkness"
	"github.com/Fepozopo/threadloom/pkg/steplog"
)

func writeTestPNG(t *testing.T, size int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: 128})
		}
	}
	f, err := os.CreateTemp("", "threadloom-test-*.png")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}

func tinyMonoConfig(t *testing.T) Config[float64] {
	return Config[float64]{
		SourcePath:      writeTestPNG(t, 8),
		Resolution:      8,
		Shape:           TableShape{Kind: Ellipse, NailCount: 8},
		NailShape:       NailShape[float64]{Circular: true, Radius: 0.1},
		MinNailDistance: 2,
		DarknessMode:    darkness.Percentage[float64]{Rho: 0.9},
		Contrast:        0.5,
		BlurRadius:      1,
		Thickness:       1,
		Palette:         []steplog.Color{{Name: "black", R: 0, G: 0, B: 0}},
		Selection:       Selection{Mode: SelectSingle, Threads: 4},
	}
}

func TestBuildTinyMonoProducesFourDistinctSegments(t *testing.T) {
	cfg := tinyMonoConfig(t)
	defer os.Remove(cfg.SourcePath)

	eng, err := Build[float64](context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(eng.Log.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(eng.Log.Steps))
	}
	seen := map[int]bool{}
	for _, s := range eng.Log.Steps {
		if seen[s.SegIndex] {
			t.Fatalf("segment index %d reused across steps", s.SegIndex)
		}
		seen[s.SegIndex] = true
	}
}

func TestBuildRejectsEmptyPalette(t *testing.T) {
	cfg := tinyMonoConfig(t)
	defer os.Remove(cfg.SourcePath)
	cfg.Palette = nil

	if _, err := Build[float64](context.Background(), cfg); err == nil {
		t.Fatal("expected ErrEmptyPalette, got nil")
	} else if _, ok := err.(ErrEmptyPalette); !ok {
		t.Fatalf("expected ErrEmptyPalette, got %T: %v", err, err)
	}
}

func TestBuildRejectsNailCountNotMultipleOf4ForRectangle(t *testing.T) {
	cfg := tinyMonoConfig(t)
	defer os.Remove(cfg.SourcePath)
	cfg.Shape = TableShape{Kind: Rectangle, NailCount: 9}

	if _, err := Build[float64](context.Background(), cfg); err == nil {
		t.Fatal("expected ErrNailCountNotMultipleOf4, got nil")
	} else if _, ok := err.(ErrNailCountNotMultipleOf4); !ok {
		t.Fatalf("expected ErrNailCountNotMultipleOf4, got %T: %v", err, err)
	}
}

func TestBuildRejectsInvalidInitialNail(t *testing.T) {
	cfg := tinyMonoConfig(t)
	defer os.Remove(cfg.SourcePath)
	cfg.Starts = []ColorStart{{StartNail: 100}}

	if _, err := Build[float64](context.Background(), cfg); err == nil {
		t.Fatal("expected ErrInvalidInitialNail, got nil")
	} else if _, ok := err.(ErrInvalidInitialNail); !ok {
		t.Fatalf("expected ErrInvalidInitialNail, got %T: %v", err, err)
	}
}

func TestBuildCancelledContextStopsEarly(t *testing.T) {
	cfg := tinyMonoConfig(t)
	defer os.Remove(cfg.SourcePath)
	cfg.Selection.Threads = 1000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Build[float64](ctx, cfg); err == nil {
		t.Fatal("expected cancellation error, got nil")
	}
}

func TestSetupThenRunMatchesBuild(t *testing.T) {
	cfg := tinyMonoConfig(t)
	defer os.Remove(cfg.SourcePath)

	eng, sched, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	var steps int
	eng.OnStep = func(l *steplog.Log) { steps = len(l.Steps) }
	if err := eng.Run(context.Background(), sched); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if steps != len(eng.Log.Steps) {
		t.Fatalf("OnStep observed %d steps but log has %d", steps, len(eng.Log.Steps))
	}
	if len(eng.Log.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(eng.Log.Steps))
	}
}
