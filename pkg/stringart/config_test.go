package stringart

import (
	"testing"

	"github.com/Fepozopo/threadloom/pkg/nails"
)

func TestStartForDefaultsToNailZeroLinkA(t *testing.T) {
	cfg := Config[float64]{}
	got := cfg.startFor(0)
	if got.StartNail != 0 || got.StartLink != nails.LinkA {
		t.Fatalf("expected default start, got %+v", got)
	}
}

func TestStartForUsesConfiguredEntry(t *testing.T) {
	cfg := Config[float64]{Starts: []ColorStart{{StartNail: 3, StartLink: nails.LinkB}}}
	got := cfg.startFor(0)
	if got.StartNail != 3 || got.StartLink != nails.LinkB {
		t.Fatalf("expected configured start, got %+v", got)
	}
	// Colors past the end of Starts fall back to the default.
	fallback := cfg.startFor(1)
	if fallback.StartNail != 0 || fallback.StartLink != nails.LinkA {
		t.Fatalf("expected default fallback for unconfigured color, got %+v", fallback)
	}
}

func TestNailShapeHandleSelectsCircularOrPoint(t *testing.T) {
	circ := NailShape[float64]{Circular: true, Radius: 0.2}
	if _, ok := circ.Handle().(nails.Circular[float64]); !ok {
		t.Fatalf("expected nails.Circular, got %T", circ.Handle())
	}

	pt := NailShape[float64]{Circular: false}
	if _, ok := pt.Handle().(nails.PointKind[float64]); !ok {
		t.Fatalf("expected nails.PointKind, got %T", pt.Handle())
	}
}
