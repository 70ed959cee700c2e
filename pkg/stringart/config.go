package stringart

import (
	"github.com/Fepozopo/threadloom/pkg/darkness"
	"github.com/Fepozopo/threadloom/pkg/geometry"
	"github.com/Fepozopo/threadloom/pkg/nails"
	"github.com/Fepozopo/threadloom/pkg/scheduler"
	"github.com/Fepozopo/threadloom/pkg/steplog"
)

// TableShapeKind selects the frame the nails are placed on.
type TableShapeKind int

const (
	Ellipse TableShapeKind = iota
	Rectangle
)

// TableShape is the frame shape and its nail count.
type TableShape struct {
	Kind      TableShapeKind
	NailCount int
}

// NailShape selects the per-nail attachment geometry.
type NailShape[S geometry.Scalar] struct {
	Circular bool
	Radius   S // only meaningful when Circular
}

// Handle returns the nails.Kind implementation for this configuration.
func (n NailShape[S]) Handle() nails.Kind[S] {
	if n.Circular {
		return nails.Circular[S]{Radius: n.Radius}
	}
	return nails.PointKind[S]{}
}

// SelectionMode picks which color scheduler policy drives the build.
type SelectionMode int

const (
	SelectSingle SelectionMode = iota
	SelectManual
	SelectAuto
)

// Selection configures the color scheduler. Only the fields relevant to
// Mode are read.
type Selection struct {
	Mode         SelectionMode
	Threads      int // Single, Auto
	ManualGroups []scheduler.ManualGroup
	AutoGroups   []scheduler.AutoGroup
}

// ColorStart is a color's configured starting endpoint; zero value starts
// at nail 0, link A.
type ColorStart struct {
	StartNail int
	StartLink nails.Link
}

// Config is the full set of build parameters for one engine run.
type Config[S geometry.Scalar] struct {
	SourcePath      string
	Resolution      int
	Shape           TableShape
	NailShape       NailShape[S]
	MinNailDistance int
	DarknessMode    darkness.Mode[S]
	Contrast        S
	BlurRadius      int
	Thickness       float64
	Palette         []steplog.Color
	Starts          []ColorStart // indexed by color; may be shorter than Palette (defaults apply)
	Selection       Selection

	// Verbose, if set, is called with a coarse build-stage name and a
	// completion fraction in [0,1].
	Verbose func(stage string, pct float64)

	// OnStep, if set, is called after every step is appended to the log,
	// letting a live-preview window re-render the partial result.
	OnStep func(*steplog.Log)
}

// startFor returns the configured starting endpoint for colorIdx, or the
// zero value (nail 0, link A) if none was configured.
func (c Config[S]) startFor(colorIdx int) ColorStart {
	if colorIdx < len(c.Starts) {
		return c.Starts[colorIdx]
	}
	return ColorStart{}
}
