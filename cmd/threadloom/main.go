// Command threadloom is the interactive string-art build CLI: pick a
// source image, bake a nail/segment table, run the greedy line search, and
// write the result out as SVG, a raster PNG preview, and stringing
// instructions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Fepozopo/threadloom/pkg/cli"
	"github.com/Fepozopo/threadloom/pkg/darkness"
	"github.com/Fepozopo/threadloom/pkg/render"
	"github.com/Fepozopo/threadloom/pkg/stdimg"
	"github.com/Fepozopo/threadloom/pkg/steplog"
	"github.com/Fepozopo/threadloom/pkg/stringart"
)

var (
	resolution = flag.Int("resolution", 500, "longer-side pixel resolution of the working grid")
	nailCount  = flag.Int("nails", 200, "number of nails placed around the frame")
	rectangle  = flag.Bool("rectangle", false, "place nails on a rectangular frame instead of an ellipse")
	minDist    = flag.Int("min-distance", 20, "minimum nail-index separation between two ends of a line")
	circular   = flag.Bool("circular-nails", false, "treat nails as circular pegs with a wrap radius instead of points")
	nailRadius = flag.Float64("nail-radius", 0.1, "nail peg radius in pixels, only used with -circular-nails")
	palette    = flag.String("palette", "000000", "comma separated list of name:rrggbb or rrggbb palette colors")
	contrast   = flag.Float64("contrast", 0.5, "blend weight between the blurred seed and the per-pixel contrast term, in [0,1]")
	blurRadius = flag.Int("blur-radius", 2, "binomial blur radius used to seed each color's weight map")
	thickness  = flag.Float64("thickness", 1.0, "SVG line stroke width")
	darknessF  = flag.String("darkness", "percentage:0.15", "darkness falloff: flat:<delta> or percentage:<rho>")
	lines      = flag.Int("lines", 2000, "number of lines to draw")
	out        = flag.String("out", "", "output basename; if set, build once non-interactively and write <out>.svg/.png/.txt")
)

func main() {
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	buildFn := func(sourcePath string) (cli.BuildResult, error) {
		c := cfg
		c.SourcePath = sourcePath
		return runBuild(c)
	}

	if *out != "" {
		if flag.NArg() < 1 {
			log.Fatal("usage: threadloom -out=<basename> <source-image>")
		}
		result, err := buildFn(flag.Arg(0))
		if err != nil {
			log.Fatalf("build failed: %v", err)
		}
		if err := writeOutputs(*out, result); err != nil {
			log.Fatalf("failed to write outputs: %v", err)
		}
		fmt.Printf("wrote %s.svg, %s.txt, %s.png\n", *out, *out, *out)
		return
	}

	cli.RunCLI(buildFn)
}

func buildConfig() (stringart.Config[float64], error) {
	pal, err := parsePalette(*palette)
	if err != nil {
		return stringart.Config[float64]{}, err
	}

	dark, err := parseDarkness(*darknessF)
	if err != nil {
		return stringart.Config[float64]{}, err
	}

	shape := stringart.TableShape{Kind: stringart.Ellipse, NailCount: *nailCount}
	if *rectangle {
		shape.Kind = stringart.Rectangle
	}

	return stringart.Config[float64]{
		Resolution:      *resolution,
		Shape:           shape,
		NailShape:       stringart.NailShape[float64]{Circular: *circular, Radius: *nailRadius},
		MinNailDistance: *minDist,
		DarknessMode:    dark,
		Contrast:        *contrast,
		BlurRadius:      *blurRadius,
		Thickness:       *thickness,
		Palette:         pal,
		Selection:       stringart.Selection{Mode: stringart.SelectSingle, Threads: *lines},
	}, nil
}

func runBuild(cfg stringart.Config[float64]) (cli.BuildResult, error) {
	eng, err := stringart.Build[float64](context.Background(), cfg)
	if err != nil {
		return cli.BuildResult{}, err
	}

	nailList := eng.Nails
	svg := render.SVG[float64](cfg.Resolution, cfg.Resolution, nailList, cfg.NailShape.Circular, eng.Table, eng.Log, cfg.Thickness)
	raster := render.Raster[float64](cfg.Resolution, cfg.Resolution, cfg.Resolution, cfg.Resolution, eng.Table, eng.Log)
	raster = render.AnnotateLegend(raster, eng.Log)
	instructions := render.Instructions(eng.Log)

	return cli.BuildResult{SVG: svg, Instructions: instructions, Raster: raster}, nil
}

func writeOutputs(base string, result cli.BuildResult) error {
	if err := writeFile(base+".svg", result.SVG); err != nil {
		return err
	}
	if err := writeFile(base+".txt", result.Instructions); err != nil {
		return err
	}
	if result.Raster != nil {
		if err := cli.SaveImage(base+".png", result.Raster); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// parsePalette accepts "name:rrggbb" or bare "rrggbb" entries separated by
// commas. Bare entries are named after their hex code.
func parsePalette(spec string) ([]steplog.Color, error) {
	parts := strings.Split(spec, ",")
	colors := make([]steplog.Color, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name := p
		spec := p
		if idx := strings.Index(p, ":"); idx >= 0 {
			name = p[:idx]
			spec = p[idx+1:]
		}
		if _, perr := strconv.ParseUint(spec, 16, 32); perr == nil && len(spec) == 6 {
			spec = "#" + spec
		}
		c, err := stdimg.ParseColor(spec)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", p, err)
		}
		colors = append(colors, steplog.Color{Name: name, R: c.R, G: c.G, B: c.B})
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("palette must name at least one color")
	}
	return colors, nil
}

func parseDarkness(spec string) (darkness.Mode[float64], error) {
	kind, param, found := strings.Cut(spec, ":")
	if !found {
		return nil, fmt.Errorf("expected kind:param, got %q", spec)
	}
	v, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return nil, fmt.Errorf("darkness param: %w", err)
	}
	switch kind {
	case "flat":
		return darkness.Flat[float64]{Delta: v}, nil
	case "percentage":
		return darkness.Percentage[float64]{Rho: v}, nil
	default:
		return nil, fmt.Errorf("unknown darkness kind %q", kind)
	}
}
