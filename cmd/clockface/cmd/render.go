package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/snitron/clockface/pkg/clock"
	"github.com/snitron/clockface/pkg/collection"
	"github.com/snitron/clockface/pkg/errors"
	"github.com/snitron/clockface/pkg/graphics"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render clocks to PNG",
		Long: `Render clock faces to PNG files in the output directory.

Without --at every clock is rendered to <output>/<id>.png. The surface size
comes from clockface.yaml (surface.width, surface.height).

Flags:
  --at N          Render only the clock at position N
  --time HH:MM:SS Draw the hands at a fixed time (default: now)
  --out FILE      Output file; requires --at`,
		Usage: "clockface render [--at N] [--time HH:MM:SS] [--out FILE]",
		Run:   runRender,
	})
}

type renderOptions struct {
	at   int
	all  bool
	out  string
	when clock.TimeProvider
}

func parseRenderArgs(args []string) (renderOptions, error) {
	opts := renderOptions{all: true}
	for i := 0; i < len(args); {
		switch flagName(args[i]) {
		case "--at":
			v, n, err := intFlag(args, i, "--at")
			if err != nil {
				return opts, err
			}
			opts.at = v
			opts.all = false
			i += n
		case "--time":
			raw, n, err := stringFlag(args, i, "--time")
			if err != nil {
				return opts, err
			}
			t, err := time.Parse(time.TimeOnly, raw)
			if err != nil {
				return opts, fmt.Errorf("--time: %w", err)
			}
			opts.when = clock.TimeProviderFunc(func() time.Time { return t })
			i += n
		case "--out":
			raw, n, err := stringFlag(args, i, "--out")
			if err != nil {
				return opts, err
			}
			opts.out = raw
			i += n
		default:
			return opts, fmt.Errorf("unknown flag: %s", args[i])
		}
	}
	if opts.out != "" && opts.all {
		return opts, fmt.Errorf("--out requires --at")
	}
	return opts, nil
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}

	p, err := openProject()
	if err != nil {
		return err
	}

	entries := p.clocks.Entries()
	if !opts.all {
		entry, ok := p.clocks.At(opts.at)
		if !ok {
			return &errors.ClockError{
				Op:    "render",
				Kind:  errors.KindInvalidArgument,
				Field: "at",
				Err:   fmt.Errorf("%w: no clock at position %d", errors.ErrInvalidArgument, opts.at),
			}
		}
		entries = []collection.Entry{entry}
	}

	renderer := clock.NewRenderer(graphics.DefaultFontManager())
	size := graphics.Size{Width: float64(p.cfg.Surface.Width), Height: float64(p.cfg.Surface.Height)}
	for _, e := range entries {
		path := opts.out
		if path == "" {
			path = framePath(p.cfg.App.OutputDir, e.ID)
		}
		style := e.Style
		frame := graphics.Record(size, func(c graphics.Canvas) {
			renderer.Render(c, &style, opts.when)
		})
		if err := writePNG(path, rasterize(frame, p.cfg.Surface.Width, p.cfg.Surface.Height)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Rendered %s -> %s\n", e.ID, path)
	}
	return nil
}

func framePath(dir, id string) string {
	return filepath.Join(dir, id+".png")
}

// rasterize replays frame onto a new raster surface.
func rasterize(frame *graphics.DisplayList, width, height int) *graphics.RasterCanvas {
	canvas := graphics.NewRasterCanvas(width, height)
	frame.Paint(canvas)
	return canvas
}

// writePNG encodes canvas to a temporary file next to path and renames it
// into place, so readers never observe a partial frame.
func writePNG(path string, canvas *graphics.RasterCanvas) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap("render.writePNG", errors.KindRender, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap("render.writePNG", errors.KindRender, err)
	}
	defer os.Remove(tmp.Name())
	if err := canvas.EncodePNG(tmp); err != nil {
		tmp.Close()
		return errors.Wrap("render.writePNG", errors.KindRender, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap("render.writePNG", errors.KindRender, err)
	}
	return errors.Wrap("render.writePNG", errors.KindRender, os.Rename(tmp.Name(), path))
}
