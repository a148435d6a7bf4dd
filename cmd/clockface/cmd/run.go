package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/snitron/clockface/cmd/clockface/internal/observability"
	"github.com/snitron/clockface/pkg/clock"
	"github.com/snitron/clockface/pkg/engine"
	"github.com/snitron/clockface/pkg/errors"
	"github.com/snitron/clockface/pkg/graphics"
	"github.com/snitron/clockface/pkg/scheduler"
	"github.com/snitron/clockface/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Keep clocks ticking and write frames",
		Long: `Attach every clock in the collection and keep them running.

Each clock's redraw scheduler requests repaints at the clock's redraw
interval. Repaints run on a single host loop, which writes the current face
of the clock to <output>/<id>.png. All schedulers share one timer goroutine.

The command runs until interrupted or until --duration elapses, then prints
a summary of frames, ticks and renders.

Flags:
  --duration D    Stop after D (for example 30s); 0 runs until interrupted`,
		Usage: "clockface run [--duration D]",
		Run:   runRun,
	})
}

func parseRunArgs(args []string) (time.Duration, error) {
	var duration time.Duration
	for i := 0; i < len(args); {
		switch flagName(args[i]) {
		case "--duration":
			raw, n, err := stringFlag(args, i, "--duration")
			if err != nil {
				return 0, err
			}
			d, err := time.ParseDuration(raw)
			if err != nil {
				return 0, fmt.Errorf("--duration: %w", err)
			}
			if d < 0 {
				return 0, errors.NonNegative("run", "duration", d)
			}
			duration = d
			i += n
		default:
			return 0, fmt.Errorf("unknown flag: %s", args[i])
		}
	}
	return duration, nil
}

func runRun(args []string) error {
	duration, err := parseRunArgs(args)
	if err != nil {
		return err
	}

	p, err := openProject()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	metrics := observability.InitMetrics(observability.MetricsConfig{
		ServiceName:    p.cfg.App.Name,
		ServiceVersion: Version,
	})
	defer func() {
		if err := metrics.Shutdown(context.Background()); err != nil {
			p.logger.Warn("metrics shutdown failed", "error", err)
		}
	}()

	host := engine.NewHost()
	executor := scheduler.NewWorkerExecutor()
	defer executor.Close()
	renderer := clock.NewRenderer(graphics.DefaultFontManager())

	entries := p.clocks.Entries()
	clocks := make([]*widgets.Clock, 0, len(entries))
	defer func() {
		for _, c := range clocks {
			c.Dispose()
		}
	}()

	for _, e := range entries {
		opts := e.Style.Options()
		path := framePath(p.cfg.App.OutputDir, e.ID)

		var w *widgets.Clock
		w, err = widgets.NewClock(widgets.Config{
			Options:       &opts,
			Executor:      executor,
			Renderer:      renderer,
			Dispatcher:    host,
			MeterProvider: metrics.MeterProvider(),
			OnRepaint: func() {
				paintFrame(w, path, p.cfg.Surface.Width, p.cfg.Surface.Height)
			},
		})
		if err != nil {
			return err
		}
		clocks = append(clocks, w)
		paintFrame(w, path, p.cfg.Surface.Width, p.cfg.Surface.Height)
		w.Attach()
	}

	p.logger.Info("running",
		"clocks", len(clocks),
		"output", p.cfg.App.OutputDir,
		"duration", duration,
	)

	g, gctx := errgroup.WithContext(ctx)

	// Goroutine 1: host loop, where every repaint runs.
	g.Go(func() error {
		err := host.Run(gctx)
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})

	// Goroutine 2: shutdown trigger. Widgets stop before the host so no
	// repaint is queued after the loop is gone.
	g.Go(func() error {
		<-gctx.Done()
		p.logger.Info("stopping")
		for _, c := range clocks {
			c.Detach()
		}
		host.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return printRunSummary(host, metrics)
}

// paintFrame records the current face of w, rasterizes it and replaces the
// frame file. Failures are reported, not returned, since repaints run on the
// host loop.
func paintFrame(w *widgets.Clock, path string, width, height int) {
	frame := w.Record(graphics.Size{Width: float64(width), Height: float64(height)}, nil)
	errors.ReportErr("run.paintFrame", errors.KindRender, writePNG(path, rasterize(frame, width, height)))
}

func printRunSummary(host *engine.Host, metrics *observability.MetricsProvider) error {
	mean, worst := host.FrameTimings().Stats()
	fmt.Fprintln(stdout, "Summary:")
	fmt.Fprintf(stdout, "  %-28s %d\n", "frames", host.Frames())
	fmt.Fprintf(stdout, "  %-28s %s\n", "frame time (mean)", mean)
	fmt.Fprintf(stdout, "  %-28s %s\n", "frame time (worst)", worst)

	totals, err := metrics.Counters(context.Background())
	if err != nil {
		return err
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(stdout, "  %-28s %d\n", name, totals[name])
	}

	reported := errors.ReportedByKind()
	kinds := make([]errors.ErrorKind, 0, len(reported))
	for kind := range reported {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		fmt.Fprintf(stdout, "  %-28s %d\n", "errors ("+kind.String()+")", reported[kind])
	}
	return nil
}
