package widgets

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/snitron/clockface/pkg/clock"
	"github.com/snitron/clockface/pkg/graphics"
	"github.com/snitron/clockface/pkg/logging"
	"github.com/snitron/clockface/pkg/scheduler"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Dispatcher moves work onto the rendering goroutine. engine.Host
// implements it.
type Dispatcher interface {
	Dispatch(callback func()) bool
}

// Config configures a Clock. The zero value is usable.
type Config struct {
	// Options are the initial style values. Nil uses clock.DefaultOptions.
	Options *clock.Options

	// Executor places redraw timers. Nil uses scheduler.SystemExecutor.
	Executor scheduler.Executor

	// Renderer paints the face. Nil uses a renderer with the bundled font.
	Renderer *clock.Renderer

	// OnRepaint is called when the clock needs repainting. With a
	// Dispatcher it runs on the dispatcher's goroutine, otherwise on the
	// scheduler's.
	OnRepaint func()

	// Dispatcher, if set, receives every repaint request.
	Dispatcher Dispatcher

	// MeterProvider records render and tick counts. Nil uses the global
	// provider.
	MeterProvider metric.MeterProvider
}

// Clock is an analog clock widget.
type Clock struct {
	renderer   *clock.Renderer
	scheduler  *scheduler.RedrawScheduler
	onRepaint  func()
	dispatcher Dispatcher
	renders    metric.Int64Counter

	mu            sync.Mutex
	style         clock.Style
	attached      bool
	visible       bool
	windowVisible bool

	disposed   atomic.Bool
	needsPaint atomic.Bool
	lastFrame  atomic.Pointer[graphics.DisplayList]
}

// NewClock builds a detached clock. It fails when cfg.Options holds an
// invalid value.
func NewClock(cfg Config) (*Clock, error) {
	opts := clock.DefaultOptions()
	if cfg.Options != nil {
		opts = *cfg.Options
	}
	style, err := clock.NewStyle(opts)
	if err != nil {
		return nil, err
	}

	c := &Clock{
		renderer:      cfg.Renderer,
		onRepaint:     cfg.OnRepaint,
		dispatcher:    cfg.Dispatcher,
		style:         style,
		visible:       true,
		windowVisible: true,
	}
	if c.renderer == nil {
		c.renderer = clock.NewRenderer(nil)
	}

	var schedOpts []scheduler.Option
	if cfg.MeterProvider != nil {
		schedOpts = append(schedOpts, scheduler.WithMeterProvider(cfg.MeterProvider))
	}
	c.scheduler = scheduler.NewRedrawScheduler(cfg.Executor, c.invalidate, schedOpts...)
	c.renders = renderCounter(cfg.MeterProvider)
	c.needsPaint.Store(true)
	return c, nil
}

func renderCounter(mp metric.MeterProvider) metric.Int64Counter {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	counter, err := mp.Meter("github.com/snitron/clockface/pkg/widgets").Int64Counter(
		"clockface.widget.renders",
		metric.WithDescription("Clock faces painted."),
		metric.WithUnit("{render}"),
	)
	if err != nil {
		return noop.Int64Counter{}
	}
	return counter
}

// Attach marks the clock as shown on a display. Repaints start only if the
// clock and its window are also visible; attaching a hidden clock does not
// start them, and showing it later does.
func (c *Clock) Attach() {
	c.setLifecycle(func() { c.attached = true })
}

// Detach marks the clock as removed from its display.
func (c *Clock) Detach() {
	c.setLifecycle(func() { c.attached = false })
}

// SetVisible changes the clock's own visibility. Hiding stops repaints.
// Showing starts them again if the clock is attached and its window is
// visible.
func (c *Clock) SetVisible(visible bool) {
	c.setLifecycle(func() { c.visible = visible })
}

// SetWindowVisible changes the visibility of the window holding the clock.
// It gates repaints the same way SetVisible does.
func (c *Clock) SetWindowVisible(visible bool) {
	c.setLifecycle(func() { c.windowVisible = visible })
}

// IsRunning reports whether periodic repaints are active.
func (c *Clock) IsRunning() bool {
	return c.scheduler.IsRunning()
}

func (c *Clock) setLifecycle(change func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed.Load() {
		return
	}
	was := c.activeLocked()
	change()
	now := c.activeLocked()
	switch {
	case now && !was:
		// The interval is always valid; NewStyle and the setters reject
		// anything Start would.
		if err := c.scheduler.Start(c.style.RedrawInterval()); err != nil {
			logging.Logger().Warn("clock scheduler failed to start", "error", err)
		}
	case was && !now:
		c.scheduler.Stop()
	}
}

func (c *Clock) activeLocked() bool {
	return c.attached && c.visible && c.windowVisible
}

// Style returns a copy of the current style.
func (c *Clock) Style() clock.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style
}

// Update applies fn to a copy of the style and commits the copy if fn
// succeeds. On error the style is unchanged. A new redraw interval takes
// effect the next time the scheduler starts.
func (c *Clock) Update(fn func(*clock.Style) error) error {
	c.mu.Lock()
	next := c.style
	if err := fn(&next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.style = next
	c.mu.Unlock()

	c.invalidate()
	return nil
}

// Apply replaces every style field with opts. Nothing changes unless all
// fields are valid.
func (c *Clock) Apply(opts clock.Options) error {
	style, err := clock.NewStyle(opts)
	if err != nil {
		return err
	}
	return c.Update(func(s *clock.Style) error {
		*s = style
		return nil
	})
}

// Render paints the clock onto canvas at the time read from provider.
func (c *Clock) Render(canvas graphics.Canvas, provider clock.TimeProvider) {
	style := c.Style()
	c.needsPaint.Store(false)
	c.renderer.Render(canvas, &style, provider)
	c.renders.Add(context.Background(), 1)
}

// Record renders the clock into a display list of the given size and keeps
// it as the last frame.
func (c *Clock) Record(size graphics.Size, provider clock.TimeProvider) *graphics.DisplayList {
	frame := graphics.Record(size, func(canvas graphics.Canvas) {
		c.Render(canvas, provider)
	})
	c.lastFrame.Store(frame)
	return frame
}

// LastFrame returns the frame from the most recent Record, or nil before
// the first one.
func (c *Clock) LastFrame() *graphics.DisplayList {
	return c.lastFrame.Load()
}

// NeedsPaint reports whether a repaint was requested since the last Render.
func (c *Clock) NeedsPaint() bool {
	return c.needsPaint.Load()
}

// Dispose stops the scheduler permanently. Later lifecycle calls and
// pending repaint requests are ignored.
func (c *Clock) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed.Swap(true) {
		return
	}
	c.scheduler.Stop()
}

// invalidate is the scheduler tick and runs after style changes.
func (c *Clock) invalidate() {
	if c.disposed.Load() {
		return
	}
	c.needsPaint.Store(true)
	if c.onRepaint == nil {
		return
	}
	if c.dispatcher == nil {
		c.onRepaint()
		return
	}
	if !c.dispatcher.Dispatch(c.onRepaint) {
		logging.Logger().Debug("repaint dropped, host is gone")
	}
}
