// Package scheduler drives periodic repaints.
//
// A [RedrawScheduler] is a cancellable repeating timer with two states,
// stopped and running. While running it waits one interval, asks its owner
// to repaint, and schedules the next wait. Timers are placed on an
// [Executor], which lets many schedulers share one worker goroutine.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/snitron/clockface/pkg/errors"
	"github.com/snitron/clockface/pkg/logging"
	"go.opentelemetry.io/otel/metric"
)

// RedrawScheduler requests repaints at a fixed interval until stopped.
//
// The tick callback only signals that a repaint is needed; it must not
// block for long, since it may share a goroutine with other schedulers.
// A panic in the callback is recovered and reported, and the scheduler
// keeps running.
type RedrawScheduler struct {
	executor Executor
	onTick   func()
	metrics  *metrics

	mu         sync.Mutex
	running    bool
	generation uint64
	interval   time.Duration
	timer      Timer
}

// Option configures a RedrawScheduler.
type Option func(*RedrawScheduler)

// WithMeterProvider records tick counts through mp instead of the global
// meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *RedrawScheduler) {
		s.metrics = newMetrics(mp)
	}
}

// NewRedrawScheduler returns a stopped scheduler that calls onTick on every
// tick. A nil executor uses SystemExecutor.
func NewRedrawScheduler(executor Executor, onTick func(), opts ...Option) *RedrawScheduler {
	if executor == nil {
		executor = SystemExecutor{}
	}
	s := &RedrawScheduler{
		executor: executor,
		onTick:   onTick,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newMetrics(nil)
	}
	return s
}

// Start begins ticking every interval, first tick one interval from now.
// A running scheduler is restarted: its pending tick is cancelled and the
// new interval applies from now on.
func (s *RedrawScheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return errors.Positive("scheduler.Start", "interval", interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.generation++
	s.running = true
	s.interval = interval
	s.scheduleLocked(s.generation)
	logging.Logger().Debug("redraw scheduler started", "interval", interval)
	return nil
}

// Stop cancels the pending tick. Stopping a stopped scheduler does nothing.
// A tick already in progress completes but does not reschedule.
func (s *RedrawScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	logging.Logger().Debug("redraw scheduler stopped")
}

// IsRunning reports whether the scheduler is running.
func (s *RedrawScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Interval returns the interval of the current or most recent run.
func (s *RedrawScheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *RedrawScheduler) scheduleLocked(gen uint64) {
	s.timer = s.executor.AfterFunc(s.interval, func() {
		s.fire(gen)
	})
}

func (s *RedrawScheduler) fire(gen uint64) {
	if !s.current(gen) {
		return
	}
	s.tick()

	s.mu.Lock()
	defer s.mu.Unlock()
	// Stop or a restart may have happened during the tick.
	if !s.running || s.generation != gen {
		return
	}
	s.scheduleLocked(gen)
}

func (s *RedrawScheduler) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && s.generation == gen
}

func (s *RedrawScheduler) tick() {
	defer errors.Recover("scheduler.tick")
	s.metrics.ticks.Add(context.Background(), 1)
	if s.onTick != nil {
		s.onTick()
	}
}
