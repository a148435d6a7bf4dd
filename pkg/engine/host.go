// Package engine provides the host rendering context that clock widgets
// repaint into.
//
// A [Host] owns a UI-thread queue. Any goroutine may hand it work with
// [Host.Dispatch]; the goroutine running [Host.Run] executes the work in
// batches, one batch per frame, in submission order.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/snitron/clockface/pkg/errors"
	"github.com/snitron/clockface/pkg/logging"
)

// Host serializes callbacks onto a single goroutine.
type Host struct {
	dispatchMu    sync.Mutex
	dispatchQueue []func()
	closed        bool

	wake chan struct{}
	done chan struct{}

	timings *FrameTimingBuffer
	frames  uint64
}

// NewHost returns a host that is ready to accept callbacks.
func NewHost() *Host {
	return &Host{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		timings: NewFrameTimingBuffer(120),
	}
}

// Dispatch schedules callback to run on the host goroutine during the next
// frame. It is safe to call from any goroutine. It returns false, dropping
// the callback, when callback is nil or the host has shut down.
func (h *Host) Dispatch(callback func()) bool {
	if callback == nil {
		return false
	}
	h.dispatchMu.Lock()
	if h.closed {
		h.dispatchMu.Unlock()
		return false
	}
	h.dispatchQueue = append(h.dispatchQueue, callback)
	h.dispatchMu.Unlock()

	select {
	case h.wake <- struct{}{}:
	default:
	}
	return true
}

// Run executes dispatched callbacks until ctx is done or Shutdown is called.
// It returns nil after Shutdown and ctx.Err() on cancellation. Callbacks
// still queued when Run returns are discarded.
func (h *Host) Run(ctx context.Context) error {
	logging.Logger().Debug("host loop started")
	defer logging.Logger().Debug("host loop stopped", "frames", h.Frames())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.done:
			return nil
		case <-h.wake:
			h.Flush()
		}
	}
}

// Flush runs every queued callback on the calling goroutine and returns how
// many ran. Callbacks dispatched while flushing wait for the next frame.
// A panicking callback is reported and the remaining ones still run.
func (h *Host) Flush() int {
	callbacks := h.drainDispatchQueue()
	if len(callbacks) == 0 {
		return 0
	}
	start := time.Now()
	for _, cb := range callbacks {
		runCallback(cb)
	}
	h.timings.Add(time.Since(start))

	h.dispatchMu.Lock()
	h.frames++
	h.dispatchMu.Unlock()
	return len(callbacks)
}

func runCallback(cb func()) {
	defer errors.Recover("engine.dispatch")
	cb()
}

// Shutdown stops Run and makes further Dispatch calls fail. It is safe to
// call more than once.
func (h *Host) Shutdown() {
	h.dispatchMu.Lock()
	defer h.dispatchMu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.dispatchQueue = nil
	close(h.done)
}

// Pending returns the number of queued callbacks.
func (h *Host) Pending() int {
	h.dispatchMu.Lock()
	defer h.dispatchMu.Unlock()
	return len(h.dispatchQueue)
}

// Frames returns the number of non-empty batches executed.
func (h *Host) Frames() uint64 {
	h.dispatchMu.Lock()
	defer h.dispatchMu.Unlock()
	return h.frames
}

// FrameTimings returns the durations of recent frames.
func (h *Host) FrameTimings() *FrameTimingBuffer {
	return h.timings
}

func (h *Host) drainDispatchQueue() []func() {
	h.dispatchMu.Lock()
	callbacks := h.dispatchQueue
	h.dispatchQueue = nil
	h.dispatchMu.Unlock()
	return callbacks
}
