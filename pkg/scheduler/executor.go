package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending delayed callback.
type Timer interface {
	// Stop prevents the callback from running if it has not started yet.
	// It reports whether the call stopped it.
	Stop() bool
}

// Executor runs callbacks after a delay. Implementations must be safe for
// concurrent use and must never run f on the calling goroutine.
type Executor interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemExecutor runs each callback on its own runtime timer goroutine.
type SystemExecutor struct{}

func (SystemExecutor) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// WorkerExecutor runs every callback on a single goroutine shared by all
// schedulers that use it. Callbacks never overlap.
type WorkerExecutor struct {
	queue chan func()
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewWorkerExecutor starts the worker goroutine. Call Close to stop it.
func NewWorkerExecutor() *WorkerExecutor {
	e := &WorkerExecutor{
		queue: make(chan func()),
		done:  make(chan struct{}),
	}
	e.wg.Add(1)
	go e.loop()
	return e
}

func (e *WorkerExecutor) loop() {
	defer e.wg.Done()
	for {
		select {
		case f := <-e.queue:
			f()
		case <-e.done:
			return
		}
	}
}

// AfterFunc schedules f on the worker after d. After Close the returned
// timer never fires.
func (e *WorkerExecutor) AfterFunc(d time.Duration, f func()) Timer {
	t := &workerTimer{}
	t.timer = time.AfterFunc(d, func() {
		select {
		case e.queue <- func() {
			if !t.stopped.Load() {
				f()
			}
		}:
		case <-e.done:
		}
	})
	return t
}

// Close stops the worker and waits for a running callback to return.
// Callbacks still waiting are dropped. Close must not be called from a
// callback.
func (e *WorkerExecutor) Close() {
	e.once.Do(func() {
		close(e.done)
	})
	e.wg.Wait()
}

type workerTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *workerTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.timer.Stop()
}
