package testing

import (
	"sort"
	"sync"
	"time"

	"github.com/snitron/clockface/pkg/scheduler"
)

// FakeExecutor is a scheduler.Executor driven by virtual time. Timers fire
// synchronously inside Advance, in deadline order, on the caller's
// goroutine.
type FakeExecutor struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

// NewFakeExecutor returns an executor at virtual time zero.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{}
}

type fakeTimer struct {
	exec     *FakeExecutor
	deadline time.Duration
	seq      int
	f        func()
	done     bool
}

// AfterFunc implements scheduler.Executor.
func (e *FakeExecutor) AfterFunc(d time.Duration, f func()) scheduler.Timer {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	t := &fakeTimer{exec: e, deadline: e.now + d, seq: e.seq, f: f}
	e.timers = append(e.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.exec.mu.Lock()
	defer t.exec.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.exec.removeLocked(t)
	return true
}

// Advance moves virtual time forward by d, firing every timer that comes
// due, including timers scheduled by callbacks during the advance.
func (e *FakeExecutor) Advance(d time.Duration) {
	e.mu.Lock()
	target := e.now + d
	e.mu.Unlock()

	for {
		e.mu.Lock()
		next := e.nextLocked()
		if next == nil || next.deadline > target {
			e.now = target
			e.mu.Unlock()
			return
		}
		e.now = next.deadline
		next.done = true
		e.removeLocked(next)
		e.mu.Unlock()

		next.f()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (e *FakeExecutor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.timers)
}

// Now returns the elapsed virtual time.
func (e *FakeExecutor) Now() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

func (e *FakeExecutor) nextLocked() *fakeTimer {
	if len(e.timers) == 0 {
		return nil
	}
	sort.SliceStable(e.timers, func(i, j int) bool {
		a, b := e.timers[i], e.timers[j]
		if a.deadline != b.deadline {
			return a.deadline < b.deadline
		}
		return a.seq < b.seq
	})
	return e.timers[0]
}

func (e *FakeExecutor) removeLocked(t *fakeTimer) {
	for i, other := range e.timers {
		if other == t {
			e.timers = append(e.timers[:i], e.timers[i+1:]...)
			return
		}
	}
}
