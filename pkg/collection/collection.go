// Package collection holds the ordered list of clocks shown by a host.
//
// Index-based inserts and removals notify registered listeners so a list
// view can update the affected rows. The whole list can be saved and
// restored as YAML.
package collection

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/snitron/clockface/pkg/clock"
	"github.com/snitron/clockface/pkg/errors"
)

// Entry is one clock in the collection. ID is stable for the entry's
// lifetime and survives save and restore.
type Entry struct {
	ID    string
	Style clock.Style
}

// Listener receives change notifications. Calls happen after the change,
// outside the collection's lock, on the goroutine that made the change.
type Listener interface {
	ItemInserted(index int)
	ItemRangeChanged(start, count int)
	ItemRemoved(index int)
	ItemsReset()
}

// ListenerFuncs adapts optional functions to Listener.
type ListenerFuncs struct {
	Inserted     func(index int)
	RangeChanged func(start, count int)
	Removed      func(index int)
	Reset        func()
}

func (l ListenerFuncs) ItemInserted(index int) {
	if l.Inserted != nil {
		l.Inserted(index)
	}
}

func (l ListenerFuncs) ItemRangeChanged(start, count int) {
	if l.RangeChanged != nil {
		l.RangeChanged(start, count)
	}
}

func (l ListenerFuncs) ItemRemoved(index int) {
	if l.Removed != nil {
		l.Removed(index)
	}
}

func (l ListenerFuncs) ItemsReset() {
	if l.Reset != nil {
		l.Reset()
	}
}

// Collection is an ordered list of clock styles. Values may repeat.
// It is safe for concurrent use.
type Collection struct {
	mu        sync.RWMutex
	entries   []Entry
	listeners map[int]Listener
	nextID    int
}

// New returns a collection holding styles in order.
func New(styles ...clock.Style) *Collection {
	c := &Collection{listeners: make(map[int]Listener)}
	for _, s := range styles {
		c.entries = append(c.entries, newEntry(s))
	}
	return c
}

func newEntry(s clock.Style) Entry {
	return Entry{ID: uuid.NewString(), Style: s}
}

// InsertAt adds style next to the clock at index and returns the new
// entry's position.
//
// Into an empty collection the style always goes to position 0, whatever
// index says, and listeners see ItemInserted(0). Otherwise it goes to
// index+1 and listeners see ItemRangeChanged(index, 2), covering the
// existing clock and the new one. index must address an existing clock.
func (c *Collection) InsertAt(index int, style clock.Style) (int, error) {
	c.mu.Lock()
	if len(c.entries) == 0 {
		c.entries = append(c.entries, newEntry(style))
		listeners := c.snapshotListenersLocked()
		c.mu.Unlock()
		for _, l := range listeners {
			l.ItemInserted(0)
		}
		return 0, nil
	}

	if index < 0 || index >= len(c.entries) {
		n := len(c.entries)
		c.mu.Unlock()
		return 0, outOfRange("collection.InsertAt", index, n)
	}
	pos := index + 1
	c.entries = append(c.entries, Entry{})
	copy(c.entries[pos+1:], c.entries[pos:])
	c.entries[pos] = newEntry(style)
	listeners := c.snapshotListenersLocked()
	c.mu.Unlock()

	for _, l := range listeners {
		l.ItemRangeChanged(index, 2)
	}
	return pos, nil
}

// RemoveAt removes and returns the clock at index.
func (c *Collection) RemoveAt(index int) (Entry, error) {
	c.mu.Lock()
	if index < 0 || index >= len(c.entries) {
		n := len(c.entries)
		c.mu.Unlock()
		return Entry{}, outOfRange("collection.RemoveAt", index, n)
	}
	removed := c.entries[index]
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	listeners := c.snapshotListenersLocked()
	c.mu.Unlock()

	for _, l := range listeners {
		l.ItemRemoved(index)
	}
	return removed, nil
}

// Len returns the number of clocks.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// At returns the clock at index.
func (c *Collection) At(index int) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[index], true
}

// IndexOf returns the position of the entry with the given ID, or -1.
func (c *Collection) IndexOf(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Entries returns a copy of all entries in order.
func (c *Collection) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// AddListener registers l and returns a function that unregisters it.
func (c *Collection) AddListener(l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// replace swaps in entries wholesale and notifies ItemsReset.
func (c *Collection) replace(entries []Entry) {
	c.mu.Lock()
	c.entries = entries
	listeners := c.snapshotListenersLocked()
	c.mu.Unlock()
	for _, l := range listeners {
		l.ItemsReset()
	}
}

// snapshotListenersLocked returns listeners in registration order.
func (c *Collection) snapshotListenersLocked() []Listener {
	out := make([]Listener, 0, len(c.listeners))
	for id := 0; id < c.nextID; id++ {
		if l, ok := c.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

func outOfRange(op string, index, n int) error {
	return &errors.ClockError{
		Op:    op,
		Kind:  errors.KindInvalidArgument,
		Field: "index",
		Err:   fmt.Errorf("%w: index %d out of range [0, %d)", errors.ErrInvalidArgument, index, n),
	}
}
