// Package debounce coalesces bursts of triggers into a single action once a
// quiet period has elapsed.
package debounce

import (
	"sync"
	"time"
)

// Debouncer calls fn with the most recent value once delay has passed
// without another Trigger. It is safe for concurrent use.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	pending T
}

// New returns a debouncer for fn.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Trigger restarts the quiet period with v as the pending value.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq
	d.pending = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that already fired can't be stopped; the sequence check
		// drops it if a later Trigger superseded it.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		d.fn(v)
	})
}

// Flush runs a pending call now, with the latest triggered value, instead
// of waiting. It reports whether anything was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.seq++
	v := d.pending
	d.mu.Unlock()
	d.fn(v)
	return true
}

// Cancel drops any pending call.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Gate is the message-driven form used inside event loops that deliver
// their own timers (such as Bubble Tea's tea.Tick): every trigger takes a
// new tag, and only the tag of the latest trigger is allowed through.
type Gate struct {
	tag uint64
}

// Next starts a new quiet period and returns its tag.
func (g *Gate) Next() uint64 {
	g.tag++
	return g.tag
}

// Settled reports whether tag belongs to the latest trigger.
func (g *Gate) Settled(tag uint64) bool {
	return tag == g.tag
}
