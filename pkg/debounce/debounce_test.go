package debounce

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestBurstCoalescesToOneCall(t *testing.T) {
	r := &recorder{}
	d := New(40*time.Millisecond, r.record)

	for _, term := range []string{"c", "ch", "cha", "chap"} {
		d.Trigger(term)
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	calls := r.snapshot()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one call, got %v", calls)
	}
	if calls[0] != "chap" {
		t.Fatalf("expected latest value, got %q", calls[0])
	}
}

func TestSeparatedTriggersEachFire(t *testing.T) {
	r := &recorder{}
	d := New(10*time.Millisecond, r.record)

	d.Trigger("a")
	time.Sleep(80 * time.Millisecond)
	d.Trigger("b")
	time.Sleep(80 * time.Millisecond)

	if calls := r.snapshot(); len(calls) != 2 {
		t.Fatalf("expected two calls, got %v", calls)
	}
}

func TestCancelAndFlush(t *testing.T) {
	r := &recorder{}
	d := New(30*time.Millisecond, r.record)

	d.Trigger("dropped")
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	if calls := r.snapshot(); len(calls) != 0 {
		t.Fatalf("expected cancelled call to be dropped, got %v", calls)
	}

	if d.Flush() {
		t.Fatalf("flush with nothing pending should report false")
	}
	d.Trigger("older")
	d.Trigger("latest")
	if !d.Flush() {
		t.Fatalf("flush should report a pending call")
	}
	if d.Flush() {
		t.Fatalf("a flushed call is no longer pending")
	}
	time.Sleep(80 * time.Millisecond)
	calls := r.snapshot()
	if len(calls) != 1 || calls[0] != "latest" {
		t.Fatalf("expected single flushed call with the latest value, got %v", calls)
	}
}

func TestGate(t *testing.T) {
	var g Gate
	first := g.Next()
	second := g.Next()
	third := g.Next()

	if g.Settled(first) || g.Settled(second) {
		t.Fatalf("superseded tags must not settle")
	}
	if !g.Settled(third) {
		t.Fatalf("latest tag must settle")
	}
}
