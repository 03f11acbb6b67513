package prefs

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDiskRoundTrip(t *testing.T) {
	d, err := OpenDisk(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := d.Get(KeyFontSize); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := d.Set(KeyFontSize, "3"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := d.Get(KeyFontSize)
	if err != nil || v != "3" {
		t.Fatalf("expected 3, got %q (%v)", v, err)
	}
	if err := d.Remove(KeyFontSize); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := d.Remove(KeyFontSize); err != nil {
		t.Fatalf("removing a missing key should succeed: %v", err)
	}
	if _, err := d.Get(KeyFontSize); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestDiskRejectsPathKeys(t *testing.T) {
	d, err := OpenDisk(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, key := range []string{"", "../escape", ".hidden", `a\b`} {
		if err := d.Set(key, "x"); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
	}
}

func TestPreferencesPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	d, err := OpenDisk(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p := New(d, nil)
	p.SetFontLevel(-2)
	p.SetSidebarCollapsed(true)

	d2, err := OpenDisk(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	p2 := New(d2, nil)
	level, ok := p2.FontLevel()
	if !ok || level != -2 {
		t.Fatalf("expected level -2, got %d (ok=%v)", level, ok)
	}
	if !p2.SidebarCollapsed() {
		t.Fatalf("expected collapsed sidebar")
	}

	p2.Reset()
	if _, ok := p2.FontLevel(); ok {
		t.Fatalf("expected no font level after reset")
	}
	if p2.SidebarCollapsed() {
		t.Fatalf("expected expanded sidebar after reset")
	}
}

func TestPreferencesSwallowStoreFailures(t *testing.T) {
	m := NewMemory()
	m.Err = errors.New("quota exceeded")
	p := New(m, nil)

	p.SetFontLevel(2)
	p.SetSidebarCollapsed(true)
	p.Reset()
	if _, ok := p.FontLevel(); ok {
		t.Fatalf("expected no level from a failing store")
	}
	if p.SidebarCollapsed() {
		t.Fatalf("expected default sidebar from a failing store")
	}
}

func TestPreferencesIgnoreMalformedLevel(t *testing.T) {
	m := NewMemory()
	_ = m.Set(KeyFontSize, "big")
	if _, ok := New(m, nil).FontLevel(); ok {
		t.Fatalf("expected malformed value to be ignored")
	}
}

func TestDiskWatchEmitsKeyChanges(t *testing.T) {
	d, err := OpenDisk(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := d.Set(KeyFontSize, "1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == KeyFontSize {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for preference change event")
		}
	}
}
