package scramble

import (
	"math/rand"
	"strings"
	"testing"
)

func run(t *testing.T, s *Scrambler, gen uint64) (frames int, last []Cell) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		cells, ok := s.Frame(gen)
		if !ok {
			return frames, last
		}
		frames++
		last = cells
	}
	t.Fatalf("animation did not complete")
	return 0, nil
}

func TestAnimationSettlesOnNewText(t *testing.T) {
	s := New(rand.New(rand.NewSource(1)))
	if s.State() != Idle {
		t.Fatalf("new scrambler should be idle, got %v", s.State())
	}

	gen, done := s.SetText("Home", "Chapter One")
	if s.State() != Animating {
		t.Fatalf("expected animating, got %v", s.State())
	}
	frames, last := run(t, s, gen)
	if frames == 0 {
		t.Fatalf("expected at least one frame")
	}
	if got := String(last); got != "Chapter One" {
		t.Fatalf("expected final text, got %q", got)
	}
	if s.State() != Complete {
		t.Fatalf("expected complete, got %v", s.State())
	}
	select {
	case <-done:
	default:
		t.Fatalf("done should be closed on completion")
	}
}

func TestShrinkingTextDropsPadding(t *testing.T) {
	s := New(rand.New(rand.NewSource(2)))
	gen, _ := s.SetText("A much longer title", "Short")
	_, last := run(t, s, gen)
	if got := String(last); got != "Short" {
		t.Fatalf("expected padding slots to vanish, got %q", got)
	}
}

func TestSlotsShowOldThenGlyphsThenNew(t *testing.T) {
	s := New(rand.New(rand.NewSource(3)))
	s.MaxStart = 1
	s.MaxDuration = 1
	gen, _ := s.SetText("ab", "cd")
	// With both bounds at 1 every slot has start 0, end 0: done on frame 0.
	cells, ok := s.Frame(gen)
	if !ok || String(cells) != "cd" {
		t.Fatalf("expected immediate settle, got %q (ok=%v)", String(cells), ok)
	}

	s = New(rand.New(rand.NewSource(4)))
	s.MaxStart = 1
	s.MaxDuration = 1
	s.SetText("x", "y")
	s.queue[0].start, s.queue[0].end = 1, 3
	gen = s.Generation()

	want := []struct {
		scrambling bool
		r          rune
	}{
		{false, 'x'},
		{true, 0},
		{true, 0},
		{false, 'y'},
	}
	for i, w := range want {
		cells, ok := s.Frame(gen)
		if !ok {
			t.Fatalf("frame %d: animation ended early", i)
		}
		c := cells[0]
		if c.Scrambling != w.scrambling {
			t.Fatalf("frame %d: expected scrambling=%v", i, w.scrambling)
		}
		if w.scrambling {
			if !strings.ContainsRune(DefaultGlyphs, c.Rune) {
				t.Fatalf("frame %d: %q is not a decorative glyph", i, c.Rune)
			}
		} else if c.Rune != w.r {
			t.Fatalf("frame %d: expected %q, got %q", i, w.r, c.Rune)
		}
	}
	if s.State() != Complete {
		t.Fatalf("expected complete after final frame")
	}
}

func TestRestartCancelsInFlightAnimation(t *testing.T) {
	s := New(rand.New(rand.NewSource(5)))
	first, firstDone := s.SetText("", "First title")
	if _, ok := s.Frame(first); !ok {
		t.Fatalf("expected first frame")
	}

	second, _ := s.SetText("F", "Second")
	select {
	case <-firstDone:
	default:
		t.Fatalf("superseded animation should close its done channel")
	}
	if _, ok := s.Frame(first); ok {
		t.Fatalf("stale generation must not advance the animation")
	}
	_, last := run(t, s, second)
	if got := String(last); got != "Second" {
		t.Fatalf("expected second text, got %q", got)
	}
}

func TestEmptyToEmptyCompletesImmediately(t *testing.T) {
	s := New(rand.New(rand.NewSource(6)))
	gen, done := s.SetText("", "")
	if s.State() != Complete {
		t.Fatalf("expected complete, got %v", s.State())
	}
	select {
	case <-done:
	default:
		t.Fatalf("expected closed done channel")
	}
	if _, ok := s.Frame(gen); ok {
		t.Fatalf("no frames expected after completion")
	}
}

func TestCancelReturnsToIdle(t *testing.T) {
	s := New(rand.New(rand.NewSource(7)))
	gen, done := s.SetText("a", "b")
	s.Cancel()
	if s.State() != Idle {
		t.Fatalf("expected idle after cancel, got %v", s.State())
	}
	select {
	case <-done:
	default:
		t.Fatalf("cancel should close done")
	}
	if _, ok := s.Frame(gen); ok {
		t.Fatalf("cancelled animation must not produce frames")
	}
	s.Cancel()
}
