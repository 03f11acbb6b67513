// Package scramble animates a text change by letting every character slot
// flicker through random glyphs before settling on its new value.
package scramble

import (
	"math/rand"
	"strings"
)

// State of a Scrambler.
type State int

const (
	// Idle: no animation has been started, or the last one was cancelled.
	Idle State = iota
	// Animating: frames are being produced.
	Animating
	// Complete: every slot shows its final character.
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// DefaultGlyphs are the decorative characters shown while a slot scrambles.
const DefaultGlyphs = `!<>-_\/[]{}—=+*^?#`

// Cell is one rendered character slot.
type Cell struct {
	Rune       rune
	Scrambling bool
	// Progress through the slot's scramble window, in [0, 1].
	Progress float64
}

type slot struct {
	from, to   rune
	start, end int
	glyph      rune
}

// Scrambler runs one animation at a time. It is not safe for concurrent
// use; drive it from a single event loop.
type Scrambler struct {
	// MaxStart and MaxDuration bound the random frame window of each slot.
	MaxStart    int
	MaxDuration int
	// Reroll is the per-frame chance a scrambling slot picks a new glyph.
	Reroll float64
	Glyphs []rune

	rng   *rand.Rand
	state State
	gen   uint64
	frame int
	queue []slot
	done  chan struct{}
}

// New returns an idle scrambler drawing randomness from rng.
func New(rng *rand.Rand) *Scrambler {
	return &Scrambler{
		MaxStart:    40,
		MaxDuration: 40,
		Reroll:      0.28,
		Glyphs:      []rune(DefaultGlyphs),
		rng:         rng,
	}
}

// State reports the current state.
func (s *Scrambler) State() State { return s.state }

// Generation identifies the latest animation started by SetText.
func (s *Scrambler) Generation() uint64 { return s.gen }

// SetText starts animating from old to text. Any animation in flight is
// cancelled first (Animating -> Idle) and its done channel closed. The
// returned generation must accompany every Frame call; the channel closes
// when this animation completes or is superseded.
func (s *Scrambler) SetText(old, text string) (uint64, <-chan struct{}) {
	s.Cancel()

	from, to := []rune(old), []rune(text)
	n := len(from)
	if len(to) > n {
		n = len(to)
	}
	s.queue = make([]slot, n)
	for i := 0; i < n; i++ {
		var sl slot
		if i < len(from) {
			sl.from = from[i]
		}
		if i < len(to) {
			sl.to = to[i]
		}
		sl.start = s.intn(s.MaxStart)
		sl.end = sl.start + s.intn(s.MaxDuration)
		s.queue[i] = sl
	}

	s.gen++
	s.frame = 0
	s.done = make(chan struct{})
	s.state = Animating
	if n == 0 {
		s.finish()
	}
	return s.gen, s.done
}

// Cancel abandons the running animation, if any.
func (s *Scrambler) Cancel() {
	if s.state != Animating {
		return
	}
	s.state = Idle
	s.queue = nil
	close(s.done)
	s.done = nil
}

// Frame advances the animation by one frame and returns the cells to draw.
// ok is false when gen is stale or nothing is animating; callers stop
// scheduling frames then.
func (s *Scrambler) Frame(gen uint64) (cells []Cell, ok bool) {
	if gen != s.gen || s.state != Animating {
		return nil, false
	}
	complete := 0
	cells = make([]Cell, 0, len(s.queue))
	for i := range s.queue {
		sl := &s.queue[i]
		switch {
		case s.frame >= sl.end:
			complete++
			cells = append(cells, Cell{Rune: sl.to, Progress: 1})
		case s.frame >= sl.start:
			if sl.glyph == 0 || s.rng.Float64() < s.Reroll {
				sl.glyph = s.randomGlyph()
			}
			span := sl.end - sl.start
			cells = append(cells, Cell{
				Rune:       sl.glyph,
				Scrambling: true,
				Progress:   float64(s.frame-sl.start) / float64(span),
			})
		default:
			cells = append(cells, Cell{Rune: sl.from})
		}
	}
	s.frame++
	if complete == len(s.queue) {
		s.finish()
	}
	return cells, true
}

func (s *Scrambler) finish() {
	s.state = Complete
	s.queue = nil
	close(s.done)
	s.done = nil
}

func (s *Scrambler) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

func (s *Scrambler) randomGlyph() rune {
	if len(s.Glyphs) == 0 {
		return '#'
	}
	return s.Glyphs[s.rng.Intn(len(s.Glyphs))]
}

// String renders cells, skipping padding slots that have no character.
func String(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}
