// Package state implements the position-tracked character stream that
// parsers consume.
//
// A State buffers characters pulled from a CharSource in blocks and lets
// any parser speculatively consume input and cheaply undo the consumption:
// Hold captures the current position, Reset rolls the cursor back to it,
// Release commits everything consumed since. Holds nest arbitrarily deep,
// which is what makes backtracking combinators composable.
//
// Buffered input older than the oldest live hold can never be rolled back
// to again, so the State reclaims it as holds resolve. That retention
// floor is what bounds memory on arbitrarily long streaming inputs: the
// buffer only grows with the span a speculative parse may still rewind
// across, not with the total input consumed.
//
// A State is not safe for concurrent use. Parsing independent inputs in
// parallel requires one State per input.
package state

import (
	"fmt"
	"io"
)

// DefaultPrefill is the number of characters fetched from the source per
// refill block.
const DefaultPrefill = 1024

// State is a stream of characters with hold-based backtracking.
type State struct {
	src CharSource // nil once exhaustion was observed
	buf []rune     // retained window of the input

	base int // absolute position of buf[0]
	cur  int // cursor, relative to buf

	// Retention floor bookkeeping: the oldest position a live hold refers
	// to, and how many holds refer to exactly that position. Holds taken
	// at later positions while the floor is live are protected implicitly,
	// since they sit above the floor.
	floorPos  int
	floorRefs int

	openHolds int // every unresolved hold, counted or not

	prefill int
}

type config struct {
	prefill    int
	decompress bool
}

// Option configures State construction.
type Option func(*config) error

// WithPrefill sets the number of characters fetched from the source per
// refill block. Larger blocks reduce per-character source overhead on long
// inputs at the cost of buffering further ahead.
func WithPrefill(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("state: prefill size must be positive, got %d", n)
		}
		c.prefill = n

		return nil
	}
}

// WithDecompression enables transparent input decompression for NewReader.
// The reader's first bytes are sniffed for a zstd, gzip, lz4 or s2 frame
// header and, on a match, routed through the corresponding decoder before
// UTF-8 decoding. Unrecognized input passes through unchanged.
func WithDecompression() Option {
	return func(c *config) error {
		c.decompress = true

		return nil
	}
}

// New creates a State that reads from an in-memory string.
func New(s string) *State {
	return &State{
		src:     &stringSource{s: s},
		prefill: DefaultPrefill,
	}
}

// NewReader creates a State that incrementally decodes UTF-8 from r.
// Malformed byte sequences in the input are skipped, not treated as
// errors.
func NewReader(r io.Reader, opts ...Option) (*State, error) {
	cfg := config{prefill: DefaultPrefill}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.decompress {
		var err error
		r, err = sniffCompression(r)
		if err != nil {
			return nil, err
		}
	}

	return &State{src: newReaderSource(r), prefill: cfg.prefill}, nil
}

// FromSource creates a State over a caller-supplied character feed. The
// State assumes exclusive ownership of src and pulls from it lazily.
func FromSource(src CharSource, opts ...Option) (*State, error) {
	cfg := config{prefill: DefaultPrefill}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.decompress {
		return nil, fmt.Errorf("state: decompression requires a byte reader, use NewReader")
	}

	return &State{src: src, prefill: cfg.prefill}, nil
}

// Index returns the absolute position in the input, for diagnostics.
func (s *State) Index() int {
	return s.base + s.cur
}

// Next returns and consumes the next character. It returns ok == false
// once the input is exhausted; reading past end-of-input is an ordinary
// signal, not a fault.
func (s *State) Next() (rune, bool) {
	if s.cur >= len(s.buf) && !s.fill() {
		return 0, false
	}

	r := s.buf[s.cur]
	s.cur++

	return r, true
}

// Peek returns the next character without consuming it. When the buffered
// window is already positioned on the character this is a direct read;
// otherwise it consumes the character and rewinds one.
func (s *State) Peek() (rune, bool) {
	if s.cur < len(s.buf) {
		return s.buf[s.cur], true
	}

	r, ok := s.Next()
	if !ok {
		return 0, false
	}
	s.UndoNext()

	return r, true
}

// UndoNext rewinds exactly one character. It exists for primitives that
// over-read by one character to detect a boundary and then put it back.
// Rewinding past the retention floor is impossible by construction and
// panics.
func (s *State) UndoNext() {
	if s.cur == 0 {
		panic("state: undo past retention floor")
	}
	s.cur--
}

// Finished reports whether the source is exhausted and the buffered input
// fully consumed. It may pull a refill block from the source to find out.
func (s *State) Finished() bool {
	if s.cur < len(s.buf) {
		return false
	}
	if s.src != nil && s.fill() {
		return false
	}

	return s.src == nil
}

// Hold captures the current position and pins buffered input from that
// position onward until the hold is resolved by Release or Reset.
func (s *State) Hold() *Hold {
	pos := s.base + s.cur
	if s.floorRefs == 0 {
		s.floorPos = pos
		s.floorRefs = 1
	} else if pos == s.floorPos {
		s.floorRefs++
	}
	s.openHolds++

	return &Hold{st: s, pos: pos}
}

// Release resolves h by committing all input consumed since it was taken.
// When the last reference to the retention floor resolves, the floor
// advances and the buffer behind it is reclaimed.
//
// Release panics if h belongs to another State or was already resolved.
func (s *State) Release(h *Hold) {
	s.resolve(h)
	if s.floorRefs > 0 && h.pos == s.floorPos {
		s.floorRefs--
		if s.floorRefs == 0 {
			s.compact()
		}
	}
}

// Reset resolves h by rolling the cursor back to the position it captured.
// Subsequent Index and Peek results are exactly what they were when the
// hold was taken.
//
// Reset panics if h belongs to another State or was already resolved.
func (s *State) Reset(h *Hold) {
	s.resolve(h)
	if s.floorRefs > 0 && h.pos == s.floorPos {
		s.floorRefs--
	}
	if h.pos < s.base {
		// Unreachable while holds resolve in nested (LIFO) or sequential
		// order; a violation of that discipline is a caller bug.
		panic("state: hold position fell below the retention floor")
	}
	s.cur = h.pos - s.base
}

// OpenHolds returns the number of holds not yet resolved. A parse that
// finished cleanly leaves zero.
func (s *State) OpenHolds() int {
	return s.openHolds
}

func (s *State) resolve(h *Hold) {
	switch {
	case h == nil:
		panic("state: nil hold")
	case h.st != s:
		panic("state: hold resolved by a stream other than its creator")
	case h.resolved:
		panic("state: hold resolved twice")
	}
	h.resolved = true
	s.openHolds--
}

// fill pulls the next block of characters from the source. It reports
// whether the cursor now points at a buffered character.
func (s *State) fill() bool {
	if s.src == nil {
		return false
	}

	// A refill is the cheap moment to drop input nothing can rewind to.
	if s.cur >= s.prefill {
		s.compact()
	}

	got := 0
	for got < s.prefill {
		r, ok := s.src.NextChar()
		if !ok {
			s.src = nil
			break
		}
		s.buf = append(s.buf, r)
		got++
	}

	return s.cur < len(s.buf)
}

// compact discards buffered input older than the retention floor. With a
// live floor that is everything before the oldest held position; with no
// floor but open holds the buffer is left alone (those holds sit above a
// floor that already advanced); with no holds at all everything behind the
// cursor goes.
func (s *State) compact() {
	floor := s.cur
	if s.floorRefs > 0 {
		floor = s.floorPos - s.base
	} else if s.openHolds > 0 {
		return
	}

	if floor <= 0 {
		return
	}

	n := copy(s.buf, s.buf[floor:])
	s.buf = s.buf[:n]
	s.base += floor
	s.cur -= floor
}

// buffered returns the size of the retained window, for tests asserting
// the reclamation bound.
func (s *State) buffered() int {
	return len(s.buf)
}
