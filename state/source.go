package state

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// CharSource produces decoded characters one at a time. It is the seam
// between the stream and whatever byte-to-codepoint decoding policy feeds
// it; the State treats it as an opaque feed and never rewinds it.
//
// Implementations are pulled from lazily, in blocks, as the parse advances.
// A CharSource must keep returning ok == false once it reported exhaustion.
type CharSource interface {
	// NextChar returns the next character, or ok == false when the source
	// is exhausted.
	NextChar() (r rune, ok bool)
}

// stringSource decodes characters from an in-memory string.
type stringSource struct {
	s string
	i int
}

func (ss *stringSource) NextChar() (rune, bool) {
	for ss.i < len(ss.s) {
		r, size := utf8.DecodeRuneInString(ss.s[ss.i:])
		ss.i += size
		if r == utf8.RuneError && size == 1 {
			// Malformed byte; skip it rather than failing the stream.
			continue
		}

		return r, true
	}

	return 0, false
}

// readerSource incrementally decodes UTF-8 from an io.Reader. Malformed
// byte sequences are skipped rather than failing the whole stream; this
// leniency is deliberate so that a single corrupt byte in a long feed does
// not poison everything after it.
type readerSource struct {
	br   *bufio.Reader
	done bool
}

func newReaderSource(r io.Reader) *readerSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &readerSource{br: br}
}

func (rs *readerSource) NextChar() (rune, bool) {
	if rs.done {
		return 0, false
	}

	for {
		r, size, err := rs.br.ReadRune()
		if err != nil {
			// Any read error, io.EOF included, ends the stream. The parse
			// surfaces it as end-of-input at the position reached.
			rs.done = true
			return 0, false
		}
		if r == utf8.RuneError && size == 1 {
			continue
		}

		return r, true
	}
}
