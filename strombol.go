// Package strombol provides composable parsing primitives and combinators
// over a backtracking, position-tracked character stream.
//
// Parsers are built by composition instead of hand-written state machines:
// primitives match literals, numbers and character classes, and combinators
// assemble them into sequences, ordered choices and bounded repetitions.
// The stream supports unbounded streaming input without unbounded memory
// retention, so the same grammar parses an in-memory string or a
// multi-gigabyte feed.
//
// # Core Concepts
//
//   - state.State: a character stream with hold-based backtracking and a
//     reference-counted retention floor that reclaims buffer memory as
//     speculative parses commit.
//   - Parser[T]: the uniform contract — consume a stream prefix, yield a
//     typed value or a structured failure with the cursor rewound.
//   - Combinators: Seq, Alt, Repeat, Maybe, Then, Ignore, Lazy, PartialSeq
//     and Transform compose arbitrarily many sub-parsers with precise
//     failure and backtrack semantics.
//
// # Basic Usage
//
// Parsing two integers separated by whitespace:
//
//	import (
//	    "github.com/arloliu/strombol"
//	    "github.com/arloliu/strombol/state"
//	)
//
//	st := state.New("123 456")
//	pair := strombol.Seq(
//	    strombol.Box(strombol.Int[int32]()),
//	    strombol.Box(strombol.Whitespace()),
//	    strombol.Box(strombol.Int[int32]()),
//	)
//	vals, err := pair.Parse(st)
//	// vals[0] == int32(123), vals[2] == int32(456)
//
// Streaming input, transparently decompressed:
//
//	f, _ := os.Open("values.json.zst")
//	st, err := state.NewReader(f, state.WithDecompression())
//	if err != nil {
//	    return err
//	}
//	v, err := parser.Parse(st)
//
// # Failure Model
//
// Every failure is a structured error: ErrEndOfInput, SyntaxError,
// TransformError or ExecError. A failing parser leaves the cursor where
// its attempt started, so an enclosing Alt can try the next option.
// Combinators never silently drop an error, with two documented
// exceptions: Alt replaces its branches' failures with a generic one once
// every branch failed, and Repeat/Maybe absorb "no further match" into a
// successful partial or empty result once the minimum count is met.
//
// # Package Structure
//
// The root package holds the parser contract, primitives and combinators.
// The state package owns the stream; the jsonvalue package is an
// illustrative JSON grammar built purely on the public API.
package strombol

import (
	"io"

	"github.com/arloliu/strombol/state"
)

// ParseString runs p over an in-memory string, using a fresh stream.
func ParseString[T any](p Parser[T], input string) (T, error) {
	return p.Parse(state.New(input))
}

// ParseReader runs p over a stream incrementally decoded from r. Options
// are passed through to state.NewReader.
func ParseReader[T any](p Parser[T], r io.Reader, opts ...state.Option) (T, error) {
	st, err := state.NewReader(r, opts...)
	if err != nil {
		var zero T
		return zero, err
	}

	return p.Parse(st)
}
