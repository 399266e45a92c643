package strombol

import (
	"github.com/arloliu/strombol/state"
)

// Parser is the central contract of the package: attempt to consume a
// prefix of the stream and produce a typed value.
//
// On success the cursor sits exactly at the end of what was consumed. On
// failure the returned error describes why and the cursor is back where
// the attempt started; primitives unwind any partial consumption
// themselves and combinators enforce the rollback with holds around every
// sub-parser attempt.
type Parser[T any] interface {
	// Parse consumes input from st and returns a result or an error.
	Parse(st *state.State) (T, error)
}

// ParseFunc adapts a function to the Parser interface, the way grammar
// code usually builds parsers.
type ParseFunc[T any] func(st *state.State) (T, error)

// Parse implements Parser.
func (f ParseFunc[T]) Parse(st *state.State) (T, error) {
	return f(st)
}

var _ Parser[int] = (ParseFunc[int])(nil)

// Opt is a present-or-absent slot, produced by Maybe and PartialSeq.
type Opt[T any] struct {
	Val T
	OK  bool
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Val: v, OK: true}
}

// Transform applies a possibly failing function to the result of p,
// yielding a derived parser without exposing any combinator internals.
//
// When f fails, the failure surfaces as a TransformError carrying label,
// the position of the attempt and the original cause, and the input p
// consumed is rolled back.
func Transform[A, B any](p Parser[A], label string, f func(A) (B, error)) ParseFunc[B] {
	return func(st *state.State) (B, error) {
		var zero B

		h := st.Hold()
		pos := h.Pos()

		a, err := p.Parse(st)
		if err != nil {
			st.Reset(h)
			return zero, err
		}

		b, err := f(a)
		if err != nil {
			st.Reset(h)
			return zero, &TransformError{Label: label, Pos: pos, Cause: err}
		}

		st.Release(h)

		return b, nil
	}
}

// Apply is Transform with a generic label, for the common case where the
// conversion itself names the failure well enough.
func Apply[A, B any](p Parser[A], f func(A) (B, error)) ParseFunc[B] {
	return Transform(p, "apply", f)
}
