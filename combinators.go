package strombol

import (
	"math"

	"github.com/arloliu/strombol/state"
)

// Box erases a parser's result type so heterogeneous parsers can be
// composed by Seq and PartialSeq. The boxed parser is the same parser;
// only the static result type widens to any.
func Box[T any](p Parser[T]) Parser[any] {
	return ParseFunc[any](func(st *state.State) (any, error) {
		v, err := p.Parse(st)
		if err != nil {
			return nil, err
		}

		return v, nil
	})
}

// Seq runs every parser in order inside one hold and succeeds only if all
// of them do, returning their results in declaration order. The first
// failure rewinds everything the sequence consumed and propagates that
// sub-parser's error.
func Seq(ps ...Parser[any]) ParseFunc[[]any] {
	return func(st *state.State) ([]any, error) {
		h := st.Hold()

		out := make([]any, 0, len(ps))
		for _, p := range ps {
			v, err := p.Parse(st)
			if err != nil {
				st.Reset(h)
				return nil, err
			}
			out = append(out, v)
		}
		st.Release(h)

		return out, nil
	}
}

// SeqOf is Seq for parsers sharing one result type, skipping the boxing.
func SeqOf[T any](ps ...Parser[T]) ParseFunc[[]T] {
	return func(st *state.State) ([]T, error) {
		h := st.Hold()

		out := make([]T, 0, len(ps))
		for _, p := range ps {
			v, err := p.Parse(st)
			if err != nil {
				st.Reset(h)
				return nil, err
			}
			out = append(out, v)
		}
		st.Release(h)

		return out, nil
	}
}

// Alt tries each option in declaration order, each under its own hold, and
// returns the first success. Later options are never attempted after a
// success, even if one of them would match more input.
//
// When every option fails the individual branch failures are discarded and
// Alt reports a generic failure at the position it started from.
func Alt[T any](ps ...Parser[T]) ParseFunc[T] {
	return func(st *state.State) (T, error) {
		var zero T

		for _, p := range ps {
			h := st.Hold()
			v, err := p.Parse(st)
			if err == nil {
				st.Release(h)
				return v, nil
			}
			st.Reset(h)
		}

		return zero, syntaxErr("no alternative matched", st.Index())
	}
}

// Bound limits how often Repeat applies its parser.
type Bound struct {
	min, max int
}

// Unbounded repeats zero or more times, without limit.
func Unbounded() Bound {
	return Bound{min: 0, max: math.MaxInt}
}

// Min repeats until failure and requires at least n successes.
func Min(n int) Bound {
	return Bound{min: n, max: math.MaxInt}
}

// Max repeats at most n times, requiring none.
func Max(n int) Bound {
	return Bound{min: 0, max: n}
}

// Between repeats at least lo and at most hi times.
func Between(lo, hi int) Bound {
	return Bound{min: lo, max: hi}
}

// Repeat applies p until it fails and collects the results. A failing
// attempt after the minimum is reached is not an error: the attempt's
// consumption is undone by p itself and Repeat succeeds with what it has.
// Below the minimum the whole combinator fails and rewinds to its start.
// Reaching the maximum stops successfully without a further attempt.
//
// An unbounded Repeat over a parser that always succeeds without consuming
// input, such as a Maybe, loops forever. That is a grammar bug, not a
// condition the engine guards against.
func Repeat[T any](p Parser[T], b Bound) ParseFunc[[]T] {
	return func(st *state.State) ([]T, error) {
		h := st.Hold()

		var out []T
		for i := 0; ; i++ {
			if i >= b.max {
				st.Release(h)
				return out, nil
			}

			v, err := p.Parse(st)
			if err != nil {
				if i >= b.min {
					st.Release(h)
					return out, nil
				}
				st.Reset(h)

				return nil, err
			}
			out = append(out, v)
		}
	}
}

// Maybe turns failure of p into an absent result, so an optional piece of
// input never stops the parse. It behaves like Repeat with Max(1)
// collapsed to a single present/absent slot, and always succeeds.
func Maybe[T any](p Parser[T]) ParseFunc[Opt[T]] {
	return func(st *state.State) (Opt[T], error) {
		v, err := p.Parse(st)
		if err != nil {
			return Opt[T]{}, nil
		}

		return Some(v), nil
	}
}

// Ignore succeeds exactly when p succeeds, discarding its value. Useful
// when consumed input needs no further processing and would only clutter
// the result of an enclosing Seq.
func Ignore[T any](p Parser[T]) ParseFunc[struct{}] {
	return func(st *state.State) (struct{}, error) {
		if _, err := p.Parse(st); err != nil {
			return struct{}{}, err
		}

		return struct{}{}, nil
	}
}

// Then runs a, discards its result, and returns b's result; both must
// succeed. It skips fixed syntax without growing result collections. To
// skip several parsers at once, pass a Seq as a.
func Then[A, B any](a Parser[A], b Parser[B]) ParseFunc[B] {
	return func(st *state.State) (B, error) {
		var zero B

		h := st.Hold()
		if _, err := a.Parse(st); err != nil {
			st.Reset(h)
			return zero, err
		}

		v, err := b.Parse(st)
		if err != nil {
			st.Reset(h)
			return zero, err
		}
		st.Release(h)

		return v, nil
	}
}

// lazyCell is the two-state memo behind Lazy: unbuilt until the first
// parse, built forever after.
type lazyCell[T any] struct {
	build func() Parser[T]
	p     Parser[T]
}

func (c *lazyCell[T]) parse(st *state.State) (T, error) {
	if c.build != nil {
		c.p = c.build()
		c.build = nil
	}

	return c.p.Parse(st)
}

// Lazy defers constructing a parser until its first invocation and caches
// it; build runs at most once no matter how often the Lazy parser runs,
// including never when it is a branch an Alt short-circuits past.
//
// Lazy serves two purposes: it keeps an expensive branch of an Alt from
// being built on parses that never reach it, and it breaks the
// construction cycle of recursive and mutually recursive grammars.
func Lazy[T any](build func() Parser[T]) ParseFunc[T] {
	cell := &lazyCell[T]{build: build}

	return cell.parse
}

// PartialSeq runs parsers in order like Seq but never fails outright: it
// stops at the first sub-parser failure and succeeds with the results
// collected so far. The result always has one slot per parser, absent from
// the first failure onward; input consumed by the successful prefix stays
// consumed.
func PartialSeq(ps ...Parser[any]) ParseFunc[[]Opt[any]] {
	return func(st *state.State) ([]Opt[any], error) {
		h := st.Hold()

		out := make([]Opt[any], len(ps))
		for i, p := range ps {
			v, err := p.Parse(st)
			if err != nil {
				break
			}
			out[i] = Some(v)
		}
		st.Release(h)

		return out, nil
	}
}
