package strombol

import (
	"strconv"
	"unsafe"

	"github.com/arloliu/strombol/internal/pool"
	"github.com/arloliu/strombol/internal/runeset"
	"github.com/arloliu/strombol/state"
)

// Literal matches exactly the string want, comparing decoded characters
// one by one. It succeeds only on a full match, leaving the cursor right
// after it; any mismatch or premature end-of-input rewinds to the start.
func Literal(want string) ParseFunc[string] {
	return func(st *state.State) (string, error) {
		h := st.Hold()

		for _, wc := range want {
			c, ok := st.Peek()
			if !ok {
				st.Reset(h)
				return "", ErrEndOfInput
			}
			if c != wc {
				pos := st.Index()
				st.Reset(h)

				return "", syntaxErr("literal "+strconv.Quote(want), pos)
			}
			st.Next()
		}
		st.Release(h)

		return want, nil
	}
}

// IntegerKind covers the integer types Int can target.
type IntegerKind interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

func isSigned[T IntegerKind]() bool {
	var zero T

	return zero-1 < zero
}

// intScratchSize holds any digit run that fits the widest fixed-width
// integer; longer runs spill the scratch slice onto the heap, which only
// changes throughput, never behavior.
const intScratchSize = 24

// Int matches a decimal integer of the target type T: an optional leading
// minus sign (attempted only when T is signed) followed by at least one
// digit. Zero digits is a syntax failure. A digit run that overflows T is
// a semantic conversion failure; either way the cursor rewinds to the
// start.
func Int[T IntegerKind]() ParseFunc[T] {
	signed := isSigned[T]()
	bitSize := int(unsafe.Sizeof(T(0))) * 8

	return func(st *state.State) (T, error) {
		var zero T

		h := st.Hold()
		pos := h.Pos()

		var scratch [intScratchSize]byte
		buf := scratch[:0]

		if signed {
			if c, ok := st.Peek(); ok && c == '-' {
				st.Next()
				buf = append(buf, '-')
			}
		}

		digits := 0
		for {
			c, ok := st.Next()
			if !ok {
				break
			}
			if c < '0' || c > '9' {
				st.UndoNext()
				break
			}
			buf = append(buf, byte(c))
			digits++
		}

		if digits == 0 {
			st.Reset(h)
			if st.Finished() {
				return zero, ErrEndOfInput
			}

			return zero, syntaxErr("integer", pos)
		}

		text := string(buf)
		if signed {
			v, err := strconv.ParseInt(text, 10, bitSize)
			if err != nil {
				st.Reset(h)
				return zero, &TransformError{Label: "integer", Pos: pos, Cause: Execf("%v", err)}
			}
			st.Release(h)

			return T(v), nil
		}

		v, err := strconv.ParseUint(text, 10, bitSize)
		if err != nil {
			st.Reset(h)
			return zero, &TransformError{Label: "integer", Pos: pos, Cause: Execf("%v", err)}
		}
		st.Release(h)

		return T(v), nil
	}
}

// scanDigits consumes a run of decimal digits into lb and returns how many
// it consumed.
func scanDigits(st *state.State, lb *pool.LexemeBuffer) int {
	n := 0
	for {
		c, ok := st.Next()
		if !ok {
			return n
		}
		if c < '0' || c > '9' {
			st.UndoNext()
			return n
		}
		lb.AppendByte(byte(c))
		n++
	}
}

// Float matches a decimal floating point number of the form
//
//	[-] digits ['.' [digits]] ['e' signed-int]
//
// and converts the matched text with strconv.ParseFloat, so the result is
// exactly what a conforming string-to-double conversion produces. A '.'
// with no digits after it means a zero fractional part. An exponent marker
// with no digits after it is not part of the number and stays unconsumed.
func Float() ParseFunc[float64] {
	return func(st *state.State) (float64, error) {
		h := st.Hold()
		pos := h.Pos()

		lb := pool.GetLexemeBuffer()
		defer pool.PutLexemeBuffer(lb)

		if c, ok := st.Peek(); ok && c == '-' {
			st.Next()
			lb.AppendByte('-')
		}

		if scanDigits(st, lb) == 0 {
			st.Reset(h)
			if st.Finished() {
				return 0, ErrEndOfInput
			}

			return 0, syntaxErr("float", pos)
		}

		if c, ok := st.Peek(); ok && c == '.' {
			st.Next()
			lb.AppendByte('.')
			scanDigits(st, lb)
		}

		if c, ok := st.Peek(); ok && (c == 'e' || c == 'E') {
			eh := st.Hold()
			mark := lb.Len()

			st.Next()
			lb.AppendByte(byte(c))
			if c2, ok := st.Peek(); ok && (c2 == '-' || c2 == '+') {
				st.Next()
				lb.AppendByte(byte(c2))
			}

			if scanDigits(st, lb) == 0 {
				// Dangling exponent marker; the number ends before it.
				st.Reset(eh)
				lb.Truncate(mark)
			} else {
				st.Release(eh)
			}
		}

		v, err := strconv.ParseFloat(lb.String(), 64)
		if err != nil {
			st.Reset(h)
			return 0, &TransformError{Label: "float", Pos: pos, Cause: Execf("%v", err)}
		}
		st.Release(h)

		return v, nil
	}
}

// OneOf matches a single character contained in set.
func OneOf(set string) ParseFunc[rune] {
	rs := runeset.New(set)
	label := "one of " + strconv.Quote(set)

	return func(st *state.State) (rune, error) {
		c, ok := st.Next()
		if !ok {
			return 0, ErrEndOfInput
		}
		if !rs.Contains(c) {
			st.UndoNext()
			return 0, syntaxErr(label, st.Index())
		}

		return c, nil
	}
}

// NoneOf matches a single character not contained in set.
func NoneOf(set string) ParseFunc[rune] {
	rs := runeset.New(set)
	label := "none of " + strconv.Quote(set)

	return func(st *state.State) (rune, error) {
		c, ok := st.Next()
		if !ok {
			return 0, ErrEndOfInput
		}
		if rs.Contains(c) {
			st.UndoNext()
			return 0, syntaxErr(label, st.Index())
		}

		return c, nil
	}
}

// Whitespace skips zero or more space, tab, newline and carriage-return
// characters, discarding them. It always succeeds.
func Whitespace() ParseFunc[struct{}] {
	return Ignore(Repeat(OneOf(" \t\n\r"), Unbounded()))
}

// StringOf matches characters from set, repeated per b, reassembled into a
// string in encounter order.
func StringOf(set string, b Bound) ParseFunc[string] {
	return collectRunes(OneOf(set), b)
}

// StringNoneOf matches characters outside set, repeated per b, reassembled
// into a string in encounter order.
func StringNoneOf(set string, b Bound) ParseFunc[string] {
	return collectRunes(NoneOf(set), b)
}

func collectRunes(p Parser[rune], b Bound) ParseFunc[string] {
	rep := Repeat(p, b)

	return func(st *state.State) (string, error) {
		rs, err := rep.Parse(st)
		if err != nil {
			return "", err
		}

		lb := pool.GetLexemeBuffer()
		defer pool.PutLexemeBuffer(lb)
		for _, r := range rs {
			lb.AppendRune(r)
		}

		return lb.String(), nil
	}
}
