package strombol

import (
	"testing"

	"github.com/arloliu/strombol/state"
	"github.com/stretchr/testify/require"
)

func TestLiteral_FullMatch(t *testing.T) {
	st := newTestState(t, "abc def")

	v, err := Literal("abc ").Parse(st)
	require.NoError(t, err)
	require.Equal(t, "abc ", v)
	require.Equal(t, 4, st.Index())
}

func TestLiteral_ExactInput(t *testing.T) {
	st := newTestState(t, "hello")

	v, err := Literal("hello").Parse(st)
	require.NoError(t, err)
	require.Equal(t, "hello", v)
	require.Equal(t, len("hello"), st.Index())
	require.True(t, st.Finished())
}

func TestLiteral_LastCharAltered(t *testing.T) {
	st := newTestState(t, "hellx")

	_, err := Literal("hello").Parse(st)
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 4, se.Pos, "failure reported where the mismatch sits")
	require.Equal(t, 0, st.Index(), "zero net consumption")
}

func TestLiteral_PrematureEnd(t *testing.T) {
	st := newTestState(t, "hel")

	_, err := Literal("hello").Parse(st)
	require.ErrorIs(t, err, ErrEndOfInput)
	require.Equal(t, 0, st.Index())
}

func TestLiteral_Multibyte(t *testing.T) {
	st := newTestState(t, "üðx")

	v, err := Literal("üð").Parse(st)
	require.NoError(t, err)
	require.Equal(t, "üð", v)
	require.Equal(t, 2, st.Index(), "position counts characters, not bytes")
}

func TestInt_Signed(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		rest  int
	}{
		{"0", 0, 1},
		{"123", 123, 3},
		{"-123", -123, 4},
		{"123abc", 123, 3},
		{"-9223372036854775808", -9223372036854775808, 20},
	}

	for _, tc := range cases {
		st := newTestState(t, tc.input)
		v, err := Int[int64]().Parse(st)
		require.NoError(t, err, "input %q", tc.input)
		require.Equal(t, tc.want, v)
		require.Equal(t, tc.rest, st.Index())
	}
}

func TestInt_UnsignedRejectsSign(t *testing.T) {
	st := newTestState(t, "-12")

	_, err := Int[uint32]().Parse(st)
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 0, st.Index())

	v, err := Int[int32]().Parse(st)
	require.NoError(t, err)
	require.Equal(t, int32(-12), v)
}

func TestInt_NoDigits(t *testing.T) {
	st := newTestState(t, "abc")
	_, err := Int[int16]().Parse(st)
	require.Error(t, err)
	require.Equal(t, 0, st.Index())

	st = newTestState(t, "-x")
	_, err = Int[int16]().Parse(st)
	require.Error(t, err)
	require.Equal(t, 0, st.Index(), "consumed sign must be rewound")
}

func TestInt_Overflow(t *testing.T) {
	st := newTestState(t, "300")

	_, err := Int[int8]().Parse(st)
	require.Error(t, err)

	var te *TransformError
	require.ErrorAs(t, err, &te, "overflow is a semantic conversion failure")
	var ee *ExecError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, 0, st.Index(), "overflow rewinds the digits")

	v, err := Int[uint16]().Parse(st)
	require.NoError(t, err)
	require.Equal(t, uint16(300), v)
}

func TestInt_LongDigitRun(t *testing.T) {
	// Longer than the fixed scratch capacity; behavior must not change.
	st := newTestState(t, "000000000000000000000000000000042")

	v, err := Int[uint64]().Parse(st)
	require.NoError(t, err)
	require.Equal(t, uint64(42), v)
	require.True(t, st.Finished())
}

// Alternating signed and unsigned parsers over space-separated tokens.
func TestInt_AlternatingSequence(t *testing.T) {
	st := newTestState(t, "-1252 353 354 -1253 422345")
	space := Literal(" ")

	v1, err := Int[int64]().Parse(st)
	require.NoError(t, err)
	require.Equal(t, int64(-1252), v1)
	_, err = space.Parse(st)
	require.NoError(t, err)

	v2, err := Int[uint64]().Parse(st)
	require.NoError(t, err)
	require.Equal(t, uint64(353), v2)
	_, err = space.Parse(st)
	require.NoError(t, err)

	v3, err := Int[int64]().Parse(st)
	require.NoError(t, err)
	require.Equal(t, int64(354), v3)
	_, err = space.Parse(st)
	require.NoError(t, err)

	// The unsigned attempt on a negative token fails with no consumption.
	_, err = Int[uint64]().Parse(st)
	require.Error(t, err)

	v4, err := Int[int64]().Parse(st)
	require.NoError(t, err)
	require.Equal(t, int64(-1253), v4)
	_, err = space.Parse(st)
	require.NoError(t, err)

	v5, err := Int[uint64]().Parse(st)
	require.NoError(t, err)
	require.Equal(t, uint64(422345), v5)
	require.True(t, st.Finished())
}

func TestFloat_Vectors(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"1", 1.0},
		{"1.", 1.0},
		{"1.5", 1.5},
		{"-1.5", -1.5},
		{"-1.75", -1.75},
		{"2.5e-4", 0.00025},
		{"-2e-2", -0.02},
		{"-1.2e0", -1.2},
		{"3.25e+2", 325.0},
		{"12E2", 1200.0},
	}

	for _, tc := range cases {
		st := newTestState(t, tc.input)
		v, err := Float().Parse(st)
		require.NoError(t, err, "input %q", tc.input)
		require.Equal(t, tc.want, v, "input %q", tc.input)
		require.True(t, st.Finished(), "input %q fully consumed", tc.input)
	}
}

func TestFloat_DanglingExponent(t *testing.T) {
	st := newTestState(t, "1e")

	v, err := Float().Parse(st)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	require.Equal(t, 1, st.Index(), "the marker is not part of the number")

	st = newTestState(t, "2.5e-x")
	v, err = Float().Parse(st)
	require.NoError(t, err)
	require.Equal(t, 2.5, v)
	require.Equal(t, 3, st.Index())
}

func TestFloat_Failures(t *testing.T) {
	for _, input := range []string{".5", "-", "-.5", "abc"} {
		st := newTestState(t, input)
		_, err := Float().Parse(st)
		require.Error(t, err, "input %q", input)
		require.Equal(t, 0, st.Index(), "input %q", input)
	}

	st := newTestState(t, "")
	_, err := Float().Parse(st)
	require.ErrorIs(t, err, ErrEndOfInput)
}

func TestOneOf(t *testing.T) {
	st := newTestState(t, "ba")
	p := OneOf("ab")

	r, err := p.Parse(st)
	require.NoError(t, err)
	require.Equal(t, 'b', r)

	r, err = p.Parse(st)
	require.NoError(t, err)
	require.Equal(t, 'a', r)

	_, err = p.Parse(st)
	require.ErrorIs(t, err, ErrEndOfInput)
}

func TestOneOf_NoMatchRewinds(t *testing.T) {
	st := newTestState(t, "x")

	_, err := OneOf("ab").Parse(st)
	require.Error(t, err)
	require.Equal(t, 0, st.Index())
}

func TestNoneOf(t *testing.T) {
	st := newTestState(t, "xa")
	p := NoneOf("ab")

	r, err := p.Parse(st)
	require.NoError(t, err)
	require.Equal(t, 'x', r)

	_, err = p.Parse(st)
	require.Error(t, err)
	require.Equal(t, 1, st.Index())
}

func TestOneOf_LargeSet(t *testing.T) {
	// Above the linear-scan threshold the hashed representation takes
	// over; matching behavior must not change.
	set := "abcdefghijklmnopqrstuvwxyz0123456789"
	st := newTestState(t, "q!")

	r, err := OneOf(set).Parse(st)
	require.NoError(t, err)
	require.Equal(t, 'q', r)

	_, err = OneOf(set).Parse(st)
	require.Error(t, err)
	require.Equal(t, 1, st.Index())
}

func TestWhitespace(t *testing.T) {
	st := newTestState(t, " \t\r\n x")

	_, err := Whitespace().Parse(st)
	require.NoError(t, err)
	require.Equal(t, 5, st.Index())

	// Zero whitespace characters still succeed.
	_, err = Whitespace().Parse(st)
	require.NoError(t, err)
	require.Equal(t, 5, st.Index())
}

func TestStringOf(t *testing.T) {
	st := newTestState(t, "110217x")

	v, err := StringOf("0123456789", Min(1)).Parse(st)
	require.NoError(t, err)
	require.Equal(t, "110217", v)
	require.Equal(t, 6, st.Index())

	_, err = StringOf("0123456789", Min(1)).Parse(st)
	require.Error(t, err)
	require.Equal(t, 6, st.Index())
}

func TestStringNoneOf(t *testing.T) {
	st := newTestState(t, `hello world"rest`)

	v, err := StringNoneOf(`"`, Unbounded()).Parse(st)
	require.NoError(t, err)
	require.Equal(t, "hello world", v)

	// Zero matches with no minimum yields the empty string.
	v, err = StringNoneOf(`"`, Unbounded()).Parse(st)
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestStringOf_EncounterOrderMultibyte(t *testing.T) {
	st := newTestState(t, "üðüx")

	v, err := StringOf("üð", Min(1)).Parse(st)
	require.NoError(t, err)
	require.Equal(t, "üðü", v)
}

func BenchmarkInt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		st := state.New("-1252352")
		if _, err := Int[int64]().Parse(st); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFloat(b *testing.B) {
	p := Float()
	for i := 0; i < b.N; i++ {
		st := state.New("-1252.352e-2")
		if _, err := p.Parse(st); err != nil {
			b.Fatal(err)
		}
	}
}
