package strombol

import (
	"errors"
	"fmt"
)

// ErrEndOfInput reports that the stream was exhausted where input was
// required. It is an ordinary, expected failure: combinators treat it like
// any other parse failure and alternatives may still recover from it.
var ErrEndOfInput = errors.New("end of input")

// SyntaxError reports that an expected pattern was absent at a position.
type SyntaxError struct {
	// Label is a human-readable description of what was expected.
	Label string
	// Pos is the absolute stream position of the failed attempt.
	Pos int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse fail: %s at %d", e.Label, e.Pos)
}

// syntaxErr is shorthand for the failure primitives report.
func syntaxErr(label string, pos int) error {
	return &SyntaxError{Label: label, Pos: pos}
}

// TransformError reports that a syntactically matched value failed
// semantic validation or conversion. It wraps the cause rather than
// silently replacing it.
type TransformError struct {
	Label string
	Pos   int
	Cause error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform fail: %s at %d due to %v", e.Label, e.Pos, e.Cause)
}

func (e *TransformError) Unwrap() error {
	return e.Cause
}

// ExecError is an arbitrary failure raised by user code running inside a
// transform, e.g. a numeric overflow or a domain validation.
type ExecError struct {
	Msg string
}

func (e *ExecError) Error() string {
	return "logic error: " + e.Msg
}

// Execf builds an ExecError for returning from a transform function.
func Execf(format string, args ...any) error {
	return &ExecError{Msg: fmt.Sprintf(format, args...)}
}
