package dsl

import "fmt"

// LexError reports a malformed number or an unexpected character. It
// carries the 1-indexed source position where the lexer gave up.
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ParserError reports an unexpected token, a wrong arity for a vec2
// or vec3 literal, or trailing input after the root expression.
type ParserError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// TypeError reports an unknown function, a wrong arity, or a wrong
// argument type. ArgIndex is -1 when the error is not about a
// specific argument (unknown function, wrong arity).
type TypeError struct {
	Message  string
	Name     string
	ArgIndex int
}

func (e *TypeError) Error() string {
	if e.ArgIndex < 0 {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("%s arg %d: %s", e.Name, e.ArgIndex, e.Message)
}

// LoweringError reports a violated lowering-time invariant: a
// self-intersecting or non-convex polygon, non-literal shape data
// where a compile-time constant is required, a shape descriptor used
// outside its designated parent, or a sweep/blend2D path with no
// usable segments.
type LoweringError struct {
	Message string
}

func (e *LoweringError) Error() string {
	return e.Message
}

func newLoweringError(format string, args ...interface{}) *LoweringError {
	return &LoweringError{Message: fmt.Sprintf(format, args...)}
}
