package dsl

import "testing"

func TestLexErrorFormatsPosition(t *testing.T) {
	err := &LexError{Message: "unexpected character $", Line: 2, Column: 5}
	if got, want := err.Error(), "2:5: unexpected character $"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParserErrorFormatsPosition(t *testing.T) {
	err := &ParserError{Message: "expected RPAREN, got EOF", Line: 1, Column: 10}
	if got, want := err.Error(), "1:10: expected RPAREN, got EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTypeErrorFormatsArgIndex(t *testing.T) {
	err := &TypeError{Message: "expects f32, got vec3", Name: "sphere", ArgIndex: 0}
	if got, want := err.Error(), "sphere arg 0: expects f32, got vec3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTypeErrorWithoutArgIndex(t *testing.T) {
	err := &TypeError{Message: "unknown function", Name: "frobnicate", ArgIndex: -1}
	if got, want := err.Error(), "frobnicate: unknown function"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoweringErrorMessage(t *testing.T) {
	err := newLoweringError("polygon %s", "is self-intersecting")
	if got, want := err.Error(), "polygon is self-intersecting"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
