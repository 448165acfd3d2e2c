package dsl

import "testing"

func TestTokenizeSimpleCall(t *testing.T) {
	toks, err := NewLexer("sphere(1.5)").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []TokenKind{TokenIdent, TokenLParen, TokenNumber, TokenRParen, TokenEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[2].Value != 1.5 {
		t.Errorf("number value = %v, want 1.5", toks[2].Value)
	}
}

func TestTokenizeSkipsCommentsAndWhitespace(t *testing.T) {
	src := "  # a comment\n  union(sphere(1), sphere(2)) # trailing\n"
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != TokenIdent || toks[0].Lexeme != "union" {
		t.Errorf("first token = %v, want union ident", toks[0])
	}
}

func TestTokenizeLeadingDotNumber(t *testing.T) {
	toks, err := NewLexer(".5").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != TokenNumber || toks[0].Value != 0.5 {
		t.Errorf("got %v, want NUMBER 0.5", toks[0])
	}
}

func TestTokenizeTracksLineAndColumn(t *testing.T) {
	toks, err := NewLexer("a(\n1)").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	// tokens: IDENT(a) LPAREN NUMBER(1) RPAREN EOF
	num := toks[2]
	if num.Line != 2 || num.Column != 1 {
		t.Errorf("number token position = %d:%d, want 2:1", num.Line, num.Column)
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := NewLexer("sphere(1) $").Tokenize()
	if err == nil {
		t.Fatal("expected LexError for '$'")
	}
	if _, ok := err.(*LexError); !ok {
		t.Errorf("expected *LexError, got %T", err)
	}
}

func TestTokenizeIdentWithUnderscoreAndDigits(t *testing.T) {
	toks, err := NewLexer("hex_nut2(1,2,3)").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Lexeme != "hex_nut2" {
		t.Errorf("ident lexeme = %q, want hex_nut2", toks[0].Lexeme)
	}
}
