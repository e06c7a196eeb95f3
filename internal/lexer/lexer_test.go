package lexer

import (
	"testing"

	"github.com/quenio/agerun-go/internal/token"
)

func TestOperatorsAndDelimiters(t *testing.T) {
	input := `. := , ( ) + - * / = <> < <= > >=`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.DOT, "."},
		{token.ASSIGN, ":="},
		{token.COMMA, ","},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.EQ, "="},
		{token.NOT_EQ, "<>"},
		{token.LT, "<"},
		{token.LT_EQ, "<="},
		{token.GT, ">"},
		{token.GT_EQ, ">="},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%v, got=%v", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input        string
		expectedType token.Type
	}{
		{"123", token.INT},
		{"1.5", token.FLOAT},
		{"0.25", token.FLOAT},
	}
	for _, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("%q: expected %v, got %v", tt.input, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.input {
			t.Fatalf("%q: expected literal %q, got %q", tt.input, tt.input, tok.Literal)
		}
	}
}

func TestIdentifiers(t *testing.T) {
	l := New("memory message context foo_bar baz2")
	want := []string{"memory", "message", "context", "foo_bar", "baz2"}
	for _, w := range want {
		tok := l.NextToken()
		if tok.Type != token.IDENT || tok.Literal != w {
			t.Fatalf("expected IDENT %q, got %v %q", w, tok.Type, tok.Literal)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tok := New(`"a\"b\\c"`).NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %v", tok.Type)
	}
	if tok.Literal != `a"b\c` {
		t.Fatalf("expected a\"b\\c, got %q", tok.Literal)
	}
}

func TestPositionsTrackLineAndColumn(t *testing.T) {
	l := New("a\nbb")
	first := l.NextToken() // "a" at line 1
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", first.Pos.Line, first.Pos.Column)
	}
	second := l.NextToken() // "bb" at line 2
	if second.Pos.Line != 2 || second.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %d:%d", second.Pos.Line, second.Pos.Column)
	}
}

func TestIllegalColonWithoutEquals(t *testing.T) {
	tok := New(":x").NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for bare ':', got %v", tok.Type)
	}
}
