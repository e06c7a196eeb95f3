package exprparse

import (
	"testing"

	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
)

func mustParse(t *testing.T, src string) (*value.Value, *rerrors.Log) {
	t.Helper()
	log := rerrors.NewLog()
	node := New(src, log).ParseExpression()
	if node == nil {
		t.Fatalf("parse %q failed: %s", src, log.Format())
	}
	return Evaluate(node, value.NewMap(), nil, nil), log
}

func TestPrecedenceMultiplicativeBeforeAdditive(t *testing.T) {
	got, _ := mustParse(t, "2 + 3 * 4")
	if got.AsInt() != 14 {
		t.Fatalf("expected 14, got %d", got.AsInt())
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	got, _ := mustParse(t, "(2 + 3) * 4")
	if got.AsInt() != 20 {
		t.Fatalf("expected 20, got %d", got.AsInt())
	}
}

func TestSignedLiteralIsNotATreatedOperator(t *testing.T) {
	got, _ := mustParse(t, "-5 + 10")
	if got.AsInt() != 5 {
		t.Fatalf("expected 5, got %d", got.AsInt())
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	got, _ := mustParse(t, `"a\"b\\c"`)
	if got.AsString() != `a"b\c` {
		t.Fatalf("expected a\"b\\c, got %q", got.AsString())
	}
}

func TestTrailingInputIsRejected(t *testing.T) {
	log := rerrors.NewLog()
	node := New("1 + 2 3", log).ParseExpression()
	if node != nil {
		t.Fatal("expected nil for trailing garbage")
	}
	if log.Empty() {
		t.Fatal("expected a parse error to be logged")
	}
}

func TestParserDeterminism(t *testing.T) {
	src := "memory.a.b + message.c * (2 - 1)"
	log1, log2 := rerrors.NewLog(), rerrors.NewLog()
	n1 := New(src, log1).ParseExpression()
	n2 := New(src, log2).ParseExpression()
	if n1.String() != n2.String() {
		t.Fatalf("two fresh parsers disagree: %q vs %q", n1.String(), n2.String())
	}
}

func TestMemoryAccessChainsPath(t *testing.T) {
	log := rerrors.NewLog()
	node := New("memory.a.b.c", log).ParseExpression()
	if node == nil {
		t.Fatalf("parse failed: %s", log.Format())
	}
	if node.String() != "memory.a.b.c" {
		t.Fatalf("unexpected AST rendering: %q", node.String())
	}
}

func TestBareMemoryAccessHasEmptyPath(t *testing.T) {
	mem := value.NewMap()
	mem.MapSet("k", value.NewInt(9))
	log := rerrors.NewLog()
	node := New("memory", log).ParseExpression()
	got := Evaluate(node, mem, nil, nil)
	if got != mem {
		t.Fatalf("bare 'memory' should evaluate to the root map itself")
	}
}
