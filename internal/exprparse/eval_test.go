package exprparse

import (
	"testing"

	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/value"
)

func TestArithmeticTypeTable(t *testing.T) {
	tests := []struct {
		name       string
		left       *value.Value
		op         ast.BinOp
		right      *value.Value
		wantKind   value.Kind
		wantInt    int64
		wantDouble float64
	}{
		{"int+int", value.NewInt(2), ast.OpAdd, value.NewInt(3), value.KindInt, 5, 0},
		{"int/int by zero", value.NewInt(7), ast.OpDiv, value.NewInt(0), value.KindInt, 0, 0},
		{"double promotes mixed add", value.NewInt(2), ast.OpAdd, value.NewDouble(0.5), value.KindDouble, 0, 2.5},
		{"double/double by zero", value.NewDouble(3), ast.OpDiv, value.NewDouble(0), value.KindDouble, 0, 0},
		{"string+string concatenates", value.NewString("a"), ast.OpAdd, value.NewString("b"), value.KindString, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalBinary(tt.op, tt.left, tt.right)
			if got.Kind() != tt.wantKind {
				t.Fatalf("kind: got %v, want %v", got.Kind(), tt.wantKind)
			}
			switch tt.wantKind {
			case value.KindInt:
				if got.AsInt() != tt.wantInt {
					t.Fatalf("got %d, want %d", got.AsInt(), tt.wantInt)
				}
			case value.KindDouble:
				if got.AsDouble() != tt.wantDouble {
					t.Fatalf("got %v, want %v", got.AsDouble(), tt.wantDouble)
				}
			}
		})
	}
}

func TestStringSubtractionIsInvalidAndProducesZero(t *testing.T) {
	got := evalBinary(ast.OpSub, value.NewString("a"), value.NewString("b"))
	if got.Kind() != value.KindInt || got.AsInt() != 0 {
		t.Fatalf("expected int 0, got %v %v", got.Kind(), got)
	}
}

func TestStringConcatenation(t *testing.T) {
	got := evalBinary(ast.OpAdd, value.NewString("foo"), value.NewString("bar"))
	if got.AsString() != "foobar" {
		t.Fatalf("expected foobar, got %q", got.AsString())
	}
}

func TestComparisonsProduceIntegerZeroOrOne(t *testing.T) {
	tests := []struct {
		op   ast.BinOp
		want int64
	}{
		{ast.OpLt, 1},
		{ast.OpLte, 1},
		{ast.OpGt, 0},
		{ast.OpGte, 0},
		{ast.OpEq, 0},
		{ast.OpNeq, 1},
	}
	for _, tt := range tests {
		got := evalBinary(tt.op, value.NewInt(2), value.NewInt(5))
		if got.Kind() != value.KindInt {
			t.Fatalf("comparison result must be int, got %v", got.Kind())
		}
		if got.AsInt() != tt.want {
			t.Fatalf("op %v: got %d, want %d", tt.op, got.AsInt(), tt.want)
		}
	}
}

func TestLexicographicStringComparison(t *testing.T) {
	got := evalBinary(ast.OpLt, value.NewString("apple"), value.NewString("banana"))
	if got.AsInt() != 1 {
		t.Fatalf("expected apple < banana, got %d", got.AsInt())
	}
}

func TestMemoryAccessMissYieldsTypedZeroUnderArithmetic(t *testing.T) {
	mem := value.NewMap()
	node := &ast.MemoryAccess{Base: ast.BaseMemory, Path: []string{"x", "y", "z"}}
	missing := Evaluate(node, mem, nil, nil)
	if missing != nil {
		t.Fatalf("expected nil for missing path, got %v", missing)
	}
	sum := evalBinary(ast.OpAdd, missing, value.NewInt(5))
	if sum.Kind() != value.KindInt || sum.AsInt() != 0 {
		t.Fatalf("expected typed zero, got %v", sum)
	}
}

func TestIncomparableKindsAreUnequal(t *testing.T) {
	got := evalBinary(ast.OpEq, value.NewInt(1), value.NewString("1"))
	if got.AsInt() != 0 {
		t.Fatalf("expected int vs string to be unequal, got %d", got.AsInt())
	}
	got = evalBinary(ast.OpNeq, value.NewInt(1), value.NewString("1"))
	if got.AsInt() != 1 {
		t.Fatalf("expected int vs string <> to be true, got %d", got.AsInt())
	}
}
