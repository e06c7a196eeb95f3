package exprparse

import (
	"strings"

	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/value"
)

// Evaluate walks an expression AST and produces a Value, per spec.md §4.2.
// It is stateless: memory, message, and context are borrowed references
// supplied by the caller (typically an instruction evaluator). message and
// context may be nil when an instruction context has none to offer.
//
// Literals produce fresh owned Values. Memory access returns a borrowed
// reference into the named map (nil if any path component is missing or
// traverses a non-map). Callers that store the result must DeepCopy it.
func Evaluate(node ast.Expr, memory, message, context *value.Value) *value.Value {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return value.NewInt(n.Value)
	case *ast.DoubleLiteral:
		return value.NewDouble(n.Value)
	case *ast.StringLiteral:
		return value.NewString(n.Value)
	case *ast.MemoryAccess:
		return evalMemoryAccess(n, memory, message, context)
	case *ast.BinaryExpr:
		left := Evaluate(n.Left, memory, message, context)
		right := Evaluate(n.Right, memory, message, context)
		return evalBinary(n.Op, left, right)
	default:
		return nil
	}
}

func evalMemoryAccess(n *ast.MemoryAccess, memory, message, context *value.Value) *value.Value {
	var root *value.Value
	switch n.Base {
	case ast.BaseMemory:
		root = memory
	case ast.BaseMessage:
		root = message
	case ast.BaseContext:
		root = context
	}
	if len(n.Path) == 0 {
		return root
	}
	return root.NavigatePath(n.Path)
}

func evalBinary(op ast.BinOp, left, right *value.Value) *value.Value {
	lk, rk := kindOf(left), kindOf(right)

	if isComparison(op) {
		return evalComparison(op, left, right, lk, rk)
	}

	switch {
	case lk == value.KindString && rk == value.KindString:
		return evalStringArith(op, left, right)
	case isNumeric(lk) && isNumeric(rk):
		return evalNumericArith(op, left, right, lk, rk)
	default:
		return value.NewInt(0)
	}
}

// kindOf returns the Kind of v, or a sentinel -1 for a nil (NULL) value so
// arithmetic/comparison against a missing memory access degrades to the
// typed-zero contract in spec.md §8 rather than panicking.
func kindOf(v *value.Value) value.Kind {
	if v == nil {
		return -1
	}
	return v.Kind()
}

func isNumeric(k value.Kind) bool { return k == value.KindInt || k == value.KindDouble }

func isComparison(op ast.BinOp) bool {
	switch op {
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return true
	default:
		return false
	}
}

func asBool(b bool) *value.Value {
	if b {
		return value.NewInt(1)
	}
	return value.NewInt(0)
}

func evalComparison(op ast.BinOp, left, right *value.Value, lk, rk value.Kind) *value.Value {
	var cmp int
	switch {
	case lk == value.KindString && rk == value.KindString:
		cmp = strings.Compare(left.AsString(), right.AsString())
	case isNumeric(lk) && isNumeric(rk):
		ld, rd := numericAsDouble(left, lk), numericAsDouble(right, rk)
		switch {
		case ld < rd:
			cmp = -1
		case ld > rd:
			cmp = 1
		default:
			cmp = 0
		}
	default:
		// Incomparable kinds: only equality/inequality are meaningful, and
		// values of different shapes are simply unequal.
		return asBool(op == ast.OpNeq)
	}

	switch op {
	case ast.OpEq:
		return asBool(cmp == 0)
	case ast.OpNeq:
		return asBool(cmp != 0)
	case ast.OpLt:
		return asBool(cmp < 0)
	case ast.OpLte:
		return asBool(cmp <= 0)
	case ast.OpGt:
		return asBool(cmp > 0)
	default: // OpGte
		return asBool(cmp >= 0)
	}
}

func numericAsDouble(v *value.Value, k value.Kind) float64 {
	if k == value.KindInt {
		return float64(v.AsInt())
	}
	return v.AsDouble()
}

func evalStringArith(op ast.BinOp, left, right *value.Value) *value.Value {
	if op == ast.OpAdd {
		return value.NewString(left.AsString() + right.AsString())
	}
	// "-", "*", "/" on two strings is invalid and produces 0, per spec.md §4.2.
	return value.NewInt(0)
}

func evalNumericArith(op ast.BinOp, left, right *value.Value, lk, rk value.Kind) *value.Value {
	if lk == value.KindInt && rk == value.KindInt {
		l, r := left.AsInt(), right.AsInt()
		switch op {
		case ast.OpAdd:
			return value.NewInt(l + r)
		case ast.OpSub:
			return value.NewInt(l - r)
		case ast.OpMul:
			return value.NewInt(l * r)
		case ast.OpDiv:
			if r == 0 {
				return value.NewInt(0)
			}
			return value.NewInt(l / r)
		}
	}

	l, r := numericAsDouble(left, lk), numericAsDouble(right, rk)
	switch op {
	case ast.OpAdd:
		return value.NewDouble(l + r)
	case ast.OpSub:
		return value.NewDouble(l - r)
	case ast.OpMul:
		return value.NewDouble(l * r)
	case ast.OpDiv:
		if r == 0 {
			return value.NewDouble(0)
		}
		return value.NewDouble(l / r)
	default:
		return value.NewDouble(0)
	}
}
