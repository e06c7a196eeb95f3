// Package ast defines the expression and instruction AST node types from
// spec.md §3: a 5-variant expression AST and a 9-variant instruction AST.
//
// Node shapes follow the teacher's internal/ast convention (a lexer Token
// retained for position/TokenLiteral, an explicit String() for debugging),
// narrowed to the handful of node kinds this language actually has.
package ast

import (
	"strconv"
	"strings"

	"github.com/quenio/agerun-go/internal/token"
)

// Expr is the common interface for every expression AST node.
type Expr interface {
	Pos() token.Position
	String() string
	exprNode()
}

// IntLiteral is a signed integer literal.
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (n *IntLiteral) exprNode()            {}
func (n *IntLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *IntLiteral) String() string       { return strconv.FormatInt(n.Value, 10) }

// DoubleLiteral is a signed floating point literal.
type DoubleLiteral struct {
	Token token.Token
	Value float64
}

func (n *DoubleLiteral) exprNode()           {}
func (n *DoubleLiteral) Pos() token.Position { return n.Token.Pos }
func (n *DoubleLiteral) String() string      { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// StringLiteral is a quoted string literal, already unescaped.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) exprNode()           {}
func (n *StringLiteral) Pos() token.Position { return n.Token.Pos }
func (n *StringLiteral) String() string      { return `"` + n.Value + `"` }

// Base names the accessor root of a MemoryAccess node.
type Base int

const (
	BaseMemory Base = iota
	BaseMessage
	BaseContext
)

func (b Base) String() string {
	switch b {
	case BaseMemory:
		return token.KeywordMemory
	case BaseMessage:
		return token.KeywordMessage
	case BaseContext:
		return token.KeywordContext
	default:
		return "?"
	}
}

// MemoryAccess reads (never writes) a path rooted at memory, message, or
// context: `memory.a.b`, `message`, `context.cfg`.
type MemoryAccess struct {
	Token token.Token
	Base  Base
	Path  []string // identifiers after the base keyword, may be empty
}

func (n *MemoryAccess) exprNode()           {}
func (n *MemoryAccess) Pos() token.Position { return n.Token.Pos }
func (n *MemoryAccess) String() string {
	parts := append([]string{n.Base.String()}, n.Path...)
	return strings.Join(parts, ".")
}

// BinOp is one of `+ - * / = <> < <= > >=` applied to two subtrees.
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "/"
	OpEq  BinOp = "="
	OpNeq BinOp = "<>"
	OpLt  BinOp = "<"
	OpLte BinOp = "<="
	OpGt  BinOp = ">"
	OpGte BinOp = ">="
)

// BinaryExpr owns both of its operand subtrees.
type BinaryExpr struct {
	Token token.Token
	Left  Expr
	Op    BinOp
	Right Expr
}

func (n *BinaryExpr) exprNode()           {}
func (n *BinaryExpr) Pos() token.Position { return n.Token.Pos }
func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + string(n.Op) + " " + n.Right.String() + ")"
}
