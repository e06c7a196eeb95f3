package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/exprparse"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// AssignmentParser builds `memory.path := expr` instructions where the
// right-hand side is a plain expression, not one of the eight builtin calls.
type AssignmentParser struct {
	log *rerrors.Log
}

// Build parses exprText as an expression and wraps it with target.
func (p *AssignmentParser) Build(target, exprText string, pos token.Position) *ast.Assignment {
	expr := exprparse.New(exprText, p.log).ParseExpression()
	return &ast.Assignment{Token: token.Token{Pos: pos}, Target: target, Expr: expr}
}
