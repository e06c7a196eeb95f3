package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// ParseBuiltinParser builds `parse(template, input)` instructions.
type ParseBuiltinParser struct {
	log *rerrors.Log
}

// Build assembles a Parse.
func (p *ParseBuiltinParser) Build(args []ast.Expr, assign ast.AssignTarget, log *rerrors.Log) *ast.Parse {
	if len(args) != 2 {
		log.Report(rerrors.ParseError, token.Position{}, "", "parse() takes exactly 2 arguments, got %d", len(args))
		return nil
	}
	return &ast.Parse{Args: args, Template: args[0], Input: args[1], Assign: assign}
}
