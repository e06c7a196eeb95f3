package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// SendParser builds `send(target, message)` instructions.
type SendParser struct {
	log *rerrors.Log
}

// Build assembles a Send from the already-parsed argument expressions.
func (p *SendParser) Build(args []ast.Expr, assign ast.AssignTarget, log *rerrors.Log) *ast.Send {
	if len(args) != 2 {
		log.Report(rerrors.ParseError, token.Position{}, "", "send() takes exactly 2 arguments, got %d", len(args))
		return nil
	}
	return &ast.Send{Args: args, Target: args[0], Msg: args[1], Assign: assign}
}
