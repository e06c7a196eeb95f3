package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// ExitParser builds `exit(agent)` instructions.
type ExitParser struct {
	log *rerrors.Log
}

// Build assembles an Exit.
func (p *ExitParser) Build(args []ast.Expr, assign ast.AssignTarget, log *rerrors.Log) *ast.Exit {
	if len(args) != 1 {
		log.Report(rerrors.ParseError, token.Position{}, "", "exit() takes exactly 1 argument, got %d", len(args))
		return nil
	}
	return &ast.Exit{Args: args, Agent: args[0], Assign: assign}
}
