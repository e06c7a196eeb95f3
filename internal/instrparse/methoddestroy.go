package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// MethodDestroyParser builds `destroy_method(name, version)` instructions.
type MethodDestroyParser struct {
	log *rerrors.Log
}

// Build assembles a MethodDestroy.
func (p *MethodDestroyParser) Build(args []ast.Expr, assign ast.AssignTarget, log *rerrors.Log) *ast.MethodDestroy {
	if len(args) != 2 {
		log.Report(rerrors.ParseError, token.Position{}, "", "destroy_method() takes exactly 2 arguments, got %d", len(args))
		return nil
	}
	return &ast.MethodDestroy{Args: args, Name: args[0], Version: args[1], Assign: assign}
}
