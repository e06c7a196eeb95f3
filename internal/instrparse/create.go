package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// CreateParser builds `create(name, version, context?)` instructions.
type CreateParser struct {
	log *rerrors.Log
}

// Build assembles a Create. The context argument is optional.
func (p *CreateParser) Build(args []ast.Expr, assign ast.AssignTarget, log *rerrors.Log) *ast.Create {
	if len(args) != 2 && len(args) != 3 {
		log.Report(rerrors.ParseError, token.Position{}, "", "create() takes 2 or 3 arguments, got %d", len(args))
		return nil
	}
	n := &ast.Create{Args: args, Name: args[0], Version: args[1], Assign: assign}
	if len(args) == 3 {
		n.Context = args[2]
	}
	return n
}
