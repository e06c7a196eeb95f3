package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// MethodDefineParser builds `method(name, body, version)` instructions.
type MethodDefineParser struct {
	log *rerrors.Log
}

// Build assembles a MethodDefine.
func (p *MethodDefineParser) Build(args []ast.Expr, assign ast.AssignTarget, log *rerrors.Log) *ast.MethodDefine {
	if len(args) != 3 {
		log.Report(rerrors.ParseError, token.Position{}, "", "method() takes exactly 3 arguments, got %d", len(args))
		return nil
	}
	return &ast.MethodDefine{Args: args, Name: args[0], Body: args[1], Version: args[2], Assign: assign}
}
