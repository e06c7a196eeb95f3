package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// BuildBuiltinParser builds `build(template, map)` instructions.
type BuildBuiltinParser struct {
	log *rerrors.Log
}

// Build assembles a Build.
func (p *BuildBuiltinParser) Build(args []ast.Expr, assign ast.AssignTarget, log *rerrors.Log) *ast.Build {
	if len(args) != 2 {
		log.Report(rerrors.ParseError, token.Position{}, "", "build() takes exactly 2 arguments, got %d", len(args))
		return nil
	}
	return &ast.Build{Args: args, Template: args[0], Map: args[1], Assign: assign}
}
