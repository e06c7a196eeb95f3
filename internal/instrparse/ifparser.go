package instrparse

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// IfParser builds `if(cond, then, else?)` instructions. Unlike the other
// eight sub-parsers it needs the raw argument text (not just the pre-parsed
// expression), since a branch may itself be a nested builtin call rather
// than a plain expression.
type IfParser struct {
	log *rerrors.Log
}

// Build assembles an If. args is the raw, unsplit argument text per
// position; exprs[0] is the condition's already-parsed expression (the
// condition is always a plain expression, per spec.md §4.3).
func (p *IfParser) Build(args []string, exprs []ast.Expr, assign ast.AssignTarget, f *Facade) *ast.If {
	if len(args) != 2 && len(args) != 3 {
		p.log.Report(rerrors.ParseError, token.Position{}, "", "if() takes 2 or 3 arguments, got %d", len(args))
		return nil
	}

	n := &ast.If{
		Args:   exprs[:1],
		Cond:   exprs[0],
		Then:   f.parseBranch(args[1]),
		Assign: assign,
	}
	if len(args) == 3 {
		elseBranch := f.parseBranch(args[2])
		n.Else = &elseBranch
	}
	return n
}
