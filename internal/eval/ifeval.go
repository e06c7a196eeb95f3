package eval

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
)

// evalIfValue evaluates n.Cond; truthy iff integer non-zero. Only the
// selected branch runs (spec.md §4.3) — the other is never touched, so a
// side-effecting branch (a nested send or if) only fires when chosen.
func (e *Evaluator) evalIfValue(n *ast.If, agentID int64, memory, message, context *value.Value, log *rerrors.Log) *value.Value {
	cond := eval(n.Cond, memory, message, context)
	if truthy(cond) {
		return e.evalBranch(n.Then, agentID, memory, message, context, log)
	}
	if n.Else != nil {
		return e.evalBranch(*n.Else, agentID, memory, message, context, log)
	}
	return nil
}
