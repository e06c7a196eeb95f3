package eval

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
)

// evalExitValue marks the evaluated agent id for destruction. Destruction
// itself is deferred: it enqueues __sleep__ and the runtime drops the
// agent once that message has been processed (spec.md §4.4-4.5).
func (e *Evaluator) evalExitValue(n *ast.Exit, memory, message, context *value.Value, log *rerrors.Log) *value.Value {
	agentVal := eval(n.Agent, memory, message, context)
	id := agentVal.AsInt()
	ok := e.Agency.MarkExiting(id)
	if !ok {
		log.Report(rerrors.EvalError, n.Pos(), n.String(), "exit: no such agent %d", id)
	}
	return asBool(ok)
}
