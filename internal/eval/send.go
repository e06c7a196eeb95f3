package eval

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
)

// evalSendValue evaluates target to an agent id and msg to any value.
// Target 0 is a no-op that reports success; otherwise a deep copy of msg
// is enqueued onto the target's queue, per spec.md §4.3.
func (e *Evaluator) evalSendValue(n *ast.Send, memory, message, context *value.Value, log *rerrors.Log) *value.Value {
	target := eval(n.Target, memory, message, context)
	msg := eval(n.Msg, memory, message, context)

	id := target.AsInt()
	ok := e.Agency.Send(id, msg)
	if !ok {
		log.Report(rerrors.EvalError, n.Pos(), n.String(), "send: no such agent %d", id)
	}
	return asBool(ok)
}
