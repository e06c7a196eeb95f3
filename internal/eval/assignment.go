package eval

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/value"
)

// evalAssignment evaluates n.Expr and writes a deep copy into memory at
// n.Target. Creating intermediate maps is permitted (spec.md §4.3).
func (e *Evaluator) evalAssignment(n *ast.Assignment, memory, message, context *value.Value) {
	result := eval(n.Expr, memory, message, context)
	memory.SetMapData(n.Target, result.DeepCopy())
}
