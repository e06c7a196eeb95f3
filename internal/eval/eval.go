// Package eval implements the nine instruction evaluators from spec.md
// §4.3. Each evaluator takes the instruction AST, the agent's memory
// (mutable), the current message and context (borrowed), and the
// Agency/Methodology handles it needs — never package-level globals, per
// spec.md §5's "wrap them as explicit handles passed down the call tree".
package eval

import (
	"github.com/quenio/agerun-go/internal/agent"
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/exprparse"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
)

// Evaluator runs instruction ASTs against one agent's memory, with access
// to the shared Methodology and Agency.
type Evaluator struct {
	Methodology *method.Methodology
	Agency      *agent.Agency
}

// New returns an Evaluator bound to the given registries.
func New(m *method.Methodology, ag *agent.Agency) *Evaluator {
	return &Evaluator{Methodology: m, Agency: ag}
}

// Eval dispatches instr to its evaluator and, if it has an assignment
// target, stores the evaluator's result into memory. agentID identifies
// the agent whose memory is being mutated; memory, message and context
// follow the borrowed/mutable contract of spec.md §4.2-4.3. log receives
// evaluation-error reports; evaluation failures degrade to a logged zero
// value rather than aborting the method body (spec.md §7).
func (e *Evaluator) Eval(instr ast.Instr, agentID int64, memory, message, context *value.Value, log *rerrors.Log) {
	result, assign := e.evalValue(instr, agentID, memory, message, context, log)
	storeResult(memory, assign, result)
}

// evalValue runs instr's side effect and returns its raw result value
// alongside its assignment target (nil if none). This is also how an
// if-branch that is itself a nested builtin call (spec.md §8 scenarios
// 3-4) obtains a value to propagate to the enclosing if's own assignment.
func (e *Evaluator) evalValue(instr ast.Instr, agentID int64, memory, message, context *value.Value, log *rerrors.Log) (*value.Value, ast.AssignTarget) {
	switch n := instr.(type) {
	case *ast.Assignment:
		e.evalAssignment(n, memory, message, context)
		return nil, nil
	case *ast.Send:
		return e.evalSendValue(n, memory, message, context, log), n.Assign
	case *ast.If:
		return e.evalIfValue(n, agentID, memory, message, context, log), n.Assign
	case *ast.Create:
		return e.evalCreateValue(n, memory, message, context, log), n.Assign
	case *ast.Exit:
		return e.evalExitValue(n, memory, message, context, log), n.Assign
	case *ast.Parse:
		return e.evalParseValue(n, memory, message, context), n.Assign
	case *ast.Build:
		return e.evalBuildValue(n, memory, message, context), n.Assign
	case *ast.MethodDefine:
		return e.evalMethodDefineValue(n, memory, message, context, log), n.Assign
	case *ast.MethodDestroy:
		return e.evalMethodDestroyValue(n, memory, message, context), n.Assign
	default:
		return nil, nil
	}
}

// evalBranch evaluates one arm of an if (spec.md §4.3): a plain expression,
// or — per the nested-call scenarios in spec.md §8 — a builtin call, run
// through evalValue so its own side effects happen and its result is
// available to the enclosing if's assignment.
func (e *Evaluator) evalBranch(b ast.Branch, agentID int64, memory, message, context *value.Value, log *rerrors.Log) *value.Value {
	if b.Instr != nil {
		result, _ := e.evalValue(b.Instr, agentID, memory, message, context, log)
		return result
	}
	return eval(b.Expr, memory, message, context)
}

// eval is a shorthand for the expression evaluator bound to this call's
// memory/message/context triple.
func eval(expr ast.Expr, memory, message, context *value.Value) *value.Value {
	return exprparse.Evaluate(expr, memory, message, context)
}

// storeResult writes result into memory at the instruction's assignment
// target, if any. Every evaluator in spec.md §4.3 "still returns success"
// and writes a fresh value when assigned; result is deep-copied since
// evaluators may pass a borrowed reference.
func storeResult(memory *value.Value, assign ast.AssignTarget, result *value.Value) {
	if assign == nil {
		return
	}
	memory.SetMapData(*assign, result.DeepCopy())
}

func truthy(v *value.Value) bool {
	return v != nil && v.Kind() == value.KindInt && v.AsInt() != 0
}

func asBool(ok bool) *value.Value {
	if ok {
		return value.NewInt(1)
	}
	return value.NewInt(0)
}
