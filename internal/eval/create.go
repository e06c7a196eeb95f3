package eval

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
)

// evalCreateValue looks up (name, version) in the Methodology; on success
// it allocates an agent, takes ownership of a deep copy of the evaluated
// context argument, and enqueues the implicit wake message. Returns the
// new agent id, or 0 on failure (spec.md §4.3).
func (e *Evaluator) evalCreateValue(n *ast.Create, memory, message, context *value.Value, log *rerrors.Log) *value.Value {
	nameVal := eval(n.Name, memory, message, context)
	versionVal := eval(n.Version, memory, message, context)
	name := nameVal.AsString()

	meth, ok := lookupMethod(e.Methodology, name, versionVal, log)
	if !ok {
		log.Report(rerrors.EvalError, n.Pos(), n.String(), "create: no method %q", name)
		return value.NewInt(0)
	}

	var ctx *value.Value
	if n.Context != nil {
		ctx = eval(n.Context, memory, message, context).DeepCopy()
	}

	id := e.Agency.Create(meth.Name, meth.Version, ctx)
	return value.NewInt(id)
}

// lookupMethod resolves a method by name and an evaluated version
// argument, accepting the literal string "latest" in addition to the
// string/map/list version encodings method.VersionFromValue understands.
func lookupMethod(m *method.Methodology, name string, versionVal *value.Value, log *rerrors.Log) (*method.Method, bool) {
	if versionVal != nil && versionVal.Kind() == value.KindString && versionVal.AsString() == "latest" {
		return m.Lookup(name, method.Semver{}, true)
	}
	version, ok := method.VersionFromValue(versionVal)
	if !ok {
		return nil, false
	}
	return m.Lookup(name, version, false)
}
