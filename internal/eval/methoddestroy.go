package eval

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/value"
)

// evalMethodDestroyValue unregisters (name, version), failing if any live
// agent still references it (spec.md §3, §4.3).
func (e *Evaluator) evalMethodDestroyValue(n *ast.MethodDestroy, memory, message, context *value.Value) *value.Value {
	name := eval(n.Name, memory, message, context).AsString()
	versionVal := eval(n.Version, memory, message, context)

	version, ok := method.VersionFromValue(versionVal)
	if !ok {
		return value.NewInt(0)
	}
	if e.Agency.ReferencesMethod(name, version) {
		return value.NewInt(0)
	}
	return asBool(e.Methodology.Unregister(name, version))
}
