package eval

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/value"
)

// evalBuildValue replaces each `{name}` in template with the string
// rendering of the matching key in the evaluated map argument (spec.md
// §4.3).
func (e *Evaluator) evalBuildValue(n *ast.Build, memory, message, context *value.Value) *value.Value {
	template := eval(n.Template, memory, message, context).AsString()
	mapVal := eval(n.Map, memory, message, context)
	return value.NewString(renderTemplate(template, mapVal))
}
