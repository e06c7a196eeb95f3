package eval

import (
	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/value"
)

// evalParseValue matches input against template's `{name}` placeholders,
// producing a map of captured substrings. An empty map is returned on
// mismatch (spec.md §4.3).
func (e *Evaluator) evalParseValue(n *ast.Parse, memory, message, context *value.Value) *value.Value {
	template := eval(n.Template, memory, message, context).AsString()
	input := eval(n.Input, memory, message, context).AsString()

	captures, ok := matchTemplate(template, input)
	result := value.NewMap()
	if !ok {
		return result
	}
	for name, captured := range captures {
		result.MapSet(name, value.NewString(captured))
	}
	return result
}
