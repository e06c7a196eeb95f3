package eval

import (
	"strings"

	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/instrparse"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
)

// evalMethodDefineValue parses body as an instruction sequence, and on
// success registers a new Method under (name, version); it rejects a
// duplicate (name, version) pair. Returns 1/0 (spec.md §4.3).
func (e *Evaluator) evalMethodDefineValue(n *ast.MethodDefine, memory, message, context *value.Value, log *rerrors.Log) *value.Value {
	name := eval(n.Name, memory, message, context).AsString()
	source := eval(n.Body, memory, message, context).AsString()
	versionVal := eval(n.Version, memory, message, context)

	version, ok := method.VersionFromValue(versionVal)
	if !ok {
		log.Report(rerrors.EvalError, n.Pos(), n.String(), "method: invalid version for %q", name)
		return value.NewInt(0)
	}

	body, ok := ParseMethodBody(source, log)
	if !ok {
		log.Report(rerrors.ParseError, n.Pos(), n.String(), "method: failed to parse body for %q", name)
		return value.NewInt(0)
	}

	registered := e.Methodology.Register(&method.Method{Name: name, Version: version, Body: body, Source: source})
	return asBool(registered)
}

// ParseMethodBody compiles a method's line-oriented instruction source
// into an ordered instruction-AST sequence (spec.md §6): empty lines and
// `#`-prefixed comment lines are skipped, and every remaining line must
// parse as exactly one of the nine instruction kinds. Exported so
// internal/persist can recompile a method loaded from methodology.agerun.
func ParseMethodBody(source string, log *rerrors.Log) ([]ast.Instr, bool) {
	facade := instrparse.New(log)
	var body []ast.Instr
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		instr := facade.Parse(trimmed)
		if instr == nil {
			return nil, false
		}
		body = append(body, instr)
	}
	return body, true
}
