// Package rerrors provides the positional error reporting shared by every
// parser and evaluator in the runtime (spec.md §7).
//
// It is grounded on the teacher's internal/errors package: a report carries
// a message plus a source position and can be rendered with a caret pointing
// at the offending column. Unlike the teacher, a rerrors.Log is a borrowed
// dependency injected into every parser/evaluator at construction rather
// than a single ad-hoc CompilerError value, matching spec.md §7
// ("each parser owns a log handle... injected at construction").
package rerrors

import (
	"fmt"
	"strings"

	"github.com/quenio/agerun-go/internal/token"
)

// Kind classifies a Report per spec.md §7.
type Kind int

const (
	ParseError Kind = iota
	EvalError
	ResourceError
	PersistError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case EvalError:
		return "evaluation error"
	case ResourceError:
		return "resource error"
	case PersistError:
		return "persistence error"
	default:
		return "error"
	}
}

// Report is a single (message, position, kind) record.
type Report struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string // the line/fragment the position is relative to, for context
}

// Format renders the report with a source line and caret, in the teacher's
// style. The output is plain text with no color or terminal escapes.
func (r Report) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %s: %s\n", r.Kind, r.Pos, r.Message)
	if r.Source != "" {
		sb.WriteString(r.Source)
		sb.WriteString("\n")
		col := r.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteString("^\n")
	}
	return sb.String()
}

// Log accumulates reports. It is the "log sink" borrowed reference that
// spec.md §4.2/§4.3 requires every parser to be constructed with.
type Log struct {
	reports []Report
}

// NewLog returns an empty Log.
func NewLog() *Log { return &Log{} }

// Report appends a report to the log. It never panics or aborts the
// caller — per spec.md §7 the runtime keeps going by default.
func (l *Log) Report(kind Kind, pos token.Position, source, format string, args ...any) {
	if l == nil {
		return
	}
	l.reports = append(l.reports, Report{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		Source:  source,
	})
}

// Reports returns all reports recorded so far, oldest first.
func (l *Log) Reports() []Report {
	if l == nil {
		return nil
	}
	return l.reports
}

// First returns the first recorded report, or the zero Report and false if
// none were recorded. Embedders that want strict behavior use this to turn
// the first error into their own failure, per spec.md §7.
func (l *Log) First() (Report, bool) {
	if l == nil || len(l.reports) == 0 {
		return Report{}, false
	}
	return l.reports[0], true
}

// Empty reports whether no errors have been logged.
func (l *Log) Empty() bool { return l == nil || len(l.reports) == 0 }

// Format renders every report, one per paragraph.
func (l *Log) Format() string {
	if l.Empty() {
		return ""
	}
	var sb strings.Builder
	for _, r := range l.reports {
		sb.WriteString(r.Format())
	}
	return sb.String()
}
