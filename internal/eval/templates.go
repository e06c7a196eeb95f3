package eval

import (
	"strconv"
	"strings"

	"github.com/quenio/agerun-go/internal/value"
)

// templateToken is one piece of a parse()/build() template: either literal
// text to match/emit verbatim, or a `{name}` placeholder.
type templateToken struct {
	placeholder bool
	text        string // literal text, or the placeholder's name
}

// tokenizeTemplate splits a template string on `{name}` placeholders.
func tokenizeTemplate(template string) []templateToken {
	var tokens []templateToken
	var lit strings.Builder
	i := 0
	for i < len(template) {
		if template[i] == '{' {
			if end := strings.IndexByte(template[i:], '}'); end != -1 {
				if lit.Len() > 0 {
					tokens = append(tokens, templateToken{text: lit.String()})
					lit.Reset()
				}
				tokens = append(tokens, templateToken{placeholder: true, text: template[i+1 : i+end]})
				i += end + 1
				continue
			}
		}
		lit.WriteByte(template[i])
		i++
	}
	if lit.Len() > 0 {
		tokens = append(tokens, templateToken{text: lit.String()})
	}
	return tokens
}

// matchTemplate matches input against a template's literal segments,
// capturing the text between them under each placeholder's name. Returns
// ok=false on any mismatch, per spec.md §4.3 ("returns an empty map on
// mismatch").
func matchTemplate(template, input string) (map[string]string, bool) {
	tokens := tokenizeTemplate(template)
	captures := map[string]string{}
	pos := 0

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !tok.placeholder {
			if !strings.HasPrefix(input[pos:], tok.text) {
				return nil, false
			}
			pos += len(tok.text)
			continue
		}

		if i+1 >= len(tokens) {
			captures[tok.text] = input[pos:]
			pos = len(input)
			continue
		}
		next := tokens[i+1]
		if next.placeholder || next.text == "" {
			// Two placeholders with no literal separator: nothing to anchor
			// on, so the capture is empty and the following placeholder
			// starts at the same position.
			captures[tok.text] = ""
			continue
		}
		idx := strings.Index(input[pos:], next.text)
		if idx == -1 {
			return nil, false
		}
		captures[tok.text] = input[pos : pos+idx]
		pos += idx
	}

	// Input left over after the template's final literal is a mismatch.
	return captures, pos == len(input)
}

// renderTemplate replaces each `{name}` in template with the string
// rendering of vals[name] (spec.md §4.3). A placeholder with no matching
// key is left literally as `{name}`.
func renderTemplate(template string, vals *value.Value) string {
	tokens := tokenizeTemplate(template)
	var out strings.Builder
	for _, tok := range tokens {
		if !tok.placeholder {
			out.WriteString(tok.text)
			continue
		}
		v, ok := vals.MapGet(tok.text)
		if !ok {
			out.WriteString("{" + tok.text + "}")
			continue
		}
		out.WriteString(renderScalar(v))
	}
	return out.String()
}

// renderScalar stringifies a value for template substitution: integers as
// decimal, doubles in shortest round-trip form, strings as-is.
func renderScalar(v *value.Value) string {
	if v == nil {
		return ""
	}
	switch v.Kind() {
	case value.KindInt:
		return strconv.FormatInt(v.AsInt(), 10)
	case value.KindDouble:
		return strconv.FormatFloat(v.AsDouble(), 'g', -1, 64)
	case value.KindString:
		return v.AsString()
	default:
		return ""
	}
}
