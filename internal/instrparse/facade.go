// Package instrparse implements the L3 instruction front end from spec.md
// §4.3: a facade over nine specialized, instantiable sub-parsers (one per
// instruction kind), sharing the "peel the optional `memory.path :=` prefix,
// then the `(args...)` envelope" helper the Design Notes in spec.md §9
// recommend keeping.
package instrparse

import (
	"reflect"
	"strings"

	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/exprparse"
	"github.com/quenio/agerun-go/internal/lexer"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
)

// Facade dispatches a single instruction-source line to the matching
// sub-parser based on its first significant token.
type Facade struct {
	log           *rerrors.Log
	assignment    *AssignmentParser
	send          *SendParser
	ifParser      *IfParser
	create        *CreateParser
	exit          *ExitParser
	parseBuiltin  *ParseBuiltinParser
	buildBuiltin  *BuildBuiltinParser
	methodDefine  *MethodDefineParser
	methodDestroy *MethodDestroyParser
}

// New constructs a Facade and its nine sub-parsers, all sharing log.
func New(log *rerrors.Log) *Facade {
	return &Facade{
		log:           log,
		assignment:    &AssignmentParser{log: log},
		send:          &SendParser{log: log},
		ifParser:      &IfParser{log: log},
		create:        &CreateParser{log: log},
		exit:          &ExitParser{log: log},
		parseBuiltin:  &ParseBuiltinParser{log: log},
		buildBuiltin:  &BuildBuiltinParser{log: log},
		methodDefine:  &MethodDefineParser{log: log},
		methodDestroy: &MethodDestroyParser{log: log},
	}
}

// funcNames lists the builtin function keywords the facade recognizes
// after an optional `memory.path :=` assignment prefix.
var funcNames = map[string]bool{
	"send": true, "if": true, "create": true, "exit": true,
	"parse": true, "build": true, "method": true, "destroy_method": true,
}

// Parse parses one non-empty, non-comment instruction line into an
// ast.Instr. Returns nil (with a report appended to the log) if the line
// does not match exactly one of the nine instruction kinds.
func (f *Facade) Parse(line string) ast.Instr {
	target, hasTarget, rest, restPos := peelAssignPrefix(line, f.log)
	name, argsText, ok := peelCallEnvelope(rest, restPos, f.log)

	if !ok {
		if hasTarget {
			return f.assignment.Build(target, rest, restPos)
		}
		f.log.Report(rerrors.ParseError, restPos, line, "unrecognized instruction")
		return nil
	}

	var assign ast.AssignTarget
	if hasTarget {
		assign = &target
	}
	return f.buildCall(name, argsText, assign, restPos)
}

// buildCall dispatches a recognized `name(argsText)` call to its sub-parser.
// It is also the recursion point buildIf uses to parse a then/else branch
// that is itself a nested builtin call.
func (f *Facade) buildCall(name, argsText string, assign ast.AssignTarget, pos token.Position) ast.Instr {
	args := splitArgs(argsText)
	exprs := make([]ast.Expr, len(args))

	// if's then/else branches are not plain expressions: they may be nested
	// builtin calls (send(...), a nested if(...)), and IfParser.Build owns
	// parsing them itself via parseBranch. Only the condition (args[0]) is
	// always a plain expression, so only it is eagerly parsed here; eagerly
	// running the branches through the expression parser would report
	// spurious errors on valid nested-call branches.
	eager := len(args)
	if name == "if" && eager > 1 {
		eager = 1
	}
	for i := 0; i < eager; i++ {
		exprs[i] = exprparse.New(args[i], f.log).ParseExpression()
	}

	// Each sub-parser's Build returns its own concrete *ast.X type, which is
	// nil on a reported error. Assigning a nil concrete pointer straight
	// into the ast.Instr return value would box it as a non-nil interface
	// (the interface's type word is still set), so callers' `instr == nil`
	// checks would miss the failure and the evaluator would later
	// dereference that nil pointer. asInstr unboxes back to a true nil
	// interface in that case.
	switch name {
	case "send":
		return asInstr(f.send.Build(exprs, assign, f.log))
	case "if":
		return asInstr(f.ifParser.Build(args, exprs, assign, f))
	case "create":
		return asInstr(f.create.Build(exprs, assign, f.log))
	case "exit":
		return asInstr(f.exit.Build(exprs, assign, f.log))
	case "parse":
		return asInstr(f.parseBuiltin.Build(exprs, assign, f.log))
	case "build":
		return asInstr(f.buildBuiltin.Build(exprs, assign, f.log))
	case "method":
		return asInstr(f.methodDefine.Build(exprs, assign, f.log))
	case "destroy_method":
		return asInstr(f.methodDestroy.Build(exprs, assign, f.log))
	default:
		f.log.Report(rerrors.ParseError, pos, "", "unknown builtin %q", name)
		return nil
	}
}

// asInstr unboxes a sub-parser's concrete *ast.X result into the ast.Instr
// interface, collapsing a nil concrete pointer to a true nil interface
// instead of a non-nil interface wrapping a nil pointer.
func asInstr(n ast.Instr) ast.Instr {
	if n == nil {
		return nil
	}
	if v := reflect.ValueOf(n); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	return n
}

// parseBranch parses one then/else argument of an if(...) call. If argText
// is itself a recognized builtin call (e.g. `send(...)`, a nested `if(...)`),
// it recurses through buildCall; otherwise it falls back to a plain
// expression, per the ast.Branch design.
func (f *Facade) parseBranch(argText string) ast.Branch {
	pos := firstTokenPos(argText)
	if name, inner, ok := peelCallEnvelope(argText, pos, f.log); ok {
		return ast.Branch{Instr: f.buildCall(name, inner, nil, pos)}
	}
	return ast.Branch{Expr: exprparse.New(argText, f.log).ParseExpression()}
}

// peelAssignPrefix recognizes the facade by scanning for `:=` before the
// function token, per spec.md §4.3. It returns the dotted target path (sans
// the leading "memory."), whether one was found, the remaining source text,
// and that remainder's starting position.
func peelAssignPrefix(line string, log *rerrors.Log) (target string, hasTarget bool, rest string, restPos token.Position) {
	trimmed := strings.TrimSpace(line)
	l := lexer.New(trimmed)
	first := l.NextToken()
	if first.Type != token.IDENT || first.Literal != token.KeywordMemory {
		return "", false, trimmed, firstTokenPos(trimmed)
	}

	var parts []string
	tok := l.NextToken()
	for tok.Type == token.DOT {
		ident := l.NextToken()
		if ident.Type != token.IDENT {
			log.Report(rerrors.ParseError, ident.Pos, line, "expected identifier after '.', found %q", ident.Literal)
			return "", false, trimmed, firstTokenPos(trimmed)
		}
		parts = append(parts, ident.Literal)
		tok = l.NextToken()
	}
	if tok.Type != token.ASSIGN {
		// "memory..." without ":=" isn't an assignment prefix at all; let
		// the caller try the whole line as a call envelope (and fail there
		// with a clearer error if it isn't one either).
		return "", false, trimmed, firstTokenPos(trimmed)
	}

	remainder := strings.TrimSpace(trimmed[tok.Pos.Offset+len(tok.Literal):])
	return strings.Join(parts, "."), true, remainder, tokenPosAt(trimmed, tok.Pos.Offset+len(tok.Literal))
}

// peelCallEnvelope recognizes `name(args)` at the start of rest, returning
// the builtin name and the raw (unsplit) argument text between the parens.
// ok is false if rest isn't a recognized builtin call.
func peelCallEnvelope(rest string, restPos token.Position, log *rerrors.Log) (name, argsText string, ok bool) {
	l := lexer.New(rest)
	first := l.NextToken()
	if first.Type != token.IDENT || !funcNames[first.Literal] {
		return "", "", false
	}
	lparen := l.NextToken()
	if lparen.Type != token.LPAREN {
		return "", "", false
	}

	open := lparen.Pos.Offset
	close, found := matchingParen(rest, open)
	if !found {
		log.Report(rerrors.ParseError, restPos, rest, "unterminated argument list for %q", first.Literal)
		return "", "", false
	}
	if strings.TrimSpace(rest[close+1:]) != "" {
		log.Report(rerrors.ParseError, restPos, rest, "unexpected trailing input after %q call", first.Literal)
		return "", "", false
	}

	return first.Literal, rest[open+1 : close], true
}

// matchingParen returns the index of the ')' matching the '(' at openIdx,
// skipping over nested parens and quoted strings.
func matchingParen(s string, openIdx int) (int, bool) {
	depth := 0
	inString := false
	for i := openIdx; i < len(s); i++ {
		switch s[i] {
		case '"':
			if !inString || i == 0 || s[i-1] != '\\' {
				inString = !inString
			}
		case '(':
			if !inString {
				depth++
			}
		case ')':
			if !inString {
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}
	return 0, false
}

// splitArgs splits argsText on top-level commas: quotes and parens nest,
// and each piece has its surrounding whitespace trimmed, per spec.md §4.3.
func splitArgs(argsText string) []string {
	if strings.TrimSpace(argsText) == "" {
		return nil
	}
	var args []string
	depth := 0
	inString := false
	start := 0
	for i := 0; i < len(argsText); i++ {
		switch argsText[i] {
		case '"':
			if !inString || i == 0 || argsText[i-1] != '\\' {
				inString = !inString
			}
		case '(':
			if !inString {
				depth++
			}
		case ')':
			if !inString {
				depth--
			}
		case ',':
			if !inString && depth == 0 {
				args = append(args, strings.TrimSpace(argsText[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(argsText[start:]))
	return args
}

func firstTokenPos(s string) token.Position {
	return lexer.New(s).NextToken().Pos
}

func tokenPosAt(s string, offset int) token.Position {
	if offset >= len(s) {
		return token.Position{Line: 1, Column: offset + 1, Offset: offset}
	}
	return lexer.New(s[offset:]).NextToken().Pos
}
