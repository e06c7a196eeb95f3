package ast

import "github.com/quenio/agerun-go/internal/token"

// Instr is the common interface for every instruction AST node. The nine
// concrete kinds mirror spec.md §3; every function-call kind also carries
// Args, the parallel list of pre-parsed expression-AST arguments that the
// facade parser caches so evaluators never re-invoke the expression parser.
type Instr interface {
	Pos() token.Position
	String() string
	instrNode()
}

// AssignTarget is the optional `memory.path := ` prefix a function-form
// instruction may carry. nil means the instruction's result is discarded.
type AssignTarget = *string

// Assignment is `memory.path := expr`.
type Assignment struct {
	Token  token.Token
	Target string // dotted path, always rooted at memory
	Expr   Expr
}

func (n *Assignment) instrNode()          {}
func (n *Assignment) Pos() token.Position { return n.Token.Pos }
func (n *Assignment) String() string {
	return "memory." + n.Target + " := " + n.Expr.String()
}

// Send is `send(target, message)`.
type Send struct {
	Token  token.Token
	Args   []Expr
	Target Expr
	Msg    Expr
	Assign AssignTarget
}

func (n *Send) instrNode()          {}
func (n *Send) Pos() token.Position { return n.Token.Pos }
func (n *Send) String() string      { return call("send", n.Target, n.Msg) }

// Branch is the then/else arm of an If. Scenarios in spec.md §8 nest further
// builtin calls here (`if(cond, send(...), if(...))`), not just plain
// expressions, so a Branch holds exactly one of Expr or Instr.
type Branch struct {
	Expr  Expr
	Instr Instr
}

func (b Branch) String() string {
	switch {
	case b.Instr != nil:
		return b.Instr.String()
	case b.Expr != nil:
		return b.Expr.String()
	default:
		return ""
	}
}

// If is `if(cond, then, else?)`. Else is nil when omitted.
type If struct {
	Token  token.Token
	Args   []Expr // the condition's cached expression AST; branches are not plain Exprs
	Cond   Expr
	Then   Branch
	Else   *Branch
	Assign AssignTarget
}

func (n *If) instrNode()          {}
func (n *If) Pos() token.Position { return n.Token.Pos }
func (n *If) String() string {
	out := "if(" + n.Cond.String() + ", " + n.Then.String()
	if n.Else != nil {
		out += ", " + n.Else.String()
	}
	return out + ")"
}

// Create is `create(name, version, context?)`.
type Create struct {
	Token   token.Token
	Args    []Expr
	Name    Expr
	Version Expr
	Context Expr // nil when omitted
	Assign  AssignTarget
}

func (n *Create) instrNode()          {}
func (n *Create) Pos() token.Position { return n.Token.Pos }
func (n *Create) String() string {
	if n.Context != nil {
		return call("create", n.Name, n.Version, n.Context)
	}
	return call("create", n.Name, n.Version)
}

// Exit is `exit(agent)`.
type Exit struct {
	Token  token.Token
	Args   []Expr
	Agent  Expr
	Assign AssignTarget
}

func (n *Exit) instrNode()          {}
func (n *Exit) Pos() token.Position { return n.Token.Pos }
func (n *Exit) String() string      { return call("exit", n.Agent) }

// Parse is `parse(template, input)`.
type Parse struct {
	Token    token.Token
	Args     []Expr
	Template Expr
	Input    Expr
	Assign   AssignTarget
}

func (n *Parse) instrNode()          {}
func (n *Parse) Pos() token.Position { return n.Token.Pos }
func (n *Parse) String() string      { return call("parse", n.Template, n.Input) }

// Build is `build(template, map)`.
type Build struct {
	Token    token.Token
	Args     []Expr
	Template Expr
	Map      Expr
	Assign   AssignTarget
}

func (n *Build) instrNode()          {}
func (n *Build) Pos() token.Position { return n.Token.Pos }
func (n *Build) String() string      { return call("build", n.Template, n.Map) }

// MethodDefine is `method(name, body, version)`.
type MethodDefine struct {
	Token   token.Token
	Args    []Expr
	Name    Expr
	Body    Expr
	Version Expr
	Assign  AssignTarget
}

func (n *MethodDefine) instrNode()          {}
func (n *MethodDefine) Pos() token.Position { return n.Token.Pos }
func (n *MethodDefine) String() string      { return call("method", n.Name, n.Body, n.Version) }

// MethodDestroy is `destroy_method(name, version)`.
type MethodDestroy struct {
	Token   token.Token
	Args    []Expr
	Name    Expr
	Version Expr
	Assign  AssignTarget
}

func (n *MethodDestroy) instrNode()          {}
func (n *MethodDestroy) Pos() token.Position { return n.Token.Pos }
func (n *MethodDestroy) String() string      { return call("destroy_method", n.Name, n.Version) }

func call(name string, args ...Expr) string {
	out := name + "("
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ")"
}
