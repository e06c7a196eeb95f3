package instrparse

import (
	"testing"

	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/rerrors"
)

func parseOK(t *testing.T, line string) ast.Instr {
	t.Helper()
	log := rerrors.NewLog()
	instr := New(log).Parse(line)
	if instr == nil {
		t.Fatalf("parse %q failed: %s", line, log.Format())
	}
	return instr
}

func TestAssignmentInstruction(t *testing.T) {
	instr := parseOK(t, "memory.r := message.a + message.b")
	a, ok := instr.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", instr)
	}
	if a.Target != "r" {
		t.Fatalf("expected target r, got %q", a.Target)
	}
}

func TestSendInstruction(t *testing.T) {
	instr := parseOK(t, `send(0, message)`)
	s, ok := instr.(*ast.Send)
	if !ok {
		t.Fatalf("expected *ast.Send, got %T", instr)
	}
	if s.Assign != nil {
		t.Fatal("expected no assignment target")
	}
}

func TestSendWithAssignmentPrefix(t *testing.T) {
	instr := parseOK(t, `memory.ok := send(message.sender, memory.r)`)
	s, ok := instr.(*ast.Send)
	if !ok {
		t.Fatalf("expected *ast.Send, got %T", instr)
	}
	if s.Assign == nil || *s.Assign != "ok" {
		t.Fatalf("expected assign target 'ok', got %v", s.Assign)
	}
}

func TestIfWithNestedSendBranches(t *testing.T) {
	instr := parseOK(t, `if(message.route = "echo", send(context.echo_id, message.payload), send(0, "unknown"))`)
	n, ok := instr.(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", instr)
	}
	if n.Then.Instr == nil {
		t.Fatal("expected then-branch to be a nested send instruction")
	}
	if _, ok := n.Then.Instr.(*ast.Send); !ok {
		t.Fatalf("expected then-branch *ast.Send, got %T", n.Then.Instr)
	}
	if n.Else == nil || n.Else.Instr == nil {
		t.Fatal("expected else-branch to be a nested send instruction")
	}
}

func TestIfWithNestedIfElseChain(t *testing.T) {
	instr := parseOK(t, `memory.grade := if(message.value >= 90, "A", if(message.value >= 80, "B", "F"))`)
	n, ok := instr.(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", instr)
	}
	if n.Assign == nil || *n.Assign != "grade" {
		t.Fatalf("expected assign target grade, got %v", n.Assign)
	}
	if n.Else == nil || n.Else.Instr == nil {
		t.Fatal("expected else-branch to be a nested if instruction")
	}
	if _, ok := n.Else.Instr.(*ast.If); !ok {
		t.Fatalf("expected else-branch *ast.If, got %T", n.Else.Instr)
	}
}

func TestCreateWithOptionalContext(t *testing.T) {
	instr := parseOK(t, `memory.id := create("echo", "1.0.0")`)
	c, ok := instr.(*ast.Create)
	if !ok {
		t.Fatalf("expected *ast.Create, got %T", instr)
	}
	if c.Context != nil {
		t.Fatal("expected no context argument")
	}

	instr2 := parseOK(t, `memory.id := create("router", "1.0.0", context)`)
	c2 := instr2.(*ast.Create)
	if c2.Context == nil {
		t.Fatal("expected a context argument")
	}
}

func TestExitInstruction(t *testing.T) {
	instr := parseOK(t, `exit(memory.target)`)
	if _, ok := instr.(*ast.Exit); !ok {
		t.Fatalf("expected *ast.Exit, got %T", instr)
	}
}

func TestParseBuiltinInstruction(t *testing.T) {
	instr := parseOK(t, `memory.fields := parse("{name}: {value}", message.line)`)
	if _, ok := instr.(*ast.Parse); !ok {
		t.Fatalf("expected *ast.Parse, got %T", instr)
	}
}

func TestBuildBuiltinInstruction(t *testing.T) {
	instr := parseOK(t, `memory.line := build("{name}: {value}", memory.fields)`)
	if _, ok := instr.(*ast.Build); !ok {
		t.Fatalf("expected *ast.Build, got %T", instr)
	}
}

func TestMethodDefineInstruction(t *testing.T) {
	instr := parseOK(t, `method(message.name, message.body, message.version)`)
	if _, ok := instr.(*ast.MethodDefine); !ok {
		t.Fatalf("expected *ast.MethodDefine, got %T", instr)
	}
}

func TestMethodDestroyInstruction(t *testing.T) {
	instr := parseOK(t, `destroy_method("echo", "1.0.0")`)
	if _, ok := instr.(*ast.MethodDestroy); !ok {
		t.Fatalf("expected *ast.MethodDestroy, got %T", instr)
	}
}

func TestSplitArgsRespectsNestingAndQuotes(t *testing.T) {
	args := splitArgs(`"a, b", (1 + 2), message.x`)
	want := []string{`"a, b"`, `(1 + 2)`, `message.x`}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg[%d]: expected %q, got %q", i, want[i], args[i])
		}
	}
}

func TestUnrecognizedLineReportsParseError(t *testing.T) {
	log := rerrors.NewLog()
	instr := New(log).Parse("not a valid instruction !!!")
	if instr != nil {
		t.Fatal("expected nil for unrecognized instruction")
	}
	if log.Empty() {
		t.Fatal("expected a parse error to be logged")
	}
}

// if's then/else branches are not plain expressions (they may be nested
// builtin calls), so buildCall must not eagerly run them through the
// expression parser just to build the condition's parse tree: doing so
// would append spurious parse errors to the shared log for perfectly
// valid methods like grade.ar and router.ar.
func TestIfWithNestedBranchesLogsNoErrors(t *testing.T) {
	log := rerrors.NewLog()
	instr := New(log).Parse(
		`if(message.route = "echo", send(context.echo_id, message.payload), send(0, "unknown"))`)
	if instr == nil {
		t.Fatalf("parse failed: %s", log.Format())
	}
	if !log.Empty() {
		t.Fatalf("expected no log entries for a valid nested-call if, got: %s", log.Format())
	}
}

func TestNestedIfElseChainLogsNoErrors(t *testing.T) {
	log := rerrors.NewLog()
	instr := New(log).Parse(
		`memory.grade := if(message.value >= 90, "A", if(message.value >= 80, "B", if(message.value >= 70, "C", "F")))`)
	if instr == nil {
		t.Fatalf("parse failed: %s", log.Format())
	}
	if !log.Empty() {
		t.Fatalf("expected no log entries for a valid nested if/else chain, got: %s", log.Format())
	}
}

func TestSendWrongArgCountReportsError(t *testing.T) {
	log := rerrors.NewLog()
	instr := New(log).Parse("send(0)")
	if instr != nil {
		t.Fatal("expected nil for send() with wrong arg count")
	}
	if log.Empty() {
		t.Fatal("expected a parse error to be logged")
	}
}
