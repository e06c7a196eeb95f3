// Package runtime implements the System object from spec.md §4.5: the
// single-threaded, cooperative message-dispatch loop that drains agent
// queues and drives persistence at shutdown.
package runtime

import (
	"github.com/quenio/agerun-go/internal/agent"
	"github.com/quenio/agerun-go/internal/eval"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/persist"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/token"
	"github.com/quenio/agerun-go/internal/value"
)

// System owns the Methodology and Agency handles and drives the per-agent
// state machine described in spec.md §4.5. It is not a package-level
// singleton: callers construct one explicitly (spec.md §5).
type System struct {
	Methodology *method.Methodology
	Agency      *agent.Agency
	Eval        *eval.Evaluator
	Log         *rerrors.Log

	initialized bool
	dir         string // working directory for persistence files
}

// New returns an uninitialized System rooted at dir for persistence.
func New(dir string) *System {
	m := method.New()
	ag := agent.New()
	return &System{
		Methodology: m,
		Agency:      ag,
		Eval:        eval.New(m, ag),
		Log:         rerrors.NewLog(),
		dir:         dir,
	}
}

// Init is idempotent: on the first call it resets the methodology and
// agency, and if bootstrapName is non-empty, creates a single agent from
// (bootstrapName, bootstrapVersion) and returns its id. Subsequent calls
// return 0 without side effects (spec.md §4.5).
func (s *System) Init(bootstrapName string, bootstrapVersion method.Semver) int64 {
	if s.initialized {
		return 0
	}
	s.initialized = true
	s.Methodology.Reset()
	s.Agency.Reset()

	if bootstrapName == "" {
		return 0
	}
	return s.CreateBootstrapAgent(bootstrapName, bootstrapVersion)
}

// CreateBootstrapAgent looks up (name, version) and creates an agent from
// it directly, without touching initialization state. Hosts that need to
// preload methods between Init and bootstrap-agent creation (the CLI's
// `run` command, per SPEC_FULL.md §4.7 — preload happens before the
// bootstrap agent exists) call Init with an empty bootstrapName, preload,
// then call this. Returns 0 if no such method is registered.
func (s *System) CreateBootstrapAgent(name string, version method.Semver) int64 {
	meth, ok := s.Methodology.Lookup(name, version, false)
	if !ok {
		s.Log.Report(rerrors.EvalError, token.Position{}, "", "init: no bootstrap method %q %s", name, version)
		return 0
	}
	return s.Agency.Create(meth.Name, meth.Version, nil)
}

// ProcessNextMessage selects any agent with a non-empty queue (ascending
// id order — a deterministic, implementation-defined choice per spec.md
// §4.5/§5), pops one message, and runs that agent's method body once
// against it. Returns true iff a message was processed.
func (s *System) ProcessNextMessage() bool {
	for _, id := range s.Agency.IDs() {
		if !s.Agency.HasMessages(id) {
			continue
		}
		s.stepAgent(id)
		return true
	}
	return false
}

// stepAgent pops one message from id's queue and runs its bound method's
// instruction sequence against it in source order; an evaluation failure
// is logged and does not abort the remaining instructions (spec.md §4.5,
// §7). If id was marked exiting and the popped message was __sleep__,
// the agent is dropped from the Agency once the body finishes.
func (s *System) stepAgent(id int64) {
	a := s.Agency.Get(id)
	if a == nil {
		return
	}
	msg := a.Dequeue()
	wasSleep := msg != nil && msg.Kind() == value.KindString && msg.AsString() == agent.SleepMessage

	meth, ok := s.Methodology.Lookup(a.MethodName, a.Version, false)
	if ok {
		for _, instr := range meth.Body {
			s.Eval.Eval(instr, id, a.Memory, msg, a.Context, s.Log)
		}
	} else {
		s.Log.Report(rerrors.EvalError, token.Position{}, "", "step: agent %d references unregistered method %s %s", id, a.MethodName, a.Version)
	}

	if wasSleep && s.Agency.Exiting(id) {
		s.Agency.Remove(id)
	}
}

// ProcessAllMessages repeatedly calls ProcessNextMessage until it returns
// false, returning the number of messages processed. Messages produced by
// evaluated send instructions are visible to subsequent iterations
// (spec.md §4.5).
func (s *System) ProcessAllMessages() int {
	count := 0
	for s.ProcessNextMessage() {
		count++
	}
	return count
}

// Shutdown persists the methodology and agency to s.dir, then sends
// __sleep__ to every live agent and processes those messages, then resets.
// Safe to call on a not-initialized system (spec.md §4.5).
//
// Persistence runs before the sleep/teardown loop: stepAgent drops an agent
// from the Agency once its __sleep__ message has been processed, so saving
// afterward (as a naive reading of "sends __sleep__... then persists" would
// do) writes agency.agerun with the agents already gone in the common case
// of a fully-drained system (e.g. agerun run's ProcessAllMessages followed
// by Shutdown). Saving first matches the original agerun.c's save-then-free
// order and is what makes a drained system round-trip its agents.
func (s *System) Shutdown() error {
	err := persist.Save(s.dir, s.Methodology, s.Agency)

	for _, id := range s.Agency.IDs() {
		s.Agency.MarkExiting(id)
	}
	for _, id := range s.Agency.IDs() {
		for s.Agency.HasMessages(id) {
			s.stepAgent(id)
		}
	}

	s.Methodology.Reset()
	s.Agency.Reset()
	s.initialized = false

	return err
}

// Load restores the methodology and agency from s.dir, recompiling every
// persisted method body through eval.ParseMethodBody. A malformed or
// unrecognized persistence file is logged and leaves the current state
// untouched (spec.md §6-7).
func (s *System) Load() error {
	return persist.Load(s.dir, s.Methodology, s.Agency, s.Log)
}
