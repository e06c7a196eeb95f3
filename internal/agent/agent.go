// Package agent implements the Agent and Agency objects from spec.md
// §3/§4.4: per-agent message queues and memory, and the live agent table.
package agent

import (
	"sync"

	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/value"
)

// WakeMessage and SleepMessage are the two reserved lifecycle messages
// (spec.md glossary). Every agent's queue starts with WakeMessage; exit
// enqueues SleepMessage, and the runtime drops the agent from the Agency
// once it has processed that message in queue order.
const (
	WakeMessage  = "__wake__"
	SleepMessage = "__sleep__"
)

// Agent is a single live actor: an id, a reference to its registered
// method, an owned memory map, an optional owned context map fixed at
// creation, and a FIFO message queue.
type Agent struct {
	ID         int64
	MethodName string
	Version    method.Semver
	Memory     *value.Value // owned, KindMap
	Context    *value.Value // owned, KindMap, may be nil
	queue      []*value.Value
	exiting    bool // exit() was called; SleepMessage has been enqueued
}

// Enqueue takes ownership of msg and appends it to the queue.
func (a *Agent) Enqueue(msg *value.Value) {
	a.queue = append(a.queue, msg)
}

// HasMessages reports whether the queue is non-empty.
func (a *Agent) HasMessages() bool { return len(a.queue) > 0 }

// Dequeue pops and returns ownership of the head message, FIFO order.
func (a *Agent) Dequeue() *value.Value {
	if len(a.queue) == 0 {
		return nil
	}
	msg := a.queue[0]
	a.queue = a.queue[1:]
	return msg
}

// Agency is the live agent table: agent_id -> Agent, plus a monotonically
// increasing id counter. Ids are positive and never reused within a
// process's lifetime (spec.md §4.4).
type Agency struct {
	mu      sync.Mutex
	agents  map[int64]*Agent
	nextID  int64
	pending []int64 // not populated; exiting agents are tracked by Agent.exiting
}

// New returns an empty Agency.
func New() *Agency {
	return &Agency{agents: map[int64]*Agent{}}
}

// Create allocates a new agent bound to (methodName, version), takes
// ownership of ctx (may be nil), and enqueues the implicit WakeMessage.
// Returns the new agent's id.
func (ag *Agency) Create(methodName string, version method.Semver, ctx *value.Value) int64 {
	ag.mu.Lock()
	defer ag.mu.Unlock()

	ag.nextID++
	id := ag.nextID
	a := &Agent{
		ID:         id,
		MethodName: methodName,
		Version:    version,
		Memory:     value.NewMap(),
		Context:    ctx,
	}
	a.Enqueue(value.NewString(WakeMessage))
	ag.agents[id] = a
	return id
}

// Exists reports whether id names a live (not yet fully exited) agent.
func (ag *Agency) Exists(id int64) bool {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	_, ok := ag.agents[id]
	return ok
}

// Get returns the agent for id, or nil if none exists.
func (ag *Agency) Get(id int64) *Agent {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return ag.agents[id]
}

// Memory returns a borrowed reference to id's memory map, or nil.
func (ag *Agency) Memory(id int64) *value.Value {
	a := ag.Get(id)
	if a == nil {
		return nil
	}
	return a.Memory
}

// Send enqueues a deep copy of msg onto id's queue. Target 0 is a no-op
// that still reports success, per spec.md §4.3. Returns false if id does
// not name a live agent.
func (ag *Agency) Send(id int64, msg *value.Value) bool {
	if id == 0 {
		return true
	}
	ag.mu.Lock()
	defer ag.mu.Unlock()
	a, ok := ag.agents[id]
	if !ok {
		return false
	}
	a.Enqueue(msg.DeepCopy())
	return true
}

// HasMessages reports whether id has a non-empty queue.
func (ag *Agency) HasMessages(id int64) bool {
	a := ag.Get(id)
	return a != nil && a.HasMessages()
}

// MarkExiting enqueues SleepMessage and flags id for removal once that
// message is processed. The agent stays in the table until the runtime
// steps it through that SleepMessage, which then removes it. Returns false
// if id does not exist or is already exiting.
func (ag *Agency) MarkExiting(id int64) bool {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	a, ok := ag.agents[id]
	if !ok || a.exiting {
		return false
	}
	a.exiting = true
	a.Enqueue(value.NewString(SleepMessage))
	return true
}

// Exiting reports whether id has been marked for exit.
func (ag *Agency) Exiting(id int64) bool {
	a := ag.Get(id)
	return a != nil && a.exiting
}

// Remove drops id from the table unconditionally (used once its
// SleepMessage has been processed, or on Reset).
func (ag *Agency) Remove(id int64) {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	delete(ag.agents, id)
}

// IDs returns every live agent id in ascending order — the stable,
// deterministic scheduling order spec.md §5 requires across agents.
func (ag *Agency) IDs() []int64 {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ids := make([]int64, 0, len(ag.agents))
	for id := range ag.agents {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// ReferencesMethod reports whether any live agent is bound to
// (methodName, version) — used by destroy_method (spec.md §3 invariant:
// "unregistering a method fails while any live agent references it").
func (ag *Agency) ReferencesMethod(methodName string, version method.Semver) bool {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	for _, a := range ag.agents {
		if a.MethodName == methodName && a.Version == version {
			return true
		}
	}
	return false
}

// Reset zeroes the table and the id counter.
func (ag *Agency) Reset() {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.agents = map[int64]*Agent{}
	ag.nextID = 0
}

// NextID previews the id the next Create call will assign, without
// allocating it. Used by internal/persist to restore the counter exactly.
func (ag *Agency) NextID() int64 {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	return ag.nextID + 1
}

// SetNextID restores the id counter (used by internal/persist on load).
func (ag *Agency) SetNextID(next int64) {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.nextID = next - 1
}

// Restore reinserts an agent with a specific id, used only by
// internal/persist when loading agency.agerun.
func (ag *Agency) Restore(a *Agent) {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	ag.agents[a.ID] = a
}

// All returns every live agent, for persistence (internal/persist).
func (ag *Agency) All() []*Agent {
	ag.mu.Lock()
	defer ag.mu.Unlock()
	out := make([]*Agent, 0, len(ag.agents))
	for _, a := range ag.agents {
		out = append(out, a)
	}
	return out
}
