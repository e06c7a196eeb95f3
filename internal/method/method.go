// Package method implements the Method and Methodology objects from
// spec.md §3/§4: a named, versioned, immutable instruction sequence, and the
// registry that looks methods up by (name, version) or (name, "latest").
package method

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/quenio/agerun-go/internal/ast"
	"github.com/quenio/agerun-go/internal/value"
)

// Semver is the (major, minor, patch) triple methods and lookups are keyed
// by. "latest" lookup resolves to the component-wise numeric maximum, per
// SPEC_FULL.md §9 (the Open Question spec.md §9 left unresolved).
type Semver struct {
	Major, Minor, Patch int
}

func (s Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
}

// Less reports whether s sorts before other under component-wise numeric
// comparison.
func (s Semver) Less(other Semver) bool {
	if s.Major != other.Major {
		return s.Major < other.Major
	}
	if s.Minor != other.Minor {
		return s.Minor < other.Minor
	}
	return s.Patch < other.Patch
}

// ParseSemver parses "major.minor.patch".
func ParseSemver(s string) (Semver, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Semver{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Semver{}, false
		}
		nums[i] = n
	}
	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// VersionFromValue extracts a Semver out of a method's version argument.
// Method bodies may express a version as the string "1.0.0", as a map
// {major,minor,patch}, or as a 3-element list [major,minor,patch] — all
// three forms appear across the end-to-end scenarios in spec.md §8.
func VersionFromValue(v *value.Value) (Semver, bool) {
	if v == nil {
		return Semver{}, false
	}
	switch v.Kind() {
	case value.KindString:
		return ParseSemver(v.AsString())
	case value.KindMap:
		major, _ := v.MapGet("major")
		minor, _ := v.MapGet("minor")
		patch, _ := v.MapGet("patch")
		return Semver{Major: int(major.AsInt()), Minor: int(minor.AsInt()), Patch: int(patch.AsInt())}, true
	case value.KindList:
		if v.ListCount() != 3 {
			return Semver{}, false
		}
		// The L1 contract (spec.md §4.1) only promises first/last/count on
		// lists, not indexed access, so walk a scratch copy with
		// RemoveFirst rather than mutating the caller's borrowed list.
		scratch := v.DeepCopy()
		major := scratch.ListRemoveFirst().AsInt()
		minor := scratch.ListRemoveFirst().AsInt()
		patch := scratch.ListRemoveFirst().AsInt()
		return Semver{Major: int(major), Minor: int(minor), Patch: int(patch)}, true
	default:
		return Semver{}, false
	}
}

// Method is a named, versioned, immutable sequence of instruction ASTs.
type Method struct {
	Name    string
	Version Semver
	Body    []ast.Instr
	Source  string // retained verbatim for persistence
}

// Methodology maps name -> version -> Method. Lookup by (name, "latest")
// resolves to the component-wise numeric maximum version registered under
// that name.
type Methodology struct {
	mu      sync.RWMutex
	methods map[string]map[Semver]*Method
}

// New returns an empty Methodology.
func New() *Methodology {
	return &Methodology{methods: map[string]map[Semver]*Method{}}
}

// Register adds m under (m.Name, m.Version). It fails if that exact pair is
// already registered — methods are immutable once registered.
func (m *Methodology) Register(meth *Method) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	versions, ok := m.methods[meth.Name]
	if !ok {
		versions = map[Semver]*Method{}
		m.methods[meth.Name] = versions
	}
	if _, exists := versions[meth.Version]; exists {
		return false
	}
	versions[meth.Version] = meth
	return true
}

// Lookup returns the method registered under (name, version). With latest
// set to true, version is ignored and the highest version registered under
// name is returned.
func (m *Methodology) Lookup(name string, version Semver, latest bool) (*Method, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	versions, ok := m.methods[name]
	if !ok || len(versions) == 0 {
		return nil, false
	}
	if latest {
		var best Semver
		var bestMeth *Method
		first := true
		for v, meth := range versions {
			if first || best.Less(v) {
				best, bestMeth = v, meth
				first = false
			}
		}
		return bestMeth, true
	}
	meth, ok := versions[version]
	return meth, ok
}

// Unregister removes (name, version) and reports whether it was registered.
// It does not check for live agents; callers (the Agency-aware
// destroy_method evaluator) are responsible for the "no live agent
// references it" check described in spec.md §3.
func (m *Methodology) Unregister(name string, version Semver) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	versions, ok := m.methods[name]
	if !ok {
		return false
	}
	if _, ok := versions[version]; !ok {
		return false
	}
	delete(versions, version)
	if len(versions) == 0 {
		delete(m.methods, name)
	}
	return true
}

// All returns every registered method, for persistence (internal/persist).
func (m *Methodology) All() []*Method {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Method
	for _, versions := range m.methods {
		for _, meth := range versions {
			out = append(out, meth)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version.Less(out[j].Version)
	})
	return out
}

// Reset empties the registry.
func (m *Methodology) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods = map[string]map[Semver]*Method{}
}
