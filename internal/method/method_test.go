package method

import "testing"

func TestParseSemver(t *testing.T) {
	v, ok := ParseSemver("1.2.3")
	if !ok || v != (Semver{1, 2, 3}) {
		t.Fatalf("expected 1.2.3, got %v ok=%v", v, ok)
	}
	if _, ok := ParseSemver("1.2"); ok {
		t.Fatal("expected failure on malformed semver")
	}
}

func TestSemverLessIsComponentWiseNumeric(t *testing.T) {
	// 1.9.0 < 1.10.0 numerically, which a lexicographic string compare
	// would get backwards — this is the Open Question spec.md §9 asks
	// the rewrite to settle (SPEC_FULL.md §9: component-wise numeric).
	a := Semver{1, 9, 0}
	b := Semver{1, 10, 0}
	if !a.Less(b) {
		t.Fatal("expected 1.9.0 < 1.10.0 under numeric comparison")
	}
}

func TestRegisterRejectsDuplicateNameVersion(t *testing.T) {
	m := New()
	if !m.Register(&Method{Name: "echo", Version: Semver{1, 0, 0}}) {
		t.Fatal("first registration should succeed")
	}
	if m.Register(&Method{Name: "echo", Version: Semver{1, 0, 0}}) {
		t.Fatal("duplicate (name, version) registration should fail")
	}
}

func TestLookupExactMatch(t *testing.T) {
	m := New()
	m.Register(&Method{Name: "echo", Version: Semver{1, 0, 0}})
	got, ok := m.Lookup("echo", Semver{1, 0, 0}, false)
	if !ok || got.Name != "echo" {
		t.Fatalf("expected exact match, got %v ok=%v", got, ok)
	}
	if _, ok := m.Lookup("echo", Semver{2, 0, 0}, false); ok {
		t.Fatal("expected no match for unregistered version")
	}
}

func TestLookupLatestPicksNumericMax(t *testing.T) {
	m := New()
	m.Register(&Method{Name: "echo", Version: Semver{1, 0, 0}})
	m.Register(&Method{Name: "echo", Version: Semver{1, 9, 0}})
	m.Register(&Method{Name: "echo", Version: Semver{1, 10, 0}})
	m.Register(&Method{Name: "echo", Version: Semver{1, 2, 0}})

	got, ok := m.Lookup("echo", Semver{}, true)
	if !ok || got.Version != (Semver{1, 10, 0}) {
		t.Fatalf("expected latest 1.10.0, got %v ok=%v", got.Version, ok)
	}
}

func TestUnregisterRemovesExactVersionOnly(t *testing.T) {
	m := New()
	m.Register(&Method{Name: "echo", Version: Semver{1, 0, 0}})
	m.Register(&Method{Name: "echo", Version: Semver{2, 0, 0}})

	if !m.Unregister("echo", Semver{1, 0, 0}) {
		t.Fatal("expected unregister to succeed")
	}
	if _, ok := m.Lookup("echo", Semver{1, 0, 0}, false); ok {
		t.Fatal("expected 1.0.0 to be gone")
	}
	if _, ok := m.Lookup("echo", Semver{2, 0, 0}, false); !ok {
		t.Fatal("expected 2.0.0 to remain registered")
	}
}

func TestResetEmptiesRegistry(t *testing.T) {
	m := New()
	m.Register(&Method{Name: "echo", Version: Semver{1, 0, 0}})
	m.Reset()
	if _, ok := m.Lookup("echo", Semver{1, 0, 0}, false); ok {
		t.Fatal("expected registry to be empty after Reset")
	}
}

func TestAllIsSortedByNameThenVersion(t *testing.T) {
	m := New()
	m.Register(&Method{Name: "b", Version: Semver{1, 0, 0}})
	m.Register(&Method{Name: "a", Version: Semver{2, 0, 0}})
	m.Register(&Method{Name: "a", Version: Semver{1, 0, 0}})

	all := m.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(all))
	}
	if all[0].Name != "a" || all[0].Version != (Semver{1, 0, 0}) {
		t.Fatalf("expected a@1.0.0 first, got %s@%s", all[0].Name, all[0].Version)
	}
	if all[1].Name != "a" || all[1].Version != (Semver{2, 0, 0}) {
		t.Fatalf("expected a@2.0.0 second, got %s@%s", all[1].Name, all[1].Version)
	}
	if all[2].Name != "b" {
		t.Fatalf("expected b last, got %s", all[2].Name)
	}
}
