package method

import (
	"testing"

	"github.com/quenio/agerun-go/internal/value"
)

func TestVersionFromValueString(t *testing.T) {
	v, ok := VersionFromValue(value.NewString("1.2.3"))
	if !ok || v != (Semver{1, 2, 3}) {
		t.Fatalf("got %v ok=%v", v, ok)
	}
}

func TestVersionFromValueMap(t *testing.T) {
	m := value.NewMap()
	m.MapSet("major", value.NewInt(1))
	m.MapSet("minor", value.NewInt(2))
	m.MapSet("patch", value.NewInt(3))
	v, ok := VersionFromValue(m)
	if !ok || v != (Semver{1, 2, 3}) {
		t.Fatalf("got %v ok=%v", v, ok)
	}
}

func TestVersionFromValueList(t *testing.T) {
	l := value.NewList()
	l.ListAppend(value.NewInt(1))
	l.ListAppend(value.NewInt(2))
	l.ListAppend(value.NewInt(3))
	v, ok := VersionFromValue(l)
	if !ok || v != (Semver{1, 2, 3}) {
		t.Fatalf("got %v ok=%v", v, ok)
	}
	// A second extraction from the same (borrowed) list must still work —
	// VersionFromValue must not mutate its argument.
	v2, ok2 := VersionFromValue(l)
	if !ok2 || v2 != (Semver{1, 2, 3}) {
		t.Fatalf("second extraction: got %v ok=%v", v2, ok2)
	}
}

func TestVersionFromValueRejectsOtherKinds(t *testing.T) {
	if _, ok := VersionFromValue(value.NewInt(1)); ok {
		t.Fatal("expected failure for a plain int")
	}
	if _, ok := VersionFromValue(nil); ok {
		t.Fatal("expected failure for nil")
	}
}
