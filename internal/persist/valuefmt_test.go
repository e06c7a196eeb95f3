package persist

import (
	"testing"

	"github.com/quenio/agerun-go/internal/value"
)

func TestSerializeDeserializeValueRoundTrip(t *testing.T) {
	m := value.NewMap()
	m.MapSet("name", value.NewString("hello world\nwith newline"))
	m.MapSet("n", value.NewInt(42))
	m.MapSet("pi", value.NewDouble(3.5))
	list := value.NewList()
	list.ListAppend(value.NewInt(1))
	list.ListAppend(value.NewString("two"))
	m.MapSet("items", list)

	line := serializeValue(m)
	got := deserializeValue(line)

	if got == nil || got.Kind() != value.KindMap {
		t.Fatalf("expected a map back, got %v", got)
	}
	name := got.GetMapData("name")
	if name == nil || name.AsString() != "hello world\nwith newline" {
		t.Fatalf("expected name with embedded newline to survive, got %v", name)
	}
	n := got.GetMapData("n")
	if n == nil || n.AsInt() != 42 {
		t.Fatalf("expected n == 42, got %v", n)
	}
	pi := got.GetMapData("pi")
	if pi == nil || pi.AsDouble() != 3.5 {
		t.Fatalf("expected pi == 3.5, got %v", pi)
	}
	items, _ := got.MapGet("items")
	if items == nil || items.ListCount() != 2 {
		t.Fatalf("expected 2 items, got %v", items)
	}
}

func TestDeserializeMalformedLineYieldsNil(t *testing.T) {
	if got := deserializeValue(""); got != nil {
		t.Fatalf("expected nil for empty line, got %v", got)
	}
}
