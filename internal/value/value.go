// Package value implements the L1 data model from spec.md §3/§4.1: a
// tagged Value over {integer, double, string, map, list}, with deep copy
// and dotted-path map access.
//
// Dotted-path map access (GetMapData/SetMapData) is implemented over a JSON
// projection of the map built on demand and read/written with
// github.com/tidwall/gjson and github.com/tidwall/sjson, rather than a
// hand-rolled recursive path walker — see SPEC_FULL.md §9. Scalar leaves are
// marshaled with encoding/json because gjson/sjson operate on raw JSON text
// and need a correctly escaped literal for each leaf; everything that
// actually walks or rewrites a path goes through gjson/sjson.
package value

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Kind tags the variant a Value currently holds.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindString
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the tagged sum type. All containers own their contents: a Value
// read out of a map or list is a borrowed reference, and a caller that wants
// to keep it independently must call DeepCopy.
type Value struct {
	kind Kind

	i int64
	d float64
	s string

	keys []string // KindMap: insertion order
	m    map[string]*Value
	l    []*Value // KindList
}

// NewInt returns a fresh owned integer Value.
func NewInt(i int64) *Value { return &Value{kind: KindInt, i: i} }

// NewDouble returns a fresh owned double Value.
func NewDouble(d float64) *Value { return &Value{kind: KindDouble, d: d} }

// NewString returns a fresh owned string Value.
func NewString(s string) *Value { return &Value{kind: KindString, s: s} }

// NewMap returns a fresh owned, empty map Value.
func NewMap() *Value { return &Value{kind: KindMap, m: map[string]*Value{}} }

// NewList returns a fresh owned, empty list Value.
func NewList() *Value { return &Value{kind: KindList} }

// Kind reports which variant v holds. A nil Value has no kind; callers
// check for nil before calling Kind (a nil Value represents a NULL
// reference, e.g. a missing memory-access path).
func (v *Value) Kind() Kind { return v.kind }

// AsInt returns v's integer payload, or 0 if v is nil or not a KindInt.
// Accessors never abort on a type mismatch, per spec.md §4.1.
func (v *Value) AsInt() int64 {
	if v == nil || v.kind != KindInt {
		return 0
	}
	return v.i
}

// AsDouble returns v's double payload, or 0.0 on mismatch or nil.
func (v *Value) AsDouble() float64 {
	if v == nil || v.kind != KindDouble {
		return 0
	}
	return v.d
}

// AsString returns v's string payload, or "" on mismatch or nil.
func (v *Value) AsString() string {
	if v == nil || v.kind != KindString {
		return ""
	}
	return v.s
}

// DeepCopy returns a structurally equal Value with no shared containers.
func (v *Value) DeepCopy() *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindInt:
		return NewInt(v.i)
	case KindDouble:
		return NewDouble(v.d)
	case KindString:
		return NewString(v.s)
	case KindMap:
		out := NewMap()
		for _, k := range v.keys {
			out.MapSet(k, v.m[k].DeepCopy())
		}
		return out
	case KindList:
		out := NewList()
		for _, e := range v.l {
			out.l = append(out.l, e.DeepCopy())
		}
		return out
	default:
		return nil
	}
}

// Keys returns the map's keys in insertion order, or nil if v is not a map.
func (v *Value) Keys() []string {
	if v == nil || v.kind != KindMap {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// MapGet performs a single-level lookup, returning a borrowed reference.
func (v *Value) MapGet(key string) (*Value, bool) {
	if v == nil || v.kind != KindMap {
		return nil, false
	}
	got, ok := v.m[key]
	return got, ok
}

// MapSet writes key into v, transferring ownership of val and destroying
// (dropping) whatever value previously occupied the key.
func (v *Value) MapSet(key string, val *Value) {
	if v == nil || v.kind != KindMap {
		return
	}
	if _, exists := v.m[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.m[key] = val
}

// ListCount returns the number of elements, or 0 if v is not a list.
func (v *Value) ListCount() int {
	if v == nil || v.kind != KindList {
		return 0
	}
	return len(v.l)
}

// ListAppend transfers ownership of val onto the end of the list.
func (v *Value) ListAppend(val *Value) {
	if v == nil || v.kind != KindList {
		return
	}
	v.l = append(v.l, val)
}

// ListFirst returns a borrowed reference to the first element, or nil.
func (v *Value) ListFirst() *Value {
	if v == nil || v.kind != KindList || len(v.l) == 0 {
		return nil
	}
	return v.l[0]
}

// ListLast returns a borrowed reference to the last element, or nil.
func (v *Value) ListLast() *Value {
	if v == nil || v.kind != KindList || len(v.l) == 0 {
		return nil
	}
	return v.l[len(v.l)-1]
}

// ListRemoveFirst removes and returns ownership of the first element.
func (v *Value) ListRemoveFirst() *Value {
	if v == nil || v.kind != KindList || len(v.l) == 0 {
		return nil
	}
	out := v.l[0]
	v.l = v.l[1:]
	return out
}

// ListRemoveLast removes and returns ownership of the last element.
func (v *Value) ListRemoveLast() *Value {
	if v == nil || v.kind != KindList || len(v.l) == 0 {
		return nil
	}
	out := v.l[len(v.l)-1]
	v.l = v.l[:len(v.l)-1]
	return out
}

// NavigatePath walks a map through an ordered list of identifiers, as used
// by the expression evaluator's memory/message/context access. It never
// copies: the result is a borrowed reference, or nil if any component is
// missing or traverses a non-map key.
func (v *Value) NavigatePath(path []string) *Value {
	cur := v
	for _, part := range path {
		if cur == nil || cur.kind != KindMap {
			return nil
		}
		next, ok := cur.m[part]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// GetMapData resolves a dotted path (e.g. "a.b.c") against a map Value,
// reconstructing the result as a fresh Value from a JSON projection per
// SPEC_FULL.md §9. Returns nil if ref_map is not a map or the path doesn't
// resolve.
func (v *Value) GetMapData(dottedPath string) *Value {
	if v == nil || v.kind != KindMap {
		return nil
	}
	result := gjson.Get(toJSON(v), dottedPath)
	if !result.Exists() {
		return nil
	}
	return fromGJSON(result)
}

// SetMapData writes val at a dotted path inside mut_map, creating
// intermediate maps as needed. It fails (returning false, and never mutating
// mut_map) if an intermediate path component already exists and is not a
// map.
func (v *Value) SetMapData(dottedPath string, val *Value) bool {
	if v == nil || v.kind != KindMap {
		return false
	}
	if !intermediatesAreMaps(v, dottedPath) {
		return false
	}

	current := toJSON(v)
	updated, err := sjson.SetRaw(current, dottedPath, rawJSON(val))
	if err != nil {
		return false
	}

	replaced := fromGJSON(gjson.Parse(updated))
	if replaced == nil || replaced.kind != KindMap {
		return false
	}
	v.keys = replaced.keys
	v.m = replaced.m
	return true
}

// intermediatesAreMaps checks that every path component except the last
// either doesn't exist yet or currently holds a map, per the "path traversal
// through a non-map key is a failure, not an in-place type change" contract.
func intermediatesAreMaps(v *Value, dottedPath string) bool {
	parts := splitPath(dottedPath)
	if len(parts) == 0 {
		return false
	}
	cur := v
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur.m[part]
		if !ok {
			return true // will be created fresh by sjson
		}
		if next.kind != KindMap {
			return false
		}
		cur = next
	}
	return true
}

func splitPath(dottedPath string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(dottedPath); i++ {
		if dottedPath[i] == '.' {
			parts = append(parts, dottedPath[start:i])
			start = i + 1
		}
	}
	parts = append(parts, dottedPath[start:])
	return parts
}

// toJSON renders v as a JSON projection used only as gjson/sjson's working
// text; it is not the persistence format (see internal/persist for that).
func toJSON(v *Value) string {
	if v == nil {
		return "null"
	}
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return formatDoubleTagged(v.d)
	case KindString:
		b, _ := json.Marshal(v.s)
		return string(b)
	case KindMap:
		doc := "{}"
		for _, k := range v.keys {
			doc, _ = sjson.SetRaw(doc, jsonKey(k), toJSON(v.m[k]))
		}
		return doc
	case KindList:
		doc := "[]"
		for i, e := range v.l {
			doc, _ = sjson.SetRaw(doc, strconv.Itoa(i), toJSON(e))
		}
		return doc
	default:
		return "null"
	}
}

// jsonKey escapes a map key for use as an sjson path component: sjson splits
// paths on '.', so a literal dot inside a key must be backslash-escaped.
// Method/memory-map keys are always plain identifiers in practice, but this
// keeps arbitrary keys loaded from persistence round-trip-safe too.
func jsonKey(key string) string {
	var sb []byte
	for i := 0; i < len(key); i++ {
		if key[i] == '.' || key[i] == '\\' {
			sb = append(sb, '\\')
		}
		sb = append(sb, key[i])
	}
	return string(sb)
}

// formatDoubleTagged formats a float so that re-parsing it through gjson
// always classifies it as a double: Go's shortest round-trip formatting
// drops the decimal point for integral values (5 -> "5"), so we force one.
func formatDoubleTagged(d float64) string {
	s := strconv.FormatFloat(d, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return s
		}
	}
	return s + ".0"
}

// rawJSON renders val as a JSON literal suitable for sjson.SetRaw.
func rawJSON(val *Value) string { return toJSON(val) }

// fromGJSON converts a gjson.Result back into a *Value, using the presence
// of a decimal point/exponent to distinguish double from int (see
// formatDoubleTagged).
func fromGJSON(r gjson.Result) *Value {
	switch r.Type {
	case gjson.String:
		return NewString(r.Str)
	case gjson.Number:
		raw := r.Raw
		for _, c := range raw {
			if c == '.' || c == 'e' || c == 'E' {
				return NewDouble(r.Num)
			}
		}
		return NewInt(r.Int())
	case gjson.JSON:
		if r.IsArray() {
			out := NewList()
			r.ForEach(func(_, elem gjson.Result) bool {
				out.l = append(out.l, fromGJSON(elem))
				return true
			})
			return out
		}
		out := NewMap()
		r.ForEach(func(key, elem gjson.Result) bool {
			out.MapSet(key.Str, fromGJSON(elem))
			return true
		})
		return out
	default:
		return nil
	}
}
