package persist

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/quenio/agerun-go/internal/value"
)

// serializeValue renders v as the recursive, single-line token stream
// spec.md §6 describes for <memory_map_serialization>: a kind header
// followed by that kind's contents. Strings are hex-encoded so arbitrary
// bytes (including whitespace and newlines) survive the line-oriented
// format untouched.
func serializeValue(v *value.Value) string {
	var tokens []string
	appendValue(&tokens, v)
	return strings.Join(tokens, " ")
}

func appendValue(tokens *[]string, v *value.Value) {
	if v == nil {
		*tokens = append(*tokens, "null")
		return
	}
	switch v.Kind() {
	case value.KindInt:
		*tokens = append(*tokens, "int", strconv.FormatInt(v.AsInt(), 10))
	case value.KindDouble:
		*tokens = append(*tokens, "double", strconv.FormatFloat(v.AsDouble(), 'g', -1, 64))
	case value.KindString:
		*tokens = append(*tokens, "string", hex.EncodeToString([]byte(v.AsString())))
	case value.KindMap:
		keys := v.Keys()
		*tokens = append(*tokens, "map", strconv.Itoa(len(keys)))
		for _, k := range keys {
			child, _ := v.MapGet(k)
			*tokens = append(*tokens, hex.EncodeToString([]byte(k)))
			appendValue(tokens, child)
		}
	case value.KindList:
		n := v.ListCount()
		*tokens = append(*tokens, "list", strconv.Itoa(n))
		scratch := v.DeepCopy()
		for i := 0; i < n; i++ {
			appendValue(tokens, scratch.ListRemoveFirst())
		}
	default:
		*tokens = append(*tokens, "null")
	}
}

// deserializeValue parses a line produced by serializeValue back into a
// Value. An empty stream, a "null" header or an unknown kind header yields
// nil; missing or unparseable tokens after a known header decode as zero
// values or as shorter containers.
func deserializeValue(line string) *value.Value {
	tokens := strings.Fields(line)
	cur := &tokenCursor{tokens: tokens}
	return readValue(cur)
}

type tokenCursor struct {
	tokens []string
	pos    int
}

func (c *tokenCursor) next() (string, bool) {
	if c.pos >= len(c.tokens) {
		return "", false
	}
	tok := c.tokens[c.pos]
	c.pos++
	return tok, true
}

func readValue(c *tokenCursor) *value.Value {
	kind, ok := c.next()
	if !ok {
		return nil
	}
	switch kind {
	case "null":
		return nil
	case "int":
		tok, _ := c.next()
		n, _ := strconv.ParseInt(tok, 10, 64)
		return value.NewInt(n)
	case "double":
		tok, _ := c.next()
		d, _ := strconv.ParseFloat(tok, 64)
		return value.NewDouble(d)
	case "string":
		tok, _ := c.next()
		b, _ := hex.DecodeString(tok)
		return value.NewString(string(b))
	case "map":
		countTok, _ := c.next()
		count, _ := strconv.Atoi(countTok)
		out := value.NewMap()
		for i := 0; i < count; i++ {
			keyTok, ok := c.next()
			if !ok {
				break
			}
			keyBytes, _ := hex.DecodeString(keyTok)
			out.MapSet(string(keyBytes), readValue(c))
		}
		return out
	case "list":
		countTok, _ := c.next()
		count, _ := strconv.Atoi(countTok)
		out := value.NewList()
		for i := 0; i < count; i++ {
			out.ListAppend(readValue(c))
		}
		return out
	default:
		return nil
	}
}
