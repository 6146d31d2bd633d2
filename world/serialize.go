package world

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/cpond8/sutra/value"
)

// Serialize renders w's root tree as JSON, for debugging and golden tests
// (spec.md §4.5 "Serialization (JSON-like) is available for debugging and
// golden tests"). Map keys are sorted so that two structurally-equal
// worlds always serialize byte-identically, regardless of the insertion
// order that produced them — golang.org/x/exp/maps/slices supply the sort,
// the same deterministic-ordering concern the validator meets with a
// sorted treeset of diagnostics (see package validate).
func Serialize(w World) ([]byte, error) {
	return json.Marshal(toJSON(w.Root()))
}

func toJSON(v value.Value) interface{} {
	switch t := v.(type) {
	case value.Nil:
		return nil
	case value.Number:
		return float64(t)
	case value.Bool:
		return bool(t)
	case value.String:
		return string(t)
	case value.Symbol:
		return map[string]interface{}{"$symbol": string(t)}
	case value.Path:
		return map[string]interface{}{"$path": []string(t)}
	case value.List:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = toJSON(e)
		}
		return out
	case *value.Map:
		keys := maps.Keys(mapToGoMap(t))
		slices.Sort(keys)
		out := make(map[string]interface{}, len(keys))
		for _, k := range keys {
			out[k] = toJSON(t.Get(k))
		}
		return out
	default:
		return fmt.Sprintf("%v", v)
	}
}

func mapToGoMap(m *value.Map) map[string]value.Value {
	out := make(map[string]value.Value, m.Len())
	for _, k := range m.Keys() {
		out[k] = m.Get(k)
	}
	return out
}
