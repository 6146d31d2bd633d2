package value

// Map is Sutra's Map value: a mapping from String keys to Values. Insertion
// order is irrelevant per spec.md §3, but we retain it anyway (in keys) so
// that printing and serialization are deterministic — the same reasoning
// the teacher applies when choosing ordered collections from
// github.com/emirpasic/gods over bare map iteration wherever output order
// is observable.
type Map struct {
	keys   []string
	values map[string]Value
}

func (*Map) valueMarker() {}

// NewMap builds an empty Map.
func NewMap() *Map {
	return &Map{values: map[string]Value{}}
}

// Get returns the value at key, or Nil if absent.
func (m *Map) Get(key string) Value {
	if m == nil {
		return Nil{}
	}
	if v, ok := m.values[key]; ok {
		return v
	}
	return Nil{}
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// With returns a new Map equal to m but with key bound to v — a persistent
// update used by world.World so that existing references to m are never
// mutated (spec.md §3 "World operations return a new World").
func (m *Map) With(key string, v Value) *Map {
	next := m.clone()
	if _, exists := next.values[key]; !exists {
		next.keys = append(next.keys, key)
	}
	next.values[key] = v
	return next
}

// Without returns a new Map equal to m but with key removed.
func (m *Map) Without(key string) *Map {
	if m == nil || !m.Has(key) {
		return m
	}
	next := m.clone()
	delete(next.values, key)
	for i, k := range next.keys {
		if k == key {
			next.keys = append(next.keys[:i:i], next.keys[i+1:]...)
			break
		}
	}
	return next
}

func (m *Map) clone() *Map {
	if m == nil {
		return NewMap()
	}
	values := make(map[string]Value, len(m.values)+1)
	for k, v := range m.values {
		values[k] = v
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return &Map{keys: keys, values: values}
}

// Equal compares two maps by content, irrespective of key order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, k := range m.Keys() {
		if !other.Has(k) || !Equal(m.Get(k), other.Get(k)) {
			return false
		}
	}
	return true
}

func (m *Map) String() string {
	s := "{"
	for i, k := range m.Keys() {
		if i > 0 {
			s += " "
		}
		s += k + ": " + m.Get(k).String()
	}
	return s + "}"
}
