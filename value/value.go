// Package value implements the runtime universe of Sutra values: the
// tagged sum Nil/Number/Bool/String/Symbol/List/Map/Path/Function described
// in spec.md §3. The design generalizes the teacher's Atom/GCons pair
// (github.com/npillmayer/gorgo/terex) from an untyped Lisp cons-cell
// universe into a typed Go interface with one concrete struct per case —
// the same move the AST package makes, and for the same reason: the
// validator and evaluator both want to type-switch exhaustively rather
// than branch on an AtomType tag.
package value

import "fmt"

// Value is the universe of runtime values. It is a closed sum: every
// implementation lives in this package.
type Value interface {
	fmt.Stringer
	valueMarker()
}

// Nil is the absence of a value.
type Nil struct{}

func (Nil) valueMarker() {}
func (Nil) String() string { return "nil" }

// Number is a 64-bit float, Sutra's single numeric type.
type Number float64

func (Number) valueMarker() {}
func (n Number) String() string { return FormatNumber(float64(n)) }

// Bool is a boolean value.
type Bool bool

func (Bool) valueMarker() {}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String is UTF-8 text.
type String string

func (String) valueMarker() {}
func (s String) String() string { return string(s) }

// Symbol is an interned name, distinct from String. Symbols arise from
// quoted forms ('foo, the elements of a quoted list, and so on).
type Symbol string

func (Symbol) valueMarker() {}
func (s Symbol) String() string { return string(s) }

// List is an ordered, heterogeneous sequence of values.
type List []Value

func (List) valueMarker() {}

func (l List) String() string {
	s := "("
	for i, v := range l {
		if i > 0 {
			s += " "
		}
		s += v.String()
	}
	return s + ")"
}

// Path is an ordered sequence of non-empty segment names addressing a
// location in a World. player.hp parses to Path{"player", "hp"}.
type Path []string

func (Path) valueMarker() {}

func (p Path) String() string {
	s := ""
	for i, seg := range p {
		if i > 0 {
			s += "."
		}
		s += seg
	}
	return s
}

// IsNil reports whether v is the Nil value (a convenience for callers that
// don't want to type-switch).
func IsNil(v Value) bool {
	_, ok := v.(Nil)
	return ok
}

// Truthy implements spec.md §3's truthiness table: Nil, false, 0, "", and
// () are falsy; everything else (including non-empty maps, functions,
// paths) is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(t)
	case Number:
		return t != 0
	case String:
		return t != ""
	case List:
		return len(t) != 0
	default:
		return true
	}
}

// Equal implements eq? semantics: same dynamic type and same content.
// Values of differing dynamic type are never equal, even when one could be
// coerced to the other (eq? 1 "1") = false, per spec.md §8.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Symbol:
		bv, ok := b.(Symbol)
		return ok && av == bv
	case Path:
		bv, ok := b.(Path)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		return ok && av.Equal(bv)
	default:
		// Functions compare by identity.
		return a == b
	}
}
