// Package registry builds the canonical, immutable table of built-in atoms
// and the macro environment every evaluation shares (spec.md §4.4, §4.7).
// It is constructed once, by NewCanonical, and read many times afterward —
// the same "build an immutable snapshot, then only read it" shape the
// teacher's terex.GlobalEnvironment is built with, generalized from a
// single global symbol table to an explicit, passable value so that tests
// can build independent registries instead of sharing process-global state.
//
// registry must not import package eval: eval needs the Registry to
// resolve a call's head symbol, so the dependency can only run one way.
// Atoms that need to call back into evaluation (apply, the test
// primitives) do so through the Caller interface below, which eval.Context
// implements — the same opaque-capability trick package value uses for
// Atom.Invoke/Lambda.Body to keep value independent of eval/world/ast.
package registry

import (
	"fmt"

	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/macro"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

// Caller is the capability an Atom's implementation gets for calling back
// into the evaluator: invoking a Function value (for apply and any future
// combinator atom), writing to the active output sink, and recording a
// test registered by register-test!.
type Caller interface {
	Call(fn value.Value, args []value.Value, w world.World) (value.Value, world.World, error)
	Emit(text string, span diag.Span)
	RegisterTest(name string, thunk value.Value, tags []string, span diag.Span)
}

// AtomFunc is the concrete type every built-in atom implements.
type AtomFunc func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error)

// Atom is a registry-owned atom definition. Its Value method produces the
// value.Atom handle that flows through environments as a first-class,
// callable Value.
type Atom struct {
	Name               string
	MinArity, MaxArity int // MaxArity < 0 means unbounded
	Call               AtomFunc
}

func (a *Atom) Value() *value.Atom {
	return &value.Atom{Name: a.Name, MinArity: a.MinArity, MaxArity: a.MaxArity, Invoke: a.Call}
}

// Registry is the immutable snapshot of every built-in atom plus the
// standard macro environment.
type Registry struct {
	atoms  map[string]*Atom
	Macros *macro.Environment
}

// NewCanonical builds the one true Registry: every built-in atom this
// implementation ships, plus macro.NewEnvironment's standard library.
func NewCanonical() (*Registry, error) {
	r := &Registry{atoms: make(map[string]*Atom)}
	registerArithmetic(r)
	registerComparison(r)
	registerCollections(r)
	registerWorldAtoms(r)
	registerIOAtoms(r)
	registerTestAtoms(r)

	mEnv, err := macro.NewEnvironment()
	if err != nil {
		return nil, fmt.Errorf("building macro environment: %w", err)
	}
	r.Macros = mEnv
	return r, nil
}

func (r *Registry) add(a *Atom) {
	if _, exists := r.atoms[a.Name]; exists {
		panic(fmt.Sprintf("registry: atom %q registered twice", a.Name))
	}
	r.atoms[a.Name] = a
}

// Lookup returns the atom named name, if any is registered.
func (r *Registry) Lookup(name string) (*Atom, bool) {
	a, ok := r.atoms[name]
	return a, ok
}

