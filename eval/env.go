// Package eval implements Sutra's tree-walking evaluator (spec.md §3, §4.3):
// a single-parent lexical environment chain, a trampoline for tail-position
// safety on if/do/calls, and the symbol resolution order lexical env, then
// atom registry, then world path lookup (an atom name yields a value only in
// call-head position; referenced bare it is an error — spec.md §4.4 "must be
// called, not referenced bare").
//
// Env generalizes the teacher's runtime.Scope/ScopeTree
// (github.com/npillmayer/gorgo/runtime), a parent-chained frame used to
// resolve grammar-symbol attributes during a parse tree walk, to a
// parent-chained frame of ordinary values resolved during an AST walk.
package eval

import "github.com/cpond8/sutra/value"

// Env is one lexical frame: a name-to-value map plus a link to its parent.
// The zero value is not valid; use NewEnv.
type Env struct {
	parent *Env
	vars   map[string]value.Value
}

// NewEnv creates a fresh frame chained to parent (nil for the root frame).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: make(map[string]value.Value)}
}

// Get walks the frame chain from e outward, returning the first binding
// found for name.
func (e *Env) Get(name string) (value.Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name to v in e's own frame (not a parent's).
func (e *Env) Define(name string, v value.Value) {
	e.vars[name] = v
}

// Child returns a new frame extending e.
func (e *Env) Child() *Env {
	return NewEnv(e)
}
