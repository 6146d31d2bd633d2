// Package world implements Sutra's persistent, path-addressed world state
// (spec.md §3, §4.5): a structurally-shared immutable tree plus a
// deterministic PRNG, both threaded explicitly through every evaluation
// step. The sharing scheme is a path-copying trie over value.Map, a
// generalization of the teacher's parent-chained, tree-shaped
// runtime.ScopeTree (github.com/npillmayer/gorgo/runtime) from "a chain of
// frames" to "a tree of named segments": Set clones only the Map nodes on
// the path from the root to the mutated leaf, and every sibling branch is
// shared by reference with the previous World.
package world

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/cpond8/sutra/value"
)

// tracer traces with key 'sutra.world'.
func tracer() tracing.Trace {
	return tracing.Select("sutra.world")
}

// World is the entire persistent state of a run. The zero value is a valid
// empty world whose PRNG state is 0 (not DefaultSeed).
type World struct {
	root *value.Map
	rng  Rand
}

// New returns an empty World seeded with seed.
func New(seed int64) World {
	return World{root: value.NewMap(), rng: NewRand(seed)}
}

// DefaultSeed is used when no explicit seed is requested, so that running
// the same script twice without specifying a seed is still reproducible
// within a process (spec.md §4.5 "initialized from a seed, default fixed").
const DefaultSeed int64 = 1

// Root returns the world's root Map, for serialization/inspection.
func (w World) Root() *value.Map {
	if w.root == nil {
		return value.NewMap()
	}
	return w.root
}

// Get returns the value at path, or Nil if any segment along the way is
// absent.
func (w World) Get(path value.Path) value.Value {
	node := w.Root()
	if len(path) == 0 {
		return node
	}
	for _, seg := range path[:len(path)-1] {
		child, ok := node.Get(seg).(*value.Map)
		if !ok {
			return value.Nil{}
		}
		node = child
	}
	return node.Get(path[len(path)-1])
}

// Exists reports whether every segment of path resolves to a present key.
func (w World) Exists(path value.Path) bool {
	if len(path) == 0 {
		return true
	}
	node := w.Root()
	for _, seg := range path[:len(path)-1] {
		child, ok := node.Get(seg).(*value.Map)
		if !ok {
			return false
		}
		node = child
	}
	return node.Has(path[len(path)-1])
}

// Set returns a new World with path bound to v. Intermediate Maps are
// created as needed (spec.md §4.5).
func (w World) Set(path value.Path, v value.Value) World {
	if len(path) == 0 {
		tracer().Debugf("set on empty path is a no-op")
		return w
	}
	next := w
	next.root = setPath(w.Root(), path, v)
	return next
}

func setPath(node *value.Map, path value.Path, v value.Value) *value.Map {
	seg, rest := path[0], path[1:]
	if len(rest) == 0 {
		return node.With(seg, v)
	}
	child, ok := node.Get(seg).(*value.Map)
	if !ok {
		child = value.NewMap()
	}
	return node.With(seg, setPath(child, rest, v))
}

// Del returns a new World with path's leaf removed. Intermediate Maps are
// left untouched even if they become empty (spec.md §4.5).
func (w World) Del(path value.Path) World {
	if len(path) == 0 {
		return w
	}
	next := w
	next.root = delPath(w.Root(), path)
	return next
}

func delPath(node *value.Map, path value.Path) *value.Map {
	seg, rest := path[0], path[1:]
	if len(rest) == 0 {
		return node.Without(seg)
	}
	child, ok := node.Get(seg).(*value.Map)
	if !ok {
		return node // nothing to remove along a path that doesn't exist
	}
	return node.With(seg, delPath(child, rest))
}

// Rand returns a Number in [0, 1) and a new World with the PRNG advanced.
// Determinism (spec.md §8): evaluating the same AST against equal Worlds
// always produces equal draws and equal resulting Worlds.
func (w World) Rand() (value.Number, World) {
	next := w
	var f float64
	f, next.rng = w.rng.Next()
	return value.Number(f), next
}

// Seed returns the World's current PRNG seed value, for diagnostics/tests.
func (w World) Seed() int64 {
	return w.rng.state
}
