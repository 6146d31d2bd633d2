/*
Package sutra implements the Sutra language pipeline: parse, macro-expand,
validate, and evaluate a small Lisp-like scripting language for
interactive fiction, over a persistent, path-addressed world state.

Package structure:

■ diag: diagnostics — spans, error kinds, and a renderer shared by every
phase below.

■ value: the runtime value universe (Nil, Number, Bool, String, Symbol,
List, Map, Path, Function).

■ ast: the canonical abstract syntax tree, produced by parser and
rewritten by macro into new trees.

■ parser (and parser/lex): a hand-written recursive-descent parser over a
lexmachine-backed tokenizer.

■ macro: template- and native-macro expansion, with gensym-based hygiene
and recursion-cycle detection.

■ validate: static checks run on expanded code before evaluation.

■ registry: the canonical, immutable table of built-in atoms and the
macro environment every evaluation shares.

■ eval: the tree-walking evaluator, with an explicit trampoline for
tail-position safety.

■ world: persistent, path-addressed state plus a deterministic PRNG,
threaded explicitly through evaluation.

■ sink: the output boundary every print primitive writes through.

■ harness: a run-tests driver for scripts that use register-test!.

Run ties the phases together for a host program that just wants to
execute a script and get its result back.
*/
package sutra

import (
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/eval"
	"github.com/cpond8/sutra/macro"
	"github.com/cpond8/sutra/parser"
	"github.com/cpond8/sutra/registry"
	"github.com/cpond8/sutra/sink"
	"github.com/cpond8/sutra/validate"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

// Session bundles one pipeline invocation's shared, immutable setup: the
// atom/macro registry and the output sink. Building it once and reusing
// it across many Run calls is how a host avoids rebuilding the standard
// macro library for every script (spec.md §4.7 "built once per pipeline
// invocation").
type Session struct {
	Registry *registry.Registry
	Out      sink.Sink
}

// NewSession builds a Session with the canonical registry. out may be nil
// (discards all output).
func NewSession(out sink.Sink) (*Session, error) {
	reg, err := registry.NewCanonical()
	if err != nil {
		return nil, err
	}
	return &Session{Registry: reg, Out: out}, nil
}

// Run parses, expands, validates, and evaluates src against w, returning
// the last top-level form's value, the resulting World, and any
// registered tests the script recorded along the way.
func (s *Session) Run(src string, w world.World) (value.Value, world.World, []eval.RegisteredTest, error) {
	forms, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		return nil, w, nil, diags[0]
	}
	expanded, _, mdiags := macro.Expand(forms, s.Registry.Macros)
	if diag.HasErrors(mdiags) {
		return nil, w, nil, mdiags[0]
	}
	if vdiags := validate.Validate(expanded); diag.HasErrors(vdiags) {
		return nil, w, nil, vdiags[0]
	}
	ctx := eval.NewContext(s.Registry, s.Out)
	v, w, err := eval.EvalAll(expanded, eval.NewEnv(nil), w, ctx)
	return v, w, ctx.Tests(), err
}
