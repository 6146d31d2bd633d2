package eval

import (
	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/registry"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

// Apply calls fn (an *value.Atom or *value.Lambda) on already-evaluated
// args. It is the non-tail-call path: used by the apply atom, by
// Context.Call on behalf of any other atom that calls back into
// evaluation, and by callers outside this package (e.g. package harness
// running a registered test's zero-arg thunk). The main Eval loop instead
// inlines lambda application directly so that a call in tail position can
// be served by the trampoline instead of a Go stack frame — see the
// *ast.ListExpr case in eval.go.
func Apply(fn value.Value, args []value.Value, w world.World, ctx *Context, span diag.Span) (value.Value, world.World, error) {
	if err := ctx.enter(span); err != nil {
		return nil, w, err
	}
	defer ctx.leave()

	switch f := fn.(type) {
	case *value.Atom:
		atomFn, ok := f.Invoke.(registry.AtomFunc)
		if !ok {
			return nil, w, diag.New(diag.KindEval, span, "atom %q has a malformed implementation", f.Name)
		}
		if err := checkArity(f, len(args), span); err != nil {
			return nil, w, err
		}
		return atomFn(args, w, ctx, span)
	case *value.Lambda:
		if err := checkArity(f, len(args), span); err != nil {
			return nil, w, err
		}
		callEnv := bindParams(f, args)
		body, ok := f.Body.(ast.Expr)
		if !ok {
			return nil, w, diag.New(diag.KindEval, span, "lambda %q has a malformed body", f.FuncName())
		}
		return Eval(body, callEnv, w, ctx)
	default:
		return nil, w, diag.New(diag.KindEval, span, "%s is not callable", fn.String())
	}
}

func checkArity(fn value.Function, got int, span diag.Span) error {
	min, max := fn.Arity()
	if got < min || (max >= 0 && got > max) {
		if max < 0 {
			return diag.New(diag.KindEval, span, "%s expects at least %d %s, got %d", fn.FuncName(), min, argWord(min), got)
		}
		if min == max {
			return diag.New(diag.KindEval, span, "%s expects exactly %d %s, got %d", fn.FuncName(), min, argWord(min), got)
		}
		return diag.New(diag.KindEval, span, "%s expects %d to %d %s, got %d", fn.FuncName(), min, max, argWord(max), got)
	}
	return nil
}

// argWord pluralizes "argument" the way spec.md §7's canonical arity
// messages do ("expects at least 2 arguments", "expects exactly 1
// argument").
func argWord(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}

// bindParams builds the call frame for a Lambda application: one child Env
// of the lambda's captured closure, with each fixed parameter bound
// positionally and the rest parameter (if any) bound to a List of whatever
// arguments remain.
func bindParams(f *value.Lambda, args []value.Value) *Env {
	parent, _ := f.Env.(*Env)
	env := NewEnv(parent)
	for i, p := range f.Params {
		env.Define(p, args[i])
	}
	if f.Rest != "" {
		rest := make(value.List, len(args)-len(f.Params))
		copy(rest, args[len(f.Params):])
		env.Define(f.Rest, rest)
	}
	return env
}
