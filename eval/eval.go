package eval

import (
	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

// Eval walks e against env/w and returns the resulting Value and the
// (possibly mutated) World. It is written as an explicit trampoline: the
// three tail positions spec.md §4.3 calls out — an if's taken branch, a
// do's last form, and a lambda call's body — are served by reassigning
// e/env/w and looping, rather than by a recursive Eval call, so a
// tail-recursive Sutra function runs in constant Go stack regardless of
// how many times it calls itself. Every other recursive step (argument
// evaluation, an if's condition, a let binding's value, a non-tail call
// through Apply) is an ordinary Go call and is bounded by Context's
// recursion guard or by the depth of the expression itself.
func Eval(e ast.Expr, env *Env, w world.World, ctx *Context) (value.Value, world.World, error) {
	if err := ctx.enter(e.Span()); err != nil {
		return nil, w, err
	}
	defer ctx.leave()
	for {
		switch n := e.(type) {
		case *ast.NumberLit:
			return value.Number(n.Value), w, nil
		case *ast.BoolLit:
			return value.Bool(n.Value), w, nil
		case *ast.StringLit:
			return value.String(n.Value), w, nil
		case *ast.NilLit:
			return value.Nil{}, w, nil

		case *ast.SymbolExpr:
			if v, ok := env.Get(n.Name); ok {
				return v, w, nil
			}
			if _, ok := ctx.Registry.Lookup(n.Name); ok {
				return nil, w, diag.New(diag.KindEval, n.Span(), "%q is an atom and can only be used in call position, e.g. (%s ...)", n.Name, n.Name)
			}
			path := value.Path{n.Name}
			if w.Exists(path) {
				return w.Get(path), w, nil
			}
			return nil, w, diag.New(diag.KindEval, n.Span(), "unbound symbol %q", n.Name)

		case *ast.PathExpr:
			return w.Get(value.Path(n.Segments)), w, nil

		case *ast.QuoteExpr:
			v, err := quoteToValue(n.Inner)
			if err != nil {
				return nil, w, err
			}
			return v, w, nil

		case *ast.SpreadExpr:
			return nil, w, diag.New(diag.KindEval, n.Span(), "spread is only valid as a call argument")

		case *ast.IfExpr:
			cond, w2, err := Eval(n.Cond, env, w, ctx)
			if err != nil {
				return nil, w2, err
			}
			w = w2
			if value.Truthy(cond) {
				e = n.Then
			} else {
				e = n.Else
			}
			continue

		case *ast.DefineExpr:
			var v value.Value
			var err error
			if n.Target.IsFunc {
				v = &value.Lambda{
					Name:   n.Target.Name,
					Params: n.Target.Params,
					Rest:   n.Target.Rest,
					Body:   n.Value,
					Env:    env,
				}
			} else {
				v, w, err = Eval(n.Value, env, w, ctx)
				if err != nil {
					return nil, w, err
				}
			}
			env.Define(n.Target.Name, v)
			return value.Nil{}, w, nil

		case *ast.LambdaExpr:
			return &value.Lambda{Params: n.Params, Rest: n.Rest, Body: n.Body, Env: env}, w, nil

		case *ast.LetExpr:
			child := env.Child()
			for _, b := range n.Bindings {
				v, w2, err := Eval(b.Value, child, w, ctx)
				if err != nil {
					return nil, w2, err
				}
				w = w2
				child.Define(b.Name, v)
			}
			env = child
			e = n.Body
			continue

		case *ast.ListExpr:
			if head, ok := ast.HeadSymbol(n); ok && head == "do" {
				if len(n.Children) <= 1 {
					return value.Nil{}, w, nil
				}
				body := n.Children[1:]
				for _, c := range body[:len(body)-1] {
					_, w2, err := Eval(c, env, w, ctx)
					if err != nil {
						return nil, w2, err
					}
					w = w2
				}
				e = body[len(body)-1]
				continue
			}

			if len(n.Children) == 0 {
				return value.List{}, w, nil
			}

			callee, w2, err := evalCallee(n.Children[0], env, w, ctx)
			if err != nil {
				return nil, w2, err
			}
			w = w2

			argExprs := n.Children[1:]
			var pathArg value.Value
			if a, ok := callee.(*value.Atom); ok && worldPathAtoms[a.Name] && len(argExprs) > 0 {
				if p, ok := argExprs[0].(*ast.PathExpr); ok {
					pathArg, argExprs = value.Path(p.Segments), argExprs[1:]
				}
			}
			args, w3, err := evalArgs(argExprs, env, w, ctx)
			if err != nil {
				return nil, w3, err
			}
			w = w3
			if pathArg != nil {
				args = append([]value.Value{pathArg}, args...)
			}

			switch fn := callee.(type) {
			case *value.Atom:
				return Apply(fn, args, w, ctx, n.Span())
			case *value.Lambda:
				if err := checkArity(fn, len(args), n.Span()); err != nil {
					return nil, w, err
				}
				body, ok := fn.Body.(ast.Expr)
				if !ok {
					return nil, w, diag.New(diag.KindEval, n.Span(), "lambda %q has a malformed body", fn.FuncName())
				}
				env = bindParams(fn, args)
				e = body
				continue
			default:
				return nil, w, diag.New(diag.KindEval, n.Span(), "%s is not callable", callee.String())
			}

		default:
			return nil, w, diag.New(diag.KindEval, e.Span(), "cannot evaluate %T", e)
		}
	}
}

// worldPathAtoms names the atoms whose first argument addresses the World:
// a dotted path written there is passed as a Path value instead of being
// read from the World.
var worldPathAtoms = map[string]bool{
	"core/set!": true, "core/get": true, "core/del!": true,
	"core/exists?": true, "core/push!": true, "core/pull!": true,
}

// evalCallee resolves the operator position of a call. A bare symbol
// there is resolved against the lexical env first, then the atom
// registry, then a world path — atoms are only ever visible in this
// position (spec.md §4.4 "must be called, not referenced bare"). Any
// other expression (e.g. a nested call that itself produces a function
// value) is just evaluated.
func evalCallee(head ast.Expr, env *Env, w world.World, ctx *Context) (value.Value, world.World, error) {
	sym, ok := head.(*ast.SymbolExpr)
	if !ok {
		return Eval(head, env, w, ctx)
	}
	if v, ok := env.Get(sym.Name); ok {
		return v, w, nil
	}
	if a, ok := ctx.Registry.Lookup(sym.Name); ok {
		return a.Value(), w, nil
	}
	path := value.Path{sym.Name}
	if w.Exists(path) {
		return w.Get(path), w, nil
	}
	return nil, w, diag.New(diag.KindEval, sym.Span(), "unbound symbol %q", sym.Name)
}

// evalArgs evaluates a call's argument expressions left to right, splicing
// a SpreadExpr's evaluated List in place rather than appending it as one
// argument.
func evalArgs(exprs []ast.Expr, env *Env, w world.World, ctx *Context) ([]value.Value, world.World, error) {
	args := make([]value.Value, 0, len(exprs))
	for _, a := range exprs {
		if sp, ok := a.(*ast.SpreadExpr); ok {
			v, w2, err := Eval(sp.Inner, env, w, ctx)
			if err != nil {
				return nil, w2, err
			}
			w = w2
			lst, ok := v.(value.List)
			if !ok {
				return nil, w, diag.New(diag.KindEval, sp.Span(), "cannot spread a %s", v.String())
			}
			args = append(args, lst...)
			continue
		}
		v, w2, err := Eval(a, env, w, ctx)
		if err != nil {
			return nil, w2, err
		}
		w = w2
		args = append(args, v)
	}
	return args, w, nil
}

// EvalAll evaluates a whole program, one top-level form after another in
// a shared env and threaded World, returning the last form's value — the
// shape package harness and cmd/sutrarepl both drive a loaded script with.
func EvalAll(forms []ast.Expr, env *Env, w world.World, ctx *Context) (value.Value, world.World, error) {
	var result value.Value = value.Nil{}
	for _, f := range forms {
		v, w2, err := Eval(f, env, w, ctx)
		if err != nil {
			return nil, w2, err
		}
		w = w2
		result = v
	}
	return result, w, nil
}
