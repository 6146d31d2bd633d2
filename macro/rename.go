package macro

import "github.com/cpond8/sutra/ast"

// renameLocals gives every lambda/let-bound name in a macro template that
// is *not* one of the macro's own declared parameters a fresh gensym name,
// so that expanding the macro can never let one of its internal helper
// bindings shadow (or be shadowed by) an identifier the caller happens to
// use as an argument. Declared parameter names are left alone here — they
// are substituted for caller-supplied expressions afterward, by subst.
//
// Quoted data is left untouched: renaming belongs to code, not literals.
func renameLocals(e ast.Expr, declared map[string]bool, env *Environment, scope map[string]string) ast.Expr {
	switch n := e.(type) {
	case *ast.SymbolExpr:
		if renamed, ok := scope[n.Name]; ok {
			return ast.Sym(n.Span(), renamed)
		}
		return n
	case *ast.QuoteExpr:
		return n
	case *ast.ListExpr:
		children := make([]ast.Expr, len(n.Children))
		for i, c := range n.Children {
			children[i] = renameLocals(c, declared, env, scope)
		}
		return ast.List(n.Span(), children...)
	case *ast.SpreadExpr:
		return ast.Spread(n.Span(), renameLocals(n.Inner, declared, env, scope))
	case *ast.IfExpr:
		return ast.If(n.Span(),
			renameLocals(n.Cond, declared, env, scope),
			renameLocals(n.Then, declared, env, scope),
			renameLocals(n.Else, declared, env, scope))
	case *ast.DefineExpr:
		// Define binds into whatever scope is active when it runs, not a
		// lexical scope this walk can see statically; its target name is
		// left alone.
		return ast.Define(n.Span(), n.Target, renameLocals(n.Value, declared, env, scope))
	case *ast.LambdaExpr:
		inner := extendScope(scope, declared, env, n.Params, n.Rest)
		newParams := renamedNames(n.Params, inner)
		newRest := n.Rest
		if r, ok := inner[n.Rest]; n.Rest != "" && ok {
			newRest = r
		}
		return ast.Lambda(n.Span(), newParams, newRest, renameLocals(n.Body, declared, env, inner))
	case *ast.LetExpr:
		cur := scope
		bindings := make([]ast.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			valExpr := renameLocals(b.Value, declared, env, cur)
			name := b.Name
			if !declared[b.Name] {
				fresh := env.gensymName(b.Name)
				cur = withBinding(cur, b.Name, fresh)
				name = fresh
			}
			bindings[i] = ast.Binding{Name: name, Value: valExpr}
		}
		return ast.Let(n.Span(), bindings, renameLocals(n.Body, declared, env, cur))
	default:
		return e
	}
}

func extendScope(scope map[string]string, declared map[string]bool, env *Environment, params []string, rest string) map[string]string {
	next := make(map[string]string, len(scope)+len(params)+1)
	for k, v := range scope {
		next[k] = v
	}
	for _, p := range params {
		if !declared[p] {
			next[p] = env.gensymName(p)
		}
	}
	if rest != "" && !declared[rest] {
		next[rest] = env.gensymName(rest)
	}
	return next
}

func withBinding(scope map[string]string, name, fresh string) map[string]string {
	next := make(map[string]string, len(scope)+1)
	for k, v := range scope {
		next[k] = v
	}
	next[name] = fresh
	return next
}

func renamedNames(names []string, scope map[string]string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		if r, ok := scope[n]; ok {
			out[i] = r
		} else {
			out[i] = n
		}
	}
	return out
}
