package macro

import "github.com/cpond8/sutra/ast"

// substitute instantiates m.Template with args bound to m.Params/m.Rest.
// The template is renamed first (see rename.go) so any binding form it
// introduces (lambda/let) that is not itself one of the macro's declared
// parameters gets a fresh name, guaranteeing the caller's own identifiers
// can never be captured by names the macro author happened to pick.
func substitute(m *Macro, env *Environment, args []ast.Expr) (ast.Expr, error) {
	declared := make(map[string]bool, len(m.Params)+1)
	for _, p := range m.Params {
		declared[p] = true
	}
	if m.Rest != "" {
		declared[m.Rest] = true
	}
	renamed := renameLocals(m.Template, declared, env, make(map[string]string))

	bindings := make(map[string]ast.Expr, len(m.Params))
	for i, p := range m.Params {
		bindings[p] = args[i]
	}
	restArgs := args[len(m.Params):]
	return subst(renamed, bindings, m.Rest, restArgs), nil
}

// subst walks the (already renamed) template, replacing references to
// macro parameters with the supplied argument expressions. A SpreadExpr
// whose inner symbol is exactly the macro's rest parameter splices the
// trailing call arguments directly into the enclosing list, rather than
// wrapping them back into a single spread node — the macro already has the
// individual argument expressions in hand, so there's nothing left for the
// evaluator to splice at run time.
func subst(e ast.Expr, bindings map[string]ast.Expr, rest string, restArgs []ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.SymbolExpr:
		if v, ok := bindings[n.Name]; ok {
			return v
		}
		if rest != "" && n.Name == rest {
			return ast.List(n.Span(), restArgs...)
		}
		return n
	case *ast.ListExpr:
		var children []ast.Expr
		for _, c := range n.Children {
			if sp, ok := c.(*ast.SpreadExpr); ok {
				if sym, ok := sp.Inner.(*ast.SymbolExpr); ok && rest != "" && sym.Name == rest {
					children = append(children, restArgs...)
					continue
				}
			}
			children = append(children, subst(c, bindings, rest, restArgs))
		}
		return ast.List(n.Span(), children...)
	case *ast.SpreadExpr:
		return ast.Spread(n.Span(), subst(n.Inner, bindings, rest, restArgs))
	case *ast.QuoteExpr:
		return ast.Quote(n.Span(), subst(n.Inner, bindings, rest, restArgs))
	case *ast.IfExpr:
		return ast.If(n.Span(),
			subst(n.Cond, bindings, rest, restArgs),
			subst(n.Then, bindings, rest, restArgs),
			subst(n.Else, bindings, rest, restArgs))
	case *ast.DefineExpr:
		return ast.Define(n.Span(), n.Target, subst(n.Value, bindings, rest, restArgs))
	case *ast.LambdaExpr:
		return ast.Lambda(n.Span(), n.Params, n.Rest, subst(n.Body, bindings, rest, restArgs))
	case *ast.LetExpr:
		newBindings := make([]ast.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			newBindings[i] = ast.Binding{Name: b.Name, Value: subst(b.Value, bindings, rest, restArgs)}
		}
		return ast.Let(n.Span(), newBindings, subst(n.Body, bindings, rest, restArgs))
	default:
		return e
	}
}
