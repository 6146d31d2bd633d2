package macro

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
)

// Trace is one recorded expansion step, kept for diagnostics and for the
// "expansion traces" debugging affordance (spec.md §4.2).
type Trace struct {
	Macro  string
	Before string
	After  string
}

// Expand macro-expands every top-level form in order against env. Macros
// themselves come exclusively from the standard library embedded in this
// package (loaded by NewEnvironment) plus whatever RegisterTemplate/
// RegisterNative calls a Go caller makes directly — top-level user
// programs do not get their own define-macro special form. That keeps
// expansion a closed phase over a fixed set of rewrite rules, which is
// what makes expand(expand(p)) == expand(p) easy to guarantee: the set of
// possible rewrites can't grow partway through expanding a program.
func Expand(forms []ast.Expr, env *Environment) ([]ast.Expr, []Trace, []*diag.Diagnostic) {
	var diags []*diag.Diagnostic
	trace := arraylist.New()

	expanded := make([]ast.Expr, 0, len(forms))
	for _, f := range forms {
		seen := treeset.NewWith(utils.StringComparator)
		e, err := expandExpr(f, env, 0, seen, trace)
		if err != nil {
			diags = append(diags, toDiagnostic(f.Span(), err))
			continue
		}
		expanded = append(expanded, e)
	}

	traces := make([]Trace, trace.Size())
	for i, v := range trace.Values() {
		traces[i] = v.(Trace)
	}
	return expanded, traces, diags
}

func toDiagnostic(span diag.Span, err error) *diag.Diagnostic {
	if d, ok := err.(*diag.Diagnostic); ok {
		return d
	}
	return diag.Wrap(diag.KindMacro, span, err, "macro expansion failed")
}

// asMacroDef recognizes (define-macro (name params... ...rest) template).
func asMacroDef(e ast.Expr) (*ast.ListExpr, bool) {
	l, ok := e.(*ast.ListExpr)
	if !ok || len(l.Children) == 0 {
		return nil, false
	}
	name, ok := ast.HeadSymbol(l)
	if !ok || name != "define-macro" {
		return nil, false
	}
	return l, true
}

func registerDefineMacro(env *Environment, def *ast.ListExpr) error {
	if len(def.Children) != 3 {
		return fmt.Errorf("define-macro wants (define-macro (name params...) template), got %d forms", len(def.Children)-1)
	}
	header, ok := def.Children[1].(*ast.ListExpr)
	if !ok || len(header.Children) == 0 {
		return fmt.Errorf("define-macro header must be (name params... ...rest)")
	}
	nameSym, ok := header.Children[0].(*ast.SymbolExpr)
	if !ok {
		return fmt.Errorf("define-macro header must start with a macro name symbol")
	}
	var params []string
	rest := ""
	for i := 1; i < len(header.Children); i++ {
		switch n := header.Children[i].(type) {
		case *ast.SymbolExpr:
			params = append(params, n.Name)
		case *ast.SpreadExpr:
			sym, ok := n.Inner.(*ast.SymbolExpr)
			if !ok {
				return fmt.Errorf("rest parameter must be ...name")
			}
			rest = sym.Name
		default:
			return fmt.Errorf("malformed macro parameter at position %d", i)
		}
	}
	return env.RegisterTemplate(nameSym.Name, params, rest, def.Children[2])
}

// expandExpr recursively expands e. Quote contents are data, never
// expanded. A list whose head names a macro is rewritten first and the
// result expanded again, so expansion proceeds outside-in (a macro sees
// its arguments unexpanded); any other compound node has its children
// expanded depth-first.
func expandExpr(e ast.Expr, env *Environment, depth int, seen *treeset.Set, trace *arraylist.List) (ast.Expr, error) {
	if depth > maxExpansionDepth {
		return nil, diag.New(diag.KindMacro, e.Span(), "macro expansion exceeded recursion depth %d (likely non-terminating macro)", maxExpansionDepth)
	}

	switch n := e.(type) {
	case *ast.QuoteExpr:
		return n, nil // data, not code
	case *ast.ListExpr:
		if name, ok := ast.HeadSymbol(n); ok {
			if m, ok := env.Lookup(name); ok {
				return expandCall(n, m, env, depth, seen, trace)
			}
		}
		children := make([]ast.Expr, len(n.Children))
		for i, c := range n.Children {
			ec, err := expandExpr(c, env, depth, seen, trace)
			if err != nil {
				return nil, err
			}
			children[i] = ec
		}
		return ast.List(n.Span(), children...), nil
	case *ast.SpreadExpr:
		inner, err := expandExpr(n.Inner, env, depth, seen, trace)
		if err != nil {
			return nil, err
		}
		return ast.Spread(n.Span(), inner), nil
	case *ast.IfExpr:
		cond, err := expandExpr(n.Cond, env, depth, seen, trace)
		if err != nil {
			return nil, err
		}
		then, err := expandExpr(n.Then, env, depth, seen, trace)
		if err != nil {
			return nil, err
		}
		els, err := expandExpr(n.Else, env, depth, seen, trace)
		if err != nil {
			return nil, err
		}
		return ast.If(n.Span(), cond, then, els), nil
	case *ast.DefineExpr:
		val, err := expandExpr(n.Value, env, depth, seen, trace)
		if err != nil {
			return nil, err
		}
		return ast.Define(n.Span(), n.Target, val), nil
	case *ast.LambdaExpr:
		body, err := expandExpr(n.Body, env, depth, seen, trace)
		if err != nil {
			return nil, err
		}
		return ast.Lambda(n.Span(), n.Params, n.Rest, body), nil
	case *ast.LetExpr:
		bindings := make([]ast.Binding, len(n.Bindings))
		for i, b := range n.Bindings {
			v, err := expandExpr(b.Value, env, depth, seen, trace)
			if err != nil {
				return nil, err
			}
			bindings[i] = ast.Binding{Name: b.Name, Value: v}
		}
		body, err := expandExpr(n.Body, env, depth, seen, trace)
		if err != nil {
			return nil, err
		}
		return ast.Let(n.Span(), bindings, body), nil
	default:
		return e, nil // atoms: NumberLit, BoolLit, StringLit, SymbolExpr, NilLit, PathExpr
	}
}

func expandCall(call *ast.ListExpr, m *Macro, env *Environment, depth int, seen *treeset.Set, trace *arraylist.List) (ast.Expr, error) {
	key := cycleKey(m.Name, call)
	if seen.Contains(key) {
		return nil, diag.New(diag.KindMacro, call.Span(), "macro %q is expanding into itself without making progress", m.Name)
	}
	nextSeen := treeset.NewWith(utils.StringComparator)
	for _, v := range seen.Values() {
		nextSeen.Add(v)
	}
	nextSeen.Add(key)

	args := call.Children[1:]
	var expanded ast.Expr
	var err error
	if m.Native != nil {
		expanded, err = m.Native(call, env)
	} else {
		if !m.arityOK(len(args)) {
			return nil, diag.New(diag.KindMacro, call.Span(), "macro %q expects %s, got %d argument(s)", m.Name, arityDesc(m), len(args))
		}
		expanded, err = substitute(m, env, args)
	}
	if err != nil {
		return nil, err
	}

	trace.Add(Trace{Macro: m.Name, Before: ast.String(call), After: ast.String(expanded)})
	tracer().Debugf("expanded %s -> %s", m.Name, ast.String(expanded))

	return expandExpr(expanded, env, depth+1, nextSeen, trace)
}

func arityDesc(m *Macro) string {
	if m.Rest != "" {
		return fmt.Sprintf("at least %d", len(m.Params))
	}
	return fmt.Sprintf("exactly %d", len(m.Params))
}

// cycleKey hashes the macro name plus the call's current textual form, the
// same structural-hash idea the world package uses to compare snapshots
// (world.Hash) and the teacher's earley item-set dedup uses to compare
// item sets — here guarding against a macro rewriting a call to a
// syntactically-identical call forever.
func cycleKey(name string, call *ast.ListExpr) string {
	h, err := structhash.Hash(struct {
		Macro string
		Form  string
	}{Macro: name, Form: ast.String(call)}, 1)
	if err != nil {
		return name + "|" + ast.String(call)
	}
	return h
}
