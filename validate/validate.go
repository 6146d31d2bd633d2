// Package validate performs the static checks that run after macro
// expansion and before evaluation (spec.md §3's Validator phase): a spread
// in a position where nothing can splice it, and duplicate parameter names
// (including a rest parameter that repeats a positional one). It does not
// check atom arity or special-form shape. It never evaluates anything
// and never touches World, so these diagnostics are always cheap and
// always produced before a single atom runs.
//
// Diagnostics are collected into a gods/sets/treeset ordered by span start,
// then message (not emitted in discovery order, which would vary
// with map iteration inside nested structures), so that re-running the
// validator against the same program always reports findings in the same
// order — useful for golden-file diagnostic tests.
package validate

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
)

// Validate walks every top-level form and returns every diagnostic found,
// ordered deterministically by (span, message).
func Validate(forms []ast.Expr) []*diag.Diagnostic {
	v := &validator{found: treeset.NewWith(diagComparator)}
	for _, f := range forms {
		v.walk(f, false)
	}
	out := make([]*diag.Diagnostic, 0, v.found.Size())
	for _, d := range v.found.Values() {
		out = append(out, d.(*diag.Diagnostic))
	}
	return out
}

type validator struct {
	found *treeset.Set
}

func diagComparator(a, b interface{}) int {
	da, db := a.(*diag.Diagnostic), b.(*diag.Diagnostic)
	if c := utils.IntComparator(da.Span.From, db.Span.From); c != 0 {
		return c
	}
	return utils.StringComparator(da.Message, db.Message)
}

func (v *validator) report(d *diag.Diagnostic) {
	v.found.Add(d)
}

// walk visits e. inCallArg reports whether e sits directly in a ListExpr's
// Children — the only position a SpreadExpr is meaningful in (it splices
// into that very list, either at macro-expansion time for a macro's rest
// parameter, or at evaluation time for a plain function call — see
// ast.SpreadExpr's doc comment).
func (v *validator) walk(e ast.Expr, inCallArg bool) {
	switch n := e.(type) {
	case *ast.SpreadExpr:
		if !inCallArg {
			v.report(diag.New(diag.KindValidation, n.Span(),
				"... is only valid as a call argument, not here"))
		}
		v.walk(n.Inner, false)
	case *ast.ListExpr:
		for _, c := range n.Children {
			v.walk(c, true)
		}
	case *ast.QuoteExpr:
		// Quoted data is never validated as code — a quoted spread is just
		// data shaped like a spread, not an instruction to splice anything.
	case *ast.IfExpr:
		v.walk(n.Cond, false)
		v.walk(n.Then, false)
		v.walk(n.Else, false)
	case *ast.DefineExpr:
		if n.Target.IsFunc {
			v.checkParams(n.Span(), n.Target.Params, n.Target.Rest, fmt.Sprintf("define %q", n.Target.Name))
		}
		v.walk(n.Value, false)
	case *ast.LambdaExpr:
		v.checkParams(n.Span(), n.Params, n.Rest, "lambda")
		v.walk(n.Body, false)
	case *ast.LetExpr:
		for _, b := range n.Bindings {
			v.walk(b.Value, false)
		}
		v.walk(n.Body, false)
	default:
		// atoms: NumberLit, BoolLit, StringLit, SymbolExpr, NilLit, PathExpr
	}
}

// checkParams flags duplicate parameter names and a rest name that
// collides with a fixed parameter — both are unambiguous authoring
// mistakes, not anything a later phase could sensibly resolve.
func (v *validator) checkParams(span diag.Span, params []string, rest string, where string) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			v.report(diag.New(diag.KindValidation, span, "%s: duplicate parameter name %q", where, p))
		}
		seen[p] = true
	}
	if rest != "" && seen[rest] {
		v.report(diag.New(diag.KindValidation, span, "%s: rest parameter %q collides with a fixed parameter", where, rest))
	}
}
