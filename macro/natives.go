package macro

import (
	"fmt"

	"github.com/cpond8/sutra/ast"
)

// registerNatives installs the macros that need structural recursion over
// a variadic clause list rather than fixed-arity template substitution.
func registerNatives(env *Environment) {
	must := func(err error) {
		if err != nil {
			panic(err) // programmer error: a name collision among our own natives
		}
	}
	must(env.RegisterNative("cond", expandCond))
	must(env.RegisterNative("and", expandAnd))
	must(env.RegisterNative("or", expandOr))
}

// expandCond rewrites (cond (c1 r1) (c2 r2) ... (else rN)) into nested ifs.
// A clause headed by the symbol "else" must, if present, be the last one.
func expandCond(call *ast.ListExpr, env *Environment) (ast.Expr, error) {
	clauses := call.Children[1:]
	if len(clauses) == 0 {
		return ast.NilExpr(call.Span()), nil
	}
	var build func(i int) (ast.Expr, error)
	build = func(i int) (ast.Expr, error) {
		if i == len(clauses) {
			return ast.NilExpr(call.Span()), nil
		}
		clause, ok := clauses[i].(*ast.ListExpr)
		if !ok || len(clause.Children) != 2 {
			return nil, fmt.Errorf("cond clause must be (condition result), got %s", ast.String(clauses[i]))
		}
		cond, result := clause.Children[0], clause.Children[1]
		if sym, ok := cond.(*ast.SymbolExpr); ok && sym.Name == "else" {
			if i != len(clauses)-1 {
				return nil, fmt.Errorf("else clause must be the last clause of cond")
			}
			return result, nil
		}
		rest, err := build(i + 1)
		if err != nil {
			return nil, err
		}
		return ast.If(clause.Span(), cond, result, rest), nil
	}
	return build(0)
}

// expandAnd rewrites (and a b c) into (if a (if b c false) false), short
// circuiting on the first falsy operand. (and) with no operands is true.
func expandAnd(call *ast.ListExpr, env *Environment) (ast.Expr, error) {
	args := call.Children[1:]
	if len(args) == 0 {
		return ast.Bool(call.Span(), true), nil
	}
	result := args[len(args)-1]
	for i := len(args) - 2; i >= 0; i-- {
		result = ast.If(call.Span(), args[i], result, ast.Bool(call.Span(), false))
	}
	return result, nil
}

// expandOr rewrites (or a b c) into (if a a (if b b c)), short circuiting
// on the first truthy operand. (or) with no operands is false.
//
// Each operand other than the last is evaluated at most twice in this
// expansion (once as the test, once as the result) — acceptable for the
// side-effect-light expressions this language favors, and it keeps the
// expansion a pure rewrite with no fresh temporaries to hygiene-check.
func expandOr(call *ast.ListExpr, env *Environment) (ast.Expr, error) {
	args := call.Children[1:]
	if len(args) == 0 {
		return ast.Bool(call.Span(), false), nil
	}
	result := args[len(args)-1]
	for i := len(args) - 2; i >= 0; i-- {
		result = ast.If(call.Span(), args[i], args[i], result)
	}
	return result, nil
}
