package eval

import (
	"fmt"

	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/value"
)

// quoteToValue converts quoted AST data to a runtime Value without
// evaluating it (spec.md §3 "'x yields x as data"). If/Define/Lambda/Let
// are reconstructed back into their ordinary list shape — the parser
// recognizes those head symbols unconditionally, even inside a quote, so
// '(if a b c) arrives here as an *ast.IfExpr rather than a generic list;
// rebuilding the s-expression form here is what keeps quoting them
// homoiconic rather than a crash.
func quoteToValue(e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return value.Number(n.Value), nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil
	case *ast.StringLit:
		return value.String(n.Value), nil
	case *ast.NilLit:
		return value.Nil{}, nil
	case *ast.SymbolExpr:
		return value.Symbol(n.Name), nil
	case *ast.PathExpr:
		return value.Path(append([]string{}, n.Segments...)), nil
	case *ast.QuoteExpr:
		inner, err := quoteToValue(n.Inner)
		if err != nil {
			return nil, err
		}
		return value.List{value.Symbol("quote"), inner}, nil
	case *ast.ListExpr:
		out := make(value.List, len(n.Children))
		for i, c := range n.Children {
			v, err := quoteToValue(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case *ast.IfExpr:
		return quoteForm(n.Span(), "if", n.Cond, n.Then, n.Else)
	case *ast.DefineExpr:
		header, err := defineHeaderValue(n.Target)
		if err != nil {
			return nil, err
		}
		return quoteFormValues(n.Span(), "define", header, n.Value)
	case *ast.LambdaExpr:
		return quoteFormValues(n.Span(), "lambda", paramsValue(n.Params, n.Rest), n.Body)
	case *ast.LetExpr:
		bindings := make(value.List, len(n.Bindings))
		for i, b := range n.Bindings {
			v, err := quoteToValue(b.Value)
			if err != nil {
				return nil, err
			}
			bindings[i] = value.List{value.Symbol(b.Name), v}
		}
		return quoteFormValues(n.Span(), "let", bindings, n.Body)
	case *ast.SpreadExpr:
		return nil, diag.New(diag.KindEval, n.Span(), "cannot quote a spread expression")
	default:
		return nil, fmt.Errorf("quote: unhandled expr %T", e)
	}
}

func quoteForm(span diag.Span, head string, exprs ...ast.Expr) (value.Value, error) {
	out := make(value.List, 0, len(exprs)+1)
	out = append(out, value.Symbol(head))
	for _, e := range exprs {
		v, err := quoteToValue(e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func quoteFormValues(span diag.Span, head string, rest ...interface{}) (value.Value, error) {
	out := value.List{value.Symbol(head)}
	for _, r := range rest {
		switch v := r.(type) {
		case value.Value:
			out = append(out, v)
		case ast.Expr:
			qv, err := quoteToValue(v)
			if err != nil {
				return nil, err
			}
			out = append(out, qv)
		}
	}
	return out, nil
}

func paramsValue(params []string, rest string) value.List {
	out := make(value.List, 0, len(params)+1)
	for _, p := range params {
		out = append(out, value.Symbol(p))
	}
	if rest != "" {
		out = append(out, value.List{value.Symbol("..."), value.Symbol(rest)})
	}
	return out
}

func defineHeaderValue(t ast.DefineTarget) (value.Value, error) {
	if !t.IsFunc {
		return value.Symbol(t.Name), nil
	}
	out := value.List{value.Symbol(t.Name)}
	out = append(out, paramsValue(t.Params, t.Rest)...)
	return out, nil
}
