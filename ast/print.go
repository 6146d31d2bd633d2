package ast

import (
	"strconv"
	"strings"
)

// String renders e back to s-expression surface syntax. It is used for
// diagnostics, macro expansion traces, and debug dumps; it does not claim
// to be a perfect round-trip of the original source formatting.
func String(e Expr) string {
	var b strings.Builder
	write(&b, e)
	return b.String()
}

func write(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *NumberLit:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *BoolLit:
		if n.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *StringLit:
		b.WriteByte('"')
		b.WriteString(n.Value)
		b.WriteByte('"')
	case *SymbolExpr:
		b.WriteString(n.Name)
	case *NilLit:
		b.WriteString("nil")
	case *ListExpr:
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(' ')
			}
			write(b, c)
		}
		b.WriteByte(')')
	case *PathExpr:
		b.WriteString(strings.Join(n.Segments, "."))
	case *QuoteExpr:
		b.WriteByte('\'')
		write(b, n.Inner)
	case *SpreadExpr:
		b.WriteString("...")
		write(b, n.Inner)
	case *IfExpr:
		b.WriteString("(if ")
		write(b, n.Cond)
		b.WriteByte(' ')
		write(b, n.Then)
		b.WriteByte(' ')
		write(b, n.Else)
		b.WriteByte(')')
	case *DefineExpr:
		b.WriteString("(define ")
		if n.Target.IsFunc {
			b.WriteByte('(')
			b.WriteString(n.Target.Name)
			for _, p := range n.Target.Params {
				b.WriteByte(' ')
				b.WriteString(p)
			}
			if n.Target.Rest != "" {
				b.WriteString(" ...")
				b.WriteString(n.Target.Rest)
			}
			b.WriteByte(')')
		} else {
			b.WriteString(n.Target.Name)
		}
		b.WriteByte(' ')
		write(b, n.Value)
		b.WriteByte(')')
	case *LambdaExpr:
		b.WriteString("(lambda (")
		b.WriteString(strings.Join(n.Params, " "))
		if n.Rest != "" {
			if len(n.Params) > 0 {
				b.WriteByte(' ')
			}
			b.WriteString("...")
			b.WriteString(n.Rest)
		}
		b.WriteString(") ")
		write(b, n.Body)
		b.WriteByte(')')
	case *LetExpr:
		b.WriteString("(let (")
		for i, bind := range n.Bindings {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('(')
			b.WriteString(bind.Name)
			b.WriteByte(' ')
			write(b, bind.Value)
			b.WriteByte(')')
		}
		b.WriteString(") ")
		write(b, n.Body)
		b.WriteByte(')')
	default:
		b.WriteString("<unknown expr>")
	}
}

// Head returns the first child of a ListExpr's call form, or nil if e isn't
// a non-empty ListExpr. Used by the macro engine and evaluator to inspect
// the operator position.
func Head(e Expr) Expr {
	l, ok := e.(*ListExpr)
	if !ok || len(l.Children) == 0 {
		return nil
	}
	return l.Children[0]
}

// HeadSymbol returns the name of e's head symbol and true, if e is a
// ListExpr whose first child is a SymbolExpr.
func HeadSymbol(e Expr) (string, bool) {
	h := Head(e)
	if h == nil {
		return "", false
	}
	sym, ok := h.(*SymbolExpr)
	if !ok {
		return "", false
	}
	return sym.Name, true
}
