package parser

import (
	"testing"

	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
)

func mustParse(t *testing.T, src string) []ast.Expr {
	t.Helper()
	forms, diags := Parse(src)
	if diag.HasErrors(diags) {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diag.Render(diags))
	}
	return forms
}

func TestParseAtoms(t *testing.T) {
	forms := mustParse(t, `42 -3.5 "hi\n" true false nil player.hp foo`)
	if len(forms) != 8 {
		t.Fatalf("got %d forms, want 8", len(forms))
	}
	if n, ok := forms[0].(*ast.NumberLit); !ok || n.Value != 42 {
		t.Errorf("forms[0] = %#v", forms[0])
	}
	if s, ok := forms[2].(*ast.StringLit); !ok || s.Value != "hi\n" {
		t.Errorf("forms[2] = %#v, want unescaped newline", forms[2])
	}
	if b, ok := forms[3].(*ast.BoolLit); !ok || !b.Value {
		t.Errorf("forms[3] = %#v", forms[3])
	}
	if _, ok := forms[5].(*ast.NilLit); !ok {
		t.Errorf("forms[5] = %#v, want NilLit", forms[5])
	}
	path, ok := forms[6].(*ast.PathExpr)
	if !ok || len(path.Segments) != 2 || path.Segments[0] != "player" || path.Segments[1] != "hp" {
		t.Errorf("forms[6] = %#v, want path player.hp", forms[6])
	}
	if sym, ok := forms[7].(*ast.SymbolExpr); !ok || sym.Name != "foo" {
		t.Errorf("forms[7] = %#v", forms[7])
	}
}

func TestParseCall(t *testing.T) {
	forms := mustParse(t, `(+ 1 2)`)
	list, ok := forms[0].(*ast.ListExpr)
	if !ok || len(list.Children) != 3 {
		t.Fatalf("got %#v", forms[0])
	}
	if sym, ok := list.Children[0].(*ast.SymbolExpr); !ok || sym.Name != "+" {
		t.Errorf("head = %#v", list.Children[0])
	}
}

func TestParseIf(t *testing.T) {
	forms := mustParse(t, `(if true 1 2)`)
	ifExpr, ok := forms[0].(*ast.IfExpr)
	if !ok {
		t.Fatalf("got %#v, want IfExpr", forms[0])
	}
	if _, ok := ifExpr.Cond.(*ast.BoolLit); !ok {
		t.Errorf("cond = %#v", ifExpr.Cond)
	}
}

func TestParseDefineFunction(t *testing.T) {
	forms := mustParse(t, `(define (add a b ...rest) (+ a b))`)
	def, ok := forms[0].(*ast.DefineExpr)
	if !ok {
		t.Fatalf("got %#v, want DefineExpr", forms[0])
	}
	if !def.Target.IsFunc || def.Target.Name != "add" {
		t.Errorf("target = %#v", def.Target)
	}
	if len(def.Target.Params) != 2 || def.Target.Rest != "rest" {
		t.Errorf("params/rest = %#v/%q", def.Target.Params, def.Target.Rest)
	}
}

func TestParseLambdaAndLet(t *testing.T) {
	forms := mustParse(t, `(let ((x 1) (y 2)) (lambda (a ...b) x))`)
	let, ok := forms[0].(*ast.LetExpr)
	if !ok || len(let.Bindings) != 2 {
		t.Fatalf("got %#v", forms[0])
	}
	lam, ok := let.Body.(*ast.LambdaExpr)
	if !ok || len(lam.Params) != 1 || lam.Rest != "b" {
		t.Fatalf("body = %#v", let.Body)
	}
}

func TestParseBlockDesugarsToDo(t *testing.T) {
	forms := mustParse(t, `{ 1 2 3 }`)
	list, ok := forms[0].(*ast.ListExpr)
	if !ok || len(list.Children) != 4 {
		t.Fatalf("got %#v", forms[0])
	}
	if sym, ok := list.Children[0].(*ast.SymbolExpr); !ok || sym.Name != "do" {
		t.Errorf("head = %#v, want do", list.Children[0])
	}
}

func TestParseQuoteAndSpread(t *testing.T) {
	forms := mustParse(t, `'(1 2) (list ...xs)`)
	q, ok := forms[0].(*ast.QuoteExpr)
	if !ok {
		t.Fatalf("got %#v, want QuoteExpr", forms[0])
	}
	if _, ok := q.Inner.(*ast.ListExpr); !ok {
		t.Errorf("quote inner = %#v", q.Inner)
	}
	call := forms[1].(*ast.ListExpr)
	spread, ok := call.Children[1].(*ast.SpreadExpr)
	if !ok {
		t.Fatalf("got %#v, want SpreadExpr", call.Children[1])
	}
	if sym, ok := spread.Inner.(*ast.SymbolExpr); !ok || sym.Name != "xs" {
		t.Errorf("spread inner = %#v", spread.Inner)
	}
}

func TestParseUnterminatedListReportsDiagnostic(t *testing.T) {
	_, diags := Parse(`(+ 1 2`)
	if !diag.HasErrors(diags) {
		t.Fatal("expected a parse error for an unterminated list")
	}
	if diags[0].Kind != diag.KindParse {
		t.Errorf("kind = %v, want KindParse", diags[0].Kind)
	}
}

func TestParseInvalidEscapeReportsDiagnostic(t *testing.T) {
	_, diags := Parse(`"bad \q escape"`)
	if !diag.HasErrors(diags) {
		t.Fatal("expected a parse error for an invalid escape sequence")
	}
}

func TestParseRecoversAfterErrorAndContinues(t *testing.T) {
	forms, diags := Parse(`(if) (+ 1 2)`)
	if !diag.HasErrors(diags) {
		t.Fatal("expected a diagnostic for the malformed if")
	}
	if len(forms) != 1 {
		t.Fatalf("got %d forms, want 1 (the well-formed call after the error)", len(forms))
	}
}
