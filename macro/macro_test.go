package macro

import (
	"strings"
	"testing"

	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/parser"
)

func expandSrc(t *testing.T, env *Environment, src string) []ast.Expr {
	t.Helper()
	forms, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		t.Fatalf("parse error for %q: %s", src, diag.Render(diags))
	}
	out, _, mdiags := Expand(forms, env)
	if diag.HasErrors(mdiags) {
		t.Fatalf("macro error for %q: %s", src, diag.Render(mdiags))
	}
	return out
}

func TestStdlibLoads(t *testing.T) {
	env, err := NewEnvironment()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"when", "unless", "inc!", "dec!", "cond", "and", "or"} {
		if _, ok := env.Lookup(name); !ok {
			t.Errorf("expected stdlib macro %q to be registered", name)
		}
	}
}

func TestExpandUnless(t *testing.T) {
	env, _ := NewEnvironment()
	out := expandSrc(t, env, `(unless flag (print "no"))`)
	ifExpr, ok := out[0].(*ast.IfExpr)
	if !ok {
		t.Fatalf("got %#v, want IfExpr", out[0])
	}
	if _, ok := ifExpr.Then.(*ast.NilLit); !ok {
		t.Errorf("unless then-branch = %#v, want nil", ifExpr.Then)
	}
}

func TestExpandCond(t *testing.T) {
	env, _ := NewEnvironment()
	out := expandSrc(t, env, `(cond (a 1) (b 2) (else 3))`)
	outer, ok := out[0].(*ast.IfExpr)
	if !ok {
		t.Fatalf("got %#v, want IfExpr", out[0])
	}
	inner, ok := outer.Else.(*ast.IfExpr)
	if !ok {
		t.Fatalf("outer else = %#v, want nested IfExpr", outer.Else)
	}
	if n, ok := inner.Else.(*ast.NumberLit); !ok || n.Value != 3 {
		t.Errorf("innermost else = %#v, want 3", inner.Else)
	}
}

func TestExpandAndOr(t *testing.T) {
	env, _ := NewEnvironment()
	out := expandSrc(t, env, `(and) (or)`)
	if b, ok := out[0].(*ast.BoolLit); !ok || !b.Value {
		t.Errorf("(and) = %#v, want true", out[0])
	}
	if b, ok := out[1].(*ast.BoolLit); !ok || b.Value {
		t.Errorf("(or) = %#v, want false", out[1])
	}
}

func TestRegisteredMacroWithRestSplice(t *testing.T) {
	env, _ := NewEnvironment()
	err := env.RegisterTemplate("my-list", []string{"first"}, "rest",
		mustParseOne(t, `(list first ...rest)`))
	if err != nil {
		t.Fatal(err)
	}
	out := expandSrc(t, env, `(my-list 1 2 3)`)
	if len(out) != 1 {
		t.Fatalf("expected one expanded form, got %d", len(out))
	}
	call, ok := out[0].(*ast.ListExpr)
	if !ok || len(call.Children) != 4 {
		t.Fatalf("got %#v, want (list 1 2 3)", out[0])
	}
	if sym, ok := call.Children[0].(*ast.SymbolExpr); !ok || sym.Name != "list" {
		t.Errorf("head = %#v", call.Children[0])
	}
}

func TestHygieneRenamesTemplateLocals(t *testing.T) {
	env, _ := NewEnvironment()
	_, err := env.RegisterTemplate("twice", []string{"x"}, "",
		mustParseOne(t, `(let ((tmp x)) (+ tmp tmp))`))
	if err != nil {
		t.Fatal(err)
	}
	out := expandSrc(t, env, `(twice tmp)`)
	let, ok := out[0].(*ast.LetExpr)
	if !ok {
		t.Fatalf("got %#v, want LetExpr", out[0])
	}
	if let.Bindings[0].Name == "tmp" {
		t.Errorf("template-local binding %q was not renamed, risks capturing caller's tmp", let.Bindings[0].Name)
	}
	if !strings.HasPrefix(let.Bindings[0].Name, "tmp~") {
		t.Errorf("renamed binding = %q, want tmp~N gensym shape", let.Bindings[0].Name)
	}
}

func TestMacroArityMismatchIsDiagnosed(t *testing.T) {
	env, _ := NewEnvironment()
	forms, _ := parser.Parse(`(when flag)`)
	_, _, diags := Expand(forms, env)
	if !diag.HasErrors(diags) {
		t.Fatal("expected an arity diagnostic for (when flag)")
	}
	if diags[0].Kind != diag.KindMacro {
		t.Errorf("kind = %v, want KindMacro", diags[0].Kind)
	}
}

func TestNonTerminatingMacroIsDiagnosed(t *testing.T) {
	env, _ := NewEnvironment()
	if err := env.RegisterTemplate("loopy", nil, "", mustParseOne(t, `(loopy)`)); err != nil {
		t.Fatal(err)
	}
	forms, _ := parser.Parse(`(loopy)`)
	_, _, diags := Expand(forms, env)
	if !diag.HasErrors(diags) {
		t.Fatal("expected a diagnostic for a macro that expands into an identical call forever")
	}
}

func mustParseOne(t *testing.T, src string) ast.Expr {
	t.Helper()
	forms, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		t.Fatalf("parse error: %s", diag.Render(diags))
	}
	if len(forms) != 1 {
		t.Fatalf("expected exactly one form, got %d", len(forms))
	}
	return forms[0]
}
