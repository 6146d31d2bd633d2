package eval

import (
	"testing"

	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/macro"
	"github.com/cpond8/sutra/parser"
	"github.com/cpond8/sutra/registry"
	"github.com/cpond8/sutra/sink"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

// run parses, expands, and evaluates src against a fresh registry, env,
// and World, returning the last form's value.
func run(t *testing.T, src string) (value.Value, world.World) {
	t.Helper()
	forms, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		t.Fatalf("parse error for %q: %s", src, diag.Render(diags))
	}
	reg, err := registry.NewCanonical()
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	expanded, _, mdiags := macro.Expand(forms, reg.Macros)
	if diag.HasErrors(mdiags) {
		t.Fatalf("macro error for %q: %s", src, diag.Render(mdiags))
	}
	ctx := NewContext(reg, sink.Null{})
	v, w, err := EvalAll(expanded, NewEnv(nil), world.New(world.DefaultSeed), ctx)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v, w
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	forms, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		t.Fatalf("parse error for %q: %s", src, diag.Render(diags))
	}
	reg, err := registry.NewCanonical()
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	expanded, _, mdiags := macro.Expand(forms, reg.Macros)
	if diag.HasErrors(mdiags) {
		t.Fatalf("macro error for %q: %s", src, diag.Render(mdiags))
	}
	ctx := NewContext(reg, sink.Null{})
	_, _, err = EvalAll(expanded, NewEnv(nil), world.New(world.DefaultSeed), ctx)
	return err
}

func TestArithmetic(t *testing.T) {
	cases := map[string]float64{
		"(+)":           0,
		"(+ 1 2 3)":     6,
		"(*)":           1,
		"(* 2 3 4)":     24,
		"(- 5)":         -5,
		"(- 10 3 2)":    5,
		"(/ 4)":         0.25,
		"(/ 100 5 2)":   10,
		"(mod 7 3)":     1,
		"(abs (- 5))":   5,
		"(max 1 5 3)":   5,
		"(min 1 5 3)":   1,
	}
	for src, want := range cases {
		v, _ := run(t, src)
		n, ok := v.(value.Number)
		if !ok {
			t.Fatalf("%q: got %T, want Number", src, v)
		}
		if float64(n) != want {
			t.Errorf("%q = %v, want %v", src, n, want)
		}
	}
}

func TestIfBranchesOnTruthiness(t *testing.T) {
	v, _ := run(t, `(if (gt? 2 1) "yes" "no")`)
	if v.(value.String) != "yes" {
		t.Errorf("got %v, want yes", v)
	}
	v, _ = run(t, `(if 0 "yes" "no")`)
	if v.(value.String) != "no" {
		t.Errorf("got %v, want no (0 is falsy)", v)
	}
}

func TestDoEvaluatesSequentiallyReturnsLast(t *testing.T) {
	v, _ := run(t, `(do 1 2 3)`)
	if v.(value.Number) != 3 {
		t.Errorf("got %v, want 3", v)
	}
}

func TestDefineVariableAndFunction(t *testing.T) {
	v, _ := run(t, `(do (define x 10) (define (double n) (* n 2)) (double x))`)
	if v.(value.Number) != 20 {
		t.Errorf("got %v, want 20", v)
	}
}

func TestLambdaClosureCapturesEnv(t *testing.T) {
	v, _ := run(t, `(do
		(define (make-adder n) (lambda (x) (+ x n)))
		(define add5 (make-adder 5))
		(add5 10))`)
	if v.(value.Number) != 15 {
		t.Errorf("got %v, want 15", v)
	}
}

func TestLetSequentialBindings(t *testing.T) {
	v, _ := run(t, `(let ((a 1) (b (+ a 1))) (+ a b))`)
	if v.(value.Number) != 3 {
		t.Errorf("got %v, want 3", v)
	}
}

func TestLetShadowsOuterDefine(t *testing.T) {
	v, _ := run(t, `(do (define hp 99) (let ((hp 1)) hp))`)
	if v.(value.Number) != 1 {
		t.Errorf("got %v, want 1 (let binding shadows the outer define)", v)
	}
}

func TestDottedPathReadsFromWorld(t *testing.T) {
	v, _ := run(t, `(do (core/set! player.hp 42) player.hp)`)
	if v.(value.Number) != 42 {
		t.Errorf("got %v, want 42", v)
	}
}

func TestUnboundSymbolIsError(t *testing.T) {
	if err := runErr(t, `nope`); err == nil {
		t.Fatal("expected an unbound-symbol error")
	}
}

func TestSpreadSplicesIntoCallArguments(t *testing.T) {
	v, _ := run(t, `(do (define xs (list 2 3 4)) (+ 1 ...xs))`)
	if v.(value.Number) != 10 {
		t.Errorf("got %v, want 10", v)
	}
}

func TestQuoteYieldsDataWithoutEvaluating(t *testing.T) {
	v, _ := run(t, `'(+ 1 2)`)
	lst, ok := v.(value.List)
	if !ok || len(lst) != 3 {
		t.Fatalf("got %#v, want a 3-element list", v)
	}
	if lst[0] != value.Symbol("+") {
		t.Errorf("head = %v, want symbol +", lst[0])
	}
}

func TestQuoteReconstructsSpecialForms(t *testing.T) {
	v, _ := run(t, `'(if true 1 2)`)
	lst, ok := v.(value.List)
	if !ok || len(lst) != 4 {
		t.Fatalf("got %#v, want a 4-element list", v)
	}
	if lst[0] != value.Symbol("if") {
		t.Errorf("head = %v, want symbol if", lst[0])
	}
}

func TestWorldMutationThreadsThroughSequence(t *testing.T) {
	_, w := run(t, `(do (core/set! player.score 1) (core/set! player.score (+ (core/get player.score) 1)))`)
	if w.Get(value.Path{"player", "score"}) != value.Number(2) {
		t.Errorf("world score = %v, want 2", w.Get(value.Path{"player", "score"}))
	}
}

func TestTailRecursionDoesNotGrowGoStack(t *testing.T) {
	v, _ := run(t, `(do
		(define (count-down n acc) (if (gt? n 0) (count-down (- n 1) (+ acc 1)) acc))
		(count-down 200000 0))`)
	if v.(value.Number) != 200000 {
		t.Errorf("got %v, want 200000", v)
	}
}

func TestNonTailRecursionIsDepthLimited(t *testing.T) {
	err := runErr(t, `(do
		(define (spin n) (+ 1 (spin (+ n 1))))
		(spin 0))`)
	if err == nil {
		t.Fatal("expected a recursion-limit error")
	}
}

func TestRegisterTestAndAssert(t *testing.T) {
	forms, diags := parser.Parse(`
		(register-test! "math" (lambda () (assert-eq (+ 1 1) 2)))`)
	if diag.HasErrors(diags) {
		t.Fatalf("parse error: %s", diag.Render(diags))
	}
	reg, err := registry.NewCanonical()
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	ctx := NewContext(reg, sink.Null{})
	_, _, err = EvalAll(forms, NewEnv(nil), world.New(world.DefaultSeed), ctx)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	tests := ctx.Tests()
	if len(tests) != 1 || tests[0].Name != "math" {
		t.Fatalf("got %#v, want one registered test named math", tests)
	}
	v, _, err := Apply(tests[0].Thunk, nil, world.New(world.DefaultSeed), ctx, diag.NullSpan)
	if err != nil {
		t.Fatalf("running registered test thunk: %v", err)
	}
	if !value.IsNil(v) {
		t.Errorf("assert-eq result = %v, want nil", v)
	}
}

func TestFailingAssertIsAnError(t *testing.T) {
	err := runErr(t, `(assert-eq (+ 1 1) 3)`)
	if err == nil {
		t.Fatal("expected assert-eq to fail")
	}
}
