package validate

import (
	"testing"

	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/parser"
)

func validateSrc(t *testing.T, src string) []*diag.Diagnostic {
	t.Helper()
	forms, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		t.Fatalf("parse error for %q: %s", src, diag.Render(diags))
	}
	return Validate(forms)
}

func TestValidProgramHasNoDiagnostics(t *testing.T) {
	diags := validateSrc(t, `(define (add a b) (+ a b)) (add 1 2)`)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %s", diag.Render(diags))
	}
}

func TestSpreadInCallPositionIsValid(t *testing.T) {
	diags := validateSrc(t, `(list 1 ...xs 3)`)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %s", diag.Render(diags))
	}
}

func TestSpreadOutsideCallPositionIsInvalid(t *testing.T) {
	diags := validateSrc(t, `(if ...xs 1 2)`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %s", len(diags), diag.Render(diags))
	}
	if diags[0].Kind != diag.KindValidation {
		t.Errorf("kind = %v, want KindValidation", diags[0].Kind)
	}
}

func TestBareTopLevelSpreadIsInvalid(t *testing.T) {
	diags := validateSrc(t, `...xs`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
}

func TestDuplicateLambdaParamIsInvalid(t *testing.T) {
	diags := validateSrc(t, `(lambda (a a) a)`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %s", len(diags), diag.Render(diags))
	}
}

func TestRestCollidingWithParamIsInvalid(t *testing.T) {
	diags := validateSrc(t, `(define (f a ...a) a)`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %s", len(diags), diag.Render(diags))
	}
}

func TestDiagnosticsAreDeterministicallyOrdered(t *testing.T) {
	src := `(lambda (a a) a) (lambda (b b) b)`
	d1 := validateSrc(t, src)
	d2 := validateSrc(t, src)
	if len(d1) != 2 || len(d2) != 2 {
		t.Fatalf("got %d/%d diagnostics, want 2/2", len(d1), len(d2))
	}
	if d1[0].Span.From != d2[0].Span.From || d1[0].Message != d2[0].Message {
		t.Error("diagnostic ordering should be stable across runs")
	}
	if d1[0].Span.From > d1[1].Span.From {
		t.Error("diagnostics should be ordered by source position")
	}
}
