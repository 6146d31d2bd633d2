package ast

import (
	"testing"

	"github.com/cpond8/sutra/diag"
)

func TestStringRoundTripsSimpleCall(t *testing.T) {
	e := List(diag.NullSpan,
		Sym(diag.NullSpan, "+"),
		Number(diag.NullSpan, 1),
		Number(diag.NullSpan, 2),
	)
	if got, want := String(e), "(+ 1 2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestHeadSymbol(t *testing.T) {
	e := List(diag.NullSpan, Sym(diag.NullSpan, "foo"), Number(diag.NullSpan, 1))
	name, ok := HeadSymbol(e)
	if !ok || name != "foo" {
		t.Errorf("HeadSymbol() = %q, %v, want foo, true", name, ok)
	}
	if _, ok := HeadSymbol(Number(diag.NullSpan, 1)); ok {
		t.Error("HeadSymbol of a non-list should be false")
	}
}

func TestPathExprString(t *testing.T) {
	p := PathOf(diag.NullSpan, "player", "hp")
	if got, want := String(p), "player.hp"; got != want {
		t.Errorf("String(path) = %q, want %q", got, want)
	}
}
