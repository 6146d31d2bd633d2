// Package macro implements Sutra's AST-to-AST macro expander: pattern
// macros bind a name plus a fixed/variadic parameter list to a template
// Expr, the same way (define (name params...) body) binds a function, and
// expansion is template substitution rather than evaluation.
//
// The surface form is recognized purely by head symbol — "define-macro" —
// the same way the parser leaves "do" and ordinary calls as generic
// ast.ListExpr for downstream packages to interpret (see package parser's
// list()). No dedicated ast node exists for a macro definition.
package macro

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
)

func tracer() tracing.Trace {
	return tracing.Select("sutra.macro")
}

// maxExpansionDepth bounds recursive macro expansion. The teacher's own
// Earley parser guards against unbounded ambiguity growth with a hash-based
// seen-set (lr/earley's item-set dedup); this package borrows the same
// idea (see cycleKey in expand.go) to tell genuine recursion-limit overruns apart from
// a macro that legitimately nests a few dozen levels deep.
const maxExpansionDepth = 128

// Macro is a registered pattern macro.
type Macro struct {
	Name     string
	Params   []string
	Rest     string // "" if the macro takes no rest parameter
	Template ast.Expr
	Native   NativeExpander // non-nil for a macro implemented directly in Go
}

// NativeExpander implements a macro whose expansion can't be expressed as
// plain template substitution — variadic structural recursion over clause
// lists (cond, and, or), where the number of sub-expansions depends on the
// shape of the call, not just positional argument substitution.
type NativeExpander func(call *ast.ListExpr, env *Environment) (ast.Expr, error)

func (m *Macro) arityOK(nargs int) bool {
	if m.Rest != "" {
		return nargs >= len(m.Params)
	}
	return nargs == len(m.Params)
}

// Environment holds every macro visible to an expansion: the standard
// library loaded by NewEnvironment, plus whatever macros a Go caller adds
// with RegisterTemplate or RegisterNative. Expand does not register
// define-macro forms found in a program.
type Environment struct {
	macros map[string]*Macro
	gensym int
}

// NewEnvironment builds an Environment pre-populated with the standard
// macro library (macro/stdlib.sutra) and the native structural macros
// (cond, and, or).
func NewEnvironment() (*Environment, error) {
	env := &Environment{macros: make(map[string]*Macro)}
	registerNatives(env)
	if err := env.loadStdlib(); err != nil {
		return nil, fmt.Errorf("loading standard macro library: %w", err)
	}
	return env, nil
}

// RegisterTemplate adds a template-substitution macro. It is an error to
// redefine an existing name — macro redefinition silently shadowing a
// caller's earlier definition is a much likelier bug than a deliberate one.
func (env *Environment) RegisterTemplate(name string, params []string, rest string, template ast.Expr) error {
	if _, exists := env.macros[name]; exists {
		return fmt.Errorf("macro %q is already defined", name)
	}
	env.macros[name] = &Macro{Name: name, Params: params, Rest: rest, Template: template}
	return nil
}

// RegisterNative adds a macro implemented directly in Go.
func (env *Environment) RegisterNative(name string, fn NativeExpander) error {
	if _, exists := env.macros[name]; exists {
		return fmt.Errorf("macro %q is already defined", name)
	}
	env.macros[name] = &Macro{Name: name, Native: fn}
	return nil
}

// Lookup reports whether name is a registered macro.
func (env *Environment) Lookup(name string) (*Macro, bool) {
	m, ok := env.macros[name]
	return m, ok
}

func (env *Environment) gensymName(base string) string {
	env.gensym++
	return fmt.Sprintf("%s~%d", base, env.gensym)
}
