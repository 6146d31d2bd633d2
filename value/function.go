package value

import (
	"fmt"
	"strings"
)

// Function is a callable Value: either a built-in Atom or a user Lambda.
type Function interface {
	Value
	Arity() (min int, max int) // max < 0 means unbounded
	FuncName() string
}

// Atom is a named, arity-tagged built-in. The actual implementation lives
// in package registry (which depends on value, not the other way round);
// Atom here is just the callable handle stored as a Value so it can flow
// through environments and be passed to apply like any other function.
type Atom struct {
	Name     string
	MinArity int
	MaxArity int // < 0 means unbounded
	// Invoke is supplied by registry's Atom.Value; kept as an opaque function
	// value here so package value has no dependency on eval/world types.
	Invoke interface{}
}

func (*Atom) valueMarker() {}

func (a *Atom) Arity() (int, int)  { return a.MinArity, a.MaxArity }
func (a *Atom) FuncName() string   { return a.Name }
func (a *Atom) String() string     { return fmt.Sprintf("#<atom %s>", a.Name) }

// Lambda is a user-defined function: parameter names, an optional rest
// parameter, an opaque body (an ast.Expr, stored as interface{} to avoid an
// import cycle with package ast), and the lexical environment captured at
// creation time (also opaque, owned by package eval).
type Lambda struct {
	Name   string // "" for anonymous lambdas
	Params []string
	Rest   string // "" if no rest parameter
	Body   interface{}
	Env    interface{}
}

func (*Lambda) valueMarker() {}

func (l *Lambda) Arity() (int, int) {
	if l.Rest != "" {
		return len(l.Params), -1
	}
	return len(l.Params), len(l.Params)
}

func (l *Lambda) FuncName() string {
	if l.Name != "" {
		return l.Name
	}
	return "lambda"
}

func (l *Lambda) String() string {
	var b strings.Builder
	b.WriteString("#<lambda (")
	b.WriteString(strings.Join(l.Params, " "))
	if l.Rest != "" {
		if len(l.Params) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("...")
		b.WriteString(l.Rest)
	}
	b.WriteString(")>")
	return b.String()
}
