// Package ast implements Sutra's canonical abstract syntax tree, the
// output of the parser and the input/output of the macro expander
// (spec.md §3, §4.1). Every node carries a diag.Span.
//
// The shape generalizes the teacher's untyped Lisp cons-cells
// (github.com/npillmayer/gorgo/terex.GCons/Atom) into a typed, closed sum:
// one concrete struct per case, all implementing the Expr interface. This
// is the idiomatic Go AST shape used throughout the retrieval pack's own
// language front-ends (an interface plus an embedded base struct carrying
// shared fields, e.g. a Node interface with an embedded NodeBase in several
// Go implementations of Jsonnet-like languages). List and Quote remain
// homoiconic: a List of Exprs is itself valid Expr data, exactly as a
// GCons chain does double duty for code and data in the teacher.
package ast

import "github.com/cpond8/sutra/diag"

// Expr is any AST node. Every concrete type embeds base, which supplies
// Span(); the marker method keeps the sum closed to this package.
type Expr interface {
	Span() diag.Span
	exprMarker()
}

type base struct {
	span diag.Span
}

func (b base) Span() diag.Span { return b.span }
func (base) exprMarker()       {}

// NumberLit is a numeric literal.
type NumberLit struct {
	base
	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	base
	Value bool
}

// StringLit is a string literal, already unescaped.
type StringLit struct {
	base
	Value string
}

// SymbolExpr is a bare identifier, resolved at evaluation time via lexical
// env, then atom registry, then world path lookup (spec.md §4.4).
type SymbolExpr struct {
	base
	Name string
}

// NilLit is the literal nil.
type NilLit struct{ base }

// ListExpr is the homoiconic cons cell: function calls and quoted data
// share this shape. Children retain their own spans; the ListExpr's span
// covers the whole form.
type ListExpr struct {
	base
	Children []Expr
}

// PathExpr is produced by the parser for dotted symbols (player.hp) and by
// macros that canonicalize path arguments. Segments are never empty.
type PathExpr struct {
	base
	Segments []string
}

// QuoteExpr is 'x: yields x as a Value without evaluating it.
type QuoteExpr struct {
	base
	Inner Expr
}

// SpreadExpr is ...x: valid only in call position of a parent ListExpr: it
// splices x (which must evaluate, or at macro-expansion time be bound, to a
// List) into the surrounding argument list.
type SpreadExpr struct {
	base
	Inner Expr
}

// IfExpr is the sole primitive conditional. Else is mandatory — there is
// no "(if cond then)" shorthand in the canonical AST, and the parser
// rejects a two-armed if.
type IfExpr struct {
	base
	Cond, Then, Else Expr
}

// DefineTarget is either a bare variable name or a function header
// (name plus parameter list).
type DefineTarget struct {
	Name   string
	Params []string // nil for a bare variable target
	Rest   string    // "" if the function target has no rest parameter
	IsFunc bool
}

// DefineExpr binds a variable or function at the enclosing scope. It is a
// statement: evaluating it yields Nil.
type DefineExpr struct {
	base
	Target DefineTarget
	Value  Expr
}

// LambdaExpr produces a Function value capturing the lexical environment
// active at the point of evaluation.
type LambdaExpr struct {
	base
	Params []string
	Rest   string // "" if there is no rest parameter
	Body   Expr
}

// Binding is one (name value) pair of a Let form.
type Binding struct {
	Name  string
	Value Expr
}

// LetExpr evaluates Bindings left to right, extending the environment
// after each, then evaluates Body in the fully extended environment.
type LetExpr struct {
	base
	Bindings []Binding
	Body     Expr
}

// --- constructors (spans attached at construction time) --------------------

func Number(span diag.Span, v float64) *NumberLit { return &NumberLit{base{span}, v} }
func Bool(span diag.Span, v bool) *BoolLit        { return &BoolLit{base{span}, v} }
func Str(span diag.Span, v string) *StringLit     { return &StringLit{base{span}, v} }
func Sym(span diag.Span, name string) *SymbolExpr { return &SymbolExpr{base{span}, name} }
func NilExpr(span diag.Span) *NilLit              { return &NilLit{base{span}} }

func List(span diag.Span, children ...Expr) *ListExpr {
	return &ListExpr{base{span}, children}
}

func PathOf(span diag.Span, segments ...string) *PathExpr {
	return &PathExpr{base{span}, segments}
}

func Quote(span diag.Span, inner Expr) *QuoteExpr   { return &QuoteExpr{base{span}, inner} }
func Spread(span diag.Span, inner Expr) *SpreadExpr { return &SpreadExpr{base{span}, inner} }

func If(span diag.Span, cond, then, els Expr) *IfExpr {
	return &IfExpr{base{span}, cond, then, els}
}

func Define(span diag.Span, target DefineTarget, value Expr) *DefineExpr {
	return &DefineExpr{base{span}, target, value}
}

func Lambda(span diag.Span, params []string, rest string, body Expr) *LambdaExpr {
	return &LambdaExpr{base{span}, params, rest, body}
}

func Let(span diag.Span, bindings []Binding, body Expr) *LetExpr {
	return &LetExpr{base{span}, bindings, body}
}
