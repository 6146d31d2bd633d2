package eval

import (
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/registry"
	"github.com/cpond8/sutra/sink"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

// maxCallDepth bounds non-tail-position recursion (argument evaluation,
// if-branches taken through nested Eval calls, lambda calls made through
// Apply rather than the trampoline). Tail calls never grow this counter —
// that's the entire point of the trampoline in eval.go — so a genuinely
// tail-recursive Sutra function can recurse indefinitely without tripping
// it; only non-tail recursion pays for Go stack frames.
const maxCallDepth = 4000

// RegisteredTest is one test recorded by a register-test! call, kept for
// package harness to run later against a fresh World.
type RegisteredTest struct {
	Name  string
	Tags  []string
	Thunk value.Value
	Span  diag.Span
}

// Context carries everything a single evaluation run shares: the atom/macro
// registry, the active output sink, a recursion guard, and whatever tests
// register-test! has recorded so far. It implements registry.Caller so
// atom implementations can call back into the evaluator without package
// registry ever importing package eval.
type Context struct {
	Registry *registry.Registry
	Out      sink.Sink
	depth    int
	tests    []RegisteredTest
}

// NewContext builds a Context ready for one Eval run.
func NewContext(reg *registry.Registry, out sink.Sink) *Context {
	if out == nil {
		out = sink.Null{}
	}
	return &Context{Registry: reg, Out: out}
}

// Tests returns every test register-test! recorded during this Context's
// lifetime.
func (c *Context) Tests() []RegisteredTest {
	return c.tests
}

var _ registry.Caller = (*Context)(nil)

// Call implements registry.Caller: invoke fn (an Atom or Lambda value) on
// args, for atoms like apply that need to call back into evaluation.
func (c *Context) Call(fn value.Value, args []value.Value, w world.World) (value.Value, world.World, error) {
	return Apply(fn, args, w, c, diag.NullSpan)
}

// Emit implements registry.Caller.
func (c *Context) Emit(text string, span diag.Span) {
	c.Out.Emit(text, span)
}

// RegisterTest implements registry.Caller.
func (c *Context) RegisterTest(name string, thunk value.Value, tags []string, span diag.Span) {
	c.tests = append(c.tests, RegisteredTest{Name: name, Tags: tags, Thunk: thunk, Span: span})
}

// enter guards a non-tail recursive step; every call must be paired with a
// deferred leave().
func (c *Context) enter(span diag.Span) error {
	c.depth++
	if c.depth > maxCallDepth {
		return diag.New(diag.KindEval, span, "recursion limit exceeded (%d)", maxCallDepth)
	}
	return nil
}

func (c *Context) leave() {
	c.depth--
}
