package registry

import (
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

// registerTestAtoms wires the test-primitive atoms spec.md §4.8 names:
// register-test! records a thunk for package harness to run later against
// a fresh World; assert/assert-eq signal failure the same way any other
// runtime error does (a diag.Diagnostic returned from Call, which short
// circuits evaluation); value and tags are small helpers for annotating a
// test body; test/echo is a print that also hands its text back as a
// String, so a test can assert on exactly what it printed.
func registerTestAtoms(r *Registry) {
	r.add(&Atom{Name: "register-test!", MinArity: 2, MaxArity: 3, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		name, ok := args[0].(value.String)
		if !ok {
			return nil, w, diag.New(diag.KindEval, span, "register-test! expects a string name, got %s", args[0].String())
		}
		fn, ok := args[1].(value.Function)
		if !ok {
			return nil, w, diag.New(diag.KindEval, span, "register-test! expects a zero-argument function body, got %s", args[1].String())
		}
		var tags []string
		if len(args) == 3 {
			l, err := asList(args[2], span, "register-test!")
			if err != nil {
				return nil, w, err
			}
			for _, t := range l {
				s, ok := t.(value.String)
				if !ok {
					return nil, w, diag.New(diag.KindEval, span, "tags must be strings, got %s", t.String())
				}
				tags = append(tags, string(s))
			}
		}
		call.RegisterTest(string(name), fn, tags, span)
		return value.Nil{}, w, nil
	}})

	r.add(&Atom{Name: "assert", MinArity: 1, MaxArity: 2, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		if value.Truthy(args[0]) {
			return value.Nil{}, w, nil
		}
		if len(args) == 2 {
			return nil, w, diag.New(diag.KindEval, span, "assertion failed: %s", args[1].String())
		}
		return nil, w, diag.New(diag.KindEval, span, "assertion failed")
	}})

	r.add(&Atom{Name: "assert-eq", MinArity: 2, MaxArity: 2, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		if value.Equal(args[0], args[1]) {
			return value.Nil{}, w, nil
		}
		return nil, w, diag.New(diag.KindEval, span, "assertion failed: expected %s, got %s", args[1].String(), args[0].String())
	}})

	r.add(&Atom{Name: "value", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		return args[0], w, nil
	}})

	r.add(&Atom{Name: "tags", MinArity: 0, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		out := make(value.List, len(args))
		copy(out, args)
		return out, w, nil
	}})

	r.add(&Atom{Name: "test/echo", MinArity: 1, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		text := joinArgs(args)
		call.Emit(text, span)
		return value.String(text), w, nil
	}})
}
