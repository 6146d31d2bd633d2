package registry

import (
	"strings"

	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

func joinArgs(args []value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

// registerIOAtoms wires output, the one piece of the language that talks
// to the outside world, plus the structural primitives (apply, error,
// rand) that don't fit neatly under arithmetic/collections/world.
func registerIOAtoms(r *Registry) {
	print := &Atom{Name: "print", MinArity: 1, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		call.Emit(joinArgs(args), span)
		return value.Nil{}, w, nil
	}}
	r.add(print)
	r.add(&Atom{Name: "core/print", MinArity: print.MinArity, MaxArity: print.MaxArity, Call: print.Call})

	r.add(&Atom{Name: "rand", MinArity: 0, MaxArity: 0, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		n, next := w.Rand()
		return n, next, nil
	}})

	r.add(&Atom{Name: "apply", MinArity: 2, MaxArity: 2, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		l, err := asList(args[1], span, "apply")
		if err != nil {
			return nil, w, err
		}
		return call.Call(args[0], []value.Value(l), w)
	}})

	r.add(&Atom{Name: "error", MinArity: 1, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		return nil, w, diag.New(diag.KindEval, span, "%s", joinArgs(args))
	}})
}
