package registry

import (
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

// eq?/gt?/lt?/gte?/lte? all require at least 2 arguments (spec.md §4.4) and
// fold across every adjacent pair, the same "chained comparison" reading
// Python and Scheme give (gt? 3 2 1) = (3 > 2) && (2 > 1).
func registerComparison(r *Registry) {
	r.add(&Atom{Name: "eq?", MinArity: 2, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		for i := 1; i < len(args); i++ {
			if !value.Equal(args[i-1], args[i]) {
				return value.Bool(false), w, nil
			}
		}
		return value.Bool(true), w, nil
	}})

	numericCompare := func(name string, ok func(a, b float64) bool) *Atom {
		return &Atom{Name: name, MinArity: 2, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
			prev, err := asNumber(args[0], span, name)
			if err != nil {
				return nil, w, err
			}
			for _, a := range args[1:] {
				cur, err := asNumber(a, span, name)
				if err != nil {
					return nil, w, err
				}
				if !ok(prev, cur) {
					return value.Bool(false), w, nil
				}
				prev = cur
			}
			return value.Bool(true), w, nil
		}}
	}
	r.add(numericCompare("gt?", func(a, b float64) bool { return a > b }))
	r.add(numericCompare("lt?", func(a, b float64) bool { return a < b }))
	r.add(numericCompare("gte?", func(a, b float64) bool { return a >= b }))
	r.add(numericCompare("lte?", func(a, b float64) bool { return a <= b }))

	r.add(&Atom{Name: "not", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		b, ok := args[0].(value.Bool)
		if !ok {
			return nil, w, diag.New(diag.KindEval, span, "not expects a Bool, got %s", args[0].String())
		}
		return value.Bool(!b), w, nil
	}})
}
