package registry

import (
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

func asNumber(v value.Value, span diag.Span, who string) (float64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, diag.New(diag.KindEval, span, "%s expects a number, got %s", who, v.String())
	}
	return float64(n), nil
}

func registerArithmetic(r *Registry) {
	// Open Question 2 (DESIGN.md): + and * take the "more expressive"
	// arity spec.md adopts — a 0-arg identity, 1-arg pass-through, and the
	// usual fold for 2 or more; - and / instead treat a single argument as
	// unary (negate, reciprocal).
	r.add(&Atom{Name: "+", MinArity: 0, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		sum := 0.0
		for _, a := range args {
			n, err := asNumber(a, span, "+")
			if err != nil {
				return nil, w, err
			}
			sum += n
		}
		return value.Number(sum), w, nil
	}})
	r.add(&Atom{Name: "*", MinArity: 0, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		prod := 1.0
		for _, a := range args {
			n, err := asNumber(a, span, "*")
			if err != nil {
				return nil, w, err
			}
			prod *= n
		}
		return value.Number(prod), w, nil
	}})
	r.add(&Atom{Name: "-", MinArity: 1, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		first, err := asNumber(args[0], span, "-")
		if err != nil {
			return nil, w, err
		}
		if len(args) == 1 {
			return value.Number(-first), w, nil
		}
		for _, a := range args[1:] {
			n, err := asNumber(a, span, "-")
			if err != nil {
				return nil, w, err
			}
			first -= n
		}
		return value.Number(first), w, nil
	}})
	r.add(&Atom{Name: "/", MinArity: 1, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		first, err := asNumber(args[0], span, "/")
		if err != nil {
			return nil, w, err
		}
		if len(args) == 1 {
			if first == 0 {
				return nil, w, diag.New(diag.KindEval, span, "division by zero")
			}
			return value.Number(1 / first), w, nil
		}
		for _, a := range args[1:] {
			n, err := asNumber(a, span, "/")
			if err != nil {
				return nil, w, err
			}
			if n == 0 {
				return nil, w, diag.New(diag.KindEval, span, "division by zero")
			}
			first /= n
		}
		return value.Number(first), w, nil
	}})
	r.add(&Atom{Name: "mod", MinArity: 2, MaxArity: 2, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		a, err := asNumber(args[0], span, "mod")
		if err != nil {
			return nil, w, err
		}
		b, err := asNumber(args[1], span, "mod")
		if err != nil {
			return nil, w, err
		}
		if b == 0 {
			return nil, w, diag.New(diag.KindEval, span, "mod by zero")
		}
		m := float64(int64(a) % int64(b))
		return value.Number(m), w, nil
	}})
	r.add(&Atom{Name: "abs", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		n, err := asNumber(args[0], span, "abs")
		if err != nil {
			return nil, w, err
		}
		if n < 0 {
			n = -n
		}
		return value.Number(n), w, nil
	}})
	r.add(&Atom{Name: "min", MinArity: 1, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		best, err := asNumber(args[0], span, "min")
		if err != nil {
			return nil, w, err
		}
		for _, a := range args[1:] {
			n, err := asNumber(a, span, "min")
			if err != nil {
				return nil, w, err
			}
			if n < best {
				best = n
			}
		}
		return value.Number(best), w, nil
	}})
	r.add(&Atom{Name: "max", MinArity: 1, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		best, err := asNumber(args[0], span, "max")
		if err != nil {
			return nil, w, err
		}
		for _, a := range args[1:] {
			n, err := asNumber(a, span, "max")
			if err != nil {
				return nil, w, err
			}
			if n > best {
				best = n
			}
		}
		return value.Number(best), w, nil
	}})
}
