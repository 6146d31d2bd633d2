package registry

import (
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

func asList(v value.Value, span diag.Span, who string) (value.List, error) {
	l, ok := v.(value.List)
	if !ok {
		return nil, diag.New(diag.KindEval, span, "%s expects a list, got %s", who, v.String())
	}
	return l, nil
}

func registerCollections(r *Registry) {
	r.add(&Atom{Name: "list", MinArity: 0, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		out := make(value.List, len(args))
		copy(out, args)
		return out, w, nil
	}})

	r.add(&Atom{Name: "len", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		switch v := args[0].(type) {
		case value.List:
			return value.Number(len(v)), w, nil
		case value.String:
			return value.Number(len(v)), w, nil
		case *value.Map:
			return value.Number(v.Len()), w, nil
		default:
			return nil, w, diag.New(diag.KindEval, span, "len expects a list, string, or map, got %s", v.String())
		}
	}})

	r.add(&Atom{Name: "car", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		l, err := asList(args[0], span, "car")
		if err != nil {
			return nil, w, err
		}
		if len(l) == 0 {
			return nil, w, diag.New(diag.KindEval, span, "car of an empty list")
		}
		return l[0], w, nil
	}})

	r.add(&Atom{Name: "cdr", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		l, err := asList(args[0], span, "cdr")
		if err != nil {
			return nil, w, err
		}
		if len(l) == 0 {
			return nil, w, diag.New(diag.KindEval, span, "cdr of an empty list")
		}
		rest := make(value.List, len(l)-1)
		copy(rest, l[1:])
		return rest, w, nil
	}})

	r.add(&Atom{Name: "cons", MinArity: 2, MaxArity: 2, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		l, err := asList(args[1], span, "cons")
		if err != nil {
			return nil, w, err
		}
		out := make(value.List, 0, len(l)+1)
		out = append(out, args[0])
		out = append(out, l...)
		return out, w, nil
	}})

	r.add(&Atom{Name: "has?", MinArity: 2, MaxArity: 2, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		switch container := args[0].(type) {
		case *value.Map:
			key, ok := args[1].(value.String)
			if !ok {
				return nil, w, diag.New(diag.KindEval, span, "has? on a map expects a string key")
			}
			return value.Bool(container.Has(string(key))), w, nil
		case value.List:
			for _, item := range container {
				if value.Equal(item, args[1]) {
					return value.Bool(true), w, nil
				}
			}
			return value.Bool(false), w, nil
		default:
			return nil, w, diag.New(diag.KindEval, span, "has? expects a map or list, got %s", container.String())
		}
	}})

	r.add(&Atom{Name: "core/str+", MinArity: 1, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		var b []byte
		for _, a := range args {
			b = append(b, a.String()...)
		}
		return value.String(b), w, nil
	}})

	r.add(&Atom{Name: "core/map", MinArity: 0, MaxArity: -1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		if len(args)%2 != 0 {
			return nil, w, diag.New(diag.KindEval, span, "core/map expects an even number of key/value arguments, got %d", len(args))
		}
		m := value.NewMap()
		for i := 0; i < len(args); i += 2 {
			key, ok := args[i].(value.String)
			if !ok {
				return nil, w, diag.New(diag.KindEval, span, "core/map keys must be strings, got %s", args[i].String())
			}
			m = m.With(string(key), args[i+1])
		}
		return m, w, nil
	}})
}
