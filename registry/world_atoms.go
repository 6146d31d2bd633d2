package registry

import (
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

func asPath(v value.Value, span diag.Span, who string) (value.Path, error) {
	p, ok := v.(value.Path)
	if !ok {
		return nil, diag.New(diag.KindEval, span, "%s expects a path, got %s", who, v.String())
	}
	return p, nil
}

// registerWorldAtoms wires the world-state primitives spec.md §4.4/§4.5
// names: reading, writing, deleting, and testing a path, plus the
// list-append/pop pair used for inventories and logs.
func registerWorldAtoms(r *Registry) {
	r.add(&Atom{Name: "core/set!", MinArity: 2, MaxArity: 2, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		p, err := asPath(args[0], span, "core/set!")
		if err != nil {
			return nil, w, err
		}
		return value.Nil{}, w.Set(p, args[1]), nil
	}})

	r.add(&Atom{Name: "core/get", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		p, err := asPath(args[0], span, "core/get")
		if err != nil {
			return nil, w, err
		}
		return w.Get(p), w, nil
	}})

	r.add(&Atom{Name: "core/del!", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		p, err := asPath(args[0], span, "core/del!")
		if err != nil {
			return nil, w, err
		}
		return value.Nil{}, w.Del(p), nil
	}})

	r.add(&Atom{Name: "core/exists?", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		p, err := asPath(args[0], span, "core/exists?")
		if err != nil {
			return nil, w, err
		}
		return value.Bool(w.Exists(p)), w, nil
	}})

	r.add(&Atom{Name: "core/push!", MinArity: 2, MaxArity: 2, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		p, err := asPath(args[0], span, "core/push!")
		if err != nil {
			return nil, w, err
		}
		cur := w.Get(p)
		var l value.List
		if !value.IsNil(cur) {
			existing, ok := cur.(value.List)
			if !ok {
				return nil, w, diag.New(diag.KindEval, span, "core/push! target %s is not a list", p.String())
			}
			l = existing
		}
		next := append(append(value.List{}, l...), args[1])
		return value.Nil{}, w.Set(p, next), nil
	}})

	r.add(&Atom{Name: "core/pull!", MinArity: 1, MaxArity: 1, Call: func(args []value.Value, w world.World, call Caller, span diag.Span) (value.Value, world.World, error) {
		p, err := asPath(args[0], span, "core/pull!")
		if err != nil {
			return nil, w, err
		}
		cur := w.Get(p)
		l, ok := cur.(value.List)
		if !ok || len(l) == 0 {
			return value.Nil{}, w, nil
		}
		popped := l[len(l)-1]
		return popped, w.Set(p, l[:len(l)-1]), nil
	}})
}
