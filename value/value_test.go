package value

import "testing"

func TestTruthy(t *testing.T) {
	falsy := []Value{Nil{}, Bool(false), Number(0), String(""), List{}}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("expected %v to be falsy", v)
		}
	}
	truthy := []Value{Bool(true), Number(1), Number(-1), String("x"), List{Number(1)}, NewMap()}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("expected %v to be truthy", v)
		}
	}
}

func TestEqualRejectsMixedTypes(t *testing.T) {
	if Equal(Number(1), String("1")) {
		t.Error("eq? 1 \"1\" should be false")
	}
}

func TestEqualNumbers(t *testing.T) {
	if !Equal(Number(0), Number(0.0)) {
		t.Error("0 and 0.0 should be equal")
	}
}

func TestEqualLists(t *testing.T) {
	a := List{Number(1), String("x")}
	b := List{Number(1), String("x")}
	c := List{Number(1), String("y")}
	if !Equal(a, b) {
		t.Error("expected equal lists to compare equal")
	}
	if Equal(a, c) {
		t.Error("expected differing lists to compare unequal")
	}
}

func TestMapWithIsPersistent(t *testing.T) {
	m0 := NewMap()
	m1 := m0.With("hp", Number(10))
	if m0.Has("hp") {
		t.Error("With must not mutate the receiver")
	}
	if !m1.Has("hp") || !Equal(m1.Get("hp"), Number(10)) {
		t.Error("With should bind the key in the returned map")
	}
}

func TestMapWithoutIsPersistent(t *testing.T) {
	m0 := NewMap().With("hp", Number(10))
	m1 := m0.Without("hp")
	if !m0.Has("hp") {
		t.Error("Without must not mutate the receiver")
	}
	if m1.Has("hp") {
		t.Error("Without should remove the key in the returned map")
	}
}

func TestCanonicalNumberFormatting(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{-3, "-3"},
		{2.5, "2.5"},
		{10.0 / 4.0, "2.5"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPathString(t *testing.T) {
	p := Path{"player", "hp"}
	if p.String() != "player.hp" {
		t.Errorf("Path.String() = %q, want player.hp", p.String())
	}
}
