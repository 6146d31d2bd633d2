package world

import (
	"testing"

	"github.com/cpond8/sutra/value"
)

func TestSetGetExistsDel(t *testing.T) {
	w := New(DefaultSeed)
	path := value.Path{"player", "hp"}
	if w.Exists(path) {
		t.Fatal("fresh world should not contain player.hp")
	}
	w2 := w.Set(path, value.Number(10))
	if !value.Equal(w2.Get(path), value.Number(10)) {
		t.Errorf("get after set = %v, want 10", w2.Get(path))
	}
	if !w2.Exists(path) {
		t.Error("exists? should be true after set!")
	}
	if w.Exists(path) {
		t.Error("Set must not mutate the original World")
	}
	w3 := w2.Del(path)
	if w3.Exists(path) {
		t.Error("exists? should be false after del!")
	}
	if !value.IsNil(w3.Get(path)) {
		t.Errorf("get after del! should be nil, got %v", w3.Get(path))
	}
	if !w2.Exists(path) {
		t.Error("Del must not mutate the original World")
	}
}

func TestSetCreatesIntermediateMaps(t *testing.T) {
	w := New(DefaultSeed).Set(value.Path{"a", "b", "c"}, value.Bool(true))
	if !w.Exists(value.Path{"a", "b", "c"}) {
		t.Fatal("expected intermediate maps to be created")
	}
	if _, ok := w.Get(value.Path{"a"}).(*value.Map); !ok {
		t.Error("expected intermediate segment to be a Map")
	}
}

func TestRandDeterministic(t *testing.T) {
	w1 := New(42)
	w2 := New(42)
	a1, w1 := w1.Rand()
	a2, w2 := w2.Rand()
	if a1 != a2 {
		t.Fatalf("same seed should draw same first value: %v vs %v", a1, a2)
	}
	b1, w1n := w1.Rand()
	b2, w2n := w2.Rand()
	if b1 != b2 {
		t.Errorf("same seed should draw same second value: %v vs %v", b1, b2)
	}
	if Hash(w1n) != Hash(w2n) {
		t.Error("two worlds with identical history should hash equal")
	}
	if a1 < 0 || a1 >= 1 {
		t.Errorf("rand() must be in [0,1), got %v", a1)
	}
}

func TestHashDiffersAfterMutation(t *testing.T) {
	w1 := New(DefaultSeed)
	w2 := w1.Set(value.Path{"x"}, value.Number(1))
	if Hash(w1) == Hash(w2) {
		t.Error("worlds with different content should hash differently")
	}
}
