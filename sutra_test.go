package sutra

import (
	"testing"

	"github.com/cpond8/sutra/sink"
	"github.com/cpond8/sutra/value"
	"github.com/cpond8/sutra/world"
)

func TestSessionRunEvaluatesAndRecordsTests(t *testing.T) {
	s, err := NewSession(sink.Null{})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	v, w, tests, err := s.Run(`(do
		(core/set! player.hp 10)
		(register-test! "has-hp" (lambda () (assert-eq player.hp 10)))
		(+ 1 2))`, world.New(world.DefaultSeed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.(value.Number) != 3 {
		t.Errorf("result = %v, want 3", v)
	}
	if w.Get(value.Path{"player", "hp"}) != value.Number(10) {
		t.Errorf("world player.hp = %v, want 10", w.Get(value.Path{"player", "hp"}))
	}
	if len(tests) != 1 || tests[0].Name != "has-hp" {
		t.Fatalf("tests = %#v, want one test named has-hp", tests)
	}
}

func TestSessionRunReportsParseError(t *testing.T) {
	s, err := NewSession(nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, _, _, err := s.Run(`(unterminated`, world.New(world.DefaultSeed)); err == nil {
		t.Fatal("expected a parse error")
	}
}
