// Package harness implements the run-tests driver spec.md §4.8 calls out
// as living outside the pipeline core: it runs every test register-test!
// recorded during a script's evaluation against a fresh World, the same
// "evaluate once to collect, then drive each collected unit independently"
// shape the teacher's terexlang test suite uses when it runs a grammar
// against a table of sample inputs (terex/terexlang/parse_test.go).
package harness

import (
	"fmt"

	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/eval"
	"github.com/cpond8/sutra/macro"
	"github.com/cpond8/sutra/parser"
	"github.com/cpond8/sutra/registry"
	"github.com/cpond8/sutra/sink"
	"github.com/cpond8/sutra/validate"
	"github.com/cpond8/sutra/world"
)

// Result is the outcome of running one registered test's thunk.
type Result struct {
	Name   string
	Tags   []string
	Passed bool
	Err    error
}

// Report is the outcome of running a whole script: its registered tests'
// results, plus any diagnostic that stopped the script from loading at
// all (a nil Err with an empty Results means the script registered no
// tests).
type Report struct {
	Results []Result
	Err     error
}

// Passed reports whether every test in the report passed and the script
// itself loaded without error.
func (r *Report) Passed() bool {
	if r.Err != nil {
		return false
	}
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

func (r *Report) String() string {
	if r.Err != nil {
		return fmt.Sprintf("FAIL (load error): %v", r.Err)
	}
	s := ""
	for i, res := range r.Results {
		if i > 0 {
			s += "\n"
		}
		if res.Passed {
			s += fmt.Sprintf("PASS %s", res.Name)
		} else {
			s += fmt.Sprintf("FAIL %s: %v", res.Name, res.Err)
		}
	}
	return s
}

// RunSource loads src through the full pipeline (parse, expand, validate,
// evaluate) and runs every test register-test! recorded along the way.
// Each call builds its own Registry, so test runs never share macro or
// atom state across scripts.
func RunSource(src string) *Report {
	forms, diags := parser.Parse(src)
	if diag.HasErrors(diags) {
		return &Report{Err: fmt.Errorf("parse: %s", diag.Render(diags))}
	}
	reg, err := registry.NewCanonical()
	if err != nil {
		return &Report{Err: fmt.Errorf("building registry: %w", err)}
	}
	expanded, _, mdiags := macro.Expand(forms, reg.Macros)
	if diag.HasErrors(mdiags) {
		return &Report{Err: fmt.Errorf("macro expansion: %s", diag.Render(mdiags))}
	}
	if vdiags := validate.Validate(expanded); diag.HasErrors(vdiags) {
		return &Report{Err: fmt.Errorf("validation: %s", diag.Render(vdiags))}
	}
	ctx := eval.NewContext(reg, sink.Null{})
	if _, _, err := eval.EvalAll(expanded, eval.NewEnv(nil), world.New(world.DefaultSeed), ctx); err != nil {
		return &Report{Err: fmt.Errorf("eval: %w", err)}
	}
	return &Report{Results: RunTests(ctx.Tests(), ctx)}
}

// RunTests runs each registered test's zero-argument thunk against its
// own fresh World (spec.md §4.8 "evaluating its body against a fresh
// World"), so one test's world mutations never leak into the next.
func RunTests(tests []eval.RegisteredTest, ctx *eval.Context) []Result {
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		_, _, err := eval.Apply(tc.Thunk, nil, world.New(world.DefaultSeed), ctx, tc.Span)
		results = append(results, Result{
			Name:   tc.Name,
			Tags:   tc.Tags,
			Passed: err == nil,
			Err:    err,
		})
	}
	return results
}
