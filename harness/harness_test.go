package harness

import (
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// fixtures bundles each sample script with the pass/fail names the
// test expects back, one archive instead of a directory of loose files —
// the shape many Go language-tool test suites store little script/output
// pairs in.
const fixtures = `
-- all-pass.sutra --
(register-test! "addition" (lambda () (assert-eq (+ 2 3) 5)))
(register-test! "truthiness" (lambda () (assert (gt? 3 1))))
-- all-pass.want --
PASS addition
PASS truthiness
-- mixed.sutra --
(register-test! "ok" (lambda () (assert-eq 1 1)))
(register-test! "broken" (lambda () (assert-eq 1 2)))
-- mixed.want --
PASS ok
FAIL broken
-- tagged.sutra --
(register-test! "slow-thing" (lambda () (assert true)) (list "slow" "integration"))
-- tagged.want --
PASS slow-thing
`

func TestRunSourceAgainstFixtures(t *testing.T) {
	arc := txtar.Parse([]byte(fixtures))
	scripts := map[string]string{}
	wants := map[string]string{}
	for _, f := range arc.Files {
		name := strings.TrimSuffix(f.Name, ".sutra")
		name = strings.TrimSuffix(name, ".want")
		if strings.HasSuffix(f.Name, ".sutra") {
			scripts[name] = string(f.Data)
		} else if strings.HasSuffix(f.Name, ".want") {
			wants[name] = string(f.Data)
		}
	}
	for name, src := range scripts {
		report := RunSource(src)
		if report.Err != nil {
			t.Fatalf("%s: unexpected load error: %v", name, report.Err)
		}
		var got strings.Builder
		for _, r := range report.Results {
			status := "PASS"
			if !r.Passed {
				status = "FAIL"
			}
			got.WriteString(status)
			got.WriteString(" ")
			got.WriteString(r.Name)
			got.WriteString("\n")
		}
		want := strings.TrimLeft(wants[name], "\n")
		if got.String() != want {
			t.Errorf("%s: got\n%s\nwant\n%s", name, got.String(), want)
		}
	}
}

func TestTaggedTestCarriesItsTags(t *testing.T) {
	report := RunSource(`(register-test! "slow-thing" (lambda () (assert true)) (list "slow" "integration"))`)
	if report.Err != nil {
		t.Fatalf("unexpected load error: %v", report.Err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(report.Results))
	}
	tags := report.Results[0].Tags
	if len(tags) != 2 || tags[0] != "slow" || tags[1] != "integration" {
		t.Errorf("tags = %v, want [slow integration]", tags)
	}
}

func TestReportPassedReflectsAllResults(t *testing.T) {
	ok := RunSource(`(register-test! "a" (lambda () (assert true)))`)
	if !ok.Passed() {
		t.Errorf("expected report to have passed")
	}
	bad := RunSource(`(register-test! "a" (lambda () (assert-eq 1 2)))`)
	if bad.Passed() {
		t.Errorf("expected report to have failed")
	}
}

func TestLoadErrorIsReported(t *testing.T) {
	report := RunSource(`(unbound-thing`)
	if report.Err == nil {
		t.Fatal("expected a load error for unterminated input")
	}
	if report.Passed() {
		t.Error("a report with a load error must not report Passed")
	}
}
