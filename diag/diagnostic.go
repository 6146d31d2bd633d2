package diag

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sutra.diag'.
func tracer() tracing.Trace {
	return tracing.Select("sutra.diag")
}

// Kind classifies which pipeline phase produced a Diagnostic.
type Kind int

const (
	// KindParse marks malformed source: unmatched delimiter, bad escape,
	// invalid token.
	KindParse Kind = iota
	// KindMacro marks a malformed macro application, recursion-limit
	// overrun, or a spread in non-call position discovered during expansion.
	KindMacro
	// KindValidation marks a static check failure found after expansion:
	// wrong arity, malformed special form, unknown identifier.
	KindValidation
	// KindEval marks a runtime failure: unbound symbol, type mismatch,
	// division by zero, explicit (error ...), failed assertion.
	KindEval
	// KindIO marks an output-sink failure.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "Parse"
	case KindMacro:
		return "Macro"
	case KindValidation:
		return "Validation"
	case KindEval:
		return "Eval"
	case KindIO:
		return "IO"
	default:
		return "Unknown"
	}
}

// Severity grades a Diagnostic. Only Error severity halts the pipeline.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "?"
	}
}

// Diagnostic is the single error/warning value threaded through every
// pipeline phase. It carries an optional Cause, so chains of diagnostics
// (e.g. a macro error caused by a bad template substitution) can be
// inspected with errors.Is / errors.As via Unwrap.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Span     Span
	Cause    error
}

// New builds an error-severity Diagnostic.
func New(kind Kind, span Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Severity: SeverityError, Message: fmt.Sprintf(format, args...), Span: span}
}

// Wrap builds a Diagnostic that records cause as its origin.
func Wrap(kind Kind, span Span, cause error, format string, args ...interface{}) *Diagnostic {
	d := New(kind, span, format, args...)
	d.Cause = cause
	return d
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return "<nil diagnostic>"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (at %s)", d.Kind, d.Message, d.Span)
	if d.Cause != nil {
		fmt.Fprintf(&b, "\ncaused by: %s", d.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes the cause chain to errors.Is / errors.As.
func (d *Diagnostic) Unwrap() error {
	if d == nil {
		return nil
	}
	return d.Cause
}

// Is lets errors.Is match on Kind alone by comparing against a sentinel
// Diagnostic built with New(kind, NullSpan, "").
func (d *Diagnostic) Is(target error) bool {
	other, ok := target.(*Diagnostic)
	if !ok || d == nil {
		return false
	}
	return d.Kind == other.Kind
}

// HasErrors reports whether any diagnostic in the list has Severity Error.
func HasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Render writes a plain multi-line rendering of diags, one per line,
// "severity kind: message (at span)". Used by tests and cmd/sutrarepl;
// colorized rendering lives in cmd/sutrarepl, not here.
func Render(diags []*Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "%s %s: %s (at %s)\n", d.Severity, d.Kind, d.Message, d.Span)
	}
	return b.String()
}
