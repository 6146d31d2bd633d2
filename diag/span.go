// Package diag implements Sutra's diagnostic taxonomy: source spans, the
// error kinds produced by every pipeline phase, and a renderer used by
// tests and by cmd/sutrarepl.
package diag

import "fmt"

// Span is a byte range into source text, plus optional 1-based line/column
// of its start, adapted from gorgo.Span (github.com/npillmayer/gorgo).
type Span struct {
	From, To   int
	Line, Col  int // 0 if unknown
}

// NullSpan is the zero value, used for synthetic nodes that have no source
// location (e.g. macro-generated code with no span to blame).
var NullSpan = Span{}

// IsNull reports whether s carries no location information.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.To - s.From
}

// Extend grows s so that it also covers other.
func (s Span) Extend(other Span) Span {
	if other.IsNull() {
		return s
	}
	if s.IsNull() {
		return other
	}
	if other.From < s.From {
		s.From = other.From
		s.Line, s.Col = other.Line, other.Col
	}
	if other.To > s.To {
		s.To = other.To
	}
	return s
}

func (s Span) String() string {
	if s.IsNull() {
		return "<no span>"
	}
	if s.Line > 0 {
		return fmt.Sprintf("%d:%d", s.Line, s.Col)
	}
	return fmt.Sprintf("%d..%d", s.From, s.To)
}
