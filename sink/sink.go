// Package sink implements Sutra's output boundary (spec.md §4.6): every
// print primitive writes through a Sink rather than directly to os.Stdout,
// so a script's output is swappable per caller — a real writer for
// cmd/sutrarepl, an in-memory buffer for tests and package harness, or a
// silent discard.
package sink

import (
	"fmt"
	"io"

	"github.com/cpond8/sutra/diag"
)

// Sink receives one line of program output at a time, tagged with the
// span of the print call that produced it.
type Sink interface {
	Emit(text string, span diag.Span)
}

// Writer emits to an underlying io.Writer, one line per Emit call.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (s *Writer) Emit(text string, span diag.Span) {
	fmt.Fprintln(s.w, text)
}

// Buffer accumulates every emitted line in memory, for tests and the
// harness package to inspect after a run.
type Buffer struct {
	Lines []string
	Spans []diag.Span
}

func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Emit(text string, span diag.Span) {
	b.Lines = append(b.Lines, text)
	b.Spans = append(b.Spans, span)
}

func (b *Buffer) String() string {
	s := ""
	for i, l := range b.Lines {
		if i > 0 {
			s += "\n"
		}
		s += l
	}
	return s
}

// Null discards everything emitted to it.
type Null struct{}

func (Null) Emit(string, diag.Span) {}
