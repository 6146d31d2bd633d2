// Package lex tokenizes Sutra source text. It builds a DFA-based scanner
// with github.com/timtadh/lexmachine, exactly as the teacher's
// terex/terexlang/scan.go builds one for its own Lisp-like surface syntax —
// the same regex-rule-table-plus-Compile() shape, retargeted at spec.md
// §4.1's token set.
package lex

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/cpond8/sutra/diag"
)

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	LParen
	RParen
	LBrace
	RBrace
	Quote
	Ellipsis
	Number
	String
	Symbol
	Bool
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case Quote:
		return "'"
	case Ellipsis:
		return "..."
	case Number:
		return "number"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case Bool:
		return "boolean"
	default:
		return "?"
	}
}

// Token is one lexical token, carrying its decoded value where applicable
// (Number -> float64, String -> the unescaped text, Bool -> bool).
type Token struct {
	Kind  Kind
	Text  string // raw lexeme as it appeared in source
	Value interface{}
	Span  diag.Span
}

var (
	lx      *lexmachine.Lexer
	lxOnce  sync.Once
	lxErr   error
)

func build() (*lexmachine.Lexer, error) {
	lxOnce.Do(func() {
		l := lexmachine.NewLexer()
		l.Add([]byte(`;[^\n]*\n?`), skip)
		l.Add([]byte(`( |\t|\n|\r)+`), skip)
		l.Add([]byte(`\(`), tok(LParen))
		l.Add([]byte(`\)`), tok(RParen))
		l.Add([]byte(`\{`), tok(LBrace))
		l.Add([]byte(`\}`), tok(RBrace))
		l.Add([]byte(`'`), tok(Quote))
		l.Add([]byte(`\.\.\.`), tok(Ellipsis))
		l.Add([]byte(`\"([^\"\\]|\\.)*\"`), stringAction)
		l.Add([]byte(`\-?[0-9]+(\.[0-9]+)?`), numberAction)
		l.Add([]byte(`([a-zA-Z_]|\+|\-|\*|/|<|>|=|\?|!)([a-zA-Z_0-9\.]|\+|\-|\*|/|<|>|=|\?|!)*`), symbolAction)
		if err := l.Compile(); err != nil {
			lxErr = fmt.Errorf("compiling lexer: %w", err)
			return
		}
		lx = l
	})
	return lx, lxErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tok(kind Kind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Token{Kind: kind, Text: string(m.Bytes), Span: spanOf(m)}, nil
	}
}

func numberAction(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	text := string(m.Bytes)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed number %q: %w", text, err)
	}
	return Token{Kind: Number, Text: text, Value: f, Span: spanOf(m)}, nil
}

func symbolAction(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	text := string(m.Bytes)
	switch text {
	case "true":
		return Token{Kind: Bool, Text: text, Value: true, Span: spanOf(m)}, nil
	case "false":
		return Token{Kind: Bool, Text: text, Value: false, Span: spanOf(m)}, nil
	}
	return Token{Kind: Symbol, Text: text, Span: spanOf(m)}, nil
}

func stringAction(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	raw := string(m.Bytes)
	inner := raw[1 : len(raw)-1] // strip surrounding quotes
	unescaped, err := unescape(inner)
	if err != nil {
		return nil, fmt.Errorf("%w at %s", err, spanOf(m))
	}
	return Token{Kind: String, Text: raw, Value: unescaped, Span: spanOf(m)}, nil
}

// unescape recognizes exactly \\, \", \n, \t, \r (spec.md §4.1/§6); any
// other backslash sequence is a parse error.
func unescape(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("trailing backslash in string literal")
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", s[i])
		}
	}
	return b.String(), nil
}

func spanOf(m *machines.Match) diag.Span {
	return diag.Span{From: m.TC, To: m.TC + len(m.Bytes)}
}

// Tokenize scans src into a token slice terminated by an EOF token. It is
// the single entry point package parser uses; lexmachine's internal types
// never leak past this function.
func Tokenize(src string) ([]Token, error) {
	l, err := build()
	if err != nil {
		return nil, err
	}
	scanner, err := l.Scanner([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("starting scanner: %w", err)
	}
	var toks []Token
	for {
		raw, err, eof := scanner.Next()
		if err != nil {
			if ui, ok := err.(*machines.UnconsumedInput); ok {
				return nil, fmt.Errorf("unexpected character %q at byte %d", src[ui.StartTC], ui.StartTC)
			}
			return nil, err
		}
		if eof {
			break
		}
		if raw == nil {
			continue // a skip action produced no token
		}
		toks = append(toks, raw.(Token))
	}
	toks = append(toks, Token{Kind: EOF, Span: diag.Span{From: len(src), To: len(src)}})
	return toks, nil
}
