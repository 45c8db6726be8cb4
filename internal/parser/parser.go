// Package parser turns a Huckleberry token stream into a sequence of value
// trees. The language is homoiconic: parsed code *is* the value tree, so
// this package depends on value.Value as its AST representation rather than
// a separate node hierarchy.
package parser

import (
	"fmt"

	"github.com/pearigee/huckleberry/internal/herr"
	"github.com/pearigee/huckleberry/internal/lexer"
	"github.com/pearigee/huckleberry/internal/token"
	"github.com/pearigee/huckleberry/internal/value"
)

// Parser is a recursive-descent parser over a pre-scanned token slice,
// mirroring the teacher's pkgs/parser.Parser shape (tokens + cursor +
// current/atEnd/advance helpers) adapted to Huckleberry's much smaller
// grammar and single-error-and-stop failure policy.
type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse scans and parses src into a sequence of top-level value trees.
func Parse(src string) ([]value.Value, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			return nil, &herr.ScannerError{Msg: lexErr.Msg, SrcLine: lexErr.Line}
		}
		return nil, &herr.ScannerError{Msg: err.Error()}
	}
	p := &Parser{tokens: toks}
	return p.parseProgram()
}

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) atEnd() bool {
	return p.current().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) parseProgram() ([]value.Value, error) {
	var forms []value.Value
	for !p.atEnd() {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
	return forms, nil
}

// parseExpression dispatches on the current token's kind; this is the
// single production spec.md's grammar calls `expression`.
func (p *Parser) parseExpression() (value.Value, error) {
	t := p.current()
	switch t.Kind {
	case token.LeftParen:
		return p.parseList()
	case token.LeftAngle:
		return p.parseMethodList()
	case token.LeftSquare:
		return p.parseVector()
	case token.LeftCurly:
		return p.parseMap()
	case token.Number:
		p.advance()
		return value.Number(t.Num), nil
	case token.Boolean:
		p.advance()
		return value.Bool(t.Bool), nil
	case token.String:
		p.advance()
		return value.Str(t.Text), nil
	case token.Keyword:
		p.advance()
		return value.Keyword(":" + t.Text), nil
	case token.Symbol:
		p.advance()
		return value.Symbol(t.Text), nil
	case token.Ampersand:
		p.advance()
		return value.Ampersand(), nil
	case token.Nil:
		p.advance()
		return value.Nil, nil
	default:
		return value.Nil, &herr.ParseError{
			Msg:     fmt.Sprintf("unexpected token %s", t.Kind),
			SrcLine: t.Line,
		}
	}
}

func (p *Parser) parseList() (value.Value, error) {
	open := p.advance() // '('
	items, err := p.parseUntil(token.RightParen, open.Line, "(")
	if err != nil {
		return value.Nil, err
	}
	return value.List(items), nil
}

func (p *Parser) parseMethodList() (value.Value, error) {
	open := p.advance() // '<'
	items, err := p.parseUntil(token.RightAngle, open.Line, "<")
	if err != nil {
		return value.Nil, err
	}
	return value.MethodList(items), nil
}

func (p *Parser) parseVector() (value.Value, error) {
	open := p.advance() // '['
	items, err := p.parseUntil(token.RightSquare, open.Line, "[")
	if err != nil {
		return value.Nil, err
	}
	return value.Vector(items), nil
}

func (p *Parser) parseMap() (value.Value, error) {
	open := p.advance() // '{'
	items, err := p.parseUntil(token.RightCurly, open.Line, "{")
	if err != nil {
		return value.Nil, err
	}
	if len(items)%2 != 0 {
		return value.Nil, &herr.ParseError{
			Msg:     "map literal must contain an even number of child expressions",
			SrcLine: open.Line,
		}
	}
	m := value.EmptyMap()
	for i := 0; i < len(items); i += 2 {
		m = value.MapSet(m, items[i], items[i+1])
	}
	return m, nil
}

// parseUntil collects expressions until closeKind is seen, reporting a
// ParseError citing the opening delimiter's line if the input runs out
// first (an opener with no matching closer).
func (p *Parser) parseUntil(closeKind token.Kind, openLine int, openSym string) ([]value.Value, error) {
	var items []value.Value
	for {
		if p.atEnd() {
			return nil, &herr.ParseError{
				Msg:     fmt.Sprintf("unmatched %q", openSym),
				SrcLine: openLine,
			}
		}
		if p.current().Kind == closeKind {
			p.advance()
			return items, nil
		}
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}
