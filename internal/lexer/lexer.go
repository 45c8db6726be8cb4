// Package lexer scans Huckleberry source text into a token stream.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/pearigee/huckleberry/internal/token"
)

// Error is returned for any lexical failure: an unrecognized character, an
// unterminated string, or an unparseable number.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ASCII classification tables, built once in init() the way the teacher's
// lexer pre-computes isWhitespace/isIdentStart/isIdentPart lookup arrays
// for fast single-branch classification instead of repeated range checks.
var (
	isAlphaIsh        [128]bool
	isAlphaNumericIsh [128]bool
	isDigit           [128]bool
)

func init() {
	const alphaIsh = "_-*+!?/="
	for c := 'a'; c <= 'z'; c++ {
		isAlphaIsh[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		isAlphaIsh[c] = true
	}
	for _, c := range alphaIsh {
		isAlphaIsh[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		isDigit[c] = true
	}
	for i := 0; i < 128; i++ {
		isAlphaNumericIsh[i] = isAlphaIsh[i] || isDigit[i]
	}
}

func isAlphaIshByte(b byte) bool {
	return b < 128 && isAlphaIsh[b]
}

func isAlphaNumericIshByte(b byte) bool {
	return b < 128 && isAlphaNumericIsh[b]
}

func isDigitByte(b byte) bool {
	return b < 128 && isDigit[b]
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Lexer scans a source string into tokens on demand.
type Lexer struct {
	src  string
	pos  int // byte offset of the next unread byte
	line int
}

// New creates a scanner over src.
func New(src string) *Lexer {
	return &Lexer{src: src, pos: 0, line: 1}
}

// Tokenize scans the entire source into a token slice terminated by an EOF
// token, or returns the first Error encountered.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
	}
	return b
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isWhitespace(l.peekByte()) {
		l.advance()
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Line: l.line}, nil
	}

	startLine := l.line
	b := l.peekByte()

	switch {
	case b == '(':
		l.advance()
		return token.Token{Kind: token.LeftParen, Line: startLine}, nil
	case b == ')':
		l.advance()
		return token.Token{Kind: token.RightParen, Line: startLine}, nil
	case b == '{':
		l.advance()
		return token.Token{Kind: token.LeftCurly, Line: startLine}, nil
	case b == '}':
		l.advance()
		return token.Token{Kind: token.RightCurly, Line: startLine}, nil
	case b == '[':
		l.advance()
		return token.Token{Kind: token.LeftSquare, Line: startLine}, nil
	case b == ']':
		l.advance()
		return token.Token{Kind: token.RightSquare, Line: startLine}, nil
	case b == '<':
		l.advance()
		return token.Token{Kind: token.LeftAngle, Line: startLine}, nil
	case b == '>':
		l.advance()
		return token.Token{Kind: token.RightAngle, Line: startLine}, nil
	case b == '&':
		l.advance()
		return token.Token{Kind: token.Ampersand, Line: startLine}, nil
	case b == '"':
		return l.scanString(startLine)
	case b == ':':
		return l.scanKeyword(startLine)
	case isDigitByte(b), b == '.' && isDigitByte(l.peekByteAt(1)):
		return l.scanNumber(startLine)
	case isAlphaIshByte(b):
		return l.scanSymbol(startLine)
	default:
		return token.Token{}, &Error{Line: startLine, Msg: fmt.Sprintf("unexpected character %q", b)}
	}
}

func (l *Lexer) scanString(startLine int) (token.Token, error) {
	l.advance() // opening quote
	start := l.pos
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, &Error{Line: startLine, Msg: "unterminated string"}
		}
		if l.peekByte() == '"' {
			text := l.src[start:l.pos]
			l.advance() // closing quote
			return token.Token{Kind: token.String, Text: text, Line: startLine}, nil
		}
		l.advance()
	}
}

func (l *Lexer) scanKeyword(startLine int) (token.Token, error) {
	l.advance() // ':'
	start := l.pos
	for l.pos < len(l.src) && isAlphaNumericIshByte(l.peekByte()) {
		l.advance()
	}
	if l.pos == start {
		return token.Token{}, &Error{Line: startLine, Msg: "empty keyword"}
	}
	return token.Token{Kind: token.Keyword, Text: l.src[start:l.pos], Line: startLine}, nil
}

func (l *Lexer) scanNumber(startLine int) (token.Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigitByte(l.peekByte()) {
		l.advance()
	}
	if l.peekByte() == '.' && isDigitByte(l.peekByteAt(1)) {
		l.advance()
		for l.pos < len(l.src) && isDigitByte(l.peekByte()) {
			l.advance()
		}
	}
	text := l.src[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token.Token{}, &Error{Line: startLine, Msg: fmt.Sprintf("invalid number %q", text)}
	}
	return token.Token{Kind: token.Number, Num: n, Line: startLine}, nil
}

func (l *Lexer) scanSymbol(startLine int) (token.Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isAlphaNumericIshByte(l.peekByte()) {
		l.advance()
	}
	text := l.src[start:l.pos]
	// A symbol may end in one trailing ':', stripped from the stored name;
	// this marks keyword-message parameters (see the parser's method form).
	if l.peekByte() == ':' {
		l.advance()
		text = l.src[start : l.pos-1]
	}

	switch text {
	case "true":
		return token.Token{Kind: token.Boolean, Bool: true, Line: startLine}, nil
	case "false":
		return token.Token{Kind: token.Boolean, Bool: false, Line: startLine}, nil
	case "nil":
		return token.Token{Kind: token.Nil, Line: startLine}, nil
	default:
		return token.Token{Kind: token.Symbol, Text: text, Line: startLine}, nil
	}
}
