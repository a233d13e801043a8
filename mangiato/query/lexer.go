package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Token represents a lexical token
type Token struct {
	Kind  TokenKind
	Value string
	Num   float64
	Pos   int
}

// TokenKind is the type of token
type TokenKind int

const (
	TokIdent TokenKind = iota
	TokString
	TokNumber
	TokWord
	TokAnd
	TokOr
	TokLParen
	TokRParen
	TokEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokIdent:
		return "Ident"
	case TokString:
		return "String"
	case TokNumber:
		return "Number"
	case TokWord:
		return "Word"
	case TokAnd:
		return "And"
	case TokOr:
		return "Or"
	case TokLParen:
		return "LParen"
	case TokRParen:
		return "RParen"
	case TokEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

func (t Token) String() string {
	switch t.Kind {
	case TokIdent, TokWord, TokNumber:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
	case TokString:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
	default:
		return t.Kind.String()
	}
}

// SyntaxError is returned by Lex and Parse for malformed filter strings.
type SyntaxError struct {
	Pos int // rune index into the input, not a byte offset
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

func errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Lexer tokenizes a filter string
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer for the input string
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		pos:   0,
	}
}

// Lex tokenizes the entire input. Callers normalize case before lexing.
func Lex(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok, err := lexer.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}

	return tokens, nil
}

// Next returns the next token
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]
	start := l.pos

	switch ch {
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Pos: start}, nil
	case '\'', '"':
		return l.scanString(ch)
	}

	if unicode.IsDigit(ch) || ((ch == '-' || ch == '+') && unicode.IsDigit(l.peek(1))) {
		return l.scanNumber()
	}

	if isIdentStart(ch) {
		return l.scanIdent()
	}

	return Token{}, errorf(start, "unexpected character %q", ch)
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) peek(offset int) rune {
	pos := l.pos + offset
	if pos < len(l.input) {
		return l.input[pos]
	}
	return 0
}

// scanString reads text up to the matching quote. There are no escapes: the
// other quote character is ordinary text.
func (l *Lexer) scanString(quote rune) (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		l.pos++
		if ch == quote {
			return Token{Kind: TokString, Value: sb.String(), Pos: start}, nil
		}
		sb.WriteRune(ch)
	}

	return Token{}, errorf(start, "unterminated string")
}

// scanNumber reads a signed decimal. A run that continues with '-' or ':'
// after the integer part is an unquoted date or time and comes back as a Word.
func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos

	if l.input[l.pos] == '-' || l.input[l.pos] == '+' {
		l.pos++
	}
	l.digits()

	if ch := l.peek(0); ch == '-' || ch == ':' {
		for l.pos < len(l.input) && isDateChar(l.input[l.pos]) {
			l.pos++
		}
		if err := l.expectBoundary(); err != nil {
			return Token{}, err
		}
		return Token{Kind: TokWord, Value: string(l.input[start:l.pos]), Pos: start}, nil
	}

	if l.peek(0) == '.' {
		l.pos++
		l.digits()
	}

	if ch := l.peek(0); ch == 'e' || ch == 'E' {
		next := l.peek(1)
		if unicode.IsDigit(next) || ((next == '+' || next == '-') && unicode.IsDigit(l.peek(2))) {
			l.pos += 2
			l.digits()
		}
	}

	if err := l.expectBoundary(); err != nil {
		return Token{}, err
	}

	numStr := string(l.input[start:l.pos])
	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return Token{}, errorf(start, "invalid number %s", numStr)
	}

	return Token{Kind: TokNumber, Value: numStr, Num: num, Pos: start}, nil
}

func (l *Lexer) digits() {
	for l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
		l.pos++
	}
}

// expectBoundary rejects literals glued to identifier characters, like 12abc.
func (l *Lexer) expectBoundary() error {
	if l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		return errorf(l.pos, "unexpected character %q after literal", l.input[l.pos])
	}
	return nil
}

func (l *Lexer) scanIdent() (Token, error) {
	start := l.pos

	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}

	value := string(l.input[start:l.pos])

	switch value {
	case "and":
		return Token{Kind: TokAnd, Pos: start}, nil
	case "or":
		return Token{Kind: TokOr, Pos: start}, nil
	}

	return Token{Kind: TokIdent, Value: value, Pos: start}, nil
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func isDateChar(ch rune) bool {
	return unicode.IsDigit(ch) || ch == '-' || ch == ':'
}
