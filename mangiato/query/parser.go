package query

import (
	"strings"
)

// Parse parses a filter string into an expression tree. The input is
// lowercased first, so keywords, operators and values are case-insensitive.
//
// Both connectives group to the right and "and" binds tighter than "or":
//
//	a and b or c   =>  (a and b) or c
//	a or b and c   =>  a or (b and c)
//	a or b or c    =>  a or (b or c)
func Parse(input string) (Expr, error) {
	tokens, err := Lex(strings.ToLower(input))
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, pos: 0}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.match(TokEOF) {
		return nil, errorf(p.current().Pos, "unexpected %v after expression", p.current())
	}
	return expr, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.match(TokOr) {
		return left, nil
	}
	p.advance()
	right, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return Logical{Op: OpOr, Left: left, Right: right}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseClause()
	if err != nil {
		return nil, err
	}
	if !p.match(TokAnd) {
		return left, nil
	}
	p.advance()
	right, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	return Logical{Op: OpAnd, Left: left, Right: right}, nil
}

func (p *parser) parseClause() (Expr, error) {
	if p.match(TokLParen) {
		open := p.current()
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.match(TokRParen) {
			if p.match(TokEOF) {
				return nil, errorf(open.Pos, "unmatched '('")
			}
			return nil, errorf(p.current().Pos, "expected ')', got %v", p.current())
		}
		p.advance()
		return expr, nil
	}

	return p.parseCondition()
}

func (p *parser) parseCondition() (Expr, error) {
	field := p.current()
	if field.Kind != TokIdent {
		return nil, errorf(field.Pos, "expected field name, got %v", field)
	}
	p.advance()

	opTok := p.current()
	if opTok.Kind != TokIdent {
		return nil, errorf(opTok.Pos, "expected operator after %s, got %v", field.Value, opTok)
	}
	op, ok := LookupCmpOp(opTok.Value)
	if !ok {
		return nil, errorf(opTok.Pos, "unknown operator %q", opTok.Value)
	}
	p.advance()

	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}

	return Condition{Field: field.Value, Op: op, Value: lit}, nil
}

func (p *parser) parseLiteral() (Literal, error) {
	tok := p.current()
	switch tok.Kind {
	case TokNumber:
		p.advance()
		return Literal{Kind: LitNumber, Num: tok.Num, Raw: tok.Value}, nil
	case TokString:
		p.advance()
		return Literal{Kind: LitText, Raw: tok.Value, Quoted: true}, nil
	case TokIdent, TokWord:
		p.advance()
		return Literal{Kind: LitText, Raw: tok.Value}, nil
	default:
		return Literal{}, errorf(tok.Pos, "expected value, got %v", tok)
	}
}

func (p *parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: TokEOF}
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) match(kind TokenKind) bool {
	return p.current().Kind == kind
}
