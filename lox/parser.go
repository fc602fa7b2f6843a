package lox

import (
	"fmt"
	"slices"
)

// Parser is a recursive descent parser for one expression:
//
//	expression → equality
//	equality   → comparison ( ( "!=" | "==" ) comparison )*
//	comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term       → factor ( ( "-" | "+" ) factor )*
//	factor     → unary ( ( "/" | "*" ) unary )*
//	unary      → ( "!" | "-" ) unary | primary
//	primary    → NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")"
//
// Comment tokens are not skipped; filter them out before parsing.
type Parser struct {
	source string
	tokens []Token
	pos    int
}

// NewParser parses tokens that were scanned from source. source is only
// read to locate errors.
func NewParser(source string, tokens []Token) *Parser {
	return &Parser{source: source, tokens: tokens}
}

// Parse reads one expression from the front of the token sequence. Tokens
// after it are left in place; see Done.
func (p *Parser) Parse() (Expr, error) {
	return p.parseExpression()
}

// Done reports whether every token has been consumed.
func (p *Parser) Done() bool {
	return p.pos >= len(p.tokens)
}

// Remaining returns the tokens not consumed yet.
func (p *Parser) Remaining() []Token {
	return p.tokens[p.pos:]
}

// ParseAll is Parse, but any token left over afterwards is an error.
func (p *Parser) ParseAll() (Expr, error) {
	expr, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, p.errorUnexpected(tok)
	}
	return expr, nil
}

// ParseExpression scans source, drops comments and parses a single
// expression that must cover the whole input.
func ParseExpression(source string) (Expr, error) {
	res, err := Tokenize(source, TokenizeOptions{})
	if err != nil {
		return nil, err
	}
	return NewParser(source, res.Tokens).ParseAll()
}

func (p *Parser) parseExpression() (Expr, error) {
	return p.parseEquality()
}

func (p *Parser) parseEquality() (Expr, error) {
	return p.parseBinary(p.parseComparison, TokenBangEqual, TokenEqualEqual)
}

func (p *Parser) parseComparison() (Expr, error) {
	return p.parseBinary(p.parseTerm, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *Parser) parseTerm() (Expr, error) {
	return p.parseBinary(p.parseFactor, TokenMinus, TokenPlus)
}

func (p *Parser) parseFactor() (Expr, error) {
	return p.parseBinary(p.parseUnary, TokenSlash, TokenStar)
}

// parseBinary folds a left-associative chain of operands joined by ops.
func (p *Parser) parseBinary(operand func() (Expr, error), ops ...TokenType) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		operator, ok := p.match(ops...)
		if !ok {
			return expr, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: operator, Right: right}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	if operator, ok := p.match(TokenBang, TokenMinus); ok {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: operator, Right: right}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorAtEnd("expected expression")
	}

	switch {
	case isLiteralToken(tok):
		p.pos++
		return &Literal{Value: tok}, nil
	case tok.Type == TokenLeftParen:
		p.pos++
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		closing, ok := p.match(TokenRightParen)
		if !ok {
			return nil, p.errorExpected("')'")
		}
		return &Grouping{Inner: inner, span: Span{Start: tok.Span.Start, End: closing.Span.End}}, nil
	default:
		return nil, p.errorUnexpected(tok)
	}
}

func isLiteralToken(tok Token) bool {
	switch tok.Type {
	case TokenNumber, TokenString:
		return true
	case TokenKeyword:
		return tok.Keyword == KeywordTrue || tok.Keyword == KeywordFalse || tok.Keyword == KeywordNil
	default:
		return false
	}
}

func (p *Parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// match consumes the next token when its type is one of types.
func (p *Parser) match(types ...TokenType) (Token, bool) {
	tok, ok := p.peek()
	if !ok || !slices.Contains(types, tok.Type) {
		return Token{}, false
	}
	p.pos++
	return tok, true
}

func (p *Parser) errorExpected(expected string) error {
	tok, ok := p.peek()
	if !ok {
		return p.errorAtEnd("expected " + expected)
	}
	if lexErr := TokenError(p.source, tok); lexErr != nil {
		return lexErr
	}
	return newError(ErrParse, p.source, tok.Span, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(p.source, tok)))
}

// errorUnexpected reports tok where an expression should start. Lexical
// error tokens keep their own kind.
func (p *Parser) errorUnexpected(tok Token) error {
	if lexErr := TokenError(p.source, tok); lexErr != nil {
		return lexErr
	}
	return newError(ErrParse, p.source, tok.Span, "unexpected "+tokenLabel(p.source, tok))
}

// errorAtEnd anchors at the end of the last token so trailing blank lines
// do not move the frame past the input.
func (p *Parser) errorAtEnd(detail string) error {
	end := uint32(len(p.source))
	if len(p.tokens) > 0 {
		end = p.tokens[len(p.tokens)-1].Span.End
	}
	return newError(ErrParse, p.source, Span{Start: end, End: end}, detail+", got end of input")
}

func tokenLabel(source string, tok Token) string {
	switch tok.Type {
	case TokenIdentifier:
		return "identifier " + quoteLexeme(tok.Lexeme(source))
	case TokenNumber:
		return "number " + quoteLexeme(tok.Lexeme(source))
	case TokenString:
		return "string"
	case TokenKeyword:
		return quoteLexeme(tok.Keyword.String())
	case TokenLineComment, TokenBlockComment:
		return "comment"
	default:
		return quoteLexeme(tok.Type.String())
	}
}
