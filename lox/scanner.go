package lox

import "iter"

// Scanner turns source text into tokens on demand. It never fails: lexical
// problems come back as tokens whose type reports IsError, and scanning
// resumes after them. A Scanner is single use; scan the same text again
// with a fresh one.
type Scanner struct {
	input string
	cur   cursor

	// pos is where the most recently returned token starts.
	pos Position
}

func NewScanner(input string) *Scanner {
	return &Scanner{input: input, cur: newCursor(input)}
}

// Source returns the text being scanned.
func (s *Scanner) Source() string {
	return s.input
}

// Position returns the line and column of the token last returned by Next.
func (s *Scanner) Position() Position {
	return s.pos
}

// All yields the remaining tokens in order.
func (s *Scanner) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Next returns the next token, or false once the input is exhausted.
func (s *Scanner) Next() (Token, bool) {
	s.skipWhitespace()

	start := s.cur.pos
	s.pos = s.cur.nextPosition()
	ch, ok := s.cur.next()
	if !ok {
		return Token{}, false
	}

	switch ch {
	case '(':
		return s.makeToken(TokenLeftParen, start), true
	case ')':
		return s.makeToken(TokenRightParen, start), true
	case '{':
		return s.makeToken(TokenLeftBrace, start), true
	case '}':
		return s.makeToken(TokenRightBrace, start), true
	case ',':
		return s.makeToken(TokenComma, start), true
	case '.':
		return s.makeToken(TokenDot, start), true
	case '-':
		return s.makeToken(TokenMinus, start), true
	case '+':
		return s.makeToken(TokenPlus, start), true
	case ';':
		return s.makeToken(TokenSemicolon, start), true
	case '*':
		return s.makeToken(TokenStar, start), true
	case '!':
		return s.makeToken(s.pickEqual(TokenBangEqual, TokenBang), start), true
	case '=':
		return s.makeToken(s.pickEqual(TokenEqualEqual, TokenEqual), start), true
	case '<':
		return s.makeToken(s.pickEqual(TokenLessEqual, TokenLess), start), true
	case '>':
		return s.makeToken(s.pickEqual(TokenGreaterEqual, TokenGreater), start), true
	case '/':
		switch {
		case s.cur.peekIs('/'):
			s.skipLine()
			return s.makeToken(TokenLineComment, start), true
		case s.cur.peekIs('*'):
			s.cur.next()
			return s.makeToken(s.scanBlockComment(), start), true
		default:
			return s.makeToken(TokenSlash, start), true
		}
	case '"':
		return s.makeToken(s.scanString(), start), true
	}

	switch {
	case isDigit(ch):
		s.scanNumber()
		return s.makeToken(TokenNumber, start), true
	case isIdentifierStart(ch):
		s.scanIdentifier()
		tok := s.makeToken(TokenIdentifier, start)
		if kw, ok := LookupKeyword(s.input[start:s.cur.pos]); ok {
			tok.Type = TokenKeyword
			tok.Keyword = kw
		}
		return tok, true
	default:
		tok := s.makeToken(TokenInvalidCharacter, start)
		s.skipLine()
		return tok, true
	}
}

func (s *Scanner) makeToken(tt TokenType, start int) Token {
	return newToken(tt, s.input, start, s.cur.pos)
}

// pickEqual consumes a following '=' and returns double, otherwise single.
func (s *Scanner) pickEqual(double, single TokenType) TokenType {
	if s.cur.peekIs('=') {
		s.cur.next()
		return double
	}
	return single
}

func (s *Scanner) skipWhitespace() {
	for {
		ch, ok := s.cur.peek()
		if !ok {
			return
		}
		switch ch {
		case ' ', '\t', '\r', '\n':
			s.cur.next()
		default:
			return
		}
	}
}

// skipLine advances to the next newline without consuming it.
func (s *Scanner) skipLine() {
	for {
		ch, ok := s.cur.peek()
		if !ok || ch == '\n' {
			return
		}
		s.cur.next()
	}
}

// scanBlockComment runs after the opening "/*". Comments nest.
func (s *Scanner) scanBlockComment() TokenType {
	depth := 1
	for {
		ch, ok := s.cur.next()
		if !ok {
			return TokenUnterminatedBlockComment
		}
		switch {
		case ch == '/' && s.cur.peekIs('*'):
			s.cur.next()
			depth++
		case ch == '*' && s.cur.peekIs('/'):
			s.cur.next()
			depth--
			if depth == 0 {
				return TokenBlockComment
			}
		}
	}
}

// scanString runs after the opening quote. A quote directly after a
// backslash does not close the string.
func (s *Scanner) scanString() TokenType {
	var prev rune
	for {
		ch, ok := s.cur.next()
		if !ok {
			return TokenUnterminatedString
		}
		if ch == '"' && prev != '\\' {
			return TokenString
		}
		prev = ch
	}
}

func (s *Scanner) scanNumber() {
	s.skipDigits()
	if !s.cur.peekIs('.') {
		return
	}
	lookahead := s.cur
	lookahead.next()
	if ch, ok := lookahead.peek(); ok && isDigit(ch) {
		s.cur.next()
		s.skipDigits()
	}
}

func (s *Scanner) skipDigits() {
	for {
		ch, ok := s.cur.peek()
		if !ok || !isDigit(ch) {
			return
		}
		s.cur.next()
	}
}

func (s *Scanner) scanIdentifier() {
	for {
		ch, ok := s.cur.peek()
		if !ok || !isIdentifierRune(ch) {
			return
		}
		s.cur.next()
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierStart(r rune) bool {
	return r == '_' || isAlpha(r)
}

func isIdentifierRune(r rune) bool {
	return r == '_' || isAlpha(r) || isDigit(r)
}
