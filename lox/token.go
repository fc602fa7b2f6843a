package lox

import (
	"fmt"
	"unicode/utf8"
)

// TokenType identifies the lexical category of a token.
type TokenType uint8

const (
	// Single-character tokens.
	TokenLeftParen TokenType = iota
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenComma
	TokenDot
	TokenMinus
	TokenPlus
	TokenSemicolon
	TokenSlash
	TokenStar

	// One or two character tokens.
	TokenBang
	TokenBangEqual
	TokenEqual
	TokenEqualEqual
	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual

	// Literals.
	TokenIdentifier
	TokenString
	TokenNumber

	// TokenKeyword carries the specific word in Token.Keyword.
	TokenKeyword

	TokenLineComment
	TokenBlockComment

	// Lexical errors. The scanner reports these in-band and keeps going.
	TokenUnterminatedString
	TokenUnterminatedBlockComment
	TokenInvalidCharacter
)

var tokenNames = [...]string{
	TokenLeftParen:                "(",
	TokenRightParen:               ")",
	TokenLeftBrace:                "{",
	TokenRightBrace:               "}",
	TokenComma:                    ",",
	TokenDot:                      ".",
	TokenMinus:                    "-",
	TokenPlus:                     "+",
	TokenSemicolon:                ";",
	TokenSlash:                    "/",
	TokenStar:                     "*",
	TokenBang:                     "!",
	TokenBangEqual:                "!=",
	TokenEqual:                    "=",
	TokenEqualEqual:               "==",
	TokenGreater:                  ">",
	TokenGreaterEqual:             ">=",
	TokenLess:                     "<",
	TokenLessEqual:                "<=",
	TokenIdentifier:               "IDENTIFIER",
	TokenString:                   "STRING",
	TokenNumber:                   "NUMBER",
	TokenKeyword:                  "KEYWORD",
	TokenLineComment:              "LINE_COMMENT",
	TokenBlockComment:             "BLOCK_COMMENT",
	TokenUnterminatedString:       "UNTERMINATED_STRING",
	TokenUnterminatedBlockComment: "UNTERMINATED_BLOCK_COMMENT",
	TokenInvalidCharacter:         "INVALID_CHARACTER",
}

func (tt TokenType) String() string {
	if int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", uint8(tt))
}

func (tt TokenType) IsComment() bool {
	return tt == TokenLineComment || tt == TokenBlockComment
}

func (tt TokenType) IsError() bool {
	switch tt {
	case TokenUnterminatedString, TokenUnterminatedBlockComment, TokenInvalidCharacter:
		return true
	default:
		return false
	}
}

// Keyword enumerates the reserved words.
type Keyword uint8

const (
	KeywordNone Keyword = iota
	KeywordAnd
	KeywordClass
	KeywordElse
	KeywordFalse
	KeywordFun
	KeywordFor
	KeywordIf
	KeywordNil
	KeywordOr
	KeywordPrint
	KeywordReturn
	KeywordSuper
	KeywordThis
	KeywordTrue
	KeywordVar
	KeywordWhile
)

var keywordNames = [...]string{
	KeywordNone:   "",
	KeywordAnd:    "and",
	KeywordClass:  "class",
	KeywordElse:   "else",
	KeywordFalse:  "false",
	KeywordFun:    "fun",
	KeywordFor:    "for",
	KeywordIf:     "if",
	KeywordNil:    "nil",
	KeywordOr:     "or",
	KeywordPrint:  "print",
	KeywordReturn: "return",
	KeywordSuper:  "super",
	KeywordThis:   "this",
	KeywordTrue:   "true",
	KeywordVar:    "var",
	KeywordWhile:  "while",
}

func (k Keyword) String() string {
	if int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return fmt.Sprintf("Keyword(%d)", uint8(k))
}

// Keywords lists every reserved word in declaration order.
func Keywords() []Keyword {
	out := make([]Keyword, 0, len(keywordNames)-1)
	for k := KeywordAnd; int(k) < len(keywordNames); k++ {
		out = append(out, k)
	}
	return out
}

// LookupKeyword returns the keyword spelled exactly as word.
func LookupKeyword(word string) (Keyword, bool) {
	switch word {
	case "and":
		return KeywordAnd, true
	case "class":
		return KeywordClass, true
	case "else":
		return KeywordElse, true
	case "false":
		return KeywordFalse, true
	case "fun":
		return KeywordFun, true
	case "for":
		return KeywordFor, true
	case "if":
		return KeywordIf, true
	case "nil":
		return KeywordNil, true
	case "or":
		return KeywordOr, true
	case "print":
		return KeywordPrint, true
	case "return":
		return KeywordReturn, true
	case "super":
		return KeywordSuper, true
	case "this":
		return KeywordThis, true
	case "true":
		return KeywordTrue, true
	case "var":
		return KeywordVar, true
	case "while":
		return KeywordWhile, true
	}
	return KeywordNone, false
}

// Span is a half-open byte range [Start, End) into the source.
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) Len() int {
	return int(s.End - s.Start)
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// previewSize fills Token out to 24 bytes.
const previewSize = 13

// Token captures lexical information for the parser. It never owns source
// text: Lexeme slices it back out of the source the token was scanned from,
// and the inline preview holds only the first few bytes for display.
type Token struct {
	Span    Span
	Type    TokenType
	Keyword Keyword

	previewLen uint8
	preview    [previewSize]byte
}

func newToken(tt TokenType, source string, start, end int) Token {
	tok := Token{Type: tt, Span: Span{Start: uint32(start), End: uint32(end)}}
	lexeme := source[start:end]
	n := min(len(lexeme), previewSize)
	// Cut on a rune boundary so the preview stays valid UTF-8.
	for n > 0 && n < len(lexeme) && !utf8.RuneStart(lexeme[n]) {
		n--
	}
	tok.previewLen = uint8(copy(tok.preview[:], lexeme[:n]))
	return tok
}

// Lexeme returns the exact source text of the token. source must be the
// string the token was scanned from.
func (t Token) Lexeme(source string) string {
	if int(t.Span.End) > len(source) || t.Span.Start > t.Span.End {
		return ""
	}
	return source[t.Span.Start:t.Span.End]
}

// Truncated reports whether the preview is shorter than the lexeme.
func (t Token) Truncated() bool {
	return t.Span.Len() > int(t.previewLen)
}

// Preview returns the inline prefix of the lexeme, marked with an ellipsis
// when the lexeme did not fit.
func (t Token) Preview() string {
	text := string(t.preview[:t.previewLen])
	if t.Truncated() {
		return text + "…"
	}
	return text
}

// Equal compares tokens by category and source range.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Keyword == other.Keyword && t.Span == other.Span
}

func (t Token) String() string {
	switch t.Type {
	case TokenKeyword:
		return t.Keyword.String()
	case TokenIdentifier, TokenString, TokenNumber:
		return t.Preview()
	default:
		if t.Type.IsComment() || t.Type.IsError() {
			return fmt.Sprintf("%s %q", t.Type, t.Preview())
		}
		return t.Type.String()
	}
}
