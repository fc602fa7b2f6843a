package lox

import (
	"slices"
	"testing"
)

type lexed struct {
	typ    TokenType
	lexeme string
}

func scanAll(t *testing.T, source string) []lexed {
	t.Helper()
	var out []lexed
	for tok := range NewScanner(source).All() {
		out = append(out, lexed{typ: tok.Type, lexeme: tok.Lexeme(source)})
	}
	return out
}

func expectTokens(t *testing.T, source string, want []lexed) {
	t.Helper()
	got := scanAll(t, source)
	if !slices.Equal(got, want) {
		t.Fatalf("scan %q:\nexpected %v\n     got %v", source, want, got)
	}
}

func TestScannerSingleAndDoubleLexemes(t *testing.T) {
	expectTokens(t, "!=<=>===({,.-=;*})", []lexed{
		{TokenBangEqual, "!="},
		{TokenLessEqual, "<="},
		{TokenGreaterEqual, ">="},
		{TokenEqualEqual, "=="},
		{TokenLeftParen, "("},
		{TokenLeftBrace, "{"},
		{TokenComma, ","},
		{TokenDot, "."},
		{TokenMinus, "-"},
		{TokenEqual, "="},
		{TokenSemicolon, ";"},
		{TokenStar, "*"},
		{TokenRightBrace, "}"},
		{TokenRightParen, ")"},
	})
}

func TestScannerOperatorsAreGreedy(t *testing.T) {
	expectTokens(t, "!= ! = < > +/", []lexed{
		{TokenBangEqual, "!="},
		{TokenBang, "!"},
		{TokenEqual, "="},
		{TokenLess, "<"},
		{TokenGreater, ">"},
		{TokenPlus, "+"},
		{TokenSlash, "/"},
	})
}

func TestScannerLineComments(t *testing.T) {
	expectTokens(t, "// this is a comment line", []lexed{
		{TokenLineComment, "// this is a comment line"},
	})
	expectTokens(t, "(1 == 1.0) // end-of-line comment\n2", []lexed{
		{TokenLeftParen, "("},
		{TokenNumber, "1"},
		{TokenEqualEqual, "=="},
		{TokenNumber, "1.0"},
		{TokenRightParen, ")"},
		{TokenLineComment, "// end-of-line comment"},
		{TokenNumber, "2"},
	})
}

func TestScannerBlockComments(t *testing.T) {
	expectTokens(t, "(/* this *should* be ignored */)", []lexed{
		{TokenLeftParen, "("},
		{TokenBlockComment, "/* this *should* be ignored */"},
		{TokenRightParen, ")"},
	})
	expectTokens(t, "/* a /* b */ c */", []lexed{
		{TokenBlockComment, "/* a /* b */ c */"},
	})
	expectTokens(t, "/* a /* b */ c", []lexed{
		{TokenUnterminatedBlockComment, "/* a /* b */ c"},
	})
	expectTokens(t, "/*/", []lexed{
		{TokenUnterminatedBlockComment, "/*/"},
	})
}

func TestScannerOnlyWhitespaceAndComments(t *testing.T) {
	source := " \t\r\n// one\n/* two /* three */ */\n\n// four"
	for _, tok := range scanAll(t, source) {
		if !tok.typ.IsComment() {
			t.Fatalf("expected only comments, got %v", tok)
		}
	}
}

func TestScannerStringLiterals(t *testing.T) {
	source := `"string (123) // check"`
	expectTokens(t, source, []lexed{{TokenString, source}})

	multiline := "\"this is a\nmulti line\nstring.\""
	expectTokens(t, multiline, []lexed{{TokenString, multiline}})
}

func TestScannerStringEscapedQuote(t *testing.T) {
	source := "\"a\\\"b\""
	expectTokens(t, source, []lexed{{TokenString, source}})
}

func TestScannerUnterminatedString(t *testing.T) {
	expectTokens(t, "1 \"abc\ndef", []lexed{
		{TokenNumber, "1"},
		{TokenUnterminatedString, "\"abc\ndef"},
	})
}

func TestScannerNumberLiterals(t *testing.T) {
	expectTokens(t, "1 2.0 0.3 000.3 0.0003 123 123.123", []lexed{
		{TokenNumber, "1"},
		{TokenNumber, "2.0"},
		{TokenNumber, "0.3"},
		{TokenNumber, "000.3"},
		{TokenNumber, "0.0003"},
		{TokenNumber, "123"},
		{TokenNumber, "123.123"},
	})
}

func TestScannerNumberWithoutFraction(t *testing.T) {
	expectTokens(t, ".123 123. -123 1.2.3", []lexed{
		{TokenDot, "."},
		{TokenNumber, "123"},
		{TokenNumber, "123"},
		{TokenDot, "."},
		{TokenMinus, "-"},
		{TokenNumber, "123"},
		{TokenNumber, "1.2"},
		{TokenDot, "."},
		{TokenNumber, "3"},
	})
}

func TestScannerReservedKeywords(t *testing.T) {
	source := "and class else false fun for if nil or print return super this true var while"
	var got []Keyword
	for tok := range NewScanner(source).All() {
		if tok.Type != TokenKeyword {
			t.Fatalf("expected keyword, got %v", tok.Type)
		}
		got = append(got, tok.Keyword)
	}
	if !slices.Equal(got, Keywords()) {
		t.Fatalf("expected %v, got %v", Keywords(), got)
	}
}

func TestScannerIdentifiers(t *testing.T) {
	expectTokens(t, "_ _test test_T1 test test_TEST a1 _42", []lexed{
		{TokenIdentifier, "_"},
		{TokenIdentifier, "_test"},
		{TokenIdentifier, "test_T1"},
		{TokenIdentifier, "test"},
		{TokenIdentifier, "test_TEST"},
		{TokenIdentifier, "a1"},
		{TokenIdentifier, "_42"},
	})
}

func TestScannerMaximalMunch(t *testing.T) {
	expectTokens(t, "andor and or _and or_ Or", []lexed{
		{TokenIdentifier, "andor"},
		{TokenKeyword, "and"},
		{TokenKeyword, "or"},
		{TokenIdentifier, "_and"},
		{TokenIdentifier, "or_"},
		{TokenIdentifier, "Or"},
	})
}

func TestScannerInvalidCharacterSkipsRestOfLine(t *testing.T) {
	expectTokens(t, "1 @ 2 3\n4", []lexed{
		{TokenNumber, "1"},
		{TokenInvalidCharacter, "@"},
		{TokenNumber, "4"},
	})
	expectTokens(t, "é", []lexed{
		{TokenInvalidCharacter, "é"},
	})
}

func TestScannerLineCountingAcrossMultilineComment(t *testing.T) {
	source := "var t1; /* this\nshould be\nignored */ var t2;@"
	assertInvalidAt(t, source, Position{Line: 3, Column: 19}, "ignored */ var t2;@")
}

func TestScannerLineCountingAcrossMultilineString(t *testing.T) {
	source := "var t1 = \"this is a\nmulti line\nstring\"; var t2;@"
	assertInvalidAt(t, source, Position{Line: 3, Column: 17}, `string"; var t2;@`)
}

func TestScannerInvalidCharacterPosition(t *testing.T) {
	assertInvalidAt(t, "ok\nbad@", Position{Line: 2, Column: 4}, "bad@")
}

func assertInvalidAt(t *testing.T, source string, want Position, wantLine string) {
	t.Helper()
	s := NewScanner(source)
	for tok := range s.All() {
		if tok.Type != TokenInvalidCharacter {
			continue
		}
		if got := s.Position(); got != want {
			t.Fatalf("scanner position: expected %v, got %v", want, got)
		}
		diag := TokenError(source, tok)
		if diag == nil {
			t.Fatalf("expected diagnostic for %v", tok)
		}
		if diag.Pos != want {
			t.Fatalf("diagnostic position: expected %v, got %v", want, diag.Pos)
		}
		if diag.SourceLine != wantLine {
			t.Fatalf("expected source line %q, got %q", wantLine, diag.SourceLine)
		}
		return
	}
	t.Fatalf("no invalid character found in %q", source)
}

func TestScannerPositionsMatchLocate(t *testing.T) {
	source := "(1 +\n  \"two\nlines\") /* c\n */ >= nil\n\t@x"
	s := NewScanner(source)
	for tok := range s.All() {
		if got, want := s.Position(), Locate(source, int(tok.Span.Start)); got != want {
			t.Fatalf("token %v: scanner says %v, Locate says %v", tok, got, want)
		}
	}
}

func TestScannerIsNotRestartable(t *testing.T) {
	s := NewScanner("1 2")
	first := 0
	for range s.All() {
		first++
	}
	if first != 2 {
		t.Fatalf("expected 2 tokens, got %d", first)
	}
	if _, ok := s.Next(); ok {
		t.Fatalf("expected drained scanner to stay empty")
	}
	for range s.All() {
		t.Fatalf("expected no tokens from a drained scanner")
	}
}

func TestScannerAllStopsEarly(t *testing.T) {
	s := NewScanner("1 2 3")
	for range s.All() {
		break
	}
	tok, ok := s.Next()
	if !ok || tok.Lexeme(s.Source()) != "2" {
		t.Fatalf("expected to resume at the second token, got %v (%v)", tok, ok)
	}
}
