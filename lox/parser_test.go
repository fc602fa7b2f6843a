package lox

import (
	"errors"
	"strings"
	"testing"
)

func mustTokens(t *testing.T, source string) []Token {
	t.Helper()
	res, err := Tokenize(source, TokenizeOptions{})
	if err != nil {
		t.Fatalf("tokenize %q: %v", source, err)
	}
	return res.Tokens
}

func TestParserPrecedence(t *testing.T) {
	source := "1 + 2 * 3"
	toks := mustTokens(t, source)

	got, err := NewParser(source, toks).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := &Binary{
		Left:     &Literal{Value: toks[0]},
		Operator: toks[1],
		Right: &Binary{
			Left:     &Literal{Value: toks[2]},
			Operator: toks[3],
			Right:    &Literal{Value: toks[4]},
		},
	}
	if !Equal(got, want) {
		t.Fatalf("expected %s, got %s", Print(source, want), Print(source, got))
	}

	wrong := &Binary{
		Left: &Binary{
			Left:     &Literal{Value: toks[0]},
			Operator: toks[1],
			Right:    &Literal{Value: toks[2]},
		},
		Operator: toks[3],
		Right:    &Literal{Value: toks[4]},
	}
	if Equal(got, wrong) {
		t.Fatalf("multiplication must bind tighter than addition")
	}
}

func TestParserPrintsPolishNotation(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"1 + 2", "(+ 1 2)"},
		{"(1 + 2.0)", "(group (+ 1 2.0))"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"6 / 3 / 2", "(/ (/ 6 3) 2)"},
		{"-1 * 2", "(* (- 1) 2)"},
		{"!!true", "(! (! true))"},
		{"--1", "(- (- 1))"},
		{"1 < 2 == 3 >= 4", "(== (< 1 2) (>= 3 4))"},
		{`"a" != nil`, `(!= "a" nil)`},
		{"false == !(1 <= 2)", "(== false (! (group (<= 1 2))))"},
		{"((1))", "(group (group 1))"},
		{"1 /* inline */ + 2 // trailing", "(+ 1 2)"},
		{"1 +\n2\n*\n3", "(+ 1 (* 2 3))"},
	}
	for _, tc := range cases {
		expr, err := ParseExpression(tc.source)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.source, err)
		}
		if got := Print(tc.source, expr); got != tc.want {
			t.Fatalf("parse %q: expected %s, got %s", tc.source, tc.want, got)
		}
	}
}

func TestParserStringUsesPreview(t *testing.T) {
	expr, err := ParseExpression("(1 + 2.0)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := expr.String(); got != "(group (+ 1 2.0))" {
		t.Fatalf("unexpected String(): %q", got)
	}
}

func TestParserGroupingSpan(t *testing.T) {
	source := "  (1 + 2) * 3"
	expr, err := ParseExpression(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	bin, ok := expr.(*Binary)
	if !ok {
		t.Fatalf("expected binary expression, got %T", expr)
	}
	group, ok := bin.Left.(*Grouping)
	if !ok {
		t.Fatalf("expected grouping, got %T", bin.Left)
	}
	if got := source[group.Span().Start:group.Span().End]; got != "(1 + 2)" {
		t.Fatalf("unexpected grouping text %q", got)
	}
	if got := source[expr.Span().Start:expr.Span().End]; got != "(1 + 2) * 3" {
		t.Fatalf("unexpected expression text %q", got)
	}
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		kind   ErrorKind
		pos    Position
		detail string
	}{
		{"unclosed paren", "(1 + 2", ErrParse, Position{Line: 1, Column: 7}, "expected ')', got end of input"},
		{"wrong closer", "(1 + 2}", ErrParse, Position{Line: 1, Column: 7}, "expected ')', got '}'"},
		{"unclosed paren before newline", "(1 + 2\n", ErrParse, Position{Line: 1, Column: 7}, "expected ')', got end of input"},
		{"missing operand before blank lines", "1 +\n\n", ErrParse, Position{Line: 1, Column: 4}, "expected expression, got end of input"},
		{"missing operand", "1 +", ErrParse, Position{Line: 1, Column: 4}, "expected expression, got end of input"},
		{"empty", "", ErrParse, Position{Line: 1, Column: 1}, "expected expression, got end of input"},
		{"only comments", "// nothing", ErrParse, Position{Line: 1, Column: 11}, "expected expression, got end of input"},
		{"identifier", "foo", ErrParse, Position{Line: 1, Column: 1}, "unexpected identifier 'foo'"},
		{"keyword", "1 + print", ErrParse, Position{Line: 1, Column: 5}, "unexpected 'print'"},
		{"trailing", "1 2", ErrParse, Position{Line: 1, Column: 3}, "unexpected number '2'"},
		{"invalid character", "1 + @", ErrInvalidCharacter, Position{Line: 1, Column: 5}, "unexpected '@'"},
		{"unterminated string", "1 +\n\"abc", ErrUnterminatedString, Position{Line: 2, Column: 1}, "missing closing '\"'"},
		{"unterminated comment", "(1 /* open", ErrUnterminatedComment, Position{Line: 1, Column: 4}, "missing closing '*/'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := ParseExpression(tc.source)
			if err == nil {
				t.Fatalf("expected error, got tree %s", Print(tc.source, expr))
			}
			if expr != nil {
				t.Fatalf("expected no partial tree, got %s", Print(tc.source, expr))
			}
			var diag *Error
			if !errors.As(err, &diag) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if diag.Kind != tc.kind {
				t.Fatalf("expected kind %v, got %v", tc.kind, diag.Kind)
			}
			if diag.Pos != tc.pos {
				t.Fatalf("expected position %v, got %v", tc.pos, diag.Pos)
			}
			if diag.Detail != tc.detail {
				t.Fatalf("expected detail %q, got %q", tc.detail, diag.Detail)
			}
		})
	}
}

func TestEndOfInputFrameShowsLastLine(t *testing.T) {
	_, err := ParseExpression("(1 + 2\n")
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "parse error, line 1\n(1 + 2\n------^"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestParserRejectsUnfilteredComments(t *testing.T) {
	source := "/* c */ 1"
	res, err := Tokenize(source, TokenizeOptions{KeepComments: true})
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	_, err = NewParser(source, res.Tokens).Parse()
	var diag *Error
	if !errors.As(err, &diag) || diag.Kind != ErrParse {
		t.Fatalf("expected parse error, got %v", err)
	}
	if diag.Detail != "unexpected comment" {
		t.Fatalf("unexpected detail %q", diag.Detail)
	}
}

func TestParserLeavesTrailingTokens(t *testing.T) {
	source := "1 2 3"
	p := NewParser(source, mustTokens(t, source))
	expr, err := p.Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := Print(source, expr); got != "1" {
		t.Fatalf("unexpected tree %s", got)
	}
	if p.Done() {
		t.Fatalf("expected unconsumed tokens")
	}
	if n := len(p.Remaining()); n != 2 {
		t.Fatalf("expected 2 remaining tokens, got %d", n)
	}
}

func TestParserErrorRendering(t *testing.T) {
	_, err := ParseExpression("1 +\n  (2 @ 3)")
	if err == nil {
		t.Fatalf("expected error")
	}
	want := strings.Join([]string{
		"invalid character, line 2",
		"  (2 @ 3)",
		"-----^",
	}, "\n")
	if got := err.Error(); got != want {
		t.Fatalf("unexpected rendering:\n%s\nwant:\n%s", got, want)
	}
}

func TestParserDeepNesting(t *testing.T) {
	depth := 500
	source := strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	expr, err := ParseExpression(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := Print(source, expr)
	if !strings.HasPrefix(got, "(group (group ") || strings.Count(got, "group") != depth {
		t.Fatalf("unexpected nesting in %q", got[:min(len(got), 40)])
	}
}

func TestEqualDistinguishesShapes(t *testing.T) {
	a, err := ParseExpression("-1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	b, err := ParseExpression("(1)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if Equal(a, b) {
		t.Fatalf("unary and grouping should differ")
	}
	if !Equal(a, a) {
		t.Fatalf("tree should equal itself")
	}
	if Equal(a, nil) || !Equal(nil, nil) {
		t.Fatalf("nil handling is wrong")
	}
}
