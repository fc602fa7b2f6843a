package lox

import "strings"

// Print renders expr in Polish notation: "1 + 2" becomes "(+ 1 2)" and a
// parenthesized expression becomes "(group ...)". Literal text comes from
// source; with an empty source the tokens' inline previews are used.
func Print(source string, expr Expr) string {
	var b strings.Builder
	p := printer{source: source, b: &b}
	p.expr(expr)
	return b.String()
}

type printer struct {
	source string
	b      *strings.Builder
}

func (p printer) expr(expr Expr) {
	switch e := expr.(type) {
	case *Binary:
		p.b.WriteByte('(')
		p.token(e.Operator)
		p.b.WriteByte(' ')
		p.expr(e.Left)
		p.b.WriteByte(' ')
		p.expr(e.Right)
		p.b.WriteByte(')')
	case *Grouping:
		p.b.WriteString("(group ")
		p.expr(e.Inner)
		p.b.WriteByte(')')
	case *Literal:
		p.token(e.Value)
	case *Unary:
		p.b.WriteByte('(')
		p.token(e.Operator)
		p.b.WriteByte(' ')
		p.expr(e.Right)
		p.b.WriteByte(')')
	case nil:
		p.b.WriteString("<nil>")
	}
}

func (p printer) token(tok Token) {
	if p.source != "" {
		p.b.WriteString(tok.Lexeme(p.source))
		return
	}
	p.b.WriteString(tok.String())
}
