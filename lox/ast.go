package lox

// Expr is a node of the expression tree. Nodes hold tokens by value; the
// text behind them stays in the source they were scanned from.
type Expr interface {
	Span() Span
	String() string
	exprNode()
}

type Binary struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (e *Binary) exprNode()      {}
func (e *Binary) String() string { return Print("", e) }
func (e *Binary) Span() Span {
	return Span{Start: e.Left.Span().Start, End: e.Right.Span().End}
}

type Grouping struct {
	Inner Expr
	span  Span
}

func (e *Grouping) exprNode()      {}
func (e *Grouping) String() string { return Print("", e) }
func (e *Grouping) Span() Span     { return e.span }

type Literal struct {
	Value Token
}

func (e *Literal) exprNode()      {}
func (e *Literal) String() string { return Print("", e) }
func (e *Literal) Span() Span     { return e.Value.Span }

type Unary struct {
	Operator Token
	Right    Expr
}

func (e *Unary) exprNode()      {}
func (e *Unary) String() string { return Print("", e) }
func (e *Unary) Span() Span {
	return Span{Start: e.Operator.Span.Start, End: e.Right.Span().End}
}

// Equal reports whether two trees have the same shape and were built from
// the same tokens.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Operator.Equal(y.Operator) && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Grouping:
		y, ok := b.(*Grouping)
		return ok && Equal(x.Inner, y.Inner)
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Value.Equal(y.Value)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Operator.Equal(y.Operator) && Equal(x.Right, y.Right)
	case nil:
		return b == nil
	default:
		return false
	}
}
