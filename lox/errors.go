package lox

// ErrorKind classifies a diagnostic.
type ErrorKind uint8

const (
	ErrInvalidCharacter ErrorKind = iota + 1
	ErrUnterminatedString
	ErrUnterminatedComment
	ErrParse
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidCharacter:
		return "invalid character"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrUnterminatedComment:
		return "unterminated comment"
	case ErrParse:
		return "parse error"
	default:
		return "error"
	}
}

// Error is a located diagnostic. Lexical and syntax problems share it so
// every failure renders the same way.
type Error struct {
	Kind       ErrorKind
	Pos        Position
	Span       Span
	SourceLine string

	// Detail is a short explanation such as "expected ')'". It is not part
	// of Error(); tools that show one line per problem use it.
	Detail string
}

func (e *Error) Error() string {
	return formatCaretFrame(e.Kind.String(), e.Pos, e.SourceLine)
}

// Message is the one-line form: the kind, plus the detail when there is one.
func (e *Error) Message() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

func newError(kind ErrorKind, source string, span Span, detail string) *Error {
	pos := Locate(source, int(span.Start))
	return &Error{
		Kind:       kind,
		Pos:        pos,
		Span:       span,
		SourceLine: sourceLine(source, pos.Line),
		Detail:     detail,
	}
}

// TokenError converts a lexical error token into a diagnostic. It returns
// nil for tokens that are not errors.
func TokenError(source string, tok Token) *Error {
	switch tok.Type {
	case TokenInvalidCharacter:
		return newError(ErrInvalidCharacter, source, tok.Span, "unexpected "+quoteLexeme(tok.Lexeme(source)))
	case TokenUnterminatedString:
		return newError(ErrUnterminatedString, source, tok.Span, "missing closing '\"'")
	case TokenUnterminatedBlockComment:
		return newError(ErrUnterminatedComment, source, tok.Span, "missing closing '*/'")
	default:
		return nil
	}
}

func quoteLexeme(s string) string {
	return "'" + s + "'"
}
