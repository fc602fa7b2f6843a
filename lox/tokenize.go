package lox

import (
	"errors"
	"fmt"
)

// ErrTooManyErrors reports that Tokenize gave up after hitting its error cap.
var ErrTooManyErrors = errors.New("too many lexical errors")

type TokenizeOptions struct {
	// MaxErrors caps the number of error tokens accepted. Zero means no cap.
	MaxErrors int

	// KeepComments retains comment tokens, which are dropped by default so
	// the result can go straight to the parser.
	KeepComments bool
}

// ScanResult holds the tokens of one source text and where each starts.
type ScanResult struct {
	Source    string
	Tokens    []Token
	Positions []Position
}

// Tokenize drains a Scanner over source. When the error cap is exceeded it
// stops early and returns what it has together with ErrTooManyErrors.
func Tokenize(source string, opts TokenizeOptions) (*ScanResult, error) {
	s := NewScanner(source)
	res := &ScanResult{Source: source}
	errCount := 0
	for tok := range s.All() {
		if tok.Type.IsComment() && !opts.KeepComments {
			continue
		}
		res.Tokens = append(res.Tokens, tok)
		res.Positions = append(res.Positions, s.Position())
		if !tok.Type.IsError() {
			continue
		}
		errCount++
		if opts.MaxErrors > 0 && errCount > opts.MaxErrors {
			return res, fmt.Errorf("%w: more than %d", ErrTooManyErrors, opts.MaxErrors)
		}
	}
	return res, nil
}

// Errors converts every lexical error token into a diagnostic.
func (r *ScanResult) Errors() []*Error {
	var out []*Error
	for _, tok := range r.Tokens {
		if err := TokenError(r.Source, tok); err != nil {
			out = append(out, err)
		}
	}
	return out
}
