package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mgomes/lox/lox"
)

// evaluation is the outcome of scanning and parsing one source text.
type evaluation struct {
	source string
	scan   *lox.ScanResult
	expr   lox.Expr

	// diags holds lexical diagnostics followed by at most one parse error,
	// ordered by offset.
	diags []*lox.Error

	// capErr is set when scanning stopped at the error cap.
	capErr error
}

func (e evaluation) ok() bool {
	return e.expr != nil && len(e.diags) == 0 && e.capErr == nil
}

func evaluate(source string, maxErrors int) evaluation {
	res, err := lox.Tokenize(source, lox.TokenizeOptions{MaxErrors: maxErrors})
	ev := evaluation{source: source, scan: res, diags: res.Errors()}
	if err != nil {
		ev.capErr = err
		return ev
	}

	expr, err := lox.NewParser(source, res.Tokens).ParseAll()
	if err == nil {
		ev.expr = expr
		return ev
	}

	var diag *lox.Error
	if !errors.As(err, &diag) {
		diag = &lox.Error{Kind: lox.ErrParse, Detail: err.Error()}
	}
	if !slices.ContainsFunc(ev.diags, func(d *lox.Error) bool { return sameDiagnostic(d, diag) }) {
		ev.diags = append(ev.diags, diag)
	}
	slices.SortStableFunc(ev.diags, func(a, b *lox.Error) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	return ev
}

// sameDiagnostic reports whether the parser surfaced a lexical error token
// that the scan already reported.
func sameDiagnostic(a, b *lox.Error) bool {
	return a.Kind == b.Kind && a.Span == b.Span
}

// tokenLine lists the tokens of an evaluation on one line.
func tokenLine(res *lox.ScanResult) string {
	if res == nil || len(res.Tokens) == 0 {
		return "(no tokens)"
	}
	parts := make([]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

// evalLine evaluates one prompt line and renders the reply shown to the
// user. The bool reports failure.
func evalLine(input string, maxErrors int, showTokens bool) (string, bool) {
	ev := evaluate(input, maxErrors)

	var b strings.Builder
	if showTokens {
		b.WriteString("tokens: ")
		b.WriteString(tokenLine(ev.scan))
		b.WriteString("\n")
	}
	if ev.ok() {
		b.WriteString(lox.Print(input, ev.expr))
		return b.String(), false
	}
	for i, diag := range ev.diags {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(diag.Error())
	}
	if ev.capErr != nil {
		if len(ev.diags) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(ev.capErr.Error())
	}
	return b.String(), true
}

var diagnosticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

func (a *app) runFile(cmd *cobra.Command, path string) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	ev := evaluate(source, a.cfg.Scanner.MaxErrors)
	a.logger.Debug("scanned file", "path", path, "tokens", len(ev.scan.Tokens), "diagnostics", len(ev.diags))
	if ev.ok() {
		fmt.Fprintln(cmd.OutOrStdout(), lox.Print(source, ev.expr))
		return nil
	}

	stderr := cmd.ErrOrStderr()
	for _, diag := range ev.diags {
		fmt.Fprintln(stderr, diagnosticStyle.Render(diag.Error()))
	}
	if ev.capErr != nil {
		a.logger.Warn("error cap reached", "path", path, "max_errors", a.cfg.Scanner.MaxErrors)
		return fmt.Errorf("%s: %w", path, ev.capErr)
	}
	return fmt.Errorf("%s: %d error(s)", path, len(ev.diags))
}
