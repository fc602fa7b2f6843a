package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mgomes/lox/lox"
)

type tokenRecord struct {
	Type    string `json:"type" yaml:"type"`
	Lexeme  string `json:"lexeme" yaml:"lexeme"`
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Start   uint32 `json:"start" yaml:"start"`
	End     uint32 `json:"end" yaml:"end"`
}

func newTokensCmd(a *app) *cobra.Command {
	var (
		format   string
		comments bool
	)

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			res, scanErr := lox.Tokenize(source, lox.TokenizeOptions{
				MaxErrors:    a.cfg.Scanner.MaxErrors,
				KeepComments: comments,
			})
			a.logger.Debug("tokenized", "path", args[0], "tokens", len(res.Tokens))

			if err := writeTokens(cmd.OutOrStdout(), format, tokenRecords(res)); err != nil {
				return err
			}
			if scanErr != nil {
				return fmt.Errorf("%s: %w", args[0], scanErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&comments, "comments", false, "include comment tokens")
	return cmd
}

func tokenRecords(res *lox.ScanResult) []tokenRecord {
	records := make([]tokenRecord, len(res.Tokens))
	for i, tok := range res.Tokens {
		rec := tokenRecord{
			Type:   tok.Type.String(),
			Lexeme: tok.Lexeme(res.Source),
			Line:   res.Positions[i].Line,
			Column: res.Positions[i].Column,
			Start:  tok.Span.Start,
			End:    tok.Span.End,
		}
		if tok.Type == lox.TokenKeyword {
			rec.Keyword = tok.Keyword.String()
		}
		records[i] = rec
	}
	return records
}

func writeTokens(w io.Writer, format string, records []tokenRecord) error {
	switch format {
	case "text", "":
		return writeTokenTable(w, records)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

var tokenHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var tokenCellStyle = lipgloss.NewStyle().Padding(0, 1)

func writeTokenTable(w io.Writer, records []tokenRecord) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("POS", "TYPE", "LEXEME", "SPAN").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tokenHeaderStyle
			}
			return tokenCellStyle
		})
	for _, rec := range records {
		t.Row(
			strconv.Itoa(rec.Line)+":"+strconv.Itoa(rec.Column),
			rec.Type,
			strconv.Quote(rec.Lexeme),
			lox.Span{Start: rec.Start, End: rec.End}.String(),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
