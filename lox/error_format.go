package lox

import (
	"fmt"
	"strings"
)

// formatCaretFrame renders
//
//	<name>, line <n>
//	<source line>
//	-----^
//
// with the caret under the 1-based column.
func formatCaretFrame(name string, pos Position, lineText string) string {
	column := max(pos.Column, 1)
	return fmt.Sprintf("%s, line %d\n%s\n%s^", name, pos.Line, lineText, strings.Repeat("-", column-1))
}
