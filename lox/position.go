package lox

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position identifies a 1-based line and column in the source. Columns count
// runes, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// cursor walks a source string one rune at a time while tracking line and
// column. A cursor is a plain value: copying it yields an independent
// lookahead that leaves the original untouched.
type cursor struct {
	input string

	// pos is the byte offset of the next unread rune.
	pos int

	// line is 1-based. column is 0 right after a newline (and before the
	// first rune), otherwise the 1-based rune index of the last rune read.
	line   int
	column int

	// startOfLine is the byte offset where the current line begins.
	startOfLine int
}

func newCursor(input string) cursor {
	return cursor{input: input, line: 1}
}

func (c *cursor) next() (rune, bool) {
	if c.pos >= len(c.input) {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(c.input[c.pos:])
	c.pos += w
	if r == '\n' {
		c.line++
		c.column = 0
		c.startOfLine = c.pos
	} else {
		c.column++
	}
	return r, true
}

func (c *cursor) peek() (rune, bool) {
	if c.pos >= len(c.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.input[c.pos:])
	return r, true
}

func (c *cursor) peekIs(want rune) bool {
	r, ok := c.peek()
	return ok && r == want
}

// nextPosition is where the next unread rune sits.
func (c *cursor) nextPosition() Position {
	return Position{Line: c.line, Column: c.column + 1}
}

// Locate maps a byte offset in source to its line and column. Offsets past
// the end clamp to the position just after the last rune.
func Locate(source string, offset int) Position {
	offset = max(0, min(offset, len(source)))
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	return Position{
		Line:   strings.Count(source[:offset], "\n") + 1,
		Column: utf8.RuneCountInString(source[lineStart:offset]) + 1,
	}
}

// sourceLine returns the full text of the given 1-based line without its
// line terminator.
func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	rest := source
	for i := 1; i < line; i++ {
		idx := strings.IndexByte(rest, '\n')
		if idx < 0 {
			return ""
		}
		rest = rest[idx+1:]
	}
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSuffix(rest, "\r")
}
