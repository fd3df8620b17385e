package zyr

import (
	"strings"
)

// the byte peek() reports once the line is used up
const terminator byte = 0

// cursor scans one input line. It never moves past len(buf);
// reading at the end yields the terminator.
type cursor struct {
	buf string
	pos int
}

func (c *cursor) reset(line string) {
	// a NUL ends the line, as it would in a C string
	if i := strings.IndexByte(line, terminator); i >= 0 {
		line = line[:i]
	}
	c.buf = line
	c.pos = 0
}

func (c *cursor) peek() byte {
	return c.peekAt(0)
}

func (c *cursor) peekAt(ahead int) byte {
	if c.pos+ahead >= len(c.buf) {
		return terminator
	}
	return c.buf[c.pos+ahead]
}

func (c *cursor) advance() {
	if c.pos < len(c.buf) {
		c.pos++
	}
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.buf)
}

// rest is the unread remainder of the line.
func (c *cursor) rest() string {
	return c.buf[c.pos:]
}

func (c *cursor) discard() {
	c.pos = len(c.buf)
}

// skipSpaces steps over blanks and tabs (not newlines). A ';'
// comments out the rest of the line.
func (c *cursor) skipSpaces() {
	for c.peek() == ' ' || c.peek() == '\t' {
		c.advance()
	}
	if c.peek() == ';' {
		c.discard()
	}
}

// isSeparator reports whether ch ends a symbol or number. It is
// not the whitespace set: quote, semicolon and parens end a token
// too.
func isSeparator(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n',
		terminator, '\'',
		';', ')', '(':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
