package minisql

import (
	"strings"
)

// Parsebuf is a string container with utility methods for writing hand-crafted
// scanners.
type Parsebuf struct {
	pos int
	str string
}

// NewParsebuf returns a new parsebuf.
func NewParsebuf(s string) *Parsebuf {
	return &Parsebuf{0, s}
}

// More returns true if there are more characters to read.
func (b *Parsebuf) More() bool {
	return b.pos < len(b.str)
}

// Pos returns the byte offset of the next unread character.
func (b *Parsebuf) Pos() int {
	return b.pos
}

// Get reads one character. Returns empty string if there's no more characters.
func (b *Parsebuf) Get() string {
	if !b.More() {
		return ""
	}
	s := b.str[b.pos : b.pos+1]
	b.pos++
	return s
}

// Peek return what Get would return, without reading it.
func (b *Parsebuf) Peek() string {
	if !b.More() {
		return ""
	}
	return b.str[b.pos : b.pos+1]
}

// Peek2 returns the next two characters without reading them.
func (b *Parsebuf) Peek2() string {
	if b.pos+2 > len(b.str) {
		return b.Rest()
	}
	return b.str[b.pos : b.pos+2]
}

// Except reads a sequence of characters not in the given set.
func (b *Parsebuf) Except(stop string) string {
	start := b.pos
	for b.More() && !strings.Contains(stop, b.Peek()) {
		b.pos++
	}
	return b.str[start:b.pos]
}

// Space reads a sequence of conventional spaces.
func (b *Parsebuf) Space() string {
	start := b.pos
	for b.More() && strings.Contains(" \n\t\r", b.Peek()) {
		b.pos++
	}
	return b.str[start:b.pos]
}

// Quoted reads a string delimited by the quote character at the current
// position. A backslash escapes the character after it. A missing closing
// quote is not an error: the string runs to the end of the buffer.
func (b *Parsebuf) Quoted() (string, bool) {
	q := b.Get()
	s := strings.Builder{}
	for b.More() {
		c := b.Get()
		if c == "\\" {
			s.WriteString(b.Get())
			continue
		}
		if c == q {
			return s.String(), true
		}
		s.WriteString(c)
	}
	return s.String(), false
}

// Rest returns the unconsumed part of the buffer's string.
func (b *Parsebuf) Rest() string {
	return b.str[b.pos:]
}
