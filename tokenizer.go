package minisql

import (
	"fmt"
	"strings"
)

type tokenType string

const (
	tEnd    tokenType = "end"
	tString tokenType = "string"
	tOp     tokenType = "op"
	tSym    tokenType = "sym"
	tWord   tokenType = "word"
)

type token struct {
	t   tokenType
	val string
	// Quote character of a string token.
	quote byte
	// Byte offsets of the token in the source text, quotes included.
	start, end int
}

func (t token) String() string {
	return fmt.Sprintf("[%s %s]", t.t, t.val)
}

const (
	symbols = ",();=<>!*"
	quotes  = "'\"`"
	spaces  = " \n\t\r"
)

var operators = []string{"<=", ">=", "<>", "!="}

// tokenize splits the text into tokens. It never fails: an unterminated quote
// simply runs to the end of the input.
func tokenize(s string) []token {
	b := NewParsebuf(s)
	var r []token
	for {
		b.Space()
		if !b.More() {
			break
		}
		start := b.Pos()
		c := b.Peek()
		if strings.Contains(quotes, c) {
			val, _ := b.Quoted()
			r = append(r, token{t: tString, val: val, quote: c[0], start: start, end: b.Pos()})
			continue
		}
		if op := b.Peek2(); isOperator(op) {
			b.Get()
			b.Get()
			r = append(r, token{t: tOp, val: op, start: start, end: b.Pos()})
			continue
		}
		if strings.Contains(symbols, c) {
			b.Get()
			r = append(r, token{t: tSym, val: c, start: start, end: b.Pos()})
			continue
		}
		w := b.Except(symbols + quotes + spaces)
		r = append(r, token{t: tWord, val: w, start: start, end: b.Pos()})
	}
	return r
}

func isOperator(s string) bool {
	for _, op := range operators {
		if s == op {
			return true
		}
	}
	return false
}

// tokenizer is a cursor over the tokens of one statement.
type tokenizer struct {
	src    string
	tokens []token
	pos    int
}

func newTokenizer(s string) *tokenizer {
	return &tokenizer{src: s, tokens: tokenize(s)}
}

func (tr *tokenizer) peek() token {
	if tr.pos >= len(tr.tokens) {
		return token{t: tEnd, start: len(tr.src), end: len(tr.src)}
	}
	return tr.tokens[tr.pos]
}

func (tr *tokenizer) next() token {
	t := tr.peek()
	if t.t != tEnd {
		tr.pos++
	}
	return t
}

func (tr *tokenizer) eat(t tokenType, val string) bool {
	p := tr.peek()
	if p.t == t && p.val == val {
		tr.next()
		return true
	}
	return false
}

// eati eats a word case-insensitively.
func (tr *tokenizer) eati(val string) bool {
	p := tr.peek()
	if p.t == tWord && strings.EqualFold(p.val, val) {
		tr.next()
		return true
	}
	return false
}

// eatSeq eats a sequence of words, or nothing at all.
func (tr *tokenizer) eatSeq(words ...string) bool {
	save := tr.pos
	for _, w := range words {
		if !tr.eati(w) {
			tr.pos = save
			return false
		}
	}
	return true
}

// isKeyword tells whether the next token is the given word.
func (tr *tokenizer) isKeyword(val string) bool {
	p := tr.peek()
	return p.t == tWord && strings.EqualFold(p.val, val)
}

// name reads a database, table or column name: a bare word or a quoted one.
func (tr *tokenizer) name() (string, error) {
	t := tr.next()
	switch t.t {
	case tWord:
		return t.val, nil
	case tString:
		if t.quote == '`' || t.quote == '"' {
			return t.val, nil
		}
	}
	return "", syntaxError(tr, t)
}

// group reads a parenthesized span and returns the raw text between the
// parentheses. Nested parentheses are kept in the returned text.
func (tr *tokenizer) group() (string, error) {
	open := tr.next()
	if open.t != tSym || open.val != "(" {
		return "", syntaxError(tr, open)
	}
	depth := 1
	for {
		t := tr.next()
		switch {
		case t.t == tEnd:
			return "", syntaxError(tr, t)
		case t.t == tSym && t.val == "(":
			depth++
		case t.t == tSym && t.val == ")":
			depth--
			if depth == 0 {
				return tr.src[open.end:t.start], nil
			}
		}
	}
}

// rawUntil consumes tokens up to (not including) the first top-level word
// from stop, and returns the raw source text of what was consumed.
func (tr *tokenizer) rawUntil(stop ...string) string {
	first := tr.peek()
	last := first.start
	for {
		t := tr.peek()
		if t.t == tEnd {
			break
		}
		if t.t == tWord && containsFold(stop, t.val) {
			break
		}
		tr.next()
		last = t.end
	}
	return strings.TrimSpace(tr.src[first.start:last])
}

func (tr *tokenizer) done() bool {
	return tr.peek().t == tEnd
}

func containsFold(list []string, s string) bool {
	for _, x := range list {
		if strings.EqualFold(x, s) {
			return true
		}
	}
	return false
}
