package minisql

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies statement failures.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	// No database selected, unknown database or table.
	KindSelection
	// Database or table already exists.
	KindExists
	// The statement doesn't have the shape its keyword requires.
	KindSyntax
	// Value count doesn't match column count.
	KindArity
	// A statement names a column the table doesn't have.
	KindUnknownColumn
)

// QueryError is a failed statement. Its message is shown to the user after
// the "ERROR: " prefix.
type QueryError struct {
	Kind ErrorKind
	msg  string
}

func (e *QueryError) Error() string {
	return e.msg
}

func newError(kind ErrorKind, format string, args ...any) error {
	return errors.WithStack(&QueryError{kind, fmt.Sprintf(format, args...)})
}

// KindOf returns the kind of a statement error, looking through wrappers.
func KindOf(err error) ErrorKind {
	if qe, ok := errors.Cause(err).(*QueryError); ok {
		return qe.Kind
	}
	return KindInternal
}

// message returns the text for the user, without any wrapping context.
func message(err error) string {
	return errors.Cause(err).Error()
}

var errNoDatabase = &QueryError{KindSelection, "No database selected. Use USE <dbname>;"}

func errUnknownDatabase(name string) error {
	return newError(KindSelection, "Unknown database '%s'", name)
}

func errUnknownTable(db, name string) error {
	return newError(KindSelection, "Table '%s.%s' doesn't exist", db, name)
}

func errUnknownColumn(name, where string) error {
	return newError(KindUnknownColumn, "Unknown column '%s' in '%s'", name, where)
}

func syntaxError(tr *tokenizer, t token) error {
	if t.t == tEnd {
		return newError(KindSyntax, "You have an error in your SQL syntax; unexpected end of statement")
	}
	return newError(KindSyntax, "You have an error in your SQL syntax; check the syntax near '%s'", tr.src[t.start:])
}
