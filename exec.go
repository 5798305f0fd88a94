package minisql

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Result is the outcome of one executed line.
type Result struct {
	// Text to append to the output, empty if there is nothing to show.
	Text string
	// The caller should clear its output.
	ClearScreen bool
	// The caller should end the session.
	Quit bool
	// The statement succeeded and changed databases, tables or rows.
	Changed bool
}

// Session executes statements against a store. It does no locking: callers
// sharing one store between sessions must serialize the calls.
type Session struct {
	Store  *Store
	Logger zerolog.Logger
	// Client label shown by STATUS.
	Client string
}

// NewSession returns a session over the given store that doesn't log.
func NewSession(s *Store) *Session {
	return &Session{Store: s, Logger: zerolog.Nop(), Client: DefaultClient}
}

// Execute runs one statement or meta-command against the store.
func Execute(s *Store, text string) Result {
	return NewSession(s).Exec(text)
}

// Exec runs one statement or meta-command. Failures are reported in the
// result text and leave the store unchanged.
func (e *Session) Exec(text string) Result {
	text = strings.TrimSpace(text)
	if r, ok := e.meta(text); ok {
		return r
	}
	stmt, err := Parse(text)
	if err != nil {
		return e.fail(text, err)
	}
	e.Logger.Debug().Str("sql", stmt.String()).Bool("mutates", stmt.mutates()).Msg("executing statement")
	out, err := stmt.exec(e.Store)
	if err != nil {
		return e.fail(text, err)
	}
	e.Store.History = append(e.Store.History, text)
	return Result{Text: out, Changed: stmt.mutates()}
}

func (e *Session) fail(text string, err error) Result {
	e.Logger.Info().Err(err).Str("input", text).Msg("statement failed")
	return Result{Text: "ERROR: " + message(err)}
}

// ExecScript runs every statement of a script in order.
func (e *Session) ExecScript(script string) []Result {
	var results []Result
	for _, stmt := range SplitScript(script) {
		results = append(results, e.Exec(stmt))
	}
	return results
}

var metaCommands = map[string]string{
	"help":     "help",
	`\h`:       "help",
	"exit":     "quit",
	"quit":     "quit",
	"history":  "history",
	"status":   "status",
	`\s`:       "status",
	"clear":    "clear",
	`\! cls`:   "clear",
	`\! clear`: "clear",
	`\c`:       "cancel",
}

// metaCommand returns the client command a line stands for, if any.
func metaCommand(line string) (string, bool) {
	cmd, ok := metaCommands[strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ";")))]
	return cmd, ok
}

// IsMetaCommand tells whether a line is a client command that needs no
// statement terminator.
func IsMetaCommand(line string) bool {
	_, ok := metaCommand(line)
	return ok
}

// meta runs client commands that bypass SQL parsing.
func (e *Session) meta(text string) (Result, bool) {
	cmd, ok := metaCommand(text)
	if !ok {
		return Result{}, false
	}
	switch cmd {
	case "help":
		return Result{Text: helpText}, true
	case "quit":
		return Result{Text: "Bye", Quit: true}, true
	case "history":
		return Result{Text: e.history()}, true
	case "status":
		return Result{Text: e.status()}, true
	case "clear":
		return Result{ClearScreen: true}, true
	}
	return Result{}, true
}

func (e *Session) history() string {
	if len(e.Store.History) == 0 {
		return "No history."
	}
	lines := make([]string, len(e.Store.History))
	for i, h := range e.Store.History {
		lines[i] = fmt.Sprintf("%4d  %s", i+1, h)
	}
	return strings.Join(lines, "\n")
}

func (e *Session) status() string {
	current := e.Store.Current
	if current == "" {
		current = "(none)"
	}
	rule := strings.Repeat("-", 14)
	return strings.Join([]string{
		rule,
		fmt.Sprintf("%s  Ver %s", e.Client, Version),
		"",
		fmt.Sprintf("Current database:\t%s", current),
		fmt.Sprintf("Databases:\t\t%d", len(e.Store.Databases)),
		fmt.Sprintf("Statements executed:\t%d", len(e.Store.History)),
		rule,
	}, "\n")
}

const helpText = `List of commands:
help    (\h)  Display this help.
status  (\s)  Show the current database and session counters.
history       Show the statements executed so far.
clear   (\! clear, \! cls)  Clear the screen.
\c            Cancel the current input.
exit, quit    Leave the session.

Statements end with ";", or with "\G" for vertical output:
CREATE DATABASE [IF NOT EXISTS] name
DROP DATABASE [IF EXISTS] name
SHOW DATABASES
USE name
CREATE TABLE [IF NOT EXISTS] name (column type [PRIMARY KEY] [AUTO_INCREMENT], ...)
DROP TABLE [IF EXISTS] name
SHOW TABLES
DESCRIBE name
INSERT INTO name [(columns)] VALUES (values), ...
SELECT * | COUNT(*) | columns FROM name [WHERE condition] [ORDER BY column [ASC|DESC], ...] [LIMIT n] [OFFSET n]
UPDATE name SET column = value, ... [WHERE condition]
DELETE FROM name [WHERE condition]`

// SplitScript splits text into statements ending with ";" or "\G" outside
// quotes. A line holding only a meta-command is a statement of its own.
// Trailing text without a terminator is returned as the last statement.
func SplitScript(script string) []string {
	stmts, rest := SplitComplete(script)
	if rest = strings.TrimSpace(rest); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

// SplitComplete is like SplitScript, but returns the unterminated tail
// separately and untrimmed, so that more input can be appended to it.
func SplitComplete(script string) ([]string, string) {
	var stmts []string
	var quote byte
	start := 0
	flush := func(end int) {
		if s := strings.TrimSpace(script[start:end]); s != "" {
			stmts = append(stmts, s)
		}
		start = end
	}
	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == ';':
			flush(i + 1)
		case c == '\\' && i+1 < len(script) && (script[i+1] == 'G' || script[i+1] == 'g'):
			i++
			flush(i + 1)
		case c == '\n':
			if IsMetaCommand(script[start:i]) {
				flush(i)
			}
		}
	}
	return stmts, script[start:]
}
