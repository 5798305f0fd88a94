package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gaswelder/minisql"
)

const (
	continuationPrompt = "    -> "
	clearScreen        = "\033[H\033[2J"
)

// shell feeds input to a session and prints the results.
type shell struct {
	session *minisql.Session
	state   *stateFile
	logger  zerolog.Logger
	out     io.Writer
	// Number of statements that failed.
	failures int
}

// show prints a result. It returns false if the session should end.
func (sh *shell) show(r minisql.Result) bool {
	if r.ClearScreen {
		fmt.Fprint(sh.out, clearScreen)
	}
	if r.Text != "" {
		fmt.Fprintln(sh.out, r.Text)
	}
	if strings.HasPrefix(r.Text, "ERROR: ") {
		sh.failures++
	}
	if r.Changed {
		if err := sh.state.save(sh.session.Store); err != nil {
			sh.logger.Error().Err(err).Msg("failed to save state")
		}
	}
	return !r.Quit
}

// run executes a whole script.
func (sh *shell) run(script string) {
	for _, stmt := range minisql.SplitScript(script) {
		if !sh.show(sh.session.Exec(stmt)) {
			return
		}
	}
}

// repl reads statements line by line until the input ends or the user
// quits. Statements may span several lines.
func (sh *shell) repl(in io.Reader, prompt string) error {
	scanner := bufio.NewScanner(in)
	pending := ""
	for {
		if pending == "" {
			fmt.Fprint(sh.out, prompt)
		} else {
			fmt.Fprint(sh.out, continuationPrompt)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == `\c` {
			pending = ""
			continue
		}

		stmts, rest := minisql.SplitComplete(pending + line + "\n")
		pending = rest
		if strings.TrimSpace(pending) == "" {
			pending = ""
		}
		for _, stmt := range stmts {
			if !sh.show(sh.session.Exec(stmt)) {
				return nil
			}
		}
	}
	fmt.Fprintln(sh.out)
	return errors.Wrap(scanner.Err(), "failed to read input")
}
