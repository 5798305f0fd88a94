package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaswelder/minisql"
)

func newShell(state *stateFile) (*shell, *bytes.Buffer) {
	out := &bytes.Buffer{}
	store, err := state.load()
	if err != nil {
		panic(err)
	}
	return &shell{
		session: minisql.NewSession(store),
		state:   state,
		logger:  zerolog.Nop(),
		out:     out,
	}, out
}

func TestREPL(t *testing.T) {
	sh, out := newShell(&stateFile{})
	input := strings.Join([]string{
		"CREATE DATABASE shop;",
		"USE shop",
		";",
		"CREATE TABLE items (",
		"  id INT AUTO_INCREMENT,",
		"  title TEXT);",
		"INSERT INTO items (title) VALUES ('a;b');",
		"SELECT *",
		`\c`,
		`SELECT title FROM items\G`,
		"status",
		"SELECT * FROM nope;",
		"exit",
		"SELECT 1;",
	}, "\n")
	require.NoError(t, sh.repl(strings.NewReader(input), "> "))

	text := out.String()
	assert.Contains(t, text, "> Query OK, 1 row affected")
	assert.Contains(t, text, "    -> Database changed")
	assert.Contains(t, text, "title: a;b")
	assert.Contains(t, text, "Current database:\tshop")
	assert.Contains(t, text, "ERROR: Table 'shop.nope' doesn't exist")
	assert.True(t, strings.HasSuffix(text, "Bye\n"))
	assert.Equal(t, 1, sh.failures)
}

func TestRunScriptStopsOnQuit(t *testing.T) {
	sh, out := newShell(&stateFile{})
	sh.run("CREATE DATABASE a; quit\nCREATE DATABASE b;")
	assert.Equal(t, "Query OK, 1 row affected\nBye\n", out.String())
	assert.Len(t, sh.session.Store.Databases, 1)
}

func TestStatePersists(t *testing.T) {
	state := &stateFile{path: filepath.Join(t.TempDir(), "state.json"), client: "test"}

	sh, _ := newShell(state)
	sh.run(`
CREATE DATABASE shop;
USE shop;
CREATE TABLE items (id INT AUTO_INCREMENT, title TEXT);
INSERT INTO items (title) VALUES ('pen'), ('cup');`)
	require.Equal(t, 0, sh.failures)

	sh, out := newShell(state)
	sh.run("SELECT COUNT(*) FROM items; INSERT INTO items (title) VALUES ('box'); SELECT id FROM items WHERE title = 'box';")
	assert.Equal(t, 0, sh.failures)
	assert.Contains(t, out.String(), "| 2        |")
	assert.Contains(t, out.String(), "| 3  |")
}

func TestLoadMissingState(t *testing.T) {
	state := &stateFile{path: filepath.Join(t.TempDir(), "missing.json")}
	store, err := state.load()
	require.NoError(t, err)
	assert.Empty(t, store.Databases)
}
