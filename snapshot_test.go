package minisql

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSnapshotRoundTrip(t *testing.T) {
	e := school(t)
	e.Exec("INSERT INTO students VALUES (NULL, 'Dan', NULL)")

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, e.Store.Snapshot("test")); err != nil {
		t.Fatal(err)
	}
	snap, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Restore(snap)
	if err != nil {
		t.Fatal(err)
	}

	r := NewSession(restored)
	queries := []string{
		"SELECT * FROM students ORDER BY id DESC",
		"DESCRIBE students",
		"SHOW DATABASES",
		"history",
		"INSERT INTO students (name) VALUES ('Eve')",
		"SELECT id FROM students WHERE name = 'Eve'",
	}
	for _, q := range queries {
		want := e.Exec(q).Text
		got := r.Exec(q).Text
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s:\n%s", q, diff)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := school(t)
	snap := e.Store.Snapshot(DefaultClient)
	e.Exec("DELETE FROM students")
	e.Exec("DROP TABLE students")
	if n := len(snap.Databases[0].Tables[0].Rows); n != 2 {
		t.Fatalf("snapshot has %d rows, want 2", n)
	}
	if snap.Client != DefaultClient || snap.Version != Version {
		t.Fatalf("unexpected header: %s %s", snap.Client, snap.Version)
	}
}

func TestRestoreErrors(t *testing.T) {
	cc := []struct {
		name, json, err string
	}{
		{
			"duplicate database",
			`{"databases": [{"name": "a"}, {"name": "a"}]}`,
			`duplicate database "a"`,
		},
		{
			"missing column value",
			`{"databases": [{"name": "a", "tables": [{"name": "t", "columns": [{"name": "x"}, {"name": "y"}], "rows": [{"x": 1, "z": 2}]}]}]}`,
			`table "t", row 1: missing value for column "y"`,
		},
		{
			"short row",
			`{"databases": [{"name": "a", "tables": [{"name": "t", "columns": [{"name": "x"}], "rows": [{}]}]}]}`,
			`table "t", row 1: row has 0 values for 1 columns`,
		},
		{
			"counter for unknown table",
			`{"databases": [{"name": "a"}], "autoIncrement": [{"database": "a", "table": "t", "column": "id", "next": 3}]}`,
			`counter for unknown table "a"."t"`,
		},
		{
			"counter for unknown column",
			`{"databases": [{"name": "a", "tables": [{"name": "t", "columns": [{"name": "id"}]}]}], "autoIncrement": [{"database": "a", "table": "t", "column": "n", "next": 3}]}`,
			`counter for unknown column "n" in table "t"`,
		},
		{
			"unknown current database",
			`{"databases": [], "current": "b"}`,
			`current database "b" is not in the snapshot`,
		},
	}
	for _, c := range cc {
		t.Run(c.name, func(t *testing.T) {
			snap, err := ReadSnapshot(strings.NewReader(c.json))
			if err != nil {
				t.Fatal(err)
			}
			_, err = Restore(snap)
			if err == nil {
				t.Fatal("expected an error")
			}
			if diff := cmp.Diff(c.err, err.Error()); diff != "" {
				t.Fatalf("%s", diff)
			}
		})
	}
}

func TestReadSnapshotVersion(t *testing.T) {
	_, err := ReadSnapshot(strings.NewReader(`{"version": "2.0"}`))
	if err == nil || !strings.Contains(err.Error(), "unsupported snapshot version") {
		t.Fatalf("got %v", err)
	}
}
