package minisql

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Version is the snapshot format and client version.
	Version = "1.0"
	// DefaultClient is the client label used when none is configured.
	DefaultClient = "minisql"
)

// Snapshot is a plain structural copy of a store, suitable for export.
type Snapshot struct {
	Version       string             `json:"version"`
	Client        string             `json:"client"`
	Databases     []DatabaseSnapshot `json:"databases"`
	Current       string             `json:"current"`
	History       []string           `json:"history"`
	AutoIncrement []CounterSnapshot  `json:"autoIncrement"`
}

// CounterSnapshot is the next auto-increment value of one column.
type CounterSnapshot struct {
	Database string `json:"database"`
	Table    string `json:"table"`
	Column   string `json:"column"`
	Next     int    `json:"next"`
}

type DatabaseSnapshot struct {
	Name   string          `json:"name"`
	Tables []TableSnapshot `json:"tables"`
}

type TableSnapshot struct {
	Name    string           `json:"name"`
	Columns []ColumnSnapshot `json:"columns"`
	Rows    []Row            `json:"rows"`
}

type ColumnSnapshot struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	AutoIncrement bool   `json:"autoIncrement"`
	PrimaryKey    bool   `json:"primaryKey"`
}

// Snapshot copies the store. The snapshot shares nothing with the store.
func (s *Store) Snapshot(client string) Snapshot {
	snap := Snapshot{
		Version:       Version,
		Client:        client,
		Databases:     []DatabaseSnapshot{},
		Current:       s.Current,
		History:       append([]string{}, s.History...),
		AutoIncrement: []CounterSnapshot{},
	}
	for _, db := range s.Databases {
		d := DatabaseSnapshot{Name: db.Name, Tables: []TableSnapshot{}}
		for _, t := range db.Tables {
			ts := TableSnapshot{Name: t.Name, Columns: []ColumnSnapshot{}, Rows: []Row{}}
			for _, c := range t.Columns {
				ts.Columns = append(ts.Columns, ColumnSnapshot(c))
				if next, ok := s.AutoIncrement[CounterKey{db.Name, t.Name, c.Name}]; ok {
					snap.AutoIncrement = append(snap.AutoIncrement, CounterSnapshot{db.Name, t.Name, c.Name, next})
				}
			}
			for _, r := range t.Rows {
				ts.Rows = append(ts.Rows, copyRow(r))
			}
			d.Tables = append(d.Tables, ts)
		}
		snap.Databases = append(snap.Databases, d)
	}
	return snap
}

// Restore builds a store from a snapshot, checking that names are unique
// and that every row has exactly the columns of its table.
func Restore(snap Snapshot) (*Store, error) {
	s := NewStore()
	for _, d := range snap.Databases {
		if s.database(d.Name) != nil {
			return nil, errors.Errorf("duplicate database %q", d.Name)
		}
		db := &Database{Name: d.Name}
		for _, ts := range d.Tables {
			if db.table(ts.Name) != nil {
				return nil, errors.Errorf("duplicate table %q in database %q", ts.Name, d.Name)
			}
			t := &Table{Name: ts.Name}
			for _, c := range ts.Columns {
				if _, ok := t.column(c.Name); ok {
					return nil, errors.Errorf("duplicate column %q in table %q", c.Name, ts.Name)
				}
				t.Columns = append(t.Columns, Column(c))
			}
			for i, r := range ts.Rows {
				if err := checkRow(t, r); err != nil {
					return nil, errors.Wrapf(err, "table %q, row %d", ts.Name, i+1)
				}
				t.Rows = append(t.Rows, copyRow(r))
			}
			db.Tables = append(db.Tables, t)
		}
		s.Databases = append(s.Databases, db)
	}
	if snap.Current != "" && s.database(snap.Current) == nil {
		return nil, errors.Errorf("current database %q is not in the snapshot", snap.Current)
	}
	s.Current = snap.Current
	s.History = append(s.History, snap.History...)
	for _, c := range snap.AutoIncrement {
		db := s.database(c.Database)
		if db == nil || db.table(c.Table) == nil {
			return nil, errors.Errorf("counter for unknown table %q.%q", c.Database, c.Table)
		}
		col, ok := db.table(c.Table).column(c.Column)
		if !ok {
			return nil, errors.Errorf("counter for unknown column %q in table %q", c.Column, c.Table)
		}
		s.AutoIncrement[CounterKey{c.Database, c.Table, col.Name}] = c.Next
	}
	return s, nil
}

func checkRow(t *Table, r Row) error {
	if len(r) != len(t.Columns) {
		return errors.Errorf("row has %d values for %d columns", len(r), len(t.Columns))
	}
	for _, c := range t.Columns {
		if _, ok := r[c.Name]; !ok {
			return errors.Errorf("missing value for column %q", c.Name)
		}
	}
	return nil
}

func copyRow(r Row) Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// WriteSnapshot encodes a snapshot as indented JSON.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(snap), "failed to encode snapshot")
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(bufio.NewReader(r))
	if err := dec.Decode(&snap); err != nil {
		return snap, errors.Wrap(err, "failed to decode snapshot")
	}
	if snap.Version != "" && !strings.HasPrefix(snap.Version, "1.") {
		return snap, errors.Errorf("unsupported snapshot version %q", snap.Version)
	}
	return snap, nil
}
