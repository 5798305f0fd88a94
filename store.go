package minisql

import (
	"strings"
)

// Store is the whole mutable state the interpreter works on.
type Store struct {
	// Databases in creation order.
	Databases []*Database
	// Name of the selected database, empty if none.
	Current string
	// Texts of the statements that executed successfully.
	History []string
	// Next auto-increment value per column.
	AutoIncrement map[CounterKey]int
}

// CounterKey names the auto-increment column a counter belongs to.
type CounterKey struct {
	Database, Table, Column string
}

// Database is a named, ordered collection of tables.
type Database struct {
	Name   string
	Tables []*Table
}

// Table holds column definitions and rows, both in their insertion order.
type Table struct {
	Name    string
	Columns []Column
	Rows    []Row
}

// Column is a column definition. Type is a free-form label and is not
// enforced.
type Column struct {
	Name          string
	Type          string
	AutoIncrement bool
	PrimaryKey    bool
}

// Row maps each declared column name to its value.
type Row map[string]Value

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{AutoIncrement: map[CounterKey]int{}}
}

func (s *Store) database(name string) *Database {
	for _, db := range s.Databases {
		if db.Name == name {
			return db
		}
	}
	return nil
}

// current returns the selected database.
func (s *Store) current() (*Database, error) {
	if s.Current == "" {
		return nil, errNoDatabase
	}
	db := s.database(s.Current)
	if db == nil {
		return nil, errUnknownDatabase(s.Current)
	}
	return db, nil
}

// table looks up a table in the selected database.
func (s *Store) table(name string) (*Database, *Table, error) {
	db, err := s.current()
	if err != nil {
		return nil, nil, err
	}
	t := db.table(name)
	if t == nil {
		return nil, nil, errUnknownTable(db.Name, name)
	}
	return db, t, nil
}

// dropCounters forgets the counters of a table's columns.
func (s *Store) dropCounters(db string, t *Table) {
	for _, c := range t.Columns {
		delete(s.AutoIncrement, CounterKey{db, t.Name, c.Name})
	}
}

func (db *Database) table(name string) *Table {
	for _, t := range db.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// column resolves a column name case-insensitively.
func (t *Table) column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

func (t *Table) columnNames() []string {
	r := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		r[i] = c.Name
	}
	return r
}

// get returns the row's value for a column, NULL if the row doesn't have it.
func (r Row) get(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	for k, v := range r {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return null
}
