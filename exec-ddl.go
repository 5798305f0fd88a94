package minisql

import (
	"strings"
)

func (q *createDatabase) exec(s *Store) (string, error) {
	if s.database(q.Name) != nil {
		if q.IfNotExists {
			return queryOK(0), nil
		}
		return "", newError(KindExists, "Can't create database '%s'; database exists", q.Name)
	}
	s.Databases = append(s.Databases, &Database{Name: q.Name})
	return queryOK(1), nil
}

func (q *dropDatabase) exec(s *Store) (string, error) {
	db := s.database(q.Name)
	if db == nil {
		if q.IfExists {
			return queryOK(0), nil
		}
		return "", newError(KindSelection, "Can't drop database '%s'; database doesn't exist", q.Name)
	}
	for i, x := range s.Databases {
		if x == db {
			s.Databases = append(s.Databases[:i:i], s.Databases[i+1:]...)
			break
		}
	}
	for _, t := range db.Tables {
		s.dropCounters(db.Name, t)
	}
	if s.Current == q.Name {
		s.Current = ""
	}
	return queryOK(len(db.Tables)), nil
}

func (q *showDatabases) exec(s *Store) (string, error) {
	rs := resultSet{columns: []string{"Database"}}
	for _, db := range s.Databases {
		rs.rows = append(rs.rows, []string{db.Name})
	}
	return rs.format(false), nil
}

func (q *useDatabase) exec(s *Store) (string, error) {
	if s.database(q.Name) == nil {
		return "", errUnknownDatabase(q.Name)
	}
	s.Current = q.Name
	return "Database changed", nil
}

func (q *createTable) exec(s *Store) (string, error) {
	db, err := s.current()
	if err != nil {
		return "", err
	}
	if db.table(q.Name) != nil {
		if q.IfNotExists {
			return queryOK(0), nil
		}
		return "", newError(KindExists, "Table '%s' already exists", q.Name)
	}
	seen := map[string]bool{}
	for _, c := range q.Columns {
		key := strings.ToLower(c.Name)
		if seen[key] {
			return "", newError(KindExists, "Duplicate column name '%s'", c.Name)
		}
		seen[key] = true
	}

	t := &Table{Name: q.Name, Columns: append([]Column(nil), q.Columns...)}
	db.Tables = append(db.Tables, t)
	for _, c := range t.Columns {
		if c.AutoIncrement {
			s.AutoIncrement[CounterKey{db.Name, t.Name, c.Name}] = 1
		}
	}
	return queryOK(0), nil
}

func (q *dropTable) exec(s *Store) (string, error) {
	db, err := s.current()
	if err != nil {
		return "", err
	}
	t := db.table(q.Name)
	if t == nil {
		if q.IfExists {
			return queryOK(0), nil
		}
		return "", newError(KindSelection, "Unknown table '%s.%s'", db.Name, q.Name)
	}
	for i, x := range db.Tables {
		if x == t {
			db.Tables = append(db.Tables[:i:i], db.Tables[i+1:]...)
			break
		}
	}
	s.dropCounters(db.Name, t)
	return queryOK(0), nil
}

func (q *showTables) exec(s *Store) (string, error) {
	db, err := s.current()
	if err != nil {
		return "", err
	}
	rs := resultSet{columns: []string{"Tables_in_" + db.Name}}
	for _, t := range db.Tables {
		rs.rows = append(rs.rows, []string{t.Name})
	}
	return rs.format(false), nil
}

func (q *describeTable) exec(s *Store) (string, error) {
	_, t, err := s.table(q.Name)
	if err != nil {
		return "", err
	}
	rs := resultSet{columns: []string{"Field", "Type", "Key", "Extra"}}
	for _, c := range t.Columns {
		key, extra := "", ""
		if c.PrimaryKey {
			key = "PRI"
		}
		if c.AutoIncrement {
			extra = "auto_increment"
		}
		rs.rows = append(rs.rows, []string{c.Name, c.Type, key, extra})
	}
	return rs.format(false), nil
}
