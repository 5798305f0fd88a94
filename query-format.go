package minisql

import (
	"fmt"
	"strings"
)

func (q *Select) String() string {
	r := strings.Builder{}
	r.WriteString("SELECT ")
	switch {
	case q.Star:
		r.WriteString("*")
	case q.Count:
		r.WriteString("COUNT(*)")
	default:
		r.WriteString(quoteNames(q.Columns))
	}
	r.WriteString(fmt.Sprintf(" FROM `%s`", q.Table))
	if q.Filter != nil {
		r.WriteString(" WHERE " + q.Filter.String())
	}
	if len(q.OrderBy) > 0 {
		r.WriteString(" ORDER BY")
		for i, o := range q.OrderBy {
			if i > 0 {
				r.WriteString(",")
			}
			r.WriteString(fmt.Sprintf(" `%s`", o.column))
			if o.desc {
				r.WriteString(" DESC")
			}
		}
	}
	if q.Limit.Set {
		r.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit.Value))
	}
	if q.Offset > 0 {
		r.WriteString(fmt.Sprintf(" OFFSET %d", q.Offset))
	}
	return r.String()
}

func (s *createDatabase) String() string {
	if s.IfNotExists {
		return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", s.Name)
	}
	return fmt.Sprintf("CREATE DATABASE `%s`", s.Name)
}

func (s *dropDatabase) String() string {
	if s.IfExists {
		return fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.Name)
	}
	return fmt.Sprintf("DROP DATABASE `%s`", s.Name)
}

func (s *showDatabases) String() string {
	return "SHOW DATABASES"
}

func (s *useDatabase) String() string {
	return fmt.Sprintf("USE `%s`", s.Name)
}

func (s *createTable) String() string {
	r := strings.Builder{}
	r.WriteString("CREATE TABLE ")
	if s.IfNotExists {
		r.WriteString("IF NOT EXISTS ")
	}
	r.WriteString(fmt.Sprintf("`%s` (", s.Name))
	for i, c := range s.Columns {
		if i > 0 {
			r.WriteString(", ")
		}
		r.WriteString(fmt.Sprintf("`%s` %s", c.Name, c.Type))
		if c.PrimaryKey {
			r.WriteString(" PRIMARY KEY")
		}
		if c.AutoIncrement {
			r.WriteString(" AUTO_INCREMENT")
		}
	}
	r.WriteString(")")
	return r.String()
}

func (s *dropTable) String() string {
	if s.IfExists {
		return fmt.Sprintf("DROP TABLE IF EXISTS `%s`", s.Name)
	}
	return fmt.Sprintf("DROP TABLE `%s`", s.Name)
}

func (s *showTables) String() string {
	return "SHOW TABLES"
}

func (s *describeTable) String() string {
	return fmt.Sprintf("DESCRIBE `%s`", s.Name)
}

func (s *insertInto) String() string {
	r := strings.Builder{}
	r.WriteString(fmt.Sprintf("INSERT INTO `%s`", s.Table))
	if s.Columns != nil {
		r.WriteString(" (" + quoteNames(s.Columns) + ")")
	}
	r.WriteString(" VALUES ")
	for i, row := range s.Rows {
		if i > 0 {
			r.WriteString(", ")
		}
		r.WriteString("(")
		for j, v := range row {
			if j > 0 {
				r.WriteString(", ")
			}
			r.WriteString(literal{v}.String())
		}
		r.WriteString(")")
	}
	return r.String()
}

func (s *updateTable) String() string {
	r := strings.Builder{}
	r.WriteString(fmt.Sprintf("UPDATE `%s` SET ", s.Table))
	for i, a := range s.Set {
		if i > 0 {
			r.WriteString(", ")
		}
		r.WriteString(fmt.Sprintf("`%s` = %s", a.Column, literal{a.Value}))
	}
	if s.Filter != nil {
		r.WriteString(" WHERE " + s.Filter.String())
	}
	return r.String()
}

func (s *deleteFrom) String() string {
	if s.Filter != nil {
		return fmt.Sprintf("DELETE FROM `%s` WHERE %s", s.Table, s.Filter)
	}
	return fmt.Sprintf("DELETE FROM `%s`", s.Table)
}

func quoteNames(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = "`" + n + "`"
	}
	return strings.Join(q, ", ")
}
