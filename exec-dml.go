package minisql

import (
	"math"
	"sort"
)

func (q *insertInto) exec(s *Store) (string, error) {
	db, table, err := s.table(q.Table)
	if err != nil {
		return "", err
	}

	// Validate every tuple before touching the table.
	columns := table.columnNames()
	if q.Columns != nil {
		columns, err = resolveColumns(table, q.Columns, "field list")
		if err != nil {
			return "", err
		}
	}
	rows := make([]Row, len(q.Rows))
	for i, values := range q.Rows {
		if (q.Columns != nil && len(values) != len(columns)) || len(values) > len(columns) {
			return "", newError(KindArity, "Column count doesn't match value count at row %d", i+1)
		}
		row := Row{}
		for _, c := range table.Columns {
			row[c.Name] = null
		}
		for j, v := range values {
			row[columns[j]] = v
		}
		rows[i] = row
	}

	for _, c := range table.Columns {
		if !c.AutoIncrement {
			continue
		}
		key := CounterKey{db.Name, table.Name, c.Name}
		next, ok := s.AutoIncrement[key]
		if !ok {
			next = 1
		}
		for _, row := range rows {
			next = assignCounter(row, c.Name, next)
		}
		s.AutoIncrement[key] = next
	}
	table.Rows = append(table.Rows, rows...)
	return queryOK(len(rows)), nil
}

// assignCounter fills an empty auto-increment cell with the next counter
// value, and returns the counter to use after the row. An explicit integer
// value moves the counter past it, unless the value is too large for a
// counter, in which case the counter stays.
func assignCounter(row Row, column string, next int) int {
	v := row[column]
	if v.Type == Null {
		row[column] = num(float64(next))
		return next + 1
	}
	f := v.toNumber()
	if math.IsNaN(f) || f != math.Trunc(f) || f < float64(next) || f >= float64(math.MaxInt) {
		return next
	}
	return int(f) + 1
}

func (q *Select) exec(s *Store) (string, error) {
	_, table, err := s.table(q.Table)
	if err != nil {
		return "", err
	}
	if err := normalize(q, table); err != nil {
		return "", err
	}

	rows, err := arrstream(table.Rows).filter(func(r Row) (bool, error) {
		return matches(q.Filter, r)
	}).Consume()
	if err != nil {
		return "", err
	}

	columns := q.Columns
	if q.Count {
		columns = []string{"COUNT(*)"}
		rows = []Row{{"COUNT(*)": num(float64(len(rows)))}}
	} else if len(q.OrderBy) > 0 {
		orderRows(rows, q.OrderBy)
	}

	page := arrstream(rows).skip(q.Offset)
	if q.Limit.Set {
		page = page.limit(q.Limit.Value)
	}
	cells, err := mapStream(page, project(columns)).Consume()
	if err != nil {
		return "", err
	}
	return resultSet{columns, cells}.format(q.Vertical), nil
}

// orderRows sorts rows in place. NULL comes first in both directions, and
// rows with equal keys keep their table order.
func orderRows(rows []Row, order []orderspec) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range order {
			a, b := rows[i].get(o.column), rows[j].get(o.column)
			if a.Type == Null || b.Type == Null {
				if a.Type == b.Type {
					continue
				}
				return a.Type == Null
			}
			c := compareForSort(a, b)
			if c == 0 {
				continue
			}
			if o.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func (q *updateTable) exec(s *Store) (string, error) {
	db, table, err := s.table(q.Table)
	if err != nil {
		return "", err
	}
	names := make([]string, len(q.Set))
	for i, a := range q.Set {
		names[i] = a.Column
	}
	columns, err := resolveColumns(table, names, "field list")
	if err != nil {
		return "", err
	}
	matched, err := matchingRows(table, q.Filter)
	if err != nil {
		return "", err
	}

	for _, i := range matched {
		for j, a := range q.Set {
			table.Rows[i][columns[j]] = a.Value
		}
	}
	if len(matched) > 0 {
		for j, a := range q.Set {
			c, _ := table.column(columns[j])
			key := CounterKey{db.Name, table.Name, c.Name}
			next, ok := s.AutoIncrement[key]
			if !c.AutoIncrement || !ok || a.Value.Type == Null {
				continue
			}
			s.AutoIncrement[key] = assignCounter(Row{c.Name: a.Value}, c.Name, next)
		}
	}
	return queryOK(len(matched)), nil
}

func (q *deleteFrom) exec(s *Store) (string, error) {
	_, table, err := s.table(q.Table)
	if err != nil {
		return "", err
	}
	matched, err := matchingRows(table, q.Filter)
	if err != nil {
		return "", err
	}
	if len(matched) == 0 {
		return queryOK(0), nil
	}
	kept := make([]Row, 0, len(table.Rows)-len(matched))
	m := 0
	for i, row := range table.Rows {
		if m < len(matched) && matched[m] == i {
			m++
			continue
		}
		kept = append(kept, row)
	}
	table.Rows = kept
	return queryOK(len(matched)), nil
}

// matchingRows returns the indexes of the rows that pass the filter.
func matchingRows(table *Table, filter expression) ([]int, error) {
	var r []int
	for i, row := range table.Rows {
		ok, err := matches(filter, row)
		if err != nil {
			return nil, err
		}
		if ok {
			r = append(r, i)
		}
	}
	return r, nil
}
