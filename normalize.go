package minisql

// normalize resolves the column names of a query against the table's
// declared columns: the star is replaced with all columns in declaration
// order, and every name takes the spelling of its declaration.
func normalize(q *Select, table *Table) error {
	if q.Star {
		q.Columns = table.columnNames()
		q.Star = false
	}
	for i, name := range q.Columns {
		col, ok := table.column(name)
		if !ok {
			return errUnknownColumn(name, "field list")
		}
		q.Columns[i] = col.Name
	}
	for i, o := range q.OrderBy {
		col, ok := table.column(o.column)
		if !ok {
			return errUnknownColumn(o.column, "order clause")
		}
		q.OrderBy[i].column = col.Name
	}
	return nil
}

// resolveColumns maps names from a statement to declared column names.
func resolveColumns(table *Table, names []string, where string) ([]string, error) {
	r := make([]string, len(names))
	seen := map[string]bool{}
	for i, name := range names {
		col, ok := table.column(name)
		if !ok {
			return nil, errUnknownColumn(name, where)
		}
		if seen[col.Name] {
			return nil, newError(KindSyntax, "Column '%s' specified twice", col.Name)
		}
		seen[col.Name] = true
		r[i] = col.Name
	}
	return r, nil
}
