package minisql

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// resultSet is a rendered query result: a header and rows of cell texts.
type resultSet struct {
	columns []string
	rows    [][]string
}

// project returns a mapper that renders the given cells of a row.
func project(columns []string) func(Row) ([]string, error) {
	return func(row Row) ([]string, error) {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = row.get(c).String()
		}
		return cells, nil
	}
}

// format renders the rows and the row count line.
func (rs resultSet) format(vertical bool) string {
	if len(rs.rows) == 0 {
		return "Empty set"
	}
	var body string
	if vertical {
		body = formatVertical(rs)
	} else {
		body = formatGrid(rs)
	}
	return body + "\n" + rowsInSet(len(rs.rows))
}

// formatGrid renders an ASCII table. Each column is as wide as its longest
// cell or header, with one space of margin on both sides.
func formatGrid(rs resultSet) string {
	widths := make([]int, len(rs.columns))
	for i, c := range rs.columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range rs.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	rule := strings.Builder{}
	rule.WriteString("+")
	for _, w := range widths {
		rule.WriteString(strings.Repeat("-", w+2))
		rule.WriteString("+")
	}

	line := func(cells []string) string {
		sb := strings.Builder{}
		sb.WriteString("|")
		for i, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			sb.WriteString(" |")
		}
		return sb.String()
	}

	lines := []string{rule.String(), line(rs.columns), rule.String()}
	for _, row := range rs.rows {
		lines = append(lines, line(row))
	}
	lines = append(lines, rule.String())
	return strings.Join(lines, "\n")
}

// formatVertical renders each row as a block of "column: value" lines under
// a row number banner.
func formatVertical(rs resultSet) string {
	width := 0
	for _, c := range rs.columns {
		if n := utf8.RuneCountInString(c); n > width {
			width = n
		}
	}
	var lines []string
	for i, row := range rs.rows {
		lines = append(lines, fmt.Sprintf("%s %d. row %s", strings.Repeat("*", 27), i+1, strings.Repeat("*", 27)))
		for j, c := range rs.columns {
			pad := strings.Repeat(" ", width-utf8.RuneCountInString(c))
			lines = append(lines, fmt.Sprintf("%s%s: %s", pad, c, row[j]))
		}
	}
	return strings.Join(lines, "\n")
}

func rowsInSet(n int) string {
	if n == 1 {
		return "1 row in set"
	}
	return fmt.Sprintf("%d rows in set", n)
}

func queryOK(n int) string {
	if n == 1 {
		return "Query OK, 1 row affected"
	}
	return fmt.Sprintf("Query OK, %d rows affected", n)
}
