package minisql

import "fmt"

// columnRef is an expression node that refers to a column of the current row.
type columnRef struct {
	Column string
}

func (e columnRef) String() string {
	return fmt.Sprintf("`%s`", e.Column)
}
