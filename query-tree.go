package minisql

// statement is a parsed SQL statement ready to be executed against a store.
type statement interface {
	exec(s *Store) (string, error)
	String() string
	// mutates tells whether a successful execution may change the store's
	// databases, tables or rows.
	mutates() bool
}

// expression is a node in a WHERE expression tree.
type expression interface {
	String() string
}

type createDatabase struct {
	Name        string
	IfNotExists bool
}

type dropDatabase struct {
	Name     string
	IfExists bool
}

type showDatabases struct{}

type useDatabase struct {
	Name string
}

type createTable struct {
	Name        string
	IfNotExists bool
	Columns     []Column
}

type dropTable struct {
	Name     string
	IfExists bool
}

type showTables struct{}

type describeTable struct {
	Name string
}

type insertInto struct {
	Table string
	// Explicit column list, nil if the values are positional.
	Columns []string
	Rows    [][]Value
}

// Select is a parsed SELECT query.
type Select struct {
	Table string
	// Projected column names. Empty with Star or Count set.
	Columns []string
	Star    bool
	Count   bool
	Filter  expression
	OrderBy []orderspec
	Limit   struct {
		Set   bool
		Value int
	}
	Offset   int
	Vertical bool
}

type orderspec struct {
	desc   bool
	column string
}

type assignment struct {
	Column string
	Value  Value
}

type updateTable struct {
	Table  string
	Set    []assignment
	Filter expression
}

type deleteFrom struct {
	Table  string
	Filter expression
}

func (createDatabase) mutates() bool { return true }
func (dropDatabase) mutates() bool   { return true }
func (showDatabases) mutates() bool  { return false }
func (useDatabase) mutates() bool    { return true }
func (createTable) mutates() bool    { return true }
func (dropTable) mutates() bool      { return true }
func (showTables) mutates() bool     { return false }
func (describeTable) mutates() bool  { return false }
func (insertInto) mutates() bool     { return true }
func (Select) mutates() bool         { return false }
func (updateTable) mutates() bool    { return true }
func (deleteFrom) mutates() bool     { return true }
