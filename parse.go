package minisql

import (
	"strconv"
	"strings"
)

type parseFunc func(tr *tokenizer) (statement, error)

// Statement kinds in the order they are tried. Prefixes are matched on whole
// words, so "DESC" never matches the start of "DESCRIBE".
var dispatch = []struct {
	prefix []string
	parse  parseFunc
}{
	{[]string{"CREATE", "DATABASE"}, parseCreateDatabase},
	{[]string{"DROP", "DATABASE"}, parseDropDatabase},
	{[]string{"SHOW", "DATABASES"}, parseShowDatabases},
	{[]string{"USE"}, parseUse},
	{[]string{"CREATE", "TABLE"}, parseCreateTable},
	{[]string{"DROP", "TABLE"}, parseDropTable},
	{[]string{"SHOW", "TABLES"}, parseShowTables},
	{[]string{"DESCRIBE"}, parseDescribe},
	{[]string{"DESC"}, parseDescribe},
	{[]string{"INSERT", "INTO"}, parseInsert},
	{[]string{"SELECT"}, parseSelect},
	{[]string{"UPDATE"}, parseUpdate},
	{[]string{"DELETE", "FROM"}, parseDelete},
}

// Parse parses one SQL statement. A trailing ";" or "\g" is optional. A
// trailing "\G" requests vertical output of a SELECT.
func Parse(sqlString string) (statement, error) {
	text, vertical := trimTerminator(sqlString)
	tr := newTokenizer(text)
	for _, d := range dispatch {
		if !tr.eatSeq(d.prefix...) {
			continue
		}
		stmt, err := d.parse(tr)
		if err != nil {
			return nil, err
		}
		if sel, ok := stmt.(*Select); ok {
			sel.Vertical = vertical
		}
		return stmt, nil
	}
	if text == "" {
		return nil, newError(KindSyntax, "No query specified")
	}
	return nil, newError(KindSyntax, "Unsupported statement: %s", text)
}

// trimTerminator removes the statement terminator and reports whether it
// was "\G".
func trimTerminator(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, `\G`) {
		return strings.TrimSpace(strings.TrimSuffix(s, `\G`)), true
	}
	if strings.HasSuffix(s, `\g`) {
		return strings.TrimSpace(strings.TrimSuffix(s, `\g`)), false
	}
	return strings.TrimSpace(strings.TrimSuffix(s, ";")), false
}

func expectEnd(tr *tokenizer, stmt statement) (statement, error) {
	if !tr.done() {
		return nil, syntaxError(tr, tr.peek())
	}
	return stmt, nil
}

func parseCreateDatabase(tr *tokenizer) (statement, error) {
	r := &createDatabase{IfNotExists: tr.eatSeq("IF", "NOT", "EXISTS")}
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	r.Name = name
	return expectEnd(tr, r)
}

func parseDropDatabase(tr *tokenizer) (statement, error) {
	r := &dropDatabase{IfExists: tr.eatSeq("IF", "EXISTS")}
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	r.Name = name
	return expectEnd(tr, r)
}

func parseShowDatabases(tr *tokenizer) (statement, error) {
	return expectEnd(tr, &showDatabases{})
}

func parseUse(tr *tokenizer) (statement, error) {
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	return expectEnd(tr, &useDatabase{name})
}

func parseCreateTable(tr *tokenizer) (statement, error) {
	r := &createTable{IfNotExists: tr.eatSeq("IF", "NOT", "EXISTS")}
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	r.Name = name
	body, err := tr.group()
	if err != nil {
		return nil, err
	}
	// Whatever follows the column list (ENGINE=..., CHARSET=...) is accepted
	// and ignored.
	var primary []string
	for _, def := range splitDefinitions(body) {
		if keys, ok := tableConstraint(def); ok {
			primary = append(primary, keys...)
			continue
		}
		col, err := parseColumnDef(def)
		if err != nil {
			return nil, err
		}
		r.Columns = append(r.Columns, col)
	}
	if len(r.Columns) == 0 {
		return nil, newError(KindSyntax, "A table must have at least 1 column")
	}
	for _, key := range primary {
		found := false
		for i := range r.Columns {
			if strings.EqualFold(r.Columns[i].Name, key) {
				r.Columns[i].PrimaryKey = true
				found = true
			}
		}
		if !found {
			return nil, newError(KindUnknownColumn, "Key column '%s' doesn't exist in table", key)
		}
	}
	return r, nil
}

// splitDefinitions splits the body of CREATE TABLE on top-level commas.
// Unlike splitList it skips commas inside parentheses, as in DECIMAL(10,2).
func splitDefinitions(body string) []string {
	var defs []string
	depth := 0
	start := 0
	for _, t := range tokenize(body) {
		if t.t != tSym {
			continue
		}
		switch t.val {
		case "(":
			depth++
		case ")":
			depth--
		case ",":
			if depth == 0 {
				defs = append(defs, strings.TrimSpace(body[start:t.start]))
				start = t.end
			}
		}
	}
	if last := strings.TrimSpace(body[start:]); last != "" {
		defs = append(defs, last)
	}
	return defs
}

// tableConstraint recognizes definitions that are not columns. It returns
// the key columns of a PRIMARY KEY (...) clause.
func tableConstraint(def string) ([]string, bool) {
	tr := newTokenizer(def)
	if tr.eatSeq("PRIMARY", "KEY") {
		cols, err := tr.group()
		if err != nil {
			return nil, true
		}
		var keys []string
		for _, c := range splitList(cols) {
			keys = append(keys, unquoteName(c))
		}
		return keys, true
	}
	for _, w := range []string{"KEY", "INDEX", "UNIQUE", "CONSTRAINT", "FOREIGN", "CHECK"} {
		if tr.isKeyword(w) {
			return nil, true
		}
	}
	return nil, false
}

// parseColumnDef parses "name type [flags...]". Flags are found by searching
// the definition text.
func parseColumnDef(def string) (Column, error) {
	tr := newTokenizer(def)
	name, err := tr.name()
	if err != nil {
		return Column{}, err
	}
	typ := tr.next()
	if typ.t != tWord {
		return Column{}, syntaxError(tr, typ)
	}
	end := typ.end
	if tr.peek().t == tSym && tr.peek().val == "(" {
		if _, err := tr.group(); err != nil {
			return Column{}, err
		}
		end = tr.tokens[tr.pos-1].end
	}
	upper := strings.ToUpper(def)
	return Column{
		Name:          name,
		Type:          strings.ToUpper(def[typ.start:end]),
		AutoIncrement: strings.Contains(upper, "AUTO_INCREMENT"),
		PrimaryKey:    strings.Contains(upper, "PRIMARY KEY"),
	}, nil
}

func parseDropTable(tr *tokenizer) (statement, error) {
	r := &dropTable{IfExists: tr.eatSeq("IF", "EXISTS")}
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	r.Name = name
	return expectEnd(tr, r)
}

func parseShowTables(tr *tokenizer) (statement, error) {
	return expectEnd(tr, &showTables{})
}

func parseDescribe(tr *tokenizer) (statement, error) {
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	return expectEnd(tr, &describeTable{name})
}

func parseInsert(tr *tokenizer) (statement, error) {
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	r := &insertInto{Table: name}
	if tr.peek().t == tSym && tr.peek().val == "(" {
		cols, err := tr.group()
		if err != nil {
			return nil, err
		}
		r.Columns = []string{}
		for _, c := range splitList(cols) {
			r.Columns = append(r.Columns, unquoteName(c))
		}
	}
	if !tr.eati("VALUES") && !tr.eati("VALUE") {
		return nil, syntaxError(tr, tr.peek())
	}
	for {
		tuple, err := tr.group()
		if err != nil {
			return nil, err
		}
		var values []Value
		for _, item := range splitList(tuple) {
			values = append(values, parseLiteral(item))
		}
		r.Rows = append(r.Rows, values)
		if !tr.eat(tSym, ",") {
			break
		}
	}
	return expectEnd(tr, r)
}

func parseSelect(tr *tokenizer) (statement, error) {
	result := &Select{}
	switch {
	case tr.eat(tSym, "*"):
		result.Star = true
	case isCountStar(tr):
		result.Count = true
	default:
		for {
			name, err := tr.name()
			if err != nil {
				return nil, err
			}
			result.Columns = append(result.Columns, name)
			if !tr.eat(tSym, ",") {
				break
			}
		}
	}
	if !tr.eati("FROM") {
		return nil, syntaxError(tr, tr.peek())
	}
	table, err := tr.name()
	if err != nil {
		return nil, err
	}
	result.Table = table

	if tr.eati("WHERE") {
		result.Filter, err = readExpression(tr)
		if err != nil {
			return nil, err
		}
	}
	if tr.eatSeq("ORDER", "BY") {
		for {
			col, err := tr.name()
			if err != nil {
				return nil, err
			}
			o := orderspec{column: col}
			switch {
			case tr.eati("DESC"):
				o.desc = true
			case tr.eati("ASC"):
				//
			}
			result.OrderBy = append(result.OrderBy, o)
			if !tr.eat(tSym, ",") {
				break
			}
		}
	}
	if tr.eati("LIMIT") {
		n, err := readCount(tr)
		if err != nil {
			return nil, err
		}
		result.Limit.Set = true
		result.Limit.Value = n
		// LIMIT offset, count
		if tr.eat(tSym, ",") {
			m, err := readCount(tr)
			if err != nil {
				return nil, err
			}
			result.Offset = n
			result.Limit.Value = m
		}
	}
	if tr.eati("OFFSET") {
		n, err := readCount(tr)
		if err != nil {
			return nil, err
		}
		result.Offset = n
	}
	return expectEnd(tr, result)
}

// isCountStar eats COUNT(*).
func isCountStar(tr *tokenizer) bool {
	save := tr.pos
	if tr.eati("COUNT") && tr.eat(tSym, "(") && tr.eat(tSym, "*") && tr.eat(tSym, ")") {
		return true
	}
	tr.pos = save
	return false
}

func readCount(tr *tokenizer) (int, error) {
	t := tr.next()
	if t.t != tWord {
		return 0, syntaxError(tr, t)
	}
	n, err := strconv.Atoi(t.val)
	if err != nil || n < 0 {
		return 0, syntaxError(tr, t)
	}
	return n, nil
}

func parseUpdate(tr *tokenizer) (statement, error) {
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	if !tr.eati("SET") {
		return nil, syntaxError(tr, tr.peek())
	}
	r := &updateTable{Table: name}
	list := tr.rawUntil("WHERE")
	for _, item := range splitList(list) {
		col, val, ok := splitAssignment(item)
		if !ok || col == "" || val == "" {
			return nil, newError(KindSyntax, "You have an error in your SQL syntax; check the syntax near '%s'", item)
		}
		r.Set = append(r.Set, assignment{unquoteName(col), parseLiteral(val)})
	}
	if len(r.Set) == 0 {
		return nil, syntaxError(tr, tr.peek())
	}
	if tr.eati("WHERE") {
		r.Filter, err = readExpression(tr)
		if err != nil {
			return nil, err
		}
	}
	return expectEnd(tr, r)
}

func parseDelete(tr *tokenizer) (statement, error) {
	name, err := tr.name()
	if err != nil {
		return nil, err
	}
	r := &deleteFrom{Table: name}
	if tr.eati("WHERE") {
		r.Filter, err = readExpression(tr)
		if err != nil {
			return nil, err
		}
	}
	return expectEnd(tr, r)
}

// readExpression reads an OR chain, the lowest precedence level.
func readExpression(b *tokenizer) (expression, error) {
	e, err := readExpr2(b)
	if err != nil {
		return nil, err
	}
	for b.eati("OR") {
		e2, err := readExpr2(b)
		if err != nil {
			return nil, err
		}
		e = &fbinaryOr{e, e2}
	}
	return e, nil
}

// readExpr2 reads an AND chain.
func readExpr2(b *tokenizer) (expression, error) {
	e, err := readExpr1(b)
	if err != nil {
		return nil, err
	}
	for b.eati("AND") {
		e2, err := readExpr1(b)
		if err != nil {
			return nil, err
		}
		e = &fbinaryAnd{e, e2}
	}
	return e, nil
}

// readExpr1 reads a comparison. Without an operator it's just the value.
func readExpr1(b *tokenizer) (expression, error) {
	e, err := readExpr0(b)
	if err != nil {
		return nil, err
	}
	op, ok := readComparisonOp(b)
	if !ok {
		return e, nil
	}
	e2, err := readExpr0(b)
	if err != nil {
		return nil, err
	}
	return &binaryOperatorNode{op, e, e2}, nil
}

func readComparisonOp(b *tokenizer) (string, bool) {
	t := b.peek()
	switch {
	case t.t == tOp,
		t.t == tSym && (t.val == "=" || t.val == "<" || t.val == ">"):
		b.next()
		return t.val, true
	case b.eati("LIKE"):
		return "LIKE", true
	}
	return "", false
}

// readExpr0 reads a single value. Bare words that are not numbers refer to
// columns, even if a string was likely intended.
func readExpr0(b *tokenizer) (expression, error) {
	if b.eat(tSym, "(") {
		e, err := readExpression(b)
		if err != nil {
			return nil, err
		}
		if !b.eat(tSym, ")") {
			return nil, syntaxError(b, b.peek())
		}
		return e, nil
	}
	t := b.next()
	switch t.t {
	case tString:
		if t.quote == '`' {
			return &columnRef{t.val}, nil
		}
		return &literal{text(t.val)}, nil
	case tWord:
		if isNumeric(t.val) {
			return &literal{parseLiteral(t.val)}, nil
		}
		if strings.EqualFold(t.val, "NULL") {
			return &literal{null}, nil
		}
		return &columnRef{t.val}, nil
	}
	return nil, syntaxError(b, t)
}
