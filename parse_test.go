package minisql

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParser(t *testing.T) {
	type tcase struct {
		input, want string
	}
	cc := []tcase{
		{
			"select id, name from t where a=1 or a=2 and b=3 order by id desc limit 2 offset 1;",
			"SELECT `id`, `name` FROM `t` WHERE `a` = 1 OR (`a` = 2 AND `b` = 3) ORDER BY `id` DESC LIMIT 2 OFFSET 1",
		},
		{
			"SELECT * FROM t WHERE a=1 AND b=2 AND c=3",
			"SELECT * FROM `t` WHERE `a` = 1 AND `b` = 2 AND `c` = 3",
		},
		{
			"SELECT * FROM t WHERE (a=1 OR a=2) AND b LIKE 'x%'",
			"SELECT * FROM `t` WHERE (`a` = 1 OR `a` = 2) AND `b` LIKE 'x%'",
		},
		{
			"select count(*) from t where name = 'where'",
			"SELECT COUNT(*) FROM `t` WHERE `name` = 'where'",
		},
		{
			"SELECT * FROM t WHERE a >= 1.5 AND b <> 'x' OR c != NULL",
			"SELECT * FROM `t` WHERE (`a` >= 1.5 AND `b` <> 'x') OR `c` != NULL",
		},
		{
			"SELECT * FROM t LIMIT 5, 10",
			"SELECT * FROM `t` LIMIT 10 OFFSET 5",
		},
		{
			"SELECT `first name` FROM `my table` ORDER BY a, b ASC, c DESC",
			"SELECT `first name` FROM `my table` ORDER BY `a`, `b`, `c` DESC",
		},
		{
			"CREATE TABLE t (id INT PRIMARY KEY AUTO_INCREMENT, name VARCHAR(50), price decimal(10,2))",
			"CREATE TABLE `t` (`id` INT PRIMARY KEY AUTO_INCREMENT, `name` VARCHAR(50), `price` DECIMAL(10,2))",
		},
		{
			"create table if not exists t (id int, name text, PRIMARY KEY (id)) ENGINE=InnoDB",
			"CREATE TABLE IF NOT EXISTS `t` (`id` INT PRIMARY KEY, `name` TEXT)",
		},
		{
			"insert into t (name, age) values ('Al', 3), ('Bo', NULL)",
			"INSERT INTO `t` (`name`, `age`) VALUES ('Al', 3), ('Bo', NULL)",
		},
		{
			"INSERT INTO t VALUES (1, 'it\\'s')",
			"INSERT INTO `t` VALUES (1, 'it\\'s')",
		},
		{
			"UPDATE t SET name='Carol', age = 5 WHERE id=2",
			"UPDATE `t` SET `name` = 'Carol', `age` = 5 WHERE `id` = 2",
		},
		{
			"UPDATE t SET note='where is it' WHERE id=2",
			"UPDATE `t` SET `note` = 'where is it' WHERE `id` = 2",
		},
		{"delete from t", "DELETE FROM `t`"},
		{"DELETE FROM t WHERE id=1;", "DELETE FROM `t` WHERE `id` = 1"},
		{"desc t", "DESCRIBE `t`"},
		{"DESCRIBE t;", "DESCRIBE `t`"},
		{"drop database if exists x", "DROP DATABASE IF EXISTS `x`"},
		{"create database school;", "CREATE DATABASE `school`"},
		{"use school", "USE `school`"},
		{"show databases", "SHOW DATABASES"},
		{"SHOW TABLES;", "SHOW TABLES"},
		{"DROP TABLE t", "DROP TABLE `t`"},
	}
	for _, c := range cc {
		t.Run(c.input, func(t *testing.T) {
			q, err := Parse(c.input)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(c.want, q.String()); diff != "" {
				t.Fatalf("\nwanted:\n%s\ngot:\n%s\ndiff:\n%s\n", c.want, q.String(), diff)
			}
		})
	}
}

// A bare word in a value position is a column reference, so BSIT here is a
// column name rather than the string 'BSIT'. This is kept on purpose.
func TestBareWordIsColumn(t *testing.T) {
	q, err := Parse("SELECT * FROM t WHERE course=BSIT")
	if err != nil {
		t.Fatal(err)
	}
	cmpNode, ok := q.(*Select).Filter.(*binaryOperatorNode)
	if !ok {
		t.Fatalf("expected a comparison, got %T", q.(*Select).Filter)
	}
	if _, ok := cmpNode.right.(*columnRef); !ok {
		t.Fatalf("expected a column reference, got %T", cmpNode.right)
	}
}

func TestPrecedence(t *testing.T) {
	q, err := Parse("SELECT * FROM t WHERE a=1 OR a=2 AND b=3")
	if err != nil {
		t.Fatal(err)
	}
	or, ok := q.(*Select).Filter.(*fbinaryOr)
	if !ok {
		t.Fatalf("expected OR at the top, got %T", q.(*Select).Filter)
	}
	if _, ok := or.right.(*fbinaryAnd); !ok {
		t.Fatalf("expected AND on the right, got %T", or.right)
	}

	q, err = Parse("SELECT * FROM t WHERE a=1 OR b=2 OR c=3")
	if err != nil {
		t.Fatal(err)
	}
	or = q.(*Select).Filter.(*fbinaryOr)
	if _, ok := or.left.(*fbinaryOr); !ok {
		t.Fatalf("expected a left-leaning chain, got %T on the left", or.left)
	}
}

func TestVertical(t *testing.T) {
	q, err := Parse(`SELECT * FROM t\G`)
	if err != nil {
		t.Fatal(err)
	}
	if !q.(*Select).Vertical {
		t.Fatal("expected vertical mode")
	}
	q, err = Parse(`SELECT * FROM t;`)
	if err != nil {
		t.Fatal(err)
	}
	if q.(*Select).Vertical {
		t.Fatal("unexpected vertical mode")
	}
}

func TestParseErrors(t *testing.T) {
	cc := []struct {
		input, want string
		kind        ErrorKind
	}{
		{"SELECT * FROM t kek", "You have an error in your SQL syntax; check the syntax near 'kek'", KindSyntax},
		{"FOO BAR", "Unsupported statement: FOO BAR", KindSyntax},
		{"DESCRIBEX t", "Unsupported statement: DESCRIBEX t", KindSyntax},
		{"SELECT * FROM t WHERE", "You have an error in your SQL syntax; unexpected end of statement", KindSyntax},
		{"INSERT INTO t VALUES 1, 2", "You have an error in your SQL syntax; check the syntax near '1, 2'", KindSyntax},
		{"SELECT * FROM t LIMIT -1", "You have an error in your SQL syntax; check the syntax near '-1'", KindSyntax},
		{"UPDATE t SET name WHERE id=1", "You have an error in your SQL syntax; check the syntax near 'name'", KindSyntax},
		{"CREATE TABLE t ()", "A table must have at least 1 column", KindSyntax},
		{"CREATE TABLE t (id INT, PRIMARY KEY (nope))", "Key column 'nope' doesn't exist in table", KindUnknownColumn},
		{"", "No query specified", KindSyntax},
	}
	for _, c := range cc {
		t.Run(c.input, func(t *testing.T) {
			_, err := Parse(c.input)
			if err == nil {
				t.Fatalf("expected an error, got nil")
			}
			if diff := cmp.Diff(c.want, message(err)); diff != "" {
				t.Fatalf("%s", diff)
			}
			if KindOf(err) != c.kind {
				t.Fatalf("expected kind %d, got %d", c.kind, KindOf(err))
			}
		})
	}
}
