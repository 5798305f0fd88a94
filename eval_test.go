package minisql

import (
	"math"
	"testing"
)

func TestLooseEqual(t *testing.T) {
	cc := []struct {
		name string
		a, b Value
		want bool
	}{
		{"numbers", num(1), num(1), true},
		{"numeric text and number", text("1"), num(1), true},
		{"decimal text and number", text("2.50"), num(2.5), true},
		{"text", text("abc"), text("abc"), true},
		{"case matters", text("abc"), text("ABC"), false},
		{"text and number", text("abc"), num(1), false},
		{"null and null", null, null, true},
		{"null and number", null, num(0), false},
		{"null and empty text", null, text(""), false},
		{"padded numeric text", text(" 7 "), num(7), true},
	}
	for _, c := range cc {
		t.Run(c.name, func(t *testing.T) {
			if got := looseEqual(c.a, c.b); got != c.want {
				t.Fatalf("looseEqual(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
			if got := looseEqual(c.b, c.a); got != c.want {
				t.Fatalf("looseEqual is not symmetric for %v, %v", c.a, c.b)
			}
		})
	}
}

func TestEval(t *testing.T) {
	row := Row{
		"id":    num(2),
		"name":  text("Alice"),
		"score": text("10"),
		"note":  null,
	}
	cc := []struct {
		where string
		want  bool
	}{
		{"id = 2", true},
		{"id = '2'", true},
		{"id <> 2", false},
		{"id != 3", true},
		{"id > 1", true},
		{"id >= 2", true},
		{"id < 2", false},
		{"id <= 2", true},
		{"score > 9", true},
		{"name > 1", false},
		{"name < 1", false},
		{"note > 0", false},
		{"note = NULL", true},
		{"missing = NULL", true},
		{"name LIKE 'al%'", true},
		{"name LIKE 'A_ice'", true},
		{"name LIKE 'A_ce'", false},
		{"name LIKE '%LIC%'", true},
		{"name LIKE 'Ali.e'", false},
		{"note LIKE '%'", false},
		{"id = 1 OR id = 2 AND name = 'Bob'", false},
		{"id = 2 OR id = 1 AND name = 'Bob'", true},
		{"(id = 2 OR id = 1) AND name = 'Bob'", false},
		{"id = 2 AND name = 'Alice'", true},
		{"name", true},
		{"note", false},
		{"0", false},
	}
	for _, c := range cc {
		t.Run(c.where, func(t *testing.T) {
			q, err := Parse("SELECT * FROM t WHERE " + c.where)
			if err != nil {
				t.Fatal(err)
			}
			got, err := matches(q.(*Select).Filter, row)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Fatalf("%s: got %v, want %v", c.where, got, c.want)
			}
		})
	}
}

func TestNoFilterMatchesEverything(t *testing.T) {
	ok, err := matches(nil, Row{})
	if err != nil || !ok {
		t.Fatalf("got %v, %v", ok, err)
	}
}

func TestCompareForSort(t *testing.T) {
	cc := []struct {
		a, b Value
		want int
	}{
		{null, num(1), -1},
		{num(1), null, 1},
		{num(2), num(10), -1},
		{text("10"), text("2"), -1},
		{num(100), text("a"), -1},
		{text("b"), text("a"), 1},
		{null, null, 0},
	}
	for _, c := range cc {
		if got := compareForSort(c.a, c.b); got != c.want {
			t.Errorf("compareForSort(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNegativeZero(t *testing.T) {
	for _, v := range []Value{num(math.Copysign(0, -1)), parseLiteral("-0"), parseLiteral("-0.0")} {
		if got := v.String(); got != "0" {
			t.Errorf("got %q, want 0", got)
		}
	}
}
