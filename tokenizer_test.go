package minisql

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizer(t *testing.T) {
	type tcase struct {
		input string
		want  []string
	}
	cc := []tcase{
		{
			"SELECT * FROM t WHERE a>=1 AND b<>'x y';",
			[]string{"[word SELECT]", "[sym *]", "[word FROM]", "[word t]", "[word WHERE]", "[word a]", "[op >=]", "[word 1]", "[word AND]", "[word b]", "[op <>]", "[string x y]", "[sym ;]"},
		},
		{
			`INSERT INTO t VALUES ('it\'s', "a,b", -1.5)`,
			[]string{"[word INSERT]", "[word INTO]", "[word t]", "[word VALUES]", "[sym (]", "[string it's]", "[sym ,]", "[string a,b]", "[sym ,]", "[word -1.5]", "[sym )]"},
		},
		{
			"a!=b != c ! d",
			[]string{"[word a]", "[op !=]", "[word b]", "[op !=]", "[word c]", "[sym !]", "[word d]"},
		},
		{
			"`weird name`=x",
			[]string{"[string weird name]", "[sym =]", "[word x]"},
		},
		{
			"name = 'unterminated",
			[]string{"[word name]", "[sym =]", "[string unterminated]"},
		},
		{
			"  \t\n ",
			nil,
		},
	}
	for _, c := range cc {
		t.Run(c.input, func(t *testing.T) {
			var got []string
			for _, tok := range tokenize(c.input) {
				got = append(got, tok.String())
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("%s", diff)
			}
		})
	}
}

func TestTokenOffsets(t *testing.T) {
	src := "WHERE name = 'Bob'"
	tokens := tokenize(src)
	last := tokens[len(tokens)-1]
	if diff := cmp.Diff("'Bob'", src[last.start:last.end]); diff != "" {
		t.Fatalf("%s", diff)
	}
	if last.quote != '\'' {
		t.Fatalf("expected a single quote, got %q", last.quote)
	}
}

func TestSplitList(t *testing.T) {
	cc := []struct {
		input string
		want  []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"'a,b', \"c,d\", e", []string{"'a,b'", "\"c,d\"", "e"}},
		{`'it\'s, fine', 2`, []string{`'it\'s, fine'`, "2"}},
		{"1, 2,,", []string{"1", "2"}},
		{"", nil},
		{"name = 'x, y', age=3", []string{"name = 'x, y'", "age=3"}},
	}
	for _, c := range cc {
		t.Run(c.input, func(t *testing.T) {
			if diff := cmp.Diff(c.want, splitList(c.input)); diff != "" {
				t.Fatalf("%s", diff)
			}
		})
	}
}

func TestSplitAssignment(t *testing.T) {
	col, val, ok := splitAssignment("name = 'a=b'")
	if !ok {
		t.Fatal("expected an assignment")
	}
	if diff := cmp.Diff([]string{"name", "'a=b'"}, []string{col, val}); diff != "" {
		t.Fatalf("%s", diff)
	}
	if _, _, ok := splitAssignment("'a=b'"); ok {
		t.Fatal("quoted '=' must not split")
	}
}

func TestParseLiteral(t *testing.T) {
	cc := []struct {
		input string
		want  Value
	}{
		{"NULL", null},
		{"null", null},
		{"42", num(42)},
		{"-3.25", num(-3.25)},
		{".5", num(0.5)},
		{"'Alice'", text("Alice")},
		{`"Bob"`, text("Bob")},
		{`'O\'Brien'`, text("O'Brien")},
		{"''", text("")},
		{"BSIT", text("BSIT")},
		{"`quoted`", text("quoted")},
		{"'42'", text("42")},
		{"1e5", text("1e5")},
	}
	for _, c := range cc {
		t.Run(c.input, func(t *testing.T) {
			if diff := cmp.Diff(c.want, parseLiteral(c.input)); diff != "" {
				t.Fatalf("%s", diff)
			}
		})
	}
}
