package minisql

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type ValueTypeID int

const (
	Null ValueTypeID = iota
	Number
	Text
	// Bool is only produced by comparisons, it is never stored in a table.
	Bool
)

// Value is a single cell value or an expression result.
type Value struct {
	Type ValueTypeID
	Data any
}

var null = Value{Null, nil}

func num(f float64) Value {
	if f == 0 {
		// No negative zero.
		f = 0
	}
	return Value{Number, f}
}

func text(s string) Value {
	return Value{Text, s}
}

func boolean(b bool) Value {
	return Value{Bool, b}
}

func getValueTypeName(t ValueTypeID) string {
	switch t {
	case Null:
		return "Null"
	case Number:
		return "Number"
	case Text:
		return "Text"
	case Bool:
		return "Bool"
	default:
		panic(fmt.Errorf("unexpected value type: %d", t))
	}
}

// String renders the value the way it is shown in result tables.
func (v Value) String() string {
	switch v.Type {
	case Null:
		return "NULL"
	case Number:
		return strconv.FormatFloat(v.Data.(float64), 'f', -1, 64)
	case Text:
		return v.Data.(string)
	case Bool:
		if v.Data.(bool) {
			return "1"
		}
		return "0"
	}
	return fmt.Sprintf("%v", v.Data)
}

var numberPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)

// isNumeric tells whether a text looks like an integer or a decimal.
func isNumeric(s string) bool {
	return numberPattern.MatchString(s)
}

// parseLiteral converts a trimmed token text into a value. Bare words that
// are neither NULL nor numbers are taken as strings.
func parseLiteral(s string) Value {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "NULL") {
		return null
	}
	if isNumeric(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return num(f)
		}
	}
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return text(unescape(s[1 : len(s)-1]))
	}
	return text(strings.Trim(s, "`"))
}

// unescape drops backslashes, keeping the characters they escape.
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	sb := strings.Builder{}
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// toNumber coerces a value for numeric comparison. Numbers pass through,
// numeric texts are parsed, everything else is NaN.
func (v Value) toNumber() float64 {
	switch v.Type {
	case Number:
		return v.Data.(float64)
	case Text:
		s := strings.TrimSpace(v.Data.(string))
		if isNumeric(s) {
			f, err := strconv.ParseFloat(s, 64)
			if err == nil {
				return f
			}
		}
	case Bool:
		if v.Data.(bool) {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// looseEqual is the equality used by = and <>. NULL is equal only to NULL.
// If both sides convert to numbers they are compared as numbers, otherwise
// their text renderings are compared.
func looseEqual(a, b Value) bool {
	if a.Type == Null || b.Type == Null {
		return a.Type == b.Type
	}
	x, y := a.toNumber(), b.toNumber()
	if !math.IsNaN(x) && !math.IsNaN(y) {
		return x == y
	}
	return a.String() == b.String()
}

// truthy converts an expression result into a filter decision.
func (v Value) truthy() bool {
	switch v.Type {
	case Bool:
		return v.Data.(bool)
	case Number:
		return v.Data.(float64) != 0
	case Text:
		return v.Data.(string) != ""
	}
	return false
}

// compareForSort orders two stored values: NULL first, then numbers, then
// texts. Returns -1, 0 or 1.
func compareForSort(a, b Value) int {
	rank := func(v Value) int {
		switch v.Type {
		case Null:
			return 0
		case Number, Bool:
			return 1
		}
		return 2
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 1:
		x, y := a.toNumber(), b.toNumber()
		if x < y {
			return -1
		}
		if x > y {
			return 1
		}
	case 2:
		return strings.Compare(a.Data.(string), b.Data.(string))
	}
	return 0
}

// likePattern compiles a LIKE pattern into an anchored, case-insensitive
// regular expression.
func likePattern(p string) *regexp.Regexp {
	sb := strings.Builder{}
	sb.WriteString("(?is)^")
	for _, r := range p {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	return regexp.MustCompile(sb.String())
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case Null:
		return []byte("null"), nil
	case Number:
		return json.Marshal(v.Data.(float64))
	case Text:
		return json.Marshal(v.Data.(string))
	}
	return nil, fmt.Errorf("can't store a value of type %s", getValueTypeName(v.Type))
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	switch d := x.(type) {
	case nil:
		*v = null
	case float64:
		*v = num(d)
	case string:
		*v = text(d)
	default:
		return fmt.Errorf("unexpected cell value: %s", string(data))
	}
	return nil
}
