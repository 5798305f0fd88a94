package minisql

import (
	"fmt"
	"strings"
)

// binaryOperatorNode is a comparison of two values.
type binaryOperatorNode struct {
	op    string
	left  expression
	right expression
}

func (e binaryOperatorNode) String() string {
	return fmt.Sprintf("%s %s %s", e.left.String(), e.op, e.right.String())
}

type fbinaryAnd struct {
	left  expression
	right expression
}

func (e fbinaryAnd) String() string {
	_, chain := e.left.(*fbinaryAnd)
	return fmt.Sprintf("%s AND %s", nested(e.left, chain), nested(e.right, false))
}

type fbinaryOr struct {
	left  expression
	right expression
}

func (e fbinaryOr) String() string {
	_, chain := e.left.(*fbinaryOr)
	return fmt.Sprintf("%s OR %s", nested(e.left, chain), nested(e.right, false))
}

// nested renders a logical operand in parentheses, unless it continues a
// left-leaning chain of the same operator.
func nested(e expression, chain bool) string {
	switch e.(type) {
	case *fbinaryAnd, *fbinaryOr:
		if !chain {
			return "(" + e.String() + ")"
		}
	}
	return e.String()
}

// literal is a constant in an expression.
type literal struct {
	v Value
}

func (e literal) String() string {
	if e.v.Type == Text {
		s := strings.ReplaceAll(e.v.Data.(string), "\\", "\\\\")
		return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
	}
	return e.v.String()
}
