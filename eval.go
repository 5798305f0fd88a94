package minisql

import (
	"fmt"
	"math"
	"reflect"
)

// eval evaluates an expression tree against one row.
func eval(node expression, row Row) (Value, error) {
	switch e := node.(type) {
	case *literal:
		return e.v, nil

	case *columnRef:
		return row.get(e.Column), nil

	case *binaryOperatorNode:
		return evalBinaryOp(e, row)

	case *fbinaryAnd:
		a, err := eval(e.left, row)
		if err != nil {
			return Value{}, err
		}
		b, err := eval(e.right, row)
		if err != nil {
			return Value{}, err
		}
		return boolean(a.truthy() && b.truthy()), nil

	case *fbinaryOr:
		a, err := eval(e.left, row)
		if err != nil {
			return Value{}, err
		}
		b, err := eval(e.right, row)
		if err != nil {
			return Value{}, err
		}
		return boolean(a.truthy() || b.truthy()), nil

	default:
		return Value{}, fmt.Errorf("unknown node in eval: %v", reflect.TypeOf(node))
	}
}

func evalBinaryOp(v *binaryOperatorNode, row Row) (Value, error) {
	a, err := eval(v.left, row)
	if err != nil {
		return Value{}, err
	}
	b, err := eval(v.right, row)
	if err != nil {
		return Value{}, err
	}
	switch v.op {
	case "=":
		return boolean(looseEqual(a, b)), nil
	case "!=", "<>":
		return boolean(!looseEqual(a, b)), nil
	case "LIKE":
		if a.Type == Null || b.Type == Null {
			return boolean(false), nil
		}
		return boolean(likePattern(b.String()).MatchString(a.String())), nil
	}

	// Comparisons with NaN are always false, which covers non-numeric
	// operands.
	x, y := a.toNumber(), b.toNumber()
	if math.IsNaN(x) || math.IsNaN(y) {
		return boolean(false), nil
	}
	switch v.op {
	case "<":
		return boolean(x < y), nil
	case ">":
		return boolean(x > y), nil
	case "<=":
		return boolean(x <= y), nil
	case ">=":
		return boolean(x >= y), nil
	}
	return Value{}, fmt.Errorf("unsupported binary operator: %s", v.op)
}

// matches tells whether a row passes a filter. A missing filter passes
// everything.
func matches(filter expression, row Row) (bool, error) {
	if filter == nil {
		return true, nil
	}
	v, err := eval(filter, row)
	if err != nil {
		return false, err
	}
	return v.truthy(), nil
}
