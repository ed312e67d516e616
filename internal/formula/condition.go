package formula

import (
	"math"
	"strings"
)

// comparisonOps in the order they are tried. Two-character operators come
// first so ">=" is never read as ">".
var comparisonOps = [...]string{">=", "<=", "<>", ">", "<", "="}

// condition evaluates a relational test. ok is false when an operand is not
// numeric.
func (ev *evaluation) condition(cond string, row, col int) (result, ok bool) {
	for _, op := range comparisonOps {
		pos := strings.Index(cond, op)
		if pos < 0 {
			continue
		}
		left, lok := ev.argNumber(cond[:pos], row, col)
		right, rok := ev.argNumber(cond[pos+len(op):], row, col)
		if !lok || !rok {
			return false, false
		}
		return compare(op, left, right), true
	}

	v, ok := ev.argNumber(cond, row, col)
	if !ok {
		return false, false
	}
	return truthy(v), true
}

func compare(op string, a, b float64) bool {
	switch op {
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case "<>":
		return math.Abs(a-b) > epsilon
	case ">":
		return a > b
	case "<":
		return a < b
	default:
		return math.Abs(a-b) < epsilon
	}
}

// hasComparison reports whether s contains a relational operator.
func hasComparison(s string) bool {
	return strings.ContainsAny(s, "<>=")
}
