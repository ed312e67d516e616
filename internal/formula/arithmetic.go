package formula

import (
	"errors"
	"strings"

	"github.com/codefionn/xl/internal/cellref"
)

var (
	errDivZero = errors.New("division by zero")
	errInvalid = errors.New("invalid operand")
)

// arithmetic evaluates + - * / over numeric literals and cell references.
//
// The rule is the rightmost + or - (never at index 0) splits first, and only
// without one does the rightmost * or / split. Parentheses, unary signs after
// an operator and exponent signs are not recognized; "2*-3" is invalid. A
// leading sign survives only as part of a literal.
//
// Peeling the rightmost operator off recursively is the same as splitting at
// every operator and folding left to right, which is what this does so that
// long chains stay linear.
func (ev *evaluation) arithmetic(expr string, row, col int) (float64, error) {
	expr = strings.TrimSpace(expr)

	start := 0
	var acc float64
	var op byte
	for i := 1; i <= len(expr); i++ {
		if i < len(expr) && expr[i] != '+' && expr[i] != '-' {
			continue
		}
		v, err := ev.product(expr[start:i], row, col)
		if err != nil {
			return 0, err
		}
		switch op {
		case 0:
			acc = v
		case '+':
			acc += v
		default:
			acc -= v
		}
		if i < len(expr) {
			op = expr[i]
		}
		start = i + 1
	}
	if start == 0 {
		// Only reachable for the empty expression.
		return ev.product(expr, row, col)
	}
	return acc, nil
}

// product evaluates a term free of + and - (except a leading sign) by
// folding its * and / operators left to right. Division by zero fails with
// errDivZero once both sides have evaluated.
func (ev *evaluation) product(term string, row, col int) (float64, error) {
	start := 0
	var acc float64
	var op byte
	for i := 0; i <= len(term); i++ {
		if i < len(term) && term[i] != '*' && term[i] != '/' {
			continue
		}
		v, err := ev.operand(term[start:i], row, col)
		if err != nil {
			return 0, err
		}
		switch op {
		case 0:
			acc = v
		case '*':
			acc *= v
		default:
			if v == 0 {
				return 0, errDivZero
			}
			acc /= v
		}
		if i < len(term) {
			op = term[i]
		}
		start = i + 1
	}
	return acc, nil
}

// operand is a numeric literal or the numeric value of a referenced cell.
func (ev *evaluation) operand(expr string, row, col int) (float64, error) {
	expr = strings.TrimSpace(expr)
	if v, ok := ParseNumber(expr); ok {
		return v, nil
	}
	if r, c, ok := cellref.Parse(expr); ok {
		if v, ok := ev.cellNumber(r, c); ok {
			return v, nil
		}
	}
	return 0, errInvalid
}
