package formula

import (
	"strings"

	"github.com/codefionn/xl/internal/cellref"
)

func (ev *evaluation) ifFunc(args []string, row, col int) string {
	if len(args) != 3 {
		return Error
	}
	result, ok := ev.condition(strings.TrimSpace(args[0]), row, col)
	if !ok {
		return Error
	}
	if result {
		return ev.arg(args[1], row, col)
	}
	return ev.arg(args[2], row, col)
}

// ifError returns the fallback when the value evaluates to a sentinel.
func (ev *evaluation) ifError(args []string, row, col int) string {
	if len(args) != 2 {
		return Error
	}
	if v := ev.value(args[0], row, col); !IsError(v) {
		return v
	}
	return ev.arg(args[1], row, col)
}

// value evaluates an expression argument: quoted text is literal, a lone
// reference yields that cell's display value, and anything else is
// evaluated as a formula.
func (ev *evaluation) value(arg string, row, col int) string {
	a := strings.TrimSpace(arg)
	if s, ok := unquote(a); ok {
		return s
	}
	if r, c, ok := cellref.Parse(a); ok {
		return ev.cell(r, c)
	}
	return ev.formula("="+a, row, col)
}

// truth evaluates one AND/OR/NOT operand.
func (ev *evaluation) truth(arg string, row, col int) bool {
	a := strings.TrimSpace(arg)
	switch strings.ToUpper(a) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	if v, ok := ParseNumber(a); ok {
		return truthy(v)
	}
	if hasComparison(a) {
		result, ok := ev.condition(a, row, col)
		return ok && result
	}

	s := strings.TrimSpace(ev.arg(a, row, col))
	if strings.EqualFold(s, "TRUE") {
		return true
	}
	if v, ok := ParseNumber(s); ok {
		return truthy(v)
	}
	return false
}

func (ev *evaluation) logical(fn Func, args []string, row, col int) string {
	if len(args) == 1 && strings.TrimSpace(args[0]) == "" {
		return Error
	}
	switch fn {
	case FuncNot:
		if len(args) != 1 {
			return Error
		}
		return formatBool(!ev.truth(args[0], row, col))
	case FuncAnd:
		for _, a := range args {
			if !ev.truth(a, row, col) {
				return formatBool(false)
			}
		}
		return formatBool(true)
	default:
		for _, a := range args {
			if ev.truth(a, row, col) {
				return formatBool(true)
			}
		}
		return formatBool(false)
	}
}
