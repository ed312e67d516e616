package formula

import (
	"strings"

	"github.com/codefionn/xl/internal/cellref"
)

// splitArgs splits a function argument list at commas outside parentheses.
// Quotes are not tracked: a comma inside a quoted literal still splits.
func splitArgs(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// unquote strips one layer of matching single or double quotes.
func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1], true
		}
	}
	return s, false
}

// arg evaluates a function argument to text: quoted literals unwrap, text
// with "(" is a nested formula, a reference is that cell's value, and a bare
// arithmetic expression is computed. Anything else is returned as written.
func (ev *evaluation) arg(arg string, row, col int) string {
	a := strings.TrimSpace(arg)
	if s, ok := unquote(a); ok {
		return s
	}
	if strings.Contains(a, "(") {
		return ev.formula("="+a, row, col)
	}
	if r, c, ok := cellref.Parse(a); ok {
		return ev.cell(r, c)
	}
	if strings.ContainsAny(a, "+-*/") {
		if v, err := ev.arithmetic(a, row, col); err == nil {
			return FormatNumber(v)
		}
	}
	return a
}

// argNumber evaluates a function argument to a number.
func (ev *evaluation) argNumber(arg string, row, col int) (float64, bool) {
	a := strings.TrimSpace(arg)
	if strings.Contains(a, "(") {
		if _, quoted := unquote(a); !quoted {
			return ParseNumber(ev.formula("="+a, row, col))
		}
	}
	v, err := ev.arithmetic(a, row, col)
	return v, err == nil
}

// argInt evaluates a numeric argument truncated toward zero.
func (ev *evaluation) argInt(arg string, row, col int) (int, bool) {
	v, ok := ev.argNumber(arg, row, col)
	if !ok || v > 1<<31 || v < -(1<<31) {
		return 0, false
	}
	return int(v), true
}

// isRange reports whether the argument is written as a range rather than a
// nested call that happens to contain one.
func isRange(arg string) bool {
	return strings.Contains(arg, ":") && !strings.Contains(arg, "(")
}

// rectArg reads an argument that must denote cells: a range or one ref.
func rectArg(arg string) (cellref.Rect, bool) {
	a := strings.TrimSpace(arg)
	if isRange(a) {
		return cellref.ParseRange(a)
	}
	if r, ok := cellref.ParseRef(a); ok {
		return cellref.Single(r), true
	}
	return cellref.Rect{}, false
}
