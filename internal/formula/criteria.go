package formula

import (
	"strconv"
	"strings"
)

// criterion is a parsed COUNTIF-family test.
type criterion struct {
	op       string
	num      float64
	numeric  bool
	text     string
	wildcard bool
}

// parseCriterion reads ">5", "<>apple", "app*" or "5". Leading comparison
// operators compare numerically. Wildcards are reduced to a substring test:
// the * and ? characters are removed and the remainder must be contained in
// the cell text.
func parseCriterion(s string) criterion {
	for _, op := range comparisonOps {
		if strings.HasPrefix(s, op) {
			rest := strings.TrimSpace(s[len(op):])
			v, ok := ParseNumber(rest)
			return criterion{op: op, num: v, numeric: ok, text: rest}
		}
	}
	if strings.ContainsAny(s, "*?") {
		stripped := strings.NewReplacer("*", "", "?", "").Replace(s)
		return criterion{text: stripped, wildcard: true}
	}
	v, ok := ParseNumber(s)
	return criterion{num: v, numeric: ok, text: s}
}

func (c criterion) match(value string) bool {
	if c.op != "" {
		if c.numeric {
			v, ok := ParseNumber(value)
			return ok && compare(c.op, v, c.num)
		}
		switch c.op {
		case "=":
			return strings.EqualFold(value, c.text)
		case "<>":
			return !strings.EqualFold(value, c.text)
		}
		return false
	}
	if c.wildcard {
		return strings.Contains(strings.ToLower(value), strings.ToLower(c.text))
	}
	if c.numeric {
		if v, ok := ParseNumber(value); ok {
			return compare("=", v, c.num)
		}
	}
	return strings.EqualFold(value, c.text)
}

// conditional implements COUNTIF(range, criteria), SUMIF and AVERAGEIF
// (range, criteria[, value_range]). value_range is read at the same offset
// as each matching criteria cell.
func (ev *evaluation) conditional(fn Func, args []string, row, col int) string {
	if (fn == FuncCountIf && len(args) != 2) || len(args) < 2 || len(args) > 3 {
		return Error
	}
	crit, ok := rectArg(args[0])
	if !ok {
		return Error
	}
	values := crit
	if len(args) == 3 {
		if values, ok = rectArg(args[2]); !ok {
			return Error
		}
	}
	c := parseCriterion(ev.arg(args[1], row, col))

	count, sum, numeric := 0, 0.0, 0
	crit.Each(func(r, k int) bool {
		if !c.match(ev.cell(r, k)) {
			return true
		}
		count++
		vr := values.Min.Row + (r - crit.Min.Row)
		vc := values.Min.Col + (k - crit.Min.Col)
		if v, ok := ev.cellNumber(vr, vc); ok {
			sum += v
			numeric++
		}
		return true
	})

	switch fn {
	case FuncCountIf:
		return strconv.Itoa(count)
	case FuncSumIf:
		return FormatNumber(sum)
	default:
		if numeric == 0 {
			return DivZero
		}
		return FormatNumber(sum / float64(numeric))
	}
}
