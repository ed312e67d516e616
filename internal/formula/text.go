package formula

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/codefionn/xl/internal/cellref"
)

func (ev *evaluation) text(fn Func, args []string, row, col int) string {
	if fn == FuncConcat {
		return ev.concat(args, row, col)
	}

	switch fn {
	case FuncLeft, FuncRight:
		if len(args) < 1 || len(args) > 2 {
			return Error
		}
	case FuncMid:
		if len(args) != 3 {
			return Error
		}
	default:
		if len(args) != 1 {
			return Error
		}
	}

	s := ev.arg(args[0], row, col)
	runes := []rune(s)

	switch fn {
	case FuncLen:
		return strconv.Itoa(len(runes))
	case FuncTrim:
		return trimSpaces(s)
	case FuncUpper:
		return strings.ToUpper(s)
	case FuncLower:
		return strings.ToLower(s)
	case FuncProper:
		return proper(s)
	case FuncLeft, FuncRight:
		n := 1
		if len(args) == 2 {
			var ok bool
			if n, ok = ev.argInt(args[1], row, col); !ok || n < 0 {
				return Error
			}
		}
		n = min(n, len(runes))
		if fn == FuncLeft {
			return string(runes[:n])
		}
		return string(runes[len(runes)-n:])
	case FuncMid:
		start, ok := ev.argInt(args[1], row, col)
		if !ok || start < 1 {
			return Error
		}
		n, ok := ev.argInt(args[2], row, col)
		if !ok || n < 0 {
			return Error
		}
		if start > len(runes) {
			return ""
		}
		end := min(start-1+n, len(runes))
		return string(runes[start-1 : end])
	}
	return Error
}

func (ev *evaluation) concat(args []string, row, col int) string {
	var b strings.Builder
	for _, arg := range args {
		a := strings.TrimSpace(arg)
		if isRange(a) {
			rect, ok := cellref.ParseRange(a)
			if !ok {
				return Error
			}
			rect.Each(func(r, c int) bool {
				b.WriteString(ev.cell(r, c))
				return true
			})
			continue
		}
		b.WriteString(ev.arg(a, row, col))
	}
	return b.String()
}

func proper(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// trimSpaces drops leading and trailing spaces and collapses inner runs of
// spaces to one. Tabs and newlines are kept.
func trimSpaces(s string) string {
	words := strings.Split(s, " ")
	words = slices.DeleteFunc(words, func(w string) bool { return w == "" })
	return strings.Join(words, " ")
}
