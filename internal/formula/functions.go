package formula

import (
	"sort"
	"strings"
)

// Func identifies a built-in function.
type Func int

const (
	FuncSum Func = iota
	FuncAvg
	FuncMin
	FuncMax
	FuncCount
	FuncCountA
	FuncCountIf
	FuncSumIf
	FuncAverageIf
	FuncProduct
	FuncMedian
	FuncCorrel
	FuncRound
	FuncAbs
	FuncMod
	FuncSqrt
	FuncPower
	FuncInt
	FuncIf
	FuncIfError
	FuncAnd
	FuncOr
	FuncNot
	FuncVLookup
	FuncConcat
	FuncLeft
	FuncRight
	FuncMid
	FuncLen
	FuncTrim
	FuncUpper
	FuncLower
	FuncProper
	FuncShell
)

var funcsByName = map[string]Func{
	"SUM":         FuncSum,
	"AVG":         FuncAvg,
	"AVERAGE":     FuncAvg,
	"MIN":         FuncMin,
	"MAX":         FuncMax,
	"COUNT":       FuncCount,
	"COUNTA":      FuncCountA,
	"COUNTIF":     FuncCountIf,
	"SUMIF":       FuncSumIf,
	"AVERAGEIF":   FuncAverageIf,
	"PRODUCT":     FuncProduct,
	"MEDIAN":      FuncMedian,
	"CORREL":      FuncCorrel,
	"ROUND":       FuncRound,
	"ABS":         FuncAbs,
	"MOD":         FuncMod,
	"SQRT":        FuncSqrt,
	"POWER":       FuncPower,
	"INT":         FuncInt,
	"IF":          FuncIf,
	"IFERROR":     FuncIfError,
	"AND":         FuncAnd,
	"OR":          FuncOr,
	"NOT":         FuncNot,
	"VLOOKUP":     FuncVLookup,
	"CONCAT":      FuncConcat,
	"CONCATENATE": FuncConcat,
	"LEFT":        FuncLeft,
	"RIGHT":       FuncRight,
	"MID":         FuncMid,
	"LEN":         FuncLen,
	"TRIM":        FuncTrim,
	"UPPER":       FuncUpper,
	"LOWER":       FuncLower,
	"PROPER":      FuncProper,
	"SHELL":       FuncShell,
}

// LookupFunc resolves a function name case-insensitively.
func LookupFunc(name string) (Func, bool) {
	f, ok := funcsByName[strings.ToUpper(name)]
	return f, ok
}

// FunctionNames lists every accepted name, aliases included, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(funcsByName))
	for name := range funcsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// call is a parsed NAME(inner) expression.
type call struct {
	fn    Func
	name  string
	inner string
}

// parseCall recognizes expr as a single function call. The "(" after the
// name must close at the final ")"; "SUM(A1)+SUM(B1)" is arithmetic, not a
// call. An unbalanced tail such as LEN("(") is still taken as a call.
func parseCall(expr string) (call, bool) {
	open := strings.IndexByte(expr, '(')
	if open <= 0 || !strings.HasSuffix(expr, ")") {
		return call{}, false
	}
	name := expr[:open]
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return call{}, false
		}
	}
	fn, ok := LookupFunc(name)
	if !ok {
		return call{}, false
	}

	depth := 0
	for i := open; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(expr)-1 {
				return call{}, false
			}
		}
	}
	return call{fn: fn, name: strings.ToUpper(name), inner: expr[open+1 : len(expr)-1]}, true
}

// invoke runs one built-in. A panic in an evaluator resolves to #ERROR so
// no input can abort a render.
func (ev *evaluation) invoke(c call, row, col int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			ev.e.log.Error("%s panicked: %v", c.name, r)
			out = Error
		}
	}()

	if c.fn == FuncShell {
		return ev.shell(c.inner, row, col)
	}

	args := splitArgs(c.inner)
	switch c.fn {
	case FuncSum, FuncAvg, FuncMin, FuncMax, FuncCount, FuncProduct, FuncMedian:
		return ev.aggregate(c.fn, args, row, col)
	case FuncCountA:
		return ev.countA(args, row, col)
	case FuncCountIf, FuncSumIf, FuncAverageIf:
		return ev.conditional(c.fn, args, row, col)
	case FuncCorrel:
		return ev.correl(args)
	case FuncRound, FuncAbs, FuncMod, FuncSqrt, FuncPower, FuncInt:
		return ev.math(c.fn, args, row, col)
	case FuncIf:
		return ev.ifFunc(args, row, col)
	case FuncIfError:
		return ev.ifError(args, row, col)
	case FuncAnd, FuncOr, FuncNot:
		return ev.logical(c.fn, args, row, col)
	case FuncVLookup:
		return ev.vlookup(args, row, col)
	case FuncConcat, FuncLeft, FuncRight, FuncMid, FuncLen, FuncTrim, FuncUpper, FuncLower, FuncProper:
		return ev.text(c.fn, args, row, col)
	}
	return Error
}
