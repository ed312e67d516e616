package formula

import (
	"math"
	"strconv"
	"strings"
)

// Error sentinels. They are displayed verbatim and are stable for scripting.
const (
	Error    = "#ERROR"
	DivZero  = "#DIV/0!"
	NumError = "#NUM!"
	NA       = "#N/A"
	Cycle    = "#CYCLE!"
)

// Shell results that are not errors.
const (
	ShellOK = "OK"
)

// ErrorDetail builds the "#ERROR: <detail>" form used for process failures.
func ErrorDetail(detail string) string {
	return Error + ": " + detail
}

// IsError reports whether an evaluation result is an error sentinel.
func IsError(s string) bool {
	return strings.HasPrefix(s, "#")
}

// IsFormula reports whether raw cell text is a formula.
func IsFormula(raw string) bool {
	return strings.HasPrefix(raw, "=")
}

// FormatNumber renders a result the way cells display it: integral values
// have no fractional part, everything else uses the shortest decimal
// expansion. Non-finite values become #NUM!.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NumError
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber parses cell text as a finite decimal number. Hex floats,
// NaN and infinities are treated as text.
func ParseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "0x") || strings.Contains(lower, "_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
