package formula

import (
	"strings"

	"github.com/codefionn/xl/internal/cellref"
)

// vlookup implements VLOOKUP(value, table, col_index[, range_lookup]).
// Approximate mode assumes the first column is sorted ascending; unsorted
// tables give whatever the scan finds before the first larger key.
func (ev *evaluation) vlookup(args []string, row, col int) string {
	if len(args) < 3 || len(args) > 4 {
		return Error
	}
	table, ok := cellref.ParseRange(strings.TrimSpace(args[1]))
	if !ok {
		return Error
	}
	index, ok := ev.argInt(args[2], row, col)
	if !ok || index < 1 || index > table.Cols() {
		return Error
	}
	exact := false
	if len(args) == 4 {
		flag := strings.TrimSpace(ev.arg(args[3], row, col))
		exact = strings.EqualFold(flag, "FALSE") || flag == "0"
	}

	needle := ev.arg(args[0], row, col)
	needleNum, needleNumeric := ParseNumber(needle)
	target := table.Min.Col + index - 1

	if exact {
		for r := table.Min.Row; r <= table.Max.Row; r++ {
			key := ev.cell(r, table.Min.Col)
			if keyNum, ok := ParseNumber(key); ok && needleNumeric {
				if compare("=", keyNum, needleNum) {
					return ev.cell(r, target)
				}
				continue
			}
			if strings.EqualFold(key, needle) {
				return ev.cell(r, target)
			}
		}
		return NA
	}

	if !needleNumeric {
		return NA
	}
	found := -1
	for r := table.Min.Row; r <= table.Max.Row; r++ {
		keyNum, ok := ParseNumber(ev.cell(r, table.Min.Col))
		if !ok {
			continue
		}
		if keyNum > needleNum {
			break
		}
		found = r
	}
	if found < 0 {
		return NA
	}
	return ev.cell(found, target)
}
