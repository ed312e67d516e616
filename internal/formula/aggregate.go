package formula

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/codefionn/xl/internal/cellref"
)

// numbers collects the numeric values denoted by args. Ranges contribute
// every numeric cell; other arguments contribute their value when it is a
// number. ok is false when a range argument is malformed.
func (ev *evaluation) numbers(args []string, row, col int) (vals []float64, ok bool) {
	for _, arg := range args {
		a := strings.TrimSpace(arg)
		if a == "" {
			continue
		}
		if isRange(a) {
			rect, ok := cellref.ParseRange(a)
			if !ok {
				return nil, false
			}
			rect.Each(func(r, c int) bool {
				if v, ok := ev.cellNumber(r, c); ok {
					vals = append(vals, v)
				}
				return true
			})
			continue
		}
		if v, ok := ev.argNumber(a, row, col); ok {
			vals = append(vals, v)
		}
	}
	return vals, true
}

func (ev *evaluation) aggregate(fn Func, args []string, row, col int) string {
	vals, ok := ev.numbers(args, row, col)
	if !ok {
		return Error
	}

	switch fn {
	case FuncSum:
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		return FormatNumber(sum)
	case FuncCount:
		return strconv.Itoa(len(vals))
	}

	if len(vals) == 0 {
		return Error
	}

	switch fn {
	case FuncAvg:
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		return FormatNumber(sum / float64(len(vals)))
	case FuncMin:
		m := vals[0]
		for _, v := range vals[1:] {
			m = math.Min(m, v)
		}
		return FormatNumber(m)
	case FuncMax:
		m := vals[0]
		for _, v := range vals[1:] {
			m = math.Max(m, v)
		}
		return FormatNumber(m)
	case FuncProduct:
		p := 1.0
		for _, v := range vals {
			p *= v
		}
		return FormatNumber(p)
	case FuncMedian:
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 1 {
			return FormatNumber(sorted[n/2])
		}
		return FormatNumber((sorted[n/2-1] + sorted[n/2]) / 2)
	}
	return Error
}

// countA counts non-empty cells and non-empty arguments; text counts.
func (ev *evaluation) countA(args []string, row, col int) string {
	n := 0
	for _, arg := range args {
		a := strings.TrimSpace(arg)
		if a == "" {
			continue
		}
		if isRange(a) {
			rect, ok := cellref.ParseRange(a)
			if !ok {
				return Error
			}
			rect.Each(func(r, c int) bool {
				if ev.e.grid.Cell(r, c) != "" {
					n++
				}
				return true
			})
			continue
		}
		if ev.arg(a, row, col) != "" {
			n++
		}
	}
	return strconv.Itoa(n)
}

// correl is the Pearson correlation of two equally sized ranges. Pairs
// where either cell is not numeric are dropped.
func (ev *evaluation) correl(args []string) string {
	if len(args) != 2 {
		return Error
	}
	a, ok := rectArg(args[0])
	if !ok {
		return Error
	}
	b, ok := rectArg(args[1])
	if !ok {
		return Error
	}
	if a.Rows()*a.Cols() != b.Rows()*b.Cols() {
		return Error
	}

	var px, py []float64
	for i := range a.Rows() * a.Cols() {
		xr, yr := nth(a, i), nth(b, i)
		x, xok := ev.cellNumber(xr.Row, xr.Col)
		y, yok := ev.cellNumber(yr.Row, yr.Col)
		if xok && yok {
			px = append(px, x)
			py = append(py, y)
		}
	}
	if len(px) == 0 {
		return Error
	}

	n := float64(len(px))
	var meanX, meanY float64
	for i := range px {
		meanX += px[i]
		meanY += py[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range px {
		dx, dy := px[i]-meanX, py[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return DivZero
	}
	return strconv.FormatFloat(cov/math.Sqrt(varX*varY), 'f', 6, 64)
}

// nth is the i-th cell of r in row-major order.
func nth(r cellref.Rect, i int) cellref.Ref {
	cols := r.Cols()
	return cellref.Ref{Row: r.Min.Row + i/cols, Col: r.Min.Col + i%cols}
}
