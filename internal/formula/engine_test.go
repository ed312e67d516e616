package formula

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, cells map[string]string, formula string) string {
	t.Helper()
	return New(newTestGrid(cells)).EvaluateFormula(formula, 50, 20)
}

func TestArithmetic(t *testing.T) {
	cells := map[string]string{"A1": "5", "B1": "3", "C1": "hello", "D1": "=A1*2", "E1": "0"}

	tests := []struct {
		formula  string
		expected string
	}{
		{"=1+2*3", "7"},
		{"=10-3-2", "5"},
		{"=8/2/2", "2"},
		{"=-3+1", "-2"},
		{"=-3*2", "-6"},
		{"=1e3+1", "1001"},
		{"=2*(3+4)", Error},
		{"=(1+2)*3", Error},
		{"=1e-5+1", Error},
		{"=2*-3", Error},
		{"=5--3", Error},
		{"=-(2+3)", Error},
		{"=SUM(A1-1,2)*2", Error},
		{"=A1+B1", "8"},
		{"=a1-b1", "2"},
		{"=D1+1", "11"},
		{"=Z99+1", Error},
		{"=0.1+0.2", "0.30000000000000004"},
		{"=7/2", "3.5"},
		{"=10/0", DivZero},
		{"=1+10/E1", DivZero},
		{"=C1+1", Error},
		{"=1+", Error},
		{"=", Error},
		{"=FOO(1)", Error},
		{"=SUM(A1:B1)*2", Error},
		{"=SUM(A1)+SUM(B1)", Error},
		{"=A1*B1/E1+1", DivZero},
		{"1+1", "2"},
		{"=42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			assert.Equal(t, tt.expected, eval(t, cells, tt.formula))
		})
	}
}

func TestArithmeticLongChains(t *testing.T) {
	assert.Equal(t, Error, eval(t, nil, "="+strings.Repeat("-", 20000)+"1"))
	assert.Equal(t, "20000", eval(t, nil, "="+strings.Repeat("1+", 19999)+"1"))
	assert.Equal(t, "1", eval(t, nil, "="+strings.Repeat("1*", 19999)+"1"))
}

func TestEvaluateCellPassesThroughText(t *testing.T) {
	g := newTestGrid(map[string]string{"A1": "hello", "A2": "12", "A3": "=A2"})
	e := New(g)

	assert.Equal(t, "hello", e.EvaluateCell(0, 0))
	assert.Equal(t, "12", e.EvaluateCell(1, 0))
	assert.Equal(t, "12", e.EvaluateCell(2, 0))
	assert.Equal(t, "", e.EvaluateCell(5, 5))
}

func TestCycles(t *testing.T) {
	tests := []struct {
		name  string
		cells map[string]string
		cell  string
	}{
		{"self", map[string]string{"A1": "=A1"}, "A1"},
		{"pair", map[string]string{"A1": "=B1", "B1": "=A1+1"}, "A1"},
		{"through call", map[string]string{"A1": "=ABS(B1)", "B1": "=A1"}, "A1"},
		{"three", map[string]string{"A1": "=B1", "B1": "=C1", "C1": "=A1"}, "B1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(tt.cells)
			e := New(g)
			row, col, ok := ParseCellRef(tt.cell)
			require.True(t, ok)
			assert.Equal(t, Cycle, e.EvaluateCell(row, col))
		})
	}
}

func TestCycleInFormulaText(t *testing.T) {
	g := newTestGrid(map[string]string{"A1": "=A1"})
	assert.Equal(t, Cycle, New(g).EvaluateFormula("=A1+1", 3, 3))
}

func TestIdempotentWithoutShell(t *testing.T) {
	g := newTestGrid(map[string]string{
		"A1": "1", "A2": "2", "A3": "=SUM(A1:A2)", "B1": "=A3*2", "B2": "=IF(B1>5,\"big\",\"small\")",
	})
	e := New(g)
	gen := g.Generation()

	first := []string{e.EvaluateCell(0, 1), e.EvaluateCell(1, 1)}
	second := []string{e.EvaluateCell(0, 1), e.EvaluateCell(1, 1)}

	assert.Equal(t, []string{"6", "big"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, gen, g.Generation())
	assert.False(t, e.CanMutate())
}

func TestMemo(t *testing.T) {
	g := newTestGrid(map[string]string{"A1": "5", "B1": "=A1*2"})
	e := New(g, WithMemo())

	assert.Equal(t, "10", e.EvaluateCell(0, 1))
	assert.Equal(t, "10", e.EvaluateCell(0, 1))
	hits, misses := e.MemoStats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	g.Set("A1", "7")
	assert.Equal(t, "14", e.EvaluateCell(0, 1))
	hits, misses = e.MemoStats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)
}

func TestMemoSkipsCycles(t *testing.T) {
	g := newTestGrid(map[string]string{"A1": "=A1"})
	e := New(g, WithMemo())

	assert.Equal(t, Cycle, e.EvaluateCell(0, 0))
	assert.Equal(t, Cycle, e.EvaluateCell(0, 0))
	hits, _ := e.MemoStats()
	assert.Zero(t, hits)
}

func TestMemoRequiresGeneration(t *testing.T) {
	g := newTestGrid(map[string]string{"A1": "5", "B1": "=A1*2"})
	e := New(plainGrid{g}, WithMemo())

	assert.Equal(t, "10", e.EvaluateCell(0, 1))
	hits, misses := e.MemoStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{3, "3"},
		{-2.5, "-2.5"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1000000000000000000000"},
		{0.000001, "0.000001"},
		{math.NaN(), NumError},
		{math.Inf(1), NumError},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.in))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in string
		ok bool
		v  float64
	}{
		{"12", true, 12},
		{"-3.5", true, -3.5},
		{"1e3", true, 1000},
		{"", false, 0},
		{" 1", false, 0},
		{"0x10", false, 0},
		{"1_000", false, 0},
		{"NaN", false, 0},
		{"Inf", false, 0},
		{"abc", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.v, v)
			}
		})
	}
}

func TestParseCall(t *testing.T) {
	c, ok := parseCall(`LEN("(")`)
	require.True(t, ok)
	assert.Equal(t, FuncLen, c.fn)
	assert.Equal(t, `"("`, c.inner)

	c, ok = parseCall("sum(A1:A3)")
	require.True(t, ok)
	assert.Equal(t, "SUM", c.name)

	for _, expr := range []string{"SUM(A1)+SUM(B1)", "FOO(1)", "S1M(1)", "(1+2)", "SUM"} {
		_, ok := parseCall(expr)
		assert.False(t, ok, expr)
	}
}

func TestFunctionNames(t *testing.T) {
	names := FunctionNames()
	assert.Contains(t, names, "AVERAGE")
	assert.Contains(t, names, "SHELL")
	assert.IsIncreasing(t, names)
}
