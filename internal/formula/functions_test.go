package formula

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formulaCase struct {
	formula  string
	expected string
}

func runCases(t *testing.T, cells map[string]string, tests []formulaCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			assert.Equal(t, tt.expected, eval(t, cells, tt.formula))
		})
	}
}

func TestAggregates(t *testing.T) {
	cells := map[string]string{"A1": "1", "A2": "2", "A3": "3", "A4": "x", "B1": "4"}

	runCases(t, cells, []formulaCase{
		{"=SUM(A1:A3)", "6"},
		{"=SUM(A3:A1)", "6"},
		{"=sum(A1:A4)", "6"},
		{"=SUM(A1:A3,B1,10)", "20"},
		{"=SUM(SUM(A1:A2),3)", "6"},
		{"=SUM()", "0"},
		{"=SUM(C1:C9)", "0"},
		{"=SUM(A1:ZZ)", Error},
		{"=AVG(A1:A3)", "2"},
		{"=AVERAGE(A1:A4)", "2"},
		{"=AVG()", Error},
		{"=MIN(A1:A3,B1)", "1"},
		{"=MAX(A1:A3,B1)", "4"},
		{"=MAX(C1:C3)", Error},
		{"=COUNT(A1:A4)", "3"},
		{"=COUNTA(A1:A4)", "4"},
		{"=COUNTA(A1:A4,\"y\")", "5"},
		{"=PRODUCT(A1:A3,B1)", "24"},
		{"=PRODUCT(C1:C2)", Error},
		{"=MEDIAN(A1:A3)", "2"},
		{"=MEDIAN(A1:A3,B1)", "2.5"},
		{"=MEDIAN(B1,A3,A1)", "3"},
	})
}

func TestAggregatesSwappedCorners(t *testing.T) {
	cells := map[string]string{
		"A1": "1", "A2": "4", "A3": "x",
		"B1": "2", "B3": "8",
		"C1": "3", "C2": "1", "C3": "2",
	}

	for _, fn := range []string{"SUM", "AVG", "MIN", "MAX", "COUNT", "COUNTA", "PRODUCT", "MEDIAN"} {
		want := eval(t, cells, "="+fn+"(A1:B3)")
		require.NotEqual(t, Error, want, fn)
		for _, rng := range []string{"B3:A1", "A3:B1", "B1:A3"} {
			assert.Equal(t, want, eval(t, cells, "="+fn+"("+rng+")"), fn+" "+rng)
		}
	}

	want := eval(t, cells, "=CORREL(A1:A3,C1:C3)")
	assert.Equal(t, "-1.000000", want)
	assert.Equal(t, want, eval(t, cells, "=CORREL(A3:A1,C3:C1)"))
	assert.Equal(t, want, eval(t, cells, "=CORREL(A3:A1,C1:C3)"))
}

func TestCorrelLargeRangesStayFlat(t *testing.T) {
	cells := map[string]string{"A1": "1", "A2": "2", "A3": "3", "B1": "2", "B2": "4", "B3": "6"}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	got := eval(t, cells, "=CORREL(A1:A2000000,B1:B2000000)")
	runtime.ReadMemStats(&after)

	assert.Equal(t, "1.000000", got)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

func TestArgumentsSplitInsideQuotes(t *testing.T) {
	cells := map[string]string{"A1": "10"}

	runCases(t, cells, []formulaCase{
		{`=IF(A1>5,"a,b","no")`, Error},
		{`=IF(A1>5,"a b","no")`, "a b"},
		{`=LEN("a,b")`, Error},
	})
}

func TestCorrel(t *testing.T) {
	cells := map[string]string{
		"A1": "1", "A2": "2", "A3": "3",
		"B1": "100", "B2": "200", "B3": "300",
		"C1": "3", "C2": "2", "C3": "1",
		"D1": "5", "D2": "5", "D3": "5",
	}

	runCases(t, cells, []formulaCase{
		{"=CORREL(A1:A3,B1:B3)", "1.000000"},
		{"=CORREL(A1:A3,C1:C3)", "-1.000000"},
		{"=CORREL(A1:A3,D1:D3)", DivZero},
		{"=CORREL(A1:A3,B1:B2)", Error},
		{"=CORREL(E1:E3,F1:F3)", Error},
		{"=CORREL(A1:A3)", Error},
	})
}

func TestConditionalAggregates(t *testing.T) {
	cells := map[string]string{
		"A1": "1", "A2": "2", "A3": "3", "A4": "x",
		"C1": "apple", "C2": "Banana", "C3": "application",
		"D1": ">1",
	}

	runCases(t, cells, []formulaCase{
		{`=COUNTIF(A1:A4,">1")`, "2"},
		{`=COUNTIF(A1:A4,D1)`, "2"},
		{`=COUNTIF(A1:A4,"<>2")`, "2"},
		{`=COUNTIF(A1:A4,2)`, "1"},
		{`=COUNTIF(C1:C3,"banana")`, "1"},
		{`=COUNTIF(C1:C3,"app*")`, "2"},
		{`=COUNTIF(C1:C3,"?ana*")`, "1"},
		{`=COUNTIF(A1:A4)`, Error},
		{`=SUMIF(A1:A4,">1")`, "5"},
		{`=SUMIF(C1:C3,"apple",A1:A3)`, "1"},
		{`=SUMIF(C1:C3,"app*",A1:A3)`, "4"},
		{`=AVERAGEIF(A1:A3,">=2")`, "2.5"},
		{`=AVERAGEIF(A1:A3,">5")`, DivZero},
		{`=SUMIF(bad,">1")`, Error},
	})
}

func TestLogical(t *testing.T) {
	cells := map[string]string{"A1": "1", "A2": "0", "A3": "TRUE", "A4": "hello", "B1": "=A1>0"}

	runCases(t, cells, []formulaCase{
		{`=IF(A1>2,"big","small")`, "small"},
		{`=IF(A1=1,10,20)`, "10"},
		{`=IF(A1<>1,10,20)`, "20"},
		{`=IF(A1>=1,A1+1,0)`, "2"},
		{`=IF(A1,"yes","no")`, "yes"},
		{`=IF(A2,"yes","no")`, "no"},
		{`=IF(A4>1,1,2)`, Error},
		{`=IF(A1>0,"only")`, Error},
		{`=IF(SUM(A1:A2)>0,"pos","neg")`, "pos"},
		{`=IFERROR(10/0,"fallback")`, "fallback"},
		{`=IFERROR(5+3,"fallback")`, "8"},
		{`=IFERROR(A4,"fallback")`, "hello"},
		{`=IFERROR(SQRT(-1),A1)`, "1"},
		{`=IFERROR(1)`, Error},
		{`=AND(TRUE,1)`, "TRUE"},
		{`=AND(TRUE,0)`, "FALSE"},
		{`=AND(A1>0,A3)`, "TRUE"},
		{`=AND(true,A4)`, "FALSE"},
		{`=OR(FALSE,A1>0)`, "TRUE"},
		{`=OR(A2,FALSE)`, "FALSE"},
		{`=NOT(FALSE)`, "TRUE"},
		{`=NOT(A1)`, "FALSE"},
		{`=NOT(TRUE,FALSE)`, Error},
		{`=AND()`, Error},
		{`=OR()`, Error},
	})
}

func TestMath(t *testing.T) {
	cells := map[string]string{"A1": "-4", "A2": "2.675"}

	runCases(t, cells, []formulaCase{
		{"=ROUND(A2,2)", "2.68"},
		{"=ROUND(2.5)", "3"},
		{"=ROUND(-2.5)", "-3"},
		{"=ROUND(1234.5,-2)", "1200"},
		{"=ROUND(1,2,3)", Error},
		{"=ABS(A1)", "4"},
		{"=ABS(x)", Error},
		{"=INT(-2.5)", "-3"},
		{"=INT(2.9)", "2"},
		{"=MOD(-7,3)", "2"},
		{"=MOD(7,-3)", "-2"},
		{"=MOD(7,3)", "1"},
		{"=MOD(1,0)", DivZero},
		{"=SQRT(16)", "4"},
		{"=SQRT(A1)", NumError},
		{"=POWER(2,10)", "1024"},
		{"=POWER(0,-1)", NumError},
		{"=POWER(2)", Error},
		{"=ABS(SUM(A1,1))", "3"},
	})
}

func TestText(t *testing.T) {
	cells := map[string]string{"A1": "hello", "B1": "world", "C1": "=UPPER(A1)", "D1": "3", "A9": " a\tb   c "}

	runCases(t, cells, []formulaCase{
		{`=LEFT("hello",2)`, "he"},
		{`=LEFT(A1)`, "h"},
		{`=LEFT(A1,99)`, "hello"},
		{`=LEFT(A1,-1)`, Error},
		{`=RIGHT(A1,3)`, "llo"},
		{`=RIGHT('hello')`, "o"},
		{`=MID(A1,2,3)`, "ell"},
		{`=MID(A1,D1,10)`, "llo"},
		{`=MID(A1,9,2)`, ""},
		{`=MID(A1,0,1)`, Error},
		{`=MID(A1,1,-1)`, Error},
		{`=LEN("héllo")`, "5"},
		{`=LEN(A1)`, "5"},
		{`=LEN("(")`, "1"},
		{`=TRIM("  a   b ")`, "a b"},
		{"=TRIM(A9)", "a\tb c"},
		{`=UPPER(A1)`, "HELLO"},
		{`=LOWER("MiXeD")`, "mixed"},
		{`=PROPER("hello wORLD-foo")`, "Hello World-Foo"},
		{`=CONCAT(A1:B1,"!")`, "helloworld!"},
		{`=CONCATENATE(A1," ",B1)`, "hello world"},
		{`=CONCAT(C1,LEN(B1))`, "HELLO5"},
		{`=LEN()`, "0"},
	})
}

func TestVLookup(t *testing.T) {
	cells := map[string]string{
		"A1": "1", "B1": "100",
		"A2": "2", "B2": "200",
		"A3": "3", "B3": "300",
		"D1": "a", "E1": "first",
		"D2": "B", "E2": "second",
	}

	runCases(t, cells, []formulaCase{
		{"=VLOOKUP(2,A1:B3,2)", "200"},
		{"=VLOOKUP(2.5,A1:B3,2)", "200"},
		{"=VLOOKUP(99,A1:B3,2)", "300"},
		{"=VLOOKUP(0,A1:B3,2)", NA},
		{"=VLOOKUP(3,A1:B3,1)", "3"},
		{"=VLOOKUP(2,A1:B3,2,FALSE)", "200"},
		{"=VLOOKUP(2.5,A1:B3,2,0)", NA},
		{`=VLOOKUP("b",D1:E2,2,FALSE)`, "second"},
		{"=VLOOKUP(A2,A1:B3,2,TRUE)", "200"},
		{"=VLOOKUP(2,A1:B3,3)", Error},
		{"=VLOOKUP(2,A1:B3,0)", Error},
		{"=VLOOKUP(2,A1,2)", Error},
		{"=VLOOKUP(2,A1:B3)", Error},
	})
}
