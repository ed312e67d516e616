package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/formula"
)

func ref(t *testing.T, label string) cellref.Ref {
	t.Helper()
	r, ok := cellref.ParseRef(label)
	require.True(t, ok, label)
	return r
}

func rect(t *testing.T, text string) cellref.Rect {
	t.Helper()
	r, ok := cellref.ParseRange(text)
	require.True(t, ok, text)
	return r
}

func TestSetCell(t *testing.T) {
	s := NewDefault()
	gen := s.Generation()

	s.SetCell(0, 0, "hello")
	assert.Equal(t, "hello", s.Cell(0, 0))
	assert.Equal(t, 1, s.Len())
	assert.Greater(t, s.Generation(), gen)

	s.SetCell(0, 0, "")
	assert.Equal(t, "", s.Cell(0, 0))
	assert.Zero(t, s.Len())

	s.SetCell(-1, 0, "ignored")
	assert.Zero(t, s.Len())
}

func TestBoundsAndFit(t *testing.T) {
	s := New(5, 5)
	maxRow, maxCol := s.Bounds()
	assert.Zero(t, maxRow)
	assert.Zero(t, maxCol)

	s.SetCell(120, 3, "x")
	s.SetCell(2, 30, "y")
	maxRow, maxCol = s.Bounds()
	assert.Equal(t, 120, maxRow)
	assert.Equal(t, 30, maxCol)

	s.Fit(100, 26)
	assert.Equal(t, 121, s.Rows())
	assert.Equal(t, 31, s.Cols())
}

func TestGrowNeverShrinks(t *testing.T) {
	s := New(10, 10)
	s.Grow(5, 20)
	assert.Equal(t, 10, s.Rows())
	assert.Equal(t, 20, s.Cols())
}

func TestDataEdges(t *testing.T) {
	s := NewDefault()
	s.SetCell(3, 2, "a")
	s.SetCell(3, 7, "b")
	s.SetCell(9, 2, "c")

	first, ok := s.FirstColInRow(3)
	require.True(t, ok)
	assert.Equal(t, 2, first)
	last, _ := s.LastColInRow(3)
	assert.Equal(t, 7, last)
	top, _ := s.FirstRowInCol(2)
	assert.Equal(t, 3, top)
	bottom, _ := s.LastRowInCol(2)
	assert.Equal(t, 9, bottom)

	_, ok = s.LastColInRow(50)
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	s := New(10, 10)
	s.SetCell(2, 0, "Apple pie")
	s.SetCell(0, 3, "pineapple")
	s.SetCell(1, 1, "banana")
	s.SetCell(50, 0, "apple outside")

	assert.Equal(t, []cellref.Ref{{Row: 0, Col: 3}, {Row: 2, Col: 0}}, s.Find("APPLE"))
	assert.Nil(t, s.Find(""))
	assert.Empty(t, s.Find("cherry"))
}

func TestInsertAndDeleteRows(t *testing.T) {
	s := New(5, 3)
	s.SetCell(0, 0, "r0")
	s.SetCell(1, 0, "r1")
	s.SetCell(2, 0, "r2")
	s.SetStyle(2, 0, Style{Bold: true})
	s.SetRowHeight(2, 3)

	s.InsertRowAfter(0)
	assert.Equal(t, 6, s.Rows())
	assert.Equal(t, "r0", s.Cell(0, 0))
	assert.Equal(t, "", s.Cell(1, 0))
	assert.Equal(t, "r1", s.Cell(2, 0))
	assert.Equal(t, "r2", s.Cell(3, 0))
	assert.True(t, s.Style(3, 0).Bold)
	assert.Equal(t, 3, s.RowHeight(3))
	assert.Equal(t, 1, s.RowHeight(2))

	s.DeleteRow(2)
	assert.Equal(t, 5, s.Rows())
	assert.Equal(t, "r2", s.Cell(2, 0))
	assert.True(t, s.Style(2, 0).Bold)
	assert.Equal(t, 3, s.RowHeight(2))
}

func TestInsertAndDeleteCols(t *testing.T) {
	s := New(3, 3)
	s.SetCell(0, 0, "a")
	s.SetCell(0, 1, "b")
	s.SetColWidth(1, 20)

	s.InsertColAfter(0)
	assert.Equal(t, 4, s.Cols())
	assert.Equal(t, "b", s.Cell(0, 2))
	assert.Equal(t, 20, s.ColWidth(2))

	s.DeleteCol(0)
	assert.Equal(t, 3, s.Cols())
	assert.Equal(t, "", s.Cell(0, 0))
	assert.Equal(t, "b", s.Cell(0, 1))
	assert.Equal(t, 20, s.ColWidth(1))
}

func TestDeleteKeepsOneRowAndCol(t *testing.T) {
	s := New(1, 1)
	s.SetCell(0, 0, "x")
	s.DeleteRow(0)
	s.DeleteCol(0)
	assert.Equal(t, 1, s.Rows())
	assert.Equal(t, 1, s.Cols())
	assert.Zero(t, s.Len())
}

func TestSizing(t *testing.T) {
	s := NewDefault()
	assert.Equal(t, 10, s.ColWidth(0))

	tests := []struct {
		set, want int
	}{
		{15, 15},
		{2, 4},
		{100, 40},
		{10, 10},
	}
	for _, tt := range tests {
		s.SetColWidth(0, tt.set)
		assert.Equal(t, tt.want, s.ColWidth(0))
	}
	assert.Empty(t, s.ColWidths())

	s.SetRowHeight(0, 0)
	assert.Equal(t, 1, s.RowHeight(0))
	s.SetRowHeight(0, 50)
	assert.Equal(t, 10, s.RowHeight(0))
	assert.Equal(t, map[int]int{0: 10}, s.RowHeights())
}

func TestStyles(t *testing.T) {
	s := NewDefault()
	s.UpdateStyles(rect(t, "A1:B2"), func(st Style) Style {
		st.FG = "#ff0000"
		return st
	})
	assert.Equal(t, "#ff0000", s.Style(1, 1).FG)
	assert.Len(t, s.StyledRefs(), 4)

	s.ClearStyles(rect(t, "A1:A2"))
	assert.False(t, s.HasStyle(0, 0))
	assert.True(t, s.HasStyle(0, 1))

	s.SetStyle(0, 1, Style{})
	assert.False(t, s.HasStyle(0, 1))
}

func TestAlignCycle(t *testing.T) {
	a := AlignAuto
	seen := []Align{a}
	for range 4 {
		a = a.Next()
		seen = append(seen, a)
	}
	assert.Equal(t, []Align{AlignAuto, AlignLeft, AlignCenter, AlignRight, AlignAuto}, seen)
	assert.Equal(t, AlignCenter, ParseAlign(AlignCenter.String()))
}

func TestCopyPaste(t *testing.T) {
	s := NewDefault()
	s.SetCell(0, 0, "1")
	s.SetCell(1, 1, "=A1*2")
	s.SetStyle(0, 1, Style{Bold: true})

	clip := s.Copy(rect(t, "A1:B2"), false)
	assert.Equal(t, "1\t\n\t=A1*2", clip.Text)
	assert.Len(t, clip.Cells, 3)

	next := s.PasteClip(clip, ref(t, "D5"))
	assert.Equal(t, "1", s.Cell(4, 3))
	assert.Equal(t, "=A1*2", s.Cell(5, 4))
	assert.True(t, s.Style(4, 4).Bold)
	assert.Equal(t, "1", s.Cell(0, 0))
	assert.False(t, next.Cut)
}

func TestCutPasteClearsOrigin(t *testing.T) {
	s := NewDefault()
	s.SetCell(0, 0, "a")
	s.SetCell(0, 1, "b")

	clip := s.Copy(rect(t, "A1:B1"), true)
	next := s.PasteClip(clip, ref(t, "B1"))

	assert.Equal(t, "", s.Cell(0, 0))
	assert.Equal(t, "a", s.Cell(0, 1))
	assert.Equal(t, "b", s.Cell(0, 2))
	assert.False(t, next.Cut)

	s.PasteClip(next, ref(t, "A3"))
	assert.Equal(t, "a", s.Cell(2, 0))
	assert.Equal(t, "a", s.Cell(0, 1))
}

func TestPasteGrows(t *testing.T) {
	s := New(2, 2)
	s.SetCell(0, 0, "x")
	s.PasteClip(s.Copy(rect(t, "A1:A1"), false), ref(t, "E9"))
	assert.Equal(t, 9, s.Rows())
	assert.Equal(t, 5, s.Cols())
}

func TestPasteText(t *testing.T) {
	s := New(2, 2)
	s.SetCell(1, 2, "keep")
	s.PasteText("a\tb\r\n\t\tc\n", ref(t, "B1"))

	assert.Equal(t, "a", s.Cell(0, 1))
	assert.Equal(t, "b", s.Cell(0, 2))
	assert.Equal(t, "keep", s.Cell(1, 2))
	assert.Equal(t, "c", s.Cell(1, 3))
	assert.Equal(t, 2, s.Rows())
	assert.Equal(t, 4, s.Cols())
}

func TestStats(t *testing.T) {
	s := NewDefault()
	s.SetCell(0, 0, "1")
	s.SetCell(0, 1, "2")
	s.SetCell(1, 0, "text")
	s.SetCell(2, 1, "=A1+A2")
	e := formula.New(s)

	st, ok := s.Stats(rect(t, "A1:B3"), e.EvaluateCell)
	require.True(t, ok)
	assert.Equal(t, Stats{Rows: 3, Cells: 4, Numeric: 2, Sum: 3}, st)

	_, ok = s.Stats(rect(t, "D1:E5"), e.EvaluateCell)
	assert.False(t, ok)
}

func TestAutoClose(t *testing.T) {
	assert.Equal(t, "=SUM(A1:A3)", AutoClose("=SUM(A1:A3"))
	assert.Equal(t, "=IF(A1>0,ABS(B1))", AutoClose("=IF(A1>0,ABS(B1"))
	assert.Equal(t, "=SUM(A1)", AutoClose("=SUM(A1)"))
	assert.Equal(t, "(note", AutoClose("(note"))
}

func TestSheetDrivesEngine(t *testing.T) {
	s := NewDefault()
	s.SetCell(0, 0, "2")
	s.SetCell(0, 1, "=A1*21")
	assert.Equal(t, "42", formula.New(s, formula.WithMemo()).EvaluateCell(0, 1))
}
