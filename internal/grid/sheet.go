// Package grid holds the in-memory sheet: cell text, per-cell styles,
// column widths and row heights.
package grid

import (
	"cmp"
	"slices"
	"strings"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/formula"
)

var _ formula.MutableGrid = (*Sheet)(nil)

// Sheet is a sparse grid. It is not safe for concurrent use.
type Sheet struct {
	cells      map[cellref.Ref]string
	styles     map[cellref.Ref]Style
	colWidths  map[int]int
	rowHeights map[int]int
	rows, cols int
	gen        uint64
}

// New creates an empty sheet. Dimensions below 1 are raised to 1.
func New(rows, cols int) *Sheet {
	return &Sheet{
		cells:      make(map[cellref.Ref]string),
		styles:     make(map[cellref.Ref]Style),
		colWidths:  make(map[int]int),
		rowHeights: make(map[int]int),
		rows:       max(rows, 1),
		cols:       max(cols, 1),
	}
}

// NewDefault creates an empty sheet with the default dimensions.
func NewDefault() *Sheet {
	return New(consts.DefaultRows, consts.DefaultCols)
}

func (s *Sheet) Rows() int { return s.rows }
func (s *Sheet) Cols() int { return s.cols }

// Generation increments on every mutation.
func (s *Sheet) Generation() uint64 { return s.gen }

func (s *Sheet) touch() { s.gen++ }

// Cell returns the raw text, or "" when the cell is absent.
func (s *Sheet) Cell(row, col int) string {
	return s.cells[cellref.Ref{Row: row, Col: col}]
}

// SetCell stores text. Empty text removes the cell.
func (s *Sheet) SetCell(row, col int, text string) {
	if row < 0 || col < 0 {
		return
	}
	ref := cellref.Ref{Row: row, Col: col}
	if text == "" {
		delete(s.cells, ref)
	} else {
		s.cells[ref] = text
	}
	s.touch()
}

// Delete removes the cell text, keeping its style.
func (s *Sheet) Delete(row, col int) {
	s.SetCell(row, col, "")
}

// ClearRect removes the text of every cell in r.
func (s *Sheet) ClearRect(r cellref.Rect) {
	for ref := range s.cells {
		if r.Contains(ref.Row, ref.Col) {
			delete(s.cells, ref)
		}
	}
	s.touch()
}

// Clear removes all cells and formatting. Dimensions are kept.
func (s *Sheet) Clear() {
	clear(s.cells)
	clear(s.styles)
	clear(s.colWidths)
	clear(s.rowHeights)
	s.touch()
}

// Grow raises the dimensions to at least rows x cols.
func (s *Sheet) Grow(rows, cols int) {
	if rows <= s.rows && cols <= s.cols {
		return
	}
	s.rows = max(s.rows, rows)
	s.cols = max(s.cols, cols)
	s.touch()
}

// Fit sets the dimensions to the data bounds plus one, but never below
// minRows x minCols.
func (s *Sheet) Fit(minRows, minCols int) {
	maxRow, maxCol := s.Bounds()
	s.rows = max(maxRow+1, minRows, 1)
	s.cols = max(maxCol+1, minCols, 1)
	s.touch()
}

// Len is the number of non-empty cells.
func (s *Sheet) Len() int { return len(s.cells) }

// Bounds returns the largest row and column holding data, (0, 0) when empty.
func (s *Sheet) Bounds() (maxRow, maxCol int) {
	for ref := range s.cells {
		maxRow = max(maxRow, ref.Row)
		maxCol = max(maxCol, ref.Col)
	}
	return maxRow, maxCol
}

// Refs lists the non-empty cells in row-major order.
func (s *Sheet) Refs() []cellref.Ref {
	refs := make([]cellref.Ref, 0, len(s.cells))
	for ref := range s.cells {
		refs = append(refs, ref)
	}
	sortRefs(refs)
	return refs
}

func sortRefs(refs []cellref.Ref) {
	slices.SortFunc(refs, compareRefs)
}

func compareRefs(a, b cellref.Ref) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// Find lists cells whose raw text contains query, case-insensitively, in
// row-major order. Only cells inside the dimensions are searched.
func (s *Sheet) Find(query string) []cellref.Ref {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)
	var found []cellref.Ref
	for _, ref := range s.Refs() {
		if ref.Row >= s.rows || ref.Col >= s.cols {
			continue
		}
		if strings.Contains(strings.ToLower(s.cells[ref]), needle) {
			found = append(found, ref)
		}
	}
	return found
}

// FirstColInRow returns the leftmost column with data in row.
func (s *Sheet) FirstColInRow(row int) (int, bool) {
	return s.extreme(func(r cellref.Ref) (int, bool) { return r.Col, r.Row == row }, false)
}

// LastColInRow returns the rightmost column with data in row.
func (s *Sheet) LastColInRow(row int) (int, bool) {
	return s.extreme(func(r cellref.Ref) (int, bool) { return r.Col, r.Row == row }, true)
}

// FirstRowInCol returns the topmost row with data in col.
func (s *Sheet) FirstRowInCol(col int) (int, bool) {
	return s.extreme(func(r cellref.Ref) (int, bool) { return r.Row, r.Col == col }, false)
}

// LastRowInCol returns the bottommost row with data in col.
func (s *Sheet) LastRowInCol(col int) (int, bool) {
	return s.extreme(func(r cellref.Ref) (int, bool) { return r.Row, r.Col == col }, true)
}

func (s *Sheet) extreme(pick func(cellref.Ref) (int, bool), largest bool) (int, bool) {
	best, found := 0, false
	for ref := range s.cells {
		v, ok := pick(ref)
		if !ok {
			continue
		}
		if !found || (largest && v > best) || (!largest && v < best) {
			best, found = v, true
		}
	}
	return best, found
}

// Stats summarizes the non-empty cells of a selection.
type Stats struct {
	Rows    int // rows holding at least one non-empty cell
	Cells   int
	Numeric int
	Sum     float64
}

// Stats evaluates every non-empty cell of r through eval. ok is false when
// the selection holds no data.
func (s *Sheet) Stats(r cellref.Rect, eval func(row, col int) string) (Stats, bool) {
	var st Stats
	rows := make(map[int]struct{})
	for _, ref := range s.Refs() {
		if !r.Contains(ref.Row, ref.Col) {
			continue
		}
		st.Cells++
		rows[ref.Row] = struct{}{}
		if v, ok := formula.ParseNumber(eval(ref.Row, ref.Col)); ok {
			st.Numeric++
			st.Sum += v
		}
	}
	st.Rows = len(rows)
	return st, st.Cells > 0
}

// AutoClose appends the ")" a formula is missing. Other text is returned
// unchanged.
func AutoClose(text string) string {
	if !formula.IsFormula(text) {
		return text
	}
	if missing := strings.Count(text, "(") - strings.Count(text, ")"); missing > 0 {
		return text + strings.Repeat(")", missing)
	}
	return text
}
