package grid

import (
	"maps"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/consts"
)

// Align is the horizontal alignment of a cell.
type Align int

const (
	// AlignAuto right-aligns numbers and left-aligns text.
	AlignAuto Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "auto"
	}
}

// ParseAlign is the inverse of Align.String. Unknown names are AlignAuto.
func ParseAlign(s string) Align {
	switch s {
	case "left":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignAuto
	}
}

// Next cycles auto, left, center, right.
func (a Align) Next() Align {
	return (a + 1) % (AlignRight + 1)
}

// Style is per-cell formatting. Colors are "#rrggbb" or empty for the
// theme default.
type Style struct {
	FG    string `json:"fg,omitempty"`
	BG    string `json:"bg,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
	Align Align  `json:"align,omitempty"`
}

// IsZero reports whether the style carries no formatting.
func (st Style) IsZero() bool {
	return st == Style{}
}

// Style returns the formatting of a cell.
func (s *Sheet) Style(row, col int) Style {
	return s.styles[cellref.Ref{Row: row, Col: col}]
}

// HasStyle reports whether the cell carries formatting.
func (s *Sheet) HasStyle(row, col int) bool {
	_, ok := s.styles[cellref.Ref{Row: row, Col: col}]
	return ok
}

// SetStyle replaces the formatting of a cell. A zero style removes it.
func (s *Sheet) SetStyle(row, col int, st Style) {
	ref := cellref.Ref{Row: row, Col: col}
	if st.IsZero() {
		delete(s.styles, ref)
	} else {
		s.styles[ref] = st
	}
	s.touch()
}

// UpdateStyles applies fn to the style of every cell in r.
func (s *Sheet) UpdateStyles(r cellref.Rect, fn func(Style) Style) {
	r.Each(func(row, col int) bool {
		s.SetStyle(row, col, fn(s.Style(row, col)))
		return true
	})
}

// ClearStyles removes formatting from every cell in r.
func (s *Sheet) ClearStyles(r cellref.Rect) {
	for ref := range s.styles {
		if r.Contains(ref.Row, ref.Col) {
			delete(s.styles, ref)
		}
	}
	s.touch()
}

// StyledRefs lists the formatted cells in row-major order.
func (s *Sheet) StyledRefs() []cellref.Ref {
	refs := make([]cellref.Ref, 0, len(s.styles))
	for ref := range s.styles {
		refs = append(refs, ref)
	}
	sortRefs(refs)
	return refs
}

// ColWidth returns the display width of a column.
func (s *Sheet) ColWidth(col int) int {
	if w, ok := s.colWidths[col]; ok {
		return w
	}
	return consts.DefaultColWidth
}

// SetColWidth clamps and stores a width. The default width is not stored.
func (s *Sheet) SetColWidth(col, width int) {
	width = max(consts.MinColWidth, min(consts.MaxColWidth, width))
	if width == consts.DefaultColWidth {
		delete(s.colWidths, col)
	} else {
		s.colWidths[col] = width
	}
	s.touch()
}

// RowHeight returns the display height of a row.
func (s *Sheet) RowHeight(row int) int {
	if h, ok := s.rowHeights[row]; ok {
		return h
	}
	return consts.DefaultRowHeight
}

// SetRowHeight clamps and stores a height. The default height is not stored.
func (s *Sheet) SetRowHeight(row, height int) {
	height = consts.ClampRowHeight(height)
	if height == consts.DefaultRowHeight {
		delete(s.rowHeights, row)
	} else {
		s.rowHeights[row] = height
	}
	s.touch()
}

// ColWidths returns a copy of the non-default widths.
func (s *Sheet) ColWidths() map[int]int {
	return maps.Clone(s.colWidths)
}

// RowHeights returns a copy of the non-default heights.
func (s *Sheet) RowHeights() map[int]int {
	return maps.Clone(s.rowHeights)
}
