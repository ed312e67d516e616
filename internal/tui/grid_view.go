package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/grid"
)

// chromeLines is everything but the grid: formula bar, column headers,
// stats line and status bar.
const chromeLines = 4

func (m *Model) gridLines() int {
	return max(1, m.height-chromeLines)
}

func (m *Model) rowHeaderWidth() int {
	return max(4, len(strconv.Itoa(m.sheet.Rows()))+1)
}

// focus is the cell the viewport follows.
func (m *Model) focus() cellref.Ref {
	if m.mode == modeRefSelect {
		return m.refCur
	}
	return m.cur
}

// ensureVisible scrolls so that the focused cell is on screen.
func (m *Model) ensureVisible() {
	m.cur = m.clamp(m.cur)
	target := m.focus()

	if target.Row < m.offRow {
		m.offRow = target.Row
	}
	for m.offRow < target.Row && m.rowSpan(m.offRow, target.Row) > m.gridLines() {
		m.offRow++
	}

	widths := m.sheet.ColWidths()
	avail := m.width - m.rowHeaderWidth()
	if target.Col < m.offCol {
		m.offCol = target.Col
	}
	for m.offCol < target.Col && m.colSpan(widths, m.offCol, target.Col) > avail {
		m.offCol++
	}
}

func (m *Model) rowSpan(from, to int) int {
	n := 0
	for r := from; r <= to; r++ {
		n += m.sheet.RowHeight(r)
	}
	return n
}

func (m *Model) colSpan(widths map[int]int, from, to int) int {
	n := 0
	for c := from; c <= to; c++ {
		n += m.colWidth(widths, c)
	}
	return n
}

func (m *Model) visibleRows() []int {
	var rows []int
	used := 0
	for r := m.offRow; r < m.sheet.Rows(); r++ {
		h := m.sheet.RowHeight(r)
		if used+h > m.gridLines() && len(rows) > 0 {
			break
		}
		rows = append(rows, r)
		used += h
	}
	return rows
}

func (m *Model) visibleCols(widths map[int]int) []int {
	var cols []int
	used := 0
	avail := m.width - m.rowHeaderWidth()
	for c := m.offCol; c < m.sheet.Cols(); c++ {
		w := m.colWidth(widths, c)
		if used+w > avail && len(cols) > 0 {
			break
		}
		cols = append(cols, c)
		used += w
	}
	return cols
}

func (m *Model) renderGrid() string {
	t := m.theme
	widths := m.sheet.ColWidths()
	cols := m.visibleCols(widths)
	rhw := m.rowHeaderWidth()

	header := lipgloss.NewStyle().Background(t.headerBG).Foreground(t.headerFG)
	headerSel := header.Background(t.selectedHeaderBG).Bold(true)
	sel := m.selection()

	sb := newFrame(m.width * m.gridLines() * 8)
	sb.WriteString(header.Width(rhw).Render(""))
	for _, c := range cols {
		st := header
		if c == m.cur.Col || (m.anchor != nil && c >= sel.Min.Col && c <= sel.Max.Col) || m.selectedLine(false, c) {
			st = headerSel
		}
		sb.WriteString(st.Width(m.colWidth(widths, c)).Align(lipgloss.Center).Render(cellref.ColumnName(c)))
	}

	for _, r := range m.visibleRows() {
		rowHdr := header
		if r == m.cur.Row || (m.anchor != nil && r >= sel.Min.Row && r <= sel.Max.Row) || m.selectedLine(true, r) {
			rowHdr = headerSel
		}
		for line := range m.sheet.RowHeight(r) {
			sb.WriteString("\n")
			label := ""
			if line == 0 {
				label = strconv.Itoa(r + 1)
			}
			sb.WriteString(rowHdr.Width(rhw).PaddingRight(1).Align(lipgloss.Right).Render(label))
			for _, c := range cols {
				text := ""
				if line == 0 {
					text = m.view.EvaluateCell(r, c)
				}
				sb.WriteString(m.renderCell(r, c, m.colWidth(widths, c), text))
			}
		}
	}
	return finish(sb)
}

func (m *Model) renderCell(row, col, width int, value string) string {
	st := m.sheet.Style(row, col)
	style := m.cellStyle(row, col, st)

	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(value)
	value = truncate.String(value, uint(max(0, width-1)))

	return style.Width(width).PaddingRight(1).Align(cellAlign(st.Align, value)).Render(value)
}

func cellAlign(a grid.Align, value string) lipgloss.Position {
	switch a {
	case grid.AlignLeft:
		return lipgloss.Left
	case grid.AlignCenter:
		return lipgloss.Center
	case grid.AlignRight:
		return lipgloss.Right
	}
	if _, ok := formula.ParseNumber(value); ok {
		return lipgloss.Right
	}
	return lipgloss.Left
}

// cellStyle layers the cell's own formatting under the cursor, reference,
// selection and find highlights.
func (m *Model) cellStyle(row, col int, st grid.Style) lipgloss.Style {
	t := m.theme
	s := lipgloss.NewStyle().Background(t.cellBG).Foreground(t.cellFG)
	if st.BG != "" {
		s = s.Background(lipgloss.Color(st.BG))
	}
	if st.FG != "" {
		s = s.Foreground(lipgloss.Color(st.FG))
	}
	if st.Bold {
		s = s.Bold(true)
	}

	here := cellref.Ref{Row: row, Col: col}
	selecting := m.mode == modeRefSelect
	switch {
	case selecting && here == m.refCur:
		s = s.Background(t.refSelectionBG)
	case selecting && m.refRect().Contains(row, col):
		s = s.Background(t.refRangeBG)
	case here == m.cur:
		s = s.Background(t.selectedHeaderBG)
	case m.anchor != nil && m.selection().Contains(row, col):
		s = s.Background(t.selectedBG)
	case m.selectedLine(true, row) || m.selectedLine(false, col):
		s = s.Background(t.selectedBG)
	case m.isFindMatch(row, col):
		s = s.Background(t.findMatchBG).Foreground(lipgloss.Color("#000000"))
	}
	return s
}
