package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/fileio"
)

// numbers groups digits in the statistics line.
var numbers = message.NewPrinter(language.English)

func sprintInt(n int) string {
	return numbers.Sprintf("%d", n)
}

func formatStat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return numbers.Sprintf("%d", int64(v))
	}
	return numbers.Sprintf("%.2f", v)
}

// statsRect is the area the statistics line summarizes, if any.
func (m *Model) statsRect() (cellref.Rect, bool) {
	switch m.mode {
	case modeRowSelect:
		return cellref.NewRect(cellref.Ref{Row: m.selFrom}, cellref.Ref{Row: m.selTo, Col: m.sheet.Cols() - 1}), true
	case modeColSelect:
		return cellref.NewRect(cellref.Ref{Col: m.selFrom}, cellref.Ref{Row: m.sheet.Rows() - 1, Col: m.selTo}), true
	}
	if m.anchor == nil {
		return cellref.Rect{}, false
	}
	return m.selection(), true
}

// renderStats renders the selection statistics, or the key hints when
// nothing is selected.
func (m *Model) renderStats() string {
	var line string
	if r, ok := m.statsRect(); ok {
		if st, ok := m.sheet.Stats(r, m.view.EvaluateCell); ok {
			parts := []string{
				statusLabelStyle.Render("  Rows: ") + sprintInt(st.Rows),
				statusLabelStyle.Render("  Cells: ") + sprintInt(st.Cells),
			}
			if st.Numeric > 0 {
				parts = append(parts,
					statusLabelStyle.Render("  Sum: ")+statusValueStyle.Render(formatStat(st.Sum)),
					statusLabelStyle.Render("  Avg: ")+statusValueStyle.Render(formatStat(st.Sum/float64(st.Numeric))),
				)
			}
			line = strings.Join(parts, "")
		}
	}
	if line == "" {
		line = " " + m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return statsBarStyle.Width(m.width).MaxHeight(1).Render(line)
}

// renderStatusBar renders the mode badge followed by the mode's prompt or
// the last status message.
func (m *Model) renderStatusBar() string {
	badge := modeBadges[m.mode].Render(" " + m.mode.String() + " ")

	var left string
	switch m.mode {
	case modeFind:
		left = "  Search: " + m.prompt.View() + "  " + matchCount(len(m.findMatches))
	case modeCommand:
		left = "  :" + m.prompt.View()
	case modeSave:
		left = "  Save as: " + m.prompt.View() + "  " + m.formatChoices()
	case modeOpen:
		left = "  Open: " + m.prompt.View()
	case modeRowSelect:
		left = fmt.Sprintf("  Rows %d-%d  ↑/↓ extend  d delete  i insert  esc exit", m.selFrom+1, m.selTo+1)
	case modeColSelect:
		left = fmt.Sprintf("  Columns %s-%s  ←/→ extend  d delete  i insert  esc exit",
			cellref.ColumnName(m.selFrom), cellref.ColumnName(m.selTo))
	case modeVisual:
		left = "  " + m.visualHint()
	case modeHelp:
		left = "  ↑/↓ scroll  esc close"
	default:
		if m.status != "" {
			left = "  " + m.status
			if m.statusErr {
				left = "  " + errorStyle.Render(m.status)
			}
		}
	}

	right := "[new]"
	if m.path != "" {
		right = filepath.Base(m.path)
	}
	return statusBarStyle.Width(m.width).MaxHeight(1).Render(m.renderFooter(badge+left, right+" "))
}

func (m *Model) formatChoices() string {
	parts := make([]string, len(fileio.Formats))
	for i, f := range fileio.Formats {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == m.saveFormat {
			label = lipgloss.NewStyle().Bold(true).Underline(true).Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, "  ")
}

func (m *Model) visualHint() string {
	switch m.visual {
	case visualFG:
		return "Text color: " + paletteHint()
	case visualBG:
		return "Background: " + paletteHint()
	case visualWidth:
		return fmt.Sprintf("Width %d  ←/→ adjust  esc done", m.colWidth(m.sheet.ColWidths(), m.cur.Col))
	case visualHeight:
		return fmt.Sprintf("Height %d  ↑/↓ adjust  esc done", m.sheet.RowHeight(m.cur.Row))
	}
	if m.status != "" {
		return m.status
	}
	return "f color  b background  w width  h height  a align  s bold  c clear  m dark mode  esc exit"
}

// renderFooter is a layout helper that places strings at the left and right ends of a line,
// expanding the space between them as needed.
func (m *Model) renderFooter(left, right string) string {
	width := m.width
	if width <= 0 {
		switch {
		case left == "":
			return right
		case right == "":
			return left
		default:
			return left + " " + right
		}
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	space := width - leftWidth - rightWidth
	if space < 1 {
		space = 1
	}

	return left + strings.Repeat(" ", space) + right
}
