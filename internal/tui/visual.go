package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/grid"
)

func (m *Model) handleVisualKey(msg tea.KeyMsg) tea.Cmd {
	switch m.visual {
	case visualFG, visualBG:
		m.handlePaletteKey(msg)
	case visualWidth:
		m.handleWidthKey(msg)
	case visualHeight:
		m.handleHeightKey(msg)
	default:
		m.handleVisualMainKey(msg)
	}
	return nil
}

func (m *Model) handleVisualMainKey(msg tea.KeyMsg) {
	sel := m.selection()
	switch msg.String() {
	case "f", "F":
		m.visual = visualFG
	case "b", "B":
		m.visual = visualBG
	case "w", "W":
		m.visual = visualWidth
	case "h", "H":
		m.visual = visualHeight
	case "a", "A":
		next := m.sheet.Style(m.cur.Row, m.cur.Col).Align.Next()
		m.sheet.UpdateStyles(sel, func(st grid.Style) grid.Style {
			st.Align = next
			return st
		})
		m.setStatus("Alignment: %s", next)
	case "s", "S":
		bold := !m.sheet.Style(m.cur.Row, m.cur.Col).Bold
		m.sheet.UpdateStyles(sel, func(st grid.Style) grid.Style {
			st.Bold = bold
			return st
		})
		m.setStatus("Bold %s", onOff(bold))
	case "c", "C":
		m.sheet.ClearStyles(sel)
		m.setStatus("Formatting cleared")
	case "m", "M":
		m.toggleDarkMode()
	case "up":
		m.moveCursor(-1, 0, false)
	case "down":
		m.moveCursor(1, 0, false)
	case "left":
		m.moveCursor(0, -1, false)
	case "right":
		m.moveCursor(0, 1, false)
	case "shift+up":
		m.moveCursor(-1, 0, true)
	case "shift+down":
		m.moveCursor(1, 0, true)
	case "shift+left":
		m.moveCursor(0, -1, true)
	case "shift+right":
		m.moveCursor(0, 1, true)
	case "esc", "tab":
		m.mode = modeReady
	}
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) {
	if msg.Type == tea.KeyEsc {
		m.visual = visualMain
		return
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 || msg.Runes[0] < '0' || msg.Runes[0] > '9' {
		return
	}
	c := palette[msg.Runes[0]-'0']
	bg := m.visual == visualBG
	m.sheet.UpdateStyles(m.selection(), func(st grid.Style) grid.Style {
		if bg {
			st.BG = c.Hex
		} else {
			st.FG = c.Hex
		}
		return st
	})
	if bg {
		m.setStatus("Background: %s", c.Name)
	} else {
		m.setStatus("Text color: %s", c.Name)
	}
	m.visual = visualMain
}

func (m *Model) handleWidthKey(msg tea.KeyMsg) {
	sel := m.selection()
	delta := 0
	switch msg.Type {
	case tea.KeyLeft:
		delta = -1
	case tea.KeyRight:
		delta = 1
	case tea.KeyEsc, tea.KeyEnter:
		m.visual = visualMain
		return
	}
	if delta == 0 {
		return
	}
	widths := m.sheet.ColWidths()
	for col := sel.Min.Col; col <= sel.Max.Col; col++ {
		m.sheet.SetColWidth(col, m.colWidth(widths, col)+delta)
	}
	m.setStatus("Width: %d", m.colWidth(m.sheet.ColWidths(), m.cur.Col))
}

func (m *Model) handleHeightKey(msg tea.KeyMsg) {
	sel := m.selection()
	delta := 0
	switch msg.Type {
	case tea.KeyUp:
		delta = -1
	case tea.KeyDown:
		delta = 1
	case tea.KeyEsc, tea.KeyEnter:
		m.visual = visualMain
		return
	}
	if delta == 0 {
		return
	}
	for row := sel.Min.Row; row <= sel.Max.Row; row++ {
		m.sheet.SetRowHeight(row, m.sheet.RowHeight(row)+delta)
	}
	m.setStatus("Height: %d", m.sheet.RowHeight(m.cur.Row))
}

// colWidth is the explicit width of col, or the configured default.
func (m *Model) colWidth(widths map[int]int, col int) int {
	if w, ok := widths[col]; ok {
		return w
	}
	if m.cfg.DefaultColWidth > 0 {
		return consts.ClampColWidth(m.cfg.DefaultColWidth)
	}
	return consts.DefaultColWidth
}

func (m *Model) toggleDarkMode() {
	m.cfg.DarkMode = !m.cfg.DarkMode
	m.theme = themeFor(m.cfg.DarkMode)
	m.setStatus("Dark mode %s", onOff(m.cfg.DarkMode))

	var failed []string
	if m.cfgPath != "" {
		if err := m.cfg.Save(m.cfgPath); err != nil {
			m.log.Warn("save config: %v", err)
			failed = append(failed, err.Error())
		}
	}
	if m.legacyPath != "" {
		if err := m.cfg.SaveLegacy(m.legacyPath); err != nil {
			m.log.Warn("save %s: %v", m.legacyPath, err)
			failed = append(failed, err.Error())
		}
	}
	if len(failed) > 0 {
		m.setError("Dark mode %s, not saved: %s", onOff(m.cfg.DarkMode), strings.Join(failed, "; "))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// paletteHint lists the digit choices for the color pickers.
func paletteHint() string {
	parts := make([]string, len(palette))
	for i, c := range palette {
		parts[i] = fmt.Sprintf("%d %s", i, c.Name)
	}
	return strings.Join(parts, "  ")
}
