package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codefionn/xl/internal/cellref"
)

func (m *Model) handleReadyKey(msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		m.moveCursor(-1, 0, false)
	case key.Matches(msg, k.Down):
		m.moveCursor(1, 0, false)
	case key.Matches(msg, k.Left):
		m.moveCursor(0, -1, false)
	case key.Matches(msg, k.Right):
		m.moveCursor(0, 1, false)
	case key.Matches(msg, k.ExtendUp):
		m.moveCursor(-1, 0, true)
	case key.Matches(msg, k.ExtendDown):
		m.moveCursor(1, 0, true)
	case key.Matches(msg, k.ExtendLeft):
		m.moveCursor(0, -1, true)
	case key.Matches(msg, k.ExtendRight):
		m.moveCursor(0, 1, true)
	case key.Matches(msg, k.JumpUp):
		if row, ok := m.sheet.FirstRowInCol(m.cur.Col); ok {
			m.jumpTo(cellref.Ref{Row: row, Col: m.cur.Col})
		}
	case key.Matches(msg, k.JumpDown):
		if row, ok := m.sheet.LastRowInCol(m.cur.Col); ok {
			m.jumpTo(cellref.Ref{Row: row, Col: m.cur.Col})
		}
	case key.Matches(msg, k.JumpLeft):
		if col, ok := m.sheet.FirstColInRow(m.cur.Row); ok {
			m.jumpTo(cellref.Ref{Row: m.cur.Row, Col: col})
		}
	case key.Matches(msg, k.JumpRight):
		if col, ok := m.sheet.LastColInRow(m.cur.Row); ok {
			m.jumpTo(cellref.Ref{Row: m.cur.Row, Col: col})
		}
	case key.Matches(msg, k.Home):
		m.jumpTo(cellref.Ref{Row: m.cur.Row})
	case key.Matches(msg, k.End):
		col, _ := m.sheet.LastColInRow(m.cur.Row)
		m.jumpTo(cellref.Ref{Row: m.cur.Row, Col: col})
	case key.Matches(msg, k.Edit):
		m.clearSelection()
		m.startEditing(m.sheet.Cell(m.cur.Row, m.cur.Col))
	case key.Matches(msg, k.Clear):
		m.sheet.ClearRect(m.selection())
	case key.Matches(msg, k.Visual):
		m.mode = modeVisual
		m.visual = visualMain
		m.status = ""
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Open):
		m.enterPrompt(modeOpen, m.path)
	case key.Matches(msg, k.Save):
		m.enterSave()
	case key.Matches(msg, k.Find):
		m.findMatches = nil
		m.enterPrompt(modeFind, "")
	case key.Matches(msg, k.Command):
		m.enterPrompt(modeCommand, "")
	case key.Matches(msg, k.RowSelect):
		m.clearSelection()
		m.mode = modeRowSelect
		m.selFrom, m.selTo = m.cur.Row, m.cur.Row
	case key.Matches(msg, k.ColSelect):
		m.clearSelection()
		m.mode = modeColSelect
		m.selFrom, m.selTo = m.cur.Col, m.cur.Col
	case key.Matches(msg, k.Copy):
		return m.copySelection(false)
	case key.Matches(msg, k.Cut):
		return m.copySelection(true)
	case key.Matches(msg, k.Paste):
		m.paste()
	case key.Matches(msg, k.Help):
		m.openHelp()
	case key.Matches(msg, k.Escape):
		m.clearSelection()
		m.findMatches = nil
		m.status = ""
	case (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt:
		m.clearSelection()
		m.startEditing("")
		m.typeRunes(msg)
	}
	return nil
}
