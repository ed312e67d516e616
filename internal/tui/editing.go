package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/grid"
)

func (m *Model) startEditing(initial string) {
	m.mode = modeEditing
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
	m.formulaMode = formula.IsFormula(initial)
	m.refAnchor = nil
	m.refLen = 0
}

func (m *Model) resetEditing() {
	m.mode = modeReady
	m.input.Blur()
	m.input.SetValue("")
	m.formulaMode = false
	m.refAnchor = nil
	m.refLen = 0
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.commit(1, 0)
	case tea.KeyTab:
		m.commit(0, 1)
	case tea.KeyUp:
		m.commit(-1, 0)
	case tea.KeyDown:
		m.commit(1, 0)
	case tea.KeyLeft:
		m.commit(0, -1)
	case tea.KeyRight:
		m.commit(0, 1)
	case tea.KeyEsc:
		m.resetEditing()
	case tea.KeyRunes, tea.KeySpace:
		return m.typeRunes(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.formulaMode = formula.IsFormula(m.input.Value())
		return cmd
	}
	return nil
}

// typeRunes feeds typed text to the edit line. "=" into an empty buffer
// starts a formula, and "(" inside a formula starts reference selection.
func (m *Model) typeRunes(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == "=" {
		m.formulaMode = true
	}
	if m.formulaMode && !msg.Paste && len(msg.Runes) == 1 && msg.Runes[0] == '(' {
		m.enterRefSelect()
	}
	return cmd
}

func (m *Model) handleRefSelectKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up":
		m.moveRef(-1, 0, false)
	case "down":
		m.moveRef(1, 0, false)
	case "left":
		m.moveRef(0, -1, false)
	case "right":
		m.moveRef(0, 1, false)
	case "shift+up":
		m.moveRef(-1, 0, true)
	case "shift+down":
		m.moveRef(1, 0, true)
	case "shift+left":
		m.moveRef(0, -1, true)
	case "shift+right":
		m.moveRef(0, 1, true)
	case "enter":
		m.commit(1, 0)
	case "esc":
		m.resetEditing()
	case ",":
		m.insertAtCursor(",")
		m.enterRefSelect()
	case "backspace":
		m.mode = modeEditing
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.formulaMode = formula.IsFormula(m.input.Value())
		return cmd
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.mode = modeEditing
			return m.typeRunes(msg)
		}
	}
	return nil
}

func (m *Model) enterRefSelect() {
	m.mode = modeRefSelect
	m.refCur = m.cur
	m.refAnchor = nil
	m.refInsert = m.input.Position()
	m.refLen = 0
}

func (m *Model) moveRef(dr, dc int, extend bool) {
	prev := m.refCur
	m.refCur = m.clamp(cellref.Ref{Row: prev.Row + dr, Col: prev.Col + dc})
	if extend {
		if m.refAnchor == nil {
			m.refAnchor = &prev
		}
	} else {
		m.refAnchor = nil
	}
	m.replaceRef()
}

func (m *Model) refRect() cellref.Rect {
	if m.refAnchor == nil {
		return cellref.Single(m.refCur)
	}
	return cellref.NewRect(*m.refAnchor, m.refCur)
}

// replaceRef swaps the reference typed so far for the current one.
func (m *Model) replaceRef() {
	ref := []rune(m.refRect().String())
	value := []rune(m.input.Value())

	start := min(m.refInsert, len(value))
	end := min(start+m.refLen, len(value))
	next := make([]rune, 0, len(value)+len(ref))
	next = append(next, value[:start]...)
	next = append(next, ref...)
	next = append(next, value[end:]...)

	m.input.SetValue(string(next))
	m.input.SetCursor(start + len(ref))
	m.refInsert = start
	m.refLen = len(ref)
}

func (m *Model) insertAtCursor(text string) {
	value := []rune(m.input.Value())
	pos := min(m.input.Position(), len(value))
	next := string(value[:pos]) + text + string(value[pos:])
	m.input.SetValue(next)
	m.input.SetCursor(pos + len([]rune(text)))
}

// commit writes the edit buffer to the cursor cell and moves by (dr, dc).
// A committed SHELL formula runs through the mutating engine.
func (m *Model) commit(dr, dc int) {
	raw := m.input.Value()
	if m.formulaMode {
		raw = grid.AutoClose(raw)
	}
	row, col := m.cur.Row, m.cur.Col
	m.sheet.SetCell(row, col, raw)
	m.resetEditing()

	if m.shell != nil && callsShell(raw) {
		res := m.shell.EvaluateCellContext(m.ctx, row, col)
		if formula.IsError(res) {
			m.log.Warn("SHELL in %s failed: %s", cellref.Format(row, col), res)
			m.setError("SHELL: %s", res)
		} else {
			m.setStatus("SHELL output written at %s", cellref.Format(row, col))
		}
	}
	m.moveCursor(dr, dc, false)
}

func callsShell(raw string) bool {
	return formula.IsFormula(raw) && strings.Contains(strings.ToUpper(raw), "SHELL(")
}
