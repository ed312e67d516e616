package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleRowColKey drives Row and Column select. The arrow away from the
// cursor edge grows the span, the arrow back toward it shrinks it.
func (m *Model) handleRowColKey(msg tea.KeyMsg) tea.Cmd {
	rows := m.mode == modeRowSelect
	back, fwd := "up", "down"
	if !rows {
		back, fwd = "left", "right"
	}

	switch msg.String() {
	case back:
		m.stepSpan(-1, rows)
	case fwd:
		m.stepSpan(1, rows)
	case "d", "D", "delete", "backspace":
		m.deleteSpan(rows)
	case "i", "I":
		m.insertSpan(rows)
	case "esc":
		m.mode = modeReady
	}
	return nil
}

func (m *Model) cursorLine(rows bool) int {
	if rows {
		return m.cur.Row
	}
	return m.cur.Col
}

func (m *Model) setCursorLine(rows bool, v int) {
	if rows {
		m.cur.Row = v
	} else {
		m.cur.Col = v
	}
}

func (m *Model) lineCount(rows bool) int {
	if rows {
		return m.sheet.Rows()
	}
	return m.sheet.Cols()
}

func (m *Model) stepSpan(dir int, rows bool) {
	c := m.cursorLine(rows)
	switch {
	case dir < 0 && c == m.selTo && m.selTo > m.selFrom:
		m.selTo--
		m.setCursorLine(rows, c-1)
	case dir > 0 && c == m.selFrom && m.selTo > m.selFrom:
		m.selFrom++
		m.setCursorLine(rows, c+1)
	case dir < 0 && c > 0:
		m.setCursorLine(rows, c-1)
		m.selFrom = min(m.selFrom, c-1)
	case dir > 0 && c < m.lineCount(rows)-1:
		m.setCursorLine(rows, c+1)
		m.selTo = max(m.selTo, c+1)
	}
}

func (m *Model) deleteSpan(rows bool) {
	for i := m.selTo; i >= m.selFrom; i-- {
		if rows {
			m.sheet.DeleteRow(i)
		} else {
			m.sheet.DeleteCol(i)
		}
	}
	n := m.selTo - m.selFrom + 1
	c := m.cursorLine(rows)
	switch {
	case c > m.selTo:
		c -= n
	case c >= m.selFrom:
		c = m.selFrom
	}
	m.setCursorLine(rows, min(c, m.lineCount(rows)-1))
	m.cur = m.clamp(m.cur)
	what := "column"
	if rows {
		what = "row"
	}
	m.setStatus("Deleted %s", plural(n, what))
	m.mode = modeReady
}

func (m *Model) insertSpan(rows bool) {
	n := m.selTo - m.selFrom + 1
	after := m.selTo
	for range n {
		if rows {
			m.sheet.InsertRowAfter(after)
		} else {
			m.sheet.InsertColAfter(after)
		}
	}
	m.setCursorLine(rows, after+1)
	m.selFrom, m.selTo = after+1, after+n
	what := "column"
	if rows {
		what = "row"
	}
	m.setStatus("Inserted %s", plural(n, what))
}

// selectedLine reports whether row (or column) i is in the Row/Col select span.
func (m *Model) selectedLine(rows bool, i int) bool {
	want := modeColSelect
	if rows {
		want = modeRowSelect
	}
	return m.mode == want && i >= m.selFrom && i <= m.selTo
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return sprintInt(n) + " " + word + "s"
}
