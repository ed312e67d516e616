package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/grid"
	"github.com/codefionn/xl/internal/syntax"
)

const cellNameWidth = 9

// renderHeader renders the cell name box and the formula bar.
func (m *Model) renderHeader() string {
	t := m.theme
	name := m.cur.String()
	if m.mode == modeRefSelect {
		name = m.refRect().String()
	}
	nameBox := lipgloss.NewStyle().
		Background(t.cellNameBG).
		Foreground(t.cellFG).
		Bold(true).
		Width(cellNameWidth).
		Align(lipgloss.Center).
		Render(name)

	bar := lipgloss.NewStyle().
		Background(t.formulaBarBG).
		Foreground(t.cellFG).
		Width(max(1, m.width-cellNameWidth)).
		MaxHeight(1)

	sb := newFrame(m.width * 2)
	sb.WriteString(" ")
	switch {
	case m.editing() && m.formulaMode:
		value := m.input.Value()
		sb.WriteString(m.highlight(value, m.input.Position()))
		sb.WriteString(m.preview(value))
	case m.editing():
		sb.WriteString(m.input.View())
	default:
		sb.WriteString(m.highlight(m.sheet.Cell(m.cur.Row, m.cur.Col), -1))
	}
	return nameBox + bar.Render(finish(sb))
}

func (m *Model) editing() bool {
	return m.mode == modeEditing || m.mode == modeRefSelect
}

// highlight colors formula tokens. cursor is a rune offset to mark, or -1.
func (m *Model) highlight(text string, cursor int) string {
	t := m.theme
	base := lipgloss.NewStyle().Background(t.formulaBarBG).Foreground(t.cellFG)
	caret := base.Reverse(true)

	sb := newFrame(m.width * 2)
	pos := 0
	for _, tok := range syntax.Tokens(text) {
		style := base
		if c, ok := t.tokens[tok.Kind]; ok {
			style = style.Foreground(c)
		}
		if tok.Kind == syntax.KindFunction {
			style = style.Bold(true)
		}

		runes := []rune(tok.Text)
		if cursor >= pos && cursor < pos+len(runes) {
			at := cursor - pos
			sb.WriteString(style.Render(string(runes[:at])))
			sb.WriteString(caret.Render(string(runes[at])))
			sb.WriteString(style.Render(string(runes[at+1:])))
		} else {
			sb.WriteString(style.Render(tok.Text))
		}
		pos += len(runes)
	}
	if cursor >= pos {
		sb.WriteString(caret.Render(" "))
	}
	return finish(sb)
}

// preview evaluates the formula being typed without committing it.
// SHELL is left out so that typing never spawns commands.
func (m *Model) preview(value string) string {
	if callsShell(value) || len(value) < 2 {
		return ""
	}
	res := m.view.EvaluateFormula(grid.AutoClose(value), m.cur.Row, m.cur.Col)
	style := lipgloss.NewStyle().Background(m.theme.formulaBarBG).Foreground(lipgloss.Color("#808080"))
	if formula.IsError(res) {
		style = style.Foreground(m.theme.tokens[syntax.KindError])
	}
	return style.Render("  = " + res)
}
