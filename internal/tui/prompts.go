package tui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codefionn/xl/internal/fileio"
)

func (m *Model) enterPrompt(md mode, initial string) {
	m.mode = md
	m.prompt.SetValue(initial)
	m.prompt.CursorEnd()
	m.prompt.Focus()
}

func (m *Model) exitPrompt() {
	m.mode = modeReady
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m *Model) handleFindKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.findMatches = nil
		m.exitPrompt()
		return nil
	case tea.KeyEnter:
		m.exitPrompt()
		m.setStatus("%s", matchCount(len(m.findMatches)))
		return nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.findMatches = m.sheet.Find(m.prompt.Value())
	if len(m.findMatches) > 0 {
		m.jumpTo(m.findMatches[0])
	}
	return cmd
}

func matchCount(n int) string {
	switch n {
	case 0:
		return "No matches"
	case 1:
		return "1 match"
	default:
		return sprintInt(n) + " matches"
	}
}

func (m *Model) isFindMatch(row, col int) bool {
	for _, r := range m.findMatches {
		if r.Row == row && r.Col == col {
			return true
		}
	}
	return false
}

// enterSave offers the current file name without its extension so that
// switching formats replaces the extension.
func (m *Model) enterSave() {
	m.saveFormat = m.format
	name := "spreadsheet"
	if m.path != "" {
		name = strings.TrimSuffix(m.path, filepath.Ext(m.path))
	}
	m.enterPrompt(modeSave, name)
}

func (m *Model) handleSaveKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.exitPrompt()
		return nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.prompt.Value())
		m.exitPrompt()
		if name == "" {
			m.setError("No file name")
			return nil
		}
		return m.save(fileio.EnsureExt(expandHome(name), m.saveFormat), m.saveFormat)
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '4' {
			m.saveFormat = fileio.Formats[msg.Runes[0]-'1']
			return nil
		}
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) handleOpenKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.exitPrompt()
		return nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.prompt.Value())
		m.exitPrompt()
		if path == "" {
			return nil
		}
		return m.open(expandHome(path))
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}
