package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/fileio"
)

type commandDefinition struct {
	Names       []string
	Usage       string
	Description string
	Handler     func(*Model, []string) tea.Cmd
}

func getDefaultCommandDefinitions() []commandDefinition {
	return []commandDefinition{
		{
			Names:       []string{"q", "quit"},
			Usage:       ":q",
			Description: "Quit xl",
			Handler:     (*Model).commandQuit,
		},
		{
			Names:       []string{"w", "write"},
			Usage:       ":w [file]",
			Description: "Save to the current file or to file",
			Handler:     (*Model).commandWrite,
		},
		{
			Names:       []string{"e", "edit"},
			Usage:       ":e file",
			Description: "Open file",
			Handler:     (*Model).commandEdit,
		},
	}
}

func lookupCommand(name string) (commandDefinition, bool) {
	for _, def := range getDefaultCommandDefinitions() {
		for _, n := range def.Names {
			if n == name {
				return def, true
			}
		}
	}
	return commandDefinition{}, false
}

func (m *Model) handleCommandKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.exitPrompt()
		return nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.prompt.Value())
		m.exitPrompt()
		return m.runCommand(text)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// runCommand executes a ":" command line. A bare cell label jumps there.
func (m *Model) runCommand(text string) tea.Cmd {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	if def, ok := lookupCommand(fields[0]); ok {
		return def.Handler(m, fields[1:])
	}
	if ref, ok := cellref.ParseRef(text); ok {
		if ref.Row >= m.sheet.Rows() || ref.Col >= m.sheet.Cols() {
			m.setError("Cell %s is out of range", ref)
			return nil
		}
		m.jumpTo(ref)
		m.setStatus("Jumped to %s", ref)
		return nil
	}
	m.setError("Unknown command: %s", text)
	return nil
}

func (m *Model) commandQuit(_ []string) tea.Cmd {
	return tea.Quit
}

func (m *Model) commandWrite(args []string) tea.Cmd {
	path := m.path
	if len(args) > 0 {
		path = expandHome(strings.Join(args, " "))
	}
	if path == "" {
		m.setError("No file name")
		return nil
	}
	f, ok := fileio.FormatFromPath(path)
	if !ok {
		f = m.format
		path = fileio.EnsureExt(path, f)
	}
	return m.save(path, f)
}

func (m *Model) commandEdit(args []string) tea.Cmd {
	if len(args) == 0 {
		m.setError("Usage: :e file")
		return nil
	}
	return m.open(expandHome(strings.Join(args, " ")))
}
