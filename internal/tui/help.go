package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/codefionn/xl/internal/formula"
)

func (m *Model) openHelp() {
	m.prevMode = m.mode
	m.mode = modeHelp
	m.renderHelp()
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = m.prevMode
		return nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}

// renderHelp renders the reference into the help viewport, falling back to
// plain wrapped markdown when glamour fails.
func (m *Model) renderHelp() {
	wrap := max(20, m.width-4)
	md := helpMarkdown()

	style := "light"
	if m.cfg.DarkMode {
		style = "dark"
	}
	out := ""
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		out, err = r.Render(md)
	}
	if err != nil {
		m.log.Debug("help render: %v", err)
		out = wordwrap.String(md, wrap)
	}

	m.helpView.Width = m.width
	m.helpView.Height = max(1, m.height-1)
	m.helpView.SetContent(out)
	m.helpView.GotoTop()
}

var readyKeys = [][2]string{
	{"arrows", "move, Shift extends the selection"},
	{"Ctrl+arrows", "jump to the first or last data cell"},
	{"Home / End", "first column / last data column"},
	{"Enter", "edit the cell"},
	{"any character", "start editing with that character"},
	{"Del / Backspace", "clear the cell or selection"},
	{"Tab", "visual (formatting) mode"},
	{"Ctrl+C / Ctrl+X / Ctrl+V", "copy, cut and paste (TSV)"},
	{"f", "find"},
	{"s / o", "save / open"},
	{":", "command line"},
	{"R / C", "select rows / columns"},
	{"?", "this help"},
	{"q", "quit"},
}

var editKeys = [][2]string{
	{"=", "in an empty cell, starts a formula"},
	{"(", "in a formula, picks a reference with the arrows"},
	{",", "while picking, adds another reference"},
	{"Enter / Tab / arrows", "commit and move"},
	{"Esc", "cancel"},
}

var visualKeys = [][2]string{
	{"f / b", "text / background color, then 0-9"},
	{"w", "column width with ←/→"},
	{"h", "row height with ↑/↓"},
	{"a", "cycle alignment"},
	{"s", "toggle bold"},
	{"c", "clear formatting"},
	{"m", "toggle dark mode"},
}

func helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# xl\n\n")
	writeKeyTable(&b, "Grid", readyKeys)
	writeKeyTable(&b, "Editing", editKeys)
	writeKeyTable(&b, "Formatting", visualKeys)

	b.WriteString("## Commands\n\n| Command | Action |\n|---|---|\n")
	for _, def := range getDefaultCommandDefinitions() {
		fmt.Fprintf(&b, "| `%s` | %s |\n", def.Usage, def.Description)
	}
	b.WriteString("| `:A1` | jump to a cell |\n\n")

	b.WriteString("## Functions\n\n")
	names := formula.FunctionNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString("\n\nRanges are written `A1:B3`. Conditions take `>`, `<`, `>=`, `<=`, `<>` and `=`; ")
	b.WriteString("text criteria accept `*` and `?` wildcards. `SHELL(\"cmd\")` runs a command when the cell is committed.\n")
	return b.String()
}

func writeKeyTable(b *strings.Builder, title string, rows [][2]string) {
	fmt.Fprintf(b, "## %s\n\n| Key | Action |\n|---|---|\n", title)
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", r[0], r[1])
	}
	b.WriteString("\n")
}
