package tui

// View renders the formula bar, the grid, the statistics line and the
// status bar. Rendering only uses the read-only engine, so SHELL never
// runs here.
func (m *Model) View() string {
	if m.mode == modeHelp {
		return m.helpView.View() + "\n" + m.renderStatusBar()
	}

	sb := newFrame(m.width * m.height * 4)
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.renderGrid())
	sb.WriteString("\n")
	sb.WriteString(m.renderStats())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatusBar())
	return finish(sb)
}
