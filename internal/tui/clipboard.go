package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.design/x/clipboard"
)

// Clipboard is the system clipboard as seen by the editor.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// systemClipboard wraps golang.design/x/clipboard, initializing it on
// first use.
type systemClipboard struct {
	once sync.Once
	err  error
}

func (c *systemClipboard) init() error {
	c.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			c.err = fmt.Errorf("failed to initialize clipboard: %w", err)
		}
	})
	return c.err
}

func (c *systemClipboard) ReadText() (string, error) {
	if err := c.init(); err != nil {
		return "", err
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}

func (c *systemClipboard) WriteText(text string) error {
	if err := c.init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// clipboardMsg reports the result of writing the system clipboard.
type clipboardMsg struct {
	note string
	err  error
}

// copySelection keeps the selection in the internal clip and writes its
// TSV text to the system clipboard in the background.
func (m *Model) copySelection(cut bool) tea.Cmd {
	sel := m.selection()
	clip := m.sheet.Copy(sel, cut)
	m.clip = &clip

	verb := "Copied"
	if cut {
		verb = "Cut"
	}
	note := fmt.Sprintf("%s %s", verb, sel)
	m.setStatus("%s", note)

	cb := m.clipboard
	return func() tea.Msg {
		return clipboardMsg{note: note, err: cb.WriteText(clip.Text)}
	}
}

// paste prefers the internal clip, which carries styles, unless the system
// clipboard holds different text.
func (m *Model) paste() {
	text, err := m.clipboard.ReadText()
	if err != nil {
		m.log.Debug("clipboard read: %v", err)
		text = ""
	}

	switch {
	case m.clip != nil && (text == "" || text == m.clip.Text):
		next := m.sheet.PasteClip(*m.clip, m.cur)
		m.clip = &next
	case text != "":
		m.sheet.PasteText(text, m.cur)
	default:
		m.setError("Nothing to paste")
		return
	}
	m.setStatus("Pasted at %s", m.cur)
}
