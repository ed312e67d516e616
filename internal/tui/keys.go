package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the Ready mode bindings. It implements help.KeyMap so the
// status bar can show a short hint line.
type keyMap struct {
	Up, Down, Left, Right                 key.Binding
	ExtendUp, ExtendDown                  key.Binding
	ExtendLeft, ExtendRight               key.Binding
	JumpUp, JumpDown, JumpLeft, JumpRight key.Binding
	Home, End                             key.Binding
	Edit                                  key.Binding
	Clear                                 key.Binding
	Visual                                key.Binding
	Quit                                  key.Binding
	Open                                  key.Binding
	Save                                  key.Binding
	Find                                  key.Binding
	Command                               key.Binding
	RowSelect                             key.Binding
	ColSelect                             key.Binding
	Copy                                  key.Binding
	Cut                                   key.Binding
	Paste                                 key.Binding
	Help                                  key.Binding
	Escape                                key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		ExtendUp:    key.NewBinding(key.WithKeys("shift+up")),
		ExtendDown:  key.NewBinding(key.WithKeys("shift+down")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right")),
		JumpUp:      key.NewBinding(key.WithKeys("ctrl+up")),
		JumpDown:    key.NewBinding(key.WithKeys("ctrl+down")),
		JumpLeft:    key.NewBinding(key.WithKeys("ctrl+left")),
		JumpRight:   key.NewBinding(key.WithKeys("ctrl+right")),
		Home:        key.NewBinding(key.WithKeys("home")),
		End:         key.NewBinding(key.WithKeys("end")),
		Edit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Clear:       key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "clear")),
		Visual:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "format")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Find:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "find")),
		Command:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		RowSelect:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rows")),
		ColSelect:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "cols")),
		Copy:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "copy")),
		Cut:         key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("^x", "cut")),
		Paste:       key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("^v", "paste")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Escape:      key.NewBinding(key.WithKeys("esc")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Visual, k.Find, k.Save, k.Open, k.Command, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Edit, k.Clear, k.Visual, k.RowSelect, k.ColSelect},
		{k.Copy, k.Cut, k.Paste},
		{k.Find, k.Save, k.Open, k.Command, k.Help, k.Quit},
	}
}
