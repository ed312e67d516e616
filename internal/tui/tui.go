// Package tui is the interactive grid editor built on bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/config"
	"github.com/codefionn/xl/internal/fileio"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/grid"
	"github.com/codefionn/xl/internal/lockfile"
	"github.com/codefionn/xl/internal/logger"
	"github.com/codefionn/xl/internal/watch"
)

type mode int

const (
	modeReady mode = iota
	modeEditing
	modeRefSelect
	modeFind
	modeCommand
	modeSave
	modeOpen
	modeRowSelect
	modeColSelect
	modeVisual
	modeHelp
)

func (m mode) String() string {
	switch m {
	case modeEditing:
		return "EDIT"
	case modeRefSelect:
		return "SELECT"
	case modeFind:
		return "FIND"
	case modeCommand:
		return "COMMAND"
	case modeSave:
		return "SAVE"
	case modeOpen:
		return "OPEN"
	case modeRowSelect:
		return "ROW SELECT"
	case modeColSelect:
		return "COL SELECT"
	case modeVisual:
		return "VISUAL"
	case modeHelp:
		return "HELP"
	default:
		return "READY"
	}
}

// visualSub is the pending action inside Visual mode.
type visualSub int

const (
	visualMain visualSub = iota
	visualFG
	visualBG
	visualWidth
	visualHeight
)

// Options configures a Model.
type Options struct {
	Sheet *grid.Sheet
	// Path is the file the sheet was loaded from, empty for a new sheet.
	Path   string
	Config *config.Config
	// ConfigPath and LegacyPath receive the dark mode toggle. Empty
	// paths are not written.
	ConfigPath string
	LegacyPath string
	// Runner enables SHELL on commit. Leave nil to keep SHELL disabled.
	Runner    formula.ShellRunner
	Clipboard Clipboard
	// Watch reloads Path when it changes on disk.
	Watch bool
	// Lock marks Path as open so other sessions are warned.
	Lock bool
}

// Model is the bubbletea model of the editor.
type Model struct {
	sheet  *grid.Sheet
	path   string
	format fileio.Format

	cfg        *config.Config
	cfgPath    string
	legacyPath string

	runner formula.ShellRunner
	view   *formula.Engine // read-only, used for rendering
	shell  *formula.Engine // nil unless runner is set

	clipboard Clipboard
	clip      *grid.Clip

	watchEnabled  bool
	watcher       *watch.Watcher
	pendingReload bool
	lockEnabled   bool
	lock          *lockfile.Lockfile

	keys  keyMap
	help  help.Model
	theme theme

	width, height int
	mode          mode
	prevMode      mode
	visual        visualSub

	cur            cellref.Ref
	anchor         *cellref.Ref
	offRow, offCol int

	input       textinput.Model
	formulaMode bool
	refCur      cellref.Ref
	refAnchor   *cellref.Ref
	refInsert   int
	refLen      int

	prompt      textinput.Model
	findMatches []cellref.Ref
	saveFormat  fileio.Format

	selFrom, selTo int // row or column span in Row/Col select

	status    string
	statusErr bool

	helpView viewport.Model

	ctx    context.Context
	cancel context.CancelFunc
	log    *logger.Logger
}

// New builds the editor model. Call Close when the program exits.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	sheet := opts.Sheet
	if sheet == nil {
		sheet = grid.New(cfg.DefaultRows, cfg.DefaultCols)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = &systemClipboard{}
	}

	input := textinput.New()
	input.Prompt = ""
	prompt := textinput.New()
	prompt.Prompt = ""

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		sheet:        sheet,
		path:         opts.Path,
		format:       fileio.CSV,
		cfg:          cfg,
		cfgPath:      opts.ConfigPath,
		legacyPath:   opts.LegacyPath,
		runner:       opts.Runner,
		clipboard:    clip,
		watchEnabled: opts.Watch,
		lockEnabled:  opts.Lock,
		keys:         defaultKeyMap(),
		help:         help.New(),
		theme:        themeFor(cfg.DarkMode),
		width:        80,
		height:       24,
		input:        input,
		prompt:       prompt,
		helpView:     viewport.New(80, 20),
		ctx:          ctx,
		cancel:       cancel,
		log:          logger.Global().WithPrefix("tui"),
	}
	if f, ok := fileio.FormatFromPath(opts.Path); ok {
		m.format = f
	}
	m.rebuildEngines()
	m.startWatcher()
	m.relock()
	return m
}

func (m *Model) rebuildEngines() {
	eopts := []formula.Option{formula.WithLogger(logger.Global().WithPrefix("formula"))}
	if m.cfg.Eval.Memoize {
		eopts = append(eopts, formula.WithMemo())
	}
	m.view = formula.New(m.sheet, eopts...)
	m.shell = nil
	if m.runner != nil {
		m.shell = formula.New(m.sheet, append(eopts, formula.WithShell(m.runner, m.sheet))...)
	}
}

// Sheet returns the sheet being edited.
func (m *Model) Sheet() *grid.Sheet { return m.sheet }

// Close stops the file watcher and cancels running SHELL commands.
func (m *Model) Close() error {
	m.cancel()
	var err error
	if m.watcher != nil {
		err = m.watcher.Close()
	}
	if m.lock != nil {
		err = errors.Join(err, m.lock.Release())
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.mode == modeHelp {
			m.renderHelp()
		}
		m.ensureVisible()
		return m, nil

	case fileChangedMsg:
		return m, m.handleFileChanged(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.setError("Clipboard: %v", msg.err)
		} else {
			m.setStatus("%s", msg.note)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeEditing:
		cmd = m.handleEditingKey(msg)
	case modeRefSelect:
		cmd = m.handleRefSelectKey(msg)
	case modeFind:
		cmd = m.handleFindKey(msg)
	case modeCommand:
		cmd = m.handleCommandKey(msg)
	case modeSave:
		cmd = m.handleSaveKey(msg)
	case modeOpen:
		cmd = m.handleOpenKey(msg)
	case modeRowSelect, modeColSelect:
		cmd = m.handleRowColKey(msg)
	case modeVisual:
		cmd = m.handleVisualKey(msg)
	case modeHelp:
		cmd = m.handleHelpKey(msg)
	default:
		cmd = m.handleReadyKey(msg)
	}
	m.ensureVisible()
	if m.pendingReload && m.mode == modeReady {
		m.reload()
	}
	return cmd
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
}

// selection is the selected rectangle, or the cursor cell.
func (m *Model) selection() cellref.Rect {
	if m.anchor == nil {
		return cellref.Single(m.cur)
	}
	return cellref.NewRect(*m.anchor, m.cur)
}

func (m *Model) clearSelection() {
	m.anchor = nil
}

// moveCursor moves by (dr, dc), clamped to the sheet. extend keeps or
// starts a selection anchored at the old position.
func (m *Model) moveCursor(dr, dc int, extend bool) {
	if extend {
		if m.anchor == nil {
			a := m.cur
			m.anchor = &a
		}
	} else {
		m.anchor = nil
	}
	m.cur = m.clamp(cellref.Ref{Row: m.cur.Row + dr, Col: m.cur.Col + dc})
}

func (m *Model) clamp(r cellref.Ref) cellref.Ref {
	r.Row = max(0, min(m.sheet.Rows()-1, r.Row))
	r.Col = max(0, min(m.sheet.Cols()-1, r.Col))
	return r
}

func (m *Model) jumpTo(r cellref.Ref) {
	m.anchor = nil
	m.cur = m.clamp(r)
}
