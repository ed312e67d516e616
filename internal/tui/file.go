package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/fileio"
	"github.com/codefionn/xl/internal/grid"
	"github.com/codefionn/xl/internal/lockfile"
	"github.com/codefionn/xl/internal/watch"
)

// fileChangedMsg reports a change of the watched file. w identifies the
// watcher so events from a replaced watcher are dropped.
type fileChangedMsg struct {
	w *watch.Watcher
}

// selfWriteWindow covers the events our own save produces.
const selfWriteWindow = 4 * consts.WatchDebounce

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func (m *Model) save(path string, f fileio.Format) tea.Cmd {
	same := m.watcher != nil && m.isWatching(path)
	if same {
		m.watcher.Ignore(selfWriteWindow)
	}
	if err := fileio.Save(path, m.sheet, f); err != nil {
		m.log.Warn("save %s: %v", path, err)
		m.setError("Error: %v", err)
		return nil
	}
	m.log.Info("saved %s as %s", path, f)
	m.path = path
	m.format = f
	m.setStatus("Saved to %s", path)
	if same {
		return nil
	}
	m.relock()
	return m.startWatcher()
}

func (m *Model) open(path string) tea.Cmd {
	s, err := fileio.Load(path)
	if err != nil {
		m.log.Warn("open %s: %v", path, err)
		m.setError("Error: %v", err)
		return nil
	}
	m.log.Info("loaded %s", path)
	m.replaceSheet(s, path)
	m.cur = cellref.Ref{}
	m.offRow, m.offCol = 0, 0
	m.setStatus("Loaded %s", path)
	m.relock()
	return m.startWatcher()
}

func (m *Model) replaceSheet(s *grid.Sheet, path string) {
	s.Fit(m.cfg.DefaultRows, m.cfg.DefaultCols)
	m.sheet = s
	m.path = path
	if f, ok := fileio.FormatFromPath(path); ok {
		m.format = f
	}
	m.anchor = nil
	m.findMatches = nil
	m.clip = nil
	m.cur = m.clamp(m.cur)
	m.rebuildEngines()
}

// reload rereads the current file after an external change, keeping the
// cursor where it was.
func (m *Model) reload() {
	m.pendingReload = false
	s, err := fileio.Load(m.path)
	if err != nil {
		m.log.Warn("reload %s: %v", m.path, err)
		m.setError("Reload failed: %v", err)
		return
	}
	m.replaceSheet(s, m.path)
	m.setStatus("Reloaded %s", m.path)
}

// relock moves the session lock to the current path. A sheet held by
// another session is still edited; the status bar says who holds it.
func (m *Model) relock() {
	if m.lock != nil {
		if err := m.lock.Release(); err != nil {
			m.log.Warn("release lock: %v", err)
		}
		m.lock = nil
	}
	if !m.lockEnabled || m.path == "" {
		return
	}
	l, err := lockfile.ForSheet(m.path)
	if err == nil {
		err = l.TryAcquire()
	}
	if err != nil {
		m.log.Warn("lock %s: %v", m.path, err)
		var held *lockfile.LockedError
		if errors.As(err, &held) {
			m.setError("Warning: %v", err)
		}
		return
	}
	m.lock = l
}

func (m *Model) isWatching(path string) bool {
	abs, err := filepath.Abs(path)
	return err == nil && abs == m.watcher.Path()
}

// startWatcher replaces the watcher with one for the current path and
// returns the command that waits for its first event.
func (m *Model) startWatcher() tea.Cmd {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	if !m.watchEnabled || m.path == "" {
		return nil
	}
	w, err := watch.New(m.path)
	if err != nil {
		m.log.Warn("not watching %s: %v", m.path, err)
		return nil
	}
	m.watcher = w
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return fileChangedMsg{w: w}
	}
}

func (m *Model) handleFileChanged(msg fileChangedMsg) tea.Cmd {
	if msg.w != m.watcher {
		return nil
	}
	if m.mode == modeReady {
		m.reload()
	} else {
		m.pendingReload = true
	}
	return m.waitForChange()
}
