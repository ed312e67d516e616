// Package watch reports when the opened sheet file changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/logger"
)

// Event says the watched file was written or replaced.
type Event struct {
	Path string
}

// Watcher debounces fsnotify events for a single file. The parent
// directory is watched so that editors which save by rename are seen.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	events   chan Event
	done     chan struct{}
	log      *logger.Logger

	mu          sync.Mutex
	ignoreUntil time.Time
	closeOnce   sync.Once
	wg          sync.WaitGroup
}

// New starts watching path with the default debounce.
func New(path string) (*Watcher, error) {
	return NewWithDebounce(path, consts.WatchDebounce)
}

// NewWithDebounce starts watching path, coalescing events closer together
// than d.
func NewWithDebounce(path string, d time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		debounce: d,
		fsw:      fsw,
		events:   make(chan Event, 1),
		done:     make(chan struct{}),
		log:      logger.Global().WithPrefix("watch"),
	}
	w.wg.Add(1)
	go w.loop()
	w.log.Debug("watching %s", abs)
	return w, nil
}

// Events delivers at most one pending reload at a time.
func (w *Watcher) Events() <-chan Event { return w.events }

// Path is the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Ignore drops events for the next d, covering writes xl makes itself.
func (w *Watcher) Ignore(d time.Duration) {
	w.mu.Lock()
	w.ignoreUntil = time.Now().Add(d)
	w.mu.Unlock()
}

func (w *Watcher) ignored() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Now().Before(w.ignoreUntil)
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("file watcher error: %v", err)
		case <-timer.C:
			if w.ignored() {
				continue
			}
			select {
			case w.events <- Event{Path: w.path}:
			default:
				// A reload is already pending.
			}
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.events)
	})
	return err
}
