// Package lockfile marks a sheet as open in an xl session, so a second
// session on the same file can warn before edits collide.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrLocked is returned when a running process holds the lock.
var ErrLocked = errors.New("sheet is open in another xl")

// LockedError names the process holding the lock.
type LockedError struct {
	Path string
	PID  int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s is open in another xl (pid %d)", e.Path, e.PID)
}

func (e *LockedError) Unwrap() error { return ErrLocked }

// Lockfile is an exclusive marker file holding the owner's PID.
type Lockfile struct {
	path   string
	name   string // what the lock guards, for messages
	file   *os.File
	locked bool
}

// New creates a lock at path without acquiring it.
func New(path string) *Lockfile {
	return &Lockfile{path: path, name: path}
}

// ForSheet returns the lock guarding sheet: ".<name>.xl-lock" next to it.
func ForSheet(sheet string) (*Lockfile, error) {
	abs, err := filepath.Abs(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", sheet, err)
	}
	dir, name := filepath.Split(abs)
	l := New(filepath.Join(dir, "."+name+".xl-lock"))
	l.name = abs
	return l, nil
}

// TryAcquire takes the lock. A lock left behind by a process that is no
// longer running is replaced; a live one yields a *LockedError.
func (l *Lockfile) TryAcquire() error {
	if l.locked {
		return nil
	}
	if err := l.create(); err == nil || !os.IsExist(err) {
		return err
	}

	pid, ok := l.owner()
	if ok && pid != os.Getpid() && isProcessRunning(pid) {
		return &LockedError{Path: l.name, PID: pid}
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale lockfile: %w", err)
	}
	return l.create()
}

func (l *Lockfile) create() error {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return err
		}
		return fmt.Errorf("failed to create lockfile: %w", err)
	}
	content := fmt.Sprintf("%d\n%s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(l.path)
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	l.file = file
	l.locked = true
	return nil
}

// owner reads the PID from an existing lockfile. Unreadable or malformed
// files report false and are treated as stale.
func (l *Lockfile) owner() (int, bool) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, false
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Release removes the lock. Releasing an unheld lock is a no-op.
func (l *Lockfile) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false

	var err error
	if l.file != nil {
		err = l.file.Close()
		l.file = nil
	}
	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		err = errors.Join(err, fmt.Errorf("failed to remove lockfile: %w", removeErr))
	}
	return err
}

// Locked reports whether the lock is held.
func (l *Lockfile) Locked() bool { return l.locked }

// Path is the lockfile location.
func (l *Lockfile) Path() string { return l.path }
