package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 50 * time.Millisecond

func waitEvent(t *testing.T, w *Watcher) (Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		return ev, ok
	case <-time.After(2 * time.Second):
		return Event{}, false
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))

	w, err := NewWithDebounce(path, testDebounce)
	require.NoError(t, err)
	defer w.Close()

	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i), '\n'}, 0644))
	}

	ev, ok := waitEvent(t, w)
	require.True(t, ok, "expected a reload event")
	abs, _ := filepath.Abs(path)
	assert.Equal(t, abs, ev.Path)

	// The burst collapses into the single event above.
	select {
	case <-w.Events():
		t.Fatal("expected writes to be debounced")
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := NewWithDebounce(path, testDebounce)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0644))
	select {
	case <-w.Events():
		t.Fatal("unexpected event for another file")
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcherIgnoreWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := NewWithDebounce(path, testDebounce)
	require.NoError(t, err)
	defer w.Close()

	w.Ignore(time.Second)
	require.NoError(t, os.WriteFile(path, []byte("self"), 0644))
	select {
	case <-w.Events():
		t.Fatal("own write should be ignored")
	case <-time.After(4 * testDebounce):
	}
}

func TestWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	w, err := New(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "sheet.csv"))
	assert.Error(t, err)
}
