package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{" none ", LevelNone},
		{"off", LevelNone},
		{"invalid", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "NONE", LevelNone.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestNewLoggerFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "xl.log")

	l, err := New(LevelInfo, logPath, "grid")
	require.NoError(t, err)
	l.Info("loaded %d cells", 3)
	l.Debug("should not appear")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO] [grid] loaded 3 cells")
	assert.NotContains(t, string(content), "should not appear")
}

func TestWithPrefixNests(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelDebug, &buf, "xl")

	l.WithPrefix("formula").Debug("cycle through %s", "A1")

	assert.Contains(t, buf.String(), "[DEBUG] [xl:formula] cycle through A1")
	assert.Equal(t, "xl:formula", l.WithPrefix("formula").Prefix())
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelInfo, &buf, "")

	l.Debug("debug1")
	l.SetLevel(LevelDebug)
	l.Debug("debug2")

	assert.NotContains(t, buf.String(), "debug1")
	assert.Contains(t, buf.String(), "debug2")
	assert.Equal(t, LevelDebug, l.GetLevel())
}

func TestDisabledLogger(t *testing.T) {
	l, err := New(LevelNone, "", "test")
	require.NoError(t, err)

	var buf bytes.Buffer
	w := NewWriter(LevelNone, &buf, "test")
	w.Error("nothing")
	l.Error("nothing")

	assert.Empty(t, buf.String())
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	SetGlobal(NewWriter(LevelWarn, &buf, ""))
	t.Cleanup(func() { SetGlobal(nil) })

	Info("quiet")
	Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelInfo, &buf, "api")

	s := slog.New(NewSlogHandler(l)).WithGroup("req").With("method", "GET")
	s.Info("served", "status", 200)
	s.Debug("hidden")

	assert.Contains(t, buf.String(), "served req.method=GET req.status=200")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Nil(t, NewSlogHandler(nil))
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(LevelDebug, &buf, "api")

	NewStdLogger(l, slog.LevelError).Print("http: TLS handshake error")

	assert.Contains(t, buf.String(), "[ERROR] [api] http: TLS handshake error")
}
