//go:build !windows

package shell

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefionn/xl/internal/config"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/grid"
)

func TestRunCollectsOutput(t *testing.T) {
	r := NewRunner(Options{})
	res, err := r.Run(context.Background(), "echo hello; echo oops >&2")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, "oops\n", res.Stderr)
	assert.Zero(t, res.ExitCode)
}

func TestRunReportsExitCode(t *testing.T) {
	r := NewRunner(Options{})
	res, err := r.Run(context.Background(), "echo boom >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom\n", res.Stderr)
}

func TestRunTimesOut(t *testing.T) {
	r := NewRunner(Options{Timeout: 200 * time.Millisecond})
	start := time.Now()
	_, err := r.Run(context.Background(), "sleep 5 | cat")
	require.Error(t, err)
	assert.Equal(t, "command timed out after 200ms", err.Error())
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunUsesDir(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(Options{Dir: dir})
	res, err := r.Run(context.Background(), "pwd -P")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(res.Stdout))
}

func TestRunValidatesSyntax(t *testing.T) {
	r := NewRunner(Options{Validate: true})
	if !r.validator.Available() {
		t.Skip("built without cgo")
	}
	_, err := r.Run(context.Background(), `echo "unterminated`)
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	r, err := FromConfig(config.ShellConfig{Enabled: false}, "")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = FromConfig(config.ShellConfig{Enabled: true, TimeoutSeconds: 2}, "")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 2*time.Second, r.Timeout())
	assert.Nil(t, r.opts.Sandbox)
}

func TestCappedBuffer(t *testing.T) {
	b := newCappedBuffer(5)
	n, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, _ = b.Write([]byte("defgh"))
	assert.Equal(t, 5, n)
	_, _ = b.Write([]byte("ij"))

	assert.Equal(t, "abcde", b.String())
	assert.True(t, b.Truncated())
}

func TestRunnerDrivesShellFormula(t *testing.T) {
	s := grid.New(5, 5)
	s.SetCell(0, 0, `=SHELL("printf 'a b\nc d\n'")`)
	e := formula.New(s, formula.WithShell(NewRunner(Options{}), s))

	assert.Equal(t, formula.ShellOK, e.EvaluateCell(0, 0))
	assert.Equal(t, "a", s.Cell(0, 0))
	assert.Equal(t, "b", s.Cell(0, 1))
	assert.Equal(t, "d", s.Cell(1, 1))
}
