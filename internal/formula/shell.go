package formula

import (
	"context"
	"strings"

	"github.com/codefionn/xl/internal/cellref"
)

// ShellResult is what a finished command produced.
type ShellResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ShellRunner runs one command line through the platform shell. An error
// is reserved for commands that could not be run to completion (spawn
// failures, timeouts, rejected syntax); a non-zero exit is a result.
type ShellRunner interface {
	Run(ctx context.Context, command string) (ShellResult, error)
}

// Output is the classification of a command's stdout.
type Output struct {
	// Rows holds whitespace-split fields per non-blank line when tabular.
	Rows    [][]string
	Tabular bool
	Text    string
}

// ClassifyOutput decides whether stdout is a table. It is tabular when at
// least half of the non-blank lines contain more than one field.
func ClassifyOutput(stdout string) Output {
	text := strings.TrimSpace(stdout)
	lines := strings.Split(text, "\n")

	var rows [][]string
	multi := 0
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > 1 {
			multi++
		}
		rows = append(rows, fields)
	}
	return Output{
		Rows:    rows,
		Tabular: len(rows) > 0 && multi*2 >= len(rows),
		Text:    text,
	}
}

func isShellFormula(raw string) bool {
	expr := strings.TrimSpace(strings.TrimPrefix(raw, "="))
	c, ok := parseCall(expr)
	return ok && c.fn == FuncShell
}

// shell runs the command and writes its output starting at (row, col).
func (ev *evaluation) shell(inner string, row, col int) string {
	if !ev.e.CanMutate() {
		return ErrorDetail("shell disabled")
	}
	command := strings.TrimSpace(inner)
	if s, ok := unquote(command); ok {
		command = strings.TrimSpace(s)
	}
	if command == "" {
		return Error
	}

	ev.e.log.Debug("running %q for %s", command, cellref.Format(row, col))
	res, err := ev.e.shell.Run(ev.ctx, command)
	if err != nil {
		ev.e.log.Warn("command %q failed: %v", command, err)
		return ErrorDetail(err.Error())
	}
	if res.ExitCode != 0 {
		return ErrorDetail(strings.TrimSpace(res.Stderr))
	}

	out := ClassifyOutput(res.Stdout)
	if out.Text == "" {
		return ShellOK
	}

	ev.mutated = true
	grid := ev.e.out
	if !out.Tabular {
		grid.SetCell(row, col, out.Text)
		return ShellOK
	}

	maxCols := 0
	for _, fields := range out.Rows {
		maxCols = max(maxCols, len(fields))
	}
	grid.Grow(row+len(out.Rows), col+maxCols)
	for i, fields := range out.Rows {
		r := row + i
		for j, field := range fields {
			c := col + j
			if i == 0 || grid.Cell(r, c) == "" {
				grid.SetCell(r, c, field)
			}
		}
	}
	return ShellOK
}
