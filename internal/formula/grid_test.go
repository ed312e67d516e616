package formula

import (
	"context"
	"sync"

	"github.com/codefionn/xl/internal/cellref"
)

// testGrid is a sparse grid with a mutation counter.
type testGrid struct {
	cells      map[cellref.Ref]string
	rows, cols int
	gen        uint64
}

func newTestGrid(cells map[string]string) *testGrid {
	g := &testGrid{cells: make(map[cellref.Ref]string), rows: 100, cols: 26}
	for label, text := range cells {
		ref, ok := cellref.ParseRef(label)
		if !ok {
			panic("bad label " + label)
		}
		g.cells[ref] = text
	}
	return g
}

func (g *testGrid) Cell(row, col int) string {
	return g.cells[cellref.Ref{Row: row, Col: col}]
}

func (g *testGrid) At(label string) string {
	ref, _ := cellref.ParseRef(label)
	return g.cells[ref]
}

func (g *testGrid) Rows() int { return g.rows }
func (g *testGrid) Cols() int { return g.cols }

func (g *testGrid) SetCell(row, col int, text string) {
	ref := cellref.Ref{Row: row, Col: col}
	if text == "" {
		delete(g.cells, ref)
	} else {
		g.cells[ref] = text
	}
	g.gen++
}

func (g *testGrid) Set(label, text string) {
	ref, _ := cellref.ParseRef(label)
	g.SetCell(ref.Row, ref.Col, text)
}

func (g *testGrid) Grow(rows, cols int) {
	g.rows = max(g.rows, rows)
	g.cols = max(g.cols, cols)
}

func (g *testGrid) Generation() uint64 { return g.gen }

// plainGrid hides Generation.
type plainGrid struct{ g *testGrid }

func (p plainGrid) Cell(row, col int) string { return p.g.Cell(row, col) }
func (p plainGrid) Rows() int                { return p.g.Rows() }
func (p plainGrid) Cols() int                { return p.g.Cols() }

// fakeRunner returns a canned result and records the commands it saw.
type fakeRunner struct {
	mu       sync.Mutex
	result   ShellResult
	err      error
	commands []string
}

func (f *fakeRunner) Run(_ context.Context, command string) (ShellResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)
	return f.result, f.err
}

func (f *fakeRunner) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}
