// Package formula evaluates the textual formula language of xl cells.
//
// Formulas are re-parsed from raw text on every evaluation. The engine reads
// cells through a Grid; only an engine built WithShell may mutate the grid,
// and only the SHELL function does so.
package formula

import (
	"context"
	"math"
	"strings"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/logger"
)

// epsilon is the tolerance used by =, <> and truthiness checks.
const epsilon = 2.220446049250313e-16

// Grid is read access to cell text. Absent cells are "".
type Grid interface {
	Cell(row, col int) string
	Rows() int
	Cols() int
}

// MutableGrid is the capability SHELL needs to write its output back.
type MutableGrid interface {
	Grid
	// SetCell stores text; empty text removes the cell.
	SetCell(row, col int, text string)
	// Grow raises the dimensions to at least rows x cols. It never shrinks.
	Grow(rows, cols int)
}

// Engine evaluates cells of one grid.
type Engine struct {
	grid  Grid
	shell ShellRunner
	out   MutableGrid
	memo  *memo
	log   *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithShell enables SHELL. Output is written to out, which should be the
// same grid the engine reads from.
func WithShell(runner ShellRunner, out MutableGrid) Option {
	return func(e *Engine) {
		e.shell = runner
		e.out = out
	}
}

// WithMemo caches formula results per cell. The grid must implement
// Generational; otherwise the option is ignored.
func WithMemo() Option {
	return func(e *Engine) {
		if g, ok := e.grid.(Generational); ok {
			e.memo = newMemo(g)
			return
		}
		e.log.Warn("memoization requested but grid has no generation counter")
	}
}

// WithLogger replaces the default "formula" logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine over grid.
func New(grid Grid, opts ...Option) *Engine {
	e := &Engine{
		grid: grid,
		log:  logger.Global().WithPrefix("formula"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CanMutate reports whether SHELL is enabled on this engine.
func (e *Engine) CanMutate() bool {
	return e.shell != nil && e.out != nil
}

// MemoStats returns cache hits and misses, or zeros without memoization.
func (e *Engine) MemoStats() (hits, misses uint64) {
	if e.memo == nil {
		return 0, 0
	}
	return e.memo.hits, e.memo.misses
}

// EvaluateCell returns the display value of a cell. Non-formula text is
// returned unchanged.
func (e *Engine) EvaluateCell(row, col int) string {
	return e.EvaluateCellContext(context.Background(), row, col)
}

// EvaluateCellContext is EvaluateCell with a context bounding SHELL.
func (e *Engine) EvaluateCellContext(ctx context.Context, row, col int) string {
	return e.begin(ctx).cell(row, col)
}

// EvaluateFormula evaluates text as if it were typed into (row, col). The
// leading "=" is optional.
func (e *Engine) EvaluateFormula(text string, row, col int) string {
	return e.EvaluateFormulaContext(context.Background(), text, row, col)
}

// EvaluateFormulaContext is EvaluateFormula with a context bounding SHELL.
func (e *Engine) EvaluateFormulaContext(ctx context.Context, text string, row, col int) string {
	ev := e.begin(ctx)
	out := ev.formula(text, row, col)
	if ev.cycle && IsError(out) {
		return Cycle
	}
	return out
}

// ParseCellRef exposes the addressing rules used inside formulas.
func ParseCellRef(text string) (row, col int, ok bool) {
	return cellref.Parse(text)
}

func (e *Engine) begin(ctx context.Context) *evaluation {
	if ctx == nil {
		ctx = context.Background()
	}
	return &evaluation{
		e:        e,
		ctx:      ctx,
		inflight: make(map[cellref.Ref]struct{}),
	}
}

// evaluation is the state of one top-level request: the cells currently
// being evaluated and whether a cycle or a side effect was observed.
type evaluation struct {
	e        *Engine
	ctx      context.Context
	inflight map[cellref.Ref]struct{}
	cycle    bool
	mutated  bool
}

func (ev *evaluation) cell(row, col int) string {
	raw := ev.e.grid.Cell(row, col)
	if !IsFormula(raw) {
		return raw
	}
	return ev.formulaCell(row, col, raw)
}

// cellNumber resolves a cell to a number. SHELL formulas never yield one
// and are not run.
func (ev *evaluation) cellNumber(row, col int) (float64, bool) {
	raw := ev.e.grid.Cell(row, col)
	if !IsFormula(raw) {
		return ParseNumber(raw)
	}
	if isShellFormula(raw) {
		return 0, false
	}
	return ParseNumber(ev.formulaCell(row, col, raw))
}

func (ev *evaluation) formulaCell(row, col int, raw string) string {
	ref := cellref.Ref{Row: row, Col: col}
	if _, busy := ev.inflight[ref]; busy {
		ev.cycle = true
		ev.e.log.Debug("reference cycle through %s", ref)
		return Cycle
	}
	if v, ok := ev.e.memo.get(ref, raw); ok {
		return v
	}
	gen := ev.e.memo.generation()

	ev.inflight[ref] = struct{}{}
	outerCycle, outerMutated := ev.cycle, ev.mutated
	ev.cycle, ev.mutated = false, false

	out := ev.formula(raw, row, col)

	hit, mutated := ev.cycle, ev.mutated
	delete(ev.inflight, ref)
	ev.cycle = outerCycle || hit
	ev.mutated = outerMutated || mutated

	if hit && IsError(out) {
		out = Cycle
	}
	if !hit && !mutated {
		ev.e.memo.put(ref, raw, out, gen)
	}
	return out
}

// formula is the dispatcher entry: function call, then arithmetic.
func (ev *evaluation) formula(text string, row, col int) string {
	expr := strings.TrimSpace(strings.TrimPrefix(text, "="))
	if c, ok := parseCall(expr); ok {
		return ev.invoke(c, row, col)
	}
	v, err := ev.arithmetic(expr, row, col)
	switch {
	case err == nil:
		return FormatNumber(v)
	case err == errDivZero:
		return DivZero
	default:
		return Error
	}
}

func truthy(v float64) bool {
	return math.Abs(v) > epsilon
}
