package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/logger"
)

var (
	evalCell string
	evalAt   string
)

// evalCmd prints evaluated cells or formulas without opening the editor.
var evalCmd = &cobra.Command{
	Use:   "eval [FORMULA...]",
	Short: "Evaluate a sheet, a cell or formulas",
	Long: `Evaluate prints results without opening the editor.

With --cell it prints one evaluated cell. Each FORMULA argument is evaluated
as if it were entered at --at (default A1). Without either, the whole
evaluated sheet is printed as TSV. SHELL formulas are not run.`,
	Example: `  xl eval -f budget.csv --cell C10
  xl eval -f budget.csv '=SUM(B2:B9)' '=MAX(B2:B9)'
  xl eval '=ROUND(2/3, 2)'`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalCell, "cell", "", "Print the evaluated value of one cell, e.g. B2")
	evalCmd.Flags().StringVar(&evalAt, "at", "A1", "Cell that FORMULA arguments are evaluated at")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer logger.Global().Close()

	sheet, err := loadSheet(cfg, sheetFile)
	if err != nil {
		return err
	}

	var opts []formula.Option
	if cfg.Eval.Memoize {
		opts = append(opts, formula.WithMemo())
	}
	engine := formula.New(sheet, opts...)
	out := cmd.OutOrStdout()

	switch {
	case evalCell != "":
		ref, ok := cellref.ParseRef(evalCell)
		if !ok {
			return fmt.Errorf("invalid cell reference %q", evalCell)
		}
		fmt.Fprintln(out, colorize(engine.EvaluateCell(ref.Row, ref.Col)))
	case len(args) > 0:
		at, ok := cellref.ParseRef(evalAt)
		if !ok {
			return fmt.Errorf("invalid cell reference %q", evalAt)
		}
		for _, arg := range args {
			text := strings.TrimSpace(arg)
			if !formula.IsFormula(text) {
				text = "=" + text
			}
			fmt.Fprintln(out, colorize(engine.EvaluateFormula(text, at.Row, at.Col)))
		}
	default:
		dumpSheet(out, engine, sheet.Bounds)
	}
	return nil
}

// dumpSheet writes every evaluated cell inside the data bounds as TSV.
func dumpSheet(w io.Writer, engine *formula.Engine, bounds func() (int, int)) {
	maxRow, maxCol := bounds()
	for row := 0; row <= maxRow; row++ {
		fields := make([]string, maxCol+1)
		for col := range fields {
			fields[col] = colorize(engine.EvaluateCell(row, col))
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
}

var errColor = color.New(color.FgRed, color.Bold).SprintFunc()

func colorize(value string) string {
	if formula.IsError(value) {
		return errColor(value)
	}
	return value
}
