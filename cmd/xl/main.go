package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codefionn/xl/internal/config"
	"github.com/codefionn/xl/internal/fileio"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/grid"
	"github.com/codefionn/xl/internal/logger"
	"github.com/codefionn/xl/internal/shell"
	"github.com/codefionn/xl/internal/tui"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

var sheetFile string

// rootCmd opens the editor.
var rootCmd = &cobra.Command{
	Use:   "xl [-f file]",
	Short: "A spreadsheet for the terminal",
	Long: `xl edits CSV, TSV, XLSX and xldb sheets in the terminal.

Formulas start with "=" and support references, ranges, arithmetic and the
usual aggregate, lookup, logical and text functions. Text piped into xl is
split on whitespace and opened as a new sheet.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sheetFile, "file", "f", "", "Sheet to open (.csv, .tsv, .xlsx, .xldb)")
	rootCmd.Flags().BoolP("version", "V", false, "Print the version")
	rootCmd.SetVersionTemplate("xl {{.Version}}\n")
}

// setup loads the configuration and starts file logging.
func setup() (*config.Config, error) {
	cfg, err := config.Load(config.GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.ImportLegacy(config.LegacyPath()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogPath); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// loadSheet opens path. A path that does not exist yet starts an empty
// sheet that will be saved there.
func loadSheet(cfg *config.Config, path string) (*grid.Sheet, error) {
	if path == "" {
		return grid.New(cfg.DefaultRows, cfg.DefaultCols), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if _, ok := fileio.FormatFromPath(path); !ok {
			return nil, fmt.Errorf("%w: %s", fileio.ErrUnsupportedFormat, path)
		}
		return grid.New(cfg.DefaultRows, cfg.DefaultCols), nil
	}
	sheet, err := fileio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return sheet, nil
}

// shellRunner returns the configured SHELL runner, or nil when SHELL is
// disabled. The nil is untyped so callers can compare against it.
func shellRunner(cfg *config.Config) (formula.ShellRunner, error) {
	dir, _ := os.Getwd()
	r, err := shell.FromConfig(cfg.Shell, dir)
	if err != nil || r == nil {
		return nil, err
	}
	return r, nil
}

func runEditor(cmd *cobra.Command, _ []string) error {
	// Piped input must be drained before the terminal is touched.
	var piped *grid.Sheet
	stdinPiped := !term.IsTerminal(int(os.Stdin.Fd()))
	if stdinPiped {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		piped = fileio.LoadBuffer(data)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout must be a terminal to run xl interactively")
	}

	cfg, err := setup()
	if err != nil {
		return err
	}
	defer logger.Global().Close()

	sheet := piped
	if sheet == nil {
		if sheet, err = loadSheet(cfg, sheetFile); err != nil {
			return err
		}
	}
	runner, err := shellRunner(cfg)
	if err != nil {
		return err
	}

	model := tui.New(tui.Options{
		Sheet:      sheet,
		Path:       sheetFile,
		Config:     cfg,
		ConfigPath: config.GetConfigPath(),
		LegacyPath: config.LegacyPath(),
		Runner:     runner,
		Watch:      cfg.WatchFile && piped == nil,
		Lock:       piped == nil,
	})
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if stdinPiped {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("failed to open terminal for input: %w", err)
		}
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty))
	}

	logger.Info("starting editor (file %q)", sheetFile)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
