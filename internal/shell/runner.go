// Package shell runs the commands behind the SHELL formula function.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/codefionn/xl/internal/config"
	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/logger"
	"github.com/codefionn/xl/internal/sandbox"
	"github.com/codefionn/xl/internal/syntax"
)

var _ formula.ShellRunner = (*Runner)(nil)

// Options configures a Runner.
type Options struct {
	// Timeout bounds each command. Zero selects the default.
	Timeout time.Duration
	// Dir is the working directory; empty inherits ours.
	Dir string
	// Validate parses commands with the bash grammar before spawning them.
	Validate bool
	// Sandbox, when set, runs commands under Landlock through Executable.
	Sandbox    *sandbox.Policy
	Executable string
}

// Runner executes commands through the platform shell.
type Runner struct {
	opts      Options
	validator *syntax.Validator
	log       *logger.Logger
}

// NewRunner creates a runner.
func NewRunner(opts Options) *Runner {
	if opts.Timeout <= 0 {
		opts.Timeout = consts.DefaultShellTimeout
	}
	r := &Runner{opts: opts, log: logger.Global().WithPrefix("shell")}
	if opts.Validate {
		r.validator = syntax.NewValidator()
	}
	return r
}

// FromConfig builds the runner described by cfg. It returns nil when SHELL
// is disabled.
func FromConfig(cfg config.ShellConfig, dir string) (*Runner, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	opts := Options{
		Timeout: cfg.Timeout(),
		Dir:     dir,
		// The grammar is bash; cmd.exe lines would be rejected.
		Validate: cfg.ValidateSyntax && runtime.GOOS != "windows",
	}
	if cfg.Sandbox {
		if !sandbox.Supported() {
			logger.Warn("shell sandbox requested but %v, commands run unsandboxed", sandbox.ErrUnsupported)
		} else {
			exe, err := os.Executable()
			if err != nil {
				return nil, fmt.Errorf("failed to locate xl for sandboxing: %w", err)
			}
			workDir := dir
			if workDir == "" {
				workDir, _ = os.Getwd()
			}
			policy := sandbox.DefaultPolicy(workDir, cfg.SandboxRWPaths)
			opts.Sandbox = &policy
			opts.Executable = exe
		}
	}
	return NewRunner(opts), nil
}

// Timeout is the per-command limit.
func (r *Runner) Timeout() time.Duration { return r.opts.Timeout }

// Run executes command and collects its output. A non-zero exit status is
// reported in the result, not as an error. Errors cover commands that could
// not run: syntax errors, spawn failures and timeouts.
func (r *Runner) Run(ctx context.Context, command string) (formula.ShellResult, error) {
	if r.validator != nil {
		if err := r.validator.Check(command); err != nil {
			r.log.Warn("rejected %q: %v", command, err)
			return formula.ShellResult{}, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	argv := shellArgv(command)
	if r.opts.Sandbox != nil {
		argv = sandbox.Wrap(r.opts.Executable, *r.opts.Sandbox, argv)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.opts.Dir
	configureProcessGroup(cmd)
	cmd.WaitDelay = time.Second

	stdout := newCappedBuffer(consts.MaxShellOutput)
	stderr := newCappedBuffer(consts.MaxShellOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			r.log.Warn("%q timed out after %s", command, r.opts.Timeout)
			return formula.ShellResult{}, fmt.Errorf("command timed out after %s", r.opts.Timeout)
		}
		return formula.ShellResult{}, ctxErr
	}

	res := formula.ShellResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if stdout.Truncated() || stderr.Truncated() {
		r.log.Warn("%q output truncated to %d bytes", command, consts.MaxShellOutput)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		r.log.Info("%q exited with %d in %s", command, res.ExitCode, elapsed)
		return res, nil
	}
	if err != nil {
		return formula.ShellResult{}, fmt.Errorf("failed to run command: %w", err)
	}
	r.log.Debug("%q finished in %s (%d bytes)", command, elapsed, len(res.Stdout))
	return res, nil
}
