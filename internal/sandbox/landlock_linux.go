//go:build linux

package sandbox

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/landlock-lsm/go-landlock/landlock"

	"github.com/codefionn/xl/internal/logger"
)

// Supported reports whether this build can apply Landlock. Whether the
// running kernel enforces it is only known once Restrict runs.
func Supported() bool { return true }

// Restrict applies p to the current process and every child it starts.
func Restrict(p Policy) error {
	rules := make([]landlock.Rule, 0, len(p.Paths))
	ro, rw := 0, 0
	for _, perm := range p.Paths {
		// Landlock rejects directory rights on regular files.
		isFile := false
		if info, err := os.Stat(perm.Path); err == nil && !info.IsDir() {
			isFile = true
		}
		switch {
		case perm.Access == AccessReadWrite && isFile:
			rules = append(rules, landlock.RWFiles(perm.Path))
			rw++
		case perm.Access == AccessReadWrite:
			rules = append(rules, landlock.RWDirs(perm.Path))
			rw++
		case isFile:
			rules = append(rules, landlock.ROFiles(perm.Path))
			ro++
		default:
			rules = append(rules, landlock.RODirs(perm.Path))
			ro++
		}
	}

	cfg := landlock.V6
	if p.BestEffort {
		cfg = cfg.BestEffort()
	}
	if err := cfg.RestrictPaths(rules...); err != nil {
		return fmt.Errorf("landlock restriction failed: %w", err)
	}
	logger.Debug("landlock restrictions applied: %d read-only, %d read-write", ro, rw)
	return nil
}

// Exec replaces the current process with argv.
func Exec(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("nothing to execute")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", argv[0], err)
	}
	return syscall.Exec(path, argv, os.Environ())
}
