// Package sandbox restricts SHELL children with Linux Landlock.
//
// Landlock applies to the calling process, so xl re-executes itself through
// a hidden subcommand that restricts itself and then execs the shell. On
// other systems, or kernels without Landlock, commands run unsandboxed.
package sandbox

import (
	"errors"
	"os"
	"path/filepath"
)

// Subcommand is the hidden xl subcommand that applies a Policy and execs.
const Subcommand = "sandbox-exec"

// ErrUnsupported is returned where Landlock does not exist.
var ErrUnsupported = errors.New("landlock is not supported on this platform")

// AccessLevel is the filesystem access granted to a path.
type AccessLevel int

const (
	AccessReadOnly AccessLevel = iota
	AccessReadWrite
)

// DirectoryPermission grants access to a directory or file.
type DirectoryPermission struct {
	Path   string
	Access AccessLevel
}

// Policy is the set of paths a sandboxed command may touch.
type Policy struct {
	Paths []DirectoryPermission
	// BestEffort degrades to the strongest Landlock ABI the kernel offers
	// instead of failing.
	BestEffort bool
}

var systemPaths = []string{
	"/usr", "/bin", "/lib", "/lib64", "/sbin", "/etc",
	"/usr/local/bin", "/usr/local/lib",
	"/run/current-system/sw", "/nix/store",
}

var devFiles = []string{
	"/dev/null", "/dev/zero", "/dev/random", "/dev/urandom",
	"/dev/stdin", "/dev/stdout", "/dev/stderr", "/dev/tty",
}

// DefaultPolicy grants read access to the system, read-write access to the
// temp dirs, the device files, workDir and extra. Paths that do not exist
// are skipped.
func DefaultPolicy(workDir string, extra []string) Policy {
	p := Policy{BestEffort: true}
	seen := make(map[string]bool)
	add := func(path string, access AccessLevel) {
		if path == "" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if seen[abs] {
			return
		}
		if _, err := os.Stat(abs); err != nil {
			return
		}
		seen[abs] = true
		p.Paths = append(p.Paths, DirectoryPermission{Path: abs, Access: access})
	}

	for _, path := range systemPaths {
		add(path, AccessReadOnly)
	}
	if home, err := os.UserHomeDir(); err == nil {
		add(filepath.Join(home, ".local/bin"), AccessReadOnly)
	}
	for _, path := range devFiles {
		add(path, AccessReadWrite)
	}
	for _, path := range []string{os.TempDir(), "/tmp", "/var/tmp"} {
		add(path, AccessReadWrite)
	}
	add(workDir, AccessReadWrite)
	for _, path := range extra {
		add(path, AccessReadWrite)
	}
	return p
}

// Args renders the policy as flags for the Subcommand.
func (p Policy) Args() []string {
	args := make([]string, 0, len(p.Paths)+1)
	for _, perm := range p.Paths {
		switch perm.Access {
		case AccessReadWrite:
			args = append(args, "--rw="+perm.Path)
		default:
			args = append(args, "--ro="+perm.Path)
		}
	}
	if !p.BestEffort {
		args = append(args, "--strict")
	}
	return args
}

// FromFlags builds a Policy from the Subcommand's flag values.
func FromFlags(ro, rw []string, strict bool) Policy {
	p := Policy{BestEffort: !strict}
	for _, path := range ro {
		p.Paths = append(p.Paths, DirectoryPermission{Path: path, Access: AccessReadOnly})
	}
	for _, path := range rw {
		p.Paths = append(p.Paths, DirectoryPermission{Path: path, Access: AccessReadWrite})
	}
	return p
}

// Wrap returns the argv that runs command under p by re-executing exe.
func Wrap(exe string, p Policy, command []string) []string {
	argv := append([]string{exe, Subcommand}, p.Args()...)
	argv = append(argv, "--")
	return append(argv, command...)
}
