//go:build !linux

package sandbox

// Supported reports whether this build can apply Landlock.
func Supported() bool { return false }

// Restrict is unavailable off Linux.
func Restrict(Policy) error { return ErrUnsupported }

// Exec is unavailable off Linux.
func Exec([]string) error { return ErrUnsupported }
