//go:build windows

package shell

import "os/exec"

func shellArgv(command string) []string {
	return []string{"cmd", "/C", command}
}

// Process groups are handled differently on Windows; CommandContext kills
// the direct child only.
func configureProcessGroup(cmd *exec.Cmd) {
	_ = cmd
}
