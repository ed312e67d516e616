//go:build !windows

package shell

import (
	"os/exec"
	"syscall"
)

func shellArgv(command string) []string {
	return []string{"sh", "-c", command}
}

// configureProcessGroup puts the command in its own process group and makes
// cancellation kill the whole group, so pipelines and background children
// die with the shell.
func configureProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
