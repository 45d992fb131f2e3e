// ABOUTME: Unix process setup for jobs: pty start and whole-group termination on cancel

//go:build unix

package jobs

import (
	"io"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// startPTY starts cmd attached to a new pty. The child becomes a session
// leader, so cancelling kills its whole process group.
func startPTY(cmd *exec.Cmd) (io.ReadCloser, error) {
	cmd.Cancel = func() error { return killGroup(cmd) }
	return pty.StartWithSize(cmd, &pty.Winsize{Rows: ptyRows, Cols: ptyCols})
}

// setProcessGroup puts a pipe-backed cmd in its own process group.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error { return killGroup(cmd) }
}

func killGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
