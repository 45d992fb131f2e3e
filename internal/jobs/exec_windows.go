// ABOUTME: Windows has no pty support for jobs; they always run with pipes

//go:build windows

package jobs

import (
	"io"
	"os/exec"
)

func startPTY(*exec.Cmd) (io.ReadCloser, error) { return nil, errNoPTY }

func setProcessGroup(*exec.Cmd) {}
