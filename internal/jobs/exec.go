// ABOUTME: Process execution for jobs: a pseudo-terminal so tools keep their colored output
// ABOUTME: Falls back to plain pipes when no pty is available

package jobs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/mauromedda/tfm/internal/log"
)

const (
	ptyRows = 50
	ptyCols = 160
)

// errNoPTY is returned by startPTY on platforms without pseudo-terminals.
var errNoPTY = errors.New("pty not supported")

// execute runs command with opts.Shell -c in dir, passing every output line
// to emit. It returns the exit code; err is set only when the process could
// not be started or waited for, in which case the code is -1.
func execute(ctx context.Context, opts Options, command, dir string, emit func(string)) (int, error) {
	newCmd := func() *exec.Cmd {
		cmd := exec.CommandContext(ctx, opts.Shell, "-c", command)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "TERM=xterm-256color")
		return cmd
	}

	if !opts.NoPTY {
		cmd := newCmd()
		ptmx, err := startPTY(cmd)
		if err == nil {
			scan(ptmx, emit)
			_ = ptmx.Close()
			err := cmd.Wait()
			return exitCode(cmd.ProcessState, err)
		}
		log.Debug("jobs: pty unavailable, using pipes: %v", err)
	}

	cmd := newCmd()
	setProcessGroup(cmd)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("starting job: %w", err)
	}
	go func() {
		_ = pw.CloseWithError(waitErr(cmd))
	}()
	scan(pr, emit)
	return exitCode(cmd.ProcessState, nil)
}

// scan splits r into lines until EOF. A pty master reports EIO once the
// child side closes; that is treated as EOF.
func scan(r io.Reader, emit func(string)) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	for sc.Scan() {
		emit(strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil && !errors.Is(err, syscall.EIO) {
		log.Debug("jobs: reading output: %v", err)
	}
}

// waitErr waits for cmd and converts a normal exit, zero or not, into
// io.EOF so the pipe reader finishes cleanly.
func waitErr(cmd *exec.Cmd) error {
	err := cmd.Wait()
	var exitErr *exec.ExitError
	if err == nil || errors.As(err, &exitErr) {
		return io.EOF
	}
	return err
}

func exitCode(state *os.ProcessState, err error) (int, error) {
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	case err != nil:
		return -1, err
	case state == nil:
		return -1, errors.New("job finished without exit status")
	}
	return state.ExitCode(), nil
}
