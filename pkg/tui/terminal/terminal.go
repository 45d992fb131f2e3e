// ABOUTME: Defines the Terminal interface for raw mode, size queries, input and output.
// ABOUTME: Fullscreen helpers switch to the alternate screen with a hidden cursor and back.

package terminal

import (
	"errors"
	"fmt"
	"io"
)

// Terminal abstracts low-level terminal operations: raw mode,
// size queries, input, output writing, and resize notifications.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Input() io.Reader
	Write(p []byte) (n int, err error)
	OnResize(fn func(width, height int))
}

// Control sequences used around a fullscreen session.
const (
	AltScreenOn  = "\x1b[?1049h"
	AltScreenOff = "\x1b[?1049l"
	HideCursor   = "\x1b[?25l"
	ShowCursor   = "\x1b[?25h"
	ClearScreen  = "\x1b[2J\x1b[H"
	PasteOn      = "\x1b[?2004h"
	PasteOff     = "\x1b[?2004l"
)

// EnterFullscreen puts t into raw mode, switches to the alternate screen,
// hides the cursor and enables bracketed paste.
func EnterFullscreen(t Terminal) error {
	if err := t.EnterRawMode(); err != nil {
		return err
	}
	if _, err := io.WriteString(t, AltScreenOn+HideCursor+PasteOn+ClearScreen); err != nil {
		_ = t.ExitRawMode()
		return fmt.Errorf("entering alternate screen: %w", err)
	}
	return nil
}

// LeaveFullscreen undoes EnterFullscreen in reverse order. Both steps are
// attempted; their errors are joined.
func LeaveFullscreen(t Terminal) error {
	_, werr := io.WriteString(t, PasteOff+ShowCursor+AltScreenOff)
	if werr != nil {
		werr = fmt.Errorf("leaving alternate screen: %w", werr)
	}
	return errors.Join(werr, t.ExitRawMode())
}

// Suspend leaves fullscreen, runs fn with the terminal in cooked mode and
// re-enters fullscreen, even if fn fails.
func Suspend(t Terminal, fn func() error) error {
	if err := LeaveFullscreen(t); err != nil {
		return err
	}
	runErr := fn()
	if err := EnterFullscreen(t); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}
