// ABOUTME: Resize notifications for ProcessTerminal on unix, driven by SIGWINCH
// ABOUTME: Each signal re-measures the tty and reports the size to the callback set by OnResize

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

func (t *ProcessTerminal) startResizeListener() {
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go t.forwardResizes(winch)
}

// forwardResizes runs for the life of the process. Signals that arrive
// before a callback is set, or while the size cannot be read, are ignored.
func (t *ProcessTerminal) forwardResizes(winch <-chan os.Signal) {
	for range winch {
		t.mu.Lock()
		notify := t.resizeFn
		t.mu.Unlock()
		if notify == nil {
			continue
		}
		if cols, rows, err := t.Size(); err == nil {
			notify(cols, rows)
		}
	}
}
