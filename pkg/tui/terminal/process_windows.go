// ABOUTME: Windows stub for ProcessTerminal resize handling.
// ABOUTME: Windows delivers no SIGWINCH; the app polls Size on redraw instead.

//go:build windows

package terminal

func (t *ProcessTerminal) startResizeListener() {}
