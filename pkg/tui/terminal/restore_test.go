// ABOUTME: Tests for RecoverGoroutine panic recovery without os.Exit
// ABOUTME: Verifies goroutine panics are caught and fullscreen is left

package terminal

import (
	"strings"
	"testing"
)

func TestRecoverGoroutine_CatchesPanic(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(80, 24)
	_ = vt.EnterRawMode()
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer RecoverGoroutine(vt)
		panic("test goroutine panic")
	}()
	<-done

	if vt.IsRawMode() {
		t.Error("raw mode still active after goroutine panic")
	}
	if !strings.Contains(vt.Output(), ShowCursor) {
		t.Errorf("output %q lacks show-cursor", vt.Output())
	}
}

func TestRecoverGoroutine_NoPanic(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(80, 24)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer RecoverGoroutine(vt)
	}()
	<-done

	if vt.ExitCount() != 0 {
		t.Error("ExitRawMode should not be called when no panic occurs")
	}
}
