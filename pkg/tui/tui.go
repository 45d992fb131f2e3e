// ABOUTME: Renderer flushes Screen frames to a terminal, rewriting only rows that changed
// ABOUTME: Each flush is wrapped in CSI 2026 synchronized output; Invalidate forces a full repaint

package tui

import (
	"bytes"
	"io"
	"strconv"
	"sync"

	"github.com/mauromedda/tfm/pkg/tui/internal/pool"
	"github.com/mauromedda/tfm/pkg/tui/screen"
)

const (
	syncBegin = "\x1b[?2026h"
	syncEnd   = "\x1b[?2026l"
	clearAll  = "\x1b[2J"
	sgrReset  = "\x1b[0m"
)

// Renderer remembers the last flushed frame and emits the minimal
// row updates for the next one.
type Renderer struct {
	w io.Writer

	mu       sync.Mutex
	previous []string
	width    int
	height   int
	full     bool
}

// NewRenderer creates a Renderer writing to w. The first Flush repaints
// everything.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, full: true}
}

// Invalidate forces the next Flush to clear the terminal and repaint every
// row, e.g. after a foreground command scribbled over the screen.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	r.full = true
	r.mu.Unlock()
}

// Flush writes s to the terminal. A frame of a different size than the
// previous one is treated as a full repaint.
func (r *Renderer) Flush(s *screen.Screen) error {
	rows := s.Rows()

	r.mu.Lock()
	defer r.mu.Unlock()

	full := r.full || s.Width() != r.width || s.Height() != r.height || len(r.previous) != len(rows)

	buf := pool.GetBytesBuffer()
	defer pool.PutBytesBuffer(buf)

	var num [20]byte
	for i, row := range rows {
		if !full && r.previous[i] == row {
			continue
		}
		moveTo(buf, num[:], i, 0)
		buf.WriteString(row)
	}
	if buf.Len() == 0 && !full {
		return nil
	}

	out := pool.GetBytesBuffer()
	defer pool.PutBytesBuffer(out)
	out.WriteString(syncBegin)
	if full {
		out.WriteString(sgrReset + clearAll)
	}
	out.Write(buf.Bytes())
	out.WriteString(syncEnd)

	if _, err := r.w.Write(out.Bytes()); err != nil {
		// The terminal state is unknown now.
		r.full = true
		return err
	}

	r.previous = rows
	r.width, r.height = s.Width(), s.Height()
	r.full = false
	return nil
}

// moveTo emits an absolute cursor move to the zero-based (row, col).
func moveTo(buf *bytes.Buffer, num []byte, row, col int) {
	buf.WriteString("\x1b[")
	buf.Write(strconv.AppendInt(num[:0], int64(row+1), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendInt(num[:0], int64(col+1), 10))
	buf.WriteByte('H')
}
