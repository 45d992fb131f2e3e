// ABOUTME: StdinBuffer splits raw terminal bytes into complete key events and hands them to a callback
// ABOUTME: Waits briefly on partial escape sequences so a lone ESC is told apart from arrows and F-keys

package input

import (
	"context"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/tfm/pkg/tui/key"
)

const (
	readBufSize  = 256
	escTimeout   = 50 * time.Millisecond
	bracketStart = "\x1b[200~"
	bracketEnd   = "\x1b[201~"
	maxSeqLen    = 8
)

// StdinBuffer reads from a reader and dispatches parsed key events via onKey.
// Bracketed paste content is discarded: the file manager has no text field
// that could receive it outside the line prompt, which reads keys one at a time.
type StdinBuffer struct {
	reader io.Reader
	onKey  func(key.Key)
	buf    []byte
}

// NewStdinBuffer creates a StdinBuffer that reads from r and calls onKey for each parsed key.
func NewStdinBuffer(r io.Reader, onKey func(key.Key)) *StdinBuffer {
	return &StdinBuffer{
		reader: r,
		onKey:  onKey,
		buf:    make([]byte, 0, readBufSize),
	}
}

// Start reads until ctx is cancelled or the reader fails, then returns the
// read error (nil on cancellation, io.EOF passed through). Bytes still
// buffered at EOF are flushed as keys first.
func (b *StdinBuffer) Start(ctx context.Context) error {
	readCh := make(chan readResult)
	done := make(chan struct{})
	defer close(done)
	go b.readLoop(readCh, done)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			pending = nil
			b.drain(true)
		case res, ok := <-readCh:
			if !ok {
				b.drain(true)
				return io.EOF
			}
			if res.err != nil {
				b.drain(true)
				return res.err
			}
			b.buf = append(b.buf, res.data...)
			if b.drain(false) {
				pending = time.After(escTimeout)
			} else {
				pending = nil
			}
		}
	}
}

// readResult holds the outcome of a single Read call.
type readResult struct {
	data []byte
	err  error
}

// readLoop reads from the reader and forwards chunks until done is closed.
func (b *StdinBuffer) readLoop(ch chan<- readResult, done <-chan struct{}) {
	defer close(ch)
	tmp := make([]byte, readBufSize)
	for {
		n, err := b.reader.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case ch <- readResult{data: data}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case ch <- readResult{err: err}:
			case <-done:
			}
			return
		}
	}
}

// drain dispatches every complete key in the buffer. With force set, a
// partial sequence is resolved instead of waited on. It reports whether
// bytes remain that need more input.
func (b *StdinBuffer) drain(force bool) bool {
	for len(b.buf) > 0 {
		n, k, wait := b.next(force)
		if wait {
			return true
		}
		b.buf = b.buf[n:]
		if k.Type != key.KeyUnknown {
			b.onKey(k)
		}
	}
	return false
}

// next parses one key from the front of the buffer and returns the number
// of bytes it used. wait is set when the front is an incomplete sequence.
func (b *StdinBuffer) next(force bool) (n int, k key.Key, wait bool) {
	s := string(b.buf)

	if strings.HasPrefix(s, bracketStart) {
		if end := strings.Index(s, bracketEnd); end >= 0 {
			return end + len(bracketEnd), key.Key{Type: key.KeyUnknown}, false
		}
		if !force {
			return 0, key.Key{}, true
		}
		return len(s), key.Key{Type: key.KeyUnknown}, false
	}

	if s[0] == 0x1b {
		return escape(s, force)
	}

	if !utf8.FullRuneInString(s) {
		if !force {
			return 0, key.Key{}, true
		}
		return 1, key.Key{Type: key.KeyUnknown}, false
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 1, key.Key{Type: key.KeyUnknown}, false
	}
	return size, key.ParseKey(s[:size]), false
}

// escape parses an ESC-led sequence: a known CSI/SS3 code, Alt plus one
// key, or a lone Escape once no more bytes are coming.
func escape(s string, force bool) (int, key.Key, bool) {
	if len(s) == 1 {
		if !force {
			return 0, key.Key{}, true
		}
		return 1, key.Key{Type: key.KeyEscape}, false
	}

	if s[1] == '[' || s[1] == 'O' {
		if end, complete := seqEnd(s); complete {
			return end, key.ParseKey(s[:end]), false
		}
		if !force && len(s) < maxSeqLen {
			return 0, key.Key{}, true
		}
		return 1, key.Key{Type: key.KeyEscape}, false
	}

	if s[1] == 0x1b {
		return 1, key.Key{Type: key.KeyEscape}, false
	}
	r, size := utf8.DecodeRuneInString(s[1:])
	if r == utf8.RuneError && !force && !utf8.FullRuneInString(s[1:]) {
		return 0, key.Key{}, true
	}
	return 1 + size, key.ParseKey(s[:1+size]), false
}

// seqEnd returns the length of the CSI or SS3 sequence at the front of s.
func seqEnd(s string) (int, bool) {
	if s[1] == 'O' {
		if len(s) < 3 {
			return 0, false
		}
		return 3, true
	}
	// Linux console F1-F5: ESC [ [ A..E
	if len(s) >= 3 && s[2] == '[' {
		if len(s) < 4 {
			return 0, false
		}
		return 4, true
	}
	for i := 2; i < len(s) && i < maxSeqLen; i++ {
		if s[i] >= 0x40 && s[i] <= 0x7e {
			return i + 1, true
		}
	}
	return 0, false
}
