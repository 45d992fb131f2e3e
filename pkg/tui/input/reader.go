// ABOUTME: Reader is the single owner of terminal input: it decodes keys and publishes them on a channel
// ABOUTME: Pause releases stdin to a foreground child; ChannelReader adapts a key channel for modal prompts

package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/muesli/cancelreader"

	"github.com/mauromedda/tfm/pkg/tui/key"
)

// ErrClosed is returned by ReadKey once the key stream has ended.
var ErrClosed = errors.New("input: key stream closed")

// Reader decodes keys from r and publishes them on Keys.
//
// Reads go through a cancelreader so Pause can interrupt an outstanding
// Read. While paused nothing reads from r, which lets a child process
// started in the foreground receive every keystroke.
type Reader struct {
	r    io.Reader
	keys chan key.Key

	mu      sync.Mutex
	current *session
	paused  bool
	resume  chan struct{}
}

// session is one run of the decoder over a fresh cancelreader.
type session struct {
	src     cancelreader.CancelReader
	pausing chan struct{}
	stopped chan struct{}
}

// NewReader creates a Reader with a key channel of the given capacity.
func NewReader(r io.Reader, capacity int) *Reader {
	return &Reader{r: r, keys: make(chan key.Key, max(capacity, 0))}
}

// Keys returns the channel keys are published on. It is closed when Run returns.
func (r *Reader) Keys() <-chan key.Key { return r.keys }

// Run decodes input until ctx is cancelled or the underlying reader fails.
// A cancelled context and io.EOF both yield nil.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.keys)
	for {
		r.mu.Lock()
		if r.paused {
			resume := r.resume
			r.mu.Unlock()
			select {
			case <-resume:
				continue
			case <-ctx.Done():
				return nil
			}
		}
		src, err := cancelreader.NewReader(r.r)
		if err != nil {
			r.mu.Unlock()
			return fmt.Errorf("input: %w", err)
		}
		s := &session{src: src, pausing: make(chan struct{}), stopped: make(chan struct{})}
		r.current = s
		r.mu.Unlock()

		buf := NewStdinBuffer(src, func(k key.Key) {
			select {
			case r.keys <- k:
			case <-s.pausing:
			case <-ctx.Done():
			}
		})
		err = buf.Start(ctx)
		_ = src.Close()

		r.mu.Lock()
		r.current = nil
		paused := r.paused
		r.mu.Unlock()
		close(s.stopped)

		switch {
		case ctx.Err() != nil:
			return nil
		case paused, errors.Is(err, cancelreader.ErrCanceled):
			continue
		case err == nil, errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}

// Pause stops reading until Resume. It reports whether the outstanding
// Read was interrupted; when the platform cannot cancel a blocked Read it
// returns false and at most one more read completes before reading stops.
// Keys decoded while pausing are dropped.
func (r *Reader) Pause() bool {
	r.mu.Lock()
	if r.paused {
		r.mu.Unlock()
		return true
	}
	r.paused = true
	r.resume = make(chan struct{})
	s := r.current
	if s == nil {
		r.mu.Unlock()
		return true
	}
	close(s.pausing)
	ok := s.src.Cancel()
	r.mu.Unlock()

	if ok {
		<-s.stopped
	}
	return ok
}

// Resume restarts reading after Pause.
func (r *Reader) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.paused {
		return
	}
	r.paused = false
	close(r.resume)
}

// ReadKey blocks for the next published key.
func (r *Reader) ReadKey(ctx context.Context) (key.Key, error) {
	return ChannelReader(r.keys).ReadKey(ctx)
}

// ChannelReader reads keys from a channel.
type ChannelReader <-chan key.Key

// ReadKey blocks until a key arrives, the channel closes, or ctx is done.
func (c ChannelReader) ReadKey(ctx context.Context) (key.Key, error) {
	select {
	case k, ok := <-c:
		if !ok {
			return key.Key{}, ErrClosed
		}
		return k, nil
	case <-ctx.Done():
		return key.Key{}, ctx.Err()
	}
}
