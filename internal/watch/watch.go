// ABOUTME: fsnotify-backed watcher for the current directory and config files
// ABOUTME: Bursts of filesystem events are debounced into one notification per target

package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mauromedda/tfm/internal/log"
)

// DefaultDebounce is the quiet period after the last event before a
// notification is sent.
const DefaultDebounce = 150 * time.Millisecond

// Kind tells which watched target changed.
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

// Event reports that a watched target changed.
type Event struct {
	Kind Kind
	Path string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// Watcher watches one directory plus any number of individual files.
// Files are watched through their parent directory so editors that save by
// rename are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	events   chan Event

	mu     sync.Mutex
	dir    string
	files  map[string]struct{}
	added  map[string]int // directory → number of targets that need it
	timers map[Event]*time.Timer
	closed bool
}

// New creates a Watcher. Call Run to start delivering events.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	w := &Watcher{
		fs:       fsw,
		debounce: DefaultDebounce,
		events:   make(chan Event, 8),
		files:    make(map[string]struct{}),
		added:    make(map[string]int),
		timers:   make(map[Event]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Events delivers debounced change notifications.
func (w *Watcher) Events() <-chan Event { return w.events }

// WatchDir replaces the watched directory.
func (w *Watcher) WatchDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if abs == w.dir {
		return nil
	}
	if w.dir != "" {
		w.release(w.dir)
	}
	if err := w.acquire(abs); err != nil {
		w.dir = ""
		return err
	}
	w.dir = abs
	return nil
}

// WatchFile adds a file to the watch set. The file need not exist yet, but
// its directory must.
func (w *Watcher) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[abs]; ok {
		return nil
	}
	if err := w.acquire(filepath.Dir(abs)); err != nil {
		return err
	}
	w.files[abs] = struct{}{}
	return nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

func (w *Watcher) acquire(dir string) error {
	if w.added[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.added[dir]++
	return nil
}

func (w *Watcher) release(dir string) {
	w.added[dir]--
	if w.added[dir] > 0 {
		return
	}
	delete(w.added, dir)
	if err := w.fs.Remove(dir); err != nil {
		log.Debug("watch: removing %s: %v", dir, err)
	}
}

// Run forwards fsnotify events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[name]; ok {
		w.trigger(Event{Kind: KindFile, Path: name})
	}
	if w.dir != "" && filepath.Dir(name) == w.dir {
		w.trigger(Event{Kind: KindDir, Path: w.dir})
	}
}

// trigger restarts the debounce timer for ev. Called with mu held.
func (w *Watcher) trigger(ev Event) {
	if w.closed {
		return
	}
	if t, ok := w.timers[ev]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[ev] = time.AfterFunc(w.debounce, func() { w.fire(ev) })
}

func (w *Watcher) fire(ev Event) {
	w.mu.Lock()
	delete(w.timers, ev)
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	select {
	case w.events <- ev:
	default:
		log.Debug("watch: dropping event for %s, consumer busy", ev.Path)
	}
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Close stops the watcher. Pending notifications are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}
