// ABOUTME: Leveled logging facade backed by charmbracelet/log with printf-style helpers
// ABOUTME: Writes to stderr until SetOutput redirects it to a file while the TUI owns the terminal

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	clog "github.com/charmbracelet/log"
)

// Level constants matching charmbracelet/log levels.
const (
	LevelDebug = clog.DebugLevel
	LevelInfo  = clog.InfoLevel
	LevelWarn  = clog.WarnLevel
	LevelError = clog.ErrorLevel
)

var (
	level  atomic.Int64
	mu     sync.Mutex
	logger = newLogger(os.Stderr)
)

func init() {
	level.Store(int64(LevelInfo))
}

func newLogger(w io.Writer) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Prefix:          "tfm",
	})
	l.SetLevel(LevelDebug)
	return l
}

// SetLevel sets the global log level.
func SetLevel(l clog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() clog.Level {
	return clog.Level(level.Load())
}

// SetOutput redirects log output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// OpenFile redirects log output to the file at path, appending. The returned
// closer restores stderr and closes the file.
func OpenFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f)
	return closerFunc(func() error {
		SetOutput(os.Stderr)
		return f.Close()
	}), nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

func emit(l clog.Level, format string, args []any) {
	if clog.Level(level.Load()) > l {
		return
	}
	mu.Lock()
	lg := logger
	mu.Unlock()
	lg.Log(l, fmt.Sprintf(format, args...))
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) { emit(LevelDebug, format, args) }

// Info logs an info message if the level allows it.
func Info(format string, args ...any) { emit(LevelInfo, format, args) }

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) { emit(LevelWarn, format, args) }

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	mu.Lock()
	lg := logger
	mu.Unlock()
	lg.Error(fmt.Sprintf(format, args...))
}
