// ABOUTME: Synchronous modal prompts: paint a dialog, block for keys, resolve to Confirmed or Cancelled
// ABOUTME: Every exit path runs the injected redraw so no dialog cells outlive the flow

package modal

import (
	"context"
	"fmt"

	"github.com/mauromedda/tfm/internal/log"
	"github.com/mauromedda/tfm/pkg/tui/dialog"
	"github.com/mauromedda/tfm/pkg/tui/key"
	"github.com/mauromedda/tfm/pkg/tui/screen"
	"github.com/mauromedda/tfm/pkg/tui/width"
)

// KeyReader supplies one key per call, blocking until it arrives.
type KeyReader interface {
	ReadKey(ctx context.Context) (key.Key, error)
}

// Canvas is the frame a prompt is painted onto and the way to show it.
type Canvas interface {
	Screen() *screen.Screen
	Present() error
}

// State is the position of a single flow in its state machine.
type State int

const (
	Idle State = iota
	AwaitingKey
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingKey:
		return "awaiting-key"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Prompt describes one modal dialog.
type Prompt struct {
	Title string
	Lines []string
	// AnyKey makes every key acknowledge the prompt.
	AnyKey bool
}

// Flow runs modal prompts. It holds only injected collaborators; each call
// is an independent flow that starts Idle.
type Flow struct {
	keys          KeyReader
	painter       dialog.Painter
	canvas        Canvas
	redraw        func()
	scheme        dialog.ColorScheme
	caseSensitive bool
	minWidth      int
	maxWidth      int
	observe       func(State)
}

// Option configures a Flow.
type Option func(*Flow)

// WithScheme sets the dialog colors.
func WithScheme(sc dialog.ColorScheme) Option {
	return func(f *Flow) { f.scheme = sc }
}

// WithCaseSensitive restricts answers to lowercase y and n.
func WithCaseSensitive(on bool) Option {
	return func(f *Flow) { f.caseSensitive = on }
}

// WithWidth bounds the dialog width.
func WithWidth(minWidth, maxWidth int) Option {
	return func(f *Flow) { f.minWidth, f.maxWidth = minWidth, maxWidth }
}

// WithObserver reports every state transition, including the initial Idle.
func WithObserver(fn func(State)) Option {
	return func(f *Flow) { f.observe = fn }
}

// New builds a Flow. redraw repaints the whole application view and may be nil.
func New(keys KeyReader, painter dialog.Painter, canvas Canvas, redraw func(), opts ...Option) *Flow {
	f := &Flow{
		keys:     keys,
		painter:  painter,
		canvas:   canvas,
		redraw:   redraw,
		minWidth: 30,
		maxWidth: 70,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Run paints p on the base layer, reads keys until the flow resolves and
// returns the terminal state. A failed key read (closed input, cancelled
// ctx) resolves to Cancelled.
func (f *Flow) Run(ctx context.Context, p Prompt) State {
	f.enter(Idle)
	defer func() {
		if f.redraw != nil {
			f.redraw()
		}
	}()

	f.paint(p)
	state := f.enter(AwaitingKey)
	for state == AwaitingKey {
		k, err := f.keys.ReadKey(ctx)
		if err != nil {
			return f.enter(Cancelled)
		}
		if next := f.interpret(k, p.AnyKey); next != AwaitingKey {
			state = f.enter(next)
		}
	}
	return state
}

func (f *Flow) enter(s State) State {
	if f.observe != nil {
		f.observe(s)
	}
	return s
}

func (f *Flow) interpret(k key.Key, anyKey bool) State {
	if anyKey {
		return Confirmed
	}
	if k.Type == key.KeyEscape {
		return Cancelled
	}
	if k.Type != key.KeyRune || k.Alt {
		return AwaitingKey
	}
	switch {
	case k.Rune == 'y', k.Rune == 'Y' && !f.caseSensitive:
		return Confirmed
	case k.Rune == 'n', k.Rune == 'N' && !f.caseSensitive:
		return Cancelled
	}
	return AwaitingKey
}

func (f *Flow) paint(p Prompt) {
	s := f.canvas.Screen()
	w, h := f.painter.CalculateDimensions(p.Title, p.Lines, f.minWidth, f.maxWidth)
	x, y := f.painter.CalculateCenter(w, h)
	f.painter.DrawFloatingWindow(s, dialog.Window{
		X: x, Y: y, W: w, H: h,
		Title:  p.Title,
		Lines:  p.Lines,
		Scheme: f.scheme,
	})
	if err := f.canvas.Present(); err != nil {
		log.Warn("modal: presenting dialog: %v", err)
	}
}

// Confirm asks a yes/no question and reports whether it was confirmed.
func (f *Flow) Confirm(ctx context.Context, title string, lines ...string) bool {
	lines = append(append([]string(nil), lines...), "", f.answerHint())
	return f.Run(ctx, Prompt{Title: title, Lines: lines}) == Confirmed
}

// ConfirmExit asks whether to quit.
func (f *Flow) ConfirmExit(ctx context.Context) bool {
	return f.Confirm(ctx, "Exit", "Quit the file manager?")
}

// ConfirmDeletion asks whether to delete the named entries. Long name lists
// are cut to fit the screen with a trailing count.
func (f *Flow) ConfirmDeletion(ctx context.Context, names []string) bool {
	noun := "item"
	if len(names) != 1 {
		noun = "items"
	}
	lines := []string{fmt.Sprintf("Delete %d %s?", len(names), noun), ""}
	lines = append(lines, f.fit(names, 4)...)
	return f.Confirm(ctx, "Delete", lines...)
}

// ShowDeletionResult reports how many of total entries were removed and
// itemizes errors, then waits for any key.
func (f *Flow) ShowDeletionResult(ctx context.Context, success, total int, errs []string) {
	title := "Deleted"
	lines := []string{fmt.Sprintf("Deleted %d of %d.", success, total)}
	if len(errs) > 0 {
		title = "Deletion errors"
		lines = append(lines, "")
		lines = append(lines, f.fit(f.wrap(errs), 4)...)
	}
	f.ShowResult(ctx, title, append(lines, "", "Press any key")...)
}

// ShowResult shows lines until any key is pressed.
func (f *Flow) ShowResult(ctx context.Context, title string, lines ...string) {
	f.Run(ctx, Prompt{Title: title, Lines: lines, AnyKey: true})
}

func (f *Flow) answerHint() string {
	if f.caseSensitive {
		return "[y] yes   [n] no   [esc] cancel"
	}
	return "[y/Y] yes   [n/N] no   [esc] cancel"
}

// wrap breaks long messages to the widest interior the dialog can have.
func (f *Flow) wrap(msgs []string) []string {
	inner := f.maxWidth - dialog.Padding
	if sw := f.canvas.Screen().Width() - 2 - dialog.Padding; sw < inner || inner <= 0 {
		inner = sw
	}
	return width.WrapPreviewLines(msgs, max(inner, 1))
}

// fit keeps as many lines as the screen can show alongside reserved rows,
// replacing the overflow with a summary line.
func (f *Flow) fit(lines []string, reserved int) []string {
	room := f.canvas.Screen().Height() - 2 - dialog.ChromeRows - reserved
	if room < 1 {
		room = 1
	}
	if len(lines) <= room {
		return lines
	}
	kept := append([]string(nil), lines[:room-1]...)
	return append(kept, fmt.Sprintf("… and %d more", len(lines)-(room-1)))
}
