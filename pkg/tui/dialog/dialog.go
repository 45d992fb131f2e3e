// ABOUTME: Floating window geometry and painting onto either layer of a Screen
// ABOUTME: Bordered, titled boxes with truncated/padded content; overlay draws never clear earlier draws

package dialog

import (
	"github.com/mauromedda/tfm/pkg/tui/screen"
	"github.com/mauromedda/tfm/pkg/tui/width"
)

// Box-drawing glyphs shared by every floating window.
const (
	TopLeft     = '┌'
	TopRight    = '┐'
	BottomLeft  = '└'
	BottomRight = '┘'
	Horizontal  = '─'
	Vertical    = '│'
)

const (
	// Padding is the horizontal chrome: two borders and one space on each side.
	Padding = 4
	// ChromeRows is the vertical chrome: the titled top border and the bottom border.
	ChromeRows = 2
)

// ColorScheme holds the escape codes applied verbatim to window parts.
type ColorScheme struct {
	Border  string
	Title   string
	Content string
}

// SchemeFromMap builds a ColorScheme from a map with the keys "border",
// "title" and "content". Missing keys mean unstyled.
func SchemeFromMap(m map[string]string) ColorScheme {
	return ColorScheme{Border: m["border"], Title: m["title"], Content: m["content"]}
}

// Window describes one floating window. X and Y are the top-left corner;
// W and H are the outer size including the border.
type Window struct {
	X, Y   int
	W, H   int
	Title  string
	Lines  []string
	Scheme ColorScheme
}

// Painter is the drawing capability used by modal flows and menus.
type Painter interface {
	CalculateCenter(w, h int) (x, y int)
	CalculateDimensions(title string, lines []string, minWidth, maxWidth int) (w, h int)
	DrawFloatingWindow(s *screen.Screen, win Window)
	DrawFloatingWindowToOverlay(s *screen.Screen, win Window)
	ClearArea(s *screen.Screen, x, y, w, h int)
}

// Renderer computes geometry against a fixed terminal size and paints
// windows. Build a new one, or call Resize, when the terminal size changes.
type Renderer struct {
	width  int
	height int
}

var _ Painter = (*Renderer)(nil)

// NewRenderer returns a Renderer for a width x height terminal.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{width: w, height: h}
}

// Resize updates the terminal size used for geometry.
func (r *Renderer) Resize(w, h int) {
	r.width, r.height = w, h
}

// CalculateCenter returns the top-left corner that centers a w x h window.
// The result is never closer than one cell to the top or left edge.
func (r *Renderer) CalculateCenter(w, h int) (x, y int) {
	return max(1, (r.width-w)/2), max(1, (r.height-h)/2)
}

// CalculateDimensions sizes a window for its content: the widest of
// minWidth, the title and the content lines plus Padding, capped at maxWidth
// (when positive) and at the terminal width minus a one-cell margin on each
// side. The height is the line count plus ChromeRows, capped to keep one row
// of margin above and below.
func (r *Renderer) CalculateDimensions(title string, lines []string, minWidth, maxWidth int) (w, h int) {
	w = max(minWidth, width.DisplayWidth(title)+Padding)
	for _, l := range lines {
		w = max(w, width.DisplayWidth(l)+Padding)
	}
	if maxWidth > 0 {
		w = min(w, maxWidth)
	}
	w = max(min(w, r.width-2), 0)
	h = max(min(len(lines)+ChromeRows, r.height-2), 0)
	return w, h
}

// Centered returns a Window sized for its content and centered on screen.
func (r *Renderer) Centered(title string, lines []string, minWidth, maxWidth int, scheme ColorScheme) Window {
	w, h := r.CalculateDimensions(title, lines, minWidth, maxWidth)
	x, y := r.CalculateCenter(w, h)
	return Window{X: x, Y: y, W: w, H: h, Title: title, Lines: lines, Scheme: scheme}
}

// DrawFloatingWindow paints win onto the base layer.
func (r *Renderer) DrawFloatingWindow(s *screen.Screen, win Window) {
	r.paint(baseLayer{s}, win)
}

// DrawFloatingWindowToOverlay paints win onto the overlay layer. The overlay
// must already be enabled; nothing previously drawn there is cleared, so
// cells outside win's footprint stay visible until ClearArea or
// Screen.ClearOverlay removes them.
func (r *Renderer) DrawFloatingWindowToOverlay(s *screen.Screen, win Window) {
	r.paint(overlayLayer{s}, win)
}

// ClearArea removes overlay cells inside the rectangle.
func (r *Renderer) ClearArea(s *screen.Screen, x, y, w, h int) {
	s.ClearRegion(x, y, w, h)
}

// clip limits the window to the terminal interior with a one-cell margin.
func (r *Renderer) clip(win Window) Window {
	win.W = min(win.W, r.width-2)
	win.H = min(win.H, r.height-2)
	return win
}

// layer abstracts which Screen layer a window is painted onto.
type layer interface {
	set(row, col int, ch rune, style string)
	setString(row, col int, text, style string) int
}

type baseLayer struct{ s *screen.Screen }

func (l baseLayer) set(row, col int, ch rune, style string) { l.s.Set(row, col, ch, style) }
func (l baseLayer) setString(row, col int, text, style string) int {
	return l.s.SetString(row, col, text, style)
}

type overlayLayer struct{ s *screen.Screen }

func (l overlayLayer) set(row, col int, ch rune, style string) { l.s.OverlaySet(row, col, ch, style) }
func (l overlayLayer) setString(row, col int, text, style string) int {
	return l.s.OverlaySetString(row, col, text, style)
}

func (r *Renderer) paint(l layer, win Window) {
	win = r.clip(win)
	if win.W < 2 || win.H < 2 {
		return
	}
	x, y, w, h := win.X, win.Y, win.W, win.H
	sc := win.Scheme
	right, bottom := x+w-1, y+h-1

	l.set(y, x, TopLeft, sc.Border)
	l.set(y, right, TopRight, sc.Border)
	l.set(bottom, x, BottomLeft, sc.Border)
	l.set(bottom, right, BottomRight, sc.Border)
	for col := x + 1; col < right; col++ {
		l.set(y, col, Horizontal, sc.Border)
		l.set(bottom, col, Horizontal, sc.Border)
	}

	if win.Title != "" && w >= Padding+1 {
		title := " " + width.Truncate(win.Title, w-Padding) + " "
		tw := width.DisplayWidth(title)
		l.setString(y, x+(w-tw)/2, title, sc.Title)
	}

	inner := w - 2
	text := max(w-Padding, 0)
	for i := 0; i < h-ChromeRows; i++ {
		row := y + 1 + i
		l.set(row, x, Vertical, sc.Border)
		l.set(row, right, Vertical, sc.Border)

		line := ""
		if i < len(win.Lines) {
			line = win.Lines[i]
		}
		body := width.PadRight(" "+width.PadRight(line, text), inner)
		l.setString(row, x+1, body, sc.Content)
	}
}
