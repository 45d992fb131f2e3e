// ABOUTME: Semantic color theme types: Color, Palette, Theme
// ABOUTME: Palette maps file-manager roles (listing, chrome, dialogs) to escape codes

package theme

import "github.com/mauromedda/tfm/pkg/tui/dialog"

// Color represents a terminal style that can wrap text.
type Color struct {
	code string
}

// NewColor creates a Color from a raw ANSI escape code.
func NewColor(code string) Color {
	return Color{code: code}
}

// Apply wraps text with the code and a reset suffix.
// If the code is empty, the text is returned unchanged.
func (c Color) Apply(text string) string {
	if c.code == "" {
		return text
	}
	return c.code + text + "\x1b[0m"
}

// Code returns the raw ANSI escape code.
func (c Color) Code() string {
	return c.code
}

// With returns a Color combining c and other, other applied last.
func (c Color) With(other Color) Color {
	return Color{code: c.code + other.code}
}

// Palette holds all semantic colors for a theme.
type Palette struct {
	// Text
	Primary Color
	Muted   Color
	Accent  Color

	// Semantic
	Success Color
	Warning Color
	Error   Color
	Info    Color

	// Listing
	Directory  Color
	Executable Color
	Symlink    Color
	Hidden     Color
	Marked     Color
	Cursor     Color

	// Chrome
	Header    Color
	Status    Color
	Footer    Color
	FooterKey Color
	Separator Color

	// Floating windows
	DialogBorder  Color
	DialogTitle   Color
	DialogContent Color
	MenuSelection Color
}

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// DialogScheme returns the colors used for floating windows.
func (p Palette) DialogScheme() dialog.ColorScheme {
	return dialog.ColorScheme{
		Border:  p.DialogBorder.Code(),
		Title:   p.DialogTitle.Code(),
		Content: p.DialogContent.Code(),
	}
}

// DefaultPalette returns the palette used when no theme is configured.
func DefaultPalette() Palette {
	return Palette{
		Primary: NewColor("\x1b[39m"),
		Muted:   NewColor("\x1b[2m"),
		Accent:  NewColor("\x1b[38;5;208m"),

		Success: NewColor("\x1b[32m"),
		Warning: NewColor("\x1b[33m"),
		Error:   NewColor("\x1b[31m"),
		Info:    NewColor("\x1b[36m"),

		Directory:  NewColor("\x1b[1;34m"),
		Executable: NewColor("\x1b[32m"),
		Symlink:    NewColor("\x1b[36m"),
		Hidden:     NewColor("\x1b[90m"),
		Marked:     NewColor("\x1b[33m"),
		Cursor:     NewColor("\x1b[7m"),

		Header:    NewColor("\x1b[1m"),
		Status:    NewColor("\x1b[39m"),
		Footer:    NewColor("\x1b[90m"),
		FooterKey: NewColor("\x1b[1;36m"),
		Separator: NewColor("\x1b[90m"),

		DialogBorder:  NewColor("\x1b[36m"),
		DialogTitle:   NewColor("\x1b[1;97m"),
		DialogContent: NewColor("\x1b[39m"),
		MenuSelection: NewColor("\x1b[7m"),
	}
}
