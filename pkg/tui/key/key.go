// ABOUTME: Defines the Key type and ParseKey for terminal keyboard input parsing.
// ABOUTME: Handles printable runes, Ctrl+letter chords, Alt prefixes, and delegates escape sequences to the legacy table.

package key

import (
	"strings"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event.
type Key struct {
	Type  KeyType
	Rune  rune // Printable character, or the letter of a Ctrl chord
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the kinds of key events the file manager can receive.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyInsert                   // Insert key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyCtrl                     // Ctrl+letter; Rune holds the lowercase letter
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyUnknown // Unrecognized input
)

// Rune builds a plain printable key.
func Rune(r rune) Key { return Key{Type: KeyRune, Rune: r} }

// Ctrl builds a Ctrl+letter key.
func Ctrl(letter rune) Key { return Key{Type: KeyCtrl, Rune: letter, Ctrl: true} }

// ParseKey parses raw terminal input data into a Key.
// It handles single runes, control characters, and escape sequences.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return Key{Type: KeyUnknown}
	}
	return Rune(r)
}

// parseSingleByte handles a single-byte input (ASCII or control character).
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d, b == 0x0a:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f, b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Rune(rune(b))
	case b >= 0x01 && b <= 0x1a:
		return Ctrl(rune('a' + b - 1))
	}
	return Key{Type: KeyUnknown}
}

// parseEscapeSequence resolves ESC-prefixed data via the legacy table.
func parseEscapeSequence(data string) Key {
	if k, ok := legacySequences[data]; ok {
		return k
	}

	// Alt+key: ESC followed by one complete non-escape key
	rest := data[1:]
	if rest[0] != 0x1b {
		if k := ParseKey(rest); k.Type != KeyUnknown {
			k.Alt = true
			return k
		}
	}

	return Key{Type: KeyUnknown}
}

// keyTypeNames provides the canonical lowercase names used in key bindings.
var keyTypeNames = map[KeyType]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackTab:   "shift+tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyEscape:    "esc",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// String returns the binding name of the key: "q", "ctrl+r", "alt+x",
// "f5", "enter". Space is spelled "space".
func (k Key) String() string {
	var b strings.Builder
	if k.Alt {
		b.WriteString("alt+")
	}
	switch k.Type {
	case KeyRune:
		if k.Rune == ' ' {
			b.WriteString("space")
		} else {
			b.WriteRune(k.Rune)
		}
	case KeyCtrl:
		b.WriteString("ctrl+")
		b.WriteRune(k.Rune)
	default:
		name, ok := keyTypeNames[k.Type]
		if !ok {
			return "unknown"
		}
		b.WriteString(name)
	}
	return b.String()
}

// IsRune reports whether k is the unmodified printable rune r.
func (k Key) IsRune(r rune) bool {
	return k.Type == KeyRune && !k.Alt && k.Rune == r
}
