// ABOUTME: Parses binding names such as "ctrl+r", "alt+x", "f5" or "space" back into Keys
// ABOUTME: Inverse of Key.String, used when loading keybindings from config

package key

import (
	"strings"
	"unicode/utf8"
)

var namedTypes = func() map[string]KeyType {
	m := make(map[string]KeyType, len(keyTypeNames)+4)
	for t, n := range keyTypeNames {
		m[n] = t
	}
	m["escape"] = KeyEscape
	m["return"] = KeyEnter
	m["pageup"] = KeyPageUp
	m["pagedown"] = KeyPageDown
	return m
}()

// ParseName converts a binding name into a Key. Names are case-insensitive
// except for single printable runes, so "G" and "g" stay distinct.
func ParseName(name string) (Key, bool) {
	if name == "" {
		return Key{}, false
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Rune(r), r != utf8.RuneError
	}

	lower := strings.ToLower(name)
	alt := false
	if rest, ok := strings.CutPrefix(lower, "alt+"); ok {
		alt = true
		lower = rest
		name = name[len("alt+"):]
	}

	var k Key
	switch {
	case lower == "space":
		k = Rune(' ')
	case strings.HasPrefix(lower, "ctrl+") && len(lower) == len("ctrl+")+1:
		letter := rune(lower[len(lower)-1])
		if letter < 'a' || letter > 'z' {
			return Key{}, false
		}
		k = Ctrl(letter)
	case utf8.RuneCountInString(name) == 1:
		r, _ := utf8.DecodeRuneInString(name)
		k = Rune(r)
	default:
		t, ok := namedTypes[lower]
		if !ok {
			return Key{}, false
		}
		k = Key{Type: t, Shift: t == KeyBackTab}
	}
	k.Alt = alt
	return k, true
}
