// ABOUTME: ANSI escape handling: stripping, tokenizing styled text, SGR state tracking
// ABOUTME: Tokens splits text into escape sequences and grapheme clusters with widths

package width

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

// StripANSI removes all ANSI escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	return ansi.Strip(s)
}

// Token is either an escape sequence or one visible grapheme cluster.
type Token struct {
	Text   string
	Width  int
	Escape bool
}

// Tokens splits s into escape sequences and sanitized grapheme clusters.
func Tokens(s string) []Token {
	toks := make([]Token, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			end := skipANSISequence(s, i)
			toks = append(toks, Token{Text: s[i:end], Escape: true})
			i = end
			continue
		}
		next := strings.IndexByte(s[i:], '\x1b')
		chunk := s[i:]
		if next >= 0 {
			chunk = s[i : i+next]
		}
		clean := Sanitize(chunk)
		state := -1
		for len(clean) > 0 {
			var cluster string
			cluster, clean, _, state = uniseg.FirstGraphemeClusterInString(clean, state)
			toks = append(toks, Token{Text: cluster, Width: graphemeWidth(cluster)})
		}
		i += len(chunk)
	}
	return toks
}

// skipANSISequence advances past an ANSI escape sequence starting at s[i].
// Returns the index of the first byte after the sequence.
func skipANSISequence(s string, i int) int {
	if i >= len(s) || s[i] != '\x1b' {
		return i
	}
	i++
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		// CSI: final byte in 0x40-0x7E
		i++
		for i < len(s) {
			if b := s[i]; b >= 0x40 && b <= 0x7E {
				return i + 1
			}
			i++
		}
		return i
	case ']', '_', 'P', '^':
		// OSC ends with BEL or ST; APC, DCS and PM with ST
		osc := s[i] == ']'
		i++
		for i < len(s) {
			if osc && s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
			i++
		}
		return i
	case '(':
		if i+1 < len(s) {
			return i + 2
		}
		return i + 1
	default:
		return i + 1
	}
}

// IsSGR reports whether seq is a Select Graphic Rendition sequence.
func IsSGR(seq string) bool {
	return strings.HasPrefix(seq, "\x1b[") && strings.HasSuffix(seq, "m")
}

// ActiveSGR tracks the SGR sequences in effect since the last reset.
type ActiveSGR struct {
	codes []string
}

// Reset clears all SGR state.
func (a *ActiveSGR) Reset() {
	a.codes = a.codes[:0]
}

// Apply records an SGR sequence; reset sequences clear the state and
// anything that is not SGR is ignored.
func (a *ActiveSGR) Apply(seq string) {
	if !IsSGR(seq) {
		return
	}
	if seq == "\x1b[0m" || seq == "\x1b[m" {
		a.Reset()
		return
	}
	a.codes = append(a.codes, seq)
}

// String returns the combined SGR sequence that restores the current state.
func (a *ActiveSGR) String() string {
	return strings.Join(a.codes, "")
}
