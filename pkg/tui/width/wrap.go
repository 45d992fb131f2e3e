// ABOUTME: Column-budget wrapping and truncation for preview text and styled output
// ABOUTME: WrapPreviewLines breaks on spaces when possible and never drops characters

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TabWidth is the tab stop distance used when expanding tabs.
const TabWidth = 4

// WrapPreviewLines wraps every line so that no output line is wider than
// maxWidth columns. Lines are sanitized (invalid bytes become Placeholder)
// and tabs are expanded first. A break prefers the last space that fits;
// words longer than the budget are split at a cluster boundary. Empty input
// lines map to a single empty output line. A budget below one is treated
// as one; a cluster wider than the budget is replaced by Placeholder.
func WrapPreviewLines(lines []string, maxWidth int) []string {
	if maxWidth < 1 {
		maxWidth = 1
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, wrapLine(ExpandTabs(Sanitize(line), TabWidth), maxWidth)...)
	}
	return out
}

func wrapLine(s string, maxWidth int) []string {
	if s == "" {
		return []string{""}
	}
	if isPlainASCII(s) && len(s) <= maxWidth {
		return []string{s}
	}

	var out []string
	var cur []Token
	curW := 0
	lastSpace := -1

	flush := func() {
		if lastSpace >= 0 {
			out = append(out, joinTokens(cur[:lastSpace+1]))
			cur = append([]Token(nil), cur[lastSpace+1:]...)
		} else {
			out = append(out, joinTokens(cur))
			cur = cur[:0]
		}
		curW, lastSpace = 0, -1
		for i, t := range cur {
			curW += t.Width
			if t.Text == " " {
				lastSpace = i
			}
		}
	}

	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w := graphemeWidth(cluster)
		if w > maxWidth {
			cluster, w = string(Placeholder), 1
		}
		for len(cur) > 0 && curW+w > maxWidth {
			flush()
		}
		cur = append(cur, Token{Text: cluster, Width: w})
		curW += w
		if cluster == " " {
			lastSpace = len(cur) - 1
		}
	}
	if len(cur) > 0 {
		out = append(out, joinTokens(cur))
	}
	return out
}

func joinTokens(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

// ExpandTabs replaces tabs with spaces up to the next multiple of tabWidth.
func ExpandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\t" {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(cluster)
		col += graphemeWidth(cluster)
	}
	return b.String()
}

// WrapTextWithAnsi wraps s into lines of at most maxWidth visible columns.
// SGR state is carried over to continuation lines.
func WrapTextWithAnsi(s string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	var sgr ActiveSGR
	col := 0

	newLine := func() {
		lines = append(lines, line.String())
		line.Reset()
		col = 0
		line.WriteString(sgr.String())
	}

	for _, raw := range strings.Split(s, "\n") {
		for _, t := range Tokens(raw) {
			if t.Escape {
				sgr.Apply(t.Text)
				line.WriteString(t.Text)
				continue
			}
			if col+t.Width > maxWidth && col > 0 {
				newLine()
			}
			line.WriteString(t.Text)
			col += t.Width
		}
		newLine()
	}
	return lines
}

// Truncate cuts s to at most maxWidth columns at a cluster boundary. A wide
// glyph that would straddle the limit is dropped entirely.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) <= maxWidth {
			return s
		}
		return s[:maxWidth]
	}
	var b strings.Builder
	col := 0
	for _, t := range Tokens(s) {
		if t.Escape {
			continue
		}
		if col+t.Width > maxWidth {
			break
		}
		b.WriteString(t.Text)
		col += t.Width
	}
	return b.String()
}

// PadRight truncates s to maxWidth columns and pads it with spaces to
// exactly maxWidth.
func PadRight(s string, maxWidth int) string {
	t := Truncate(s, maxWidth)
	if w := DisplayWidth(t); w < maxWidth {
		t += strings.Repeat(" ", maxWidth-w)
	}
	return t
}

// TruncateToWidth truncates styled text to at most maxWidth visible columns,
// replacing the last visible column with an ellipsis when it cuts.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}

	var b strings.Builder
	col := 0
	target := maxWidth - 1
	for _, t := range Tokens(s) {
		if t.Escape {
			b.WriteString(t.Text)
			continue
		}
		if col+t.Width > target {
			break
		}
		b.WriteString(t.Text)
		col += t.Width
	}
	b.WriteString("\x1b[0m")
	b.WriteString("…")
	return b.String()
}
