// ABOUTME: Tests for ANSI stripping, tokenizing and SGR tracking
// ABOUTME: Covers CSI, OSC, wide clusters and invalid bytes inside styled text

package width

import "testing"

func TestStripANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no ansi", input: "plain text", want: "plain text"},
		{name: "sgr color", input: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "multiple sgr", input: "\x1b[31;1;4mstuff\x1b[0m", want: "stuff"},
		{name: "osc", input: "\x1b]0;title\x07text", want: "text"},
		{name: "cursor", input: "\x1b[10;20Hhere", want: "here"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	t.Parallel()

	toks := Tokens("\x1b[31m世a\xff\x1b[0m")
	want := []Token{
		{Text: "\x1b[31m", Escape: true},
		{Text: "世", Width: 2},
		{Text: "a", Width: 1},
		{Text: "�", Width: 1},
		{Text: "\x1b[0m", Escape: true},
	}
	if len(toks) != len(want) {
		t.Fatalf("Tokens() returned %d tokens, want %d: %#v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %#v, want %#v", i, toks[i], want[i])
		}
	}
}

func TestActiveSGR(t *testing.T) {
	t.Parallel()

	var sgr ActiveSGR
	sgr.Apply("\x1b[31m")
	sgr.Apply("\x1b[1m")
	sgr.Apply("\x1b[2J") // not SGR, ignored

	if got := sgr.String(); got != "\x1b[31m\x1b[1m" {
		t.Errorf("String() = %q, want %q", got, "\x1b[31m\x1b[1m")
	}

	sgr.Apply("\x1b[0m")
	if s := sgr.String(); s != "" {
		t.Errorf("after reset, String() = %q, want empty", s)
	}
}
