// ABOUTME: Tests for the status-row prompt: editing keys, kill/yank, undo and drawing
// ABOUTME: Keys are fed one at a time the way the input task delivers them

package component

import (
	"strings"
	"testing"

	"github.com/mauromedda/tfm/pkg/tui"
	"github.com/mauromedda/tfm/pkg/tui/key"
	"github.com/mauromedda/tfm/pkg/tui/screen"
)

func typeString(p *Prompt, s string) {
	for _, r := range s {
		p.HandleKey(key.Rune(r))
	}
}

func TestPrompt_Editing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		initial    string
		keys       []key.Key
		wantText   string
		wantCursor int
	}{
		{"insert at end", "ab", []key.Key{key.Rune('c')}, "abc", 3},
		{"insert in middle", "ac", []key.Key{{Type: key.KeyLeft}, key.Rune('b')}, "abc", 2},
		{"backspace", "abc", []key.Key{{Type: key.KeyBackspace}}, "ab", 2},
		{"backspace at start", "abc", []key.Key{key.Ctrl('a'), {Type: key.KeyBackspace}}, "abc", 0},
		{"delete under cursor", "abc", []key.Key{{Type: key.KeyHome}, {Type: key.KeyDelete}}, "bc", 0},
		{"ctrl+e moves to end", "abc", []key.Key{key.Ctrl('a'), key.Ctrl('e')}, "abc", 3},
		{"ctrl+k kills to end", "hello world", []key.Key{key.Ctrl('a'), key.Ctrl('f'), key.Ctrl('k')}, "h", 1},
		{"ctrl+u kills to start", "hello world", []key.Key{{Type: key.KeyLeft}, key.Ctrl('u')}, "d", 0},
		{"ctrl+w kills word", "foo bar  ", []key.Key{key.Ctrl('w')}, "foo ", 4},
		{"yank restores kill", "foo bar", []key.Key{key.Ctrl('w'), key.Ctrl('a'), key.Ctrl('y')}, "barfoo ", 3},
		{"right clamps", "ab", []key.Key{{Type: key.KeyRight}, {Type: key.KeyRight}}, "ab", 2},
		{"alt rune ignored", "ab", []key.Key{{Type: key.KeyRune, Rune: 'x', Alt: true}}, "ab", 2},
		{"wide runes", "", []key.Key{key.Rune('世'), key.Rune('界')}, "世界", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPrompt("> ", tt.initial)
			for _, k := range tt.keys {
				if got := p.HandleKey(k); got != PromptEditing {
					t.Fatalf("HandleKey(%v) = %v, want PromptEditing", k, got)
				}
			}
			if p.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", p.Text(), tt.wantText)
			}
			if p.Cursor() != tt.wantCursor {
				t.Errorf("Cursor() = %d, want %d", p.Cursor(), tt.wantCursor)
			}
		})
	}
}

func TestPrompt_Results(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		k    key.Key
		want PromptResult
	}{
		{"enter submits", key.Key{Type: key.KeyEnter}, PromptSubmitted},
		{"escape aborts", key.Key{Type: key.KeyEscape}, PromptAborted},
		{"ctrl+c aborts", key.Ctrl('c'), PromptAborted},
		{"ctrl+g aborts", key.Ctrl('g'), PromptAborted},
		{"rune edits", key.Rune('a'), PromptEditing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewPrompt("", "").HandleKey(tt.k); got != tt.want {
				t.Errorf("HandleKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrompt_Undo(t *testing.T) {
	t.Parallel()

	p := NewPrompt("", "")
	typeString(p, "abc")
	p.HandleKey(key.Ctrl('w'))
	if p.Text() != "" {
		t.Fatalf("after ctrl+w Text() = %q", p.Text())
	}

	p.HandleKey(key.Ctrl('z'))
	if p.Text() != "abc" || p.Cursor() != 3 {
		t.Errorf("after undo got %q@%d, want \"abc\"@3", p.Text(), p.Cursor())
	}
	p.HandleKey(key.Ctrl('z'))
	if p.Text() != "ab" {
		t.Errorf("second undo Text() = %q, want \"ab\"", p.Text())
	}

	empty := NewPrompt("", "x")
	empty.HandleKey(key.Ctrl('z'))
	if empty.Text() != "x" {
		t.Errorf("undo with no history changed text to %q", empty.Text())
	}
}

func TestPrompt_UndoDepthIsBounded(t *testing.T) {
	t.Parallel()

	p := NewPrompt("", "")
	typeString(p, strings.Repeat("a", promptUndoDepth+20))
	if len(p.history) != promptUndoDepth {
		t.Errorf("history length = %d, want %d", len(p.history), promptUndoDepth)
	}
}

func TestPrompt_Draw(t *testing.T) {
	t.Parallel()

	s := screen.New(20, 2)
	p := NewPrompt("name: ", "docs")
	p.Draw(s, tui.Rect{X: 0, Y: 1, W: 20, H: 1}, "", "\x1b[7m")

	if got := strings.TrimRight(s.Text(1), " "); got != "name: docs" {
		t.Errorf("row text = %q, want %q", got, "name: docs")
	}
	c := s.Cell(1, 10)
	if c.Style != "\x1b[7m" {
		t.Errorf("cursor cell style = %q, want reverse video", c.Style)
	}
}

func TestPrompt_DrawScrollsToCursor(t *testing.T) {
	t.Parallel()

	s := screen.New(10, 1)
	p := NewPrompt(": ", "abcdefghijklmnop")
	p.Draw(s, tui.Rect{W: 10, H: 1}, "", "")

	got := s.Text(0)
	if !strings.HasSuffix(strings.TrimRight(got, " "), "p") {
		t.Errorf("row %q should end at the cursor", got)
	}
	if !strings.HasPrefix(got, ": ") {
		t.Errorf("row %q lost its label", got)
	}

	p.HandleKey(key.Ctrl('a'))
	p.Draw(s, tui.Rect{W: 10, H: 1}, "", "")
	if got := s.Text(0); !strings.HasPrefix(got, ": abcdefgh") {
		t.Errorf("after ctrl+a row = %q, want the start of the text", got)
	}
}
