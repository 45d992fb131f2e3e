// ABOUTME: Tests for the overlay menu: navigation, filtering, removal and overlay drawing
// ABOUTME: Drawing is checked against a real dialog.Renderer on an 80x24 screen

package component

import (
	"strings"
	"testing"

	"github.com/mauromedda/tfm/pkg/tui/dialog"
	"github.com/mauromedda/tfm/pkg/tui/key"
	"github.com/mauromedda/tfm/pkg/tui/screen"
)

func sampleItems(labels ...string) []MenuItem {
	items := make([]MenuItem, len(labels))
	for i, l := range labels {
		items[i] = MenuItem{Label: l, Value: "/" + l}
	}
	return items
}

func TestMenu_Navigation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []key.Key
		want int
	}{
		{"down", []key.Key{{Type: key.KeyDown}}, 1},
		{"j twice", []key.Key{key.Rune('j'), key.Rune('j')}, 2},
		{"up clamps at top", []key.Key{{Type: key.KeyUp}}, 0},
		{"G goes to bottom", []key.Key{key.Rune('G')}, 4},
		{"down clamps at bottom", []key.Key{key.Rune('G'), {Type: key.KeyDown}}, 4},
		{"g returns to top", []key.Key{key.Rune('G'), key.Rune('g')}, 0},
		{"page down", []key.Key{{Type: key.KeyPageDown}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMenu("Pick", sampleItems("a", "b", "c", "d", "e"), 3)
			for _, k := range tt.keys {
				m.HandleKey(k)
			}
			if m.Index() != tt.want {
				t.Errorf("Index() = %d, want %d", m.Index(), tt.want)
			}
		})
	}
}

func TestMenu_Actions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		items     []MenuItem
		deletable bool
		k         key.Key
		want      MenuAction
	}{
		{"enter selects", sampleItems("a"), false, key.Key{Type: key.KeyEnter}, MenuSelect},
		{"enter on empty", nil, false, key.Key{Type: key.KeyEnter}, MenuNone},
		{"escape closes", sampleItems("a"), false, key.Key{Type: key.KeyEscape}, MenuClose},
		{"q closes", sampleItems("a"), false, key.Rune('q'), MenuClose},
		{"d deletes when allowed", sampleItems("a"), true, key.Rune('d'), MenuDelete},
		{"d ignored otherwise", sampleItems("a"), false, key.Rune('d'), MenuNone},
		{"d on empty", nil, true, key.Rune('d'), MenuNone},
		{"arrow moves", sampleItems("a", "b"), false, key.Key{Type: key.KeyDown}, MenuMoved},
		{"other rune", sampleItems("a"), false, key.Rune('z'), MenuNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMenu("Pick", tt.items, 5)
			m.Deletable = tt.deletable
			if got := m.HandleKey(tt.k); got != tt.want {
				t.Errorf("HandleKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMenu_Scrolling(t *testing.T) {
	t.Parallel()

	m := NewMenu("Pick", sampleItems("a", "b", "c", "d", "e"), 2)
	m.Move(3)

	lines := m.Lines(20)
	if len(lines) != 2 {
		t.Fatalf("Lines() returned %d rows, want 2", len(lines))
	}
	if lines[0] != "  c" || lines[1] != "› d" {
		t.Errorf("Lines() = %q, want window [c, d] with d selected", lines)
	}
}

func TestMenu_Filter(t *testing.T) {
	t.Parallel()

	m := NewMenu("Pick", sampleItems("projects", "downloads", "pictures"), 5)
	m.SetFilter("pic")
	if m.Len() != 1 {
		t.Fatalf("Len() = %d after filter, want 1", m.Len())
	}
	it, ok := m.Selected()
	if !ok || it.Label != "pictures" {
		t.Errorf("Selected() = %+v, %v; want pictures", it, ok)
	}

	m.SetFilter("zzz")
	if _, ok := m.Selected(); ok {
		t.Error("Selected() reported an item with no matches")
	}
	if got := m.Lines(20); len(got) != 1 || !strings.Contains(got[0], "(empty)") {
		t.Errorf("Lines() on empty menu = %q", got)
	}

	m.SetFilter("")
	if m.Len() != 3 {
		t.Errorf("Len() = %d after clearing filter, want 3", m.Len())
	}
}

func TestMenu_RemoveSelected(t *testing.T) {
	t.Parallel()

	m := NewMenu("Pick", sampleItems("a", "b", "c"), 5)
	m.Move(2)
	m.RemoveSelected()

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	it, _ := m.Selected()
	if it.Label != "b" {
		t.Errorf("selection after removing the last item = %q, want b", it.Label)
	}

	m.RemoveSelected()
	m.RemoveSelected()
	m.RemoveSelected()
	if m.Len() != 0 {
		t.Errorf("Len() = %d after removing everything", m.Len())
	}
}

func TestMenu_DetailAlignment(t *testing.T) {
	t.Parallel()

	m := NewMenu("Pick", []MenuItem{{Label: "docs", Detail: "/home/docs"}}, 5)
	got := m.Lines(30)[0]
	if !strings.HasSuffix(got, "/home/docs") || len(got) != len("› ")+28 {
		t.Errorf("Lines(30) = %q, want the detail right-aligned to 30 columns", got)
	}
	if got := m.Lines(-1)[0]; got != "› docs  /home/docs" {
		t.Errorf("Lines(-1) = %q", got)
	}
	if got := m.Lines(10)[0]; got != "› docs" {
		t.Errorf("Lines(10) = %q, want the detail dropped", got)
	}
}

func TestMenu_DrawClearsPreviousArea(t *testing.T) {
	t.Parallel()

	s := screen.New(80, 24)
	r := dialog.NewRenderer(80, 24)
	m := NewMenu("Bookmarks", sampleItems("a", "b", "c", "d", "e", "f"), 10)

	first := m.Draw(r, s, dialog.ColorScheme{})
	if !s.OverlayEnabled() {
		t.Fatal("Draw did not enable the overlay")
	}
	if c, ok := s.OverlayCell(first.Y, first.X); !ok || c.Char != dialog.TopLeft {
		t.Fatalf("top-left corner missing at (%d,%d)", first.Y, first.X)
	}

	m.SetFilter("a")
	second := m.Draw(r, s, dialog.ColorScheme{})
	if second.H >= first.H {
		t.Fatalf("filtered menu height %d not smaller than %d", second.H, first.H)
	}

	bottom := first.Y + first.H - 1
	if bottom > second.Y+second.H-1 {
		if _, ok := s.OverlayCell(bottom, first.X); ok {
			t.Errorf("stale border left at (%d,%d)", bottom, first.X)
		}
	}
	if c, ok := s.OverlayCell(second.Y+second.H-1, second.X); !ok || c.Char != dialog.BottomLeft {
		t.Error("new bottom-left corner missing")
	}
}
