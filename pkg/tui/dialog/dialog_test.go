// ABOUTME: Tests for floating window geometry, painting, clipping and overlay persistence
// ABOUTME: Includes the 80x24 stacked-window scenario with and without ClearOverlay

package dialog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mauromedda/tfm/pkg/tui/screen"
)

func TestCalculateCenter(t *testing.T) {
	t.Parallel()

	r := NewRenderer(80, 24)
	tests := []struct {
		w, h         int
		wantX, wantY int
	}{
		{w: 40, h: 10, wantX: 20, wantY: 7},
		{w: 80, h: 24, wantX: 1, wantY: 1},
		{w: 79, h: 23, wantX: 1, wantY: 1},
		{w: 1, h: 1, wantX: 39, wantY: 11},
		{w: 0, h: 0, wantX: 40, wantY: 12},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.w, tt.h), func(t *testing.T) {
			t.Parallel()
			x, y := r.CalculateCenter(tt.w, tt.h)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("CalculateCenter(%d, %d) = (%d, %d), want (%d, %d)", tt.w, tt.h, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCalculateCenter_NeverAtEdge(t *testing.T) {
	t.Parallel()

	for _, size := range [][2]int{{80, 24}, {10, 5}, {3, 3}, {200, 60}} {
		r := NewRenderer(size[0], size[1])
		for w := 0; w <= size[0]; w++ {
			for h := 0; h <= size[1]; h++ {
				if x, y := r.CalculateCenter(w, h); x < 1 || y < 1 {
					t.Fatalf("screen %v: CalculateCenter(%d, %d) = (%d, %d)", size, w, h, x, y)
				}
			}
		}
	}
}

func TestCalculateDimensions(t *testing.T) {
	t.Parallel()

	r := NewRenderer(80, 24)
	tests := []struct {
		name         string
		title        string
		lines        []string
		minW, maxW   int
		wantW, wantH int
	}{
		{name: "min width wins", title: "T", lines: []string{"ab"}, minW: 30, maxW: 60, wantW: 30, wantH: 3},
		{name: "longest line", title: "T", lines: []string{"short", "a much longer content line"}, minW: 10, maxW: 60, wantW: 30, wantH: 4},
		{name: "title counts", title: "A rather long dialog title", lines: []string{"x"}, minW: 0, maxW: 0, wantW: 30, wantH: 3},
		{name: "wide glyphs", title: "", lines: []string{"こんにちは"}, minW: 0, maxW: 0, wantW: 14, wantH: 3},
		{name: "max width caps", title: "", lines: []string{"0123456789012345678901234567890"}, minW: 0, maxW: 20, wantW: 20, wantH: 3},
		{name: "screen width caps", title: "", lines: []string{strings.Repeat("x", 100)}, minW: 0, maxW: 200, wantW: 78, wantH: 3},
		{name: "screen height caps", title: "", lines: make([]string, 40), minW: 0, maxW: 0, wantW: 4, wantH: 22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h := r.CalculateDimensions(tt.title, tt.lines, tt.minW, tt.maxW)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("CalculateDimensions() = (%d, %d), want (%d, %d)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDrawFloatingWindow_Layout(t *testing.T) {
	t.Parallel()

	s := screen.New(20, 6)
	r := NewRenderer(20, 6)
	r.DrawFloatingWindow(s, Window{X: 1, Y: 1, W: 12, H: 4, Title: "Hi", Lines: []string{"one", "two", "three"}})

	want := []string{
		"                    ",
		" ┌─── Hi ───┐       ",
		" │ one      │       ",
		" │ two      │       ",
		" └──────────┘       ",
		"                    ",
	}
	for i, w := range want {
		if got := s.Text(i); got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
}

func TestDrawFloatingWindow_Colors(t *testing.T) {
	t.Parallel()

	s := screen.New(20, 5)
	r := NewRenderer(20, 5)
	scheme := SchemeFromMap(map[string]string{"border": "B", "title": "T", "content": "C"})
	r.DrawFloatingWindow(s, Window{X: 1, Y: 1, W: 10, H: 3, Title: "x", Lines: []string{"y"}, Scheme: scheme})

	if c := s.Cell(1, 1); c.Char != TopLeft || c.Style != "B" {
		t.Errorf("corner = %+v, want border-styled top-left", c)
	}
	if c := s.Cell(1, 5); c.Char != 'x' || c.Style != "T" {
		t.Errorf("title cell = %+v, want title-styled 'x'", c)
	}
	if c := s.Cell(2, 3); c.Char != 'y' || c.Style != "C" {
		t.Errorf("content cell = %+v, want content-styled 'y'", c)
	}
	if c := s.Cell(2, 10); c.Char != Vertical || c.Style != "B" {
		t.Errorf("right border = %+v", c)
	}
}

func TestDrawFloatingWindow_TruncatesWideContent(t *testing.T) {
	t.Parallel()

	s := screen.New(20, 5)
	r := NewRenderer(20, 5)
	// Interior text width is 3: the second wide glyph cannot fit.
	r.DrawFloatingWindow(s, Window{X: 0, Y: 0, W: 7, H: 3, Lines: []string{"世界"}})

	if got := s.Text(1); !strings.HasPrefix(got, "│ 世  │") {
		t.Errorf("row 1 = %q, want wide glyph truncated at the boundary", got)
	}
	if c := s.Cell(1, 6); c.Char != Vertical {
		t.Errorf("right border overwritten: %+v", c)
	}
}

func TestDrawFloatingWindow_ClipsOversized(t *testing.T) {
	t.Parallel()

	s := screen.New(10, 6)
	r := NewRenderer(10, 6)
	r.DrawFloatingWindow(s, Window{X: 1, Y: 1, W: 50, H: 50, Title: "big"})

	// Clipped to 8x4: right border at col 8, bottom border at row 4.
	if c := s.Cell(1, 8); c.Char != TopRight {
		t.Errorf("top-right = %q, want %q", c.Char, TopRight)
	}
	if c := s.Cell(4, 1); c.Char != BottomLeft {
		t.Errorf("bottom-left = %q, want %q", c.Char, BottomLeft)
	}
	if c := s.Cell(5, 9); c.Char != ' ' {
		t.Errorf("margin cell painted: %q", c.Char)
	}
}

func TestDrawFloatingWindowToOverlay_RequiresEnabledOverlay(t *testing.T) {
	t.Parallel()

	s := screen.New(20, 6)
	r := NewRenderer(20, 6)
	r.DrawFloatingWindowToOverlay(s, Window{X: 1, Y: 1, W: 10, H: 4, Title: "t"})

	if s.OverlayEnabled() {
		t.Fatal("drawing must not enable the overlay implicitly")
	}
	if got := s.Text(1); got != "                    " {
		t.Errorf("row 1 = %q, want untouched", got)
	}
}

func TestOverlay_StackedWindowsWithoutClear(t *testing.T) {
	t.Parallel()

	s := screen.New(80, 24)
	s.EnableOverlay()
	r := NewRenderer(80, 24)

	r.DrawFloatingWindowToOverlay(s, Window{X: 15, Y: 8, W: 50, H: 8, Title: "A", Lines: []string{"first"}})
	r.DrawFloatingWindowToOverlay(s, Window{X: 20, Y: 7, W: 40, H: 10, Title: "B", Lines: []string{"second"}})

	c, ok := s.OverlayCell(11, 64)
	if !ok || c.Char != Vertical {
		t.Fatalf("overlay(11, 64) = %+v, %v; want A's right border to remain", c, ok)
	}
	if c, ok := s.OverlayCell(15, 15); !ok || c.Char != BottomLeft {
		t.Errorf("overlay(15, 15) = %+v, %v; want A's bottom-left corner", c, ok)
	}
	for _, col := range []int{20, 59} {
		if c, ok := s.OverlayCell(10, col); !ok || c.Char != Vertical {
			t.Errorf("overlay(10, %d) = %+v, %v; want B's border", col, c, ok)
		}
	}
	if got := []rune(s.Text(11))[64]; got != Vertical {
		t.Errorf("rendered row 11 col 64 = %q, want %q", got, Vertical)
	}
}

func TestOverlay_ClearThenDraw(t *testing.T) {
	t.Parallel()

	s := screen.New(80, 24)
	s.EnableOverlay()
	r := NewRenderer(80, 24)

	r.DrawFloatingWindowToOverlay(s, Window{X: 15, Y: 8, W: 50, H: 8, Title: "A"})
	s.ClearOverlay()
	r.DrawFloatingWindowToOverlay(s, Window{X: 20, Y: 7, W: 40, H: 10, Title: "B"})

	if c, ok := s.OverlayCell(11, 64); ok {
		t.Fatalf("overlay(11, 64) = %+v; want A's border gone", c)
	}
	if got := []rune(s.Text(11))[64]; got != ' ' {
		t.Errorf("rendered row 11 col 64 = %q, want blank", got)
	}
	for _, col := range []int{20, 59} {
		if c, ok := s.OverlayCell(10, col); !ok || c.Char != Vertical {
			t.Errorf("overlay(10, %d) = %+v, %v; want B's border", col, c, ok)
		}
	}
	if c, ok := s.OverlayCell(7, 20); !ok || c.Char != TopLeft {
		t.Errorf("overlay(7, 20) = %+v, %v; want B's top-left corner", c, ok)
	}
}

func TestClearArea(t *testing.T) {
	t.Parallel()

	s := screen.New(30, 10)
	s.SetString(2, 0, "base row stays", "")
	s.EnableOverlay()
	r := NewRenderer(30, 10)
	win := Window{X: 1, Y: 1, W: 20, H: 5, Title: "menu"}
	r.DrawFloatingWindowToOverlay(s, win)

	r.ClearArea(s, win.X, win.Y, win.W, win.H)

	if n := s.OverlayLen(); n != 0 {
		t.Errorf("OverlayLen() = %d after ClearArea, want 0", n)
	}
	if got := s.Text(2); !strings.HasPrefix(got, "base row stays") {
		t.Errorf("base row changed: %q", got)
	}
}

func TestCentered(t *testing.T) {
	t.Parallel()

	r := NewRenderer(80, 24)
	win := r.Centered("Confirm", []string{"Delete 3 files?"}, 30, 60, ColorScheme{})
	if win.W != 30 || win.H != 3 {
		t.Fatalf("size = %dx%d, want 30x3", win.W, win.H)
	}
	if win.X != 25 || win.Y != 10 {
		t.Errorf("origin = (%d, %d), want (25, 10)", win.X, win.Y)
	}
}
