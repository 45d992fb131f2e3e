// ABOUTME: Two-layer character grid: dense base layer plus sparse, explicitly cleared overlay
// ABOUTME: Row merges both layers cell by cell and brackets styled runs with escape codes

package screen

import (
	"github.com/mauromedda/tfm/pkg/tui/internal/pool"
	"github.com/mauromedda/tfm/pkg/tui/width"
)

// Reset is emitted after every styled run.
const Reset = "\x1b[0m"

// continuation marks the second column of a wide glyph.
const continuation rune = 0

// Cell is one terminal column. Style is an opaque escape code written
// verbatim before the character.
type Cell struct {
	Char  rune
	Style string
}

var blank = Cell{Char: ' '}

// Screen owns the base grid and the optional overlay. Its dimensions are
// fixed; a resize builds a new Screen. It is not safe for concurrent use:
// only the UI goroutine may touch it.
type Screen struct {
	width   int
	height  int
	base    [][]Cell
	overlay map[int]map[int]Cell
}

// New allocates a width x height Screen filled with blank cells.
func New(w, h int) *Screen {
	w, h = max(w, 0), max(h, 0)
	base := make([][]Cell, h)
	for r := range base {
		row := make([]Cell, w)
		for c := range row {
			row[c] = blank
		}
		base[r] = row
	}
	return &Screen{width: w, height: h, base: base}
}

// Width returns the number of columns.
func (s *Screen) Width() int { return s.width }

// Height returns the number of rows.
func (s *Screen) Height() int { return s.height }

func (s *Screen) inBounds(row, col int) bool {
	return row >= 0 && row < s.height && col >= 0 && col < s.width
}

// Set writes ch into the base layer. Out-of-range writes are dropped.
// A wide glyph also claims the next column; at the last column it is
// replaced by a space.
func (s *Screen) Set(row, col int, ch rune, style string) {
	s.put(s.setBase, row, col, ch, style)
}

// SetString writes text into the base layer starting at col and returns the
// number of columns consumed. Text is sanitized; nothing is written past
// the right edge.
func (s *Screen) SetString(row, col int, text, style string) int {
	return s.putString(s.setBase, row, col, text, style, s.width-col)
}

// SetANSI writes styled text (SGR escape sequences inline) into the base
// layer, using at most maxWidth columns. Each cell gets the SGR state in
// effect at its position.
func (s *Screen) SetANSI(row, col int, text string, maxWidth int) int {
	var sgr width.ActiveSGR
	used := 0
	for _, t := range width.Tokens(text) {
		if t.Escape {
			sgr.Apply(t.Text)
			continue
		}
		if used+t.Width > maxWidth {
			break
		}
		used += s.putString(s.setBase, row, col+used, t.Text, sgr.String(), maxWidth-used)
	}
	return used
}

func (s *Screen) setBase(row, col int, c Cell) {
	s.base[row][col] = c
}

// EnableOverlay allocates the overlay layer. It is idempotent and keeps any
// existing overlay content.
func (s *Screen) EnableOverlay() {
	if s.overlay == nil {
		s.overlay = make(map[int]map[int]Cell)
	}
}

// OverlayEnabled reports whether EnableOverlay has been called.
func (s *Screen) OverlayEnabled() bool {
	return s.overlay != nil
}

// OverlaySet writes into the overlay layer. It is a no-op when the overlay
// is not enabled or the position is out of range.
func (s *Screen) OverlaySet(row, col int, ch rune, style string) {
	if s.overlay == nil {
		return
	}
	s.put(s.setOverlay, row, col, ch, style)
}

// OverlaySetString is the overlay counterpart of SetString.
func (s *Screen) OverlaySetString(row, col int, text, style string) int {
	if s.overlay == nil {
		return 0
	}
	return s.putString(s.setOverlay, row, col, text, style, s.width-col)
}

func (s *Screen) setOverlay(row, col int, c Cell) {
	cols, ok := s.overlay[row]
	if !ok {
		cols = make(map[int]Cell)
		s.overlay[row] = cols
	}
	cols[col] = c
}

// ClearOverlay removes every overlay entry. The overlay stays enabled.
func (s *Screen) ClearOverlay() {
	if s.overlay == nil {
		return
	}
	clear(s.overlay)
}

// ClearRegion removes overlay entries inside the rectangle with top-left
// (x, y) and size w x h. The base layer is never touched.
func (s *Screen) ClearRegion(x, y, w, h int) {
	if s.overlay == nil || w <= 0 || h <= 0 {
		return
	}
	for row := y; row < y+h; row++ {
		cols, ok := s.overlay[row]
		if !ok {
			continue
		}
		for col := x; col < x+w; col++ {
			delete(cols, col)
		}
		if len(cols) == 0 {
			delete(s.overlay, row)
		}
	}
}

// Cell returns the base layer cell at (row, col); out of range yields a blank.
func (s *Screen) Cell(row, col int) Cell {
	if !s.inBounds(row, col) {
		return blank
	}
	return s.base[row][col]
}

// OverlayCell returns the overlay entry at (row, col), if any.
func (s *Screen) OverlayCell(row, col int) (Cell, bool) {
	if s.overlay == nil {
		return Cell{}, false
	}
	c, ok := s.overlay[row][col]
	return c, ok
}

// OverlayLen returns the number of overlay entries.
func (s *Screen) OverlayLen() int {
	n := 0
	for _, cols := range s.overlay {
		n += len(cols)
	}
	return n
}

// merged returns the visible cell: overlay wins over base.
func (s *Screen) merged(row, col int) Cell {
	if cols, ok := s.overlay[row]; ok {
		if c, ok := cols[col]; ok {
			return c
		}
	}
	return s.base[row][col]
}

// Row renders row n for the terminal. Every run of cells sharing a non-empty
// style is preceded by that style and followed by Reset. A wide glyph whose
// second column is covered by another cell renders as a space, and an
// orphaned continuation renders as a space.
func (s *Screen) Row(n int) string {
	if n < 0 || n >= s.height {
		return ""
	}
	b := pool.GetStringBuilder()
	defer pool.PutStringBuilder(b)
	b.Grow(s.width + 16)
	style := ""
	for col := 0; col < s.width; col++ {
		c := s.merged(n, col)
		ch := c.Char
		if ch == continuation {
			if col > 0 && isWideLead(s.merged(n, col-1)) {
				continue
			}
			ch = ' '
		} else if width.RuneWidth(ch) == 2 {
			if col+1 >= s.width || s.merged(n, col+1).Char != continuation {
				ch = ' '
			}
		}
		if c.Style != style {
			if style != "" {
				b.WriteString(Reset)
			}
			b.WriteString(c.Style)
			style = c.Style
		}
		b.WriteRune(ch)
	}
	if style != "" {
		b.WriteString(Reset)
	}
	return b.String()
}

func isWideLead(c Cell) bool {
	return c.Char != continuation && width.RuneWidth(c.Char) == 2
}

// Rows renders every row in order.
func (s *Screen) Rows() []string {
	out := make([]string, s.height)
	for i := range out {
		out[i] = s.Row(i)
	}
	return out
}

// Text returns the characters of row n without styling; continuation
// columns are skipped. Intended for tests and snapshots.
func (s *Screen) Text(n int) string {
	return width.StripANSI(s.Row(n))
}

func (s *Screen) put(set func(int, int, Cell), row, col int, ch rune, style string) {
	if !s.inBounds(row, col) {
		return
	}
	if width.RuneWidth(ch) == 2 {
		if col+1 >= s.width {
			set(row, col, Cell{Char: ' ', Style: style})
			return
		}
		set(row, col, Cell{Char: ch, Style: style})
		set(row, col+1, Cell{Char: continuation, Style: style})
		return
	}
	set(row, col, Cell{Char: ch, Style: style})
}

// putString writes sanitized text clipped to limit columns and the screen.
func (s *Screen) putString(set func(int, int, Cell), row, col int, text, style string, limit int) int {
	if row < 0 || row >= s.height || limit <= 0 {
		return 0
	}
	used := 0
	for _, t := range width.Tokens(text) {
		if t.Escape || t.Width == 0 {
			continue
		}
		if used+t.Width > limit {
			break
		}
		r := []rune(t.Text)[0]
		if col+used >= 0 {
			s.put(set, row, col+used, r, style)
		}
		used += t.Width
	}
	return used
}
