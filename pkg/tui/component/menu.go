// ABOUTME: Selectable list drawn as a floating window on the overlay layer
// ABOUTME: Supports scrolling, fuzzy narrowing and a selection marker on the current row

package component

import (
	"github.com/mauromedda/tfm/pkg/tui/dialog"
	"github.com/mauromedda/tfm/pkg/tui/fuzzy"
	"github.com/mauromedda/tfm/pkg/tui/key"
	"github.com/mauromedda/tfm/pkg/tui/screen"
	"github.com/mauromedda/tfm/pkg/tui/width"
)

const (
	menuMarker   = "› "
	menuNoMarker = "  "
	menuMinWidth = 30
	menuMaxWidth = 70
)

// MenuItem is one row of a Menu.
type MenuItem struct {
	Label  string
	Detail string
	Value  string
}

// MenuAction tells the caller what a key did to the menu.
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuMoved
	MenuSelect
	MenuClose
	MenuDelete
)

// Menu is a list of items shown in a floating window. It remembers the area
// it last painted so a redraw can clear it first.
type Menu struct {
	Title     string
	Deletable bool

	items    []MenuItem
	visible  []int
	filter   string
	selected int
	offset   int
	maxRows  int

	drawn dialog.Window
}

// NewMenu creates a menu showing at most maxRows items at once.
func NewMenu(title string, items []MenuItem, maxRows int) *Menu {
	m := &Menu{Title: title, maxRows: max(maxRows, 1)}
	m.SetItems(items)
	return m
}

// SetItems replaces the items and resets the filter and selection.
func (m *Menu) SetItems(items []MenuItem) {
	m.items = items
	m.SetFilter("")
}

// Len returns the number of visible items.
func (m *Menu) Len() int { return len(m.visible) }

type menuLabels []MenuItem

func (l menuLabels) String(i int) string { return l[i].Label }
func (l menuLabels) Len() int            { return len(l) }

// SetFilter narrows the visible items to fuzzy matches of pattern.
func (m *Menu) SetFilter(pattern string) {
	m.filter = pattern
	m.visible = fuzzy.Filter(pattern, menuLabels(m.items))
	m.selected, m.offset = 0, 0
}

// Filter returns the active filter pattern.
func (m *Menu) Filter() string { return m.filter }

// Selected returns the highlighted item.
func (m *Menu) Selected() (MenuItem, bool) {
	if len(m.visible) == 0 {
		return MenuItem{}, false
	}
	return m.items[m.visible[m.selected]], true
}

// Index returns the position of the highlighted item among the visible ones.
func (m *Menu) Index() int { return m.selected }

// Move shifts the selection by delta, clamped to the visible items.
func (m *Menu) Move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.selected = max(0, min(m.selected+delta, len(m.visible)-1))
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.maxRows {
		m.offset = m.selected - m.maxRows + 1
	}
}

// RemoveSelected drops the highlighted item and keeps the selection in range.
func (m *Menu) RemoveSelected() {
	if len(m.visible) == 0 {
		return
	}
	idx := m.visible[m.selected]
	items := make([]MenuItem, 0, len(m.items)-1)
	items = append(items, m.items[:idx]...)
	m.items = append(items, m.items[idx+1:]...)
	sel := m.selected
	m.SetFilter(m.filter)
	m.Move(min(sel, len(m.visible)-1))
}

// HandleKey applies navigation keys and reports the resulting action.
func (m *Menu) HandleKey(k key.Key) MenuAction {
	switch {
	case k.Type == key.KeyEscape, k.Type == key.KeyRune && k.Rune == 'q':
		return MenuClose
	case k.Type == key.KeyEnter:
		if _, ok := m.Selected(); ok {
			return MenuSelect
		}
		return MenuNone
	case k.Type == key.KeyUp, k.Type == key.KeyRune && k.Rune == 'k':
		m.Move(-1)
	case k.Type == key.KeyDown, k.Type == key.KeyRune && k.Rune == 'j':
		m.Move(1)
	case k.Type == key.KeyPageUp:
		m.Move(-m.maxRows)
	case k.Type == key.KeyPageDown:
		m.Move(m.maxRows)
	case k.Type == key.KeyHome, k.Type == key.KeyRune && k.Rune == 'g':
		m.Move(-len(m.visible))
	case k.Type == key.KeyEnd, k.Type == key.KeyRune && k.Rune == 'G':
		m.Move(len(m.visible))
	case k.Type == key.KeyRune && k.Rune == 'd' && m.Deletable:
		if _, ok := m.Selected(); ok {
			return MenuDelete
		}
		return MenuNone
	default:
		return MenuNone
	}
	return MenuMoved
}

// Lines renders the visible window of items, one per row, marking the
// selection. Details are right-aligned when they fit in contentWidth; a
// negative contentWidth appends them after two spaces.
func (m *Menu) Lines(contentWidth int) []string {
	if len(m.visible) == 0 {
		return []string{menuNoMarker + "(empty)"}
	}
	end := min(m.offset+m.maxRows, len(m.visible))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		it := m.items[m.visible[i]]
		prefix := menuNoMarker
		if i == m.selected {
			prefix = menuMarker
		}
		line := prefix + it.Label
		switch {
		case it.Detail == "":
		case contentWidth < 0:
			line += "  " + it.Detail
		case contentWidth > 0:
			gap := contentWidth - width.DisplayWidth(line) - width.DisplayWidth(it.Detail)
			if gap >= 2 {
				line = width.PadRight(line, width.DisplayWidth(line)+gap) + it.Detail
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// Draw paints the menu onto the overlay, clearing the area of the previous
// draw first so a shrinking menu leaves nothing behind.
func (m *Menu) Draw(p dialog.Painter, s *screen.Screen, scheme dialog.ColorScheme) dialog.Window {
	s.EnableOverlay()
	if m.drawn.W > 0 {
		p.ClearArea(s, m.drawn.X, m.drawn.Y, m.drawn.W, m.drawn.H)
	}

	probe := m.Lines(-1)
	w, _ := p.CalculateDimensions(m.Title, probe, menuMinWidth, menuMaxWidth)
	lines := m.Lines(w - dialog.Padding)
	w, h := p.CalculateDimensions(m.Title, lines, menuMinWidth, menuMaxWidth)
	x, y := p.CalculateCenter(w, h)

	win := dialog.Window{X: x, Y: y, W: w, H: h, Title: m.Title, Lines: lines, Scheme: scheme}
	p.DrawFloatingWindowToOverlay(s, win)
	m.drawn = win
	return win
}

// Forget drops the remembered area, for use after the overlay was cleared
// or the screen replaced.
func (m *Menu) Forget() { m.drawn = dialog.Window{} }
