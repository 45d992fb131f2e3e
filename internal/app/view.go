// ABOUTME: Layout and painting of the main view: header, listing, preview, status line and footer
// ABOUTME: The base layer is repainted on every redraw; an open menu is then redrawn on the overlay

package app

import (
	"fmt"
	"strings"

	"github.com/mauromedda/tfm/internal/fsys"
	"github.com/mauromedda/tfm/internal/log"
	"github.com/mauromedda/tfm/internal/preview"
	tuipkg "github.com/mauromedda/tfm/pkg/tui"
	"github.com/mauromedda/tfm/pkg/tui/screen"
	"github.com/mauromedda/tfm/pkg/tui/theme"
	"github.com/mauromedda/tfm/pkg/tui/width"
)

const (
	minListWidth = 20
	minWidth     = 20
	minHeight    = 5
)

type layout struct {
	header, body, list, preview, status, footer tuipkg.Rect
	sepX                                        int
}

func computeLayout(w, h int, withPreview bool) layout {
	var l layout
	l.header = tuipkg.Rect{X: 0, Y: 0, W: w, H: 1}
	l.body = tuipkg.Rect{X: 0, Y: 1, W: w, H: max(h-3, 0)}
	l.status = tuipkg.Rect{X: 0, Y: h - 2, W: w, H: 1}
	l.footer = tuipkg.Rect{X: 0, Y: h - 1, W: w, H: 1}
	if !withPreview {
		l.list = l.body
		l.sepX = -1
		return l
	}
	lw := max(minListWidth, w*2/5)
	if lw >= w-2 {
		l.list = l.body
		l.sepX = -1
		return l
	}
	l.list, l.preview = l.body.SplitH(lw, 1)
	l.sepX = lw
	return l
}

// redraw repaints the whole view and presents it.
func (a *App) redraw() {
	s := a.screen
	full := tuipkg.Rect{W: s.Width(), H: s.Height()}
	tuipkg.Fill(s, full, ' ', "")

	if s.Width() < minWidth || s.Height() < minHeight {
		s.SetString(0, 0, width.Truncate("terminal too small", s.Width()), a.palette.Warning.Code())
		a.present()
		return
	}

	lay := computeLayout(s.Width(), s.Height(), a.settings.PreviewEnabled())
	a.list.scroll(lay.list.H)

	c := tuipkg.NewContainer()
	c.Add(tuipkg.ComponentFunc(a.drawHeader), lay.header)
	c.Add(tuipkg.ComponentFunc(a.drawListing), lay.list)
	if lay.sepX >= 0 {
		c.Add(tuipkg.ComponentFunc(func(s *screen.Screen, r tuipkg.Rect) {
			tuipkg.Fill(s, r, '│', a.palette.Separator.Code())
		}), tuipkg.Rect{X: lay.sepX, Y: lay.body.Y, W: 1, H: lay.body.H})
		c.Add(tuipkg.ComponentFunc(a.drawPreview), lay.preview)
	}
	c.Add(tuipkg.ComponentFunc(a.drawStatus), lay.status)
	c.Add(tuipkg.ComponentFunc(func(s *screen.Screen, r tuipkg.Rect) {
		drawFooter(s, r, a.palette, a.version, a.jobs.Running(), a.hints())
	}), lay.footer)
	c.Draw(s)

	if a.menu != nil {
		a.menu.Draw(a.painter, s, a.palette.DialogScheme())
	}
	a.present()
}

func (a *App) present() {
	if err := a.Present(); err != nil {
		log.Error("flushing screen: %v", err)
	}
}

func (a *App) drawHeader(s *screen.Screen, r tuipkg.Rect) {
	style := a.palette.Header.Code()
	tuipkg.Fill(s, r, ' ', style)
	left := " " + fsys.Abbrev(a.list.dir)
	if a.list.filter != "" {
		left += "  /" + a.list.filter
	}
	right := fmt.Sprintf("%d/%d ", min(a.list.cursor+1, a.list.len()), a.list.len())
	if n := len(a.list.marked); n > 0 {
		right = fmt.Sprintf("%d marked  %s", n, right)
	}
	room := r.W - width.DisplayWidth(right) - 1
	s.SetString(r.Y, r.X, width.Truncate(left, max(room, 0)), style)
	if room > 0 {
		s.SetString(r.Y, r.X+r.W-width.DisplayWidth(right), right, style)
	}
}

func (a *App) drawListing(s *screen.Screen, r tuipkg.Rect) {
	if a.list.len() == 0 {
		msg := "  (empty)"
		if a.list.filter != "" {
			msg = "  (no matches)"
		}
		s.SetString(r.Y, r.X, width.Truncate(msg, r.W), a.palette.Muted.Code())
		return
	}
	end := min(a.list.offset+r.H, a.list.len())
	for i := a.list.offset; i < end; i++ {
		e := a.list.at(i)
		row := r.Y + i - a.list.offset
		style := a.entryColor(e)
		if a.list.marked[e.Path] {
			style = a.palette.Marked
		}
		if i == a.list.cursor {
			style = style.With(a.palette.Cursor)
		}
		s.SetString(row, r.X, listingRow(e, a.list.marked[e.Path], r.W), style.Code())
	}
}

func (a *App) entryColor(e fsys.Entry) theme.Color {
	switch {
	case e.Link != "":
		return a.palette.Symlink
	case e.Dir:
		return a.palette.Directory
	case e.Hidden():
		return a.palette.Hidden
	case e.Executable():
		return a.palette.Executable
	default:
		return a.palette.Primary
	}
}

// listingRow formats one entry into exactly w columns: mark, name and a
// right-aligned detail when there is room for it.
func listingRow(e fsys.Entry, marked bool, w int) string {
	mark := " "
	if marked {
		mark = "*"
	}
	name := e.Name
	if e.Dir {
		name += "/"
	}
	detail := e.Detail()
	nameRoom := w - 1 - width.DisplayWidth(detail) - 2
	if nameRoom < minListWidth/2 {
		return width.PadRight(mark+name, w)
	}
	return mark + width.PadRight(name, nameRoom) + "  " + detail
}

func (a *App) drawPreview(s *screen.Screen, r tuipkg.Rect) {
	e, ok := a.list.current()
	if !ok || r.Empty() {
		return
	}
	// One column of left margin.
	r = tuipkg.Rect{X: r.X + 1, Y: r.Y, W: r.W - 1, H: r.H}
	res := a.previewer.Preview(e.Path, r.W, r.H)
	style := previewStyle(a.palette, res.Kind)
	for i, line := range res.Lines {
		if i >= r.H {
			break
		}
		if res.Styled {
			s.SetANSI(r.Y+i, r.X, line, r.W)
			continue
		}
		s.SetString(r.Y+i, r.X, width.Truncate(line, r.W), style)
	}
}

func previewStyle(p theme.Palette, k preview.Kind) string {
	switch k {
	case preview.KindError:
		return p.Error.Code()
	case preview.KindBinary:
		return p.Muted.Code()
	default:
		return p.Primary.Code()
	}
}

func (a *App) drawStatus(s *screen.Screen, r tuipkg.Rect) {
	style := a.palette.Status.Code()
	if a.prompt != nil {
		a.prompt.Draw(s, r, style, a.palette.Cursor.Code())
		return
	}
	text, st := a.status, style
	switch {
	case a.statusErr:
		st = a.palette.Error.Code()
	case text == "":
		if e, ok := a.list.current(); ok {
			text, st = e.Summary(), a.palette.Muted.Code()
		}
	}
	s.SetString(r.Y, r.X, width.Truncate(" "+text, r.W), st)
}

// hint is one key hint shown in the footer.
type hint struct{ key, label string }

func (a *App) hints() []hint {
	if a.menu != nil {
		return []hint{{"enter", "select"}, {"esc", "close"}}
	}
	if a.prompt != nil {
		return []hint{{"enter", "ok"}, {"esc", "cancel"}}
	}
	return []hint{{"?", "help"}, {":", "command"}, {"q", "quit"}}
}

// drawFooter paints the version, the number of running jobs and key hints.
func drawFooter(s *screen.Screen, r tuipkg.Rect, p theme.Palette, version string, running int, hints []hint) {
	style := p.Footer.Code()
	tuipkg.Fill(s, r, ' ', style)
	if version == "" {
		version = "dev"
	}
	left := " tfm " + version
	if running > 0 {
		left += fmt.Sprintf("  %d job", running)
		if running > 1 {
			left += "s"
		}
		left += " running"
	}
	col := r.X + s.SetString(r.Y, r.X, width.Truncate(left, r.W), style)

	var parts []string
	for _, h := range hints {
		parts = append(parts, h.key+" "+h.label)
	}
	hw := width.DisplayWidth(strings.Join(parts, "  ")) + 1
	x := r.X + r.W - hw
	if x <= col+1 {
		return
	}
	for i, h := range hints {
		if i > 0 {
			x += s.SetString(r.Y, x, "  ", style)
		}
		x += s.SetString(r.Y, x, h.key, p.FooterKey.Code())
		x += s.SetString(r.Y, x, " "+h.label, style)
	}
}
