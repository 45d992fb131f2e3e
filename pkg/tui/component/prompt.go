// ABOUTME: Single-line prompt editor for the status row with Emacs-style editing keys
// ABOUTME: Keeps a kill buffer for ctrl+w/ctrl+k/ctrl+u and an undo history for ctrl+z

package component

import (
	"github.com/mauromedda/tfm/pkg/tui"
	"github.com/mauromedda/tfm/pkg/tui/key"
	"github.com/mauromedda/tfm/pkg/tui/screen"
	"github.com/mauromedda/tfm/pkg/tui/width"
)

const promptUndoDepth = 100

// PromptResult is the outcome of feeding one key to a Prompt.
type PromptResult int

const (
	PromptEditing PromptResult = iota
	PromptSubmitted
	PromptAborted
)

type promptState struct {
	text   []rune
	cursor int
}

// Prompt is a one-line text input with a label, e.g. "bookmark name: ".
type Prompt struct {
	Label string

	text    []rune
	cursor  int
	scroll  int
	killed  []rune
	history []promptState
}

// NewPrompt creates a Prompt pre-filled with initial, cursor at the end.
func NewPrompt(label, initial string) *Prompt {
	p := &Prompt{Label: label, text: []rune(initial)}
	p.cursor = len(p.text)
	return p
}

// Text returns the current input.
func (p *Prompt) Text() string { return string(p.text) }

// Cursor returns the cursor position in runes.
func (p *Prompt) Cursor() int { return p.cursor }

// HandleKey applies k and reports whether the prompt is still open.
func (p *Prompt) HandleKey(k key.Key) PromptResult {
	switch k.Type {
	case key.KeyEnter:
		return PromptSubmitted
	case key.KeyEscape:
		return PromptAborted
	case key.KeyRune:
		if !k.Alt {
			p.insert([]rune{k.Rune})
		}
	case key.KeyBackspace:
		if p.cursor > 0 {
			p.save()
			p.text = append(p.text[:p.cursor-1], p.text[p.cursor:]...)
			p.cursor--
		}
	case key.KeyDelete:
		if p.cursor < len(p.text) {
			p.save()
			p.text = append(p.text[:p.cursor], p.text[p.cursor+1:]...)
		}
	case key.KeyLeft:
		p.cursor = max(p.cursor-1, 0)
	case key.KeyRight:
		p.cursor = min(p.cursor+1, len(p.text))
	case key.KeyHome:
		p.cursor = 0
	case key.KeyEnd:
		p.cursor = len(p.text)
	case key.KeyCtrl:
		return p.handleCtrl(k.Rune)
	}
	return PromptEditing
}

func (p *Prompt) handleCtrl(r rune) PromptResult {
	switch r {
	case 'c', 'g':
		return PromptAborted
	case 'a':
		p.cursor = 0
	case 'e':
		p.cursor = len(p.text)
	case 'b':
		p.cursor = max(p.cursor-1, 0)
	case 'f':
		p.cursor = min(p.cursor+1, len(p.text))
	case 'k':
		p.kill(p.cursor, len(p.text))
	case 'u':
		p.kill(0, p.cursor)
	case 'w':
		p.kill(p.wordStart(), p.cursor)
	case 'y':
		p.insert(p.killed)
	case 'z':
		p.undo()
	}
	return PromptEditing
}

// wordStart finds the start of the word before the cursor, skipping
// trailing spaces first.
func (p *Prompt) wordStart() int {
	pos := p.cursor
	for pos > 0 && p.text[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && p.text[pos-1] != ' ' {
		pos--
	}
	return pos
}

func (p *Prompt) kill(from, to int) {
	if from >= to {
		return
	}
	p.save()
	p.killed = append([]rune(nil), p.text[from:to]...)
	p.text = append(p.text[:from], p.text[to:]...)
	p.cursor = from
}

func (p *Prompt) insert(rs []rune) {
	if len(rs) == 0 {
		return
	}
	p.save()
	out := make([]rune, 0, len(p.text)+len(rs))
	out = append(out, p.text[:p.cursor]...)
	out = append(out, rs...)
	out = append(out, p.text[p.cursor:]...)
	p.text = out
	p.cursor += len(rs)
}

func (p *Prompt) save() {
	if len(p.history) == promptUndoDepth {
		p.history = p.history[1:]
	}
	p.history = append(p.history, promptState{
		text:   append([]rune(nil), p.text...),
		cursor: p.cursor,
	})
}

func (p *Prompt) undo() {
	if len(p.history) == 0 {
		return
	}
	last := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	p.text, p.cursor = last.text, last.cursor
}

// Draw paints the label and the visible slice of the text on r's first
// row; the cursor cell is drawn in cursorStyle.
func (p *Prompt) Draw(s *screen.Screen, r tui.Rect, style, cursorStyle string) {
	if r.Empty() {
		return
	}
	tui.Fill(s, r.Row(0), ' ', style)
	col := r.X + s.SetString(r.Y, r.X, width.Truncate(p.Label, r.W), style)
	avail := r.X + r.W - col
	if avail <= 0 {
		return
	}

	p.adjustScroll(avail)
	x := col
	for i := p.scroll; i <= len(p.text); i++ {
		ch := ' '
		if i < len(p.text) {
			ch = p.text[i]
		}
		w := width.RuneWidth(ch)
		if x+w > col+avail {
			break
		}
		st := style
		if i == p.cursor {
			st = cursorStyle
		}
		s.Set(r.Y, x, ch, st)
		x += w
	}
}

// adjustScroll keeps the cursor inside a window of avail columns.
func (p *Prompt) adjustScroll(avail int) {
	if p.cursor < p.scroll {
		p.scroll = p.cursor
	}
	for p.scroll < p.cursor && p.widthBetween(p.scroll, p.cursor)+1 > avail {
		p.scroll++
	}
}

func (p *Prompt) widthBetween(from, to int) int {
	w := 0
	for _, r := range p.text[from:to] {
		w += width.RuneWidth(r)
	}
	return w
}
