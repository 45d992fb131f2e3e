// ABOUTME: Listing state of the file pane: entries, fuzzy filter, cursor, scroll offset and marks
// ABOUTME: Reload keeps the cursor on the same entry name when it still exists

package app

import (
	"slices"

	"github.com/mauromedda/tfm/internal/fsys"
	"github.com/mauromedda/tfm/pkg/tui/fuzzy"
)

type listing struct {
	dir     string
	entries fsys.Entries
	visible []int // indices into entries after filtering
	filter  string
	cursor  int // index into visible
	offset  int
	marked  map[string]bool
}

func newListing() *listing {
	return &listing{marked: make(map[string]bool)}
}

// load reads dir. On error the previous state is kept.
func (l *listing) load(dir string, showHidden bool) error {
	entries, err := fsys.List(dir, showHidden)
	if err != nil {
		return err
	}
	keep := ""
	if dir == l.dir {
		if e, ok := l.current(); ok {
			keep = e.Name
		}
	} else {
		l.filter = ""
		clear(l.marked)
	}
	l.dir = dir
	l.entries = entries
	l.applyFilter()
	if keep != "" {
		l.selectName(keep)
	}
	// Marks on entries that disappeared are dropped.
	for p := range l.marked {
		if !slices.ContainsFunc(l.entries, func(e fsys.Entry) bool { return e.Path == p }) {
			delete(l.marked, p)
		}
	}
	return nil
}

func (l *listing) setFilter(pattern string) {
	l.filter = pattern
	l.applyFilter()
}

func (l *listing) applyFilter() {
	l.visible = fuzzy.Filter(l.filter, l.entries)
	l.cursor = min(l.cursor, max(len(l.visible)-1, 0))
	l.offset = min(l.offset, l.cursor)
}

func (l *listing) len() int { return len(l.visible) }

func (l *listing) at(i int) fsys.Entry { return l.entries[l.visible[i]] }

func (l *listing) current() (fsys.Entry, bool) {
	if len(l.visible) == 0 {
		return fsys.Entry{}, false
	}
	return l.at(l.cursor), true
}

func (l *listing) move(delta int) {
	if len(l.visible) == 0 {
		return
	}
	l.cursor = max(0, min(l.cursor+delta, len(l.visible)-1))
}

// selectName moves the cursor onto the visible entry called name.
func (l *listing) selectName(name string) bool {
	for i := range l.visible {
		if l.at(i).Name == name {
			l.cursor = i
			return true
		}
	}
	return false
}

// scroll keeps the cursor inside a window of rows lines.
func (l *listing) scroll(rows int) {
	if rows <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	l.offset = max(0, min(l.offset, len(l.visible)-rows))
}

func (l *listing) toggleMark() {
	e, ok := l.current()
	if !ok {
		return
	}
	if l.marked[e.Path] {
		delete(l.marked, e.Path)
	} else {
		l.marked[e.Path] = true
	}
}

func (l *listing) markAll(on bool) {
	clear(l.marked)
	if !on {
		return
	}
	for i := range l.visible {
		l.marked[l.at(i).Path] = true
	}
}

// markedEntries returns marked entries in listing order.
func (l *listing) markedEntries() []fsys.Entry {
	var out []fsys.Entry
	for _, e := range l.entries {
		if l.marked[e.Path] {
			out = append(out, e)
		}
	}
	return out
}

// selection is the marked entries, or the current one when none are marked.
func (l *listing) selection() []fsys.Entry {
	if m := l.markedEntries(); len(m) > 0 {
		return m
	}
	if e, ok := l.current(); ok {
		return []fsys.Entry{e}
	}
	return nil
}
