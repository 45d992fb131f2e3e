// ABOUTME: DisplayWidth measures terminal columns of text, tolerant of invalid UTF-8
// ABOUTME: East Asian wide/fullwidth runes count 2; invalid bytes count as one placeholder column

package width

import (
	"container/list"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Placeholder replaces every byte that does not decode as UTF-8 and every
// non-printable control rune. It always occupies one column.
const Placeholder = '\uFFFD'

const cacheSize = 512

// cond pins the East Asian ambiguous classification to narrow so widths do
// not depend on the user's locale variables.
var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

type lruEntry struct {
	key   string
	value int
}

// cache is an O(1) LRU cache for non-ASCII string widths.
type cache struct {
	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List
	size  int
}

func newCache(size int) *cache {
	return &cache{
		items: make(map[string]*list.Element, size),
		order: list.New(),
		size:  size,
	}
}

func (c *cache) get(key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return 0, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(lruEntry).value, true
}

func (c *cache) put(key string, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[key]; ok {
		return
	}
	if c.order.Len() >= c.size {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(lruEntry).key)
		}
	}
	c.items[key] = c.order.PushFront(lruEntry{key: key, value: value})
}

var widthCache = newCache(cacheSize)

// DisplayWidth returns the number of terminal columns s occupies.
// Escape sequences are NOT skipped; use VisibleWidth for styled text.
// Malformed byte sequences never abort the measurement: each undecodable
// byte is counted as one Placeholder column.
func DisplayWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := widthCache.get(s); ok {
		return w
	}
	w := computeWidth(Sanitize(s))
	widthCache.put(s, w)
	return w
}

// VisibleWidth returns the display width of s with ANSI escape sequences
// contributing zero columns.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	return DisplayWidth(StripANSI(s))
}

// RuneWidth returns the column width of a single rune: 2 for East Asian
// wide and fullwidth runes, 0 for combining marks, 1 otherwise.
func RuneWidth(r rune) int {
	if r == utf8.RuneError || isControl(r) {
		return 1
	}
	return cond.RuneWidth(r)
}

// Sanitize returns s with every invalid UTF-8 byte and every control rune
// (other than tab) replaced by Placeholder. Valid text is returned as-is.
func Sanitize(s string) string {
	if isPlainASCII(s) {
		return s
	}
	clean := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size <= 1) || (isControl(r) && r != '\t') {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			b.WriteRune(Placeholder)
		case isControl(r) && r != '\t':
			b.WriteRune(Placeholder)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// isPlainASCII returns true if s contains only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

// computeWidth sums grapheme cluster widths of already-sanitized text.
func computeWidth(s string) int {
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
	}
	return w
}

// graphemeWidth returns the display width of a single grapheme cluster,
// classified by its first rune.
func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	if cluster == "\t" {
		return 1
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return RuneWidth(r)
}
