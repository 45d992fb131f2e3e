// ABOUTME: Tests for preview kinds, wrapping limits, caching and html extraction
// ABOUTME: Markdown uses glamour's notty style so assertions can match plain text

package preview

import (
	"bytes"
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mauromedda/tfm/pkg/tui/width"
)

func write(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func newTestPreviewer() *Previewer {
	return New(Options{MarkdownStyle: "notty", Images: true})
}

func TestPreview_Text(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	long := strings.Repeat("word ", 30)
	p := write(t, dir, "notes.txt", []byte("first\r\n\n"+long+"\ttabbed\n"))

	r := newTestPreviewer().Preview(p, 20, 50)
	if r.Kind != KindText || r.Styled {
		t.Fatalf("Kind = %v Styled = %v", r.Kind, r.Styled)
	}
	if r.Lines[0] != "first" || r.Lines[1] != "" {
		t.Errorf("first lines = %q", r.Lines[:2])
	}
	for i, l := range r.Lines {
		if w := width.DisplayWidth(l); w > 20 {
			t.Errorf("line %d is %d columns wide: %q", i, w, l)
		}
		if strings.Contains(l, "\t") {
			t.Errorf("line %d still has a tab: %q", i, l)
		}
	}
}

func TestPreview_HeightLimit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := write(t, dir, "big.txt", []byte(strings.Repeat("line\n", 1000)))

	r := newTestPreviewer().Preview(p, 40, 7)
	if len(r.Lines) != 7 {
		t.Errorf("got %d lines, want 7", len(r.Lines))
	}
}

func TestPreview_InvalidUTF8(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := write(t, dir, "bad.txt", []byte("ok \xff\xfe end\n"))

	r := newTestPreviewer().Preview(p, 40, 5)
	if r.Kind != KindText {
		t.Fatalf("Kind = %v, want text", r.Kind)
	}
	if !strings.Contains(r.Lines[0], string(width.Placeholder)) || !strings.HasSuffix(r.Lines[0], "end") {
		t.Errorf("line = %q, want placeholders and the rest of the line", r.Lines[0])
	}
}

func TestPreview_Binary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := write(t, dir, "blob", []byte{'E', 'L', 'F', 0, 1, 2})

	r := newTestPreviewer().Preview(p, 40, 10)
	if r.Kind != KindBinary || r.Lines[0] != "binary file" {
		t.Errorf("result = %+v", r)
	}
}

func TestPreview_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "a.txt", nil)
	write(t, dir, ".dot", nil)
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	pv := newTestPreviewer()
	r := pv.Preview(dir, 40, 10)
	if r.Kind != KindDirectory || strings.Join(r.Lines, ",") != "sub/,a.txt" {
		t.Errorf("directory lines = %q", r.Lines)
	}

	pv.SetShowHidden(true)
	r = pv.Preview(dir, 40, 10)
	if strings.Join(r.Lines, ",") != "sub/,.dot,a.txt" {
		t.Errorf("with hidden = %q", r.Lines)
	}

	empty := t.TempDir()
	if r := pv.Preview(empty, 40, 10); r.Lines[0] != "(empty)" {
		t.Errorf("empty dir = %q", r.Lines)
	}
}

func TestPreview_Markdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := write(t, dir, "README.md", []byte("# Title\n\nSome *text* here.\n"))

	r := newTestPreviewer().Preview(p, 40, 20)
	if r.Kind != KindMarkdown || !r.Styled {
		t.Fatalf("Kind = %v Styled = %v", r.Kind, r.Styled)
	}
	joined := width.StripANSI(strings.Join(r.Lines, "\n"))
	if !strings.Contains(joined, "Title") || !strings.Contains(joined, "text") {
		t.Errorf("rendered markdown = %q", joined)
	}
}

func TestPreview_HTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := `<html><head><title>x</title><style>p{}</style></head><body>
<h2>Heading</h2><p>Hello <b>world</b>.</p><script>alert(1)</script>
<ul><li>one</li><li>two</li></ul><a href="https://example.com">link</a></body></html>`
	p := write(t, dir, "page.html", []byte(src))

	r := newTestPreviewer().Preview(p, 60, 20)
	if r.Kind != KindHTML {
		t.Fatalf("Kind = %v", r.Kind)
	}
	joined := strings.Join(r.Lines, "\n")
	for _, want := range []string{"## Heading", "Hello world.", "• one", "• two", "link <https://example.com>"} {
		if !strings.Contains(joined, want) {
			t.Errorf("html text missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "alert") || strings.Contains(joined, "p{}") {
		t.Errorf("script or style leaked:\n%s", joined)
	}
}

func TestPreview_Image(t *testing.T) {
	t.Parallel()

	img := goimage.NewRGBA(goimage.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	p := write(t, dir, "red.png", buf.Bytes())

	r := newTestPreviewer().Preview(p, 20, 10)
	if r.Kind != KindImage || !r.Styled {
		t.Fatalf("Kind = %v Styled = %v", r.Kind, r.Styled)
	}
	if r.Lines[0] != "PNG 8x8" {
		t.Errorf("header = %q", r.Lines[0])
	}
	if len(r.Lines) != 1+4 {
		t.Errorf("got %d lines, want header plus 4 half-block rows", len(r.Lines))
	}

	off := New(Options{Images: false})
	if r := off.Preview(p, 20, 10); r.Kind == KindImage {
		t.Error("image preview rendered with images disabled")
	}
}

func TestPreview_Errors(t *testing.T) {
	t.Parallel()

	r := newTestPreviewer().Preview(filepath.Join(t.TempDir(), "missing"), 20, 5)
	if r.Kind != KindError || !strings.HasPrefix(r.Lines[0], "cannot preview") {
		t.Errorf("result = %+v", r)
	}
	if r := newTestPreviewer().Preview("/", 0, 5); len(r.Lines) != 0 {
		t.Errorf("zero-width preview = %+v", r)
	}
}

func TestPreview_Cache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := write(t, dir, "a.txt", []byte("one\n"))
	pv := newTestPreviewer()

	if got := pv.Preview(p, 20, 5).Lines[0]; got != "one" {
		t.Fatalf("first = %q", got)
	}

	// Same size and mtime: the cached result is served.
	mtime := time.Now().Add(-time.Hour)
	if err := os.Chtimes(p, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	pv.Preview(p, 20, 5)
	if err := os.WriteFile(p, []byte("two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(p, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	if got := pv.Preview(p, 20, 5).Lines[0]; got != "one" {
		t.Errorf("cached = %q, want the cached \"one\"", got)
	}

	pv.Forget()
	if got := pv.Preview(p, 20, 5).Lines[0]; got != "two" {
		t.Errorf("after Forget = %q, want \"two\"", got)
	}
}

func TestPreview_CacheBounded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := write(t, dir, "a.txt", []byte("x\n"))
	pv := newTestPreviewer()
	for w := 1; w <= maxCached+10; w++ {
		pv.Preview(p, w, 3)
	}
	if len(pv.cache) != maxCached || len(pv.order) != maxCached {
		t.Errorf("cache size = %d/%d, want %d", len(pv.cache), len(pv.order), maxCached)
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, false},
		{"text", []byte("hello"), false},
		{"nul", []byte("he\x00llo"), true},
		{"nul past sniff window", append(bytes.Repeat([]byte("a"), sniffLen), 0), false},
	}
	for _, tt := range tests {
		if got := isBinary(tt.data); got != tt.want {
			t.Errorf("%s: isBinary = %v, want %v", tt.name, got, tt.want)
		}
	}
}
