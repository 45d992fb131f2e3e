// ABOUTME: File preview formatting for the right-hand pane: text, markdown, html, images, directories
// ABOUTME: Results are cached per (path, mtime, size, box) so redraws don't re-read files

package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mauromedda/tfm/internal/fsys"
	"github.com/mauromedda/tfm/internal/log"
	"github.com/mauromedda/tfm/pkg/tui/image"
)

const (
	sniffLen     = 8 << 10
	maxCached    = 64
	defaultBytes = 256 << 10
)

// Kind classifies what was previewed.
type Kind int

const (
	KindText Kind = iota
	KindMarkdown
	KindHTML
	KindImage
	KindBinary
	KindDirectory
	KindError
)

// Result is a rendered preview. Styled lines carry SGR escapes and must be
// drawn with Screen.SetANSI; plain lines are already sanitized and wrapped.
type Result struct {
	Kind   Kind
	Lines  []string
	Styled bool
}

// Options configures a Previewer.
type Options struct {
	MaxBytes      int64
	MarkdownStyle string
	Images        bool
	ShowHidden    bool
}

type cacheKey struct {
	path   string
	mtime  time.Time
	size   int64
	w, h   int
	hidden bool
}

// Previewer renders previews and caches them.
type Previewer struct {
	mu    sync.Mutex
	opts  Options
	cache map[cacheKey]Result
	order []cacheKey
}

// New creates a Previewer.
func New(opts Options) *Previewer {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultBytes
	}
	return &Previewer{opts: opts, cache: make(map[cacheKey]Result)}
}

// SetShowHidden controls whether directory previews list dotfiles.
func (p *Previewer) SetShowHidden(show bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.ShowHidden = show
}

// Preview renders path into a w x h box. It never fails: problems are
// reported as a KindError result.
func (p *Previewer) Preview(path string, w, h int) Result {
	if w <= 0 || h <= 0 {
		return Result{Kind: KindText}
	}
	info, err := os.Stat(path)
	if err != nil {
		return errorResult(err)
	}

	p.mu.Lock()
	opts := p.opts
	key := cacheKey{path: path, mtime: info.ModTime(), size: info.Size(), w: w, h: h, hidden: opts.ShowHidden}
	if r, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return r
	}
	p.mu.Unlock()

	start := time.Now()
	r := render(path, info, w, h, opts)
	log.Debug("preview: %s rendered in %s", filepath.Base(path), time.Since(start))
	if len(r.Lines) > h {
		r.Lines = r.Lines[:h]
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.cache[key]; !ok {
		if len(p.order) == maxCached {
			delete(p.cache, p.order[0])
			p.order = p.order[1:]
		}
		p.order = append(p.order, key)
	}
	p.cache[key] = r
	return r
}

// Forget drops every cached preview.
func (p *Previewer) Forget() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.cache)
	p.order = p.order[:0]
}

func render(path string, info os.FileInfo, w, h int, opts Options) Result {
	if info.IsDir() {
		return directory(path, w, opts.ShowHidden)
	}
	if opts.Images && image.IsImage(path) {
		r, err := picture(path, w, h)
		if err == nil {
			return r
		}
		log.Debug("preview: image %s: %v", path, err)
	}

	data, err := readHead(path, opts.MaxBytes)
	if err != nil {
		return errorResult(err)
	}
	if isBinary(data) {
		return binary(info)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		lines, err := markdown(string(data), w, opts.MarkdownStyle)
		if err == nil {
			return Result{Kind: KindMarkdown, Lines: lines, Styled: true}
		}
		log.Debug("preview: markdown %s: %v", path, err)
	case ".html", ".htm":
		return Result{Kind: KindHTML, Lines: wrap(htmlText(string(data)), w, h)}
	}
	return Result{Kind: KindText, Lines: wrap(string(data), w, h)}
}

func errorResult(err error) Result {
	return Result{Kind: KindError, Lines: []string{fmt.Sprintf("cannot preview: %v", err)}}
}

func binary(info os.FileInfo) Result {
	return Result{Kind: KindBinary, Lines: []string{
		"binary file",
		"",
		"size: " + fsys.FormatSize(info.Size()),
		"mode: " + info.Mode().String(),
		"modified: " + info.ModTime().Format("2006-01-02 15:04"),
	}}
}

func directory(path string, w int, showHidden bool) Result {
	entries, err := fsys.List(path, showHidden)
	if err != nil {
		return errorResult(err)
	}
	if len(entries) == 0 {
		return Result{Kind: KindDirectory, Lines: []string{"(empty)"}}
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		name := e.Name
		if e.Dir {
			name += "/"
		}
		lines[i] = name
	}
	return Result{Kind: KindDirectory, Lines: wrapLines(lines, w)}
}

func picture(path string, w, h int) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	img, info, err := image.Decode(f)
	if err != nil {
		return Result{}, err
	}
	lines := []string{info.String()}
	lines = append(lines, image.RenderHalfBlock(img, w, h-1)...)
	return Result{Kind: KindImage, Lines: lines, Styled: true}, nil
}
