// ABOUTME: File search: runs fd (names) and rg (contents) concurrently under one errgroup
// ABOUTME: Falls back to an in-process fuzzy walk when neither tool is installed

package search

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/tfm/internal/log"
)

// DefaultMaxResults caps results when Options.MaxResults is not set.
const DefaultMaxResults = 500

// Source tells which tool found a hit.
type Source int

const (
	ByName Source = iota
	ByContent
	ByFuzzy
)

func (s Source) String() string {
	switch s {
	case ByName:
		return "name"
	case ByContent:
		return "content"
	default:
		return "fuzzy"
	}
}

// Hit is one search result. Path is relative to the search root.
type Hit struct {
	Path   string
	Source Source
}

// Results is the outcome of one search.
type Results struct {
	Root      string
	Query     string
	Hits      []Hit
	Truncated bool
}

// Options configures a Searcher.
type Options struct {
	NameTool    string
	ContentTool string
	MaxResults  int
}

// Searcher runs searches. It is safe for concurrent use.
type Searcher struct {
	opts     Options
	lookPath func(string) (string, error)
}

// New creates a Searcher, filling in defaults.
func New(opts Options) *Searcher {
	if opts.NameTool == "" {
		opts.NameTool = "fd"
	}
	if opts.ContentTool == "" {
		opts.ContentTool = "rg"
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	return &Searcher{opts: opts, lookPath: exec.LookPath}
}

// Search looks for query below root. Name hits come before content hits;
// a path found by both is reported once, as a name hit.
func (s *Searcher) Search(ctx context.Context, root, query string) (Results, error) {
	res := Results{Root: root, Query: query}
	query = strings.TrimSpace(norm.NFC.String(query))
	if query == "" {
		return res, nil
	}

	nameBin, nameErr := s.lookPath(s.opts.NameTool)
	contentBin, contentErr := s.lookPath(s.opts.ContentTool)
	if nameErr != nil && contentErr != nil {
		log.Debug("search: %s and %s not found, walking %s", s.opts.NameTool, s.opts.ContentTool, root)
		hits, truncated, err := walkFuzzy(ctx, root, query, s.opts.MaxResults)
		res.Hits, res.Truncated = hits, truncated
		return res, err
	}

	var (
		mu           sync.Mutex
		names, texts []string
	)
	g, gctx := errgroup.WithContext(ctx)
	if nameErr == nil {
		g.Go(func() error {
			out, err := runTool(gctx, root, nameBin, "--color", "never", "--", query)
			mu.Lock()
			names = out
			mu.Unlock()
			return err
		})
	}
	if contentErr == nil {
		g.Go(func() error {
			out, err := runTool(gctx, root, contentBin, "-l", "--color", "never", "--", query)
			mu.Lock()
			texts = out
			mu.Unlock()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	seen := make(map[string]bool)
	add := func(paths []string, src Source) {
		for _, p := range paths {
			p = relative(root, p)
			if p == "" || seen[p] {
				continue
			}
			if len(res.Hits) == s.opts.MaxResults {
				res.Truncated = true
				return
			}
			seen[p] = true
			res.Hits = append(res.Hits, Hit{Path: p, Source: src})
		}
	}
	add(names, ByName)
	add(texts, ByContent)
	return res, nil
}

// runTool runs bin in root and returns its output lines. Exit code 1 means
// nothing matched.
func runTool(ctx context.Context, root, bin string, args ...string) ([]string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cmd.ProcessState != nil && cmd.ProcessState.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("%s failed: %s: %w", filepath.Base(bin), strings.TrimSpace(stderr.String()), err)
	}

	var out []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, norm.NFC.String(line))
		}
	}
	return out, nil
}

func relative(root, p string) string {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return p
		}
		p = rel
	}
	p = filepath.Clean(strings.TrimPrefix(p, "./"))
	if p == "." {
		return ""
	}
	return p
}
