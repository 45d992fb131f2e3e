// ABOUTME: Tests for Searcher with stub fd/rg scripts and the fuzzy walk fallback

package search

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// writeTool creates an executable shell script named name in dir.
func writeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestSearcher(opts Options, tools map[string]string) *Searcher {
	s := New(opts)
	s.lookPath = func(name string) (string, error) {
		if p, ok := tools[name]; ok {
			return p, nil
		}
		return "", exec.ErrNotFound
	}
	return s
}

func TestSearch_MergesToolsAndDedups(t *testing.T) {
	t.Parallel()
	bin := t.TempDir()
	root := t.TempDir()

	tools := map[string]string{
		"fd": writeTool(t, bin, "fd", `printf 'src/main.go\n./README.md\n'`),
		"rg": writeTool(t, bin, "rg", `printf 'src/main.go\ndocs/guide.txt\n'`),
	}
	s := newTestSearcher(Options{}, tools)

	res, err := s.Search(context.Background(), root, "main")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []Hit{
		{"src/main.go", ByName},
		{"README.md", ByName},
		{"docs/guide.txt", ByContent},
	}
	if len(res.Hits) != len(want) {
		t.Fatalf("Hits = %+v, want %+v", res.Hits, want)
	}
	for i := range want {
		if res.Hits[i] != want[i] {
			t.Errorf("Hits[%d] = %+v, want %+v", i, res.Hits[i], want[i])
		}
	}
	if res.Truncated {
		t.Error("Truncated = true for a small result set")
	}
}

func TestSearch_MissingToolIsSkipped(t *testing.T) {
	t.Parallel()
	bin := t.TempDir()
	tools := map[string]string{
		"rg": writeTool(t, bin, "rg", `printf '%s/abs/path.txt\n' "$(pwd)"`),
	}
	s := newTestSearcher(Options{}, tools)

	root := t.TempDir()
	res, err := s.Search(context.Background(), root, "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 1 || res.Hits[0].Path != filepath.Join("abs", "path.txt") || res.Hits[0].Source != ByContent {
		t.Errorf("Hits = %+v, want one content hit relative to root", res.Hits)
	}
}

func TestSearch_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"no match", "exit 1", false},
		{"tool error", "echo boom >&2; exit 2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bin := t.TempDir()
			s := newTestSearcher(Options{}, map[string]string{"fd": writeTool(t, bin, "fd", tt.body)})

			res, err := s.Search(context.Background(), t.TempDir(), "q")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(res.Hits) != 0 {
				t.Errorf("Hits = %+v, want none", res.Hits)
			}
		})
	}
}

func TestSearch_Cap(t *testing.T) {
	t.Parallel()
	bin := t.TempDir()
	tools := map[string]string{
		"fd": writeTool(t, bin, "fd", `for i in 1 2 3 4 5; do echo f$i; done`),
	}
	s := newTestSearcher(Options{MaxResults: 3}, tools)

	res, err := s.Search(context.Background(), t.TempDir(), "f")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 3 || !res.Truncated {
		t.Errorf("Hits = %d, Truncated = %v; want 3, true", len(res.Hits), res.Truncated)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()
	s := newTestSearcher(Options{}, nil)
	res, err := s.Search(context.Background(), t.TempDir(), "   ")
	if err != nil || len(res.Hits) != 0 {
		t.Errorf("Search(blank) = %+v, %v", res, err)
	}
}

func TestSearch_FuzzyFallback(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for _, p := range []string{
		"cmd/server/main.go",
		"internal/app/model.go",
		"node_modules/pkg/main.js",
		".git/HEAD",
		"README.md",
	} {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s := newTestSearcher(Options{NameTool: "no-such-fd", ContentTool: "no-such-rg"}, nil)

	res, err := s.Search(context.Background(), root, "main.go")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) == 0 || res.Hits[0].Path != filepath.Join("cmd", "server", "main.go") {
		t.Fatalf("Hits = %+v, want cmd/server/main.go first", res.Hits)
	}
	for _, h := range res.Hits {
		if h.Source != ByFuzzy {
			t.Errorf("hit %q source = %v, want fuzzy", h.Path, h.Source)
		}
		if filepath.Base(filepath.Dir(h.Path)) == "pkg" || h.Path == filepath.Join(".git", "HEAD") {
			t.Errorf("hit %q comes from a skipped directory", h.Path)
		}
	}
}

func TestSearch_FallbackHonoursContext(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSearcher(Options{}, nil)
	if _, err := s.Search(ctx, root, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
