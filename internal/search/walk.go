// ABOUTME: In-process search fallback: a bounded directory walk ranked by fuzzy match
// ABOUTME: Skips VCS and dependency directories

package search

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// maxWalk bounds how many entries the fallback walk visits.
const maxWalk = 20000

var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

var errWalkLimit = errors.New("walk limit reached")

func walkFuzzy(ctx context.Context, root, query string, limit int) ([]Hit, bool, error) {
	var paths []string
	truncated := false
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path == root {
			return nil
		}
		if d.IsDir() && skipDirs[d.Name()] {
			return fs.SkipDir
		}
		if len(paths) == maxWalk {
			truncated = true
			return errWalkLimit
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		paths = append(paths, norm.NFC.String(rel))
		return nil
	})
	if err != nil && !errors.Is(err, errWalkLimit) {
		return nil, false, err
	}

	matches := fuzzy.Find(query, paths)
	hits := make([]Hit, 0, min(len(matches), limit))
	for _, m := range matches {
		if len(hits) == limit {
			truncated = true
			break
		}
		hits = append(hits, Hit{Path: m.Str, Source: ByFuzzy})
	}
	return hits, truncated, nil
}
