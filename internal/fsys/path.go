// ABOUTME: Path normalisation for user-typed paths: tilde, Unicode spaces, NFC/NFD variants
// ABOUTME: Resolve finds the on-disk spelling when the typed name differs only in normal form

package fsys

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSpaces replaces Unicode space characters with ASCII space.
// Covered codepoints: U+00A0, U+2000-U+200A, U+202F, U+205F, U+3000.
func NormalizeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if isUnicodeSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func isUnicodeSpace(r rune) bool {
	switch {
	case r == '\u00A0', r == '\u202F', r == '\u205F', r == '\u3000':
		return true
	case r >= '\u2000' && r <= '\u200A':
		return true
	}
	return false
}

// ExpandHome expands a leading "~" or "~/" to the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}

// ResolveToCwd expands path and joins it with cwd when relative. The result
// is always cleaned.
func ResolveToCwd(path, cwd string) string {
	path = NormalizeSpaces(ExpandHome(path))
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path)
}

// Resolve tries the typed path and its NFC and NFD spellings, returning the
// first that exists. When none exists the direct resolution is returned.
func Resolve(path, cwd string) string {
	candidates := []string{
		ResolveToCwd(path, cwd),
		ResolveToCwd(norm.NFC.String(path), cwd),
		ResolveToCwd(norm.NFD.String(path), cwd),
		ResolveToCwd(strings.ReplaceAll(path, "\u2019", "'"), cwd),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}

// Abbrev replaces the home directory prefix of path with "~".
func Abbrev(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return path
}
