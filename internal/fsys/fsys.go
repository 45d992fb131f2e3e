// ABOUTME: Directory listing for the file pane: stat, NFC-normalised names, dirs-first sorting
// ABOUTME: Entries also implement the fuzzy Source interface for filter mode

package fsys

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Entry is one directory entry as shown in the listing.
type Entry struct {
	Name    string // NFC-normalised display name
	Path    string // absolute path as found on disk
	Dir     bool   // directory, or symlink to one
	Link    string // symlink target, empty when not a link
	Broken  bool   // symlink whose target does not exist
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// Hidden reports whether the entry is a dotfile.
func (e Entry) Hidden() bool { return strings.HasPrefix(e.Name, ".") }

// Executable reports whether a regular file has any execute bit set.
func (e Entry) Executable() bool { return !e.Dir && e.Mode.IsRegular() && e.Mode.Perm()&0o111 != 0 }

// Entries is a listing in display order.
type Entries []Entry

// String returns the name at i, for fuzzy matching.
func (es Entries) String(i int) string { return es[i].Name }

// Len returns the number of entries.
func (es Entries) Len() int { return len(es) }

// List reads dir and returns its entries, directories first, then by
// case-insensitive name. Dotfiles are skipped unless showHidden is set.
// Entries that vanish between readdir and stat are skipped.
func List(dir string, showHidden bool) (Entries, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	des, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", abs, err)
	}

	entries := make(Entries, 0, len(des))
	for _, de := range des {
		name := norm.NFC.String(de.Name())
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		e, err := stat(filepath.Join(abs, de.Name()), name)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	Sort(entries)
	return entries, nil
}

// Stat builds the Entry for a single path.
func Stat(path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, err
	}
	return stat(abs, norm.NFC.String(filepath.Base(abs)))
}

func stat(path, name string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Name:    name,
		Path:    path,
		Dir:     info.IsDir(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		e.Link, _ = os.Readlink(path)
		target, err := os.Stat(path)
		if err != nil {
			e.Broken = true
		} else {
			e.Dir = target.IsDir()
			e.Size = target.Size()
		}
	}
	return e, nil
}

// Sort orders entries directories first, then by case-insensitive name,
// with the exact name breaking ties.
func Sort(entries Entries) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Dir != b.Dir {
			return a.Dir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// IsProject reports whether dir contains one of the project markers.
func IsProject(dir string) bool {
	for _, m := range ProjectMarkers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return true
		}
	}
	return false
}

// ProjectMarkers are the files or directories that make a directory a project.
var ProjectMarkers = []string{".git", "go.mod", "package.json", "Cargo.toml", "pyproject.toml"}
