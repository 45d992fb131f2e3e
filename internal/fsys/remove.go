// ABOUTME: Deletion of marked entries with per-item error reporting
// ABOUTME: Failures are collected as "name: reason" strings for the result dialog

package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Remove deletes each path, recursing into directories. It returns how many
// were removed and one message per failure; it never stops early.
func Remove(paths []string) (removed int, errs []string) {
	for _, p := range paths {
		if err := removeOne(p); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %s", filepath.Base(p), reason(err)))
			continue
		}
		removed++
	}
	return removed, errs
}

func removeOne(path string) error {
	if _, err := os.Lstat(path); err != nil {
		return err
	}
	return os.RemoveAll(path)
}

// reason strips the path from *fs.PathError so the message stays short.
func reason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
