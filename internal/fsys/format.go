// ABOUTME: Human-readable sizes, ages and permission strings for the listing and job history

package fsys

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count the way ls -h users expect: "512 B", "1.2 MB".
func FormatSize(n int64) string {
	if n < 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}

// FormatAge renders t relative to now: "3 minutes ago".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// Detail is the right-hand column of a listing row: size for files, item
// kind for directories.
func (e Entry) Detail() string {
	switch {
	case e.Broken:
		return "broken link"
	case e.Dir:
		return "dir"
	default:
		return FormatSize(e.Size)
	}
}

// Summary is the status-line description of the entry.
func (e Entry) Summary() string {
	s := e.Mode.String() + "  " + e.Detail() + "  " + e.ModTime.Format("2006-01-02 15:04")
	if e.Link != "" {
		s += "  -> " + e.Link
	}
	return s
}
