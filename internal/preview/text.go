// ABOUTME: Plain-text preview helpers: bounded reads, binary sniffing and wrapping

package preview

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/mauromedda/tfm/pkg/tui/width"
)

// readHead reads at most limit bytes from the start of path.
func readHead(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}

// isBinary reports a NUL byte in the first sniffLen bytes.
func isBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), sniffLen)], 0) >= 0
}

// wrap splits text into lines and wraps them to w columns, stopping once h
// rows are produced.
func wrap(text string, w, h int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	var out []string
	for _, line := range raw {
		out = append(out, width.WrapPreviewLines([]string{line}, w)...)
		if len(out) >= h {
			return out[:h]
		}
	}
	return out
}

func wrapLines(lines []string, w int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = width.Truncate(width.Sanitize(l), w)
	}
	return out
}
