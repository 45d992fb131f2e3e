// ABOUTME: Markdown preview rendered by glamour with the configured style and word wrap

package preview

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

func markdown(src string, w int, style string) ([]string, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(w),
	)
	if err != nil {
		return nil, err
	}
	out, err := r.Render(src)
	if err != nil {
		return nil, err
	}
	out = strings.Trim(out, "\n")
	return strings.Split(out, "\n"), nil
}
