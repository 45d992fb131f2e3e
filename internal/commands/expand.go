// ABOUTME: Placeholder and variable expansion for command arguments
// ABOUTME: %f entry, %d cwd, %s marked paths, %% literal, leading ~, $VAR and ${VAR}

package commands

import (
	"os"
	"path/filepath"
	"strings"
)

// Context is the state expansions read from.
type Context struct {
	Cwd     string
	Current string   // path of the entry under the cursor, may be empty
	Marked  []string // marked paths, in listing order
	Home    string
	Getenv  func(string) string
}

// Expand substitutes placeholders in s. With shell set, %f and %d are
// shell-quoted as well; %s is always quoted.
func (c Context) Expand(s string, shell bool) string {
	getenv := c.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	path := func(p string) string {
		if shell {
			return ShellQuote(p)
		}
		return p
	}

	s = c.expandHome(s)

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '%' && i+1 < len(s):
			i++
			switch s[i] {
			case 'f':
				b.WriteString(path(c.Current))
			case 'd':
				b.WriteString(path(c.Cwd))
			case 's':
				b.WriteString(c.selection())
			case '%':
				b.WriteByte('%')
			default:
				b.WriteByte('%')
				b.WriteByte(s[i])
			}
		case ch == '$' && i+1 < len(s) && s[i+1] == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			b.WriteString(getenv(s[i+2 : i+2+end]))
			i += 2 + end
		case ch == '$' && i+1 < len(s) && isNameByte(s[i+1], true):
			j := i + 1
			for j < len(s) && isNameByte(s[j], false) {
				j++
			}
			b.WriteString(getenv(s[i+1 : j]))
			i = j - 1
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func (c Context) expandHome(s string) string {
	if c.Home == "" || !strings.HasPrefix(s, "~") {
		return s
	}
	if len(s) == 1 || s[1] == '/' || s[1] == filepath.Separator {
		return c.Home + s[1:]
	}
	return s
}

// selection is the marked paths, or the current entry when nothing is marked.
func (c Context) selection() string {
	paths := c.Marked
	if len(paths) == 0 {
		if c.Current == "" {
			return ""
		}
		paths = []string{c.Current}
	}
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = ShellQuote(p)
	}
	return strings.Join(quoted, " ")
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// ShellQuote quotes s for POSIX sh. Words made only of safe characters are
// returned unchanged.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(isNameByte(c, false) || strings.IndexByte("-./:@+,=%", c) >= 0) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
