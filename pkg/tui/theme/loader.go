// ABOUTME: YAML theme file loading with style specs such as "bold red on:236" or "#ff8800"
// ABOUTME: Unset palette roles inherit from a base theme; Resolve picks a builtin name or a file path

package theme

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// fileTheme is the on-disk shape of a theme.
//
//	name: ocean
//	base: dark
//	palette:
//	  directory: bold #5fafff
//	  cursor: on:24
type fileTheme struct {
	Name    string            `yaml:"name"`
	Base    string            `yaml:"base"`
	Palette map[string]string `yaml:"palette"`
}

// LoadFile reads a YAML theme file. Roles not listed fall back to the
// builtin named by "base" (default when empty).
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML theme document.
func Parse(data []byte) (*Theme, error) {
	var ft fileTheme
	if err := yaml.Unmarshal(data, &ft); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	baseName := ft.Base
	if baseName == "" {
		baseName = "default"
	}
	base := Builtin(baseName)
	if base == nil {
		return nil, fmt.Errorf("theme %q: unknown base %q", ft.Name, baseName)
	}

	p := base.Palette
	pv := reflect.ValueOf(&p).Elem()
	for role, spec := range ft.Palette {
		f := pv.FieldByName(fieldName(role))
		if !f.IsValid() || f.Type() != reflect.TypeFor[Color]() {
			return nil, fmt.Errorf("theme %q: unknown role %q", ft.Name, role)
		}
		c, err := ParseStyle(spec)
		if err != nil {
			return nil, fmt.Errorf("theme %q: role %q: %w", ft.Name, role, err)
		}
		f.Set(reflect.ValueOf(c))
	}

	name := ft.Name
	if name == "" {
		name = "custom"
	}
	return &Theme{Name: name, Palette: p}, nil
}

// Resolve returns the builtin named ref, or loads ref as a theme file.
// An empty ref yields the default theme.
func Resolve(ref string) (*Theme, error) {
	if ref == "" {
		return Builtin("default"), nil
	}
	if t := Builtin(ref); t != nil {
		return t, nil
	}
	return LoadFile(ref)
}

// fieldName maps "dialog_border" to "DialogBorder".
func fieldName(role string) string {
	var b strings.Builder
	upper := true
	for _, r := range role {
		if r == '_' || r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

var namedColors = map[string]int{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "white": 7,
}

var attributes = map[string]string{
	"bold": "1", "dim": "2", "italic": "3", "underline": "4",
	"blink": "5", "reverse": "7", "strike": "9",
}

// ParseStyle converts a style spec into a Color. A spec is either a raw
// escape sequence or space-separated tokens: attributes (bold, dim,
// italic, underline, reverse, strike), a foreground color (name,
// bright-name, 0-255, #rrggbb) and a background color prefixed with "on:".
func ParseStyle(spec string) (Color, error) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "\x1b[") {
		return NewColor(spec), nil
	}

	var params []string
	for tok := range strings.FieldsSeq(strings.ToLower(spec)) {
		if a, ok := attributes[tok]; ok {
			params = append(params, a)
			continue
		}
		bg := false
		if rest, ok := strings.CutPrefix(tok, "on:"); ok {
			bg, tok = true, rest
		}
		p, err := colorParam(tok, bg)
		if err != nil {
			return Color{}, err
		}
		params = append(params, p)
	}
	if len(params) == 0 {
		return Color{}, nil
	}
	return NewColor("\x1b[" + strings.Join(params, ";") + "m"), nil
}

func colorParam(tok string, bg bool) (string, error) {
	base, ext := 30, "38"
	if bg {
		base, ext = 40, "48"
	}

	if name, ok := strings.CutPrefix(tok, "bright-"); ok {
		if n, ok := namedColors[name]; ok {
			return strconv.Itoa(base + 60 + n), nil
		}
		return "", fmt.Errorf("unknown color %q", tok)
	}
	if n, ok := namedColors[tok]; ok {
		return strconv.Itoa(base + n), nil
	}
	if hex, ok := strings.CutPrefix(tok, "#"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) != 6 {
			return "", fmt.Errorf("bad hex color %q", tok)
		}
		return fmt.Sprintf("%s;2;%d;%d;%d", ext, v>>16&0xff, v>>8&0xff, v&0xff), nil
	}
	if n, err := strconv.Atoi(tok); err == nil && n >= 0 && n <= 255 {
		return fmt.Sprintf("%s;5;%d", ext, n), nil
	}
	return "", fmt.Errorf("unknown style token %q", tok)
}
