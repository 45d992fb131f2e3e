// ABOUTME: Built-in themes: default, dark, light, monochrome
// ABOUTME: Provides Builtin(name) lookup and BuiltinNames() enumeration

package theme

var builtins = map[string]*Theme{
	"default": {
		Name:    "default",
		Palette: DefaultPalette(),
	},
	"dark": {
		Name: "dark",
		Palette: Palette{
			Primary: NewColor("\x1b[97m"),
			Muted:   NewColor("\x1b[38;5;244m"),
			Accent:  NewColor("\x1b[38;5;214m"),

			Success: NewColor("\x1b[38;5;114m"),
			Warning: NewColor("\x1b[38;5;221m"),
			Error:   NewColor("\x1b[38;5;203m"),
			Info:    NewColor("\x1b[38;5;117m"),

			Directory:  NewColor("\x1b[1;38;5;75m"),
			Executable: NewColor("\x1b[38;5;114m"),
			Symlink:    NewColor("\x1b[38;5;117m"),
			Hidden:     NewColor("\x1b[38;5;240m"),
			Marked:     NewColor("\x1b[38;5;221m"),
			Cursor:     NewColor("\x1b[48;5;238m"),

			Header:    NewColor("\x1b[1;97m"),
			Status:    NewColor("\x1b[38;5;250m"),
			Footer:    NewColor("\x1b[38;5;244m"),
			FooterKey: NewColor("\x1b[1;38;5;117m"),
			Separator: NewColor("\x1b[38;5;238m"),

			DialogBorder:  NewColor("\x1b[38;5;75m"),
			DialogTitle:   NewColor("\x1b[1;38;5;214m"),
			DialogContent: NewColor("\x1b[97m"),
			MenuSelection: NewColor("\x1b[48;5;24m"),
		},
	},
	"light": {
		Name: "light",
		Palette: Palette{
			Primary: NewColor("\x1b[30m"),
			Muted:   NewColor("\x1b[38;5;245m"),
			Accent:  NewColor("\x1b[38;5;166m"),

			Success: NewColor("\x1b[38;5;28m"),
			Warning: NewColor("\x1b[38;5;130m"),
			Error:   NewColor("\x1b[38;5;160m"),
			Info:    NewColor("\x1b[38;5;25m"),

			Directory:  NewColor("\x1b[1;38;5;25m"),
			Executable: NewColor("\x1b[38;5;28m"),
			Symlink:    NewColor("\x1b[38;5;30m"),
			Hidden:     NewColor("\x1b[38;5;249m"),
			Marked:     NewColor("\x1b[38;5;130m"),
			Cursor:     NewColor("\x1b[48;5;254m"),

			Header:    NewColor("\x1b[1;30m"),
			Status:    NewColor("\x1b[38;5;238m"),
			Footer:    NewColor("\x1b[38;5;245m"),
			FooterKey: NewColor("\x1b[1;38;5;25m"),
			Separator: NewColor("\x1b[38;5;250m"),

			DialogBorder:  NewColor("\x1b[38;5;25m"),
			DialogTitle:   NewColor("\x1b[1;38;5;166m"),
			DialogContent: NewColor("\x1b[30m"),
			MenuSelection: NewColor("\x1b[48;5;153m"),
		},
	},
	"monochrome": {
		Name: "monochrome",
		Palette: Palette{
			Primary: NewColor("\x1b[0m"),
			Muted:   NewColor("\x1b[2m"),
			Accent:  NewColor("\x1b[1m"),

			Success: NewColor("\x1b[1m"),
			Warning: NewColor("\x1b[1m"),
			Error:   NewColor("\x1b[1;4m"),
			Info:    NewColor("\x1b[0m"),

			Directory:  NewColor("\x1b[1m"),
			Executable: NewColor("\x1b[4m"),
			Symlink:    NewColor("\x1b[3m"),
			Hidden:     NewColor("\x1b[2m"),
			Marked:     NewColor("\x1b[1;4m"),
			Cursor:     NewColor("\x1b[7m"),

			Header:    NewColor("\x1b[1m"),
			Status:    NewColor("\x1b[0m"),
			Footer:    NewColor("\x1b[2m"),
			FooterKey: NewColor("\x1b[1m"),
			Separator: NewColor("\x1b[2m"),

			DialogBorder:  NewColor("\x1b[0m"),
			DialogTitle:   NewColor("\x1b[1m"),
			DialogContent: NewColor("\x1b[0m"),
			MenuSelection: NewColor("\x1b[7m"),
		},
	},
}

// Builtin returns a built-in theme by name, or nil if unknown.
func Builtin(name string) *Theme {
	return builtins[name]
}

// BuiltinNames returns the names of all built-in themes.
func BuiltinNames() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
