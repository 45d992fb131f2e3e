// ABOUTME: themes subcommand: lists built-in themes and theme files in the themes directory
// ABOUTME: The configured theme is marked with an asterisk

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mauromedda/tfm/internal/config"
	"github.com/mauromedda/tfm/pkg/tui/theme"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			settings, err := config.Load(wd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			mark := func(name string) string {
				if name == settings.Theme {
					return "*"
				}
				return " "
			}
			for _, name := range theme.BuiltinNames() {
				fmt.Fprintf(out, "%s %s\n", mark(name), name)
			}
			for _, name := range userThemes(config.ThemesDir()) {
				fmt.Fprintf(out, "%s %s (user)\n", mark(name), name)
			}
			return nil
		},
	}
}

// userThemes returns the names of *.yaml and *.yml files in dir.
func userThemes(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(names)
	return names
}
