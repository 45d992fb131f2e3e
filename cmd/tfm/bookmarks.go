// ABOUTME: bookmarks subcommand: list, add, remove and export bookmarks outside the TUI
// ABOUTME: list renders a lipgloss table; export writes JSON for scripts

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mauromedda/tfm/internal/bookmark"
	"github.com/mauromedda/tfm/internal/config"
	"github.com/mauromedda/tfm/internal/fsys"
)

func newBookmarksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarks",
	}
	cmd.AddCommand(newBookmarksListCmd())
	cmd.AddCommand(newBookmarksAddCmd())
	cmd.AddCommand(newBookmarksRmCmd())
	cmd.AddCommand(newBookmarksExportCmd())
	return cmd
}

// withStore opens the shared database for the duration of fn.
func withStore(ctx context.Context, fn func(*bookmark.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := bookmark.Open(ctx, config.DatabaseFile())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newBookmarksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookmarks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(s *bookmark.Store) error {
				marks, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(marks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks.")
					return nil
				}
				rows := make([][]string, 0, len(marks))
				for _, b := range marks {
					rows = append(rows, []string{b.Name, fsys.Abbrev(b.Path), fsys.FormatAge(b.Created)})
				}
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("NAME", "PATH", "ADDED").
					Rows(rows...)
				fmt.Fprintln(cmd.OutOrStdout(), t.Render())
				return nil
			})
		},
	}
}

func newBookmarksAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME [PATH]",
		Short: "Bookmark a directory (default: the current one)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 2 {
				path = fsys.ExpandHome(args[1])
			}
			path, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", path)
			}
			return withStore(cmd.Context(), func(s *bookmark.Store) error {
				if err := s.Add(cmd.Context(), args[0], path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s as %q\n", fsys.Abbrev(path), args[0])
				return nil
			})
		},
	}
}

func newBookmarksRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove a bookmark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(s *bookmark.Store) error {
				if err := s.Remove(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[0])
				return nil
			})
		},
	}
}

func newBookmarksExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print bookmarks as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(s *bookmark.Store) error {
				marks, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if marks == nil {
					marks = []bookmark.Bookmark{}
				}
				data, err := json.MarshalIndent(marks, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}
