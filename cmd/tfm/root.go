// ABOUTME: Root cobra command: runs the interactive file manager in a directory
// ABOUTME: Wires settings, logging, the bookmark store, the job manager and the config watcher into the app

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mauromedda/tfm/internal/app"
	"github.com/mauromedda/tfm/internal/bookmark"
	"github.com/mauromedda/tfm/internal/config"
	"github.com/mauromedda/tfm/internal/jobs"
	"github.com/mauromedda/tfm/internal/log"
	"github.com/mauromedda/tfm/internal/watch"
	"github.com/mauromedda/tfm/pkg/tui/terminal"
)

const shutdownTimeout = 5 * time.Second

type rootFlags struct {
	theme   string
	hidden  bool
	verbose bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "tfm [dir]",
		Short:         "tfm – a terminal file manager",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Browse the current directory
  tfm

  # Start somewhere else, showing dotfiles
  tfm --hidden ~/src

  # Manage bookmarks from scripts
  tfm bookmarks add work ~/src/work
  tfm bookmarks export > bookmarks.json
`),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				log.SetLevel(log.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runTUI(cmd.Context(), dir, flags)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug messages")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "Theme name or theme file (overrides config)")
	cmd.Flags().BoolVar(&flags.hidden, "hidden", false, "Show hidden files")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newBookmarksCmd())
	cmd.AddCommand(newJobsCmd())
	cmd.AddCommand(newThemesCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tfm %s (%s) built %s\n", version, commit, date)
		},
	}
}

func runTUI(ctx context.Context, dir string, flags rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil {
		return err
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	settings, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flags.theme != "" {
		settings.Theme = flags.theme
	}
	if flags.hidden {
		settings.ShowHidden = true
	}

	term := terminal.NewProcessTerminal(os.Stdin, os.Stdout)
	if !term.IsTerminal() {
		return errors.New("tfm needs an interactive terminal")
	}

	// The TUI owns the terminal; logs go to a file while it runs.
	if err := config.EnsureDir(config.GlobalDir()); err != nil {
		return err
	}
	logFile, err := log.OpenFile(config.LogFile())
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer logFile.Close()
	log.Info("tfm %s starting in %s", version, dir)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var marks app.Bookmarks
	store, err := bookmark.Open(ctx, config.DatabaseFile())
	if err != nil {
		log.Warn("bookmarks disabled: %v", err)
	} else {
		defer store.Close()
		marks = store
	}

	watcher, err := watch.New()
	if err != nil {
		log.Warn("file watching disabled: %v", err)
		watcher = nil
	} else {
		defer watcher.Close()
		for _, f := range []string{config.GlobalConfigFile(), config.ProjectConfigFile(dir)} {
			if err := watcher.WatchFile(f); err != nil {
				log.Debug("not watching %s: %v", f, err)
			}
		}
	}

	manager := jobs.New(ctx, jobs.Options{
		Shell:       settings.Shell,
		HistoryPath: config.JobHistoryFile(),
	})

	a, err := app.New(app.Deps{
		Terminal:    term,
		Settings:    settings,
		Version:     version,
		Dir:         dir,
		Bookmarks:   marks,
		Jobs:        manager,
		Watcher:     watcher,
		ProjectRoot: dir,
	})
	if err != nil {
		_ = manager.Shutdown(context.Background())
		return err
	}
	runErr := a.Run(ctx)
	if err := a.Close(shutdownTimeout); err != nil {
		log.Warn("stopping jobs: %v", err)
	}
	log.Info("tfm exiting")
	return runErr
}
