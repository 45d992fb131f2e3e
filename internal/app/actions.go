// ABOUTME: Key dispatch for the main view: prompt and menu keys first, then bound actions
// ABOUTME: Deletion and quitting go through the blocking modal confirmation flows

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mauromedda/tfm/internal/commands"
	"github.com/mauromedda/tfm/internal/config"
	"github.com/mauromedda/tfm/internal/fsys"
	"github.com/mauromedda/tfm/internal/jobs"
	"github.com/mauromedda/tfm/internal/log"
	"github.com/mauromedda/tfm/pkg/tui/component"
	"github.com/mauromedda/tfm/pkg/tui/key"
	"github.com/mauromedda/tfm/pkg/tui/terminal"
)

func (a *App) handleKey(ctx context.Context, k key.Key) {
	if a.prompt != nil {
		a.promptKey(ctx, k)
		return
	}
	if a.menu != nil {
		a.menuKey(ctx, k)
		return
	}
	a.status, a.statusErr = "", false
	a.do(ctx, a.keymap.ActionForKey(k))
}

func (a *App) do(ctx context.Context, action config.KeyAction) {
	page := max(a.screen.Height()-4, 1)
	switch action {
	case config.ActionUp:
		a.list.move(-1)
	case config.ActionDown:
		a.list.move(1)
	case config.ActionTop:
		a.list.move(-a.list.len())
	case config.ActionBottom:
		a.list.move(a.list.len())
	case config.ActionPageUp:
		a.list.move(-page)
	case config.ActionPageDown:
		a.list.move(page)
	case config.ActionParent:
		a.goParent(ctx)
	case config.ActionOpen:
		a.openCurrent(ctx)
	case config.ActionToggleHidden:
		a.setHidden(!a.showHidden)
	case config.ActionMark:
		a.list.toggleMark()
		a.list.move(1)
	case config.ActionFilter:
		a.startFilter()
	case config.ActionDelete:
		a.deleteSelection(ctx)
	case config.ActionAddBookmark:
		a.startAddBookmark()
	case config.ActionBookmarks:
		a.openBookmarksMenu(ctx)
	case config.ActionProjects:
		a.openProjectsMenu(ctx)
	case config.ActionRunJob:
		a.runCurrentAsJob()
	case config.ActionJobs:
		a.openJobsMenu()
	case config.ActionSearch:
		a.startSearch()
	case config.ActionYank:
		a.yank()
	case config.ActionCommand:
		a.startCommand()
	case config.ActionHelp:
		a.openHelpMenu()
	case config.ActionRedraw:
		a.previewer.Forget()
		a.renderer.Invalidate()
	case config.ActionQuit:
		a.requestQuit(ctx)
	}
}

func (a *App) requestQuit(ctx context.Context) {
	if a.settings.ConfirmOnExit() && !a.flow.ConfirmExit(ctx) {
		return
	}
	a.quit = true
}

func (a *App) goParent(ctx context.Context) {
	parent := filepath.Dir(a.list.dir)
	if parent == a.list.dir {
		return
	}
	if err := a.chdir(ctx, parent); err != nil {
		a.setError(err)
	}
}

func (a *App) openCurrent(ctx context.Context) {
	e, ok := a.list.current()
	if !ok {
		return
	}
	if err := a.open(ctx, e.Path); err != nil {
		a.setError(err)
	}
}

// open enters a directory or edits a file.
func (a *App) open(ctx context.Context, path string) error {
	path = fsys.Resolve(path, a.list.dir)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return a.chdir(ctx, path)
	}
	cmd := a.settings.Editor + " " + commands.ShellQuote(path)
	if err := a.shell(ctx, cmd, a.list.dir); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	a.reload()
	return nil
}

// shell runs command in the foreground with terminal reads paused. Keys
// queued before the child exits are discarded so nothing typed for the
// child is replayed as a file-manager action.
func (a *App) shell(ctx context.Context, command, dir string) error {
	if a.input != nil {
		if !a.input.Pause() {
			log.Debug("input: pending read not cancelled before %q", command)
		}
		defer a.input.Resume()
	}
	err := a.runShell(ctx, command, dir)
	a.discardKeys()
	return err
}

func (a *App) discardKeys() {
	for {
		select {
		case _, ok := <-a.keys:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// foreground hands the terminal to command and takes it back afterwards.
func (a *App) foreground(ctx context.Context, command, dir string) error {
	defer a.renderer.Invalidate()
	return terminal.Suspend(a.term, func() error {
		cmd := exec.CommandContext(ctx, a.settings.Shell, "-c", command)
		cmd.Dir = dir
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		return cmd.Run()
	})
}

func (a *App) setHidden(show bool) {
	a.showHidden = show
	a.previewer.SetShowHidden(show)
	a.reload()
	if show {
		a.setStatus("showing hidden files")
	} else {
		a.setStatus("hiding hidden files")
	}
}

func (a *App) deleteSelection(ctx context.Context) {
	sel := a.list.selection()
	if len(sel) == 0 {
		return
	}
	names := make([]string, len(sel))
	paths := make([]string, len(sel))
	for i, e := range sel {
		names[i], paths[i] = e.Name, e.Path
	}
	if !a.flow.ConfirmDeletion(ctx, names) {
		a.setStatus("deletion cancelled")
		return
	}
	removed, errs := fsys.Remove(paths)
	log.Info("deleted %d of %d entries in %s", removed, len(paths), a.list.dir)
	a.reload()
	a.flow.ShowDeletionResult(ctx, removed, len(paths), errs)
	a.setStatus("deleted %d of %d", removed, len(paths))
}

func (a *App) runCurrentAsJob() {
	e, ok := a.list.current()
	if !ok || e.Dir {
		return
	}
	cmd := commands.ShellQuote(e.Path)
	if !e.Executable() {
		cmd = a.settings.Shell + " " + cmd
	}
	a.submitJob(e.Name, cmd)
}

func (a *App) submitJob(name, command string) {
	spec := jobsSpec(command, a.list.dir)
	spec.Name = name
	info, err := a.jobs.Submit(spec)
	if err != nil {
		a.setError(err)
		return
	}
	a.setStatus("job #%d started: %s", info.ID, info.Name)
}

func (a *App) yank() {
	sel := a.list.selection()
	if len(sel) == 0 {
		return
	}
	paths := make([]string, len(sel))
	for i, e := range sel {
		paths[i] = e.Path
	}
	if err := a.clip.Write(strings.Join(paths, "\n")); err != nil {
		a.setError(err)
		return
	}
	if len(paths) == 1 {
		a.setStatus("copied %s", fsys.Abbrev(paths[0]))
	} else {
		a.setStatus("copied %d paths", len(paths))
	}
}

func (a *App) openPrompt(label, initial string, submit func(context.Context, string)) {
	a.prompt = component.NewPrompt(label, initial)
	a.onSubmit, a.onEdit, a.onAbort = submit, nil, nil
}

func (a *App) promptKey(ctx context.Context, k key.Key) {
	p := a.prompt
	switch p.HandleKey(k) {
	case component.PromptSubmitted:
		submit := a.onSubmit
		a.prompt = nil
		if submit != nil {
			submit(ctx, p.Text())
		}
	case component.PromptAborted:
		abort := a.onAbort
		a.prompt = nil
		if abort != nil {
			abort()
		}
	default:
		if a.onEdit != nil {
			a.onEdit(p.Text())
		}
	}
}

func (a *App) startFilter() {
	before := a.list.filter
	a.openPrompt("/", before, func(context.Context, string) {})
	a.onEdit = a.list.setFilter
	a.onAbort = func() { a.list.setFilter(before) }
}

func (a *App) startAddBookmark() {
	if a.bookmarks == nil {
		a.setError(errNoBookmarks)
		return
	}
	dir := a.list.dir
	a.openPrompt("bookmark name: ", filepath.Base(dir), func(ctx context.Context, name string) {
		if err := a.bookmarks.Add(ctx, strings.TrimSpace(name), dir); err != nil {
			a.setError(err)
			return
		}
		a.setStatus("bookmarked %s as %q", fsys.Abbrev(dir), strings.TrimSpace(name))
	})
}

func (a *App) startCommand() {
	a.openPrompt(":", "", func(ctx context.Context, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		var err error
		if isCommandName(a.interp, text) {
			err = a.interp.Run(a.env(ctx), text)
		} else {
			err = a.interp.Exec(a.env(ctx), text)
		}
		if err != nil {
			a.setError(err)
		}
	})
}

func isCommandName(in *commands.Interpreter, text string) bool {
	for _, n := range in.Names() {
		if n == text {
			return true
		}
	}
	return false
}

var errNoBookmarks = errors.New("bookmarks are unavailable")

func jobsSpec(command, dir string) jobs.Spec {
	return jobs.Spec{Command: command, Dir: dir}
}
