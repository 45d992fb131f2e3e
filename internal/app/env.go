// ABOUTME: commands.Env implementation binding user commands to the running file manager

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/mauromedda/tfm/internal/commands"
	"github.com/mauromedda/tfm/internal/fsys"
)

type appEnv struct {
	ctx context.Context
	a   *App
}

var _ commands.Env = appEnv{}

func (a *App) env(ctx context.Context) appEnv { return appEnv{ctx: ctx, a: a} }

func (e appEnv) Context() commands.Context {
	c := commands.Context{Cwd: e.a.list.dir, Getenv: os.Getenv}
	if cur, ok := e.a.list.current(); ok {
		c.Current = cur.Path
	}
	for _, m := range e.a.list.markedEntries() {
		c.Marked = append(c.Marked, m.Path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		c.Home = home
	}
	return c
}

func (e appEnv) Chdir(path string) error {
	return e.a.chdir(e.ctx, fsys.Resolve(path, e.a.list.dir))
}

func (e appEnv) Open(path string) error { return e.a.open(e.ctx, path) }

func (e appEnv) Shell(command string) error {
	if err := e.a.shell(e.ctx, command, e.a.list.dir); err != nil {
		return err
	}
	e.a.reload()
	return nil
}

func (e appEnv) Job(command string) error {
	info, err := e.a.jobs.Submit(jobsSpec(command, e.a.list.dir))
	if err != nil {
		return err
	}
	e.a.setStatus("job #%d started: %s", info.ID, info.Name)
	return nil
}

func (e appEnv) AddBookmark(name string) error {
	if e.a.bookmarks == nil {
		return errNoBookmarks
	}
	if err := e.a.bookmarks.Add(e.ctx, name, e.a.list.dir); err != nil {
		return err
	}
	e.a.setStatus("bookmarked %s as %q", fsys.Abbrev(e.a.list.dir), name)
	return nil
}

func (e appEnv) Jump(name string) error {
	if e.a.bookmarks == nil {
		return errNoBookmarks
	}
	b, err := e.a.bookmarks.Get(e.ctx, name)
	if err != nil {
		return fmt.Errorf("bookmark %q: %w", name, err)
	}
	return e.a.chdir(e.ctx, b.Path)
}

func (e appEnv) Hidden() bool { return e.a.showHidden }

func (e appEnv) SetHidden(show bool) { e.a.setHidden(show) }

func (e appEnv) SetFilter(pattern string) { e.a.list.setFilter(pattern) }

func (e appEnv) MarkAll(marked bool) { e.a.list.markAll(marked) }

func (e appEnv) Echo(text string) { e.a.setStatus("%s", text) }
