// ABOUTME: Overlay menus: bookmarks, recent projects, jobs, search results and help
// ABOUTME: Menus draw on the overlay layer; closing one clears the overlay

package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mauromedda/tfm/internal/fsys"
	"github.com/mauromedda/tfm/internal/jobs"
	"github.com/mauromedda/tfm/pkg/tui/component"
	"github.com/mauromedda/tfm/pkg/tui/key"
	"github.com/mauromedda/tfm/pkg/tui/terminal"
	"github.com/mauromedda/tfm/pkg/tui/width"
)

type menuKind int

const (
	menuNone menuKind = iota
	menuBookmarks
	menuProjects
	menuJobs
	menuSearch
	menuHelp
)

const recentProjects = 20

func (a *App) menuRows() int { return max(a.screen.Height()-6, 3) }

func (a *App) openMenu(kind menuKind, m *component.Menu) {
	a.menu, a.menuKind = m, kind
}

func (a *App) closeMenu() {
	a.menu, a.menuKind = nil, menuNone
	a.screen.ClearOverlay()
}

func (a *App) menuKey(ctx context.Context, k key.Key) {
	m := a.menu
	switch m.HandleKey(k) {
	case component.MenuClose:
		a.closeMenu()
	case component.MenuSelect:
		item, _ := m.Selected()
		kind := a.menuKind
		a.closeMenu()
		a.menuSelect(ctx, kind, item)
	case component.MenuDelete:
		item, _ := m.Selected()
		if err := a.menuDelete(ctx, item); err != nil {
			a.setError(err)
			return
		}
		if a.menuKind == menuJobs {
			a.refreshJobsMenu()
			return
		}
		m.RemoveSelected()
	}
}

func (a *App) menuSelect(ctx context.Context, kind menuKind, item component.MenuItem) {
	var err error
	switch kind {
	case menuBookmarks, menuProjects:
		err = a.chdir(ctx, item.Value)
	case menuSearch:
		err = a.reveal(ctx, item.Value)
	case menuJobs:
		a.showJob(ctx, item.Value)
	}
	if err != nil {
		a.setError(err)
	}
}

func (a *App) menuDelete(ctx context.Context, item component.MenuItem) error {
	switch a.menuKind {
	case menuBookmarks:
		if err := a.bookmarks.Remove(ctx, item.Label); err != nil {
			return err
		}
		a.setStatus("removed bookmark %q", item.Label)
	case menuProjects:
		if err := a.bookmarks.ForgetProject(ctx, item.Value); err != nil {
			return err
		}
		a.setStatus("forgot project %s", fsys.Abbrev(item.Value))
	case menuJobs:
		id, err := strconv.Atoi(item.Value)
		if err != nil {
			return err
		}
		if err := a.jobs.Cancel(id); err != nil {
			return err
		}
		a.setStatus("cancelling job #%d", id)
	}
	return nil
}

// reveal changes to the directory holding path and puts the cursor on it.
func (a *App) reveal(ctx context.Context, path string) error {
	if err := a.chdir(ctx, filepath.Dir(path)); err != nil {
		return err
	}
	if a.list.filter != "" {
		a.list.setFilter("")
	}
	if !a.list.selectName(filepath.Base(path)) {
		return fmt.Errorf("%s is not listed", filepath.Base(path))
	}
	return nil
}

func (a *App) openBookmarksMenu(ctx context.Context) {
	if a.bookmarks == nil {
		a.setError(errNoBookmarks)
		return
	}
	list, err := a.bookmarks.List(ctx)
	if err != nil {
		a.setError(err)
		return
	}
	items := make([]component.MenuItem, len(list))
	for i, b := range list {
		items[i] = component.MenuItem{Label: b.Name, Detail: fsys.Abbrev(b.Path), Value: b.Path}
	}
	m := component.NewMenu("Bookmarks", items, a.menuRows())
	m.Deletable = true
	a.openMenu(menuBookmarks, m)
}

func (a *App) openProjectsMenu(ctx context.Context) {
	if a.bookmarks == nil {
		a.setError(errNoBookmarks)
		return
	}
	list, err := a.bookmarks.Recent(ctx, recentProjects)
	if err != nil {
		a.setError(err)
		return
	}
	items := make([]component.MenuItem, len(list))
	for i, p := range list {
		items[i] = component.MenuItem{
			Label:  fsys.Abbrev(p.Path),
			Detail: fsys.FormatAge(p.LastVisit),
			Value:  p.Path,
		}
	}
	m := component.NewMenu("Recent projects", items, a.menuRows())
	m.Deletable = true
	a.openMenu(menuProjects, m)
}

func (a *App) jobItems() []component.MenuItem {
	now := time.Now()
	list := a.jobs.List()
	items := make([]component.MenuItem, len(list))
	for i, j := range list {
		items[i] = component.MenuItem{
			Label:  fmt.Sprintf("#%d %s", j.ID, j.Name),
			Detail: fmt.Sprintf("%s %s", j.Status, j.Duration(now).Round(time.Second)),
			Value:  strconv.Itoa(j.ID),
		}
	}
	return items
}

func (a *App) openJobsMenu() {
	m := component.NewMenu("Jobs", a.jobItems(), a.menuRows())
	m.Deletable = true
	a.openMenu(menuJobs, m)
}

// refreshJobsMenu updates the open jobs menu in place, keeping the selection.
func (a *App) refreshJobsMenu() {
	if a.menuKind != menuJobs {
		return
	}
	sel := a.menu.Index()
	a.menu.SetItems(a.jobItems())
	a.menu.Move(sel)
}

// showJob displays the status and output tail of a job in a modal dialog.
func (a *App) showJob(ctx context.Context, value string) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return
	}
	info, err := a.jobs.Get(id)
	if err != nil {
		a.setError(err)
		return
	}
	lines := []string{
		"command: " + info.Command,
		fmt.Sprintf("status:  %s (exit %d)", info.Status, info.ExitCode),
		"",
	}
	room := max(a.screen.Height()-2-2-len(lines)-2, 1)
	tail := info.Tail
	if len(tail) > room {
		tail = tail[len(tail)-room:]
	}
	for _, l := range tail {
		lines = append(lines, width.Sanitize(width.StripANSI(l)))
	}
	if info.Status == jobs.Running {
		lines = append(lines, "", "(still running)")
	}
	a.flow.ShowResult(ctx, fmt.Sprintf("Job #%d", info.ID), append(lines, "", "Press any key")...)
}

func (a *App) openHelpMenu() {
	var items []component.MenuItem
	for _, l := range a.keymap.HelpLines() {
		items = append(items, component.MenuItem{Label: l})
	}
	for _, n := range a.interp.Names() {
		items = append(items, component.MenuItem{Label: ":" + n, Detail: "user command"})
	}
	a.openMenu(menuHelp, component.NewMenu("Keys", items, a.menuRows()))
}

func (a *App) startSearch() {
	a.openPrompt("search: ", "", func(ctx context.Context, query string) {
		if query == "" {
			return
		}
		a.searchGen++
		gen, root := a.searchGen, a.list.dir
		a.setStatus("searching for %q…", query)
		go func() {
			defer terminal.RecoverGoroutine(a.term)
			res, err := a.searcher.Search(ctx, root, query)
			select {
			case a.searches <- searchDone{gen: gen, res: res, err: err}:
			case <-ctx.Done():
			}
		}()
	})
}

func (a *App) searchFinished(done searchDone) {
	if done.gen != a.searchGen {
		return
	}
	if done.err != nil {
		if !errors.Is(done.err, context.Canceled) {
			a.setError(fmt.Errorf("search: %w", done.err))
		}
		return
	}
	res := done.res
	if len(res.Hits) == 0 {
		a.setStatus("no results for %q", res.Query)
		return
	}
	items := make([]component.MenuItem, len(res.Hits))
	for i, h := range res.Hits {
		items[i] = component.MenuItem{
			Label:  h.Path,
			Detail: h.Source.String(),
			Value:  filepath.Join(res.Root, h.Path),
		}
	}
	title := fmt.Sprintf("Search: %s (%d)", res.Query, len(res.Hits))
	if res.Truncated {
		title = fmt.Sprintf("Search: %s (first %d)", res.Query, len(res.Hits))
	}
	if a.menu != nil {
		a.closeMenu()
	}
	a.openMenu(menuSearch, component.NewMenu(title, items, a.menuRows()))
	a.setStatus("%d results", len(res.Hits))
}
