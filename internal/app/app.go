// ABOUTME: The interactive file manager: wiring, the UI event loop and shutdown
// ABOUTME: One goroutine owns the Screen; jobs, search, watch and resize events reach it through channels

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mauromedda/tfm/internal/bookmark"
	"github.com/mauromedda/tfm/internal/commands"
	"github.com/mauromedda/tfm/internal/config"
	"github.com/mauromedda/tfm/internal/fsys"
	"github.com/mauromedda/tfm/internal/jobs"
	"github.com/mauromedda/tfm/internal/keybindings"
	"github.com/mauromedda/tfm/internal/log"
	"github.com/mauromedda/tfm/internal/preview"
	"github.com/mauromedda/tfm/internal/search"
	"github.com/mauromedda/tfm/internal/watch"
	tuipkg "github.com/mauromedda/tfm/pkg/tui"
	"github.com/mauromedda/tfm/pkg/tui/clipboard"
	"github.com/mauromedda/tfm/pkg/tui/component"
	"github.com/mauromedda/tfm/pkg/tui/dialog"
	"github.com/mauromedda/tfm/pkg/tui/input"
	"github.com/mauromedda/tfm/pkg/tui/key"
	"github.com/mauromedda/tfm/pkg/tui/modal"
	"github.com/mauromedda/tfm/pkg/tui/screen"
	"github.com/mauromedda/tfm/pkg/tui/terminal"
	"github.com/mauromedda/tfm/pkg/tui/theme"
)

// Bookmarks is the persistence the app needs for bookmarks and projects.
type Bookmarks interface {
	Add(ctx context.Context, name, path string) error
	Remove(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (bookmark.Bookmark, error)
	List(ctx context.Context) ([]bookmark.Bookmark, error)
	Touch(ctx context.Context, dir string, markers []string) (bool, error)
	Recent(ctx context.Context, n int) ([]bookmark.Project, error)
	ForgetProject(ctx context.Context, path string) error
}

// Deps bundles everything the App is built from. Bookmarks, Watcher and
// Clipboard are optional.
type Deps struct {
	Terminal  terminal.Terminal
	Settings  *config.Settings
	Version   string
	Dir       string
	Bookmarks Bookmarks
	Jobs      *jobs.Manager
	Searcher  *search.Searcher
	Watcher   *watch.Watcher
	Clipboard clipboard.Writer
	// Keys replaces the terminal input reader; used by tests.
	Keys <-chan key.Key
	// ProjectRoot is where project settings are loaded from on reload.
	ProjectRoot string
}

type searchDone struct {
	gen int
	res search.Results
	err error
}

// App is the running file manager.
type App struct {
	term     terminal.Terminal
	settings *config.Settings
	version  string

	bookmarks Bookmarks
	jobs      *jobs.Manager
	searcher  *search.Searcher
	watcher   *watch.Watcher
	clip      clipboard.Writer
	keymap    *keybindings.Manager
	interp    *commands.Interpreter
	previewer *preview.Previewer

	reader   *input.Reader
	keys     <-chan key.Key
	renderer *tuipkg.Renderer
	painter  *dialog.Renderer
	screen   *screen.Screen
	flow     *modal.Flow
	palette  theme.Palette

	list       *listing
	showHidden bool

	status    string
	statusErr bool

	prompt    *component.Prompt
	onSubmit  func(ctx context.Context, text string)
	onEdit    func(text string)
	onAbort   func()
	menu      *component.Menu
	menuKind  menuKind
	resized   chan [2]int
	searches  chan searchDone
	searchGen int
	quit      bool

	projectRoot string
	input       inputGate
	runShell    func(ctx context.Context, command, dir string) error
}

// inputGate stops terminal reads while a foreground child owns stdin.
type inputGate interface {
	Pause() bool
	Resume()
}

// New builds an App. Terminal, Settings and Jobs are required.
func New(deps Deps) (*App, error) {
	if deps.Terminal == nil || deps.Settings == nil || deps.Jobs == nil {
		return nil, errors.New("app: terminal, settings and jobs are required")
	}
	s := deps.Settings

	keymap, err := keybindings.New(s.Keybindings)
	if err != nil {
		log.Warn("keybindings: %v", err)
	}
	for _, c := range keymap.Conflicts() {
		log.Warn("keybindings: %q is bound to %v", c.Key, c.Actions)
	}
	interp := commands.New(s.Commands)
	if err := interp.Validate(); err != nil {
		log.Warn("commands: %v", err)
	}

	dir := deps.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return nil, err
	}

	searcher := deps.Searcher
	if searcher == nil {
		searcher = search.New(search.Options{
			NameTool:    s.Search.NameTool,
			ContentTool: s.Search.ContentTool,
			MaxResults:  s.Search.MaxResults,
		})
	}

	a := &App{
		term:        deps.Terminal,
		settings:    s,
		version:     deps.Version,
		bookmarks:   deps.Bookmarks,
		jobs:        deps.Jobs,
		searcher:    searcher,
		watcher:     deps.Watcher,
		clip:        deps.Clipboard,
		keymap:      keymap,
		interp:      interp,
		keys:        deps.Keys,
		renderer:    tuipkg.NewRenderer(deps.Terminal),
		list:        newListing(),
		showHidden:  s.ShowHidden,
		resized:     make(chan [2]int, 1),
		searches:    make(chan searchDone, 1),
		projectRoot: deps.ProjectRoot,
	}
	if a.clip == nil {
		a.clip = clipboard.System{Term: deps.Terminal}
	}
	if a.keys == nil {
		a.reader = input.NewReader(deps.Terminal.Input(), 64)
		a.keys = a.reader.Keys()
		a.input = a.reader
	}
	a.runShell = a.foreground
	a.previewer = preview.New(preview.Options{
		MaxBytes:      s.Preview.MaxBytes,
		MarkdownStyle: s.Preview.MarkdownStyle,
		Images:        s.ImagesEnabled(),
		ShowHidden:    a.showHidden,
	})
	a.applyTheme(s.Theme)

	w, h, err := deps.Terminal.Size()
	if err != nil || w <= 0 || h <= 0 {
		w, h = 80, 24
	}
	a.resize(w, h)

	if err := a.chdir(context.Background(), dir); err != nil {
		return nil, err
	}
	return a, nil
}

// resize replaces the Screen and the geometry the dialogs are computed for.
func (a *App) resize(w, h int) {
	a.screen = screen.New(w, h)
	if a.painter == nil {
		a.painter = dialog.NewRenderer(w, h)
	} else {
		a.painter.Resize(w, h)
	}
	a.flow = modal.New(input.ChannelReader(a.keys), a.painter, a, a.redraw,
		modal.WithScheme(a.palette.DialogScheme()),
		modal.WithCaseSensitive(a.settings.ConfirmCaseSensitive),
	)
	if a.menu != nil {
		a.menu.Forget()
	}
	a.renderer.Invalidate()
}

// Screen implements modal.Canvas.
func (a *App) Screen() *screen.Screen { return a.screen }

// Present implements modal.Canvas: it flushes the Screen to the terminal.
func (a *App) Present() error { return a.renderer.Flush(a.screen) }

func (a *App) applyTheme(ref string) {
	t, err := resolveTheme(ref)
	if err != nil {
		log.Warn("theme %q: %v", ref, err)
		t = theme.Builtin("default")
	}
	theme.Set(t)
	a.palette = t.Palette
	if a.painter != nil {
		a.resize(a.screen.Width(), a.screen.Height())
	}
}

// resolveTheme accepts a builtin name, a file path, or the name of a file
// in the themes directory.
func resolveTheme(ref string) (*theme.Theme, error) {
	if t := theme.Builtin(ref); t != nil || ref == "" {
		return theme.Resolve(ref)
	}
	if _, err := os.Stat(ref); err == nil {
		return theme.LoadFile(ref)
	}
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(config.ThemesDir(), ref+ext)
		if _, err := os.Stat(p); err == nil {
			return theme.LoadFile(p)
		}
	}
	return theme.Resolve(ref)
}

// Run takes over the terminal and processes events until the user quits
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := terminal.EnterFullscreen(a.term); err != nil {
		return fmt.Errorf("entering fullscreen: %w", err)
	}
	defer func() {
		if lerr := terminal.LeaveFullscreen(a.term); lerr != nil && err == nil {
			err = lerr
		}
	}()
	defer terminal.RestoreOnPanic(a.term)

	if a.reader != nil {
		go func() {
			defer terminal.RecoverGoroutine(a.term)
			if err := a.reader.Run(ctx); err != nil {
				log.Error("input: %v", err)
			}
		}()
	}
	if a.watcher != nil {
		go func() {
			defer terminal.RecoverGoroutine(a.term)
			if err := a.watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("watch: %v", err)
			}
		}()
	}
	a.term.OnResize(func(w, h int) {
		select {
		case <-a.resized:
		default:
		}
		a.resized <- [2]int{w, h}
	})

	a.redraw()
	return a.loop(ctx)
}

func (a *App) loop(ctx context.Context) error {
	var watchEvents <-chan watch.Event
	if a.watcher != nil {
		watchEvents = a.watcher.Events()
	}
	tick := time.NewTicker(time.Second)
	defer tick.Stop()

	for !a.quit {
		select {
		case <-ctx.Done():
			return nil
		case k, ok := <-a.keys:
			if !ok {
				return nil
			}
			a.handleKey(ctx, k)
		case sz := <-a.resized:
			a.resize(sz[0], sz[1])
		case ev := <-a.jobs.Events():
			a.jobFinished(ev.Job)
		case done := <-a.searches:
			a.searchFinished(done)
		case ev := <-watchEvents:
			a.watchEvent(ctx, ev)
		case <-tick.C:
			// Job durations in the footer and jobs menu keep moving.
			if a.jobs.Running() == 0 {
				continue
			}
			if a.menuKind == menuJobs {
				a.refreshJobsMenu()
			}
		}
		a.redraw()
	}
	return nil
}

func (a *App) setStatus(format string, args ...any) {
	a.status, a.statusErr = fmt.Sprintf(format, args...), false
}

func (a *App) setError(err error) {
	log.Warn("%v", err)
	a.status, a.statusErr = err.Error(), true
}

// chdir switches the listing to dir and records project visits.
func (a *App) chdir(ctx context.Context, dir string) error {
	prev := a.list.dir
	if err := a.list.load(dir, a.showHidden); err != nil {
		return fmt.Errorf("opening %s: %w", dir, err)
	}
	if prev != "" && prev != dir && filepath.Dir(prev) == dir {
		// Going up keeps the cursor on the directory we came from.
		a.list.selectName(filepath.Base(prev))
	}
	if prev == dir {
		return nil
	}
	if a.watcher != nil {
		if err := a.watcher.WatchDir(dir); err != nil {
			log.Warn("watching %s: %v", dir, err)
		}
	}
	if a.bookmarks != nil {
		if _, err := a.bookmarks.Touch(ctx, dir, fsys.ProjectMarkers); err != nil {
			log.Warn("recording project visit: %v", err)
		}
	}
	return nil
}

func (a *App) reload() {
	if err := a.list.load(a.list.dir, a.showHidden); err != nil {
		a.setError(err)
	}
	a.previewer.Forget()
}

func (a *App) watchEvent(ctx context.Context, ev watch.Event) {
	switch ev.Kind {
	case watch.KindDir:
		if ev.Path == a.list.dir {
			a.reload()
		}
	case watch.KindFile:
		a.reloadSettings(ctx)
	}
}

// reloadSettings re-reads the configuration files and applies the theme,
// key bindings and user commands.
func (a *App) reloadSettings(_ context.Context) {
	s, err := config.Load(a.projectRoot)
	if err != nil {
		a.setError(fmt.Errorf("reloading config: %w", err))
		return
	}
	a.settings = s
	if km, err := keybindings.New(s.Keybindings); err != nil {
		a.setError(err)
	} else {
		a.keymap = km
	}
	a.interp = commands.New(s.Commands)
	a.applyTheme(s.Theme)
	a.setStatus("configuration reloaded")
}

func (a *App) jobFinished(info jobs.Info) {
	if info.Status == jobs.Succeeded {
		a.setStatus("job #%d %s: %s", info.ID, info.Status, info.Name)
	} else {
		a.status, a.statusErr = fmt.Sprintf("job #%d %s (exit %d): %s", info.ID, info.Status, info.ExitCode, info.Name), true
	}
	if a.menuKind == menuJobs {
		a.refreshJobsMenu()
	}
	a.reload()
}

// shutdown stops background work. It is called by the owner of the App
// after Run returns.
func (a *App) shutdown(ctx context.Context) error {
	return a.jobs.Shutdown(ctx)
}

// Close stops background jobs, waiting at most timeout.
func (a *App) Close(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return a.shutdown(ctx)
}
