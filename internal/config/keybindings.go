// ABOUTME: File-manager actions and their default key bindings
// ABOUTME: Overrides come from the keybindings section of config.yaml

package config

import (
	"fmt"
	"maps"
	"slices"
	"sort"
)

// KeyAction represents an action that can be bound to keys.
type KeyAction string

const (
	ActionUp           KeyAction = "up"
	ActionDown         KeyAction = "down"
	ActionParent       KeyAction = "parent"
	ActionOpen         KeyAction = "open"
	ActionTop          KeyAction = "top"
	ActionBottom       KeyAction = "bottom"
	ActionPageUp       KeyAction = "page_up"
	ActionPageDown     KeyAction = "page_down"
	ActionToggleHidden KeyAction = "toggle_hidden"
	ActionMark         KeyAction = "mark"
	ActionFilter       KeyAction = "filter"
	ActionDelete       KeyAction = "delete"
	ActionAddBookmark  KeyAction = "add_bookmark"
	ActionBookmarks    KeyAction = "bookmarks"
	ActionProjects     KeyAction = "projects"
	ActionRunJob       KeyAction = "run_job"
	ActionJobs         KeyAction = "jobs"
	ActionSearch       KeyAction = "search"
	ActionYank         KeyAction = "yank"
	ActionCommand      KeyAction = "command"
	ActionHelp         KeyAction = "help"
	ActionRedraw       KeyAction = "redraw"
	ActionQuit         KeyAction = "quit"
)

// Keybindings maps each action to the key names that trigger it.
type Keybindings struct {
	Bindings map[KeyAction][]string
}

// NewKeybindings creates Keybindings holding the defaults.
func NewKeybindings() *Keybindings {
	kb := &Keybindings{Bindings: make(map[KeyAction][]string)}
	kb.setDefaultBindings()
	return kb
}

func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionUp] = []string{"up", "k"}
	kb.Bindings[ActionDown] = []string{"down", "j"}
	kb.Bindings[ActionParent] = []string{"left", "h", "backspace"}
	kb.Bindings[ActionOpen] = []string{"right", "l", "enter"}
	kb.Bindings[ActionTop] = []string{"g", "home"}
	kb.Bindings[ActionBottom] = []string{"G", "end"}
	kb.Bindings[ActionPageUp] = []string{"pgup"}
	kb.Bindings[ActionPageDown] = []string{"pgdown"}
	kb.Bindings[ActionToggleHidden] = []string{"."}
	kb.Bindings[ActionMark] = []string{"space"}
	kb.Bindings[ActionFilter] = []string{"/"}
	kb.Bindings[ActionDelete] = []string{"d", "delete"}
	kb.Bindings[ActionAddBookmark] = []string{"b"}
	kb.Bindings[ActionBookmarks] = []string{"'"}
	kb.Bindings[ActionProjects] = []string{"p"}
	kb.Bindings[ActionRunJob] = []string{"x"}
	kb.Bindings[ActionJobs] = []string{"J"}
	kb.Bindings[ActionSearch] = []string{"s"}
	kb.Bindings[ActionYank] = []string{"y"}
	kb.Bindings[ActionCommand] = []string{":"}
	kb.Bindings[ActionHelp] = []string{"?"}
	kb.Bindings[ActionRedraw] = []string{"ctrl+l"}
	kb.Bindings[ActionQuit] = []string{"q", "ctrl+c"}
}

// Actions returns every known action in a stable order.
func (kb *Keybindings) Actions() []KeyAction {
	actions := slices.Collect(maps.Keys(kb.Bindings))
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}

// Apply replaces the bindings of each action named in overrides. Unknown
// action names are reported and skipped.
func (kb *Keybindings) Apply(overrides map[string][]string) error {
	var unknown []string
	for name, keys := range overrides {
		action := KeyAction(name)
		if _, ok := kb.Bindings[action]; !ok {
			unknown = append(unknown, name)
			continue
		}
		kb.Bindings[action] = slices.Clone(keys)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown keybinding actions: %v", unknown)
	}
	return nil
}
