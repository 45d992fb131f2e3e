// ABOUTME: Keybindings manager with O(1) key-to-action lookup
// ABOUTME: Normalises configured key names through key.ParseName and reports conflicts

package keybindings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mauromedda/tfm/internal/config"
	"github.com/mauromedda/tfm/pkg/tui/key"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []config.KeyAction
}

// Manager provides O(1) key-to-action lookup from merged keybindings.
type Manager struct {
	bindings *config.Keybindings
	lookup   map[string]config.KeyAction // "ctrl+l" → ActionRedraw
	invalid  []string
}

// New creates a Manager from the defaults overridden by the keybindings
// section of the settings. The error lists unknown actions and
// unparseable key names; the Manager is usable either way.
func New(overrides map[string][]string) (*Manager, error) {
	kb := config.NewKeybindings()
	applyErr := kb.Apply(overrides)
	m := NewFromBindings(kb)
	if len(m.invalid) > 0 {
		return m, fmt.Errorf("invalid key names: %s", strings.Join(m.invalid, ", "))
	}
	return m, applyErr
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// ActionForKey returns the action bound to the given key, or "" if unbound.
func (m *Manager) ActionForKey(k key.Key) config.KeyAction {
	return m.lookup[k.String()]
}

// Keys returns the configured key names for action.
func (m *Manager) Keys(action config.KeyAction) []string {
	return m.bindings.Bindings[action]
}

// Conflicts detects keys bound to multiple actions, sorted by key.
func (m *Manager) Conflicts() []ConflictInfo {
	keyActions := make(map[string][]config.KeyAction)
	for _, action := range m.bindings.Actions() {
		for _, name := range m.bindings.Bindings[action] {
			if k, ok := key.ParseName(name); ok {
				keyActions[k.String()] = append(keyActions[k.String()], action)
			}
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range keyActions {
		if len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Key < conflicts[j].Key })
	return conflicts
}

// HelpLines returns one "keys  action" line per action for the help menu.
func (m *Manager) HelpLines() []string {
	actions := m.bindings.Actions()
	lines := make([]string, 0, len(actions))
	for _, action := range actions {
		keys := m.bindings.Bindings[action]
		if len(keys) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-16s %s", strings.Join(keys, ", "), strings.ReplaceAll(string(action), "_", " ")))
	}
	return lines
}

func (m *Manager) buildLookup() {
	m.lookup = make(map[string]config.KeyAction, len(m.bindings.Bindings)*2)
	m.invalid = nil
	for _, action := range m.bindings.Actions() {
		for _, name := range m.bindings.Bindings[action] {
			k, ok := key.ParseName(name)
			if !ok {
				m.invalid = append(m.invalid, name)
				continue
			}
			m.lookup[k.String()] = action
		}
	}
}
