// ABOUTME: Settings loading with global + project config merge
// ABOUTME: YAML-based configuration; project values override global ones when set

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultPreviewBytes = 256 << 10
	defaultMaxResults   = 500
	defaultMarkdown     = "dark"
)

// Preview configures the preview pane.
type Preview struct {
	Enabled       *bool  `yaml:"enabled,omitempty"`
	MaxBytes      int64  `yaml:"max_bytes,omitempty"`
	MarkdownStyle string `yaml:"markdown_style,omitempty"`
	Images        *bool  `yaml:"images,omitempty"`
}

// Search configures the external search tools.
type Search struct {
	NameTool    string `yaml:"name_tool,omitempty"`
	ContentTool string `yaml:"content_tool,omitempty"`
	MaxResults  int    `yaml:"max_results,omitempty"`
}

// Settings holds the merged configuration.
type Settings struct {
	Theme                string              `yaml:"theme,omitempty"`
	ShowHidden           bool                `yaml:"show_hidden,omitempty"`
	ConfirmExit          *bool               `yaml:"confirm_exit,omitempty"`
	ConfirmCaseSensitive bool                `yaml:"confirm_case_sensitive,omitempty"`
	Preview              Preview             `yaml:"preview,omitempty"`
	Search               Search              `yaml:"search,omitempty"`
	Shell                string              `yaml:"shell,omitempty"`
	Editor               string              `yaml:"editor,omitempty"`
	Commands             map[string]string   `yaml:"commands,omitempty"`
	Keybindings          map[string][]string `yaml:"keybindings,omitempty"`
}

// Load reads and merges global and project-local settings, then fills in
// defaults. Missing files are not an error.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	merged.applyDefaults()
	return merged, nil
}

// Parse decodes YAML settings without applying defaults.
func Parse(data []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// merge overlays project settings onto global settings. Non-zero project
// values win; maps are merged key by key.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Theme != "" {
		result.Theme = project.Theme
	}
	if project.ShowHidden {
		result.ShowHidden = true
	}
	if project.ConfirmExit != nil {
		result.ConfirmExit = project.ConfirmExit
	}
	if project.ConfirmCaseSensitive {
		result.ConfirmCaseSensitive = true
	}
	if project.Shell != "" {
		result.Shell = project.Shell
	}
	if project.Editor != "" {
		result.Editor = project.Editor
	}

	p := project.Preview
	if p.Enabled != nil {
		result.Preview.Enabled = p.Enabled
	}
	if p.MaxBytes != 0 {
		result.Preview.MaxBytes = p.MaxBytes
	}
	if p.MarkdownStyle != "" {
		result.Preview.MarkdownStyle = p.MarkdownStyle
	}
	if p.Images != nil {
		result.Preview.Images = p.Images
	}

	s := project.Search
	if s.NameTool != "" {
		result.Search.NameTool = s.NameTool
	}
	if s.ContentTool != "" {
		result.Search.ContentTool = s.ContentTool
	}
	if s.MaxResults != 0 {
		result.Search.MaxResults = s.MaxResults
	}

	result.Commands = mergeMap(global.Commands, project.Commands)
	result.Keybindings = mergeMap(global.Keybindings, project.Keybindings)
	return &result
}

func mergeMap[V any](base, over map[string]V) map[string]V {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[string]V, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

func (s *Settings) applyDefaults() {
	if s.Theme == "" {
		s.Theme = "default"
	}
	if s.ConfirmExit == nil {
		s.ConfirmExit = boolPtr(true)
	}
	if s.Preview.Enabled == nil {
		s.Preview.Enabled = boolPtr(true)
	}
	if s.Preview.Images == nil {
		s.Preview.Images = boolPtr(true)
	}
	if s.Preview.MaxBytes <= 0 {
		s.Preview.MaxBytes = defaultPreviewBytes
	}
	if s.Preview.MarkdownStyle == "" {
		s.Preview.MarkdownStyle = defaultMarkdown
	}
	if s.Search.NameTool == "" {
		s.Search.NameTool = "fd"
	}
	if s.Search.ContentTool == "" {
		s.Search.ContentTool = "rg"
	}
	if s.Search.MaxResults <= 0 {
		s.Search.MaxResults = defaultMaxResults
	}
	if s.Shell == "" {
		s.Shell = envOr("SHELL", "/bin/sh")
	}
	if s.Editor == "" {
		s.Editor = envOr("EDITOR", "vi")
	}
}

// Defaults returns settings with every default applied and no files read.
func Defaults() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// ConfirmOnExit reports whether quitting asks for confirmation.
func (s *Settings) ConfirmOnExit() bool { return s.ConfirmExit == nil || *s.ConfirmExit }

// PreviewEnabled reports whether the preview pane is shown.
func (s *Settings) PreviewEnabled() bool { return s.Preview.Enabled == nil || *s.Preview.Enabled }

// ImagesEnabled reports whether images are previewed as half blocks.
func (s *Settings) ImagesEnabled() bool { return s.Preview.Images == nil || *s.Preview.Images }

func boolPtr(b bool) *bool { return &b }

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
