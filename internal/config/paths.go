// ABOUTME: Standard filesystem paths for tfm configuration and data
// ABOUTME: Resolves ~/.tfm/ for global and .tfm/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".tfm"
	projectDirName = ".tfm"
)

// GlobalDir returns the user-global config directory (~/.tfm/).
func GlobalDir() string {
	if dir := os.Getenv("TFM_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.tfm/ in root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.yaml")
}

// ThemesDir returns the directory searched for user theme files.
func ThemesDir() string {
	return filepath.Join(GlobalDir(), "themes")
}

// DatabaseFile returns the bookmarks and projects database.
func DatabaseFile() string {
	return filepath.Join(GlobalDir(), "tfm.db")
}

// JobHistoryFile returns the JSON-lines job history.
func JobHistoryFile() string {
	return filepath.Join(GlobalDir(), "jobs.jsonl")
}

// LogFile returns the log written while the TUI is running.
func LogFile() string {
	return filepath.Join(GlobalDir(), "tfm.log")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
