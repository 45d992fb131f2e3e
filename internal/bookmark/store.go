// ABOUTME: SQLite-backed store for named bookmarks and recently visited projects
// ABOUTME: Uses modernc.org/sqlite (pure Go) in WAL mode so the CLI and TUI can share it

package bookmark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a bookmark name is unknown.
var ErrNotFound = errors.New("bookmark not found")

// Bookmark is a named directory.
type Bookmark struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Created time.Time `json:"created"`
}

// Project is a directory visited while browsing that looks like a project.
type Project struct {
	Path      string    `json:"path"`
	Visits    int       `json:"visits"`
	LastVisit time.Time `json:"last_visit"`
}

// Store persists bookmarks and projects.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configuring database: %w", err)
		}
	}
	s := &Store{db: db, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bookmarks (
			name TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			created_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			path TEXT PRIMARY KEY,
			visits INTEGER NOT NULL,
			last_visit_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_projects_last ON projects(last_visit_unixms);`,
	}
	for _, st := range stmts {
		if _, err := s.db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Add creates or replaces the bookmark name.
func (s *Store) Add(ctx context.Context, name, path string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("bookmark name is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks(name, path, created_unixms) VALUES(?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET path = excluded.path`,
		name, path, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("adding bookmark %q: %w", name, err)
	}
	return nil
}

// Remove deletes the bookmark name.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("removing bookmark %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// Get returns the bookmark name.
func (s *Store) Get(ctx context.Context, name string) (Bookmark, error) {
	var b Bookmark
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT name, path, created_unixms FROM bookmarks WHERE name = ?`, name).
		Scan(&b.Name, &b.Path, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Bookmark{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Bookmark{}, fmt.Errorf("reading bookmark %q: %w", name, err)
	}
	b.Created = time.UnixMilli(created)
	return b, nil
}

// List returns every bookmark ordered by name.
func (s *Store) List(ctx context.Context) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, path, created_unixms FROM bookmarks ORDER BY name COLLATE NOCASE, name`)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var out []Bookmark
	for rows.Next() {
		var b Bookmark
		var created int64
		if err := rows.Scan(&b.Name, &b.Path, &created); err != nil {
			return nil, err
		}
		b.Created = time.UnixMilli(created)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Touch records a visit to dir. It is a no-op unless dir contains one of
// markers.
func (s *Store) Touch(ctx context.Context, dir string, markers []string) (bool, error) {
	if !hasMarker(dir, markers) {
		return false, nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects(path, visits, last_visit_unixms) VALUES(?, 1, ?)
		 ON CONFLICT(path) DO UPDATE SET visits = visits + 1, last_visit_unixms = excluded.last_visit_unixms`,
		dir, s.now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("recording project %s: %w", dir, err)
	}
	return true, nil
}

// Recent returns up to n projects, most recently visited first.
func (s *Store) Recent(ctx context.Context, n int) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, visits, last_visit_unixms FROM projects
		 ORDER BY last_visit_unixms DESC, path LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		var last int64
		if err := rows.Scan(&p.Path, &p.Visits, &last); err != nil {
			return nil, err
		}
		p.LastVisit = time.UnixMilli(last)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ForgetProject removes a project from the recent list.
func (s *Store) ForgetProject(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE path = ?`, path); err != nil {
		return fmt.Errorf("forgetting project %s: %w", path, err)
	}
	return nil
}

func hasMarker(dir string, markers []string) bool {
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return true
		}
	}
	return false
}
