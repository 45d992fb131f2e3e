// ABOUTME: Tests for directory listing, sorting, deletion and path helpers
// ABOUTME: All filesystem work happens under t.TempDir()

package fsys

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func names(es Entries) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Name
	}
	return out
}

func TestList_Order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "bb")
	writeFile(t, filepath.Join(dir, "A.txt"), "a")
	writeFile(t, filepath.Join(dir, ".hidden"), "")
	writeFile(t, filepath.Join(dir, "zdir", "x"), "")
	writeFile(t, filepath.Join(dir, "Adir", "x"), "")

	tests := []struct {
		name   string
		hidden bool
		want   string
	}{
		{"visible only", false, "Adir,zdir,A.txt,b.txt"},
		{"with hidden", true, "Adir,zdir,.hidden,A.txt,b.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			es, err := List(dir, tt.hidden)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if got := strings.Join(names(es), ","); got != tt.want {
				t.Errorf("List order = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestList_EntryFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.bin"), "12345")
	es, err := List(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(es) != 1 {
		t.Fatalf("got %d entries", len(es))
	}
	e := es[0]
	if e.Dir || e.Size != 5 || e.Path != filepath.Join(dir, "data.bin") {
		t.Errorf("entry = %+v", e)
	}
	if e.Detail() != "5 B" {
		t.Errorf("Detail() = %q, want \"5 B\"", e.Detail())
	}
	if es.Len() != 1 || es.String(0) != "data.bin" {
		t.Error("Entries does not expose names as a fuzzy source")
	}
}

func TestList_Symlinks(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "target", "f"), "")
	if err := os.Symlink(filepath.Join(dir, "target"), filepath.Join(dir, "link")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")); err != nil {
		t.Fatal(err)
	}

	es, err := List(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]Entry{}
	for _, e := range es {
		byName[e.Name] = e
	}
	if l := byName["link"]; !l.Dir || l.Link == "" || l.Broken {
		t.Errorf("link entry = %+v, want a directory symlink", l)
	}
	if d := byName["dangling"]; !d.Broken || d.Detail() != "broken link" {
		t.Errorf("dangling entry = %+v", d)
	}
}

func TestList_NFC(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	decomposed := "cafe\u0301.txt"
	writeFile(t, filepath.Join(dir, decomposed), "")

	es, err := List(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(es) != 1 || es[0].Name != "caf\u00e9.txt" {
		t.Fatalf("names = %q, want the NFC spelling", names(es))
	}
	if _, err := os.Stat(es[0].Path); err != nil {
		t.Errorf("Path must keep the on-disk spelling: %v", err)
	}
}

func TestList_Missing(t *testing.T) {
	t.Parallel()

	if _, err := List(filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	sub := filepath.Join(dir, "sub")
	writeFile(t, file, "x")
	writeFile(t, filepath.Join(sub, "deep", "b"), "y")
	missing := filepath.Join(dir, "missing.txt")

	removed, errs := Remove([]string{file, sub, missing})
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "missing.txt: ") {
		t.Errorf("errs = %q", errs)
	}
	if strings.Contains(errs[0], dir) {
		t.Errorf("error message should not repeat the full path: %q", errs[0])
	}
	for _, p := range []string{file, sub} {
		if _, err := os.Lstat(p); err == nil {
			t.Errorf("%s still exists", p)
		}
	}
}

func TestRemove_Empty(t *testing.T) {
	t.Parallel()

	removed, errs := Remove(nil)
	if removed != 0 || errs != nil {
		t.Errorf("Remove(nil) = %d, %v", removed, errs)
	}
}

func TestIsProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if IsProject(dir) {
		t.Error("empty dir reported as project")
	}
	writeFile(t, filepath.Join(dir, "go.mod"), "module x\n")
	if !IsProject(dir) {
		t.Error("dir with go.mod not reported as project")
	}
}

func TestNormalizeSpaces(t *testing.T) {
	t.Parallel()

	got := NormalizeSpaces("a\u00a0b\u2003c\u3000d\u202fe")
	if got != "a b c d e" {
		t.Errorf("NormalizeSpaces = %q", got)
	}
}

func TestResolveToCwd(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		path string
		want string
	}{
		{"docs", "/work/docs"},
		{"../x", "/x"},
		{"/abs/./p", "/abs/p"},
		{"~", home},
		{"~/notes", filepath.Join(home, "notes")},
		{"~user", "/work/~user"},
	}
	for _, tt := range tests {
		if got := ResolveToCwd(tt.path, "/work"); got != tt.want {
			t.Errorf("ResolveToCwd(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResolve_NormalForms(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	onDisk := "re\u0301sume\u0301"
	writeFile(t, filepath.Join(dir, onDisk, "x"), "")

	got := Resolve("r\u00e9sum\u00e9", dir)
	if _, err := os.Stat(got); err != nil {
		t.Errorf("Resolve returned a path that does not exist: %q", got)
	}
	if miss := Resolve("nothing", dir); miss != filepath.Join(dir, "nothing") {
		t.Errorf("Resolve fallback = %q", miss)
	}
}

func TestAbbrev(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}
	if got := Abbrev(filepath.Join(home, "src")); got != "~/src" {
		t.Errorf("Abbrev = %q", got)
	}
	if got := Abbrev(home); got != "~" {
		t.Errorf("Abbrev(home) = %q", got)
	}
	if got := Abbrev("/elsewhere"); got != "/elsewhere" {
		t.Errorf("Abbrev(/elsewhere) = %q", got)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1500, "1.5 kB"},
		{3 * 1000 * 1000, "3.0 MB"},
		{-1, "-"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.n); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
	if FormatAge(time.Time{}) != "" {
		t.Error("zero time should format as empty")
	}
	if got := FormatAge(time.Now().Add(-3 * time.Hour)); got != "3 hours ago" {
		t.Errorf("FormatAge = %q", got)
	}
}
