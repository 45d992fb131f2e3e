// ABOUTME: Tests for the command language: parsing, expansion and verb dispatch
// ABOUTME: A fake Env records every call the interpreter makes

package commands

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fakeEnv struct {
	ctx    Context
	hidden bool
	calls  []string
	failOn string
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{ctx: Context{
		Cwd:     "/home/u/src",
		Current: "/home/u/src/main.go",
		Home:    "/home/u",
		Getenv: func(k string) string {
			return map[string]string{"EDITOR": "nvim", "X_1": "one"}[k]
		},
	}}
}

func (f *fakeEnv) record(verb, arg string) error {
	f.calls = append(f.calls, verb+" "+arg)
	if verb == f.failOn {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeEnv) Context() Context { return f.ctx }
func (f *fakeEnv) Chdir(p string) error {
	f.ctx.Cwd = p
	return f.record("cd", p)
}
func (f *fakeEnv) Open(p string) error        { return f.record("open", p) }
func (f *fakeEnv) Shell(c string) error       { return f.record("shell", c) }
func (f *fakeEnv) Job(c string) error         { return f.record("job", c) }
func (f *fakeEnv) AddBookmark(n string) error { return f.record("bookmark", n) }
func (f *fakeEnv) Jump(n string) error        { return f.record("jump", n) }
func (f *fakeEnv) Hidden() bool               { return f.hidden }
func (f *fakeEnv) SetHidden(v bool)           { f.hidden = v; _ = f.record("hidden", boolWord(v)) }
func (f *fakeEnv) SetFilter(p string)         { _ = f.record("filter", p) }
func (f *fakeEnv) MarkAll(v bool)             { _ = f.record("mark", boolWord(v)) }
func (f *fakeEnv) Echo(t string)              { _ = f.record("echo", t) }

func boolWord(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Statement
	}{
		{"single", "cd /tmp", []Statement{{1, "cd", "/tmp"}}},
		{"semicolons", "cd /tmp; echo hi ;; hidden on", []Statement{
			{1, "cd", "/tmp"}, {1, "echo", "hi"}, {1, "hidden", "on"},
		}},
		{"newlines and comments", "# header\ncd /tmp # trailing\n\n  ECHO  a  b", []Statement{
			{2, "cd", "/tmp"}, {4, "echo", "a  b"},
		}},
		{"quotes protect separators", `shell echo "a;b" 'c#d'; echo x#y`, []Statement{
			{1, "shell", `echo "a;b" 'c#d'`}, {1, "echo", "x#y"},
		}},
		{"escaped quote", `echo "say \"hi\""`, []Statement{{1, "echo", `"say \"hi\""`}}},
		{"verb only", "open", []Statement{{1, "open", ""}}},
		{"empty", " ; \n # nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.src, got, tt.want)
			}
		})
	}
}

func TestParse_UnterminatedQuote(t *testing.T) {
	t.Parallel()
	if _, err := Parse("echo ok\nshell echo 'oops"); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want unterminated quote on line 2", err)
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()
	ctx := newFakeEnv().ctx
	ctx.Marked = []string{"/a/b c", "/a/d"}

	tests := []struct {
		in    string
		shell bool
		want  string
	}{
		{"%f", false, "/home/u/src/main.go"},
		{"%d/sub", false, "/home/u/src/sub"},
		{"%s", false, "'/a/b c' /a/d"},
		{"100%%", false, "100%"},
		{"%q", false, "%q"},
		{"trailing %", false, "trailing %"},
		{"~/notes", false, "/home/u/notes"},
		{"~", false, "/home/u"},
		{"~other", false, "~other"},
		{"a~/b", false, "a~/b"},
		{"$EDITOR %f", true, "nvim /home/u/src/main.go"},
		{"${X_1}x $X_1x", false, "onex "},
		{"$UNSET.", false, "."},
		{"$ 5$", false, "$ 5$"},
		{"${open", false, "${open"},
	}
	for _, tt := range tests {
		if got := ctx.Expand(tt.in, tt.shell); got != tt.want {
			t.Errorf("Expand(%q, %v) = %q, want %q", tt.in, tt.shell, got, tt.want)
		}
	}
}

func TestExpand_QuotesPathsForShell(t *testing.T) {
	t.Parallel()
	ctx := Context{Cwd: "/tmp/my dir", Current: "/tmp/my dir/it's.txt"}

	if got, want := ctx.Expand("ls %d", true), "ls '/tmp/my dir'"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := ctx.Expand("%s", false), `'/tmp/my dir/it'\''s.txt'`; got != want {
		t.Errorf("selection fallback = %q, want %q", got, want)
	}
	if got := (Context{}).Expand("%s", false); got != "" {
		t.Errorf("empty selection = %q", got)
	}
}

func TestExec_DispatchesVerbs(t *testing.T) {
	t.Parallel()
	env := newFakeEnv()
	in := New(nil)

	src := `cd ~/docs; echo in %d
open
shell grep -n TODO %f
job make test
bookmark "my docs"
jump src
hidden on; hidden toggle
filter *.go
mark all; mark none`
	if err := in.Exec(env, src); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	want := []string{
		"cd /home/u/docs",
		"echo in /home/u/docs",
		"open /home/u/src/main.go",
		"shell grep -n TODO /home/u/src/main.go",
		"job make test",
		"bookmark my docs",
		"jump src",
		"hidden true",
		"hidden false",
		"filter *.go",
		"mark true",
		"mark false",
	}
	if !reflect.DeepEqual(env.calls, want) {
		t.Errorf("calls:\n%s\nwant:\n%s", strings.Join(env.calls, "\n"), strings.Join(want, "\n"))
	}
}

func TestExec_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		failOn  string
		wantIs  error
		wantMsg string
		calls   int
	}{
		{"unknown verb runs nothing", "echo a; frobnicate x", "", ErrUnknownVerb, "line 1", 0},
		{"usage", "cd", "", nil, "usage: cd PATH", 0},
		{"bad hidden arg", "hidden maybe", "", nil, "usage: hidden", 0},
		{"env error stops", "echo a; jump x; echo b", "jump", nil, "jump: boom", 2},
		{"unknown command", "run nope", "", ErrUnknownCommand, "nope", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newFakeEnv()
			env.failOn = tt.failOn
			err := New(nil).Exec(env, tt.src)
			if err == nil {
				t.Fatal("Exec succeeded, want error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("err = %v, want %v", err, tt.wantIs)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to contain %q", err, tt.wantMsg)
			}
			if len(env.calls) != tt.calls {
				t.Errorf("calls = %q, want %d", env.calls, tt.calls)
			}
		})
	}
}

func TestRun_Nesting(t *testing.T) {
	t.Parallel()
	in := New(map[string]string{
		"edit":  "shell $EDITOR %f",
		"twice": "run edit; run edit",
		"loop":  "echo again; run loop",
	})

	env := newFakeEnv()
	if err := in.Run(env, "twice"); err != nil {
		t.Fatalf("Run(twice): %v", err)
	}
	if len(env.calls) != 2 || env.calls[0] != "shell nvim /home/u/src/main.go" {
		t.Errorf("calls = %q", env.calls)
	}

	env = newFakeEnv()
	err := in.Run(env, "loop")
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("Run(loop) err = %v, want ErrTooDeep", err)
	}
	if len(env.calls) != MaxDepth {
		t.Errorf("loop ran %d statements, want %d", len(env.calls), MaxDepth)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	in := New(map[string]string{
		"good": "cd ~; echo ok",
		"bad":  "launch rockets",
		"open": "echo 'unterminated",
	})
	err := in.Validate()
	if err == nil {
		t.Fatal("Validate succeeded")
	}
	msg := err.Error()
	for _, want := range []string{`command "bad"`, `command "open"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate error %q missing %q", msg, want)
		}
	}
	if strings.Contains(msg, `"good"`) {
		t.Errorf("Validate flagged a valid command: %q", msg)
	}
	if !reflect.DeepEqual(in.Names(), []string{"bad", "good", "open"}) {
		t.Errorf("Names = %v", in.Names())
	}
	if len(in.Verbs()) != 11 {
		t.Errorf("len(Verbs) = %d, want 11", len(in.Verbs()))
	}
}
