// ABOUTME: Verb registry and interpreter for user-defined commands
// ABOUTME: Statements run in order against an Env; the first error stops the command

package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxDepth bounds nested "run" statements.
const MaxDepth = 8

var (
	// ErrUnknownVerb is returned for a statement whose verb is not registered.
	ErrUnknownVerb = errors.New("unknown verb")
	// ErrUnknownCommand is returned when running a user command that does not exist.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrTooDeep is returned when "run" nests deeper than MaxDepth.
	ErrTooDeep = errors.New("commands nested too deeply")
)

// Env is what statements act on. The file manager implements it.
type Env interface {
	Context() Context
	Chdir(path string) error
	Open(path string) error
	Shell(command string) error
	Job(command string) error
	AddBookmark(name string) error
	Jump(name string) error
	Hidden() bool
	SetHidden(show bool)
	SetFilter(pattern string)
	MarkAll(marked bool)
	Echo(text string)
}

// Verb is one built-in statement kind.
type Verb struct {
	Name    string
	Usage   string
	Shell   bool // arguments are a shell command line
	Execute func(in *Interpreter, env Env, arg string, depth int) error
}

// Interpreter runs user commands.
type Interpreter struct {
	verbs    map[string]*Verb
	commands map[string]string
}

// New creates an Interpreter with the built-in verbs and the given user
// commands (name to source).
func New(commands map[string]string) *Interpreter {
	in := &Interpreter{verbs: make(map[string]*Verb), commands: make(map[string]string)}
	for name, src := range commands {
		in.commands[name] = src
	}
	in.registerVerbs()
	return in
}

// Names returns the user command names, sorted.
func (in *Interpreter) Names() []string {
	names := make([]string, 0, len(in.commands))
	for name := range in.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Verbs returns the built-in verbs sorted by name.
func (in *Interpreter) Verbs() []*Verb {
	out := make([]*Verb, 0, len(in.verbs))
	for _, v := range in.verbs {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate parses every user command and checks its verbs.
func (in *Interpreter) Validate() error {
	var errs []error
	for _, name := range in.Names() {
		if err := in.check(in.commands[name]); err != nil {
			errs = append(errs, fmt.Errorf("command %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (in *Interpreter) check(source string) error {
	stmts, err := Parse(source)
	if err != nil {
		return err
	}
	for _, st := range stmts {
		if _, ok := in.verbs[st.Verb]; !ok {
			return fmt.Errorf("line %d: %w: %s", st.Line, ErrUnknownVerb, st.Verb)
		}
	}
	return nil
}

// Run executes the user command name.
func (in *Interpreter) Run(env Env, name string) error {
	return in.run(env, name, 0)
}

func (in *Interpreter) run(env Env, name string, depth int) error {
	if depth >= MaxDepth {
		return fmt.Errorf("%w (limit %d) at %q", ErrTooDeep, MaxDepth, name)
	}
	src, ok := in.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return in.exec(env, src, depth)
}

// Exec executes source typed at the command prompt.
func (in *Interpreter) Exec(env Env, source string) error {
	return in.exec(env, source, 0)
}

func (in *Interpreter) exec(env Env, source string, depth int) error {
	stmts, err := Parse(source)
	if err != nil {
		return err
	}
	// Unknown verbs are reported before anything runs.
	for _, st := range stmts {
		if _, ok := in.verbs[st.Verb]; !ok {
			return fmt.Errorf("line %d: %w: %s", st.Line, ErrUnknownVerb, st.Verb)
		}
	}
	for _, st := range stmts {
		v := in.verbs[st.Verb]
		arg := env.Context().Expand(st.Args, v.Shell)
		if !v.Shell {
			arg = unquote(arg)
		}
		if err := v.Execute(in, env, arg, depth); err != nil {
			return fmt.Errorf("%s: %w", st.Verb, err)
		}
	}
	return nil
}

func usage(v string) error { return fmt.Errorf("usage: %s", v) }

func (in *Interpreter) registerVerbs() {
	verbs := []*Verb{
		{
			Name:  "cd",
			Usage: "cd PATH",
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				if arg == "" {
					return usage("cd PATH")
				}
				return env.Chdir(arg)
			},
		},
		{
			Name:  "open",
			Usage: "open [PATH]",
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				if arg == "" {
					arg = env.Context().Current
				}
				if arg == "" {
					return errors.New("nothing to open")
				}
				return env.Open(arg)
			},
		},
		{
			Name:  "shell",
			Usage: "shell CMD",
			Shell: true,
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				if arg == "" {
					return usage("shell CMD")
				}
				return env.Shell(arg)
			},
		},
		{
			Name:  "job",
			Usage: "job CMD",
			Shell: true,
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				if arg == "" {
					return usage("job CMD")
				}
				return env.Job(arg)
			},
		},
		{
			Name:  "bookmark",
			Usage: "bookmark NAME",
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				if arg == "" {
					return usage("bookmark NAME")
				}
				return env.AddBookmark(arg)
			},
		},
		{
			Name:  "jump",
			Usage: "jump NAME",
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				if arg == "" {
					return usage("jump NAME")
				}
				return env.Jump(arg)
			},
		},
		{
			Name:  "hidden",
			Usage: "hidden on|off|toggle",
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				switch strings.ToLower(arg) {
				case "on":
					env.SetHidden(true)
				case "off":
					env.SetHidden(false)
				case "toggle", "":
					env.SetHidden(!env.Hidden())
				default:
					return usage("hidden on|off|toggle")
				}
				return nil
			},
		},
		{
			Name:  "filter",
			Usage: "filter [PATTERN]",
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				env.SetFilter(arg)
				return nil
			},
		},
		{
			Name:  "mark",
			Usage: "mark all|none",
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				switch strings.ToLower(arg) {
				case "all":
					env.MarkAll(true)
				case "none":
					env.MarkAll(false)
				default:
					return usage("mark all|none")
				}
				return nil
			},
		},
		{
			Name:  "echo",
			Usage: "echo TEXT",
			Execute: func(_ *Interpreter, env Env, arg string, _ int) error {
				env.Echo(arg)
				return nil
			},
		},
		{
			Name:  "run",
			Usage: "run NAME",
			Execute: func(in *Interpreter, env Env, arg string, depth int) error {
				if arg == "" {
					return usage("run NAME")
				}
				return in.run(env, arg, depth+1)
			},
		},
	}
	for _, v := range verbs {
		in.verbs[v.Name] = v
	}
}
