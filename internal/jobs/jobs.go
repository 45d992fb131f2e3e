// ABOUTME: Background job manager: runs shell commands under a pty and reports completion on a channel
// ABOUTME: Submit never blocks; Shutdown cancels running jobs and waits for them via errgroup

package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/tfm/internal/log"
)

// TailLines is how many output lines are kept per job.
const TailLines = 200

// ErrUnknownJob is returned for an id that was never submitted.
var ErrUnknownJob = errors.New("unknown job")

// ErrShutdown is returned by Submit after Shutdown.
var ErrShutdown = errors.New("job manager is shut down")

// Status is the lifecycle state of a job.
type Status int

const (
	Running Status = iota
	Succeeded
	Failed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "ok"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Spec describes a job to run.
type Spec struct {
	Name    string
	Command string
	Dir     string
}

// Info is a point-in-time copy of a job's state.
type Info struct {
	ID       int
	Name     string
	Command  string
	Dir      string
	Status   Status
	ExitCode int
	Started  time.Time
	Ended    time.Time
	Tail     []string
}

// Duration is how long the job ran, or has been running.
func (i Info) Duration(now time.Time) time.Duration {
	if i.Ended.IsZero() {
		return now.Sub(i.Started)
	}
	return i.Ended.Sub(i.Started)
}

// Event reports a finished job.
type Event struct {
	Job Info
}

// Options configures a Manager.
type Options struct {
	Shell       string
	HistoryPath string // empty disables history
	NoPTY       bool   // run with plain pipes
}

type job struct {
	mu       sync.Mutex
	info     Info
	cancel   context.CancelFunc
	finished chan struct{}
}

func (j *job) snapshot() Info {
	j.mu.Lock()
	defer j.mu.Unlock()
	info := j.info
	info.Tail = append([]string(nil), j.info.Tail...)
	return info
}

func (j *job) appendLine(line string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.info.Tail) == TailLines {
		copy(j.info.Tail, j.info.Tail[1:])
		j.info.Tail[len(j.info.Tail)-1] = line
		return
	}
	j.info.Tail = append(j.info.Tail, line)
}

// Manager owns every job started in this session.
type Manager struct {
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	events chan Event

	mu     sync.Mutex
	jobs   []*job
	nextID int
	closed bool

	historyMu sync.Mutex
	now       func() time.Time
}

// New creates a Manager. Jobs inherit ctx; cancelling it cancels them all.
func New(ctx context.Context, opts Options) *Manager {
	if opts.Shell == "" {
		opts.Shell = "/bin/sh"
	}
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	return &Manager{
		opts:   opts,
		ctx:    gctx,
		cancel: cancel,
		group:  g,
		events: make(chan Event, 16),
		nextID: 1,
		now:    time.Now,
	}
}

// Events delivers one Event per finished job.
func (m *Manager) Events() <-chan Event { return m.events }

// Submit starts spec in the background and returns immediately.
func (m *Manager) Submit(spec Spec) (Info, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Info{}, ErrShutdown
	}
	jctx, cancel := context.WithCancel(m.ctx)
	j := &job{
		info: Info{
			ID:      m.nextID,
			Name:    spec.Name,
			Command: spec.Command,
			Dir:     spec.Dir,
			Status:  Running,
			Started: m.now(),
		},
		cancel:   cancel,
		finished: make(chan struct{}),
	}
	if j.info.Name == "" {
		j.info.Name = spec.Command
	}
	m.nextID++
	m.jobs = append(m.jobs, j)
	m.mu.Unlock()

	log.Info("jobs: #%d started: %s", j.info.ID, spec.Command)
	m.group.Go(func() error {
		defer close(j.finished)
		m.run(jctx, j)
		return nil
	})
	return j.snapshot(), nil
}

func (m *Manager) run(ctx context.Context, j *job) {
	defer j.cancel()

	code, err := execute(ctx, m.opts, j.info.Command, j.info.Dir, j.appendLine)
	if err != nil {
		j.appendLine(err.Error())
	}

	j.mu.Lock()
	j.info.Ended = m.now()
	j.info.ExitCode = code
	switch {
	case ctx.Err() != nil:
		j.info.Status = Cancelled
	case err != nil || code != 0:
		j.info.Status = Failed
	default:
		j.info.Status = Succeeded
	}
	j.mu.Unlock()

	info := j.snapshot()
	log.Info("jobs: #%d %s (exit %d)", info.ID, info.Status, info.ExitCode)
	if err := m.appendHistory(info); err != nil {
		log.Warn("jobs: writing history: %v", err)
	}

	select {
	case m.events <- Event{Job: info}:
	case <-m.ctx.Done():
	}
}

func (m *Manager) find(id int) (*job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jobs {
		if j.info.ID == id {
			return j, true
		}
	}
	return nil, false
}

// Get returns the current state of job id.
func (m *Manager) Get(id int) (Info, error) {
	j, ok := m.find(id)
	if !ok {
		return Info{}, fmt.Errorf("%w: %d", ErrUnknownJob, id)
	}
	return j.snapshot(), nil
}

// Cancel stops job id. Cancelling a finished job is a no-op.
func (m *Manager) Cancel(id int) error {
	j, ok := m.find(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownJob, id)
	}
	j.cancel()
	return nil
}

// Wait blocks until job id finishes or ctx is done.
func (m *Manager) Wait(ctx context.Context, id int) (Info, error) {
	j, ok := m.find(id)
	if !ok {
		return Info{}, fmt.Errorf("%w: %d", ErrUnknownJob, id)
	}
	select {
	case <-j.finished:
		return j.snapshot(), nil
	case <-ctx.Done():
		return Info{}, ctx.Err()
	}
}

// List returns every job, newest first.
func (m *Manager) List() []Info {
	m.mu.Lock()
	jobs := append([]*job(nil), m.jobs...)
	m.mu.Unlock()

	out := make([]Info, 0, len(jobs))
	for i := len(jobs) - 1; i >= 0; i-- {
		out = append(out, jobs[i].snapshot())
	}
	return out
}

// Running counts jobs still in progress.
func (m *Manager) Running() int {
	n := 0
	for _, info := range m.List() {
		if info.Status == Running {
			n++
		}
	}
	return n
}

// Shutdown cancels all jobs and waits for them to exit or ctx to expire.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cancel()

	done := make(chan error, 1)
	go func() { done <- m.group.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("waiting for jobs: %w", ctx.Err())
	}
}
