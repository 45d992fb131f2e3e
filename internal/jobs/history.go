// ABOUTME: Job history persisted as JSON lines, one Record per finished job
// ABOUTME: Records are encoded with easyjson; History returns the newest entries first

//go:generate easyjson -all history.go

package jobs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mailru/easyjson"
)

// historyTail is how many output lines of a job are stored in its record.
const historyTail = 20

// Record is the persisted summary of a finished job.
type Record struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Command   string   `json:"command"`
	Dir       string   `json:"dir"`
	Status    string   `json:"status"`
	ExitCode  int      `json:"exit_code"`
	StartedMs int64    `json:"started_ms"`
	EndedMs   int64    `json:"ended_ms"`
	Tail      []string `json:"tail,omitempty"`
}

// Started returns the start time.
func (r Record) Started() time.Time { return time.UnixMilli(r.StartedMs) }

// Duration returns how long the job ran.
func (r Record) Duration() time.Duration {
	return time.Duration(r.EndedMs-r.StartedMs) * time.Millisecond
}

func recordFromInfo(info Info) Record {
	tail := info.Tail
	if len(tail) > historyTail {
		tail = tail[len(tail)-historyTail:]
	}
	return Record{
		ID:        info.ID,
		Name:      info.Name,
		Command:   info.Command,
		Dir:       info.Dir,
		Status:    info.Status.String(),
		ExitCode:  info.ExitCode,
		StartedMs: info.Started.UnixMilli(),
		EndedMs:   info.Ended.UnixMilli(),
		Tail:      tail,
	}
}

func (m *Manager) appendHistory(info Info) error {
	if m.opts.HistoryPath == "" {
		return nil
	}
	return AppendHistory(m.opts.HistoryPath, recordFromInfo(info), &m.historyMu)
}

// AppendHistory appends rec to the JSON-lines file at path. mu, when not
// nil, serialises writers within the process.
func AppendHistory(path string, rec Record, mu sync.Locker) error {
	data, err := easyjson.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding job record: %w", err)
	}
	data = append(data, '\n')

	if mu != nil {
		mu.Lock()
		defer mu.Unlock()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// History reads the newest n records from path, newest first. A missing
// file yields no records; malformed lines are skipped.
func History(path string, n int) ([]Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading job history: %w", err)
	}

	var all []Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64<<10), 4<<20)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := easyjson.Unmarshal(line, &rec); err != nil {
			continue
		}
		all = append(all, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning job history: %w", err)
	}

	if n <= 0 || n > len(all) {
		n = len(all)
	}
	out := make([]Record, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
