// ABOUTME: System clipboard writes via atotto/clipboard with an OSC 52 fallback
// ABOUTME: OSC 52 lets yanks work over SSH where no clipboard helper is installed

package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// Writer copies text somewhere the user can paste it from.
type Writer interface {
	Write(text string) error
}

// System writes through the platform clipboard helper and, when that is
// unavailable, through an OSC 52 sequence on Term.
type System struct {
	// Term receives the OSC 52 fallback; nil disables it.
	Term io.Writer
	// write is the platform hook; nil means atotto/clipboard.
	write func(string) error
}

// Write copies text to the clipboard.
func (s System) Write(text string) error {
	write := s.write
	if write == nil {
		if clipboard.Unsupported {
			return s.osc52(text, fmt.Errorf("no clipboard helper available"))
		}
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		return s.osc52(text, err)
	}
	return nil
}

func (s System) osc52(text string, cause error) error {
	if s.Term == nil {
		return fmt.Errorf("writing clipboard: %w", cause)
	}
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
	if _, err := io.WriteString(s.Term, seq); err != nil {
		return fmt.Errorf("writing clipboard via terminal: %w", err)
	}
	return nil
}
