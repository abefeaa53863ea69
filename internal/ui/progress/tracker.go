package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Tracker displays the progress of a scan. It implements the scheduler's
// listener: a spinner counts repositories while discovery runs, then a
// progress bar counts finished analyses.
type Tracker struct {
	mu         sync.Mutex
	out        io.Writer
	spinner    *Spinner
	bar        *ProgressBar
	discovered int
	completed  int
	done       bool
}

// NewTracker creates a Tracker writing to stderr. Nothing is drawn until
// the first event arrives.
func NewTracker() *Tracker {
	return &Tracker{out: os.Stderr}
}

// Discovering counts a newly found repository.
func (t *Tracker) Discovering(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done || t.bar != nil {
		return
	}

	t.discovered++
	if t.spinner == nil {
		t.spinner = NewSpinner(t.discoveryMessage())
		t.spinner.out = t.out
		t.spinner.Start()
		return
	}
	t.spinner.UpdateMessage(t.discoveryMessage())
}

// TotalKnown replaces the spinner with a progress bar over total repositories.
func (t *Tracker) TotalKnown(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done || t.bar != nil {
		return
	}

	if t.spinner != nil {
		t.spinner.Stop()
		t.spinner = nil
	}
	if total == 0 {
		return
	}
	t.bar = NewProgressBar(total, t.barMessage(""))
	t.bar.out = t.out
	t.bar.current = t.completed
	t.bar.Start()
}

// Completed advances the count of finished analyses.
func (t *Tracker) Completed(index int, path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}

	t.completed = index
	switch {
	case t.bar != nil:
		t.bar.SetProgress(index, t.barMessage(path))
	case t.spinner != nil:
		t.spinner.UpdateMessage(t.discoveryMessage())
	}
}

// Done removes whatever is on screen. Later events are ignored.
func (t *Tracker) Done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	t.done = true

	if t.spinner != nil {
		t.spinner.Stop()
		t.spinner = nil
	}
	if t.bar != nil {
		t.bar.Stop()
		t.bar = nil
	}
}

func (t *Tracker) discoveryMessage() string {
	if t.completed == 0 {
		return fmt.Sprintf("Discovering repositories (%d found)", t.discovered)
	}
	return fmt.Sprintf("Discovering repositories (%d found, %d analyzed)", t.discovered, t.completed)
}

func (t *Tracker) barMessage(lastPath string) string {
	msg := fmt.Sprintf("%d/%d analyzed", t.completed, t.discovered)
	if lastPath != "" {
		msg += "  " + filepath.Base(lastPath)
	}
	return msg
}
