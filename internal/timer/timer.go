// Package timer implements the pomodoro work/break cycle without a clock.
// Callers feed elapsed time through Tick; the timer reports completions.
package timer

import (
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
)

// Completion describes a session that ran to zero.
type Completion struct {
	SessionType models.SessionType
	// Duration is the configured length in seconds, recorded as the session duration.
	Duration uint32
	// TaskID is set only for work sessions with a selected task.
	TaskID *string
	Next   models.SessionType
	// AutoStarted reports whether Next is already running.
	AutoStarted bool
}

type Timer struct {
	settings      models.Settings
	mode          models.SessionType
	remaining     time.Duration
	running       bool
	completedWork uint32
	taskID        *string
}

// New returns a stopped timer in work mode.
func New(settings models.Settings) *Timer {
	t := &Timer{settings: settings, mode: models.SessionWork}
	t.remaining = t.full()
	return t
}

func (t *Timer) full() time.Duration {
	return time.Duration(t.settings.DurationFor(t.mode)) * time.Second
}

func (t *Timer) Mode() models.SessionType { return t.mode }
func (t *Timer) Running() bool            { return t.running }
func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Settings() models.Settings {
	return t.settings
}

// CompletedWork is the number of work sessions finished since New.
func (t *Timer) CompletedWork() uint32 { return t.completedWork }

// Task returns the selected task id, if any.
func (t *Timer) Task() *string { return t.taskID }

// Progress returns the elapsed fraction of the current session in [0, 1].
func (t *Timer) Progress() float64 {
	full := t.full()
	if full <= 0 {
		return 0
	}
	p := float64(full-t.remaining) / float64(full)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (t *Timer) Start()  { t.running = true }
func (t *Timer) Pause()  { t.running = false }
func (t *Timer) Toggle() { t.running = !t.running }

// Reset stops the timer and refills the current session.
func (t *Timer) Reset() {
	t.running = false
	t.remaining = t.full()
}

// Switch stops the timer and moves to mode with a full session.
func (t *Timer) Switch(mode models.SessionType) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	t.mode = mode
	t.Reset()
	return nil
}

// SetTask selects the task credited by the next work completion. Nil clears it.
func (t *Timer) SetTask(id *string) {
	if id == nil {
		t.taskID = nil
		return
	}
	v := *id
	t.taskID = &v
}

// ApplySettings replaces the settings and refills the current session.
// The running state is kept.
func (t *Timer) ApplySettings(settings models.Settings) {
	t.settings = settings
	t.remaining = t.full()
}

// Tick advances a running timer by elapsed. When the session reaches zero the
// timer moves to the next mode and returns the finished session.
func (t *Timer) Tick(elapsed time.Duration) (Completion, bool) {
	if !t.running || elapsed <= 0 {
		return Completion{}, false
	}
	t.remaining -= elapsed
	if t.remaining > 0 {
		return Completion{}, false
	}
	return t.complete(), true
}

func (t *Timer) complete() Completion {
	c := Completion{
		SessionType: t.mode,
		Duration:    t.settings.DurationFor(t.mode),
	}
	if t.mode == models.SessionWork {
		if t.taskID != nil {
			id := *t.taskID
			c.TaskID = &id
		}
		t.completedWork++
		c.Next = models.SessionShortBreak
		if n := t.settings.SessionsUntilLongBreak; n > 0 && t.completedWork%n == 0 {
			c.Next = models.SessionLongBreak
		}
		c.AutoStarted = t.settings.AutoStartBreaks
	} else {
		c.Next = models.SessionWork
		c.AutoStarted = t.settings.AutoStartPomodoros
	}
	t.mode = c.Next
	t.remaining = t.full()
	t.running = c.AutoStarted
	return c
}
