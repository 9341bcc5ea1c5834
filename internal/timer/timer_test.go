package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/testutil"
)

func shortSettings() models.Settings {
	return testutil.NewSettings().WithDurations(3, 1, 2).WithLongBreakAfter(2).Build()
}

func runOut(t *testing.T, tm *Timer) Completion {
	t.Helper()
	if !tm.Running() {
		tm.Start()
	}
	c, ok := tm.Tick(tm.Remaining())
	if !ok {
		t.Fatalf("expected completion in mode %s", tm.Mode())
	}
	return c
}

func TestNewStartsStoppedInWork(t *testing.T) {
	tm := New(models.DefaultSettings())
	if tm.Mode() != models.SessionWork || tm.Running() {
		t.Fatalf("unexpected initial state: mode=%s running=%v", tm.Mode(), tm.Running())
	}
	if tm.Remaining() != 25*time.Minute {
		t.Fatalf("Remaining = %v", tm.Remaining())
	}
	if tm.Progress() != 0 {
		t.Fatalf("Progress = %v", tm.Progress())
	}
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	tm := New(shortSettings())
	if _, ok := tm.Tick(time.Hour); ok {
		t.Fatalf("paused timer should not complete")
	}
	if tm.Remaining() != 3*time.Second {
		t.Fatalf("Remaining = %v", tm.Remaining())
	}
	tm.Toggle()
	if _, ok := tm.Tick(time.Second); ok {
		t.Fatalf("unexpected completion")
	}
	if tm.Remaining() != 2*time.Second {
		t.Fatalf("Remaining = %v", tm.Remaining())
	}
	if p := tm.Progress(); p < 0.33 || p > 0.34 {
		t.Fatalf("Progress = %v", p)
	}
	tm.Toggle()
	if tm.Running() {
		t.Fatalf("Toggle should pause")
	}
}

func TestCycleLongBreakEveryN(t *testing.T) {
	tm := New(shortSettings())
	want := []struct {
		done models.SessionType
		next models.SessionType
	}{
		{models.SessionWork, models.SessionShortBreak},
		{models.SessionShortBreak, models.SessionWork},
		{models.SessionWork, models.SessionLongBreak},
		{models.SessionLongBreak, models.SessionWork},
		{models.SessionWork, models.SessionShortBreak},
	}
	for i, w := range want {
		c := runOut(t, tm)
		if c.SessionType != w.done || c.Next != w.next {
			t.Fatalf("step %d: got %s -> %s, want %s -> %s", i, c.SessionType, c.Next, w.done, w.next)
		}
		if c.Duration != tm.settings.DurationFor(w.done) {
			t.Fatalf("step %d: Duration = %d", i, c.Duration)
		}
		if tm.Mode() != w.next {
			t.Fatalf("step %d: Mode = %s", i, tm.Mode())
		}
	}
	if tm.CompletedWork() != 3 {
		t.Fatalf("CompletedWork = %d", tm.CompletedWork())
	}
}

func TestAutoStartToggles(t *testing.T) {
	s := shortSettings()
	tm := New(s)
	c := runOut(t, tm)
	if c.AutoStarted || tm.Running() {
		t.Fatalf("break should not auto start by default")
	}

	s.AutoStartBreaks = true
	s.AutoStartPomodoros = true
	tm = New(s)
	c = runOut(t, tm)
	if !c.AutoStarted || !tm.Running() {
		t.Fatalf("break should auto start")
	}
	c = runOut(t, tm)
	if c.SessionType != models.SessionShortBreak || !c.AutoStarted || !tm.Running() {
		t.Fatalf("work should auto start after break: %+v", c)
	}
}

func TestOnlyWorkCarriesTask(t *testing.T) {
	tm := New(shortSettings())
	id := "task-1"
	tm.SetTask(&id)
	id = "mutated"

	c := runOut(t, tm)
	if c.TaskID == nil || *c.TaskID != "task-1" {
		t.Fatalf("work completion TaskID = %v", c.TaskID)
	}
	c = runOut(t, tm)
	if c.TaskID != nil {
		t.Fatalf("break completion should not carry a task")
	}

	tm.SetTask(nil)
	c = runOut(t, tm)
	if c.TaskID != nil {
		t.Fatalf("cleared task should not be credited")
	}
}

func TestSwitchAndReset(t *testing.T) {
	tm := New(shortSettings())
	tm.Start()
	tm.Tick(time.Second)
	if err := tm.Switch(models.SessionLongBreak); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	if tm.Running() || tm.Remaining() != 2*time.Second || tm.Mode() != models.SessionLongBreak {
		t.Fatalf("unexpected state after Switch: %s %v %v", tm.Mode(), tm.Running(), tm.Remaining())
	}
	if err := tm.Switch("nap"); !errors.Is(err, models.ErrInvalidSessionType) {
		t.Fatalf("expected ErrInvalidSessionType, got %v", err)
	}

	tm.Start()
	tm.Tick(time.Second)
	tm.Reset()
	if tm.Running() || tm.Remaining() != 2*time.Second {
		t.Fatalf("Reset did not refill: %v %v", tm.Running(), tm.Remaining())
	}
}

func TestApplySettingsRefills(t *testing.T) {
	tm := New(shortSettings())
	tm.Start()
	tm.Tick(time.Second)
	s := shortSettings()
	s.WorkDuration = 10
	tm.ApplySettings(s)
	if tm.Remaining() != 10*time.Second || !tm.Running() {
		t.Fatalf("ApplySettings: remaining=%v running=%v", tm.Remaining(), tm.Running())
	}
}
