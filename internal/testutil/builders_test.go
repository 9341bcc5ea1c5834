package testutil

import (
	"testing"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
)

func TestBuildersProduceValidFixtures(t *testing.T) {
	s := NewSettings().WithDurations(60, 10, 30).WithLongBreakAfter(2).AutoStart(true, false).Build()
	if err := s.Validate(); err != nil {
		t.Fatalf("settings invalid: %v", err)
	}
	if s.WorkDuration != 60 || !s.AutoStartBreaks || s.AutoStartPomodoros || !s.NotificationsEnabled {
		t.Fatalf("unexpected settings: %+v", s)
	}

	task := NewTask().WithID("t9").WithPomodoros(2, 3).Completed().Build()
	if task.ID != "t9" || !task.Completed || task.PomodorosCompleted != 2 {
		t.Fatalf("unexpected task: %+v", task)
	}

	when := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	session := NewSession(models.SessionWork).ForTask("t9").At(when).Build()
	if session.Duration != 1500 || *session.TaskID != "t9" || session.CompletedAt != "2024-02-03T04:05:06.000Z" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if brk := NewSession(models.SessionLongBreak).Build(); brk.TaskID != nil || brk.Duration != 900 {
		t.Fatalf("unexpected break: %+v", brk)
	}
}
