// Package testutil holds fluent builders for test fixtures.
package testutil

import (
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
)

// TaskBuilder provides fluent API for creating test tasks.
type TaskBuilder struct {
	task models.Task
}

func NewTask() *TaskBuilder {
	return &TaskBuilder{
		task: models.Task{
			ID:                 "task-1",
			Title:              "Test Task",
			EstimatedPomodoros: 1,
			CreatedAt:          models.FormatTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
}

func (b *TaskBuilder) WithID(id string) *TaskBuilder {
	b.task.ID = id
	return b
}

func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.task.Title = title
	return b
}

func (b *TaskBuilder) WithPomodoros(done, estimated uint32) *TaskBuilder {
	b.task.PomodorosCompleted = done
	b.task.EstimatedPomodoros = estimated
	return b
}

func (b *TaskBuilder) Completed() *TaskBuilder {
	b.task.Completed = true
	return b
}

func (b *TaskBuilder) Build() models.Task {
	return b.task
}

// SessionBuilder provides fluent API for creating test sessions.
type SessionBuilder struct {
	session models.PomodoroSession
}

func NewSession(t models.SessionType) *SessionBuilder {
	return &SessionBuilder{
		session: models.PomodoroSession{
			Duration:    models.DefaultSettings().DurationFor(t),
			CompletedAt: models.FormatTimestamp(time.Date(2024, 1, 1, 0, 25, 0, 0, time.UTC)),
			SessionType: t,
		},
	}
}

func (b *SessionBuilder) ForTask(id string) *SessionBuilder {
	b.session.TaskID = &id
	return b
}

func (b *SessionBuilder) WithDuration(seconds uint32) *SessionBuilder {
	b.session.Duration = seconds
	return b
}

func (b *SessionBuilder) At(t time.Time) *SessionBuilder {
	b.session.CompletedAt = models.FormatTimestamp(t)
	return b
}

func (b *SessionBuilder) Build() models.PomodoroSession {
	return b.session
}

// SettingsBuilder starts from the defaults.
type SettingsBuilder struct {
	settings models.Settings
}

func NewSettings() *SettingsBuilder {
	return &SettingsBuilder{settings: models.DefaultSettings()}
}

// WithDurations sets the work, short break and long break lengths in seconds.
func (b *SettingsBuilder) WithDurations(work, short, long uint32) *SettingsBuilder {
	b.settings.WorkDuration = work
	b.settings.ShortBreak = short
	b.settings.LongBreak = long
	return b
}

func (b *SettingsBuilder) WithLongBreakAfter(n uint32) *SettingsBuilder {
	b.settings.SessionsUntilLongBreak = n
	return b
}

func (b *SettingsBuilder) AutoStart(breaks, pomodoros bool) *SettingsBuilder {
	b.settings.AutoStartBreaks = breaks
	b.settings.AutoStartPomodoros = pomodoros
	return b
}

func (b *SettingsBuilder) WithNotifications(enabled bool) *SettingsBuilder {
	b.settings.NotificationsEnabled = enabled
	return b
}

func (b *SettingsBuilder) Build() models.Settings {
	return b.settings
}
