package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
)

// TaskRepository defines task-related database operations.
type TaskRepository interface {
	CreateTask(ctx context.Context, title string, estimatedPomodoros uint32) (models.Task, error)
	GetTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
	UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error
	DeleteTask(ctx context.Context, id string) error
	IncrementTaskPomodoro(ctx context.Context, id string) error
}

// SessionRepository defines session-related database operations.
type SessionRepository interface {
	SaveSession(ctx context.Context, taskID *string, duration uint32, sessionType models.SessionType) (models.PomodoroSession, error)
	GetSessions(ctx context.Context) ([]models.PomodoroSession, error)
	GetSessionsSince(ctx context.Context, since time.Time) ([]models.PomodoroSession, error)
	GetTodaySessions(ctx context.Context) ([]models.PomodoroSession, error)
	SessionTask(ctx context.Context, session models.PomodoroSession) (models.Task, bool, error)
}

// SettingsRepository defines settings-related database operations.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.Settings, error)
}

// StatisticsRepository aggregates counters across tasks and sessions.
type StatisticsRepository interface {
	GetStatistics(ctx context.Context) (models.Statistics, error)
}

// TransferRepository moves the whole dataset in and out as JSON.
type TransferRepository interface {
	ExportData(ctx context.Context) ([]byte, error)
	ImportData(ctx context.Context, payload []byte) error
}

// Repository combines all repository interfaces.
type Repository interface {
	TaskRepository
	SessionRepository
	SettingsRepository
	StatisticsRepository
	TransferRepository
	Close() error
}

var _ Repository = (*Database)(nil)
