package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/util"
)

// ExportFormatVersion is bumped whenever the export layout changes.
const ExportFormatVersion = 1

// Export is the JSON document produced by ExportData.
type Export struct {
	Version    int                      `json:"version"`
	ExportedAt string                   `json:"exported_at"`
	Settings   models.Settings          `json:"settings"`
	Tasks      []models.Task            `json:"tasks"`
	Sessions   []models.PomodoroSession `json:"sessions"`
}

// ExportData serialises settings, tasks and sessions as indented JSON.
func (d *Database) ExportData(ctx context.Context) ([]byte, error) {
	settings, err := d.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := d.GetTasks(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := d.GetSessions(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	if sessions == nil {
		sessions = []models.PomodoroSession{}
	}
	return json.MarshalIndent(Export{
		Version:    ExportFormatVersion,
		ExportedAt: d.timestamp(),
		Settings:   settings,
		Tasks:      tasks,
		Sessions:   sessions,
	}, "", "  ")
}

// ImportData loads an export. Tasks are replaced by ID, settings overwritten,
// and sessions inserted unless an identical session already exists, so
// importing the same document twice leaves the database unchanged.
func (d *Database) ImportData(ctx context.Context, payload []byte) error {
	var export Export
	if err := json.Unmarshal(payload, &export); err != nil {
		return fmt.Errorf("import data: %w", err)
	}
	if export.Version != ExportFormatVersion {
		return fmt.Errorf("import data: unsupported export version %d", export.Version)
	}
	if err := export.Settings.Validate(); err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	return d.WithTx(ctx, func(tx *sql.Tx) error {
		for _, task := range export.Tasks {
			if strings.TrimSpace(task.ID) == "" || strings.TrimSpace(task.Title) == "" {
				return fmt.Errorf("import task %q: %w", task.ID, ErrInvalidTitle)
			}
			createdAt, err := normalizeTimestamp(task.CreatedAt)
			if err != nil {
				return fmt.Errorf("import task %s: %w", task.ID, err)
			}
			// An upsert keeps the row in place; REPLACE would delete it and
			// null the task_id of its sessions through the foreign key.
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO tasks (`+taskColumns+`)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					title = excluded.title,
					completed = excluded.completed,
					pomodoros_completed = excluded.pomodoros_completed,
					estimated_pomodoros = excluded.estimated_pomodoros,
					created_at = excluded.created_at`,
				task.ID, task.Title, util.BoolToInt(task.Completed),
				task.PomodorosCompleted, task.EstimatedPomodoros, createdAt,
			); err != nil {
				return fmt.Errorf("import task %s: %w", task.ID, err)
			}
		}

		for _, s := range export.Sessions {
			completedAt, err := normalizeTimestamp(s.CompletedAt)
			if err != nil {
				return fmt.Errorf("import session: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO sessions (`+sessionColumns+`)
				SELECT ?, ?, ?, ?
				WHERE NOT EXISTS (
					SELECT 1 FROM sessions
					WHERE task_id IS ? AND duration = ? AND completed_at = ? AND session_type = ?
				)`,
				toNullableArg(s.TaskID), s.Duration, completedAt, string(s.SessionType),
				toNullableArg(s.TaskID), s.Duration, completedAt, string(s.SessionType),
			); err != nil {
				return fmt.Errorf("import session %s: %w", completedAt, err)
			}
		}

		st := export.Settings
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO settings (id, work_duration, short_break, long_break, sessions_until_long_break,
			                      auto_start_breaks, auto_start_pomodoros, notifications_enabled)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				work_duration = excluded.work_duration,
				short_break = excluded.short_break,
				long_break = excluded.long_break,
				sessions_until_long_break = excluded.sessions_until_long_break,
				auto_start_breaks = excluded.auto_start_breaks,
				auto_start_pomodoros = excluded.auto_start_pomodoros,
				notifications_enabled = excluded.notifications_enabled`,
			st.WorkDuration, st.ShortBreak, st.LongBreak, st.SessionsUntilLongBreak,
			util.BoolToInt(st.AutoStartBreaks), util.BoolToInt(st.AutoStartPomodoros),
			util.BoolToInt(st.NotificationsEnabled),
		); err != nil {
			return fmt.Errorf("import settings: %w", err)
		}
		return nil
	})
}

// normalizeTimestamp rewrites an imported timestamp in the stored layout.
func normalizeTimestamp(value string) (string, error) {
	t, err := models.ParseTimestamp(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
	}
	return models.FormatTimestamp(t), nil
}
