package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/util"
)

const sessionColumns = "task_id, duration, completed_at, session_type"

// SaveSession records a finished interval. A work session attached to a task
// increments that task's pomodoro counter in the same transaction.
func (d *Database) SaveSession(ctx context.Context, taskID *string, duration uint32, sessionType models.SessionType) (models.PomodoroSession, error) {
	if err := sessionType.Validate(); err != nil {
		return models.PomodoroSession{}, wrapErr(EntitySession, "save", "", err)
	}
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.PomodoroSession, error) {
		session := models.PomodoroSession{
			TaskID:      taskID,
			Duration:    duration,
			CompletedAt: d.timestamp(),
			SessionType: sessionType,
		}
		err := d.WithTx(ctx, func(tx *sql.Tx) error {
			if taskID != nil {
				var exists int
				err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM tasks WHERE id = ?", *taskID).Scan(&exists)
				if err != nil {
					return err
				}
				if exists == 0 {
					return ErrTaskNotFound
				}
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO sessions ("+sessionColumns+") VALUES (?, ?, ?, ?)",
				toNullableArg(taskID), session.Duration, session.CompletedAt, string(session.SessionType)); err != nil {
				return err
			}
			if sessionType == models.SessionWork && taskID != nil {
				if _, err := tx.ExecContext(ctx,
					"UPDATE tasks SET pomodoros_completed = pomodoros_completed + 1 WHERE id = ?", *taskID); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return models.PomodoroSession{}, wrapErr(EntitySession, "save", util.Deref(taskID), err)
		}
		return session, nil
	})
}

// GetSessions returns every session, most recently completed first.
func (d *Database) GetSessions(ctx context.Context) ([]models.PomodoroSession, error) {
	return d.querySessions(ctx, "list",
		"SELECT "+sessionColumns+" FROM sessions ORDER BY completed_at DESC, id DESC")
}

// GetSessionsSince returns sessions completed at or after since.
func (d *Database) GetSessionsSince(ctx context.Context, since time.Time) ([]models.PomodoroSession, error) {
	return d.querySessions(ctx, "list since",
		"SELECT "+sessionColumns+" FROM sessions WHERE completed_at >= ? ORDER BY completed_at DESC, id DESC",
		models.FormatTimestamp(since))
}

// GetTodaySessions returns sessions completed since local midnight.
func (d *Database) GetTodaySessions(ctx context.Context) ([]models.PomodoroSession, error) {
	return d.GetSessionsSince(ctx, util.StartOfDay(d.now()))
}

// SessionTask resolves the optional task reference of a session. The boolean
// is false when the session has no task or the task has since been deleted.
func (d *Database) SessionTask(ctx context.Context, session models.PomodoroSession) (models.Task, bool, error) {
	if session.TaskID == nil {
		return models.Task{}, false, nil
	}
	task, err := d.GetTask(ctx, *session.TaskID)
	if errors.Is(err, ErrTaskNotFound) {
		return models.Task{}, false, nil
	}
	if err != nil {
		return models.Task{}, false, err
	}
	return task, true, nil
}

func (d *Database) querySessions(ctx context.Context, op, query string, args ...interface{}) ([]models.PomodoroSession, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.PomodoroSession, error) {
		rows, err := d.DB.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, wrapErr(EntitySession, op, "", err)
		}
		defer rows.Close()

		var sessions []models.PomodoroSession
		for rows.Next() {
			var s models.PomodoroSession
			var taskID sql.NullString
			var sessionType string
			if err := rows.Scan(&taskID, &s.Duration, &s.CompletedAt, &sessionType); err != nil {
				return nil, wrapErr(EntitySession, op, "", err)
			}
			s.TaskID = fromNullString(taskID)
			s.SessionType = models.SessionType(sessionType)
			sessions = append(sessions, s)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntitySession, op, "", err)
		}
		return sessions, nil
	})
}
