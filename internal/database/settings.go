package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/util"
)

// GetSettings reads the singleton settings row, falling back to the defaults
// when the row is missing.
func (d *Database) GetSettings(ctx context.Context) (models.Settings, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.Settings, error) {
		var s models.Settings
		var autoBreaks, autoPomodoros, notifications int64
		err := d.DB.QueryRowContext(ctx, `
			SELECT work_duration, short_break, long_break, sessions_until_long_break,
			       auto_start_breaks, auto_start_pomodoros, notifications_enabled
			FROM settings WHERE id = 1`).Scan(
			&s.WorkDuration, &s.ShortBreak, &s.LongBreak, &s.SessionsUntilLongBreak,
			&autoBreaks, &autoPomodoros, &notifications)
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultSettings(), nil
		}
		if err != nil {
			return models.Settings{}, wrapErr(EntitySettings, "get", "", err)
		}
		s.AutoStartBreaks = util.IntToBool(autoBreaks)
		s.AutoStartPomodoros = util.IntToBool(autoPomodoros)
		s.NotificationsEnabled = util.IntToBool(notifications)
		return s, nil
	})
}

// UpdateSettings merges update into the stored settings and returns the result.
// The merged settings must validate; an empty update returns the current row.
func (d *Database) UpdateSettings(ctx context.Context, update models.SettingsUpdate) (models.Settings, error) {
	current, err := d.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if update.IsEmpty() {
		return current, nil
	}
	next := update.Apply(current)
	if err := next.Validate(); err != nil {
		return models.Settings{}, wrapErr(EntitySettings, "update", "", err)
	}
	err = d.withDBContext(ctx, func(ctx context.Context) error {
		_, err := d.DB.ExecContext(ctx, `
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
			next.WorkDuration, next.ShortBreak, next.LongBreak, next.SessionsUntilLongBreak,
			util.BoolToInt(next.AutoStartBreaks), util.BoolToInt(next.AutoStartPomodoros),
			util.BoolToInt(next.NotificationsEnabled))
		return err
	})
	if err != nil {
		return models.Settings{}, wrapErr(EntitySettings, "update", "", err)
	}
	return next, nil
}
