package database

import (
	"context"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/util"
)

// GetStatistics counts work sessions (overall and since local midnight), sums
// the duration of every session, and counts tasks.
func (d *Database) GetStatistics(ctx context.Context) (models.Statistics, error) {
	today := models.FormatTimestamp(util.StartOfDay(d.now()))
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.Statistics, error) {
		var total, todayCount, completed, tasks int64
		var totalTime int64
		err := d.DB.QueryRowContext(ctx, `
			SELECT
				(SELECT COUNT(1) FROM sessions WHERE session_type = 'work'),
				(SELECT COALESCE(SUM(duration), 0) FROM sessions),
				(SELECT COUNT(1) FROM tasks WHERE completed = 1),
				(SELECT COUNT(1) FROM sessions WHERE session_type = 'work' AND completed_at >= ?),
				(SELECT COUNT(1) FROM tasks)`, today).Scan(&total, &totalTime, &completed, &todayCount, &tasks)
		if err != nil {
			return models.Statistics{}, wrapErr(EntityStatistics, "get", "", err)
		}
		return models.Statistics{
			TotalPomodoros: uint32(total),
			TotalTime:      uint64(totalTime),
			CompletedTasks: uint32(completed),
			TodayPomodoros: uint32(todayCount),
			TotalTasks:     uint32(tasks),
		}, nil
	})
}
