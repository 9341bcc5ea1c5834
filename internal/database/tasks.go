package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/util"
	"github.com/google/uuid"
)

const taskColumns = "id, title, completed, pomodoros_completed, estimated_pomodoros, created_at"

// CreateTask inserts a new open task with a generated ID.
func (d *Database) CreateTask(ctx context.Context, title string, estimatedPomodoros uint32) (models.Task, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.Task, error) {
		title = strings.TrimSpace(title)
		if title == "" {
			return models.Task{}, wrapErr(EntityTask, "create", "", ErrInvalidTitle)
		}
		task := models.Task{
			ID:                 uuid.NewString(),
			Title:              title,
			EstimatedPomodoros: estimatedPomodoros,
			CreatedAt:          d.timestamp(),
		}
		_, err := d.DB.ExecContext(ctx,
			"INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, 0, 0, ?, ?)",
			task.ID, task.Title, task.EstimatedPomodoros, task.CreatedAt)
		if err != nil {
			return models.Task{}, wrapErr(EntityTask, "create", task.ID, err)
		}
		return task, nil
	})
}

// GetTasks returns every task, newest first.
func (d *Database) GetTasks(ctx context.Context) ([]models.Task, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) ([]models.Task, error) {
		rows, err := d.DB.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC, rowid DESC")
		if err != nil {
			return nil, wrapErr(EntityTask, "list", "", err)
		}
		defer rows.Close()

		var tasks []models.Task
		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				return nil, wrapErr(EntityTask, "list", "", err)
			}
			tasks = append(tasks, t)
		}
		if err := rows.Err(); err != nil {
			return nil, wrapErr(EntityTask, "list", "", err)
		}
		return tasks, nil
	})
}

func (d *Database) GetTask(ctx context.Context, id string) (models.Task, error) {
	return withDBContextResult(d, ctx, func(ctx context.Context) (models.Task, error) {
		t, err := scanTask(d.DB.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, wrapErr(EntityTask, "get", id, ErrTaskNotFound)
		}
		if err != nil {
			return models.Task{}, wrapErr(EntityTask, "get", id, err)
		}
		return t, nil
	})
}

// UpdateTask applies the non-nil fields of update. An empty update is a no-op.
func (d *Database) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	return d.withDBContext(ctx, func(ctx context.Context) error {
		var fields []string
		var args []interface{}
		if update.Title != nil {
			title := strings.TrimSpace(*update.Title)
			if title == "" {
				return wrapErr(EntityTask, "update", id, ErrInvalidTitle)
			}
			fields = append(fields, "title = ?")
			args = append(args, title)
		}
		if update.Completed != nil {
			fields = append(fields, "completed = ?")
			args = append(args, util.BoolToInt(*update.Completed))
		}
		if update.EstimatedPomodoros != nil {
			fields = append(fields, "estimated_pomodoros = ?")
			args = append(args, *update.EstimatedPomodoros)
		}
		if update.PomodorosCompleted != nil {
			fields = append(fields, "pomodoros_completed = ?")
			args = append(args, *update.PomodorosCompleted)
		}
		args = append(args, id)

		res, err := d.DB.ExecContext(ctx, "UPDATE tasks SET "+strings.Join(fields, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return wrapErr(EntityTask, "update", id, err)
		}
		return wrapErr(EntityTask, "update", id, requireAffected(res, ErrTaskNotFound))
	})
}

// DeleteTask removes the task. Sessions that referenced it keep their history
// with a NULL task_id.
func (d *Database) DeleteTask(ctx context.Context, id string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		res, err := d.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
		if err != nil {
			return wrapErr(EntityTask, "delete", id, err)
		}
		return wrapErr(EntityTask, "delete", id, requireAffected(res, ErrTaskNotFound))
	})
}

func (d *Database) IncrementTaskPomodoro(ctx context.Context, id string) error {
	return d.withDBContext(ctx, func(ctx context.Context) error {
		res, err := d.DB.ExecContext(ctx, "UPDATE tasks SET pomodoros_completed = pomodoros_completed + 1 WHERE id = ?", id)
		if err != nil {
			return wrapErr(EntityTask, "increment", id, err)
		}
		return wrapErr(EntityTask, "increment", id, requireAffected(res, ErrTaskNotFound))
	})
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var completed int64
	if err := row.Scan(&t.ID, &t.Title, &completed, &t.PomodorosCompleted, &t.EstimatedPomodoros, &t.CreatedAt); err != nil {
		return models.Task{}, err
	}
	t.Completed = util.IntToBool(completed)
	return t, nil
}
