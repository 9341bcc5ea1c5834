package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
)

type TestDataBuilder struct {
	t       *testing.T
	ctx     context.Context
	db      *Database
	clock   *stepClock
	taskIDs []string
}

func NewTestDataBuilder(t *testing.T) *TestDataBuilder {
	t.Helper()
	ctx := context.Background()
	clock := newStepClock(time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local))
	db := setupTestDB(t, ctx, WithClock(clock.Now))
	return &TestDataBuilder{t: t, ctx: ctx, db: db, clock: clock}
}

func (b *TestDataBuilder) WithTasks(count int, estimate uint32) *TestDataBuilder {
	b.t.Helper()
	for i := 0; i < count; i++ {
		task, err := b.db.CreateTask(b.ctx, fmt.Sprintf("Task %d", i+1), estimate)
		if err != nil {
			b.t.Fatalf("CreateTask failed: %v", err)
		}
		b.taskIDs = append(b.taskIDs, task.ID)
	}
	return b
}

// WithWorkSessions records perTask completed work sessions against every task.
func (b *TestDataBuilder) WithWorkSessions(perTask int, duration uint32) *TestDataBuilder {
	b.t.Helper()
	for _, id := range b.taskIDs {
		id := id
		for i := 0; i < perTask; i++ {
			if _, err := b.db.SaveSession(b.ctx, &id, duration, models.SessionWork); err != nil {
				b.t.Fatalf("SaveSession failed: %v", err)
			}
		}
	}
	return b
}

func (b *TestDataBuilder) WithBreak(sessionType models.SessionType, duration uint32) *TestDataBuilder {
	b.t.Helper()
	if _, err := b.db.SaveSession(b.ctx, nil, duration, sessionType); err != nil {
		b.t.Fatalf("SaveSession failed: %v", err)
	}
	return b
}

func (b *TestDataBuilder) Build() *Database {
	return b.db
}

func (b *TestDataBuilder) TaskIDs() []string {
	return b.taskIDs
}
