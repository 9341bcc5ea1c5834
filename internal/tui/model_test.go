package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/database"
	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/testutil"
	"github.com/akyairhashvil/pomodoro/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

func setupTestDB(t *testing.T) (*database.Database, context.Context) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	return db, ctx
}

func shortSettings() models.Settings {
	return testutil.NewSettings().WithDurations(2, 1, 1).Build()
}

func setupTestModel(t *testing.T, onComplete CompletionFunc) (Model, *database.Database) {
	t.Helper()
	db, ctx := setupTestDB(t)
	m := NewModel(ctx, db, shortSettings(), onComplete)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), db
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func tick(m Model, d time.Duration) Model {
	next, _ := m.Update(TickMsg(m.lastTick.Add(d)))
	return next.(Model)
}

func TestAddTaskThroughInput(t *testing.T) {
	m, db := setupTestModel(t, nil)
	m = press(t, m, "a")
	if !m.adding {
		t.Fatalf("expected add mode")
	}
	m = typeText(t, m, "Write report 3")
	m = press(t, m, "enter")
	if m.adding {
		t.Fatalf("expected add mode to end")
	}
	tasks, err := db.GetTasks(context.Background())
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Write report" || tasks[0].EstimatedPomodoros != 3 {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if len(m.tasks) != 1 || m.stats.TotalTasks != 1 {
		t.Fatalf("model not refreshed: tasks=%d stats=%+v", len(m.tasks), m.stats)
	}
}

func TestAddTaskEscapeCancels(t *testing.T) {
	m, db := setupTestModel(t, nil)
	m = press(t, m, "a")
	m = typeText(t, m, "abandoned")
	m = press(t, m, "esc")
	if m.adding {
		t.Fatalf("expected add mode to end")
	}
	tasks, _ := db.GetTasks(context.Background())
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestAddTaskEmptyShowsError(t *testing.T) {
	m, _ := setupTestModel(t, nil)
	m = press(t, m, "a")
	m = press(t, m, "enter")
	if !m.adding || !m.statusIsError {
		t.Fatalf("expected error while staying in add mode: adding=%v status=%q", m.adding, m.status)
	}
}

func TestParseTaskInput(t *testing.T) {
	tests := []struct {
		in       string
		title    string
		estimate uint32
		wantErr  bool
	}{
		{"Write docs", "Write docs", 1, false},
		{"Write docs 4", "Write docs", 4, false},
		{"Release v2 99", "Release v2 99", 1, false},
		{"  padded  ", "padded", 1, false},
		{"   ", "", 0, true},
		{strings.Repeat("x", 101), "", 0, true},
	}
	for _, tt := range tests {
		title, estimate, err := parseTaskInput(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseTaskInput(%q) err = %v", tt.in, err)
		}
		if title != tt.title || estimate != tt.estimate {
			t.Fatalf("parseTaskInput(%q) = %q, %d", tt.in, title, estimate)
		}
	}
}

func TestToggleDoneAndDelete(t *testing.T) {
	m, db := setupTestModel(t, nil)
	ctx := context.Background()
	if _, err := db.CreateTask(ctx, "first", 1); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	m.refresh()

	m = press(t, m, "x")
	task, err := db.GetTask(ctx, m.tasks[0].ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if !task.Completed || !m.tasks[0].Completed {
		t.Fatalf("expected task completed")
	}

	m = press(t, m, "d")
	if len(m.tasks) != 0 {
		t.Fatalf("expected task deleted, got %d", len(m.tasks))
	}
	if _, err := db.GetTask(ctx, task.ID); !errors.Is(err, database.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestCursorMovementClamped(t *testing.T) {
	m, db := setupTestModel(t, nil)
	ctx := context.Background()
	for _, title := range []string{"a", "b"} {
		if _, err := db.CreateTask(ctx, title, 1); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	m.refresh()
	m = press(t, m, "k")
	if m.cursor != 0 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	m = press(t, m, "j")
	m = press(t, m, "j")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}
}

func TestTimerKeys(t *testing.T) {
	m, _ := setupTestModel(t, nil)
	m = press(t, m, " ")
	if !m.timer.Running() {
		t.Fatalf("space should start the timer")
	}
	m = press(t, m, "3")
	if m.timer.Mode() != models.SessionLongBreak || m.timer.Running() {
		t.Fatalf("3 should switch to a stopped long break")
	}
	m = press(t, m, "2")
	if m.timer.Mode() != models.SessionShortBreak {
		t.Fatalf("2 should switch to short break")
	}
	m = press(t, m, "1")
	m = press(t, m, " ")
	m = tick(m, time.Second)
	m = press(t, m, "r")
	if m.timer.Running() || m.timer.Remaining() != 2*time.Second {
		t.Fatalf("r should reset: running=%v remaining=%v", m.timer.Running(), m.timer.Remaining())
	}
}

func TestCompletionCallsBackWithSelectedTask(t *testing.T) {
	var got []timer.Completion
	m, db := setupTestModel(t, func(_ context.Context, c timer.Completion) error {
		got = append(got, c)
		return nil
	})
	ctx := context.Background()
	task, err := db.CreateTask(ctx, "focus", 2)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	m.refresh()
	m = press(t, m, "enter")
	if id := m.timer.Task(); id == nil || *id != task.ID {
		t.Fatalf("enter should select the task")
	}

	m = press(t, m, " ")
	m = tick(m, time.Second)
	if len(got) != 0 {
		t.Fatalf("unexpected early completion")
	}
	m = tick(m, time.Second)
	if len(got) != 1 {
		t.Fatalf("expected one completion, got %d", len(got))
	}
	if got[0].SessionType != models.SessionWork || got[0].TaskID == nil || *got[0].TaskID != task.ID {
		t.Fatalf("unexpected completion: %+v", got[0])
	}
	if !strings.Contains(m.status, "Pomodoro Complete!") {
		t.Fatalf("status = %q", m.status)
	}
	if m.timer.Mode() != models.SessionShortBreak {
		t.Fatalf("expected short break, got %s", m.timer.Mode())
	}
}

func TestCompletionErrorShown(t *testing.T) {
	m, _ := setupTestModel(t, func(context.Context, timer.Completion) error {
		return errors.New("disk full")
	})
	m = press(t, m, " ")
	m = tick(m, 5*time.Second)
	if !m.statusIsError || !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected error status, got %q", m.status)
	}
}

func TestDeletingFocusedTaskClearsSelection(t *testing.T) {
	m, db := setupTestModel(t, nil)
	if _, err := db.CreateTask(context.Background(), "gone", 1); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	m.refresh()
	m = press(t, m, "enter")
	m = press(t, m, "d")
	if m.timer.Task() != nil {
		t.Fatalf("expected selection cleared")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := setupTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg for ctrl+c")
	}
}
