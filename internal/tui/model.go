// Package tui is the terminal run loop: timer, task list and statistics.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/config"
	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/notify"
	"github.com/akyairhashvil/pomodoro/internal/timer"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Store is the subset of the database the run loop reads and edits.
type Store interface {
	GetTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string, estimatedPomodoros uint32) (models.Task, error)
	UpdateTask(ctx context.Context, id string, update models.TaskUpdate) error
	DeleteTask(ctx context.Context, id string) error
	GetStatistics(ctx context.Context) (models.Statistics, error)
}

// CompletionFunc persists a finished session and notifies the user.
type CompletionFunc func(ctx context.Context, c timer.Completion) error

// Model is the root bubbletea model.
type Model struct {
	ctx        context.Context
	store      Store
	onComplete CompletionFunc
	timer      *timer.Timer
	keys       *HandlerRegistry
	now        func() time.Time

	tasks  []models.Task
	cursor int
	stats  models.Statistics

	progress progress.Model
	input    textinput.Model
	adding   bool

	lastTick      time.Time
	width         int
	height        int
	status        string
	statusIsError bool
}

func NewModel(ctx context.Context, store Store, settings models.Settings, onComplete CompletionFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title [estimate]"
	ti.CharLimit = config.MaxTitleLength + 4
	ti.Width = 50

	m := Model{
		ctx:        ctx,
		store:      store,
		onComplete: onComplete,
		timer:      timer.New(settings),
		keys:       defaultKeys(),
		now:        time.Now,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		input:      ti,
	}
	m.progress.Width = config.ProgressWidth
	m.lastTick = m.now()
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd { return tickCmd() }

// Timer exposes the running timer state.
func (m Model) Timer() *timer.Timer { return m.timer }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		target := config.ProgressWidth
		if m.width < config.CompactModeThreshold {
			target = m.width / 3
		}
		if target < config.MinProgressWidth {
			target = config.MinProgressWidth
		}
		m.progress.Width = target
		return m, nil
	case TickMsg:
		now := time.Time(msg)
		elapsed := now.Sub(m.lastTick)
		m.lastTick = now
		if c, done := m.timer.Tick(elapsed); done {
			m.complete(c)
		}
		return m, tickCmd()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.adding {
			return m.updateAdding(msg)
		}
		// Clear transient messages on keypress
		m.status, m.statusIsError = "", false
		if next, cmd, ok := m.keys.Handle(m, msg.String()); ok {
			return next, cmd
		}
	}
	return m, nil
}

func (m *Model) complete(c timer.Completion) {
	if m.onComplete != nil {
		if err := m.onComplete(m.ctx, c); err != nil {
			m.setStatusError(fmt.Sprintf("Error saving session: %v", err))
			m.refresh()
			return
		}
	}
	n := notify.ForCompletion(c.SessionType)
	m.setStatus(n.Title + " " + n.Body)
	m.refresh()
}

// refresh reloads tasks and statistics and keeps the cursor in range.
func (m *Model) refresh() {
	tasks, err := m.store.GetTasks(m.ctx)
	if err != nil {
		m.setStatusError(fmt.Sprintf("Error loading tasks: %v", err))
		return
	}
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if id := m.timer.Task(); id != nil && m.taskIndex(*id) < 0 {
		m.timer.SetTask(nil)
	}
	stats, err := m.store.GetStatistics(m.ctx)
	if err != nil {
		m.setStatusError(fmt.Sprintf("Error loading statistics: %v", err))
		return
	}
	m.stats = stats
}

func (m Model) taskIndex(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m Model) currentTask() (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusIsError = msg, false
}

func (m *Model) setStatusError(msg string) {
	m.status, m.statusIsError = msg, true
}
