package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/akyairhashvil/pomodoro/internal/config"
	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/util"
	tea "github.com/charmbracelet/bubbletea"
)

var errEmptyTitle = errors.New("task title is required")

func handleToggle(m Model, _ string) (Model, tea.Cmd, bool) {
	m.timer.Toggle()
	if m.timer.Running() {
		m.lastTick = m.now()
	}
	return m, nil, true
}

func handleReset(m Model, _ string) (Model, tea.Cmd, bool) {
	m.timer.Reset()
	return m, nil, true
}

func handleSwitch(m Model, key string) (Model, tea.Cmd, bool) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 1 || idx > len(models.SessionTypes) {
		return m, nil, false
	}
	if err := m.timer.Switch(models.SessionTypes[idx-1]); err != nil {
		m.setStatusError(err.Error())
	}
	return m, nil, true
}

func handleAdd(m Model, _ string) (Model, tea.Cmd, bool) {
	m.adding = true
	m.input.Reset()
	return m, m.input.Focus(), true
}

func handleSelect(m Model, _ string) (Model, tea.Cmd, bool) {
	task, ok := m.currentTask()
	if !ok {
		return m, nil, true
	}
	if cur := m.timer.Task(); cur != nil && *cur == task.ID {
		m.timer.SetTask(nil)
		return m, nil, true
	}
	m.timer.SetTask(&task.ID)
	return m, nil, true
}

func handleMove(m Model, key string) (Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	}
	m.cursor = util.Clamp(m.cursor, 0, max(len(m.tasks)-1, 0))
	return m, nil, true
}

func handleToggleDone(m Model, _ string) (Model, tea.Cmd, bool) {
	task, ok := m.currentTask()
	if !ok {
		return m, nil, true
	}
	done := !task.Completed
	if err := m.store.UpdateTask(m.ctx, task.ID, models.TaskUpdate{Completed: &done}); err != nil {
		m.setStatusError(fmt.Sprintf("Error updating task: %v", err))
		return m, nil, true
	}
	m.refresh()
	return m, nil, true
}

func handleDelete(m Model, _ string) (Model, tea.Cmd, bool) {
	task, ok := m.currentTask()
	if !ok {
		return m, nil, true
	}
	if err := m.store.DeleteTask(m.ctx, task.ID); err != nil {
		m.setStatusError(fmt.Sprintf("Error deleting task: %v", err))
		return m, nil, true
	}
	m.refresh()
	return m, nil, true
}

func handleQuit(m Model, _ string) (Model, tea.Cmd, bool) {
	return m, tea.Quit, true
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.adding = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		title, estimate, err := parseTaskInput(m.input.Value())
		if err != nil {
			m.setStatusError(err.Error())
			return m, nil
		}
		if _, err := m.store.CreateTask(m.ctx, title, estimate); err != nil {
			m.setStatusError(fmt.Sprintf("Error adding task: %v", err))
			return m, nil
		}
		m.adding = false
		m.input.Blur()
		m.input.Reset()
		m.status, m.statusIsError = "", false
		m.cursor = 0
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// parseTaskInput splits "Title words [estimate]". A trailing number within
// 1..MaxEstimatedPomodoros is the estimate; otherwise the estimate is 1.
func parseTaskInput(raw string) (string, uint32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", 0, errEmptyTitle
	}
	title, estimate := raw, uint32(1)
	if i := strings.LastIndexByte(raw, ' '); i > 0 {
		if n, err := strconv.ParseUint(raw[i+1:], 10, 32); err == nil && n >= 1 && n <= config.MaxEstimatedPomodoros {
			title, estimate = strings.TrimSpace(raw[:i]), uint32(n)
		}
	}
	if utf8.RuneCountInString(title) > config.MaxTitleLength {
		return "", 0, fmt.Errorf("task title longer than %d characters", config.MaxTitleLength)
	}
	return title, estimate, nil
}
