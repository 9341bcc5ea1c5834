package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/config"
	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func truncateLabel(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= max {
		return text
	}
	return ansi.Truncate(text, max, config.TruncationSuffix)
}

func formatRemaining(d time.Duration) string {
	if d <= 0 {
		return "00:00"
	}
	// Round up so a session shows 00:01 until it actually ends.
	secs := (d + time.Second - 1) / time.Second
	return util.FormatClock(uint32(secs))
}

func (m Model) boxed(content string) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(0, 1)
	inner := m.width - lipgloss.Width(frame.Render(""))
	if inner < 1 {
		inner = 1
	}
	return frame.Width(inner).Render(content)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderTasks(), m.renderFooter())
}

func (m Model) renderHeader() string {
	style := CurrentTheme.Focused
	if m.timer.Mode().IsBreak() {
		style = CurrentTheme.Break
	}
	state := "RUNNING"
	if !m.timer.Running() {
		state = "PAUSED"
		style = CurrentTheme.Dim
	}
	line := fmt.Sprintf("%s  |  %s  |  %s  |  %s",
		strings.ToUpper(m.timer.Mode().Label()),
		formatRemaining(m.timer.Remaining()),
		m.progress.ViewAs(m.timer.Progress()),
		state)

	focus := "No task selected"
	if id := m.timer.Task(); id != nil {
		if i := m.taskIndex(*id); i >= 0 {
			focus = "Focus: " + truncateLabel(m.tasks[i].Title, config.TargetTitleWidth)
		}
	}
	stats := fmt.Sprintf("Today %d  |  Total %d  |  %s focused  |  Tasks %d/%d  |  %s v%s",
		m.stats.TodayPomodoros, m.stats.TotalPomodoros, util.FormatTotal(m.stats.TotalTime),
		m.stats.CompletedTasks, m.stats.TotalTasks, config.AppName, config.Version)

	content := lipgloss.JoinVertical(lipgloss.Center,
		style.Render(line),
		CurrentTheme.Highlight.Render(focus),
		CurrentTheme.Dim.Render(stats))
	return m.boxed(lipgloss.PlaceHorizontal(max(m.width-4, 1), lipgloss.Center, content))
}

func (m Model) titleWidth() int {
	w := m.width - 24
	if w > config.TargetTitleWidth && m.width < 2*config.TargetTitleWidth {
		w = config.TargetTitleWidth
	}
	if w < config.MinTitleWidth {
		w = config.MinTitleWidth
	}
	return w
}

func (m Model) renderTasks() string {
	header := CurrentTheme.Header.Render("Tasks")
	if len(m.tasks) == 0 {
		return m.boxed(lipgloss.JoinVertical(lipgloss.Left, header, CurrentTheme.Dim.Render("No tasks yet. Press [a] to add one.")))
	}

	start := 0
	if m.cursor >= config.MaxVisibleTasks {
		start = m.cursor - config.MaxVisibleTasks + 1
	}
	end := min(start+config.MaxVisibleTasks, len(m.tasks))

	var selected string
	if id := m.timer.Task(); id != nil {
		selected = *id
	}
	lines := []string{header}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderTask(m.tasks[i], i == m.cursor, m.tasks[i].ID == selected))
	}
	if hidden := len(m.tasks) - end; hidden > 0 {
		lines = append(lines, CurrentTheme.Dim.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return m.boxed(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderTask(t models.Task, atCursor, focused bool) string {
	prefix := "  "
	if atCursor {
		prefix = "> "
	}
	marker := " "
	if focused {
		marker = "●"
	}
	box := "[ ]"
	style := CurrentTheme.Task
	if t.Completed {
		box = "[x]"
		style = CurrentTheme.CompletedTask
	}
	head := fmt.Sprintf("%s%s %s ", prefix, marker, box)
	if atCursor {
		head = CurrentTheme.Focused.Render(head)
	}
	title := style.Render(truncateLabel(t.Title, m.titleWidth()))
	return head + title + CurrentTheme.Dim.Render(fmt.Sprintf(" %d/%d", t.PomodorosCompleted, t.EstimatedPomodoros))
}

func (m Model) renderFooter() string {
	switch {
	case m.adding:
		return CurrentTheme.Input.Render(m.input.View())
	case m.status != "":
		style := CurrentTheme.Break
		if m.statusIsError {
			style = CurrentTheme.Error
		}
		return m.boxed(style.Render(m.status))
	}
	return m.boxed(CurrentTheme.Dim.Render(strings.ReplaceAll(m.keys.Help(), "|", " | ")))
}
