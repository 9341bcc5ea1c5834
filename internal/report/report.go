// Package report renders statistics summaries as Markdown and PDF.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/util"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/go-pdf/fpdf"
)

// FileName returns the default report file name for day.
func FileName(day time.Time) string {
	return fmt.Sprintf("pomodoro_report_%s.pdf", day.Format("2006-01-02"))
}

// Markdown renders the statistics panel and task progress.
func Markdown(stats models.Statistics, tasks []models.Task) string {
	var b strings.Builder
	b.WriteString("# Statistics\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Today | %d pomodoros |\n", stats.TodayPomodoros)
	fmt.Fprintf(&b, "| Total | %d pomodoros |\n", stats.TotalPomodoros)
	fmt.Fprintf(&b, "| Focus time | %s |\n", util.FormatTotal(stats.TotalTime))
	fmt.Fprintf(&b, "| Tasks done | %d / %d |\n", stats.CompletedTasks, stats.TotalTasks)

	if len(tasks) == 0 {
		return b.String()
	}
	b.WriteString("\n## Tasks\n\n")
	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (%d/%d)\n", box, escapeMarkdown(t.Title), t.PomodorosCompleted, t.EstimatedPomodoros)
	}
	return b.String()
}

// Render formats markdown for terminal output with the plain ASCII style.
// The input is returned unchanged if rendering fails.
func Render(md string, width int) string {
	if width < 1 {
		width = 1
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

// WritePDF writes a one-page report to path, creating parent directories.
// Sessions are listed newest first as given.
func WritePDF(path string, stats models.Statistics, tasks []models.Task, sessions []models.PomodoroSession, now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Pomodoro Report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Pomodoro Report: %s", now.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Statistics")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Today: %d pomodoros", stats.TodayPomodoros),
		fmt.Sprintf("Total: %d pomodoros", stats.TotalPomodoros),
		fmt.Sprintf("Focus time: %s", util.FormatTotal(stats.TotalTime)),
		fmt.Sprintf("Tasks completed: %d of %d", stats.CompletedTasks, stats.TotalTasks),
	} {
		pdf.Cell(0, 8, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Tasks")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	if len(tasks) == 0 {
		pdf.Cell(0, 8, "  - No tasks.")
		pdf.Ln(8)
	}
	for _, t := range tasks {
		status := "[ ]"
		if t.Completed {
			status = "[x]"
		}
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%s %s (%d/%d)", status, t.Title, t.PomodorosCompleted, t.EstimatedPomodoros)), "", "", false)
	}
	pdf.Ln(6)

	if len(sessions) > 0 {
		titles := make(map[string]string, len(tasks))
		for _, t := range tasks {
			titles[t.ID] = t.Title
		}
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Sessions")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for _, s := range sessions {
			when := s.CompletedAt
			if ts, err := models.ParseTimestamp(s.CompletedAt); err == nil {
				when = ts.In(now.Location()).Format("2006-01-02 15:04")
			}
			line := fmt.Sprintf("[%s] %s %s", when, s.SessionType.Label(), util.FormatClock(s.Duration))
			if s.TaskID != nil {
				if title, ok := titles[*s.TaskID]; ok {
					line += " - " + title
				}
			}
			pdf.MultiCell(0, 6, tr(line), "", "", false)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
