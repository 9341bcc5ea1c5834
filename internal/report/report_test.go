package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/akyairhashvil/pomodoro/internal/testutil"
)

func sampleData() (models.Statistics, []models.Task, []models.PomodoroSession) {
	stats := models.Statistics{TotalPomodoros: 5, TotalTime: 7800, CompletedTasks: 1, TodayPomodoros: 2, TotalTasks: 2}
	tasks := []models.Task{
		testutil.NewTask().WithID("t1").WithTitle("Write *docs*").WithPomodoros(3, 3).Completed().Build(),
		testutil.NewTask().WithID("t2").WithTitle("Café refactor").WithPomodoros(2, 4).Build(),
	}
	sessions := []models.PomodoroSession{
		testutil.NewSession(models.SessionWork).ForTask("t1").At(time.Date(2024, 5, 10, 10, 25, 0, 0, time.UTC)).Build(),
		testutil.NewSession(models.SessionShortBreak).At(time.Date(2024, 5, 10, 10, 30, 0, 0, time.UTC)).Build(),
	}
	return stats, tasks, sessions
}

func TestMarkdown(t *testing.T) {
	stats, tasks, _ := sampleData()
	md := Markdown(stats, tasks)
	for _, want := range []string{
		"| Today | 2 pomodoros |",
		"| Focus time | 2h 10m |",
		"| Tasks done | 1 / 2 |",
		`- [x] Write \*docs\* (3/3)`,
		"- [ ] Café refactor (2/4)",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownWithoutTasks(t *testing.T) {
	md := Markdown(models.Statistics{}, nil)
	if strings.Contains(md, "## Tasks") {
		t.Fatalf("unexpected tasks section:\n%s", md)
	}
}

func TestWritePDF(t *testing.T) {
	stats, tasks, sessions := sampleData()
	path := filepath.Join(t.TempDir(), "reports", "out.pdf")
	if err := WritePDF(path, stats, tasks, sessions, time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)); got != "pomodoro_report_2024-01-02.pdf" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestRender(t *testing.T) {
	stats, tasks, _ := sampleData()
	out := Render(Markdown(stats, tasks), 80)
	for _, want := range []string{"Statistics", "2 pomodoros", "Café refactor"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered output missing %q:\n%s", want, out)
		}
	}
}
