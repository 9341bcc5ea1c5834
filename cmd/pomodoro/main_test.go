package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"pomodoro": func() int { main(); return 0 },
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata/script",
		Setup: setupScriptEnv,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"taskid": cmdTaskID,
		},
	})
}

func setupScriptEnv(env *testscript.Env) error {
	home := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", home)
	env.Setenv("XDG_DATA_HOME", filepath.Join(env.WorkDir, "data"))
	env.Setenv("XDG_DOCUMENTS_DIR", filepath.Join(env.WorkDir, "docs"))
	return nil
}

// cmdTaskID finds a task by title in the last `task list --json` output and
// stores its ID in an env var.
func cmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: taskid TITLE VAR")
	}
	var tasks []models.Task
	if err := json.Unmarshal([]byte(ts.ReadFile("stdout")), &tasks); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}
	for _, task := range tasks {
		if task.Title == args[0] {
			ts.Setenv(args[1], task.ID)
			return
		}
	}
	ts.Fatalf("task with title %q not found", args[0])
}

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "pomodoro" {
		t.Fatalf("expected root command name pomodoro, got %q", rootCmd.Use)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	oldConfig, oldDB, oldLevel := configPath, dbPath, logLevel
	t.Cleanup(func() { configPath, dbPath, logLevel = oldConfig, oldDB, oldLevel })

	configPath = filepath.Join(dir, "missing.toml")
	dbPath = filepath.Join(dir, "flag.db")
	logLevel = "debug"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.DatabasePath() != dbPath || cfg.Log.Level != "debug" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestSettingsUpdateFromFlags(t *testing.T) {
	if err := settingsSetCmd.Flags().Parse([]string{"--work", "30m", "--notifications=false"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	u, err := settingsUpdateFromFlags(settingsSetCmd)
	if err != nil {
		t.Fatalf("settingsUpdateFromFlags failed: %v", err)
	}
	if u.WorkDuration == nil || *u.WorkDuration != 1800 {
		t.Fatalf("WorkDuration = %v", u.WorkDuration)
	}
	if u.NotificationsEnabled == nil || *u.NotificationsEnabled {
		t.Fatalf("NotificationsEnabled = %v", u.NotificationsEnabled)
	}
	if u.ShortBreak != nil || u.SessionsUntilLongBreak != nil || u.AutoStartBreaks != nil {
		t.Fatalf("unchanged flags should stay nil: %+v", u)
	}
}

func TestSettingsUpdateFromFlagsRejectsOverflow(t *testing.T) {
	if err := settingsSetCmd.Flags().Parse([]string{"--long-break", "1200000h"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	t.Cleanup(func() { settingsLongBreak = 0; settingsSetCmd.Flags().Lookup("long-break").Changed = false })
	_, err := settingsUpdateFromFlags(settingsSetCmd)
	if err == nil || !strings.Contains(err.Error(), "--long-break must be at most") {
		t.Fatalf("expected overflow error, got %v", err)
	}
}
