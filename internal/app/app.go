// Package app assembles the opener, notifier and store and runs the
// terminal loop on top of them.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/config"
	"github.com/akyairhashvil/pomodoro/internal/database"
	"github.com/akyairhashvil/pomodoro/internal/notify"
	"github.com/akyairhashvil/pomodoro/internal/opener"
	"github.com/akyairhashvil/pomodoro/internal/report"
	"github.com/akyairhashvil/pomodoro/internal/timer"
	"github.com/akyairhashvil/pomodoro/internal/tui"
	"github.com/akyairhashvil/pomodoro/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Component names, in registration order.
const (
	ComponentOpener   = "opener"
	ComponentNotifier = "notifier"
	ComponentStore    = "store"
)

var ErrNotTerminal = errors.New("stdin is not a terminal")

type App struct {
	cfg        *config.Config
	log        zerolog.Logger
	logFile    io.Closer
	now        func() time.Time
	opener     opener.Opener
	notifier   notify.Notifier
	bell       *notify.Bell
	store      *database.Database
	components []string
}

type options struct {
	log      *zerolog.Logger
	opener   opener.Opener
	notifier notify.Notifier
	now      func() time.Time
	bellOut  io.Writer
}

type Option func(*options)

// WithLogger replaces the file logger built from the config.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = &log }
}

func WithOpener(op opener.Opener) Option {
	return func(o *options) { o.opener = op }
}

func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithClock sets the time source shared by the store and reports.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func withBellWriter(w io.Writer) Option {
	return func(o *options) { o.bellOut = w }
}

// New registers the opener, notifier and store in that order. Any failure
// releases what was already acquired.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, now: o.now}
	if o.log != nil {
		a.log = *o.log
	} else {
		f, err := util.OpenLogFile(cfg.LogPath())
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		a.log = util.NewLogger(f, cfg.Log.Level)
	}
	log := util.Component(a.log, "app")

	a.opener = o.opener
	if a.opener == nil {
		a.opener = opener.NewSystem()
	}
	a.register(log, ComponentOpener)

	a.notifier = o.notifier
	if a.notifier == nil {
		a.notifier = a.defaultNotifier(o.bellOut)
	}
	a.register(log, ComponentNotifier)

	store, err := database.Open(ctx, cfg.DatabasePath(),
		database.WithLogger(util.Component(a.log, "database")),
		database.WithClock(a.now))
	if err != nil {
		log.Error().Err(err).Msg("store registration failed")
		a.closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = store
	a.register(log, ComponentStore)
	return a, nil
}

func (a *App) register(log zerolog.Logger, name string) {
	a.components = append(a.components, name)
	log.Info().Str("registered", name).Int("position", len(a.components)).Msg("component registered")
}

func (a *App) defaultNotifier(bellOut io.Writer) notify.Notifier {
	var multi notify.Multi
	if a.cfg.Notify.Bell {
		if bellOut == nil {
			bellOut = os.Stderr
		}
		a.bell = notify.NewBell(bellOut)
		multi = append(multi, a.bell)
	}
	if a.cfg.Notify.Log {
		multi = append(multi, notify.NewLog(util.Component(a.log, "notify")))
	}
	return multi
}

// Components returns the registered component names in order.
func (a *App) Components() []string {
	out := make([]string, len(a.components))
	copy(out, a.components)
	return out
}

func (a *App) Store() *database.Database { return a.store }

func (a *App) Logger() zerolog.Logger { return a.log }

// CompleteSession records a finished session and notifies the user when
// notifications are enabled. A work session whose task was deleted meanwhile
// is recorded without a task.
func (a *App) CompleteSession(ctx context.Context, c timer.Completion) error {
	log := util.Component(a.log, "app")
	_, err := a.store.SaveSession(ctx, c.TaskID, c.Duration, c.SessionType)
	if errors.Is(err, database.ErrTaskNotFound) {
		log.Warn().Str("task_id", *c.TaskID).Msg("task gone, recording session without task")
		_, err = a.store.SaveSession(ctx, nil, c.Duration, c.SessionType)
	}
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	log.Info().Str("session_type", string(c.SessionType)).Uint32("duration", c.Duration).Msg("session completed")

	settings, err := a.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		return nil
	}
	util.LogError(log, "notification failed", a.notifier.Notify(ctx, notify.ForCompletion(c.SessionType)))
	return nil
}

// ExportReport writes the PDF report to path, or to the reports directory when
// path is empty, and returns where it was written.
func (a *App) ExportReport(ctx context.Context, path string, open bool) (string, error) {
	now := a.now()
	if path == "" {
		path = filepath.Join(util.ReportsDir(config.AppName), report.FileName(now))
	}
	stats, err := a.store.GetStatistics(ctx)
	if err != nil {
		return "", err
	}
	tasks, err := a.store.GetTasks(ctx)
	if err != nil {
		return "", err
	}
	sessions, err := a.store.GetSessions(ctx)
	if err != nil {
		return "", err
	}
	if err := report.WritePDF(path, stats, tasks, sessions, now); err != nil {
		return "", err
	}
	log := util.Component(a.log, "app")
	log.Info().Str("path", path).Msg("report written")
	if open {
		if err := a.opener.Open(ctx, path); err != nil {
			return path, err
		}
	}
	return path, nil
}

// Run starts the terminal loop and blocks until the user quits.
func (a *App) Run(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}
	settings, err := a.store.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !tui.SetTheme(a.cfg.UI.Theme) {
		log := util.Component(a.log, "app")
		log.Warn().Str("theme", a.cfg.UI.Theme).Msg("unknown theme, using default")
	}
	defer a.quietBell()()
	model := tui.NewModel(ctx, a.store, settings, a.CompleteSession)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run loop: %w", err)
	}
	return nil
}

// quietBell stops the bell from printing over the alternate screen; the
// status line shows the message instead. The returned func restores it.
func (a *App) quietBell() func() {
	if a.bell == nil {
		return func() {}
	}
	a.bell.SetQuiet(true)
	return func() { a.bell.SetQuiet(false) }
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var errs []error
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	errs = append(errs, a.closeLog())
	return errors.Join(errs...)
}

func (a *App) closeLog() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}
