// Package notify delivers session completion messages.
package notify

//go:generate mockgen -source=notify.go -destination=mock_notifier.go -package=notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/rs/zerolog"
)

// Notification is a titled message shown to the user.
type Notification struct {
	Title string
	Body  string
}

// ForCompletion returns the message sent when a session of type t finishes.
func ForCompletion(t models.SessionType) Notification {
	if t == models.SessionWork {
		return Notification{Title: "Pomodoro Complete!", Body: "Great work! Time for a break."}
	}
	return Notification{Title: "Break Complete!", Body: "Ready to focus again?"}
}

// Notifier delivers a notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Bell rings the terminal bell and prints the message to w. A quiet bell
// only rings, leaving the screen to whoever owns it.
type Bell struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// SetQuiet toggles printing the message after the bell.
func (b *Bell) SetQuiet(quiet bool) {
	b.mu.Lock()
	b.quiet = quiet
	b.mu.Unlock()
}

func (b *Bell) Notify(_ context.Context, n Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var err error
	if b.quiet {
		_, err = io.WriteString(b.w, "\a")
	} else {
		_, err = fmt.Fprintf(b.w, "\a%s %s\n", n.Title, n.Body)
	}
	if err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// Log records notifications in the structured log.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Notify(_ context.Context, n Notification) error {
	l.log.Info().Str("title", n.Title).Str("body", n.Body).Msg("notification")
	return nil
}

// Multi fans a notification out to every notifier. All notifiers are tried;
// their errors are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
