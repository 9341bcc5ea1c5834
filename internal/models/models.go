package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/config"
)

var (
	ErrInvalidSessionType = errors.New("invalid session type")
	ErrInvalidSettings    = errors.New("invalid settings")
)

// SessionType enumerates the kinds of timer intervals.
type SessionType string

const (
	SessionWork       SessionType = "work"
	SessionShortBreak SessionType = "short_break"
	SessionLongBreak  SessionType = "long_break"
)

// SessionTypes lists every valid session type in cycle order.
var SessionTypes = []SessionType{SessionWork, SessionShortBreak, SessionLongBreak}

// Validate reports ErrInvalidSessionType for anything outside the three known types.
func (t SessionType) Validate() error {
	switch t {
	case SessionWork, SessionShortBreak, SessionLongBreak:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSessionType, string(t))
}

// IsBreak reports whether the session is one of the break types.
func (t SessionType) IsBreak() bool {
	return t == SessionShortBreak || t == SessionLongBreak
}

// Label returns a human readable name.
func (t SessionType) Label() string {
	switch t {
	case SessionWork:
		return "Focus"
	case SessionShortBreak:
		return "Short Break"
	case SessionLongBreak:
		return "Long Break"
	}
	return string(t)
}

func (t *SessionType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := SessionType(raw)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseSessionType converts user input into a SessionType.
func ParseSessionType(s string) (SessionType, error) {
	t := SessionType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Task is a unit of work tracked in pomodoros.
type Task struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Completed          bool   `json:"completed"`
	PomodorosCompleted uint32 `json:"pomodoros_completed"`
	EstimatedPomodoros uint32 `json:"estimated_pomodoros"`
	CreatedAt          string `json:"created_at"`
}

// PomodoroSession records a finished timer interval. TaskID is nil for breaks
// and for work sessions that were not attached to a task.
type PomodoroSession struct {
	TaskID      *string     `json:"task_id"`
	Duration    uint32      `json:"duration"`
	CompletedAt string      `json:"completed_at"`
	SessionType SessionType `json:"session_type"`
}

// Settings is the singleton timer configuration. Durations are in seconds.
type Settings struct {
	WorkDuration           uint32 `json:"work_duration"`
	ShortBreak             uint32 `json:"short_break"`
	LongBreak              uint32 `json:"long_break"`
	SessionsUntilLongBreak uint32 `json:"sessions_until_long_break"`
	AutoStartBreaks        bool   `json:"auto_start_breaks"`
	AutoStartPomodoros     bool   `json:"auto_start_pomodoros"`
	NotificationsEnabled   bool   `json:"notifications_enabled"`
}

// DefaultSettings returns the values used when no settings row exists.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:           uint32(config.DefaultWorkDuration / time.Second),
		ShortBreak:             uint32(config.DefaultShortBreak / time.Second),
		LongBreak:              uint32(config.DefaultLongBreak / time.Second),
		SessionsUntilLongBreak: config.DefaultLongBreakAfter,
		AutoStartBreaks:        false,
		AutoStartPomodoros:     false,
		NotificationsEnabled:   true,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.WorkDuration == 0:
		return fmt.Errorf("%w: work_duration must be positive", ErrInvalidSettings)
	case s.ShortBreak == 0:
		return fmt.Errorf("%w: short_break must be positive", ErrInvalidSettings)
	case s.LongBreak == 0:
		return fmt.Errorf("%w: long_break must be positive", ErrInvalidSettings)
	case s.SessionsUntilLongBreak == 0:
		return fmt.Errorf("%w: sessions_until_long_break must be positive", ErrInvalidSettings)
	}
	return nil
}

// DurationFor returns the configured length in seconds of the given session type.
func (s Settings) DurationFor(t SessionType) uint32 {
	switch t {
	case SessionShortBreak:
		return s.ShortBreak
	case SessionLongBreak:
		return s.LongBreak
	default:
		return s.WorkDuration
	}
}

// Statistics aggregates session and task counters.
type Statistics struct {
	TotalPomodoros uint32 `json:"total_pomodoros"`
	TotalTime      uint64 `json:"total_time"`
	CompletedTasks uint32 `json:"completed_tasks"`
	TodayPomodoros uint32 `json:"today_pomodoros"`
	TotalTasks     uint32 `json:"total_tasks"`
}

// TimestampLayout is the fixed-width UTC layout used for stored timestamps, so
// that lexical order in SQL matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout after converting to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts TimestampLayout and plain RFC 3339 values.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// TaskUpdate carries a partial task update. Nil fields are left unchanged.
type TaskUpdate struct {
	Title              *string
	Completed          *bool
	EstimatedPomodoros *uint32
	PomodorosCompleted *uint32
}

func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Completed == nil && u.EstimatedPomodoros == nil && u.PomodorosCompleted == nil
}

// SettingsUpdate carries a partial settings update. Nil fields are left unchanged.
type SettingsUpdate struct {
	WorkDuration           *uint32
	ShortBreak             *uint32
	LongBreak              *uint32
	SessionsUntilLongBreak *uint32
	AutoStartBreaks        *bool
	AutoStartPomodoros     *bool
	NotificationsEnabled   *bool
}

func (u SettingsUpdate) IsEmpty() bool {
	return u.WorkDuration == nil && u.ShortBreak == nil && u.LongBreak == nil &&
		u.SessionsUntilLongBreak == nil && u.AutoStartBreaks == nil &&
		u.AutoStartPomodoros == nil && u.NotificationsEnabled == nil
}

// Apply returns s with every non-nil field of u applied.
func (u SettingsUpdate) Apply(s Settings) Settings {
	if u.WorkDuration != nil {
		s.WorkDuration = *u.WorkDuration
	}
	if u.ShortBreak != nil {
		s.ShortBreak = *u.ShortBreak
	}
	if u.LongBreak != nil {
		s.LongBreak = *u.LongBreak
	}
	if u.SessionsUntilLongBreak != nil {
		s.SessionsUntilLongBreak = *u.SessionsUntilLongBreak
	}
	if u.AutoStartBreaks != nil {
		s.AutoStartBreaks = *u.AutoStartBreaks
	}
	if u.AutoStartPomodoros != nil {
		s.AutoStartPomodoros = *u.AutoStartPomodoros
	}
	if u.NotificationsEnabled != nil {
		s.NotificationsEnabled = *u.NotificationsEnabled
	}
	return s
}
