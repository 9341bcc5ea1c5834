// Package util provides common utilities including logging helpers,
// file system paths, and small conversion functions.
package util

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a timestamped zerolog logger writing to w.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewConsoleLogger writes human readable lines to w.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	return NewLogger(zerolog.ConsoleWriter{Out: w, NoColor: true}, level)
}

// OpenLogFile appends to the log file at path, creating its directory.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component returns a child logger tagged with the component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogError logs an error with context if it is non-nil.
func LogError(log zerolog.Logger, context string, err error) {
	if err != nil {
		log.Error().Err(err).Msg(context)
	}
}
