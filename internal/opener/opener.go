// Package opener hands files and URLs to the operating system's default handler.
package opener

//go:generate mockgen -source=opener.go -destination=mock_opener.go -package=opener

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

var ErrUnsupportedPlatform = errors.New("no opener for this platform")

// Opener opens a path or URL.
type Opener interface {
	Open(ctx context.Context, target string) error
}

// Runner executes a command and waits for it.
type Runner func(ctx context.Context, name string, args ...string) error

// System opens targets with xdg-open, open or rundll32 depending on GOOS.
type System struct {
	goos string
	run  Runner
}

type Option func(*System)

// WithGOOS overrides the platform used to pick the command.
func WithGOOS(goos string) Option {
	return func(s *System) { s.goos = goos }
}

// WithRunner replaces the command runner.
func WithRunner(run Runner) Option {
	return func(s *System) { s.run = run }
}

func NewSystem(opts ...Option) *System {
	s := &System{goos: runtime.GOOS, run: execRunner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Command returns the program and arguments used to open target.
func (s *System) Command(target string) (string, []string, error) {
	switch s.goos {
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", []string{target}, nil
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, s.goos)
}

func (s *System) Open(ctx context.Context, target string) error {
	name, args, err := s.Command(target)
	if err != nil {
		return err
	}
	if err := s.run(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with status %d", name, exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", name, err)
	}
	return nil
}
