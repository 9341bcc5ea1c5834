package config

import "time"

// Timer defaults, mirrored by the seeded settings row.
const (
	DefaultWorkDuration    = 25 * time.Minute
	DefaultShortBreak      = 5 * time.Minute
	DefaultLongBreak       = 15 * time.Minute
	DefaultLongBreakAfter  = 4
	TickInterval           = time.Second
	DefaultDBTimeout       = 5 * time.Second
	DefaultDBBusyTimeoutMS = 5000
)

// Application settings.
const (
	AppName        = "pomodoro"
	DBFileName     = "pomodoro.db"
	ConfigFileName = "config.toml"
	LogFileName    = "pomodoro.log"
	ConfigEnvVar   = "POMODORO_CONFIG"
)

// StartupFailureMessage prefixes the diagnostic printed when assembly or the run loop fails.
const StartupFailureMessage = "error while running pomodoro application"
