package config

// Layout constants.
const (
	// ProgressWidth is the default width of the timer progress bar.
	ProgressWidth = 40

	// MinProgressWidth is the narrowest the progress bar is allowed to shrink.
	MinProgressWidth = 10

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// TargetTitleWidth is the preferred width for task titles.
	TargetTitleWidth = 40

	// MinTitleWidth is the minimum width for task titles.
	MinTitleWidth = 10
)

// Display limits.
const (
	// MaxVisibleTasks limits tasks shown before scrolling.
	MaxVisibleTasks = 12

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)

// Input constraints.
const (
	// MaxTitleLength is the maximum task title length.
	MaxTitleLength = 100

	// MaxEstimatedPomodoros bounds the estimate accepted from the task form.
	MaxEstimatedPomodoros = 20
)
