package config

import "fmt"

// Build metadata, overridden with -ldflags "-X".
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// VersionLabel returns the version with commit and build time when known.
func VersionLabel() string {
	label := Version
	if GitCommit != "unknown" || BuildTime != "unknown" {
		label = fmt.Sprintf("%s (%s %s)", Version, GitCommit, BuildTime)
	}
	return label
}
