package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/akyairhashvil/pomodoro/internal/util"
)

// Config represents the config.toml file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Notify   NotifyConfig   `toml:"notify"`
	UI       UIConfig       `toml:"ui"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	// Path to the database file. Relative paths resolve against the data dir.
	Path string `toml:"path"`
}

// LogConfig controls the structured log output.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives the log while the terminal UI owns stdout.
	File string `toml:"file"`
}

// NotifyConfig selects notification channels.
type NotifyConfig struct {
	Bell bool `toml:"bell"`
	Log  bool `toml:"log"`
}

// UIConfig contains run loop presentation options.
type UIConfig struct {
	Theme string `toml:"theme"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: DBFileName},
		Log:      LogConfig{Level: "info", File: LogFileName},
		Notify:   NotifyConfig{Bell: true, Log: true},
		UI:       UIConfig{Theme: "default"},
	}
}

// DataDir is the directory holding the database, log and config file.
func DataDir() string {
	return util.DataDir(AppName)
}

// DefaultPath returns the config file location, honouring POMODORO_CONFIG.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(ConfigEnvVar)); p != "" {
		return p
	}
	return filepath.Join(DataDir(), ConfigFileName)
}

// Load reads the config file at path. Returns the defaults if the file doesn't exist.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DatabasePath returns the absolute database path.
func (c *Config) DatabasePath() string {
	return c.resolve(c.Database.Path, DBFileName)
}

// LogPath returns the absolute log file path.
func (c *Config) LogPath() string {
	return c.resolve(c.Log.File, LogFileName)
}

func (c *Config) resolve(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(DataDir(), p)
}
