// Package main implements the pomodoro CLI and terminal timer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/akyairhashvil/pomodoro/internal/app"
	"github.com/akyairhashvil/pomodoro/internal/config"
	"github.com/akyairhashvil/pomodoro/internal/util"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.StartupFailureMessage, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pomodoro",
	Short:         "Pomodoro timer with tasks and statistics",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, config.VersionLabel())
	},
}

var (
	configPath string
	dbPath     string
	logLevel   string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $"+config.ConfigEnvVar+" or the data dir)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file, overrides the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr instead of the log file (subcommands only)")
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The run loop owns the terminal, so it always logs to the file.
	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(cmd.Context())
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	var opts []app.Option
	if verbose {
		opts = append(opts, app.WithLogger(util.NewConsoleLogger(os.Stderr, cfg.Log.Level)))
	}
	return app.New(ctx, cfg, opts...)
}
