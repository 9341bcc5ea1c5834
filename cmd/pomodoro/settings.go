package main

import (
	"encoding/json"
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change timer settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings; only the flags given are updated",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSet,
}

var (
	settingsShowJSON bool

	settingsWork           time.Duration
	settingsShortBreak     time.Duration
	settingsLongBreak      time.Duration
	settingsLongBreakAfter uint32
	settingsAutoBreaks     bool
	settingsAutoPomodoros  bool
	settingsNotifications  bool
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	settingsShowCmd.Flags().BoolVar(&settingsShowJSON, "json", false, "Output as JSON")

	f := settingsSetCmd.Flags()
	f.DurationVar(&settingsWork, "work", 0, "Work session length, e.g. 25m")
	f.DurationVar(&settingsShortBreak, "short-break", 0, "Short break length")
	f.DurationVar(&settingsLongBreak, "long-break", 0, "Long break length")
	f.Uint32Var(&settingsLongBreakAfter, "long-break-after", 0, "Work sessions before a long break")
	f.BoolVar(&settingsAutoBreaks, "auto-start-breaks", false, "Start breaks automatically")
	f.BoolVar(&settingsAutoPomodoros, "auto-start-pomodoros", false, "Start work sessions automatically after a break")
	f.BoolVar(&settingsNotifications, "notifications", true, "Notify when a session completes")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.Store().GetSettings(cmd.Context())
	if err != nil {
		return err
	}
	return printSettings(cmd, s, settingsShowJSON)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	update, err := settingsUpdateFromFlags(cmd)
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.Store().UpdateSettings(cmd.Context(), update)
	if err != nil {
		return err
	}
	return printSettings(cmd, s, false)
}

func settingsUpdateFromFlags(cmd *cobra.Command) (models.SettingsUpdate, error) {
	var u models.SettingsUpdate
	f := cmd.Flags()
	seconds := func(name string, d time.Duration) (*uint32, error) {
		if !f.Changed(name) {
			return nil, nil
		}
		if d < time.Second || d%time.Second != 0 {
			return nil, fmt.Errorf("--%s must be a positive whole number of seconds, got %s", name, d)
		}
		if d/time.Second > math.MaxUint32 {
			return nil, fmt.Errorf("--%s must be at most %d seconds, got %s", name, uint32(math.MaxUint32), d)
		}
		v := uint32(d / time.Second)
		return &v, nil
	}
	var err error
	if u.WorkDuration, err = seconds("work", settingsWork); err != nil {
		return u, err
	}
	if u.ShortBreak, err = seconds("short-break", settingsShortBreak); err != nil {
		return u, err
	}
	if u.LongBreak, err = seconds("long-break", settingsLongBreak); err != nil {
		return u, err
	}
	if f.Changed("long-break-after") {
		u.SessionsUntilLongBreak = &settingsLongBreakAfter
	}
	if f.Changed("auto-start-breaks") {
		u.AutoStartBreaks = &settingsAutoBreaks
	}
	if f.Changed("auto-start-pomodoros") {
		u.AutoStartPomodoros = &settingsAutoPomodoros
	}
	if f.Changed("notifications") {
		u.NotificationsEnabled = &settingsNotifications
	}
	return u, nil
}

func printSettings(cmd *cobra.Command, s models.Settings, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "work_duration\t%s\n", secondsLabel(s.WorkDuration))
	fmt.Fprintf(w, "short_break\t%s\n", secondsLabel(s.ShortBreak))
	fmt.Fprintf(w, "long_break\t%s\n", secondsLabel(s.LongBreak))
	fmt.Fprintf(w, "sessions_until_long_break\t%d\n", s.SessionsUntilLongBreak)
	fmt.Fprintf(w, "auto_start_breaks\t%t\n", s.AutoStartBreaks)
	fmt.Fprintf(w, "auto_start_pomodoros\t%t\n", s.AutoStartPomodoros)
	fmt.Fprintf(w, "notifications_enabled\t%t\n", s.NotificationsEnabled)
	return w.Flush()
}

func secondsLabel(sec uint32) string {
	return (time.Duration(sec) * time.Second).String()
}
