package main

import (
	"fmt"
	"os"

	"github.com/akyairhashvil/pomodoro/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pomodoro statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a PDF report",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks, sessions and settings as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	statsRaw   bool
	reportOut  string
	reportOpen bool
	exportOut  string
)

func init() {
	rootCmd.AddCommand(statsCmd, reportCmd, exportCmd, importCmd)

	statsCmd.Flags().BoolVar(&statsRaw, "raw", false, "Print markdown without rendering")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output path (default: Documents/Pomodoro)")
	reportCmd.Flags().BoolVar(&reportOpen, "open", false, "Open the report after writing it")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to file instead of stdout")
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.Store().GetStatistics(cmd.Context())
	if err != nil {
		return err
	}
	tasks, err := a.Store().GetTasks(cmd.Context())
	if err != nil {
		return err
	}
	md := report.Markdown(stats, tasks)
	if statsRaw {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), report.Render(md, terminalWidth()))
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	path, err := a.ExportReport(cmd.Context(), reportOut, reportOpen)
	if path != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	}
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.Store().ExportData(cmd.Context())
	if err != nil {
		return err
	}
	if exportOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(exportOut, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Store().ImportData(cmd.Context(), payload); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
	return nil
}
