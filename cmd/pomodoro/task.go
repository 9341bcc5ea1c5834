package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/akyairhashvil/pomodoro/internal/config"
	"github.com/akyairhashvil/pomodoro/internal/models"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRm,
}

var (
	taskAddEstimate uint32
	taskListJSON    bool
	taskDoneUndo    bool
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskRmCmd)

	taskAddCmd.Flags().Uint32VarP(&taskAddEstimate, "estimate", "e", 1, "Estimated pomodoros")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")
	taskDoneCmd.Flags().BoolVar(&taskDoneUndo, "undo", false, "Mark the task not completed")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	if taskAddEstimate > config.MaxEstimatedPomodoros {
		return fmt.Errorf("estimate must be at most %d", config.MaxEstimatedPomodoros)
	}
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.Store().CreateTask(cmd.Context(), strings.Join(args, " "), taskAddEstimate)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", task.ID, task.Title)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, err := a.Store().GetTasks(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if taskListJSON {
		if tasks == nil {
			tasks = []models.Task{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tPOMODOROS\tTITLE")
	for _, t := range tasks {
		done := "no"
		if t.Completed {
			done = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n", t.ID, done, t.PomodorosCompleted, t.EstimatedPomodoros, t.Title)
	}
	return w.Flush()
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	completed := !taskDoneUndo
	if err := a.Store().UpdateTask(cmd.Context(), args[0], models.TaskUpdate{Completed: &completed}); err != nil {
		return err
	}
	state := "completed"
	if !completed {
		state = "reopened"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task %s %s\n", args[0], state)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Store().DeleteTask(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
	return nil
}
