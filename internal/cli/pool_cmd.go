package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/service"
)

func newPoolCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect and edit the unassigned task pool",
	}
	cmd.AddCommand(newPoolListCmd(app), newPoolAddCmd(app), newPoolRemoveCmd(app))
	return cmd
}

func newPoolListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List pooled tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPool(session.Snapshot().Pool))
			return nil
		},
	}
}

func newPoolAddCmd(app *App) *cobra.Command {
	var (
		description string
		priority    string
		hours       int
		deadline    string
		skills      []string
	)

	cmd := &cobra.Command{
		Use:   "add <project-id> <title>",
		Short: "Add a task to the pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			task := domain.Task{
				Title:          args[1],
				Description:    description,
				Priority:       domain.NormalizePriority(priority),
				EstimatedHours: hours,
				RequiredSkills: skills,
				Deadline:       deadline,
				Status:         domain.TaskBacklog,
			}

			pool := service.NewPoolService(session, app.Client, app.Journal)
			if err := pool.AddTask(cmd.Context(), task); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to the pool.\n", task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (low|medium|high)")
	cmd.Flags().IntVar(&hours, "hours", 8, "Estimated hours")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Required skill (repeatable)")
	return cmd
}

func newPoolRemoveCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "remove <project-id>",
		Short: "Remove a pooled task by its listed number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			pool := service.NewPoolService(session, app.Client, app.Journal)
			if err := pool.RemoveTask(cmd.Context(), index-1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task #%d from the pool.\n", index)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "Task number as shown by pool list (1-based)")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}
