package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/service"
)

func newReplanCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "replan <project-id>",
		Short: "Simulate a replan, then stage and apply or discard it",
		Long: `replan asks the replanning agent for a proposed task and roster
delta, shows it, and walks the draft through stage and apply. Nothing
is persisted until the staged draft is applied; discarding restores
the working state exactly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			replan := service.NewReplanService(session, app.Client, app.Journal)
			sim, err := replan.Simulate(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSimulation(sim))

			stage := yes
			if !yes {
				stage, err = app.confirm("Stage this plan?", false)
				if err != nil {
					return err
				}
			}
			if !stage {
				if err := replan.Discard(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Draft discarded.")
				return nil
			}

			if err := replan.Stage(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, "Plan staged. Sync is paused while the preview is live.")

			apply := yes
			if !yes {
				apply, err = app.confirm("Apply the staged plan?", false)
				if err != nil {
					return err
				}
			}
			if !apply {
				if err := replan.Discard(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Staged draft discarded; working state restored.")
				return nil
			}

			applied, err := replan.Apply(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", applied.Message)
			fmt.Fprintf(out, "Updated %d tasks across %d members (cycle %d, %d notifications sent).\n",
				applied.TasksUpdated, applied.TeamSize, applied.Cycle, applied.NotificationsSent)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Stage and apply without prompting")
	return cmd
}
