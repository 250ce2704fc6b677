package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/service"
)

func newFinalizeCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "finalize <project-id>",
		Short: "Persist the roster and task plan, locking the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			snap := session.Snapshot()
			ok := yes
			if !yes {
				prompt := fmt.Sprintf("Finalize %q with %d members? This cannot be undone.",
					snap.Project.Title, len(snap.Roster))
				ok, err = app.confirm(prompt, false)
				if err != nil {
					return err
				}
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			fin := service.NewFinalizeService(session, app.Client, app.Journal)
			resp, err := fin.Finalize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Finalized %s: %d members, %d tasks written.\n",
				resp.ProjectID.String(), resp.TeamSize, resp.TasksWritten)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Finalize without prompting")
	return cmd
}
