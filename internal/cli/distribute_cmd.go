package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/contract"
	"github.com/lvoisin/crewctl/internal/service"
)

func newDistributeCmd(app *App) *cobra.Command {
	var (
		teamSize int
		preview  bool
		finalize bool
	)

	cmd := &cobra.Command{
		Use:   "distribute <project-id>",
		Short: "Match pooled tasks to employees and staff the team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			dist := service.NewDistributionService(session, app.Client, app.Journal)
			resp, err := dist.Distribute(cmd.Context(), contract.DistributeRequest{
				TeamSize: teamSize,
				Preview:  preview,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatDistribution(resp, preview))

			if finalize && !preview {
				fin := service.NewFinalizeService(session, app.Client, app.Journal)
				result, err := fin.Finalize(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nFinalized with %d members, %d tasks written.\n",
					result.TeamSize, result.TasksWritten)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&teamSize, "team-size", 0, "Cap on hires (0 lets the backend choose)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Show matches without changing the roster")
	cmd.Flags().BoolVar(&finalize, "finalize", false, "Persist the staffed team after distribution")
	return cmd
}
