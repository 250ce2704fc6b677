package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/service"
)

func newDecomposeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompose <project-id>",
		Short: "Ask the planner agent to break the project into tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			pool := service.NewPoolService(session, app.Client, app.Journal)
			result, err := pool.Decompose(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatPool(result.Tasks))
			if result.TotalEstimatedHours > 0 {
				fmt.Fprintf(out, "\n%s %.0fh", formatter.Dim("Total estimate:"), result.TotalEstimatedHours)
			}
			if result.RecommendedTeamSize > 0 {
				fmt.Fprintf(out, "  %s %d", formatter.Dim("Recommended team size:"), result.RecommendedTeamSize)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	return cmd
}
