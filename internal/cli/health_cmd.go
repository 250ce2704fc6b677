package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/health"
)

func newHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health <project-id>",
		Short: "Check the project's health",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			monitor := health.NewMonitor(session, app.Client, app.Config.HealthInterval())
			verdict, err := monitor.Check(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHealth(verdict))
			return nil
		},
	}
}
