package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/domain"
	"github.com/lvoisin/crewctl/internal/service"
)

func newStatusCmd(app *App) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "status <project-id>",
		Short: "Show the project's working state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			view := service.Status(session, domain.DraftIdle)
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatStatus(view))

			if full {
				snap := session.Snapshot()
				fmt.Fprint(out, "\n"+formatter.FormatPool(snap.Pool))
				fmt.Fprint(out, "\n"+formatter.FormatRoster(snap.Roster))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Include the task pool and roster")
	return cmd
}
