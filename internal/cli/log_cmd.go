package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
)

func newLogCmd(app *App) *cobra.Command {
	var (
		project string
		limit   int
		prune   int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent operator actions from the local journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Journal == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Journal is disabled."))
				return nil
			}

			if prune > 0 {
				if err := app.Journal.Prune(cmd.Context(), prune); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Journal pruned to the newest %d entries.\n", prune)
				return nil
			}

			if project != "" {
				list, err := app.Journal.ListByProject(cmd.Context(), project, limit)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJournal(list))
				return nil
			}

			list, err := app.Journal.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatJournal(list))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Filter by project id")
	cmd.Flags().IntVar(&limit, "limit", 30, "Maximum entries to show")
	cmd.Flags().IntVar(&prune, "prune", 0, "Delete all but the newest N entries and exit")
	return cmd
}
