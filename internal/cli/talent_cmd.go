package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/ident"
	"github.com/lvoisin/crewctl/internal/service"
)

func newTalentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "talent",
		Short: "Browse the directory and manage the roster by hand",
	}
	cmd.AddCommand(newTalentListCmd(app), newTalentHireCmd(app), newTalentReleaseCmd(app))
	return cmd
}

func newTalentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List employees not yet on the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			talent := service.NewTalentService(session, app.Client, app.Journal)
			candidates, err := talent.Available(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintln(out, formatter.Dim("No available candidates."))
				return nil
			}
			rows := make([][]string, 0, len(candidates))
			for _, c := range candidates {
				skills := make([]string, 0, len(c.Skills))
				for _, s := range c.Skills {
					skills = append(skills, s.Name)
				}
				rows = append(rows, []string{
					c.Profile.ID.String(),
					c.Profile.FullName,
					c.Profile.Specialization,
					strings.Join(skills, ", "),
				})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"ID", "Name", "Specialization", "Skills"}, rows))
			return nil
		},
	}
}

func newTalentHireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hire <project-id> <employee-id>",
		Short: "Add an employee to the roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			talent := service.NewTalentService(session, app.Client, app.Journal)
			resp, err := talent.Hire(cmd.Context(), ident.ID(args[1]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !resp.Added {
				fmt.Fprintf(out, "%s is already on the roster.\n", resp.Member.Profile.FullName)
				return nil
			}
			fmt.Fprintf(out, "Hired %s. Team size is now %d.\n", resp.Member.Profile.FullName, resp.TeamSize)
			return nil
		},
	}
}

func newTalentReleaseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "release <project-id> <employee-id>",
		Short: "Remove a member and return their task to the pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			talent := service.NewTalentService(session, app.Client, app.Journal)
			resp, err := talent.Release(cmd.Context(), ident.ID(args[1]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !resp.ReturnedTaskID.IsZero() {
				fmt.Fprintln(out, "Released; their task went back to the pool.")
			} else {
				fmt.Fprintln(out, "Released.")
			}
			fmt.Fprintf(out, "Team size is now %d.\n", resp.TeamSize)
			return nil
		},
	}
}
