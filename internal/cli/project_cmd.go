package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/cli/formatter"
	"github.com/lvoisin/crewctl/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and list projects",
	}
	cmd.AddCommand(newProjectCreateCmd(app), newProjectListCmd(app))
	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var (
		description string
		deadline    string
		skills      []string
		experience  float64
		teamSize    int
		preview     bool
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a draft project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]

			if preview {
				entries, err := app.Projects.MatchPreview(cmd.Context(), backend.MatchPreviewRequest{
					Title:              title,
					Description:        description,
					RequiredSkills:     skills,
					ExperienceRequired: experience,
					TeamSize:           teamSize,
				})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMatchPreview(entries))
				return nil
			}

			req := backend.ProjectCreate{
				Title:              title,
				Description:        description,
				ExperienceRequired: experience,
			}
			if deadline != "" {
				req.Deadline = &deadline
			}
			for _, s := range skills {
				req.RequiredSkills = append(req.RequiredSkills, domain.RequiredSkill{
					Name:  s,
					Level: domain.SkillMid,
				})
			}

			p, err := app.Projects.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Title, p.ID.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Required skill (repeatable)")
	cmd.Flags().Float64Var(&experience, "experience", 0, "Required years of experience")
	cmd.Flags().IntVar(&teamSize, "team-size", 0, "Desired team size")
	cmd.Flags().BoolVar(&preview, "preview", false, "Run a match preview instead of saving")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), domain.ProjectStatus(status))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (draft|finalized)")
	return cmd
}
