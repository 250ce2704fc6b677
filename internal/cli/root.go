// Package cli wires the cobra command tree for crewctl.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/config"
	"github.com/lvoisin/crewctl/internal/engine"
	"github.com/lvoisin/crewctl/internal/ident"
	"github.com/lvoisin/crewctl/internal/repository"
	"github.com/lvoisin/crewctl/internal/service"
)

// App holds everything CLI commands need: the loaded config, the backend
// client and the local journal. Session-scoped services are constructed
// per command around the session the command opens.
type App struct {
	Config   *config.Config
	Client   backend.Client
	Journal  repository.JournalRepo
	Projects service.ProjectService

	// IsInteractive reports whether stdin is a terminal; confirmation
	// prompts are skipped when it is not.
	IsInteractive func() bool
}

// OpenSession fetches the project and seeds a working session for it.
func (a *App) OpenSession(ctx context.Context, projectID string) (*engine.Session, error) {
	id := ident.ID(projectID)
	session := engine.NewSession(id)
	snap, err := a.Client.FetchProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	session.Seed(snap)
	return session, nil
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "crewctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "crewctl",
		Short: "Operator console for AI-driven project staffing",
		Long: `crewctl drives a remote staffing backend and its AI agents:
decompose a project into tasks, distribute them across matched
employees, simulate and apply replans, watch project health, and
finalize the team.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newProjectCmd(app),
		newStatusCmd(app),
		newDecomposeCmd(app),
		newPoolCmd(app),
		newDistributeCmd(app),
		newTalentCmd(app),
		newReplanCmd(app),
		newHealthCmd(app),
		newFinalizeCmd(app),
		newLogCmd(app),
		newWatchCmd(app),
	)

	return root
}
