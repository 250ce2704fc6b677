package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/engine"
	"github.com/lvoisin/crewctl/internal/health"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <project-id>",
		Short: "Follow the project live: background sync plus health checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs a terminal")
			}

			session, err := app.OpenSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			events := make(chan tea.Msg, 16)
			// Non-blocking sends so the loops never stall on a closed UI.
			push := func(msg tea.Msg) {
				select {
				case events <- msg:
				default:
				}
			}

			sync := engine.NewSyncLoop(session, app.Client, app.Config.ProjectInterval())
			sync.OnUpdate = func(snap engine.Snapshot) { push(watchSyncMsg{snap: snap}) }
			sync.OnError = func(err error) { push(watchErrMsg{err: err}) }

			monitor := health.NewMonitor(session, app.Client, app.Config.HealthInterval())
			monitor.OnVerdict = func(v health.ClassifyResult) { push(watchVerdictMsg{verdict: v}) }
			monitor.OnError = func(err error) { push(watchErrMsg{err: err}) }

			sync.Start(cmd.Context())
			monitor.Start(cmd.Context())
			defer sync.Stop()
			defer monitor.Stop()

			program := tea.NewProgram(newWatchModel(session, events))
			_, err = program.Run()
			return err
		},
	}
}
