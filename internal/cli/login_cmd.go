package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/config"
)

func newLoginCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the backend bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("--token is required")
			}
			if err := backend.CheckToken(token, time.Now()); err != nil {
				return fmt.Errorf("rejecting token: %w", err)
			}

			cfg := *app.Config
			cfg.Backend.Token = token
			if err := config.Save(cfg); err != nil {
				return err
			}
			app.Config.Backend.Token = token

			fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
			if !app.Client.Available(cmd.Context()) {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: backend at %s is not reachable right now.\n",
					cfg.Backend.Endpoint)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bearer token issued by the backend")
	return cmd
}
