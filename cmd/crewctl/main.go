package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lvoisin/crewctl/internal/backend"
	"github.com/lvoisin/crewctl/internal/cli"
	"github.com/lvoisin/crewctl/internal/config"
	"github.com/lvoisin/crewctl/internal/db"
	"github.com/lvoisin/crewctl/internal/repository"
	"github.com/lvoisin/crewctl/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var observer backend.Observer = backend.NoopObserver{}
	if os.Getenv("CREWCTL_LOG_CALLS") != "" {
		observer = backend.NewLogObserver(os.Stderr)
	}
	client := backend.NewClient(backend.Config{
		Endpoint:  cfg.Backend.Endpoint,
		Token:     cfg.Backend.Token,
		TimeoutMs: cfg.Backend.TimeoutMs,
	}, observer)

	app := &cli.App{
		Config: &cfg,
		Client: client,
	}

	// The journal is advisory: if the local database cannot be opened the
	// CLI still runs, it just records nothing.
	if journalPath, err := cfg.JournalPath(); err == nil {
		if database, err := db.OpenDB(journalPath); err == nil {
			defer database.Close()
			app.Journal = repository.NewSQLiteJournalRepo(database)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: journal disabled: %v\n", err)
		}
	}

	var journal service.Journal = service.NoopJournal{}
	if app.Journal != nil {
		journal = app.Journal
	}
	app.Projects = service.NewProjectService(client, journal)

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
