// Package ui implements the daygrid command line interface.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"daygrid/internal/block"
	"daygrid/internal/config"
	"daygrid/internal/db"
	"daygrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo   block.Repository
	config *config.Config
	root   *cobra.Command
	debug  bool
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo block.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "daygrid",
		Short: "A day timeline for time blocks",
		Long: `Daygrid is a terminal day planner built around a single 24-hour
timeline. Blocks of time live on the strip; drag them to move,
grab an edge to resize, click an empty spot to plant a new one.

Run without arguments to open the interactive timeline.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to daygrid-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.calendarCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.rmCmd())
	a.root.AddCommand(a.recolorCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("daygrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the database lazily so commands that never touch
// storage, like version and config, work without one.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// Close releases the repository if one was opened.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
