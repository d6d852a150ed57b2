package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/minitrack/internal/config"
	"github.com/faizmokh/minitrack/internal/files"
	"github.com/faizmokh/minitrack/internal/logbook"
	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/storage"
	"github.com/faizmokh/minitrack/internal/storage/sqlite"
	"github.com/faizmokh/minitrack/internal/ui"
)

// App carries the collaborators every command needs.
type App struct {
	Config config.Config
	Store  storage.Store
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) today() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return puzzle.Today(now())
}

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minitrack",
		Short: "Track daily mini puzzle solve times from your terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ui.NewModel(ctx, ui.Options{
				Store:      app.Store,
				User:       app.Config.User,
				Start:      app.Config.Start(),
				Thresholds: app.Config.Thresholds(),
				Clock:      app.Now,
			})
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newLogCommand(ctx, app),
		newDeleteCommand(ctx, app),
		newTrackerCommand(ctx, app),
		newStatsCommand(ctx, app),
		newImportCommand(ctx, app),
		newExportCommand(ctx, app),
		newServeCommand(ctx, app),
		newVersionCommand(),
	)

	return cmd
}

// OpenStore opens the backend selected by cfg.
func OpenStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	manager, err := files.NewManager(cfg.Home)
	if err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case config.BackendMarkdown:
		if err := manager.EnsureBase(); err != nil {
			return nil, err
		}
		return logbook.NewStore(manager), nil
	default:
		return sqlite.Open(ctx, manager.DatabasePath())
	}
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cmd := NewRootCommand(ctx, &App{Config: cfg, Store: store})
	return cmd.ExecuteContext(ctx)
}

// Main is a helper used by cmd/minitrack/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
