package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/faizmokh/minitrack/internal/server"
)

func newServeCommand(ctx context.Context, app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP endpoint used by the browser extension.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			srv, err := server.New(server.Options{
				Store:          app.Store,
				Secret:         []byte(cfg.JWTSecret),
				AllowedOrigins: cfg.AllowedOrigins(),
				Start:          cfg.Start(),
				Thresholds:     cfg.Thresholds(),
				CacheTTL:       cfg.CacheTTL,
				Clock:          app.Now,
			})
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.HTTPAddr
			}
			runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(runCtx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: MINITRACK_HTTP_ADDR)")

	return cmd
}
