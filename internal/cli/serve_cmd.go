package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/ecostats/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var port portValue
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Servir la API HTTP y WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if port != "" {
				cfg.Port = string(port)
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, app.Knowledge, app.Stations, app.Chat, app.logger())
			return srv.Run(ctx)
		},
	}
	addPortFlag(cmd.Flags(), &port)
	return cmd
}
