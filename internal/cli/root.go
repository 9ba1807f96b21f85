// Package cli implements the ecostats command line: one-shot queries, station
// reports, dataset import, the HTTP server and the interactive chat.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/config"
	"github.com/alexanderramin/ecostats/internal/service"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Config    config.Config
	Knowledge chatbot.Knowledge
	Stations  service.StationService
	Chat      service.ChatService

	// Logger is handed to the HTTP server. Nil discards.
	Logger *zap.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "ecostats" command and registers all
// subcommands against the provided App. Without arguments it opens the chat
// when attached to a terminal.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ecostats",
		Short:         "Asistente de datos ambientales de la red RACiMo en Santander",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runChatTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newChatCmd(app),
		newAskCmd(app),
		newStationsCmd(app),
		newStationCmd(app),
		newVariablesCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}
