package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/ecostats/internal/cli/formatter"
)

func newAskCmd(app *App) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   `ask "<pregunta>"`,
		Short: "Hacer una pregunta suelta",
		Long:  "Responde una pregunta en lenguaje natural, por ejemplo: ecostats ask temperatura máxima de Halley UIS",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			question := strings.Join(args, " ")

			view, err := app.Chat.Start(ctx)
			if err != nil {
				return fmt.Errorf("starting session: %w", err)
			}
			defer func() { _ = app.Chat.End(context.Background(), view.State.ID) }()

			reply, err := app.Chat.Ask(ctx, view.State.ID, question)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.RenderMarkdown(reply.Message.Text))
			if verbose && reply.Intent != nil {
				in := reply.Intent
				station := "-"
				if in.HasStation() {
					station = in.Station.Name
				}
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("[%s] estación=%s variable=%s estadística=%s tema=%s",
					reply.Kind, station, dash(string(in.Variable)), dash(string(in.Statistic)), dash(string(in.Topic)))))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "mostrar la intención detectada")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
