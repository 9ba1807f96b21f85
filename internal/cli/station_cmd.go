package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/ecostats/internal/chatbot"
	"github.com/alexanderramin/ecostats/internal/cli/formatter"
	"github.com/alexanderramin/ecostats/internal/dataset"
	"github.com/alexanderramin/ecostats/internal/domain"
	"github.com/alexanderramin/ecostats/internal/knowledge"
)

func newStationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "Listar las estaciones en orden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatStationTable(app.Knowledge))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if imp, err := app.Stations.LastImport(ctx); err == nil {
				fmt.Fprint(out, "\n"+formatter.FormatDatasetInfo(imp))
			}
			return nil
		},
	}
}

func newStationCmd(app *App) *cobra.Command {
	var month monthValue
	cmd := &cobra.Command{
		Use:   "station <nombre|n>",
		Short: "Estadísticas de una estación",
		Long:  "Muestra las estadísticas de una estación por nombre o por su número en la lista de stations.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveStation(app.Knowledge, strings.Join(args, " "))
			if err != nil {
				return err
			}
			names := formatter.VariableNames(app.Knowledge)

			if month == 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStationProfile(p, names, ""))
				return nil
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			monthly, err := app.Stations.MonthlyProfile(ctx, p.Name, time.Month(month))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStationProfile(monthly, names, dataset.MonthName(time.Month(month))))
			return nil
		},
	}
	addMonthFlag(cmd.Flags(), &month)
	return cmd
}

func newVariablesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "variables [clave]",
		Short: "Explicar las variables medidas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprint(out, formatter.FormatVariables(app.Knowledge))
				return nil
			}
			d, err := app.Knowledge.GetVariableDescription(domain.VariableKey(strings.ToLower(args[0])))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Bold(d.DisplayName))
			fmt.Fprintln(out, formatter.RenderMarkdown(d.Explanation))
			return nil
		},
	}
}

// resolveStation accepts a 1-based ordinal, an exact name or a name that
// matches ignoring case.
func resolveStation(kb chatbot.Knowledge, ref string) (*domain.StationProfile, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		return kb.GetStationByOrdinal(n)
	}
	if p, err := kb.GetStation(ref); err == nil {
		return p, nil
	}
	for _, name := range kb.ListStations() {
		if strings.EqualFold(name, ref) {
			return kb.GetStation(name)
		}
	}
	return nil, fmt.Errorf("%q: %w", ref, knowledge.ErrStationNotFound)
}
