package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/ecostats/internal/cli/formatter"
)

// errImportCancelled is returned when the user declines to replace the data.
var errImportCancelled = errors.New("import cancelled")

func newImportCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <archivo.csv>",
		Short: "Recalcular las estadísticas desde un CSV",
		Long: "Lee un CSV de lecturas RACiMo, recalcula las estadísticas por estación " +
			"y reemplaza las guardadas. Pide confirmación si ya hay datos.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if !yes {
				has, err := app.Stations.HasData(ctx)
				if err != nil {
					return err
				}
				if has {
					if !app.interactive() {
						return fmt.Errorf("station data already exists; pass --yes to replace it")
					}
					ok, err := confirmReplace(args[0])
					if err != nil {
						return err
					}
					if !ok {
						return errImportCancelled
					}
				}
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Calculando estadísticas…")
			}
			imp, err := app.Stations.Import(ctx, args[0])
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImport(imp))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "reemplazar sin preguntar")
	return cmd
}

func confirmReplace(path string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("¿Reemplazar las estadísticas guardadas?").
				Description("Se recalcularán desde " + path + ".").
				Affirmative("Sí").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(ecostatsHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
