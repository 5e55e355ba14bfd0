package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"last30days/internal/bootstrap"
	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
	researchuc "last30days/internal/usecase/research"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show the resolved cache directory and its entries",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *researchuc.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		out := cmd.OutOrStdout()

		dir, err := app.Cache.Directory(ctx)
		if err != nil {
			return errs.Wrap(err, "resolve cache directory")
		}
		fmt.Fprintf(out, "cache directory: %s\n", dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			return errs.Wrap(err, "list cache directory")
		}

		count := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			if entry.Name() == "model_selection.json" {
				continue
			}
			count++

			valid := app.Cache.IsValid(filepath.Join(dir, entry.Name()))
			state := "fresh"
			if !valid {
				state = "stale"
			}
			fmt.Fprintf(out, "  %s  %s\n", strings.TrimSuffix(entry.Name(), ".json"), state)
		}
		fmt.Fprintf(out, "entries: %d\n", count)

		if model, ok := app.Cache.CachedModel(ctx, "openai"); ok {
			fmt.Fprintf(out, "cached openai model: %s\n", model)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(cacheCmd)
}
