package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"last30days/internal/bootstrap"
	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
	"last30days/internal/search/xsearch"
	researchuc "last30days/internal/usecase/research"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tooling and cache health",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *researchuc.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		out := cmd.OutOrStdout()

		depth := researchuc.ResolveDepth(ctx, app.Config.Search.Depth, app.Config.Search.ProfilesFile)
		bird := xsearch.NewBirdClient(app.Config.Search.BirdBinary, depth)
		status := bird.CheckStatus(ctx)

		fmt.Fprintf(out, "bird installed:      %v\n", status.Installed)
		fmt.Fprintf(out, "bird authenticated:  %v\n", status.Authenticated)
		if status.Username != "" {
			fmt.Fprintf(out, "bird user:           @%s\n", status.Username)
		}
		if !status.Installed {
			if status.CanInstall {
				fmt.Fprintln(out, "hint: npm install -g @steipete/bird")
			} else {
				fmt.Fprintln(out, "hint: install Node.js first, then npm install -g @steipete/bird")
			}
		}

		fmt.Fprintf(out, "openai key set:      %v\n", app.Config.OpenAI.APIKey != "")

		dir, err := app.Cache.Directory(ctx)
		if err != nil {
			return errs.Wrap(err, "resolve cache directory")
		}
		fmt.Fprintf(out, "cache directory:     %s\n", dir)
		fmt.Fprintf(out, "database:            %s\n", app.Config.Database.DSN)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
