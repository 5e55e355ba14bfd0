package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"last30days/internal/bootstrap"
	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
	researchuc "last30days/internal/usecase/research"
)

var researchCmd = &cobra.Command{
	Use:   "research <topic>",
	Short: "Find recent discussions about a topic",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *researchuc.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		// The run ledger table is created on demand; migration is idempotent.
		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		fromDate, _ := cmd.Flags().GetString("from")
		toDate, _ := cmd.Flags().GetString("to")
		mode, _ := cmd.Flags().GetString("mode")
		depth, _ := cmd.Flags().GetString("depth")
		noCache, _ := cmd.Flags().GetBool("no-cache")
		asJSON, _ := cmd.Flags().GetBool("json")

		report, err := svc.Run(ctx, researchuc.Input{
			Topic:    cmd.Flags().Arg(0),
			FromDate: fromDate,
			ToDate:   toDate,
			Mode:     mode,
			Depth:    depth,
			NoCache:  noCache,
		})
		if err != nil {
			return errs.Wrap(err, "run research")
		}

		output := ""
		if asJSON {
			output, err = researchuc.RenderJSON(report)
			if err != nil {
				return errs.Wrap(err, "render report")
			}
		} else {
			output = researchuc.RenderMarkdown(report)
		}

		if _, err := fmt.Fprint(cmd.OutOrStdout(), output); err != nil {
			return errs.Wrap(err, "write report")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(researchCmd)

	researchCmd.Flags().String("from", "", "Window start date (YYYY-MM-DD)")
	researchCmd.Flags().String("to", "", "Window end date (YYYY-MM-DD)")
	researchCmd.Flags().String("mode", "", "Channels to search: reddit, x, or both")
	researchCmd.Flags().String("depth", "", "Search depth: quick, default, or deep")
	researchCmd.Flags().Bool("no-cache", false, "Skip the cache lookup (results are still written back)")
	researchCmd.Flags().Bool("json", false, "Emit the raw report as JSON")
}
