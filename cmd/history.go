package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"last30days/internal/bootstrap"
	"last30days/internal/bootstrap/logging"
	"last30days/internal/errs"
	researchuc "last30days/internal/usecase/research"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent research runs",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *researchuc.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := svc.RecentRuns(ctx, limit)
		if err != nil {
			return errs.Wrap(err, "list recent runs")
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "no runs recorded yet")
			return nil
		}

		for _, run := range runs {
			cached := ""
			if run.FromCache {
				cached = " (cached)"
			}
			fmt.Fprintf(out, "%s  %s  [%s/%s]  reddit=%d x=%d  %s%s\n",
				run.CreatedAt.Format("2006-01-02 15:04"),
				run.Topic,
				run.Mode,
				run.Depth,
				run.RedditCount,
				run.XCount,
				run.Duration.Round(10*time.Millisecond),
				cached,
			)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
}
