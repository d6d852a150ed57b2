package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/report"
	"github.com/faizmokh/minitrack/internal/stats"
)

const (
	recentMonths = 6
	barWidth     = 30
)

func newStatsCommand(ctx context.Context, app *App) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show averages, records and the time distribution.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Store.List(ctx, app.Config.User)
			if err != nil {
				return err
			}
			dashboard := stats.Build(records, app.Config.Start(), app.today())

			if jsonFlag {
				return printJSON(cmd, report.NewDashboard(dashboard))
			}
			printDashboard(cmd.OutOrStdout(), dashboard)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the dashboard as JSON")

	return cmd
}

func printDashboard(out io.Writer, d stats.Dashboard) {
	if d.Summary.TotalPuzzles == 0 {
		fmt.Fprintln(out, "No puzzle times logged yet.")
		return
	}

	fmt.Fprintf(out, "Puzzles solved: %d\n", d.Summary.TotalPuzzles)
	fmt.Fprintf(out, "Average time:   %s\n", formatAverage(d.Summary.AverageSeconds))
	fmt.Fprintf(out, "Total time:     %s\n", puzzle.FormatClock(d.Summary.TotalSeconds))
	fmt.Fprintf(out, "Current streak: %d (longest %d)\n", d.Tracker.CurrentStreak, d.Tracker.LongestStreak)

	fmt.Fprintln(out, "\nMonthly averages")
	monthly := d.Monthly
	if len(monthly) > recentMonths {
		monthly = monthly[len(monthly)-recentMonths:]
	}
	for _, b := range monthly {
		fmt.Fprintf(out, "  %s  %s  (%d)\n", b.Period.Format("Jan 2006"), formatAverage(b.AverageSeconds), b.Count)
	}

	fmt.Fprintln(out, "\nFastest")
	for i, rec := range d.Fastest {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, formatRecord(rec))
	}
	fmt.Fprintln(out, "\nSlowest")
	for i, rec := range d.Slowest {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, formatRecord(rec))
	}

	fmt.Fprintln(out, "\nDistribution")
	for _, b := range d.Distribution {
		bar := strings.Repeat("█", int(b.Percent/100*barWidth+0.5))
		fmt.Fprintf(out, "  %-8s %-*s %5.1f%% (%d)\n", b.Label, barWidth, bar, b.Percent, b.Count)
	}
}
