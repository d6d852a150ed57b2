package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/minitrack/internal/calendar"
	"github.com/faizmokh/minitrack/internal/report"
	"github.com/faizmokh/minitrack/internal/stats"
	"github.com/faizmokh/minitrack/internal/ui"
)

func newTrackerCommand(ctx context.Context, app *App) *cobra.Command {
	var (
		year     int
		allTime  bool
		jsonFlag bool
	)

	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Show the solve heatmap for a year or all time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if allTime && year != 0 {
				return errors.New("--year and --all cannot be combined")
			}

			cfg := app.Config
			today := app.today()
			start := cfg.Start()
			if year == 0 && !allTime {
				year = today.Year()
			}
			if year != 0 && (year < start.Year() || year > today.Year()) {
				return fmt.Errorf("year %d is outside %d-%d", year, start.Year(), today.Year())
			}

			records, err := app.Store.List(ctx, cfg.User)
			if err != nil {
				return err
			}
			best := calendar.DailyBests(records)
			tracker := stats.Track(start, today, best)

			from, to := start, today
			if year != 0 {
				from, to = calendar.YearBounds(year, start, today)
			}
			grid := calendar.BuildGrid(from, to, best, cfg.Thresholds())

			if jsonFlag {
				return printJSON(cmd, report.Tracker{
					Grids: []report.Grid{report.NewGrid(year, from, to, grid)},
					Stats: report.NewTrackerStats(tracker),
				})
			}

			out := cmd.OutOrStdout()
			if year != 0 {
				fmt.Fprintf(out, "Tracker %d\n\n", year)
			} else {
				fmt.Fprintln(out, "Tracker (all time)")
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, ui.RenderGrid(grid, today))
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Legend())
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Total completions: %d\n", tracker.Completions)
			fmt.Fprintf(out, "Days tracked:      %d\n", tracker.DaysTracked)
			fmt.Fprintf(out, "Completion rate:   %.1f%%\n", tracker.CompletionRate)
			fmt.Fprintf(out, "Current streak:    %d\n", tracker.CurrentStreak)
			fmt.Fprintf(out, "Longest streak:    %d\n", tracker.LongestStreak)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Calendar year to show (default: current year)")
	cmd.Flags().BoolVar(&allTime, "all", false, "Show every day since the start date")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the grid as JSON")

	return cmd
}
