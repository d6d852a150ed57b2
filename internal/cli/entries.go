package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/storage"
)

func newLogCommand(ctx context.Context, app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "log <time>",
		Short: "Log a solve time (MM:SS or digits, e.g. 105 for 1:05).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.today()
			date, err := resolveDate(dateFlag, today)
			if err != nil {
				return err
			}
			seconds, err := puzzle.ParseClock(args[0])
			if err != nil {
				return err
			}

			rec := puzzle.Record{Date: date, Seconds: seconds, Source: puzzle.SourceManual}
			if err := puzzle.Validate(rec, today); err != nil {
				return err
			}

			saved, err := app.Store.Log(ctx, app.Config.User, rec)
			var already *storage.AlreadyLoggedError
			if errors.As(err, &already) {
				fmt.Fprintf(cmd.OutOrStdout(), "Already logged %s for %s\n",
					puzzle.FormatClock(already.Existing.Seconds), already.Existing.Key())
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s for %s\n", puzzle.FormatClock(saved.Seconds), saved.Key())
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Puzzle date in YYYY-MM-DD (default: today)")

	return cmd
}

func newDeleteCommand(ctx context.Context, app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the time logged for a date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dateFlag == "" {
				return errors.New("--date is required")
			}
			date, err := resolveDate(dateFlag, app.today())
			if err != nil {
				return err
			}

			if err := app.Store.Delete(ctx, app.Config.User, date); err != nil {
				if errors.Is(err, puzzle.ErrNotFound) {
					return fmt.Errorf("no time logged for %s: %w", puzzle.DateKey(date), err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", puzzle.DateKey(date))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Puzzle date in YYYY-MM-DD")

	return cmd
}
