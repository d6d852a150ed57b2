package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faizmokh/minitrack/internal/puzzle"
	"github.com/faizmokh/minitrack/internal/transfer"
)

func newImportCommand(ctx context.Context, app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import times from a date,time_seconds CSV file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			result, err := transfer.Import(f)
			if err != nil {
				return err
			}

			today := app.today()
			var records []puzzle.Record
			skipped := result.Skipped
			for _, rec := range result.Records {
				if err := puzzle.Validate(rec, today); err != nil {
					skipped = append(skipped, fmt.Sprintf("%s: %v", rec.Key(), err))
					continue
				}
				records = append(records, rec)
			}

			written, err := app.Store.Upsert(ctx, app.Config.User, records)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d time%s\n", written, plural(written))
			if len(skipped) > 0 {
				fmt.Fprintf(out, "Skipped %d row%s:\n", len(skipped), plural(len(skipped)))
				for _, line := range skipped {
					fmt.Fprintf(out, "  %s\n", line)
				}
			}
			return nil
		},
	}

	return cmd
}

func newExportCommand(ctx context.Context, app *App) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every logged time as CSV.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Store.List(ctx, app.Config.User)
			if err != nil {
				return err
			}

			if outFlag == "-" {
				return transfer.Export(cmd.OutOrStdout(), records)
			}

			path := outFlag
			if path == "" {
				path = transfer.ExportFileName(app.today())
			}
			if err := writeExport(path, records); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d time%s to %s\n", len(records), plural(len(records)), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFlag, "out", "", "Output file, or - for stdout (default: puzzle_times_<today>.csv)")

	return cmd
}

func writeExport(path string, records []puzzle.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return transfer.Export(f, records)
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
