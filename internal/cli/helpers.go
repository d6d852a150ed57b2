package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/minitrack/internal/puzzle"
)

func resolveDate(dateFlag string, today time.Time) (time.Time, error) {
	if strings.TrimSpace(dateFlag) == "" {
		return today, nil
	}
	return puzzle.ParseDate(strings.TrimSpace(dateFlag))
}

func printJSON(cmd *cobra.Command, payload any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func formatAverage(seconds float64) string {
	return puzzle.FormatClock(int(seconds + 0.5))
}

func formatRecord(rec puzzle.Record) string {
	return fmt.Sprintf("%s  %s", rec.Key(), puzzle.FormatClock(rec.Seconds))
}
