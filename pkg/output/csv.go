package output

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/cushare/cushare/pkg/aggregator"
	"github.com/cushare/cushare/pkg/models"
)

var csvHeader = []string{
	"Group", "Model", "Tokens", "Tokens %", "Prompts", "Prompts %",
	"Duration (ms)", "Duration %", "Duration (formatted)",
}

// FormatCSV renders a result as RFC 4180 CSV, one row per model bucket per
// group. The Group column carries the grouping name for single reports.
func FormatCSV(result *aggregator.Result) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	write := func(groupKey string, report *models.UsageReport) error {
		for _, bucket := range models.Buckets {
			s := report.Models[bucket]
			row := []string{
				groupKey,
				string(bucket),
				fmt.Sprintf("%d", s.Tokens),
				fmt.Sprintf("%.1f", s.PctTokens),
				fmt.Sprintf("%d", s.Prompts),
				fmt.Sprintf("%.1f", s.PctPrompts),
				fmt.Sprintf("%d", s.DurationMs),
				fmt.Sprintf("%.1f", s.PctTime),
				FormatDuration(s.DurationMs),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
		return nil
	}

	if result.IsGrouped() {
		for _, key := range result.GroupKeys() {
			if err := write(key, result.Groups[key]); err != nil {
				return "", err
			}
		}
	} else {
		if err := write(string(result.Grouping), result.Single); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return b.String(), nil
}
