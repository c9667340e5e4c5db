package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cushare/cushare/pkg/aggregator"
	"github.com/cushare/cushare/pkg/models"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// FormatTable renders a result as bordered tables, one per group with a
// "=== key ===" heading when grouped.
func FormatTable(result *aggregator.Result) string {
	if !result.IsGrouped() {
		return reportTable(result.Single)
	}

	var parts []string
	for _, key := range result.GroupKeys() {
		parts = append(parts, fmt.Sprintf("\n=== %s ===", key))
		parts = append(parts, reportTable(result.Groups[key]))
	}
	return strings.Join(parts, "\n")
}

func reportTable(report *models.UsageReport) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Model", "Tokens %", "Prompts %", "Time %", "Totals (tokens/prompts/time hh:mm)")

	for _, bucket := range models.Buckets {
		s := report.Models[bucket]
		t.Row(
			string(bucket),
			fmt.Sprintf("%.1f%%", s.PctTokens),
			fmt.Sprintf("%.1f%%", s.PctPrompts),
			fmt.Sprintf("%.1f%%", s.PctTime),
			fmt.Sprintf("%s / %s / %s", FormatNumber(s.Tokens), FormatNumber(s.Prompts), FormatDuration(s.DurationMs)),
		)
	}

	var b strings.Builder
	b.WriteString(t.String())
	fmt.Fprintf(&b, "\nPlan share: Opus %.1f%%, Sonnet %.1f%% (by tokens).",
		report.Models[models.BucketOpus].PctTokens,
		report.Models[models.BucketSonnet].PctTokens)

	var cost, costIn, costOut float64
	for _, s := range report.Models {
		cost += s.CostUSD
		costIn += s.CostInput
		costOut += s.CostOutput
	}
	if cost > 0 {
		fmt.Fprintf(&b, "\n\nAPI value: $%.2f (input $%.2f, output $%.2f)", cost, costIn, costOut)
	}
	return b.String()
}
