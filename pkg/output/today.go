package output

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cushare/cushare/pkg/models"
)

var (
	colorGood   = lipgloss.Color("2")
	colorMedium = lipgloss.Color("3")
	colorHigh   = lipgloss.Color("208")
	colorCrit   = lipgloss.Color("1")
	colorTrack  = lipgloss.Color("8")

	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(colorTrack)
)

const progressBarWidth = 40

// FormatToday renders the live-session view: daily totals, the active block
// with burn rate and projection, completed blocks, and a per-model breakdown.
func FormatToday(report *models.TodayReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Today's Usage (%s, %s)", report.Date, report.Timezone)))
	b.WriteString("\n" + strings.Repeat("─", 50) + "\n")

	fmt.Fprintf(&b, "\nDaily totals\n")
	fmt.Fprintf(&b, "  Tokens:   %s\n", FormatNumber(report.TotalUsage.Tokens))
	fmt.Fprintf(&b, "  Prompts:  %s\n", FormatNumber(report.TotalUsage.Prompts))
	fmt.Fprintf(&b, "  Duration: %s\n", FormatDuration(report.TotalUsage.DurationMs))

	if as := report.ActiveSession; as != nil {
		writeActiveSession(&b, as)
	} else {
		b.WriteString("\n" + dimStyle.Render("No active session.") + "\n")
	}

	if n := len(report.CompletedBlocks); n > 0 {
		fmt.Fprintf(&b, "\nCompleted blocks today: %d\n", n)
		for _, block := range report.CompletedBlocks {
			fmt.Fprintf(&b, "  %s  %s tokens\n",
				block.StartTime.Format("15:04"),
				FormatNumber(block.TokenCounts.TotalTokens))
		}
	}

	writeModelBreakdown(&b, report)
	return b.String()
}

func writeActiveSession(b *strings.Builder, as *models.ActiveSession) {
	level, color := usageLevel(as.UsagePercent)
	label := lipgloss.NewStyle().Foreground(color).Bold(true).Render(
		fmt.Sprintf("Active session (%s usage)", level))

	fmt.Fprintf(b, "\n%s\n", label)
	fmt.Fprintf(b, "  Block started:  %s\n", as.StartTime.Format("15:04"))
	fmt.Fprintf(b, "  Time remaining: %s\n", as.TimeRemaining)
	fmt.Fprintf(b, "  Burn rate:      %s tokens/min\n", FormatNumber(int64(math.Round(as.BurnRate))))
	fmt.Fprintf(b, "  Token limit:    %s\n", FormatNumber(as.TokenLimit))
	fmt.Fprintf(b, "  Remaining:      %s\n", FormatNumber(as.TokenLimit-as.TokensUsed))

	projected := int64(math.Round(as.ProjectedTotal))
	warn := ""
	if as.ProjectedTotal > float64(as.TokenLimit) {
		warn = lipgloss.NewStyle().Foreground(colorCrit).Render(" (will exceed limit)")
	}
	fmt.Fprintf(b, "  Projected:      %s tokens%s\n", FormatNumber(projected), warn)
	fmt.Fprintf(b, "  Usage: %s\n", progressBar(as.UsagePercent, color))
}

func usageLevel(pct float64) (string, lipgloss.Color) {
	switch {
	case pct >= 90:
		return "critical", colorCrit
	case pct >= 75:
		return "high", colorHigh
	case pct >= 50:
		return "medium", colorMedium
	default:
		return "good", colorGood
	}
}

func progressBar(pct float64, color lipgloss.Color) string {
	shown := pct
	if shown > 100 {
		shown = 100
	}
	if shown < 0 {
		shown = 0
	}
	filled := int(math.Round(shown / 100 * progressBarWidth))

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", progressBarWidth-filled))
	return fmt.Sprintf("[%s] %.1f%%", bar, pct)
}

func writeModelBreakdown(b *strings.Builder, report *models.TodayReport) {
	type entry struct {
		name  string
		usage models.ModelUsage
	}
	var entries []entry
	for name, usage := range report.Models {
		if usage.Tokens > 0 {
			entries = append(entries, entry{name, usage})
		}
	}
	if len(entries) == 0 {
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].usage.Tokens != entries[j].usage.Tokens {
			return entries[i].usage.Tokens > entries[j].usage.Tokens
		}
		return entries[i].name < entries[j].name
	})

	b.WriteString("\nModel breakdown\n")
	var totalCost, totalIn, totalOut float64
	for _, e := range entries {
		share := 0.0
		if report.TotalUsage.Tokens > 0 {
			share = float64(e.usage.Tokens) / float64(report.TotalUsage.Tokens) * 100
		}
		fmt.Fprintf(b, "  %s\n", titleStyle.Render(e.name))
		fmt.Fprintf(b, "    Tokens:  %s (%.1f%%), in %s / out %s\n",
			FormatNumber(e.usage.Tokens), share,
			FormatNumber(e.usage.TokensIn), FormatNumber(e.usage.TokensOut))
		fmt.Fprintf(b, "    Prompts: %s\n", FormatNumber(e.usage.Prompts))
		if e.usage.CostUSD > 0 {
			fmt.Fprintf(b, "    API value: $%.2f (input $%.2f, output $%.2f)\n",
				e.usage.CostUSD, e.usage.CostInput, e.usage.CostOutput)
		}
		totalCost += e.usage.CostUSD
		totalIn += e.usage.CostInput
		totalOut += e.usage.CostOutput
	}
	if len(entries) > 1 && totalCost > 0 {
		fmt.Fprintf(b, "\n  Total API value: $%.2f (input $%.2f, output $%.2f)\n",
			totalCost, totalIn, totalOut)
	}
}
