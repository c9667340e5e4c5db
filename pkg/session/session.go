// Package session partitions usage events into fixed 5-hour billing blocks
// and builds the live today report with burn-rate projection.
package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/cushare/cushare/pkg/models"
	"github.com/cushare/cushare/pkg/pricing"
)

const (
	// BlockDuration is the fixed length of a usage block.
	BlockDuration = 5 * time.Hour

	// DefaultTokenLimit is assumed when no completed block exists to
	// detect a limit from.
	DefaultTokenLimit = 500_000

	// burnRateWindow is the trailing window burn rate is measured over.
	burnRateWindow = 10 * time.Minute
)

// PartitionBlocks groups events into 5-hour blocks. A block is anchored at
// the timestamp of the event that opened it and is never extended; an event
// at or past the open block's end time finalizes it and opens a new one.
// The last block is active iff now is before its end time.
func PartitionBlocks(events []models.NormalizedEvent, now time.Time) []models.SessionBlock {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]models.NormalizedEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var blocks []models.SessionBlock
	var cur *models.SessionBlock
	for _, ev := range sorted {
		if cur == nil || !ev.Timestamp.Before(cur.EndTime) {
			if cur != nil {
				cur.IsActive = false
				blocks = append(blocks, *cur)
			}
			start := ev.Timestamp
			cur = &models.SessionBlock{
				ID:        start.UTC().Format(time.RFC3339),
				StartTime: start,
				EndTime:   start.Add(BlockDuration),
			}
		}

		cur.Events = append(cur.Events, ev)
		cur.TokenCounts.InputTokens += ev.TokensIn
		cur.TokenCounts.OutputTokens += ev.TokensOut
		cur.TokenCounts.CacheCreationTokens += ev.CacheCreationTokens
		cur.TokenCounts.CacheReadTokens += ev.CacheReadTokens
		cur.TokenCounts.TotalTokens += ev.TokensTotal()
		cur.CostUSD += pricing.Cost(ev.ModelName, ev.TokensIn, ev.TokensOut)
		if !lo.Contains(cur.Models, ev.ModelName) {
			cur.Models = append(cur.Models, ev.ModelName)
		}
	}

	cur.IsActive = now.Before(cur.EndTime)
	blocks = append(blocks, *cur)
	return blocks
}

// BurnRate returns tokens consumed per minute over the trailing window
// ending at now. Zero when no event falls inside the window.
func BurnRate(events []models.NormalizedEvent, now time.Time, window time.Duration) float64 {
	cutoff := now.Add(-window)
	var tokens int64
	var any bool
	for _, ev := range events {
		if !ev.Timestamp.Before(cutoff) {
			tokens += ev.TokensTotal()
			any = true
		}
	}
	if !any {
		return 0
	}
	return float64(tokens) / window.Minutes()
}

// FormatTimeRemaining renders the time left until end as "Xh Ym", "Ym", or
// "0m" once end has passed.
func FormatTimeRemaining(end, now time.Time) string {
	remaining := end.Sub(now)
	if remaining <= 0 {
		return "0m"
	}
	hours := int(remaining / time.Hour)
	minutes := int(remaining%time.Hour) / int(time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// DetectTokenLimit infers a plan limit from observed blocks: the highest
// block total seen, or the default when no blocks exist.
func DetectTokenLimit(blocks []models.SessionBlock) int64 {
	if len(blocks) == 0 {
		return DefaultTokenLimit
	}
	return lo.Max(lo.Map(blocks, func(b models.SessionBlock, _ int) int64 {
		return b.TokenCounts.TotalTokens
	}))
}

// BuildTodayReport filters events to the current calendar day in tz,
// partitions them into blocks, and summarizes usage per original model name.
// A tokenLimit of 0 means auto-detect from the day's blocks.
func BuildTodayReport(events []models.NormalizedEvent, tz *time.Location, tokenLimit int64, now time.Time) *models.TodayReport {
	todayKey := now.In(tz).Format("2006-01-02")
	todayEvents := lo.Filter(events, func(ev models.NormalizedEvent, _ int) bool {
		return ev.Timestamp.In(tz).Format("2006-01-02") == todayKey
	})

	blocks := PartitionBlocks(todayEvents, now)
	var active *models.SessionBlock
	completed := make([]models.SessionBlock, 0, len(blocks))
	for i := range blocks {
		if blocks[i].IsActive {
			active = &blocks[i]
		} else {
			completed = append(completed, blocks[i])
		}
	}

	var totals models.Totals
	modelStats := make(map[string]models.ModelUsage)
	for _, ev := range todayEvents {
		totals.Tokens += ev.TokensTotal()
		totals.Prompts++
		if ev.DurationMs != nil {
			totals.DurationMs += *ev.DurationMs
		}

		s := modelStats[ev.ModelName]
		s.Tokens += ev.TokensTotal()
		s.TokensIn += ev.TokensIn
		s.TokensOut += ev.TokensOut
		s.Prompts++
		in := pricing.Cost(ev.ModelName, ev.TokensIn, 0)
		out := pricing.Cost(ev.ModelName, 0, ev.TokensOut)
		s.CostInput += in
		s.CostOutput += out
		s.CostUSD += in + out
		modelStats[ev.ModelName] = s
	}

	if tokenLimit <= 0 {
		tokenLimit = DetectTokenLimit(blocks)
	}

	report := &models.TodayReport{
		Date:            todayKey,
		Timezone:        tz.String(),
		TotalUsage:      totals,
		CompletedBlocks: completed,
		Models:          modelStats,
	}

	if active != nil {
		rate := BurnRate(active.Events, now, burnRateWindow)
		used := active.TokenCounts.TotalTokens
		minutesLeft := active.EndTime.Sub(now).Minutes()
		if minutesLeft < 0 {
			minutesLeft = 0
		}
		report.ActiveSession = &models.ActiveSession{
			BlockID:        active.ID,
			StartTime:      active.StartTime,
			TimeRemaining:  FormatTimeRemaining(active.EndTime, now),
			TokensUsed:     used,
			BurnRate:       rate,
			TokenLimit:     tokenLimit,
			UsagePercent:   float64(used) / float64(tokenLimit) * 100,
			ProjectedTotal: float64(used) + rate*minutesLeft,
		}
	}
	return report
}
