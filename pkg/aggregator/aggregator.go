// Package aggregator turns normalized events into per-model usage reports,
// optionally partitioned by calendar day or month.
package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/cushare/cushare/pkg/duration"
	"github.com/cushare/cushare/pkg/models"
	"github.com/cushare/cushare/pkg/pricing"
)

// Options controls grouping and window metadata for one aggregation run.
type Options struct {
	GroupBy  models.Grouping // empty means all-time
	Timezone string          // IANA name; host local when empty
	Since    time.Time
	Until    time.Time
}

// Result is either a single all-time report or a set of reports keyed by
// calendar period. Exactly one of the two cases is populated; callers branch
// on IsGrouped.
type Result struct {
	Grouping models.Grouping
	Single   *models.UsageReport
	Groups   map[string]*models.UsageReport
}

// IsGrouped reports whether the result carries per-period reports.
func (r *Result) IsGrouped() bool { return r.Groups != nil }

// GroupKeys returns the period keys in ascending calendar order.
func (r *Result) GroupKeys() []string {
	keys := lo.Keys(r.Groups)
	sort.Strings(keys)
	return keys
}

// Aggregate runs duration inference over the full event set and then builds
// one report, or one report per calendar period when opts.GroupBy asks for it.
func Aggregate(events []models.NormalizedEvent, opts Options) (*Result, error) {
	loc, err := resolveLocation(opts.Timezone)
	if err != nil {
		return nil, err
	}

	// Inference is session-based and must see every event, so it runs
	// before any calendar partitioning.
	timed := duration.Estimate(events)

	grouping := opts.GroupBy
	if grouping == "" {
		grouping = models.GroupAllTime
	}

	window := models.Window{TZ: loc.String()}
	if !opts.Since.IsZero() {
		window.Since = opts.Since.Format(time.RFC3339)
	}
	if !opts.Until.IsZero() {
		window.Until = opts.Until.Format(time.RFC3339)
	}

	if grouping == models.GroupAllTime {
		report := buildReport(timed, window, grouping)
		return &Result{Grouping: grouping, Single: &report}, nil
	}

	partitions := lo.GroupBy(timed, func(ev models.TimedEvent) string {
		return periodKey(ev.Timestamp, grouping, loc)
	})
	groups := make(map[string]*models.UsageReport, len(partitions))
	for key, part := range partitions {
		report := buildReport(part, window, grouping)
		groups[key] = &report
	}
	return &Result{Grouping: grouping, Groups: groups}, nil
}

func resolveLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Now().Location(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// periodKey localizes a timestamp and extracts its calendar key.
func periodKey(ts time.Time, grouping models.Grouping, loc *time.Location) string {
	local := ts.In(loc)
	switch grouping {
	case models.GroupDay, models.GroupToday:
		return local.Format("2006-01-02")
	case models.GroupMonth:
		return local.Format("2006-01")
	default:
		panic(fmt.Sprintf("aggregator: no period key for grouping %q", grouping))
	}
}

func buildReport(events []models.TimedEvent, window models.Window, grouping models.Grouping) models.UsageReport {
	stats := make(map[models.ModelBucket]models.ModelStats, len(models.Buckets))
	var totals models.Totals

	for _, ev := range events {
		s := stats[ev.Model]
		s.Tokens += ev.TokensTotal()
		s.TokensIn += ev.TokensIn
		s.TokensOut += ev.TokensOut
		s.Prompts++
		s.DurationMs += ev.InferredDurationMs
		s.CostInput += pricing.Cost(ev.ModelName, ev.TokensIn, 0)
		s.CostOutput += pricing.Cost(ev.ModelName, 0, ev.TokensOut)
		stats[ev.Model] = s

		totals.Tokens += ev.TokensTotal()
		totals.Prompts++
		totals.DurationMs += ev.InferredDurationMs
	}

	// All three buckets appear in every report, zero-valued when unused.
	for _, bucket := range models.Buckets {
		s := stats[bucket]
		s.CostUSD = s.CostInput + s.CostOutput
		s.PctTokens = pct(s.Tokens, totals.Tokens)
		s.PctPrompts = pct(s.Prompts, totals.Prompts)
		s.PctTime = pct(s.DurationMs, totals.DurationMs)
		stats[bucket] = s
	}

	return models.UsageReport{
		Window:   window,
		Grouping: grouping,
		Totals:   totals,
		Models:   stats,
	}
}

func pct(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
