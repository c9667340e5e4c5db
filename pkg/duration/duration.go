// Package duration infers per-event durations for events that did not
// record one, using adjacency within a session.
package duration

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/cushare/cushare/pkg/models"
)

const (
	// MaxInferredMs caps adjacency-inferred durations. Explicit durations
	// from the log are passed through uncapped.
	MaxInferredMs = 120_000

	// DefaultMs is assumed for the last event of a session, where no
	// following event exists to measure against.
	DefaultMs = 30_000

	// sessionBucketMs is the window used to synthesize session keys for
	// events that carry no session id.
	sessionBucketMs = 600_000
)

// Estimate returns one TimedEvent per input event, each with a defined
// InferredDurationMs. Output order is not guaranteed to match input order.
func Estimate(events []models.NormalizedEvent) []models.TimedEvent {
	sorted := make([]models.NormalizedEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	groups := lo.GroupBy(sorted, groupKey)

	out := make([]models.TimedEvent, 0, len(events))
	for _, group := range groups {
		for i, ev := range group {
			out = append(out, models.TimedEvent{
				NormalizedEvent:    ev,
				InferredDurationMs: inferOne(group, i),
			})
		}
	}
	return out
}

func inferOne(group []models.NormalizedEvent, i int) int64 {
	ev := group[i]
	if ev.DurationMs != nil {
		return *ev.DurationMs
	}
	if i+1 < len(group) {
		gap := group[i+1].Timestamp.Sub(ev.Timestamp).Milliseconds()
		if gap > MaxInferredMs {
			return MaxInferredMs
		}
		return gap
	}
	return DefaultMs
}

// groupKey keys events by session id, falling back to a project plus
// 10-minute time bucket when the log carried no session information.
func groupKey(ev models.NormalizedEvent) string {
	if ev.SessionID != "" {
		return ev.SessionID
	}
	project := ev.Project
	if project == "" {
		project = "unknown"
	}
	return fmt.Sprintf("%s|%d", project, ev.Timestamp.UnixMilli()/sessionBucketMs)
}
