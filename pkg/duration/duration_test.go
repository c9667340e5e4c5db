package duration

import (
	"testing"
	"time"

	"github.com/cushare/cushare/pkg/models"
)

func event(ts time.Time, session string) models.NormalizedEvent {
	return models.NormalizedEvent{
		Timestamp: ts,
		Model:     models.BucketOpus,
		ModelName: "opus-4.1",
		TokensIn:  1,
		SessionID: session,
	}
}

func ptr(ms int64) *int64 { return &ms }

func byTimestamp(t *testing.T, out []models.TimedEvent) map[int64]int64 {
	t.Helper()
	m := make(map[int64]int64, len(out))
	for _, ev := range out {
		m[ev.Timestamp.UnixMilli()] = ev.InferredDurationMs
	}
	return m
}

func TestEstimateExplicitDurationPassedThrough(t *testing.T) {
	base := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	ev := event(base, "s1")
	ev.DurationMs = ptr(500_000) // above the inference cap

	out := Estimate([]models.NormalizedEvent{ev})
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].InferredDurationMs != 500_000 {
		t.Errorf("inferred = %d, want explicit 500000 uncapped", out[0].InferredDurationMs)
	}
}

func TestEstimateAdjacencyWithinSession(t *testing.T) {
	base := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	events := []models.NormalizedEvent{
		event(base, "s1"),
		event(base.Add(20*time.Second), "s1"),
		event(base.Add(10*time.Minute), "s1"), // long gap, capped
	}

	got := byTimestamp(t, Estimate(events))
	if d := got[base.UnixMilli()]; d != 20_000 {
		t.Errorf("first event = %d, want gap 20000", d)
	}
	if d := got[base.Add(20*time.Second).UnixMilli()]; d != MaxInferredMs {
		t.Errorf("second event = %d, want cap %d", d, MaxInferredMs)
	}
	if d := got[base.Add(10*time.Minute).UnixMilli()]; d != DefaultMs {
		t.Errorf("last event = %d, want default %d", d, DefaultMs)
	}
}

func TestEstimateSessionsDoNotBleed(t *testing.T) {
	base := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	events := []models.NormalizedEvent{
		event(base, "s1"),
		event(base.Add(5*time.Second), "s2"),
	}

	got := byTimestamp(t, Estimate(events))
	// Each is the sole member of its session, so both get the default.
	if d := got[base.UnixMilli()]; d != DefaultMs {
		t.Errorf("s1 event = %d, want default", d)
	}
	if d := got[base.Add(5*time.Second).UnixMilli()]; d != DefaultMs {
		t.Errorf("s2 event = %d, want default", d)
	}
}

func TestEstimateSessionlessTimeBuckets(t *testing.T) {
	// Aligned to a 10-minute boundary so both events share a bucket.
	base := time.UnixMilli(1_755_252_000_000).UTC()
	a := event(base, "")
	a.Project = "/work/app"
	b := event(base.Add(30*time.Second), "")
	b.Project = "/work/app"
	c := event(base.Add(30*time.Second), "")
	c.Project = "/other"

	got := Estimate([]models.NormalizedEvent{a, b, c})
	m := make(map[string][]int64)
	for _, ev := range got {
		m[ev.Project] = append(m[ev.Project], ev.InferredDurationMs)
	}

	// Same project, same bucket: first gets the 30s gap, second the default.
	want := map[int64]bool{30_000: true}
	want[DefaultMs] = true
	for _, d := range m["/work/app"] {
		if !want[d] {
			t.Errorf("unexpected inferred duration %d for bucketed pair", d)
		}
	}
	// Different project never groups with the pair.
	if len(m["/other"]) != 1 || m["/other"][0] != DefaultMs {
		t.Errorf("other project = %v, want lone default", m["/other"])
	}
}

func TestEstimateCountAndBounds(t *testing.T) {
	base := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	var events []models.NormalizedEvent
	for i := 0; i < 50; i++ {
		events = append(events, event(base.Add(time.Duration(i*i)*time.Second), "s1"))
	}

	out := Estimate(events)
	if len(out) != len(events) {
		t.Fatalf("len = %d, want %d", len(out), len(events))
	}
	for _, ev := range out {
		if ev.InferredDurationMs < 0 || ev.InferredDurationMs > MaxInferredMs {
			t.Errorf("inferred %d out of [0, %d]", ev.InferredDurationMs, MaxInferredMs)
		}
	}
}

func TestEstimateEmpty(t *testing.T) {
	if out := Estimate(nil); len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}
