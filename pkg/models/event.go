package models

import (
	"strings"
	"time"
)

// ModelBucket is the reporting classification of a model name.
type ModelBucket string

const (
	BucketOpus   ModelBucket = "Opus"
	BucketSonnet ModelBucket = "Sonnet"
	BucketOther  ModelBucket = "Other"
)

// Buckets lists all model buckets in report order.
var Buckets = []ModelBucket{BucketOpus, BucketSonnet, BucketOther}

// ClassifyModel maps a raw model name onto a bucket by case-insensitive
// substring match.
func ClassifyModel(name string) ModelBucket {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "opus"):
		return BucketOpus
	case strings.Contains(lower, "sonnet"):
		return BucketSonnet
	default:
		return BucketOther
	}
}

// NormalizedEvent is the canonical form of one usage-log record. It exists
// only if validation passed: a resolvable model, a resolvable timestamp, and
// a nonzero token count unless the record was a completion marker.
type NormalizedEvent struct {
	Timestamp time.Time   `json:"timestamp"`
	Model     ModelBucket `json:"model"`
	// ModelName keeps the original model string for pricing; Model is the
	// bucket used for report grouping.
	ModelName string `json:"model_name"`
	TokensIn  int64  `json:"tokens_in"`
	TokensOut int64  `json:"tokens_out"`
	// Cache token counts are already folded into TokensIn; the split is kept
	// so session blocks can report it.
	CacheCreationTokens int64 `json:"cache_creation_tokens,omitempty"`
	CacheReadTokens     int64 `json:"cache_read_tokens,omitempty"`
	// DurationMs is the observed duration, present only when the source
	// record carried one.
	DurationMs *int64 `json:"duration_ms,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	Project    string `json:"project,omitempty"`
}

// TokensTotal is always derived, never stored.
func (e NormalizedEvent) TokensTotal() int64 {
	return e.TokensIn + e.TokensOut
}

// TimedEvent is a NormalizedEvent with its duration resolved, either observed
// or inferred from session adjacency. All downstream accounting uses
// InferredDurationMs.
type TimedEvent struct {
	NormalizedEvent
	InferredDurationMs int64 `json:"inferred_duration_ms"`
}

// StreamStats counts the outcomes of one file's line stream.
type StreamStats struct {
	TotalLines   int `json:"total_lines"`
	ValidEvents  int `json:"valid_events"`
	SkippedLines int `json:"skipped_lines"`
	Errors       int `json:"errors"`
}

// Add accumulates another file's stats.
func (s *StreamStats) Add(o StreamStats) {
	s.TotalLines += o.TotalLines
	s.ValidEvents += o.ValidEvents
	s.SkippedLines += o.SkippedLines
	s.Errors += o.Errors
}
