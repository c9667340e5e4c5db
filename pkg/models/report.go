package models

// Grouping selects how events are partitioned into reports.
type Grouping string

const (
	GroupAllTime Grouping = "all-time"
	GroupDay     Grouping = "day"
	GroupMonth   Grouping = "month"
	GroupToday   Grouping = "today"
)

// ModelStats holds per-bucket aggregates within one report. Percentages are
// defined as 0 when the corresponding report total is 0.
type ModelStats struct {
	Tokens     int64   `json:"tokens"`
	TokensIn   int64   `json:"tokens_in"`
	TokensOut  int64   `json:"tokens_out"`
	Prompts    int64   `json:"prompts"`
	DurationMs int64   `json:"duration_ms"`
	PctTokens  float64 `json:"pct_tokens"`
	PctPrompts float64 `json:"pct_prompts"`
	PctTime    float64 `json:"pct_time"`
	CostUSD    float64 `json:"cost_usd"`
	CostInput  float64 `json:"cost_input"`
	CostOutput float64 `json:"cost_output"`
}

// Totals holds report-wide grand totals.
type Totals struct {
	Tokens     int64 `json:"tokens"`
	Prompts    int64 `json:"prompts"`
	DurationMs int64 `json:"duration_ms"`
}

// Window describes the time range a report covers. Since and Until are
// RFC 3339 strings, empty when unbounded.
type Window struct {
	Since string `json:"since,omitempty"`
	Until string `json:"until,omitempty"`
	TZ    string `json:"tz"`
}

// UsageReport is an immutable aggregation result for one grouping key. All
// three buckets are always present, zero-valued when they saw no events.
type UsageReport struct {
	Window   Window                     `json:"window"`
	Grouping Grouping                   `json:"grouping"`
	Totals   Totals                     `json:"totals"`
	Models   map[ModelBucket]ModelStats `json:"models"`
}
