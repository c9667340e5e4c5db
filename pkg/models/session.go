package models

import "time"

// TokenCounts breaks down the tokens accumulated by a session block.
type TokenCounts struct {
	InputTokens         int64 `json:"input_tokens"`
	OutputTokens        int64 `json:"output_tokens"`
	CacheCreationTokens int64 `json:"cache_creation_tokens"`
	CacheReadTokens     int64 `json:"cache_read_tokens"`
	TotalTokens         int64 `json:"total_tokens"`
}

// SessionBlock is one fixed 5-hour usage window, anchored at the timestamp of
// the event that opened it.
type SessionBlock struct {
	ID          string            `json:"id"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	IsActive    bool              `json:"is_active"`
	Events      []NormalizedEvent `json:"events"`
	TokenCounts TokenCounts       `json:"token_counts"`
	Models      []string          `json:"models"`
	CostUSD     float64           `json:"cost_usd,omitempty"`
}

// ActiveSession describes the currently-open block in a today report.
type ActiveSession struct {
	BlockID        string    `json:"block_id"`
	StartTime      time.Time `json:"start_time"`
	TimeRemaining  string    `json:"time_remaining"`
	TokensUsed     int64     `json:"tokens_used"`
	BurnRate       float64   `json:"burn_rate"` // tokens per minute
	TokenLimit     int64     `json:"token_limit"`
	UsagePercent   float64   `json:"usage_percent"`
	ProjectedTotal float64   `json:"projected_total"`
}

// ModelUsage holds per-model-name usage and cost within a today report.
type ModelUsage struct {
	Tokens     int64   `json:"tokens"`
	TokensIn   int64   `json:"tokens_in"`
	TokensOut  int64   `json:"tokens_out"`
	Prompts    int64   `json:"prompts"`
	CostUSD    float64 `json:"cost_usd"`
	CostInput  float64 `json:"cost_input"`
	CostOutput float64 `json:"cost_output"`
}

// TodayReport is the live-session view for the current calendar day.
type TodayReport struct {
	Date            string                `json:"date"`
	Timezone        string                `json:"timezone"`
	TotalUsage      Totals                `json:"total_usage"`
	ActiveSession   *ActiveSession        `json:"active_session,omitempty"`
	CompletedBlocks []SessionBlock        `json:"completed_blocks"`
	Models          map[string]ModelUsage `json:"models"`
}
