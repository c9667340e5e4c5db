// Package parser turns raw JSONL usage-log lines into canonical events.
//
// Input records arrive in several shapes: flat "standard" records
// (tokens_in/tokens_out, usage objects) and chat-transcript records nesting
// model and usage under a message object. Field access is defensive
// throughout: every logical field is resolved through an ordered list of
// alternate JSON paths, and the first usable value wins.
package parser

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/cushare/cushare/pkg/models"
)

var (
	modelPaths   = []string{"message.model", "model", "model_name", "meta.model"}
	inputPaths   = []string{"tokens_in", "input_tokens", "usage.input_tokens", "usage.prompt_tokens"}
	outputPaths  = []string{"tokens_out", "output_tokens", "usage.output_tokens", "usage.completion_tokens"}
	tsPaths      = []string{"ts", "timestamp", "created_at"}
	durPaths     = []string{"latency_ms", "duration_ms"}
	sessionPaths = []string{"sessionId", "session_id", "conversation_id"}
	projectPaths = []string{"project", "workspace", "repo_path", "cwd"}
)

// Timestamp strings are tried against these layouts in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts one raw JSON line into a NormalizedEvent, or returns nil
// when the record does not validate. It is a pure function: malformed JSON is
// the caller's concern (see Stream), Normalize only rejects well-formed
// records that fail the validity rules.
func Normalize(line []byte) *models.NormalizedEvent {
	root := gjson.ParseBytes(line)

	name := extractModel(root)
	tokensIn, tokensOut, cacheCreate, cacheRead := extractTokens(root)
	ts, tsOK := extractTimestamp(root)

	if name == "" || !tsOK {
		return nil
	}
	if !hasCountableUsage(root, tokensIn, tokensOut) {
		return nil
	}

	ev := &models.NormalizedEvent{
		Timestamp:           ts,
		Model:               models.ClassifyModel(name),
		ModelName:           name,
		TokensIn:            tokensIn,
		TokensOut:           tokensOut,
		CacheCreationTokens: cacheCreate,
		CacheReadTokens:     cacheRead,
		DurationMs:          extractDuration(root),
		SessionID:           firstString(root, sessionPaths),
		Project:             firstString(root, projectPaths),
	}
	return ev
}

// hasCountableUsage applies the validity rule for token counts. An assistant
// chat message with a usage object must carry nonzero usage; any other record
// needs a positive token count or an explicit completion marker.
func hasCountableUsage(root gjson.Result, tokensIn, tokensOut int64) bool {
	if root.Get("type").String() == "assistant" &&
		root.Get("message.role").String() == "assistant" &&
		root.Get("message.usage").Exists() {
		return tokensIn > 0 || tokensOut > 0
	}
	return tokensIn > 0 || tokensOut > 0 || root.Get("event").String() == "completion"
}

func extractModel(root gjson.Result) string {
	return firstString(root, modelPaths)
}

// extractTokens resolves the input/output pair. A chat-transcript usage
// object takes precedence, with cache tokens counted as input; otherwise the
// flat alternates are tried and the first nonzero value per direction wins.
func extractTokens(root gjson.Result) (tokensIn, tokensOut, cacheCreate, cacheRead int64) {
	if usage := root.Get("message.usage"); usage.Exists() {
		cacheCreate = nonneg(usage.Get("cache_creation_input_tokens").Int())
		cacheRead = nonneg(usage.Get("cache_read_input_tokens").Int())
		tokensIn = nonneg(usage.Get("input_tokens").Int()) + cacheCreate + cacheRead
		tokensOut = nonneg(usage.Get("output_tokens").Int())
		return tokensIn, tokensOut, cacheCreate, cacheRead
	}
	return firstInt(root, inputPaths), firstInt(root, outputPaths), 0, 0
}

func nonneg(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// extractTimestamp tries the alternate timestamp fields in priority order and
// returns the first one that parses, as either an epoch-millisecond number or
// a date string.
func extractTimestamp(root gjson.Result) (time.Time, bool) {
	for _, path := range tsPaths {
		v := root.Get(path)
		if !v.Exists() {
			continue
		}
		if v.Type == gjson.Number {
			ms := v.Int()
			if ms == 0 {
				continue
			}
			return time.UnixMilli(ms).UTC(), true
		}
		if s := v.String(); s != "" {
			for _, layout := range timeLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					return t, true
				}
			}
		}
	}
	return time.Time{}, false
}

func extractDuration(root gjson.Result) *int64 {
	for _, path := range durPaths {
		if v := root.Get(path); v.Exists() && v.Int() != 0 {
			ms := v.Int()
			return &ms
		}
	}
	return nil
}

func firstString(root gjson.Result, paths []string) string {
	for _, path := range paths {
		if s := root.Get(path).String(); s != "" {
			return s
		}
	}
	return ""
}

func firstInt(root gjson.Result, paths []string) int64 {
	for _, path := range paths {
		if v := root.Get(path); v.Exists() && v.Int() > 0 {
			return v.Int()
		}
	}
	return 0
}
