// Package pricing maps model names onto per-million-token USD prices and
// computes API-equivalent costs. The table is static: costs are estimates of
// what the usage would bill at API rates, not actual charges.
package pricing

import "strings"

// ModelPricing defines per-1M token costs for one canonical model key.
type ModelPricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

type tableEntry struct {
	key     string
	pricing ModelPricing
}

// priceTable is ordered: lookup takes the first matching key, so more
// specific generations must precede their prefixes.
var priceTable = []tableEntry{
	{"claude-opus-4-1", ModelPricing{InputPer1M: 15.00, OutputPer1M: 75.00}},
	{"claude-opus-4", ModelPricing{InputPer1M: 15.00, OutputPer1M: 75.00}},
	{"claude-3-opus", ModelPricing{InputPer1M: 15.00, OutputPer1M: 75.00}},
	{"claude-3-5-opus", ModelPricing{InputPer1M: 15.00, OutputPer1M: 75.00}},
	{"claude-sonnet-4", ModelPricing{InputPer1M: 3.00, OutputPer1M: 15.00}},
	{"claude-3-sonnet", ModelPricing{InputPer1M: 3.00, OutputPer1M: 15.00}},
	{"claude-3-5-sonnet", ModelPricing{InputPer1M: 3.00, OutputPer1M: 15.00}},
	{"claude-3-haiku", ModelPricing{InputPer1M: 0.25, OutputPer1M: 1.25}},
	{"claude-3-5-haiku", ModelPricing{InputPer1M: 0.80, OutputPer1M: 4.00}},
	{"claude-instant", ModelPricing{InputPer1M: 0.80, OutputPer1M: 2.40}},
}

// Bare family names map to the latest generation's canonical key.
var latestByFamily = map[string]string{
	"opus":   "claude-opus-4-1",
	"sonnet": "claude-sonnet-4",
	"haiku":  "claude-3-5-haiku",
}

// Lookup returns the pricing for a model name, matching the canonical table
// in order. The second return is false when the model is unknown.
func Lookup(model string) (ModelPricing, bool) {
	lower := strings.ToLower(model)

	if key, ok := latestByFamily[lower]; ok {
		return findKey(key)
	}

	for _, entry := range priceTable {
		if matches(lower, entry.key) {
			return entry.pricing, true
		}
	}
	return ModelPricing{}, false
}

func findKey(key string) (ModelPricing, bool) {
	for _, entry := range priceTable {
		if entry.key == key {
			return entry.pricing, true
		}
	}
	return ModelPricing{}, false
}

func matches(lower, key string) bool {
	if strings.Contains(lower, key) {
		return true
	}
	// Tolerate dotted version separators ("opus-4.1") and names without the
	// vendor prefix.
	if strings.Contains(lower, strings.Replace(key, "-", ".", 1)) {
		return true
	}
	if strings.Contains(lower, strings.TrimPrefix(key, "claude-")) {
		return true
	}
	// Generation-specific overrides for names that spell versions with dots.
	if strings.Contains(key, "opus-4-1") && strings.Contains(lower, "opus") && strings.Contains(lower, "4.1") {
		return true
	}
	if strings.Contains(key, "opus-4") && strings.Contains(lower, "opus") && strings.Contains(lower, "4") {
		return true
	}
	if strings.Contains(key, "sonnet-4") && strings.Contains(lower, "sonnet") && strings.Contains(lower, "4") {
		return true
	}
	return false
}

// Cost returns the USD cost of a token count pair for a model. Unknown models
// cost 0; they are not an error. No rounding is applied here, display rounding
// is a formatting concern.
func Cost(model string, tokensIn, tokensOut int64) float64 {
	p, ok := Lookup(model)
	if !ok {
		return 0
	}
	return float64(tokensIn)/1_000_000*p.InputPer1M + float64(tokensOut)/1_000_000*p.OutputPer1M
}
