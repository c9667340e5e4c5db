package output

import (
	"encoding/json"
	"fmt"

	"github.com/cushare/cushare/pkg/aggregator"
	"github.com/cushare/cushare/pkg/models"
)

// FormatJSON renders a result as indented JSON: the report object itself for
// single results, a key-to-report object for grouped ones.
func FormatJSON(result *aggregator.Result) (string, error) {
	var v any
	if result.IsGrouped() {
		v = result.Groups
	} else {
		v = result.Single
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(out), nil
}

// FormatTodayJSON renders a today report as indented JSON.
func FormatTodayJSON(report *models.TodayReport) (string, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal today report: %w", err)
	}
	return string(out), nil
}
