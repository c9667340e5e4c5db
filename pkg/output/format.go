// Package output renders usage reports as tables, CSV, JSON, and the
// today-session view.
package output

import (
	"fmt"
	"strings"
)

// FormatDuration renders milliseconds as zero-padded "hh:mm".
func FormatDuration(ms int64) string {
	totalMinutes := ms / 60_000
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// FormatNumber renders an integer with thousands separators.
func FormatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
