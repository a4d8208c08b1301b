package utils

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts lists the formats accepted for time values in hub payloads,
// tried in order
var timestampLayouts = []string{
	time.RFC3339,
	DATETIME_LAYOUT,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp parses a payload time value, accepting the layouts the
// integration hub is known to send
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", value)
}

// FormatTimestamp renders a time value the way outbound notifications and
// audit events record it
func FormatTimestamp(ts time.Time) string {
	return ts.UTC().Format(DATETIME_LAYOUT)
}

// NormalizeCode uppercases and trims an airline/airport/status code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// SplitCSV splits a comma-separated list, trimming whitespace and dropping
// empty entries
func SplitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinCSV is the inverse of SplitCSV
func JoinCSV(values []string) string {
	return strings.Join(values, ",")
}
