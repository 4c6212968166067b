package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseDurationList parses a comma-separated list of per-track seconds,
// e.g. "181,242.5,305".
func parseDurationList(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", part, err)
		}
		if value < 0 {
			return nil, fmt.Errorf("duration %q must not be negative", part)
		}
		out = append(out, value)
	}
	return out, nil
}

// formatSeconds renders a duration as m:ss for table output.
func formatSeconds(seconds float64) string {
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
