package model

import "time"

// Reading is one hourly electricity usage record.
// Timestamps are hour-resolution local times; duplicates are allowed and are
// treated as independent entries (the engine never merges them).
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	UsageKwh  float64   `json:"usage_kwh"`
}

// Day returns the reading's local calendar date as a sortable key.
func (r Reading) Day() string {
	return r.Timestamp.Format("2006-01-02")
}

// TotalUsage sums usage over all readings.
func TotalUsage(readings []Reading) float64 {
	total := 0.0
	for _, r := range readings {
		total += r.UsageKwh
	}
	return total
}

// DistinctDays counts the distinct calendar dates present in the readings.
func DistinctDays(readings []Reading) int {
	days := map[string]struct{}{}
	for _, r := range readings {
		days[r.Day()] = struct{}{}
	}
	return len(days)
}
