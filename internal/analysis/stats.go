package analysis

import (
	"math"
	"sort"
	"time"

	"electricity-cost/internal/model"
)

// UsageStats is a reading-set summary for display next to the breakdown.
// It intentionally does not depend on any billing configuration; it includes
// raw usage statistics plus guarded per-day/per-hour rates so the
// presentation layer never divides by zero.
type UsageStats struct {
	Count int

	Start time.Time
	End   time.Time

	TotalKwh float64
	MinKwh   float64
	MaxKwh   float64
	MeanKwh  float64
	P05Kwh   float64
	P95Kwh   float64

	// MaxReading is the timestamp of the highest usage value
	// (first occurrence on ties).
	MaxReading time.Time

	DistinctDays int
	// AveragePerDay is 0 when no days are present.
	AveragePerDay float64
}

// DailyTotal is one chart point: total and peak usage of a calendar day.
type DailyTotal struct {
	Day      string
	TotalKwh float64
	PeakKwh  float64
}

func ComputeStats(readings []model.Reading) UsageStats {
	s := UsageStats{}
	if len(readings) == 0 {
		return s
	}
	s.Count = len(readings)
	s.Start = readings[0].Timestamp
	s.End = readings[len(readings)-1].Timestamp

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(readings))
	for _, r := range readings {
		v := r.UsageKwh
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
			s.MaxReading = r.Timestamp
		}
	}
	sort.Float64s(vals)
	s.TotalKwh = sum
	s.MinKwh = minv
	s.MaxKwh = maxv
	s.MeanKwh = sum / float64(len(vals))
	s.P05Kwh = percentileSorted(vals, 0.05)
	s.P95Kwh = percentileSorted(vals, 0.95)

	s.DistinctDays = model.DistinctDays(readings)
	if s.DistinctDays > 0 {
		s.AveragePerDay = sum / float64(s.DistinctDays)
	}
	return s
}

// DailyTotals aggregates readings per calendar day, sorted by date.
func DailyTotals(readings []model.Reading) []DailyTotal {
	byDay := map[string]*DailyTotal{}
	for _, r := range readings {
		day := r.Day()
		d, ok := byDay[day]
		if !ok {
			d = &DailyTotal{Day: day}
			byDay[day] = d
		}
		d.TotalKwh += r.UsageKwh
		if r.UsageKwh > d.PeakKwh {
			d.PeakKwh = r.UsageKwh
		}
	}

	out := make([]DailyTotal, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
