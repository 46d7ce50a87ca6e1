package billing

import (
	"sort"

	"electricity-cost/internal/model"
)

// dayPeak is the winning reading of one calendar day: the reading with the
// highest effective usage. Ties go to the first maximum in encounter order.
type dayPeak struct {
	day       string
	reading   model.Reading
	effective float64
}

// effectiveUsage applies the rule's night reduction when the reading's local
// hour falls inside the night window. Standard-method rules use raw usage.
func effectiveUsage(r model.Reading, rule model.TariffRule) float64 {
	if rule.Method == model.PeakMethodNightReduced && rule.InNightWindow(r.Timestamp.Hour()) {
		return r.UsageKwh * rule.NightFactor
	}
	return r.UsageKwh
}

// topDailyPeaks reduces readings (already filtered to the rule's month/hour
// restrictions) to at most rule.TopN per-day effective maxima, sorted by
// descending effective usage. Days with ties keep chronological order so the
// output is deterministic. Fewer than TopN distinct days yields fewer peaks;
// missing days are never padded with zeros.
func topDailyPeaks(readings []model.Reading, rule model.TariffRule) []dayPeak {
	byDay := map[string]dayPeak{}
	for _, r := range readings {
		eff := effectiveUsage(r, rule)
		day := r.Day()
		best, ok := byDay[day]
		// strictly greater: the first maximum of the day wins ties
		if !ok || eff > best.effective {
			byDay[day] = dayPeak{day: day, reading: r, effective: eff}
		}
	}

	peaks := make([]dayPeak, 0, len(byDay))
	for _, p := range byDay {
		peaks = append(peaks, p)
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].day < peaks[j].day })
	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].effective > peaks[j].effective })

	if len(peaks) > rule.TopN {
		peaks = peaks[:rule.TopN]
	}
	return peaks
}

// averagePeak is the rule's reference peak: the mean of the top daily peaks,
// or 0 when no days matched.
func averagePeak(peaks []dayPeak) float64 {
	if len(peaks) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range peaks {
		sum += p.effective
	}
	return sum / float64(len(peaks))
}
