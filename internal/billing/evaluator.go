package billing

import "electricity-cost/internal/model"

// TariffEvaluation is the outcome of applying one rule to a reading set.
type TariffEvaluation struct {
	Rule          model.TariffRule
	Peaks         []dayPeak
	ReferencePeak float64
	Cost          float64
}

// EvaluateTariff computes one rule's monetary cost: filter the readings to
// the rule's month/hour restrictions, extract the top daily peaks, then
// cost = average(peaks) * rate. A fully-filtered-out rule costs 0; that is
// not an error. Pure function of (readings, rule).
func EvaluateTariff(readings []model.Reading, rule model.TariffRule) TariffEvaluation {
	filtered := make([]model.Reading, 0, len(readings))
	for _, r := range readings {
		if !rule.MatchesMonth(int(r.Timestamp.Month())) {
			continue
		}
		if !rule.MatchesHour(r.Timestamp.Hour()) {
			continue
		}
		filtered = append(filtered, r)
	}

	peaks := topDailyPeaks(filtered, rule)
	ref := averagePeak(peaks)

	return TariffEvaluation{
		Rule:          rule,
		Peaks:         peaks,
		ReferencePeak: ref,
		Cost:          ref * rule.RatePerKw,
	}
}
