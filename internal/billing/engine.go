package billing

import (
	"fmt"

	"electricity-cost/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Calculate runs the full bill for one reading set against one config.
//
// Readings are assumed pre-validated by the ingestion layer (valid
// timestamps, usage >= 0); the config is validated here and an invalid
// config is rejected before any computation. The engine performs no I/O and
// keeps no state across calls: identical inputs yield identical results.
// An empty reading set is not an error; it yields a zero breakdown with
// TotalDays = 0 (per-day statistics are a presentation concern).
func (e *Engine) Calculate(readings []model.Reading, cfg *model.BillingConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("billing config invalid: %w", err)
	}

	totalUsage := model.TotalUsage(readings)
	usageCost := totalUsage * cfg.UsageRatePerKwh

	tariffCosts := []TariffCost{}
	peaks := []PeakHour{}
	totalTariffCost := 0.0

	for _, rule := range cfg.EnabledTariffs() {
		ev := EvaluateTariff(readings, rule)
		totalTariffCost += ev.Cost

		tariffCosts = append(tariffCosts, TariffCost{
			Name:          rule.Name,
			Cost:          ev.Cost,
			RatePerKw:     rule.RatePerKw,
			TopN:          rule.TopN,
			ReferencePeak: ev.ReferencePeak,
		})
		for _, p := range ev.Peaks {
			peaks = append(peaks, PeakHour{
				Timestamp:    p.reading.Timestamp,
				UsageKwh:     p.reading.UsageKwh,
				EffectiveKwh: p.effective,
				TariffName:   rule.Name,
				RatePerKw:    rule.RatePerKw,
				Method:       rule.Method,
			})
		}
	}

	subtotal := cfg.FixedCostPerMonth + usageCost + totalTariffCost
	net, vat, total := splitVAT(subtotal, cfg.VATRatePercent, cfg.VATInclusive)

	return &Result{
		Breakdown: CostBreakdown{
			Currency:        cfg.Currency,
			TotalUsageKwh:   totalUsage,
			TotalDays:       model.DistinctDays(readings),
			FixedCost:       cfg.FixedCostPerMonth,
			UsageCost:       usageCost,
			TariffCosts:     tariffCosts,
			TotalTariffCost: totalTariffCost,
			NetAmount:       net,
			VATAmount:       vat,
			Total:           total,
		},
		Peaks: peaks,
	}, nil
}

// splitVAT splits a subtotal into net/VAT/total. With inclusive pricing the
// subtotal already contains VAT and the tax portion is extracted; otherwise
// VAT is added on top.
func splitVAT(subtotal, ratePercent float64, inclusive bool) (net, vat, total float64) {
	v := ratePercent / 100
	if inclusive {
		vat = subtotal * v / (1 + v)
		return subtotal - vat, vat, subtotal
	}
	vat = subtotal * v
	return subtotal, vat, subtotal + vat
}
