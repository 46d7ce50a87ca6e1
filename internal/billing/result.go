package billing

import (
	"time"

	"electricity-cost/internal/model"
)

// TariffCost is one enabled tariff's line item in the breakdown.
type TariffCost struct {
	Name      string  `json:"name"`
	Cost      float64 `json:"cost"`
	RatePerKw float64 `json:"rate_per_kw"`
	TopN      int     `json:"top_n"`

	// ReferencePeak is the averaged top-N daily peak (kW) the cost was
	// derived from. Zero when no readings matched the tariff's filters.
	ReferencePeak float64 `json:"reference_peak"`
}

// PeakHour is one reading that was selected as a billed daily peak.
// This is the primary artifact for "which hours drove the demand charge"
// and feeds peak highlighting in the presentation layer.
type PeakHour struct {
	Timestamp    time.Time        `json:"timestamp"`
	UsageKwh     float64          `json:"usage_kwh"`
	EffectiveKwh float64          `json:"effective_kwh"`
	TariffName   string           `json:"tariff_name"`
	RatePerKw    float64          `json:"rate_per_kw"`
	Method       model.PeakMethod `json:"method"`
}

// CostBreakdown is the itemized output of one billing run.
// Immutable once produced; identical inputs yield identical breakdowns.
type CostBreakdown struct {
	Currency string `json:"currency"`

	TotalUsageKwh float64 `json:"total_usage_kwh"`
	TotalDays     int     `json:"total_days"`

	FixedCost       float64      `json:"fixed_cost"`
	UsageCost       float64      `json:"usage_cost"`
	TariffCosts     []TariffCost `json:"tariff_costs"`
	TotalTariffCost float64      `json:"total_tariff_cost"`

	NetAmount float64 `json:"net_amount"`
	VATAmount float64 `json:"vat_amount"`
	Total     float64 `json:"total"`
}

type Result struct {
	Breakdown CostBreakdown
	// Peaks lists the billed peak hours for every enabled tariff, in config
	// order, each tariff's peaks sorted by descending effective usage.
	Peaks []PeakHour
}
