package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"electricity-cost/internal/model"
)

// TariffModel is the on-disk model document (JSON). This is the interchange
// format for saved billing models: it must round-trip through Load/Save
// byte-for-byte in content, so optional fields are pointers or omitempty.
//
// Note the unit difference: tax_rate is a fraction (0.25) while the internal
// BillingConfig carries a percentage (25.0).
type TariffModel struct {
	Name             string        `json:"name" yaml:"name"`
	Currency         string        `json:"currency" yaml:"currency"`
	TaxRate          float64       `json:"tax_rate" yaml:"tax_rate"`
	PricesIncludeTax bool          `json:"prices_include_tax" yaml:"prices_include_tax"`
	FixedFeePerMonth float64       `json:"fixed_fee_per_month" yaml:"fixed_fee_per_month"`
	UsageFeePerKwh   float64       `json:"usage_fee_per_kwh" yaml:"usage_fee_per_kwh"`
	PowerTariffs     []PowerTariff `json:"power_tariffs" yaml:"power_tariffs"`
}

// PowerTariff is one demand-charge entry of a model document.
// start_time/end_time describe an inclusive hour range ("07:00".."22:00"
// means hours 7..22); omitted means all hours.
type PowerTariff struct {
	Name         string `json:"name" yaml:"name"`
	FeePerKw     float64 `json:"fee_per_kw" yaml:"fee_per_kw"`
	TopPeaks     int    `json:"number_of_top_peaks_to_average" yaml:"number_of_top_peaks_to_average"`
	Method       string `json:"peak_calculation_method" yaml:"peak_calculation_method"`
	Months       []int  `json:"months,omitempty" yaml:"months,omitempty"`
	StartTime    string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	NightFactor  *float64 `json:"night_reduction_factor,omitempty" yaml:"night_reduction_factor,omitempty"`
	NightStart   string `json:"night_start_time,omitempty" yaml:"night_start_time,omitempty"`
	NightEnd     string `json:"night_end_time,omitempty" yaml:"night_end_time,omitempty"`
}

// LoadModel reads and decodes a model document. The document is not
// validated beyond JSON well-formedness; call ToBillingConfig to validate.
func LoadModel(path string) (*TariffModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseModel(raw)
}

func ParseModel(raw []byte) (*TariffModel, error) {
	var m TariffModel
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("model document: %w", err)
	}
	return &m, nil
}

// SaveModel writes the model document with stable, human-diffable formatting.
func SaveModel(path string, m *TariffModel) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

// ToBillingConfig converts the document to a validated internal config,
// applying the documented defaults (night window 22:00→06:00, reduction
// factor 0.5) and expanding hour ranges to hour sets.
func (m *TariffModel) ToBillingConfig() (*model.BillingConfig, error) {
	if m == nil {
		return nil, errors.New("model is nil")
	}

	cfg := &model.BillingConfig{
		Currency:          m.Currency,
		FixedCostPerMonth: m.FixedFeePerMonth,
		UsageRatePerKwh:   m.UsageFeePerKwh,
		VATRatePercent:    m.TaxRate * 100,
		VATInclusive:      m.PricesIncludeTax,
	}

	for i, pt := range m.PowerTariffs {
		rule, err := pt.toRule()
		if err != nil {
			return nil, fmt.Errorf("power tariff %d: %w", i, err)
		}
		cfg.Tariffs = append(cfg.Tariffs, rule)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (pt PowerTariff) toRule() (model.TariffRule, error) {
	rule := model.TariffRule{
		Name:      pt.Name,
		Enabled:   true,
		RatePerKw: pt.FeePerKw,
		TopN:      pt.TopPeaks,
		Months:    append([]int(nil), pt.Months...),
		Method:    model.PeakMethod(pt.Method),

		NightStartHour: model.DefaultNightStartHour,
		NightEndHour:   model.DefaultNightEndHour,
		NightFactor:    model.DefaultNightFactor,
	}

	if pt.StartTime != "" || pt.EndTime != "" {
		if pt.StartTime == "" || pt.EndTime == "" {
			return rule, errors.New("start_time and end_time must be set together")
		}
		start, err := ParseHour(pt.StartTime)
		if err != nil {
			return rule, err
		}
		end, err := ParseHour(pt.EndTime)
		if err != nil {
			return rule, err
		}
		rule.Hours = HourRange(start, end)
	}

	if pt.NightFactor != nil {
		rule.NightFactor = *pt.NightFactor
	}
	if pt.NightStart != "" {
		h, err := ParseHour(pt.NightStart)
		if err != nil {
			return rule, err
		}
		rule.NightStartHour = h
	}
	if pt.NightEnd != "" {
		h, err := ParseHour(pt.NightEnd)
		if err != nil {
			return rule, err
		}
		rule.NightEndHour = h
	}

	return rule, nil
}

// FromBillingConfig converts an internal config back to a model document,
// for export/download. Hour sets must be representable as an inclusive range
// (possibly wrapping midnight); configs that originated from a model
// document always are.
func FromBillingConfig(name string, cfg *model.BillingConfig) (*TariffModel, error) {
	if cfg == nil {
		return nil, errors.New("billing config is nil")
	}
	m := &TariffModel{
		Name:             name,
		Currency:         cfg.Currency,
		TaxRate:          cfg.VATRatePercent / 100,
		PricesIncludeTax: cfg.VATInclusive,
		FixedFeePerMonth: cfg.FixedCostPerMonth,
		UsageFeePerKwh:   cfg.UsageRatePerKwh,
	}
	for _, t := range cfg.Tariffs {
		pt := PowerTariff{
			Name:     t.Name,
			FeePerKw: t.RatePerKw,
			TopPeaks: t.TopN,
			Method:   string(t.Method),
			Months:   append([]int(nil), t.Months...),
		}
		if len(t.Hours) > 0 {
			start, end, ok := hourRangeBounds(t.Hours)
			if !ok {
				return nil, fmt.Errorf("tariff %q: hour set is not a contiguous range", t.Name)
			}
			pt.StartTime = FormatHour(start)
			pt.EndTime = FormatHour(end)
		}
		if t.Method == model.PeakMethodNightReduced {
			factor := t.NightFactor
			pt.NightFactor = &factor
			pt.NightStart = FormatHour(t.NightStartHour)
			pt.NightEnd = FormatHour(t.NightEndHour)
		}
		m.PowerTariffs = append(m.PowerTariffs, pt)
	}
	return m, nil
}

// ParseHour parses "HH:MM" and returns the hour component. Minutes are
// validated but discarded; readings are hour resolution.
func ParseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h, nil
}

func FormatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// HourRange expands an inclusive hour range to an hour set. A range whose
// start exceeds its end wraps across midnight (22..2 → 22,23,0,1,2).
func HourRange(start, end int) []int {
	if start <= end {
		out := make([]int, 0, end-start+1)
		for h := start; h <= end; h++ {
			out = append(out, h)
		}
		return out
	}
	out := []int{}
	for h := start; h <= 23; h++ {
		out = append(out, h)
	}
	for h := 0; h <= end; h++ {
		out = append(out, h)
	}
	return out
}

// hourRangeBounds recovers (start, end) from an hour set produced by
// HourRange, reporting ok=false for sets that are not a contiguous range.
func hourRangeBounds(hours []int) (start, end int, ok bool) {
	if len(hours) == 0 {
		return 0, 0, false
	}
	start = hours[0]
	end = hours[len(hours)-1]
	for i := 1; i < len(hours); i++ {
		prev, cur := hours[i-1], hours[i]
		if cur != prev+1 && !(prev == 23 && cur == 0) {
			return 0, 0, false
		}
	}
	return start, end, true
}
