package config

import (
	"fmt"
	"reflect"
)

// Diff compares two model documents structurally and returns a human-readable
// field path for every difference. Equal documents return an empty slice.
//
// This backs the "has the live form drifted from the loaded preset" check in
// the presentation layer; it deliberately operates on the interchange shape,
// so comparing a freshly exported model against its source file is exact.
func Diff(base, other *TariffModel) []string {
	var diffs []string
	if base == nil || other == nil {
		if base != other {
			diffs = append(diffs, "model")
		}
		return diffs
	}

	scalar := func(path string, a, b interface{}) {
		if a != b {
			diffs = append(diffs, fmt.Sprintf("%s: %v != %v", path, a, b))
		}
	}

	scalar("name", base.Name, other.Name)
	scalar("currency", base.Currency, other.Currency)
	scalar("tax_rate", base.TaxRate, other.TaxRate)
	scalar("prices_include_tax", base.PricesIncludeTax, other.PricesIncludeTax)
	scalar("fixed_fee_per_month", base.FixedFeePerMonth, other.FixedFeePerMonth)
	scalar("usage_fee_per_kwh", base.UsageFeePerKwh, other.UsageFeePerKwh)

	if len(base.PowerTariffs) != len(other.PowerTariffs) {
		diffs = append(diffs, fmt.Sprintf("power_tariffs: %d entries != %d entries",
			len(base.PowerTariffs), len(other.PowerTariffs)))
		return diffs
	}

	for i := range base.PowerTariffs {
		a, b := base.PowerTariffs[i], other.PowerTariffs[i]
		prefix := fmt.Sprintf("power_tariffs[%d]", i)

		scalar(prefix+".name", a.Name, b.Name)
		scalar(prefix+".fee_per_kw", a.FeePerKw, b.FeePerKw)
		scalar(prefix+".number_of_top_peaks_to_average", a.TopPeaks, b.TopPeaks)
		scalar(prefix+".peak_calculation_method", a.Method, b.Method)
		scalar(prefix+".start_time", a.StartTime, b.StartTime)
		scalar(prefix+".end_time", a.EndTime, b.EndTime)
		scalar(prefix+".night_start_time", a.NightStart, b.NightStart)
		scalar(prefix+".night_end_time", a.NightEnd, b.NightEnd)

		if !reflect.DeepEqual(a.Months, b.Months) {
			diffs = append(diffs, fmt.Sprintf("%s.months: %v != %v", prefix, a.Months, b.Months))
		}
		switch {
		case a.NightFactor == nil && b.NightFactor == nil:
		case a.NightFactor == nil || b.NightFactor == nil:
			diffs = append(diffs, prefix+".night_reduction_factor: set on one side only")
		case *a.NightFactor != *b.NightFactor:
			diffs = append(diffs, fmt.Sprintf("%s.night_reduction_factor: %v != %v",
				prefix, *a.NightFactor, *b.NightFactor))
		}
	}

	return diffs
}

// Equal reports structural equality of two model documents.
func Equal(base, other *TariffModel) bool {
	return len(Diff(base, other)) == 0
}
