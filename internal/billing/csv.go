package billing

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteBreakdownCSV writes the itemized breakdown as line-item rows.
func WriteBreakdownCSV(path string, b CostBreakdown) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"item", "amount", "currency", "detail"}); err != nil {
		return err
	}

	rows := [][]string{
		{"fixed_cost", fmtFloat(b.FixedCost), b.Currency, ""},
		{"usage_cost", fmtFloat(b.UsageCost), b.Currency, "total_usage_kwh=" + fmtFloat(b.TotalUsageKwh)},
	}
	for _, tc := range b.TariffCosts {
		rows = append(rows, []string{
			"tariff:" + tc.Name,
			fmtFloat(tc.Cost),
			b.Currency,
			"rate=" + fmtFloat(tc.RatePerKw) + " top_n=" + strconv.Itoa(tc.TopN) + " reference_peak=" + fmtFloat(tc.ReferencePeak),
		})
	}
	rows = append(rows,
		[]string{"net_amount", fmtFloat(b.NetAmount), b.Currency, ""},
		[]string{"vat_amount", fmtFloat(b.VATAmount), b.Currency, ""},
		[]string{"total", fmtFloat(b.Total), b.Currency, ""},
	)

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WritePeaksCSV writes the billed peak hours, one row per selected reading.
func WritePeaksCSV(path string, peaks []PeakHour) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"timestamp", "usage_kwh", "effective_kwh", "tariff", "rate_per_kw", "method"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range peaks {
		row := []string{
			fmtTime(p.Timestamp),
			fmtFloat(p.UsageKwh),
			fmtFloat(p.EffectiveKwh),
			p.TariffName,
			fmtFloat(p.RatePerKw),
			string(p.Method),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
