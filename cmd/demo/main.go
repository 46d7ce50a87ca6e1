package main

import (
	"flag"
	"fmt"
	"time"

	"electricity-cost/internal/billing"
	"electricity-cost/internal/config"
	"electricity-cost/internal/data"
	"electricity-cost/internal/model"
)

// Demo:
// - Generate a month of synthetic hourly usage
// - Build a billing model with a standard and a night-reduced tariff
// - Run the engine and show how the pieces fit together
func main() {
	days := flag.Int("days", 31, "Number of days of synthetic usage")
	seed := flag.Int64("seed", 1, "Seed for the synthetic usage generator")
	cfgPath := flag.String("config", "", "Path to YAML config (optional; overrides the built-in model)")
	outCSV := flag.String("out", "", "Optional path to write the peak ledger CSV (e.g. results/peaks.csv)")
	flag.Parse()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	readings := data.GenerateSyntheticReadings(start, *days, *seed)

	// Defaults (can be overridden via --config).
	half := 0.5
	doc := &config.TariffModel{
		Name:             "demo",
		Currency:         "NOK",
		TaxRate:          0.25,
		PricesIncludeTax: false,
		FixedFeePerMonth: 100,
		UsageFeePerKwh:   1.2,
		PowerTariffs: []config.PowerTariff{
			{
				Name:     "winter peak",
				FeePerKw: 50,
				TopPeaks: 3,
				Method:   string(model.PeakMethodStandard),
				Months:   []int{1, 2, 3, 11, 12},
			},
			{
				Name:        "night reduced",
				FeePerKw:    30,
				TopPeaks:    3,
				Method:      string(model.PeakMethodNightReduced),
				NightFactor: &half,
				NightStart:  "22:00",
				NightEnd:    "06:00",
			},
		},
	}

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		doc = &cfg.Model
	}

	billingCfg, err := doc.ToBillingConfig()
	if err != nil {
		panic(err)
	}

	engine := billing.New()
	result, err := engine.Calculate(readings, billingCfg)
	if err != nil {
		panic(err)
	}

	b := result.Breakdown
	fmt.Printf("Generated %d readings over %d days (model %q)\n\n", len(readings), b.TotalDays, doc.Name)

	for i := 0; i < min(12, len(result.Peaks)); i++ {
		p := result.Peaks[i]
		fmt.Printf(
			"%s  usage=%6.3f  effective=%6.3f  tariff=%-14s rate=%6.2f  method=%s\n",
			p.Timestamp.Format("2006-01-02 15:04"),
			p.UsageKwh,
			p.EffectiveKwh,
			p.TariffName,
			p.RatePerKw,
			p.Method,
		)
	}

	if *outCSV != "" {
		if err := billing.WritePeaksCSV(*outCSV, result.Peaks); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Net=%.2f VAT=%.2f Total=%.2f %s\n", b.NetAmount, b.VATAmount, b.Total, b.Currency)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
