package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"electricity-cost/internal/analysis"
	"electricity-cost/internal/billing"
	"electricity-cost/internal/config"
	"electricity-cost/internal/data"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "calculate":
		cmdCalculate(os.Args[2:])
	case "stats":
		cmdStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli calculate --usage usage.csv --model examples/models/standard.json --out results/breakdown.csv")
	fmt.Println("  cli calculate --usage usage.csv --config examples/config.yaml --peaks-out results/peaks.csv")
	fmt.Println("  cli stats --usage usage.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - calculate prints the itemized cost breakdown and can write it (plus the billed peak hours) as CSV")
	fmt.Println("  - stats prints usage statistics and per-day totals without any billing model")
}

func cmdCalculate(args []string) {
	fs := flag.NewFlagSet("calculate", flag.ExitOnError)
	usagePath := fs.String("usage", "", "Path to hourly usage CSV")
	modelPath := fs.String("model", "", "Path to JSON model document")
	cfgPath := fs.String("config", "", "Path to YAML config (alternative to --model)")
	outPath := fs.String("out", "", "Optional output CSV path for the breakdown")
	peaksPath := fs.String("peaks-out", "", "Optional output CSV path for billed peak hours")
	_ = fs.Parse(args)

	if *usagePath == "" {
		fmt.Println("--usage is required")
		os.Exit(2)
	}
	if (*modelPath == "") == (*cfgPath == "") {
		fmt.Println("exactly one of --model or --config is required")
		os.Exit(2)
	}

	var doc *config.TariffModel
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		doc = &cfg.Model
	} else {
		loaded, err := config.LoadModel(*modelPath)
		if err != nil {
			panic(err)
		}
		doc = loaded
	}

	billingCfg, err := doc.ToBillingConfig()
	if err != nil {
		panic(err)
	}

	parsed, err := data.LoadUsageCSV(*usagePath)
	if err != nil {
		panic(err)
	}
	for _, rowErr := range parsed.RowErrors {
		fmt.Printf("skipped %s\n", rowErr.Error())
	}

	engine := billing.New()
	res, err := engine.Calculate(parsed.Readings, billingCfg)
	if err != nil {
		panic(err)
	}

	b := res.Breakdown
	fmt.Printf("Readings: %d over %d days, total usage %.2f kWh\n", len(parsed.Readings), b.TotalDays, b.TotalUsageKwh)
	fmt.Printf("Fixed cost:   %10.2f %s\n", b.FixedCost, b.Currency)
	fmt.Printf("Usage cost:   %10.2f %s\n", b.UsageCost, b.Currency)
	for _, tc := range b.TariffCosts {
		fmt.Printf("Tariff %-14s %8.2f %s (rate=%.2f top_n=%d peak=%.3f kW)\n",
			tc.Name+":", tc.Cost, b.Currency, tc.RatePerKw, tc.TopN, tc.ReferencePeak)
	}
	fmt.Printf("Net amount:   %10.2f %s\n", b.NetAmount, b.Currency)
	fmt.Printf("VAT:          %10.2f %s\n", b.VATAmount, b.Currency)
	fmt.Printf("Total:        %10.2f %s\n", b.Total, b.Currency)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := billing.WriteBreakdownCSV(*outPath, b); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote breakdown to %s\n", *outPath)
	}
	if *peaksPath != "" {
		if err := os.MkdirAll(filepath.Dir(*peaksPath), 0o755); err != nil {
			panic(err)
		}
		if err := billing.WritePeaksCSV(*peaksPath, res.Peaks); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d peak rows to %s\n", len(res.Peaks), *peaksPath)
	}
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	usagePath := fs.String("usage", "", "Path to hourly usage CSV")
	_ = fs.Parse(args)

	if *usagePath == "" {
		fmt.Println("--usage is required")
		os.Exit(2)
	}

	parsed, err := data.LoadUsageCSV(*usagePath)
	if err != nil {
		panic(err)
	}

	s := analysis.ComputeStats(parsed.Readings)
	fmt.Printf("Records: %d (%s .. %s), %d rejected rows\n",
		s.Count, s.Start.Format("2006-01-02 15:04"), s.End.Format("2006-01-02 15:04"), len(parsed.RowErrors))
	fmt.Printf("Total %.2f kWh over %d days (%.2f kWh/day)\n", s.TotalKwh, s.DistinctDays, s.AveragePerDay)
	fmt.Printf("Hourly min/mean/max: %.3f / %.3f / %.3f kWh (p05=%.3f p95=%.3f)\n",
		s.MinKwh, s.MeanKwh, s.MaxKwh, s.P05Kwh, s.P95Kwh)
	fmt.Printf("Highest reading at %s\n\n", s.MaxReading.Format("2006-01-02 15:04"))

	daily := analysis.DailyTotals(parsed.Readings)
	fmt.Printf("%-12s %-10s %-10s\n", "day", "total", "peak")
	for _, d := range daily {
		fmt.Printf("%-12s %-10.2f %-10.3f\n", d.Day, d.TotalKwh, d.PeakKwh)
	}
}
