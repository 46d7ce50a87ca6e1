package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"electricity-cost/internal/data"
)

// Regenerates the sample usage CSV shipped under examples/. Deterministic
// for a given seed so the file only changes when the generator does.
func main() {
	days := flag.Int("days", 31, "Number of days to generate")
	seed := flag.Int64("seed", 1, "Generator seed")
	start := flag.String("start", "2024-01-01", "First day (YYYY-MM-DD)")
	outPath := flag.String("out", "examples/usage_sample.csv", "Output CSV path")
	flag.Parse()

	day, err := time.ParseInLocation("2006-01-02", *start, time.Local)
	if err != nil {
		panic(err)
	}

	readings := data.GenerateSyntheticReadings(day, *days, *seed)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := data.WriteUsageCSV(*outPath, readings); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d readings to %s\n", len(readings), *outPath)
}
