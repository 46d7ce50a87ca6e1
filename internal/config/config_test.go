package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInlineModel(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
model:
  name: inline
  currency: SEK
  tax_rate: 0.25
  usage_fee_per_kwh: 1.1
  fixed_fee_per_month: 49
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "inline", c.Model.Name)
	assert.Equal(t, "SEK", c.Model.Currency)
	assert.Equal(t, 49.0, c.Model.FixedFeePerMonth)
}

func TestLoadModelFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.json", `{
  "name": "base",
  "currency": "NOK",
  "tax_rate": 0.25,
  "prices_include_tax": true,
  "fixed_fee_per_month": 100,
  "usage_fee_per_kwh": 1.0,
  "power_tariffs": [
    {"name": "demand", "fee_per_kw": 50, "number_of_top_peaks_to_average": 3, "peak_calculation_method": "standard"}
  ]
}`)
	path := writeFile(t, dir, "config.yaml", `
model_file: base.json
model:
  currency: EUR
  usage_fee_per_kwh: 1.35
`)

	c, err := Load(path)
	require.NoError(t, err)

	// overrides win
	assert.Equal(t, "EUR", c.Model.Currency)
	assert.Equal(t, 1.35, c.Model.UsageFeePerKwh)
	// untouched base fields survive
	assert.Equal(t, "base", c.Model.Name)
	assert.Equal(t, 100.0, c.Model.FixedFeePerMonth)
	assert.True(t, c.Model.PricesIncludeTax)
	require.Len(t, c.Model.PowerTariffs, 1)
	assert.Equal(t, "demand", c.Model.PowerTariffs[0].Name)
}

func TestLoadModelFileRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "models")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, sub, "m.json", `{"name": "m", "currency": "NOK", "tax_rate": 0.25, "power_tariffs": []}`)
	path := writeFile(t, dir, "config.yaml", "model_file: models/m.json\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "m", c.Model.Name)
}

func TestLoadMissingModelFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "model_file: does-not-exist.json\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidModel(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
model:
  currency: KRONER
`)
	_, err := Load(path)
	assert.Error(t, err)

	// LoadUnchecked still returns the partial config
	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, "KRONER", c.Model.Currency)
}

func TestMergeModel(t *testing.T) {
	base := TariffModel{
		Name: "base", Currency: "NOK", TaxRate: 0.25, PricesIncludeTax: true,
		FixedFeePerMonth: 100, UsageFeePerKwh: 1.0,
		PowerTariffs: []PowerTariff{{Name: "a", FeePerKw: 50, TopPeaks: 3, Method: "standard"}},
	}

	t.Run("zero override keeps base", func(t *testing.T) {
		out := MergeModel(base, TariffModel{})
		assert.True(t, Equal(&base, &out), "diff: %v", Diff(&base, &out))
	})

	t.Run("non-zero fields override", func(t *testing.T) {
		out := MergeModel(base, TariffModel{Currency: "EUR", UsageFeePerKwh: 2.0})
		assert.Equal(t, "EUR", out.Currency)
		assert.Equal(t, 2.0, out.UsageFeePerKwh)
		assert.Equal(t, 100.0, out.FixedFeePerMonth)
	})

	t.Run("tariff list replaced wholesale", func(t *testing.T) {
		out := MergeModel(base, TariffModel{
			PowerTariffs: []PowerTariff{{Name: "b", FeePerKw: 10, TopPeaks: 1, Method: "standard"}},
		})
		require.Len(t, out.PowerTariffs, 1)
		assert.Equal(t, "b", out.PowerTariffs[0].Name)
	})

	t.Run("false never clears prices_include_tax", func(t *testing.T) {
		out := MergeModel(base, TariffModel{PricesIncludeTax: false})
		assert.True(t, out.PricesIncludeTax)
	})
}
