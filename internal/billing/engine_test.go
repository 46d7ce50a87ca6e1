package billing

import (
	"testing"

	"electricity-cost/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeFlatDays is 3 days x 24 hourly readings of 1.0 kWh each.
func threeFlatDays() []model.Reading {
	readings := make([]model.Reading, 0, 72)
	for d := 1; d <= 3; d++ {
		for h := 0; h < 24; h++ {
			readings = append(readings, reading(d, h, 1.0))
		}
	}
	return readings
}

func baseConfig() *model.BillingConfig {
	return &model.BillingConfig{
		Currency:          "NOK",
		FixedCostPerMonth: 100,
		UsageRatePerKwh:   1.0,
		VATRatePercent:    25,
		VATInclusive:      true,
	}
}

func TestCalculateFixedUsageAndVAT(t *testing.T) {
	// 72 kWh usage, fixed 100, VAT-inclusive 25%: subtotal 172,
	// VAT = 172*0.25/1.25 = 34.4, net = 137.6.
	res, err := New().Calculate(threeFlatDays(), baseConfig())
	require.NoError(t, err)

	b := res.Breakdown
	assert.InDelta(t, 72.0, b.TotalUsageKwh, 1e-9)
	assert.Equal(t, 3, b.TotalDays)
	assert.InDelta(t, 100.0, b.FixedCost, 1e-9)
	assert.InDelta(t, 72.0, b.UsageCost, 1e-9)
	assert.Empty(t, b.TariffCosts)
	assert.InDelta(t, 34.4, b.VATAmount, 1e-9)
	assert.InDelta(t, 137.6, b.NetAmount, 1e-9)
	assert.InDelta(t, 172.0, b.Total, 1e-9)

	// VAT-inclusive round trip: net + VAT == total == subtotal
	assert.InDelta(t, b.Total, b.NetAmount+b.VATAmount, 1e-9)
}

func TestCalculateWithStandardTariff(t *testing.T) {
	cfg := baseConfig()
	cfg.Tariffs = []model.TariffRule{{
		Name: "demand", Enabled: true, RatePerKw: 50, TopN: 1,
		Method: model.PeakMethodStandard,
	}}

	res, err := New().Calculate(threeFlatDays(), cfg)
	require.NoError(t, err)

	b := res.Breakdown
	// every day peaks at 1.0; top-1 average is 1.0; cost = 50
	require.Len(t, b.TariffCosts, 1)
	assert.InDelta(t, 50.0, b.TariffCosts[0].Cost, 1e-9)
	assert.InDelta(t, 1.0, b.TariffCosts[0].ReferencePeak, 1e-9)
	assert.InDelta(t, 50.0, b.TotalTariffCost, 1e-9)
	assert.InDelta(t, 222.0, b.Total, 1e-9) // 100 + 72 + 50, VAT-inclusive
	require.Len(t, res.Peaks, 1)
	assert.Equal(t, "demand", res.Peaks[0].TariffName)
}

func TestCalculateVATExclusive(t *testing.T) {
	cfg := baseConfig()
	cfg.VATInclusive = false

	res, err := New().Calculate(threeFlatDays(), cfg)
	require.NoError(t, err)

	b := res.Breakdown
	assert.InDelta(t, 172.0, b.NetAmount, 1e-9)
	assert.InDelta(t, 43.0, b.VATAmount, 1e-9)
	assert.InDelta(t, 215.0, b.Total, 1e-9)
}

func TestCalculateDisabledRuleExcluded(t *testing.T) {
	cfg := baseConfig()
	cfg.Tariffs = []model.TariffRule{
		{Name: "active", Enabled: true, RatePerKw: 50, TopN: 1, Method: model.PeakMethodStandard},
		{Name: "dormant", Enabled: false, RatePerKw: 1000, TopN: 1, Method: model.PeakMethodStandard},
	}

	res, err := New().Calculate(threeFlatDays(), cfg)
	require.NoError(t, err)

	b := res.Breakdown
	require.Len(t, b.TariffCosts, 1)
	assert.Equal(t, "active", b.TariffCosts[0].Name)
	assert.InDelta(t, 50.0, b.TotalTariffCost, 1e-9)
	for _, p := range res.Peaks {
		assert.NotEqual(t, "dormant", p.TariffName)
	}
}

func TestCalculateFilteredOutRuleCostsZero(t *testing.T) {
	cfg := baseConfig()
	cfg.Tariffs = []model.TariffRule{{
		Name: "summer only", Enabled: true, RatePerKw: 50, TopN: 1,
		Months: []int{6},
		Method: model.PeakMethodStandard,
	}}

	// all readings are in January
	res, err := New().Calculate(threeFlatDays(), cfg)
	require.NoError(t, err)

	require.Len(t, res.Breakdown.TariffCosts, 1)
	assert.Zero(t, res.Breakdown.TariffCosts[0].Cost)
	assert.Zero(t, res.Breakdown.TotalTariffCost)
	assert.Empty(t, res.Peaks)
}

func TestCalculateAdditivity(t *testing.T) {
	ruleA := model.TariffRule{Name: "a", Enabled: true, RatePerKw: 50, TopN: 2, Method: model.PeakMethodStandard}
	ruleB := model.TariffRule{
		Name: "b", Enabled: true, RatePerKw: 30, TopN: 1,
		Method: model.PeakMethodNightReduced, NightStartHour: 22, NightEndHour: 6, NightFactor: 0.5,
	}

	readings := []model.Reading{
		reading(1, 2, 3.0), reading(1, 14, 2.0),
		reading(2, 9, 4.0), reading(2, 23, 5.0),
	}

	cfg := baseConfig()
	cfg.Tariffs = []model.TariffRule{ruleA, ruleB}
	res, err := New().Calculate(readings, cfg)
	require.NoError(t, err)

	// total tariff cost equals the sum of independently evaluated rules
	want := EvaluateTariff(readings, ruleA).Cost + EvaluateTariff(readings, ruleB).Cost
	assert.InDelta(t, want, res.Breakdown.TotalTariffCost, 1e-9)

	// and is order independent
	cfg2 := baseConfig()
	cfg2.Tariffs = []model.TariffRule{ruleB, ruleA}
	res2, err := New().Calculate(readings, cfg2)
	require.NoError(t, err)
	assert.InDelta(t, res.Breakdown.TotalTariffCost, res2.Breakdown.TotalTariffCost, 1e-9)
}

func TestCalculateDeterminism(t *testing.T) {
	cfg := baseConfig()
	cfg.Tariffs = []model.TariffRule{
		{Name: "a", Enabled: true, RatePerKw: 50, TopN: 2, Method: model.PeakMethodStandard},
		{
			Name: "b", Enabled: true, RatePerKw: 30, TopN: 3,
			Method: model.PeakMethodNightReduced, NightStartHour: 22, NightEndHour: 6, NightFactor: 0.5,
		},
	}
	readings := threeFlatDays()

	first, err := New().Calculate(readings, cfg)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := New().Calculate(readings, cfg)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculateEmptyReadings(t *testing.T) {
	cfg := baseConfig()
	cfg.Tariffs = []model.TariffRule{{
		Name: "demand", Enabled: true, RatePerKw: 50, TopN: 1, Method: model.PeakMethodStandard,
	}}

	res, err := New().Calculate(nil, cfg)
	require.NoError(t, err)

	b := res.Breakdown
	assert.Zero(t, b.TotalUsageKwh)
	assert.Zero(t, b.TotalDays)
	assert.Zero(t, b.UsageCost)
	assert.Zero(t, b.TotalTariffCost)
	// fixed cost still applies
	assert.InDelta(t, 100.0, b.Total, 1e-9)
}

func TestCalculateRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.BillingConfig)
	}{
		{"bad currency", func(c *model.BillingConfig) { c.Currency = "KRONER" }},
		{"negative fixed cost", func(c *model.BillingConfig) { c.FixedCostPerMonth = -1 }},
		{"VAT over 100", func(c *model.BillingConfig) { c.VATRatePercent = 120 }},
		{"tariff topN zero", func(c *model.BillingConfig) {
			c.Tariffs = []model.TariffRule{{Name: "t", Enabled: true, TopN: 0, Method: model.PeakMethodStandard}}
		}},
		{"tariff negative rate", func(c *model.BillingConfig) {
			c.Tariffs = []model.TariffRule{{Name: "t", Enabled: true, RatePerKw: -5, TopN: 1, Method: model.PeakMethodStandard}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)
			_, err := New().Calculate(threeFlatDays(), cfg)
			assert.Error(t, err)
		})
	}
}
