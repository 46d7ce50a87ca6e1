package model

import (
	"errors"
	"fmt"
)

// BillingConfig is a fully-validated snapshot of the billing parameters for
// one calculation. It is built once by a constructor/loader and not mutated
// afterwards; the engine treats it as read-only.
type BillingConfig struct {
	Currency string

	FixedCostPerMonth float64
	UsageRatePerKwh   float64

	// VATRatePercent is a percentage (25.0), not a fraction. Saved model
	// files carry the fraction form; conversion happens at load time.
	VATRatePercent float64
	VATInclusive   bool

	// Tariffs are evaluated in order; order only affects display, the total
	// is an order-independent sum.
	Tariffs []TariffRule
}

func (c *BillingConfig) Validate() error {
	if c == nil {
		return errors.New("billing config is nil")
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code, got %q", c.Currency)
	}
	if c.FixedCostPerMonth < 0 {
		return errors.New("fixed cost per month must be >= 0")
	}
	if c.UsageRatePerKwh < 0 {
		return errors.New("usage rate per kWh must be >= 0")
	}
	if c.VATRatePercent < 0 || c.VATRatePercent > 100 {
		return errors.New("VAT rate must be in 0..100 percent")
	}
	for _, t := range c.Tariffs {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EnabledTariffs returns the tariffs that participate in billing, in config
// order. Disabled tariffs are excluded from cost and peak highlighting alike.
func (c *BillingConfig) EnabledTariffs() []TariffRule {
	out := make([]TariffRule, 0, len(c.Tariffs))
	for _, t := range c.Tariffs {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}
