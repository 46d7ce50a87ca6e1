package model

import (
	"errors"
	"fmt"
)

// Default night window and reduction applied when a model file omits them.
const (
	DefaultNightStartHour = 22
	DefaultNightEndHour   = 6
	DefaultNightFactor    = 0.5
)

// TariffRule is one demand-charge rule: filter restrictions, a peak
// calculation method and a rate per kW of reference peak.
// Units:
// - RatePerKw: currency per kW of averaged daily peak
// - Months: 1..12, empty = all months
// - Hours: 0..23 local hours, empty = all hours
// - NightFactor: 0..1 multiplier for readings inside the night window
type TariffRule struct {
	Name    string
	Enabled bool

	RatePerKw float64
	TopN      int

	Months []int
	Hours  []int

	Method PeakMethod

	// Night-reduced parameters; ignored for the standard method.
	NightStartHour int
	NightEndHour   int
	NightFactor    float64
}

func (t TariffRule) Validate() error {
	if t.Name == "" {
		return errors.New("tariff name is required")
	}
	if t.RatePerKw < 0 {
		return fmt.Errorf("tariff %q: rate must be >= 0", t.Name)
	}
	if t.TopN < 1 {
		return fmt.Errorf("tariff %q: top N peaks must be >= 1", t.Name)
	}
	if !t.Method.Valid() {
		return fmt.Errorf("tariff %q: unknown peak calculation method %q", t.Name, t.Method)
	}
	for _, m := range t.Months {
		if m < 1 || m > 12 {
			return fmt.Errorf("tariff %q: month %d out of range 1..12", t.Name, m)
		}
	}
	for _, h := range t.Hours {
		if h < 0 || h > 23 {
			return fmt.Errorf("tariff %q: hour %d out of range 0..23", t.Name, h)
		}
	}
	if t.Method == PeakMethodNightReduced {
		if t.NightStartHour < 0 || t.NightStartHour > 23 || t.NightEndHour < 0 || t.NightEndHour > 23 {
			return fmt.Errorf("tariff %q: night window hours must be in 0..23", t.Name)
		}
		if t.NightFactor < 0 || t.NightFactor > 1 {
			return fmt.Errorf("tariff %q: night reduction factor must be in [0, 1]", t.Name)
		}
	}
	return nil
}

// MatchesMonth reports whether the rule applies to the given calendar month.
// An empty month restriction matches everything.
func (t TariffRule) MatchesMonth(month int) bool {
	if len(t.Months) == 0 {
		return true
	}
	for _, m := range t.Months {
		if m == month {
			return true
		}
	}
	return false
}

// MatchesHour reports whether the rule applies to the given local hour.
func (t TariffRule) MatchesHour(hour int) bool {
	if len(t.Hours) == 0 {
		return true
	}
	for _, h := range t.Hours {
		if h == hour {
			return true
		}
	}
	return false
}

// InNightWindow checks whether hour falls in [NightStartHour, NightEndHour)
// on a 24h clock. If start > end the window wraps across midnight
// (22→6 means hour >= 22 or hour < 6). If start == end the window is empty.
func (t TariffRule) InNightWindow(hour int) bool {
	start, end := t.NightStartHour, t.NightEndHour
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	// wrap
	return hour >= start || hour < end
}
