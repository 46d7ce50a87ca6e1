package model

// PeakMethod selects how a tariff's daily peaks are computed.
// Keep these values stable; they appear in saved model files and CSV output.
type PeakMethod string

const (
	// PeakMethodStandard uses the raw usage value of each reading.
	PeakMethodStandard PeakMethod = "standard"
	// PeakMethodNightReduced scales readings inside the night window by the
	// tariff's night reduction factor before picking daily maxima.
	PeakMethodNightReduced PeakMethod = "night_reduced"
)

func (m PeakMethod) Valid() bool {
	switch m {
	case PeakMethodStandard, PeakMethodNightReduced:
		return true
	}
	return false
}
