package models

import (
	"time"

	"electricity-cost/internal/config"
)

// CalculateRequest is the request body for running a billing calculation.
// The model can be given inline, referenced as a preset by file stem, or
// both (inline fields override the preset, same merge as the CLI config).
type CalculateRequest struct {
	Readings  []ReadingInput      `json:"readings" binding:"required"`
	ModelFile string              `json:"model_file,omitempty"`
	Model     *config.TariffModel `json:"model,omitempty"`
	Options   CalculateOptions    `json:"options,omitempty"`
}

// ReadingInput is one hourly usage record as submitted by the client.
type ReadingInput struct {
	Timestamp time.Time `json:"timestamp" binding:"required"`
	UsageKwh  float64   `json:"usage_kwh"`
}

// CalculateOptions contains optional calculation parameters.
type CalculateOptions struct {
	IncludePeaks bool `json:"include_peaks,omitempty"` // default: false
}

// DiffModelsRequest compares a previously loaded model against the live one.
type DiffModelsRequest struct {
	Base    config.TariffModel `json:"base" binding:"required"`
	Current config.TariffModel `json:"current" binding:"required"`
}

// ExportModelRequest normalizes a model document for download.
type ExportModelRequest struct {
	Model config.TariffModel `json:"model" binding:"required"`
}
