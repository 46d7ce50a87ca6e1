package models

import (
	"time"

	"electricity-cost/internal/billing"
	"electricity-cost/internal/config"
	"electricity-cost/internal/model"
)

// CalculateResponse is the outcome of one billing calculation. The peak
// ledger is included only when requested; it stays fetchable by ID for a
// while afterwards.
type CalculateResponse struct {
	ID        string                `json:"id"`
	Status    string                `json:"status"`
	Breakdown billing.CostBreakdown `json:"breakdown"`
	Stats     UsageStatsSummary     `json:"stats"`
	Peaks     []billing.PeakHour    `json:"peaks,omitempty"`
}

// UsageStatsSummary mirrors analysis.UsageStats for the wire.
type UsageStatsSummary struct {
	Count         int       `json:"count"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	TotalKwh      float64   `json:"total_kwh"`
	MinKwh        float64   `json:"min_kwh"`
	MaxKwh        float64   `json:"max_kwh"`
	MeanKwh       float64   `json:"mean_kwh"`
	P05Kwh        float64   `json:"p05_kwh"`
	P95Kwh        float64   `json:"p95_kwh"`
	MaxReading    time.Time `json:"max_reading"`
	DistinctDays  int       `json:"distinct_days"`
	AveragePerDay float64   `json:"average_per_day"`
}

// ParseUsageResponse is the result of ingesting an uploaded usage CSV.
type ParseUsageResponse struct {
	RecordCount    int             `json:"record_count"`
	DatetimeColumn string          `json:"datetime_column"`
	UsageColumn    string          `json:"usage_column"`
	Delimiter      string          `json:"delimiter"`
	Readings       []model.Reading `json:"readings"`
	RowErrors      []string        `json:"row_errors,omitempty"`

	Stats UsageStatsSummary `json:"stats"`
	Daily []DailyPoint      `json:"daily"`
}

// DailyPoint is one chart point of daily usage.
type DailyPoint struct {
	Day      string  `json:"day"`
	TotalKwh float64 `json:"total_kwh"`
	PeakKwh  float64 `json:"peak_kwh"`
}

// ModelInfo describes one preset model document.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	File        string `json:"file"`
	Currency    string `json:"currency"`
	TariffCount int    `json:"tariff_count"`
}

// MethodInfo describes one peak calculation method.
type MethodInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a method parameter.
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// DiffModelsResponse reports structural differences between two models.
type DiffModelsResponse struct {
	Equal       bool     `json:"equal"`
	Differences []string `json:"differences,omitempty"`
}

// ExportModelResponse carries a normalized model document.
type ExportModelResponse struct {
	Model *config.TariffModel `json:"model"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
