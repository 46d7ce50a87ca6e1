package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"electricity-cost/internal/analysis"
	"electricity-cost/internal/api/models"
	"electricity-cost/internal/billing"
	"electricity-cost/internal/config"
	"electricity-cost/internal/data"
	"electricity-cost/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CalculateHandler runs billing calculations and keeps recent results
// around so the peak ledger can be fetched separately.
type CalculateHandler struct {
	results  *data.ResultCache
	modelDir string
}

// NewCalculateHandler creates a calculate handler. A nil cache gets a
// default one with a one-hour TTL.
func NewCalculateHandler(results *data.ResultCache, modelDir string) *CalculateHandler {
	if results == nil {
		results = data.NewResultCache(1 * time.Hour)
	}
	return &CalculateHandler{results: results, modelDir: modelDir}
}

// RunCalculation handles POST /api/v1/calculate
func (h *CalculateHandler) RunCalculation(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	doc, err := h.resolveModel(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_MODEL",
				Message: err.Error(),
			},
		})
		return
	}

	cfg, err := doc.ToBillingConfig()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_MODEL",
				Message: err.Error(),
			},
		})
		return
	}

	readings, err := validateReadings(req.Readings)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_READING",
				Message: err.Error(),
			},
		})
		return
	}

	engine := billing.New()
	result, err := engine.Calculate(readings, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CALCULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	id := uuid.NewString()
	h.results.Put(id, result)

	resp := models.CalculateResponse{
		ID:        id,
		Status:    "completed",
		Breakdown: result.Breakdown,
		Stats:     statsSummary(analysis.ComputeStats(readings)),
	}
	if req.Options.IncludePeaks {
		resp.Peaks = result.Peaks
	}
	c.JSON(http.StatusOK, resp)
}

// GetPeaks handles GET /api/v1/calculations/:id/peaks
func (h *CalculateHandler) GetPeaks(c *gin.Context) {
	id := c.Param("id")
	result, ok := h.results.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("no calculation with id %q (results expire after a while)", id),
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "peaks": result.Peaks})
}

// resolveModel builds the model document from the request: a preset file, an
// inline document, or the inline document merged over the preset.
func (h *CalculateHandler) resolveModel(req models.CalculateRequest) (*config.TariffModel, error) {
	if req.ModelFile == "" && req.Model == nil {
		return nil, fmt.Errorf("either model or model_file is required")
	}

	var doc config.TariffModel
	if req.ModelFile != "" {
		// model_file is the preset's file stem (e.g. "standard"); documents
		// are only ever looked up inside the configured model directory.
		name := filepath.Base(req.ModelFile)
		path := filepath.Join(h.modelDir, name+".json")
		loaded, err := config.LoadModel(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("unknown model preset %q", name)
			}
			return nil, err
		}
		doc = *loaded
	}
	if req.Model != nil {
		doc = config.MergeModel(doc, *req.Model)
	}
	return &doc, nil
}

// validateReadings enforces the ingestion contract before the engine runs:
// valid timestamps and non-negative usage. The engine itself assumes
// pre-validated input.
func validateReadings(in []models.ReadingInput) ([]model.Reading, error) {
	readings := make([]model.Reading, 0, len(in))
	for i, r := range in {
		if r.Timestamp.IsZero() {
			return nil, fmt.Errorf("reading %d: missing timestamp", i)
		}
		if r.UsageKwh < 0 {
			return nil, fmt.Errorf("reading %d: negative usage %v", i, r.UsageKwh)
		}
		readings = append(readings, model.Reading{Timestamp: r.Timestamp, UsageKwh: r.UsageKwh})
	}
	return readings, nil
}

func statsSummary(s analysis.UsageStats) models.UsageStatsSummary {
	return models.UsageStatsSummary{
		Count:         s.Count,
		Start:         s.Start,
		End:           s.End,
		TotalKwh:      s.TotalKwh,
		MinKwh:        s.MinKwh,
		MaxKwh:        s.MaxKwh,
		MeanKwh:       s.MeanKwh,
		P05Kwh:        s.P05Kwh,
		P95Kwh:        s.P95Kwh,
		MaxReading:    s.MaxReading,
		DistinctDays:  s.DistinctDays,
		AveragePerDay: s.AveragePerDay,
	}
}
