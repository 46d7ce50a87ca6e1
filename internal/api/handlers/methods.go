package handlers

import (
	"net/http"

	"electricity-cost/internal/api/models"
	"electricity-cost/internal/model"

	"github.com/gin-gonic/gin"
)

// MethodHandler describes the available peak calculation methods.
type MethodHandler struct{}

// NewMethodHandler creates a new method handler
func NewMethodHandler() *MethodHandler {
	return &MethodHandler{}
}

// ListMethods handles GET /api/v1/methods
func (h *MethodHandler) ListMethods(c *gin.Context) {
	methods := []models.MethodInfo{
		{
			Name:        string(model.PeakMethodStandard),
			Description: "Averages the top-N daily peaks of raw usage. Each day contributes its single highest reading.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "number_of_top_peaks_to_average",
					Type:        "int",
					Description: "How many daily peaks to average (fewer are used if fewer days match)",
					Default:     3,
				},
				{
					Name:        "fee_per_kw",
					Type:        "float",
					Description: "Charge per kW of the averaged peak",
				},
			},
		},
		{
			Name:        string(model.PeakMethodNightReduced),
			Description: "Like standard, but readings inside the night window are scaled down by the reduction factor before daily maxima are picked.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "number_of_top_peaks_to_average",
					Type:        "int",
					Description: "How many daily peaks to average",
					Default:     3,
				},
				{
					Name:        "fee_per_kw",
					Type:        "float",
					Description: "Charge per kW of the averaged peak",
				},
				{
					Name:        "night_reduction_factor",
					Type:        "float",
					Description: "Multiplier applied to night readings, 0..1",
					Default:     model.DefaultNightFactor,
				},
				{
					Name:        "night_start_time",
					Type:        "string",
					Description: "Night window start (HH:MM); the window may wrap midnight",
					Default:     "22:00",
				},
				{
					Name:        "night_end_time",
					Type:        "string",
					Description: "Night window end (HH:MM, exclusive)",
					Default:     "06:00",
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"methods": methods})
}
