package handlers

import (
	"net/http"

	"electricity-cost/internal/analysis"
	"electricity-cost/internal/api/models"
	"electricity-cost/internal/data"

	"github.com/gin-gonic/gin"
)

// UploadHandler ingests usage CSV files into validated readings.
type UploadHandler struct{}

// NewUploadHandler creates a new upload handler
func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// ParseUsage handles POST /api/v1/usage/parse
// Accepts either a multipart upload under "file" or a raw CSV body.
// The response carries the validated readings (ready to be passed to
// /calculate), the sniffer's column decisions and per-row rejections.
func (h *UploadHandler) ParseUsage(c *gin.Context) {
	var result *data.ParseResult

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "UPLOAD_ERROR", Message: err.Error()},
			})
			return
		}
		defer f.Close()
		result, err = data.ParseUsageCSV(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "CSV_PARSE_ERROR", Message: err.Error()},
			})
			return
		}
	} else {
		var err error
		result, err = data.ParseUsageCSV(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "CSV_PARSE_ERROR", Message: err.Error()},
			})
			return
		}
	}

	rowErrors := make([]string, 0, len(result.RowErrors))
	for i := range result.RowErrors {
		rowErrors = append(rowErrors, result.RowErrors[i].Error())
	}

	stats := analysis.ComputeStats(result.Readings)
	daily := analysis.DailyTotals(result.Readings)
	points := make([]models.DailyPoint, 0, len(daily))
	for _, d := range daily {
		points = append(points, models.DailyPoint{Day: d.Day, TotalKwh: d.TotalKwh, PeakKwh: d.PeakKwh})
	}

	c.JSON(http.StatusOK, models.ParseUsageResponse{
		RecordCount:    len(result.Readings),
		DatetimeColumn: result.DatetimeColumn,
		UsageColumn:    result.UsageColumn,
		Delimiter:      string(result.Delimiter),
		Readings:       result.Readings,
		RowErrors:      rowErrors,
		Stats:          statsSummary(stats),
		Daily:          points,
	})
}
