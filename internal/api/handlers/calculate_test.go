package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"electricity-cost/internal/api/models"
	"electricity-cost/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testModelDoc() *config.TariffModel {
	return &config.TariffModel{
		Name:     "test",
		Currency: "NOK",
		TaxRate:  0.25, PricesIncludeTax: true,
		FixedFeePerMonth: 100,
		UsageFeePerKwh:   1.0,
		PowerTariffs: []config.PowerTariff{{
			Name: "demand", FeePerKw: 50, TopPeaks: 1, Method: "standard",
		}},
	}
}

func testReadings(n int) []models.ReadingInput {
	out := make([]models.ReadingInput, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.ReadingInput{
			Timestamp: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
			UsageKwh:  1.0,
		})
	}
	return out
}

func newCalculateRouter(t *testing.T) (*gin.Engine, *CalculateHandler) {
	t.Helper()
	h := NewCalculateHandler(nil, t.TempDir())
	r := gin.New()
	r.POST("/api/v1/calculate", h.RunCalculation)
	r.GET("/api/v1/calculations/:id/peaks", h.GetPeaks)
	return r, h
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRunCalculation(t *testing.T) {
	r, _ := newCalculateRouter(t)

	w := postJSON(t, r, "/api/v1/calculate", models.CalculateRequest{
		Readings: testReadings(48),
		Model:    testModelDoc(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "NOK", resp.Breakdown.Currency)
	assert.InDelta(t, 48.0, resp.Breakdown.TotalUsageKwh, 1e-9)
	assert.Equal(t, 2, resp.Breakdown.TotalDays)
	// fixed 100 + usage 48 + demand 50, prices include tax
	assert.InDelta(t, 198.0, resp.Breakdown.Total, 1e-9)
	assert.Equal(t, 48, resp.Stats.Count)
	assert.Empty(t, resp.Peaks)
}

func TestRunCalculationIncludePeaks(t *testing.T) {
	r, _ := newCalculateRouter(t)

	w := postJSON(t, r, "/api/v1/calculate", models.CalculateRequest{
		Readings: testReadings(48),
		Model:    testModelDoc(),
		Options:  models.CalculateOptions{IncludePeaks: true},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Peaks, 1)
	assert.Equal(t, "demand", resp.Peaks[0].TariffName)
}

func TestRunCalculationErrors(t *testing.T) {
	r, _ := newCalculateRouter(t)

	t.Run("missing model", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/calculate", models.CalculateRequest{
			Readings: testReadings(2),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_MODEL")
	})

	t.Run("unknown preset", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/calculate", models.CalculateRequest{
			Readings:  testReadings(2),
			ModelFile: "nope",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown model preset")
	})

	t.Run("negative usage", func(t *testing.T) {
		readings := testReadings(2)
		readings[1].UsageKwh = -1
		w := postJSON(t, r, "/api/v1/calculate", models.CalculateRequest{
			Readings: readings,
			Model:    testModelDoc(),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_READING")
	})

	t.Run("invalid model document", func(t *testing.T) {
		doc := testModelDoc()
		doc.Currency = "KRONER"
		w := postJSON(t, r, "/api/v1/calculate", models.CalculateRequest{
			Readings: testReadings(2),
			Model:    doc,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_MODEL")
	})
}

func TestRunCalculationWithPreset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.SaveModel(filepath.Join(dir, "standard.json"), testModelDoc()))

	h := NewCalculateHandler(nil, dir)
	r := gin.New()
	r.POST("/api/v1/calculate", h.RunCalculation)

	// preset plus an inline override of the usage fee
	w := postJSON(t, r, "/api/v1/calculate", models.CalculateRequest{
		Readings:  testReadings(24),
		ModelFile: "standard",
		Model:     &config.TariffModel{UsageFeePerKwh: 2.0},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 48.0, resp.Breakdown.UsageCost, 1e-9)
}

func TestGetPeaks(t *testing.T) {
	r, _ := newCalculateRouter(t)

	w := postJSON(t, r, "/api/v1/calculate", models.CalculateRequest{
		Readings: testReadings(24),
		Model:    testModelDoc(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calculations/"+resp.ID+"/peaks", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), resp.ID)

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/calculations/unknown/peaks", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})
}

func TestModelStoreEndpoints(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.SaveModel(filepath.Join(dir, "standard.json"), testModelDoc()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	t.Setenv("MODEL_DIR", dir)
	h := NewModelHandler()
	r := gin.New()
	r.GET("/api/v1/models", h.ListModels)
	r.GET("/api/v1/models/:id", h.GetModel)
	r.POST("/api/v1/models/diff", h.DiffModels)
	r.POST("/api/v1/models/export", h.ExportModel)

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Models []models.ModelInfo `json:"models"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Models, 1)
		assert.Equal(t, "standard", resp.Models[0].ID)
		assert.Equal(t, "test", resp.Models[0].Name)
		assert.Equal(t, 1, resp.Models[0].TariffCount)
	})

	t.Run("get", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/models/standard", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"currency":"NOK"`)
	})

	t.Run("get missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/models/none", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("diff", func(t *testing.T) {
		base, current := testModelDoc(), testModelDoc()
		current.UsageFeePerKwh = 2.0
		w := postJSON(t, r, "/api/v1/models/diff", models.DiffModelsRequest{
			Base: *base, Current: *current,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.DiffModelsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Equal)
		require.Len(t, resp.Differences, 1)
		assert.Contains(t, resp.Differences[0], "usage_fee_per_kwh")
	})

	t.Run("export normalizes", func(t *testing.T) {
		doc := testModelDoc()
		doc.PowerTariffs[0].Method = "night_reduced"
		w := postJSON(t, r, "/api/v1/models/export", models.ExportModelRequest{Model: *doc})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp models.ExportModelResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Model)
		require.Len(t, resp.Model.PowerTariffs, 1)
		pt := resp.Model.PowerTariffs[0]
		// night window defaults become explicit on export
		require.NotNil(t, pt.NightFactor)
		assert.Equal(t, 0.5, *pt.NightFactor)
		assert.Equal(t, "22:00", pt.NightStart)
		assert.Equal(t, "06:00", pt.NightEnd)
	})
}
