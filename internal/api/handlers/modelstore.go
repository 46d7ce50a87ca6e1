package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"electricity-cost/internal/api/models"
	"electricity-cost/internal/config"

	"github.com/gin-gonic/gin"
)

// ModelHandler serves the preset model library and model document utilities.
type ModelHandler struct {
	modelDir string
}

// GetModelDir returns the preset directory path.
func (h *ModelHandler) GetModelDir() string {
	return h.modelDir
}

// NewModelHandler creates a model handler. The preset directory defaults to
// examples/models under the working directory; MODEL_DIR overrides it.
func NewModelHandler() *ModelHandler {
	dir := os.Getenv("MODEL_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "models")
		} else {
			dir = "./examples/models"
		}
	}

	absDir, err := filepath.Abs(dir)
	if err == nil {
		dir = absDir
	}

	log.Printf("ModelHandler: using model directory: %s", dir)
	return &ModelHandler{modelDir: dir}
}

// ListModels handles GET /api/v1/models
func (h *ModelHandler) ListModels(c *gin.Context) {
	presets := []models.ModelInfo{}

	entries, err := os.ReadDir(h.modelDir)
	if err != nil {
		log.Printf("ModelHandler: failed to read model directory %s: %v", h.modelDir, err)
		c.JSON(http.StatusOK, gin.H{"models": presets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(h.modelDir, entry.Name())
		doc, err := config.LoadModel(path)
		if err != nil {
			log.Printf("ModelHandler: skipping invalid model file %s: %v", path, err)
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		name := doc.Name
		if name == "" {
			name = id
		}
		presets = append(presets, models.ModelInfo{
			ID:          id,
			Name:        name,
			File:        path,
			Currency:    doc.Currency,
			TariffCount: len(doc.PowerTariffs),
		})
	}

	c.JSON(http.StatusOK, gin.H{"models": presets})
}

// GetModel handles GET /api/v1/models/:id
func (h *ModelHandler) GetModel(c *gin.Context) {
	id := filepath.Base(c.Param("id"))
	path := filepath.Join(h.modelDir, id+".json")

	doc, err := config.LoadModel(path)
	if err != nil {
		status := http.StatusInternalServerError
		code := "MODEL_LOAD_ERROR"
		if os.IsNotExist(err) {
			status = http.StatusNotFound
			code = "NOT_FOUND"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{Code: code, Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DiffModels handles POST /api/v1/models/diff
// It backs the "has the live form drifted from the loaded preset" indicator.
func (h *ModelHandler) DiffModels(c *gin.Context) {
	var req models.DiffModelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	diffs := config.Diff(&req.Base, &req.Current)
	c.JSON(http.StatusOK, models.DiffModelsResponse{
		Equal:       len(diffs) == 0,
		Differences: diffs,
	})
}

// ExportModel handles POST /api/v1/models/export
// The document is validated and normalized (defaults made explicit, hour
// ranges canonicalized) so the downloaded file round-trips exactly.
func (h *ModelHandler) ExportModel(c *gin.Context) {
	var req models.ExportModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	cfg, err := req.Model.ToBillingConfig()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_MODEL", Message: err.Error()},
		})
		return
	}
	normalized, err := config.FromBillingConfig(req.Model.Name, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_MODEL", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, models.ExportModelResponse{Model: normalized})
}
