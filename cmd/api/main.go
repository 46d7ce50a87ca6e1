package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"electricity-cost/internal/api/handlers"
	"electricity-cost/internal/api/middleware"
	"electricity-cost/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	results := data.NewResultCache(1 * time.Hour)
	modelHandler := handlers.NewModelHandler()
	calculateHandler := handlers.NewCalculateHandler(results, modelHandler.GetModelDir())
	methodHandler := handlers.NewMethodHandler()
	uploadHandler := handlers.NewUploadHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Diagnostic endpoint to check the preset model directory
	router.GET("/debug/model-dir", func(c *gin.Context) {
		wd, _ := os.Getwd()
		modelDir := modelHandler.GetModelDir()
		info, statErr := os.Stat(modelDir)

		var entries []string
		if dirEntries, err := os.ReadDir(modelDir); err == nil {
			for _, e := range dirEntries {
				entries = append(entries, e.Name())
			}
		}

		c.JSON(200, gin.H{
			"working_directory": wd,
			"model_dir":         modelDir,
			"model_dir_exists":  statErr == nil,
			"model_dir_is_dir":  info != nil && info.IsDir(),
			"entries":           entries,
			"entry_count":       len(entries),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/calculate", calculateHandler.RunCalculation)
		api.GET("/calculations/:id/peaks", calculateHandler.GetPeaks)

		api.POST("/usage/parse", uploadHandler.ParseUsage)

		api.GET("/models", modelHandler.ListModels)
		api.GET("/models/:id", modelHandler.GetModel)
		api.POST("/models/diff", modelHandler.DiffModels)
		api.POST("/models/export", modelHandler.ExportModel)

		api.GET("/methods", methodHandler.ListMethods)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
