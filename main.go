package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Aashish23092/loan-reconciliation/client"
	"github.com/Aashish23092/loan-reconciliation/config"
	"github.com/Aashish23092/loan-reconciliation/handler"
	"github.com/Aashish23092/loan-reconciliation/logger"
	"github.com/Aashish23092/loan-reconciliation/service"
	"github.com/Aashish23092/loan-reconciliation/utils/fuzzy"

	"github.com/gin-gonic/gin"
)

func main() {
	assetPath := flag.String("asset-details", "", "asset/identity details workbook (batch mode)")
	applicationPath := flag.String("application-data", "", "application data workbook (batch mode)")
	outPath := flag.String("out", "", "where to write the final workbook (batch mode, default <export_file_prefix>.xlsx)")
	strict := flag.Bool("strict", false, "fail when a required sheet is missing")
	flag.Parse()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	// Initialize service layer
	excelClient := client.NewExcelClient()
	runService := service.NewRunService(
		cfg,
		excelClient,
		service.NewLoaderService(excelClient),
		service.NewReconcileService(fuzzy.TokenSetScorer, cfg.FuzzyThreshold),
		service.NewConsolidateService(),
	)

	if *assetPath != "" || *applicationPath != "" {
		if err := runBatch(runService, *assetPath, *applicationPath, *outPath, *strict); err != nil {
			logger.Error("Batch run failed: %v", err)
			logger.Sync()
			os.Exit(1)
		}
		return
	}

	// Initialize handler layer
	reconcileHandler := handler.NewReconcileHandler(runService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	router.GET("/health", handler.Health)

	// API routes
	api := router.Group("/api/v1")
	{
		reconcile := api.Group("/reconcile")
		{
			reconcile.POST("", reconcileHandler.Reconcile)
			reconcile.POST("/export", reconcileHandler.Export)
		}
	}

	// Start server
	logger.Info("Starting Loan Reconciliation Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Error("Failed to start server: %v", err)
		logger.Sync()
		os.Exit(1)
	}
}

// runBatch reconciles two workbooks from disk and writes the final table.
func runBatch(runService *service.RunService, assetPath, applicationPath, outPath string, strict bool) error {
	if assetPath == "" || applicationPath == "" {
		return fmt.Errorf("both -asset-details and -application-data are required")
	}

	assetFile, err := os.Open(assetPath)
	if err != nil {
		return fmt.Errorf("failed to open asset details: %w", err)
	}
	defer assetFile.Close()

	applicationFile, err := os.Open(applicationPath)
	if err != nil {
		return fmt.Errorf("failed to open application data: %w", err)
	}
	defer applicationFile.Close()

	result, err := runService.Run(context.Background(),
		service.Upload{Name: assetPath, Reader: assetFile},
		service.Upload{Name: applicationPath, Reader: applicationFile},
		strict,
	)
	if err != nil {
		return err
	}

	for _, check := range result.Checks {
		logger.Info("%-50s %-7s %d", check.Check, check.Status, check.Count)
	}
	for _, note := range result.Notes {
		logger.Warn("%s", note)
	}

	buf, filename, err := runService.Export(result)
	if err != nil {
		return fmt.Errorf("failed to export final table: %w", err)
	}
	if outPath == "" {
		outPath = filename
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	logger.Info("Wrote %d rows to %s (run %s)", result.FinalTable.Len(), outPath, result.RunID)
	return nil
}
