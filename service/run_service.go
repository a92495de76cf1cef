package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aashish23092/loan-reconciliation/client"
	"github.com/Aashish23092/loan-reconciliation/config"
	"github.com/Aashish23092/loan-reconciliation/dto"
	"github.com/Aashish23092/loan-reconciliation/logger"
)

// Upload is one workbook handed to a run.
type Upload struct {
	Name   string
	Reader io.Reader
}

// RunService ties loading, reconciliation and consolidation into one run.
type RunService struct {
	cfg         *config.Config
	excel       *client.ExcelClient
	loader      *LoaderService
	reconciler  *ReconcileService
	consolidate *ConsolidateService

	now func() time.Time
}

func NewRunService(cfg *config.Config, excel *client.ExcelClient, loader *LoaderService, reconciler *ReconcileService, consolidate *ConsolidateService) *RunService {
	return &RunService{
		cfg:         cfg,
		excel:       excel,
		loader:      loader,
		reconciler:  reconciler,
		consolidate: consolidate,
		now:         time.Now,
	}
}

// Run loads both workbooks, validates them against each other and builds the
// final table. A load error aborts the run and no partial result is returned.
func (s *RunService) Run(ctx context.Context, assetDetails, applicationData Upload, strict bool) (*dto.RunResult, error) {
	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID))
	log.Info("reconciliation started",
		zap.String("asset_details", assetDetails.Name),
		zap.String("application_data", applicationData.Name),
		zap.Bool("strict", strict))

	strict = strict || s.cfg.StrictSheets

	verified, err := s.loader.LoadVerified(assetDetails.Reader, assetDetails.Name, strict)
	if err != nil {
		log.Error("failed to load asset details", zap.Error(err))
		return nil, err
	}

	application, err := s.loader.LoadApplication(applicationData.Reader, applicationData.Name, strict)
	if err != nil {
		log.Error("failed to load application data", zap.Error(err))
		return nil, err
	}

	checks, err := s.reconciler.Validate(ctx, verified, application)
	if err != nil {
		return nil, fmt.Errorf("failed to run checks: %w", err)
	}

	final, consolidateNotes := s.consolidate.Consolidate(verified, application)

	notes := make([]string, 0, len(verified.Warnings)+len(application.Warnings)+len(consolidateNotes))
	notes = append(notes, verified.Warnings...)
	notes = append(notes, application.Warnings...)
	notes = append(notes, consolidateNotes...)

	result := &dto.RunResult{
		RunID:       runID,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		SourceSheets: dto.SourceSheets{
			AssetDetails:    verified.Sheets,
			ApplicationData: application.Sheets,
		},
		Checks:       checks,
		Summary:      dto.Summarize(checks),
		FinalTable:   final,
		FinalSummary: dto.SummarizeFinal(final),
		Notes:        notes,
	}

	log.Info("reconciliation finished",
		zap.Int("checks", result.Summary.TotalChecks),
		zap.Int("failed", result.Summary.Failed),
		zap.Int("skipped", result.Summary.Skipped),
		zap.Int("mismatches", result.Summary.TotalMismatches),
		zap.Int("final_rows", final.Len()))
	return result, nil
}

// Export renders the final table of a run as a single-sheet workbook and
// returns it with its download filename.
func (s *RunService) Export(result *dto.RunResult) (*bytes.Buffer, string, error) {
	if result == nil || result.FinalTable.Empty() {
		return nil, "", dto.ErrEmptyResult
	}

	buf, err := s.excel.WriteTable(result.FinalTable, dto.SheetFinal)
	if err != nil {
		return nil, "", fmt.Errorf("failed to write final table: %w", err)
	}
	return buf, s.ExportFilename(), nil
}

// ExportFilename is <prefix>.xlsx, or <prefix>_<YYYYMMDD_HHMMSS>.xlsx when
// exports are timestamped.
func (s *RunService) ExportFilename() string {
	if !s.cfg.TimestampExports {
		return s.cfg.ExportFilePrefix + ".xlsx"
	}
	return fmt.Sprintf("%s_%s.xlsx", s.cfg.ExportFilePrefix, s.now().Format("20060102_150405"))
}
