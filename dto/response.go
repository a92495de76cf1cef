package dto

import "errors"

// Custom errors
var (
	ErrMissingFile     = errors.New("both asset_details and application_data workbooks are required")
	ErrInvalidWorkbook = errors.New("not a valid spreadsheet workbook")
	ErrMissingSheet    = errors.New("required sheet not found")
	ErrEmptyResult     = errors.New("final table is empty")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// RunResult is the outcome of one reconciliation run
type RunResult struct {
	RunID        string        `json:"run_id"`
	GeneratedAt  string        `json:"generated_at"`
	SourceSheets SourceSheets  `json:"source_sheets"`
	Checks       []CheckResult `json:"checks"`
	Summary      Summary       `json:"summary"`
	FinalTable   *Table        `json:"final_table"`
	FinalSummary FinalSummary  `json:"final_summary"`
	Notes        []string      `json:"notes"`
}
