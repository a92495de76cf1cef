package dto

// CheckStatus is the outcome of one consistency check.
type CheckStatus string

const (
	StatusPass    CheckStatus = "Pass"
	StatusFail    CheckStatus = "Fail"
	StatusSkipped CheckStatus = "Skipped"
)

// Mismatch is one flagged discrepancy for a single loan.
type Mismatch struct {
	LoanNumber string `json:"loan_number"`
	Field      string `json:"field,omitempty"`

	// Set-based checks
	SourceAValues []string `json:"source_a_values,omitempty"`
	SourceBValues []string `json:"source_b_values,omitempty"`
	TotalUnique   int      `json:"total_unique,omitempty"`

	// Row-wise checks
	SourceAValue string `json:"source_a_value,omitempty"`
	SourceBValue string `json:"source_b_value,omitempty"`

	// Fuzzy-compared checks
	Score          *int     `json:"score,omitempty"`
	EditSimilarity *float64 `json:"edit_similarity,omitempty"`
}

// CheckResult is the report of one consistency check.
type CheckResult struct {
	Check        string      `json:"check"`
	Status       CheckStatus `json:"status"`
	SourceALabel string      `json:"source_a"`
	SourceBLabel string      `json:"source_b"`
	Count        int         `json:"count"`
	Details      []Mismatch  `json:"details"`
	SkipReason   string      `json:"skip_reason,omitempty"`
	Warnings     []string    `json:"warnings,omitempty"`
}

// Summary aggregates the executed checks of a run.
type Summary struct {
	TotalChecks     int `json:"total_checks"`
	Passed          int `json:"passed"`
	Failed          int `json:"failed"`
	Skipped         int `json:"skipped"`
	TotalMismatches int `json:"total_mismatches"`
}

// Summarize counts pass/fail outcomes; skipped checks are excluded from the total.
func Summarize(results []CheckResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
			continue
		}
		s.TotalChecks++
		s.TotalMismatches += r.Count
	}
	return s
}
