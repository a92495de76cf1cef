package dto

// ColumnSummary describes the fill rate of one final-table column.
type ColumnSummary struct {
	Name    string `json:"name"`
	NonNull int    `json:"non_null"`
	Null    int    `json:"null"`
}

// FinalSummary is the preview metadata of the consolidated table.
type FinalSummary struct {
	TotalRecords   int             `json:"total_records"`
	UniqueLoans    int             `json:"unique_loans"`
	MissingPercent float64         `json:"missing_percent"`
	Columns        []ColumnSummary `json:"columns"`
}

// SummarizeFinal computes record counts and per-column null counts.
func SummarizeFinal(t *Table) FinalSummary {
	s := FinalSummary{Columns: []ColumnSummary{}}
	if t == nil {
		return s
	}

	s.TotalRecords = len(t.Rows)
	loans := make(map[string]bool)
	nulls := 0
	for _, col := range t.Columns {
		cs := ColumnSummary{Name: col}
		for _, row := range t.Rows {
			if row.Get(col) == "" {
				cs.Null++
			} else {
				cs.NonNull++
			}
		}
		nulls += cs.Null
		s.Columns = append(s.Columns, cs)
	}
	for _, row := range t.Rows {
		if v := row.Get(ColLoanNumber); v != "" {
			loans[v] = true
		}
	}
	s.UniqueLoans = len(loans)

	if cells := len(t.Rows) * len(t.Columns); cells > 0 {
		s.MissingPercent = float64(nulls) / float64(cells) * 100
	}
	return s
}
