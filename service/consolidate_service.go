package service

import (
	"github.com/Aashish23092/loan-reconciliation/dto"
	"github.com/Aashish23092/loan-reconciliation/logger"
)

// ConsolidateService merges borrower identity, verified asset and
// application form data into one row per loan.
type ConsolidateService struct{}

func NewConsolidateService() *ConsolidateService {
	return &ConsolidateService{}
}

// Consolidate builds the final table. When there are no borrower rows or no
// asset rows it returns an empty table and a note saying why.
func (s *ConsolidateService) Consolidate(verified *dto.VerifiedSources, application *dto.ApplicationSources) (*dto.Table, []string) {
	var notes []string

	borrowers := application.Borrowers
	asset := dto.NewTable(dto.SheetAsset)
	if verified.Asset.Has(dto.ColLoanNumber) {
		asset = verified.Asset.Filter(func(row dto.Row) bool {
			return row.Get(dto.ColLoanNumber) != ""
		}).FirstBy(dto.ColLoanNumber)
	}

	if borrowers.Empty() || !borrowers.Has(dto.ColLoanNumber) {
		logger.Warn("No borrower rows available, final table is empty")
		return dto.NewTable(dto.SheetFinal), append(notes, "final table not built: no borrower rows in the Applicant sheet")
	}
	if asset.Empty() {
		logger.Warn("No asset rows available, final table is empty")
		return dto.NewTable(dto.SheetFinal), append(notes, "final table not built: no asset rows with a Loan Number")
	}

	identity, note := s.borrowerIdentity(borrowers, verified)
	if note != "" {
		notes = append(notes, note)
	}
	identity = identity.FirstBy(dto.ColLoanNumber)

	final := s.joinAsset(asset, identity)

	appended := 0
	if form := application.ApplicationForm; form.Has(dto.ColLoanNumber) {
		present := make(map[string]bool, final.Len())
		for _, row := range final.Rows {
			present[row.Get(dto.ColLoanNumber)] = true
		}
		for _, row := range form.Rows {
			loan := row.Get(dto.ColLoanNumber)
			if loan == "" || present[loan] {
				continue
			}
			present[loan] = true
			final.Append(dto.Row{dto.ColLoanNumber: loan})
			appended++
		}
	}
	if appended > 0 {
		logger.Info("Added %d loans present only in the application form", appended)
	}

	logger.Info("Final table built with %d rows and %d columns", final.Len(), len(final.Columns))
	return final, notes
}

// borrowerIdentity joins borrowers to the Aadhar and PAN verification rows.
// With only one identity source that source is used as is; with neither the
// result is the bare list of borrower loan numbers.
func (s *ConsolidateService) borrowerIdentity(borrowers *dto.Table, verified *dto.VerifiedSources) (*dto.Table, string) {
	var aadhar, pan *dto.Table

	if !verified.Aadhar.Empty() &&
		borrowers.Has(dto.ColAadharNumber) &&
		verified.Aadhar.Has(dto.ColLoanNumber, dto.ColAadharNumber) {
		aadhar = leftJoin(
			borrowers, []column{{dto.ColLoanNumber, dto.ColLoanNumber}, {dto.ColAadharNumber, dto.ColAadharNumber}},
			verified.Aadhar, available(verified.Aadhar, []column{{dto.ColAgeRange, dto.ColAgeRange}, {dto.ColState, dto.ColState}}),
			[]string{dto.ColLoanNumber, dto.ColAadharNumber},
		)
	}

	if !verified.Pancard.Empty() &&
		borrowers.Has(dto.ColPancardNumber, dto.ColDOB) &&
		verified.Pancard.Has(dto.ColLoanNumber, dto.ColPancardNumber) {
		pan = leftJoin(
			borrowers, []column{{dto.ColLoanNumber, dto.ColLoanNumber}, {dto.ColPancardNumber, dto.ColPancardNumber}, {dto.ColDOB, dto.ColDOB}},
			verified.Pancard, available(verified.Pancard, []column{{dto.ColPanFullName, dto.ColPanFullName}, {dto.ColDOB, dto.ColPanDOB}}),
			[]string{dto.ColLoanNumber, dto.ColPancardNumber},
		)
	}

	switch {
	case aadhar != nil && pan != nil:
		return outerJoin(aadhar, pan, dto.ColLoanNumber), ""
	case aadhar != nil:
		return aadhar, "PAN details not merged: pancard sheet empty or missing Pancard Number/DOB"
	case pan != nil:
		return pan, "Aadhaar details not merged: Aadhar sheet empty or missing Aadhar Number"
	default:
		loans := dto.NewTable(dto.SheetFinal, dto.ColLoanNumber)
		for _, row := range borrowers.Rows {
			loans.Append(dto.Row{dto.ColLoanNumber: row.Get(dto.ColLoanNumber)})
		}
		return loans, "no identity details merged: Aadhar and pancard sheets unusable"
	}
}

// joinAsset keeps the fixed asset column subset, one row per loan, and
// attaches the identity columns of the same loan.
func (s *ConsolidateService) joinAsset(asset, identity *dto.Table) *dto.Table {
	var assetCols []string
	for _, c := range dto.FinalAssetColumns {
		if asset.Has(c) {
			assetCols = append(assetCols, c)
		}
	}

	var identityCols []string
	for _, c := range identity.Columns {
		if c != dto.ColLoanNumber {
			identityCols = append(identityCols, c)
		}
	}

	byLoan := make(map[string]dto.Row, identity.Len())
	for _, row := range identity.Rows {
		byLoan[row.Get(dto.ColLoanNumber)] = row
	}

	final := dto.NewTable(dto.SheetFinal, append(append([]string{}, assetCols...), identityCols...)...)
	for _, row := range asset.Rows {
		out := make(dto.Row, len(final.Columns))
		for _, c := range assetCols {
			if v := row.Get(c); v != "" {
				out[c] = v
			}
		}
		if id, ok := byLoan[row.Get(dto.ColLoanNumber)]; ok {
			for _, c := range identityCols {
				if v := id.Get(c); v != "" {
					out[c] = v
				}
			}
		}
		final.Append(out)
	}
	return final
}

// column maps a source column onto its name in a joined table.
type column struct {
	from string
	to   string
}

func available(t *dto.Table, cols []column) []column {
	var out []column
	for _, c := range cols {
		if t.Has(c.from) {
			out = append(out, c)
		}
	}
	return out
}

// leftJoin keeps every left row, paired with each right row that agrees on
// all keys, or alone when none does. Keys must appear in leftCols.
func leftJoin(left *dto.Table, leftCols []column, right *dto.Table, rightCols []column, keys []string) *dto.Table {
	cols := make([]string, 0, len(leftCols)+len(rightCols))
	for _, c := range leftCols {
		cols = append(cols, c.to)
	}
	for _, c := range rightCols {
		cols = append(cols, c.to)
	}
	out := dto.NewTable(left.Name, cols...)

	index := make(map[string][]dto.Row)
	for _, row := range right.Rows {
		k := joinKey(row, keys)
		index[k] = append(index[k], row)
	}

	for _, row := range left.Rows {
		base := make(dto.Row, len(cols))
		for _, c := range leftCols {
			base[c.to] = row.Get(c.from)
		}

		matches := index[joinKey(row, keys)]
		if len(matches) == 0 {
			out.Append(base)
			continue
		}
		for _, m := range matches {
			merged := make(dto.Row, len(cols))
			for k, v := range base {
				merged[k] = v
			}
			for _, c := range rightCols {
				merged[c.to] = m.Get(c.from)
			}
			out.Append(merged)
		}
	}
	return out
}

// outerJoin pairs rows of a and b sharing key; rows without a partner are
// kept with the other side's columns empty. Order: a's rows, then b's
// unmatched rows.
func outerJoin(a, b *dto.Table, key string) *dto.Table {
	cols := append([]string{}, a.Columns...)
	for _, c := range b.Columns {
		if c != key {
			cols = append(cols, c)
		}
	}
	out := dto.NewTable(a.Name, cols...)

	index := make(map[string][]dto.Row)
	for _, row := range b.Rows {
		index[row.Get(key)] = append(index[row.Get(key)], row)
	}

	matched := make(map[string]bool)
	for _, row := range a.Rows {
		k := row.Get(key)
		partners := index[k]
		if len(partners) == 0 {
			out.Append(copyRow(row))
			continue
		}
		matched[k] = true
		for _, p := range partners {
			merged := copyRow(row)
			for _, c := range b.Columns {
				if c != key {
					merged[c] = p.Get(c)
				}
			}
			out.Append(merged)
		}
	}

	for _, row := range b.Rows {
		if !matched[row.Get(key)] {
			out.Append(copyRow(row))
		}
	}
	return out
}

func joinKey(row dto.Row, keys []string) string {
	k := make([]byte, 0, 32)
	for _, c := range keys {
		k = append(k, row.Get(c)...)
		k = append(k, 0x1f)
	}
	return string(k)
}

func copyRow(row dto.Row) dto.Row {
	out := make(dto.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
