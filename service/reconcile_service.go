package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Aashish23092/loan-reconciliation/dto"
	"github.com/Aashish23092/loan-reconciliation/logger"
	"github.com/Aashish23092/loan-reconciliation/utils"
	"github.com/Aashish23092/loan-reconciliation/utils/fuzzy"
)

// Check names as shown in reports
const (
	CheckAadhaar         = "Aadhaar Number Consistency"
	CheckPAN             = "PAN Number Consistency"
	CheckName            = "Name Consistency (Applicant vs Asset Owner)"
	CheckDOB             = "DOB Consistency (Applicant vs PAN)"
	CheckMobile          = "Mobile Number Consistency (Applicant vs Asset)"
	CheckApplicationName = "Application Form Name Consistency"
	CheckApplicationMob  = "Application Form Mobile Consistency"
	CheckAssetForm       = "Asset Form Consistency"
	CheckAddress         = "Address Consistency"
)

// sources is the read-only view every check receives.
type sources struct {
	verified    *dto.VerifiedSources
	application *dto.ApplicationSources
}

type check interface {
	run(in sources) dto.CheckResult
}

// ReconcileService runs the cross-source consistency checks.
type ReconcileService struct {
	scorer    fuzzy.Scorer
	threshold int
}

func NewReconcileService(scorer fuzzy.Scorer, threshold int) *ReconcileService {
	if scorer == nil {
		scorer = fuzzy.TokenSetScorer
	}
	return &ReconcileService{
		scorer:    scorer,
		threshold: threshold,
	}
}

// Validate runs every check concurrently and returns the results in a fixed
// order. Checks whose columns are missing come back with StatusSkipped.
func (s *ReconcileService) Validate(ctx context.Context, verified *dto.VerifiedSources, application *dto.ApplicationSources) ([]dto.CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in := sources{verified: verified, application: application}
	checks := s.checks()
	results := make([]dto.CheckResult, len(checks))

	var wg sync.WaitGroup
	for i, c := range checks {
		wg.Add(1)
		go func(i int, c check) {
			defer wg.Done()
			results[i] = c.run(in)
		}(i, c)
	}
	wg.Wait()

	for _, r := range results {
		switch r.Status {
		case dto.StatusSkipped:
			logger.Info("Check %q skipped: %s", r.Check, r.SkipReason)
		case dto.StatusFail:
			logger.Info("Check %q failed with %d mismatches", r.Check, r.Count)
		default:
			logger.Debug("Check %q passed", r.Check)
		}
		for _, w := range r.Warnings {
			logger.Warn("Check %q: %s", r.Check, w)
		}
	}
	return results, nil
}

func (s *ReconcileService) checks() []check {
	applicant := func(in sources) *dto.Table { return in.application.Applicant }
	applicationForm := func(in sources) *dto.Table { return in.application.ApplicationForm }
	assetDetails := func(in sources) *dto.Table { return in.application.AssetDetails }
	aadhar := func(in sources) *dto.Table { return in.verified.Aadhar }
	pancard := func(in sources) *dto.Table { return in.verified.Pancard }
	asset := func(in sources) *dto.Table { return in.verified.Asset }

	return []check{
		&setCheck{
			title: CheckAadhaar, labelA: "Applicant Aadhaar", labelB: "Aadhaar File",
			tableA: applicant, colA: dto.ColAadharNumber,
			tableB: aadhar, colB: dto.ColAadharNumber,
		},
		&setCheck{
			title: CheckPAN, labelA: "Applicant PAN", labelB: "PAN File",
			tableA: applicant, colA: dto.ColPancardNumber,
			tableB: pancard, colB: dto.ColPancardNumber,
		},
		&setCheck{
			title: CheckName, labelA: "Applicant Names", labelB: "Asset Owner Names",
			tableA: applicant, colA: dto.ColFullName,
			tableB: asset, colB: dto.ColAssetFullName,
			scorer: s.scorer, threshold: s.threshold,
		},
		&setCheck{
			title: CheckDOB, labelA: "Applicant DOBs", labelB: "PAN File DOBs",
			tableA: applicant, colA: dto.ColDOB,
			tableB: pancard, colB: dto.ColDOB,
		},
		&setCheck{
			title: CheckMobile, labelA: "Applicant Mobiles", labelB: "Asset File Mobiles",
			tableA: applicant, colA: dto.ColMobileNumber,
			tableB: asset, colB: dto.ColAssetMobile,
		},
		&rowCheck{
			title: CheckApplicationName, labelA: "Application Form", labelB: "Asset File",
			tableA: applicationForm, tableB: asset,
			fields: []fieldPair{
				{field: "name", colA: dto.ColCustomerName, colB: dto.ColAssetFullName, mode: compareFuzzy},
			},
			scorer: s.scorer, threshold: s.threshold,
		},
		&rowCheck{
			title: CheckApplicationMob, labelA: "Application Form", labelB: "Asset File",
			tableA: applicationForm, tableB: asset,
			fields: []fieldPair{
				{field: "mobile", colA: dto.ColMobileNo, colB: dto.ColAssetMobile, mode: compareExact},
			},
		},
		&rowCheck{
			title: CheckAssetForm, labelA: "Asset File", labelB: "Application Asset Form",
			tableA: asset, tableB: assetDetails,
			fields: []fieldPair{
				{field: "registration_number", colA: dto.ColRCNumber, colB: dto.ColRegistrationNo, mode: compareExact},
				{field: "registration_date", colA: dto.ColAssetRegDate, colB: dto.ColRegistrationDate, mode: compareRaw},
				{field: "engine_number", colA: dto.ColVehicleEngineNumber, colB: dto.ColEngineNo, mode: compareExact},
				{field: "chassis_number", colA: dto.ColVehicleChassisNumber, colB: dto.ColChassisNo, mode: compareExact},
			},
			partial: true,
		},
		&rowCheck{
			title: CheckAddress, labelA: "Asset File", labelB: "Application Form",
			tableA: asset, tableB: addressTable,
			fields: []fieldPair{
				{field: "address", colA: dto.ColPermanentAddress, colB: dto.ColCustomerAddress, mode: compareFuzzy},
			},
			scorer: s.scorer, threshold: s.threshold,
		},
	}
}

// addressTable prefers the application form's Customer Address and falls
// back to the applicant sheet when the form does not carry it.
func addressTable(in sources) *dto.Table {
	if form := in.application.ApplicationForm; form.Has(dto.ColLoanNumber, dto.ColCustomerAddress) {
		return form
	}
	return in.application.Applicant
}

// setCheck compares, per loan, the set of values each source holds for one field.
type setCheck struct {
	title          string
	labelA, labelB string
	tableA, tableB func(sources) *dto.Table
	colA, colB     string

	// scorer enables the fuzzy fallback: a near-match between any pair of
	// values clears the loan.
	scorer    fuzzy.Scorer
	threshold int
}

func (c *setCheck) run(in sources) dto.CheckResult {
	a, b := c.tableA(in), c.tableB(in)
	result := newResult(c.title, c.labelA, c.labelB)

	if reason := skipReason(a, c.labelA, dto.ColLoanNumber, c.colA); reason != "" {
		return skipped(result, reason)
	}
	if reason := skipReason(b, c.labelB, dto.ColLoanNumber, c.colB); reason != "" {
		return skipped(result, reason)
	}

	setsA, order := groupValues(a, c.colA)
	setsB, _ := groupValues(b, c.colB)

	for _, loan := range order {
		valuesB, ok := setsB[loan]
		if !ok {
			continue
		}
		valuesA := setsA[loan]
		if sameSet(valuesA, valuesB) {
			continue
		}

		union := unionSize(valuesA, valuesB)
		if union <= 2 {
			continue
		}

		listA, listB := sortedValues(valuesA), sortedValues(valuesB)
		mismatch := dto.Mismatch{
			LoanNumber:    loan,
			SourceAValues: listA,
			SourceBValues: listB,
			TotalUnique:   union,
		}
		if c.scorer != nil {
			if fuzzy.AnyMatch(c.scorer, listA, listB, c.threshold) {
				continue
			}
			score := fuzzy.BestScore(c.scorer, listA, listB)
			mismatch.Score = &score
		}
		result.Details = append(result.Details, mismatch)
	}

	return finish(result)
}

type compareMode int

const (
	// compareExact compares canonical identifiers
	compareExact compareMode = iota
	// compareRaw compares cell text as read
	compareRaw
	// compareFuzzy compares token-set scores against the threshold
	compareFuzzy
)

type fieldPair struct {
	field      string
	colA, colB string
	mode       compareMode
}

// rowCheck compares scalar values of the first row per loan on each side.
type rowCheck struct {
	title          string
	labelA, labelB string
	tableA, tableB func(sources) *dto.Table
	fields         []fieldPair

	// partial lets the check run with only the field pairs both tables expose.
	partial bool

	scorer    fuzzy.Scorer
	threshold int
}

func (c *rowCheck) run(in sources) dto.CheckResult {
	a, b := c.tableA(in), c.tableB(in)
	result := newResult(c.title, c.labelA, c.labelB)

	if reason := skipReason(a, c.labelA, dto.ColLoanNumber); reason != "" {
		return skipped(result, reason)
	}
	if reason := skipReason(b, c.labelB, dto.ColLoanNumber); reason != "" {
		return skipped(result, reason)
	}

	var fields []fieldPair
	var missing []string
	for _, f := range c.fields {
		if !a.Has(f.colA) {
			missing = append(missing, fmt.Sprintf("%s.%s", c.labelA, f.colA))
			continue
		}
		if !b.Has(f.colB) {
			missing = append(missing, fmt.Sprintf("%s.%s", c.labelB, f.colB))
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 || (!c.partial && len(missing) > 0) {
		return skipped(result, "missing columns: "+strings.Join(missing, ", "))
	}
	if len(missing) > 0 {
		result.Warnings = append(result.Warnings, "not compared, missing columns: "+strings.Join(missing, ", "))
	}

	firstA, order, dupA := firstRows(a)
	firstB, _, dupB := firstRows(b)
	if dups := duplicatesIn(order, firstB, dupA, dupB); len(dups) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("loans with more than one row, first row compared: %s", strings.Join(dups, ", ")))
	}

	for _, loan := range order {
		rowB, ok := firstB[loan]
		if !ok {
			continue
		}
		rowA := firstA[loan]

		for _, f := range fields {
			if m, bad := c.compare(loan, f, rowA.Get(f.colA), rowB.Get(f.colB)); bad {
				if len(c.fields) > 1 {
					m.Field = f.field
				}
				result.Details = append(result.Details, m)
			}
		}
	}

	return finish(result)
}

func (c *rowCheck) compare(loan string, f fieldPair, va, vb string) (dto.Mismatch, bool) {
	m := dto.Mismatch{LoanNumber: loan, SourceAValue: va, SourceBValue: vb}
	if va == "" && vb == "" {
		return m, false
	}

	switch f.mode {
	case compareRaw:
		return m, va != vb
	case compareFuzzy:
		score := c.scorer.Score(utils.NormalizeName(va), utils.NormalizeName(vb))
		if score >= c.threshold {
			return m, false
		}
		similarity := fuzzy.EditSimilarity(va, vb)
		m.Score = &score
		m.EditSimilarity = &similarity
		return m, true
	default:
		return m, utils.CanonicalIdentifier(va) != utils.CanonicalIdentifier(vb)
	}
}

func newResult(title, labelA, labelB string) dto.CheckResult {
	return dto.CheckResult{
		Check:        title,
		SourceALabel: labelA,
		SourceBLabel: labelB,
		Details:      []dto.Mismatch{},
	}
}

func skipped(r dto.CheckResult, reason string) dto.CheckResult {
	r.Status = dto.StatusSkipped
	r.SkipReason = reason
	return r
}

func finish(r dto.CheckResult) dto.CheckResult {
	r.Count = len(r.Details)
	if r.Count == 0 {
		r.Status = dto.StatusPass
	} else {
		r.Status = dto.StatusFail
	}
	return r
}

// skipReason explains why a table cannot take part in a check, or returns "".
func skipReason(t *dto.Table, label string, cols ...string) string {
	if t.Empty() {
		return fmt.Sprintf("%s has no rows", label)
	}
	if missing := t.Missing(cols...); len(missing) > 0 {
		return fmt.Sprintf("%s is missing columns: %s", label, strings.Join(missing, ", "))
	}
	return ""
}

// groupValues collects the distinct values of col per loan, and the loans in
// first-seen order. Rows without a loan number are ignored; empty values are
// kept as the explicit unknown value "".
func groupValues(t *dto.Table, col string) (map[string]map[string]bool, []string) {
	groups := make(map[string]map[string]bool)
	var order []string
	for _, row := range t.Rows {
		loan := row.Get(dto.ColLoanNumber)
		if loan == "" {
			continue
		}
		set, ok := groups[loan]
		if !ok {
			set = make(map[string]bool)
			groups[loan] = set
			order = append(order, loan)
		}
		set[row.Get(col)] = true
	}
	return groups, order
}

// firstRows keeps the first row per loan and notes loans seen more than once.
func firstRows(t *dto.Table) (map[string]dto.Row, []string, map[string]bool) {
	first := make(map[string]dto.Row)
	dup := make(map[string]bool)
	var order []string
	for _, row := range t.Rows {
		loan := row.Get(dto.ColLoanNumber)
		if loan == "" {
			continue
		}
		if _, ok := first[loan]; ok {
			dup[loan] = true
			continue
		}
		first[loan] = row
		order = append(order, loan)
	}
	return first, order, dup
}

// duplicatesIn lists loans compared by a row-wise check that had more than
// one row on either side.
func duplicatesIn(order []string, other map[string]dto.Row, dupA, dupB map[string]bool) []string {
	var out []string
	for _, loan := range order {
		if _, ok := other[loan]; !ok {
			continue
		}
		if dupA[loan] || dupB[loan] {
			out = append(out, loan)
		}
	}
	return out
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}

func unionSize(a, b map[string]bool) int {
	n := len(a)
	for v := range b {
		if !a[v] {
			n++
		}
	}
	return n
}

func sortedValues(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
