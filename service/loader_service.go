package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/Aashish23092/loan-reconciliation/client"
	"github.com/Aashish23092/loan-reconciliation/dto"
	"github.com/Aashish23092/loan-reconciliation/logger"
	"github.com/Aashish23092/loan-reconciliation/utils"
)

// LoadError reports a workbook that could not be used for a run.
type LoadError struct {
	Workbook string
	Sheet    string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("load %s: sheet %q: %v", e.Workbook, e.Sheet, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Workbook, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoaderService reads the two uploaded workbooks and normalizes their sheets
// so they can be compared.
type LoaderService struct {
	excel *client.ExcelClient
}

func NewLoaderService(excel *client.ExcelClient) *LoaderService {
	return &LoaderService{
		excel: excel,
	}
}

// LoadVerified reads the verification workbook (Aadhar, pancard, Asset).
// In strict mode a missing sheet is a LoadError; otherwise it becomes an empty table.
func (s *LoaderService) LoadVerified(r io.Reader, name string, strict bool) (*dto.VerifiedSources, error) {
	sheets, names, err := s.readSheets(r, name, strict, dto.SheetAadhar, dto.SheetPancard, dto.SheetAsset)
	if err != nil {
		return nil, err
	}

	src := &dto.VerifiedSources{
		Aadhar:  sheets[dto.SheetAadhar],
		Pancard: sheets[dto.SheetPancard],
		Asset:   sheets[dto.SheetAsset],
		Sheets:  names,
	}

	prepareAadhar(src.Aadhar)
	preparePancard(src.Pancard)
	prepareVerifiedAsset(src.Asset)

	src.Warnings = formatWarnings(
		formatCheck{src.Aadhar, dto.ColAadharNumber, utils.IsAadhaar},
		formatCheck{src.Pancard, dto.ColPancardNumber, utils.IsPAN},
		formatCheck{src.Asset, dto.ColAssetMobile, utils.IsMobile},
	)

	logger.Info("Loaded %s: aadhar=%d pancard=%d asset=%d rows",
		name, src.Aadhar.Len(), src.Pancard.Len(), src.Asset.Len())
	return src, nil
}

// LoadApplication reads the application workbook (ApplicationForm, Applicant, Asset).
func (s *LoaderService) LoadApplication(r io.Reader, name string, strict bool) (*dto.ApplicationSources, error) {
	sheets, names, err := s.readSheets(r, name, strict, dto.SheetApplicationForm, dto.SheetApplicant, dto.SheetAssetDetails)
	if err != nil {
		return nil, err
	}

	src := &dto.ApplicationSources{
		ApplicationForm: sheets[dto.SheetApplicationForm],
		Applicant:       sheets[dto.SheetApplicant],
		AssetDetails:    sheets[dto.SheetAssetDetails],
		Sheets:          names,
	}

	prepareApplicationForm(src.ApplicationForm)
	prepareApplicant(src.Applicant)
	src.Borrowers = Borrowers(src.Applicant)

	src.Warnings = formatWarnings(
		formatCheck{src.ApplicationForm, dto.ColMobileNo, utils.IsMobile},
		formatCheck{src.Applicant, dto.ColAadharNumber, utils.IsAadhaar},
		formatCheck{src.Applicant, dto.ColPancardNumber, utils.IsPAN},
		formatCheck{src.Applicant, dto.ColMobileNumber, utils.IsMobile},
	)

	logger.Info("Loaded %s: application_form=%d applicant=%d borrowers=%d asset=%d rows",
		name, src.ApplicationForm.Len(), src.Applicant.Len(), src.Borrowers.Len(), src.AssetDetails.Len())
	return src, nil
}

func (s *LoaderService) readSheets(r io.Reader, name string, strict bool, required ...string) (map[string]*dto.Table, []string, error) {
	wb, err := s.excel.Open(r, name)
	if err != nil {
		return nil, nil, &LoadError{Workbook: name, Err: err}
	}
	defer wb.Close()

	tables := make(map[string]*dto.Table, len(required))
	for _, sheet := range required {
		if !wb.HasSheet(sheet) {
			if strict {
				return nil, nil, &LoadError{Workbook: name, Sheet: sheet, Err: dto.ErrMissingSheet}
			}
			logger.Warn("Workbook %s has no %q sheet, treating it as empty", name, sheet)
			tables[sheet] = dto.NewTable(sheet)
			continue
		}

		t, err := wb.ReadSheet(sheet)
		if err != nil {
			return nil, nil, &LoadError{Workbook: name, Sheet: sheet, Err: err}
		}
		tables[sheet] = t
	}
	return tables, wb.SheetNames(), nil
}

func prepareAadhar(t *dto.Table) {
	t.Drop(dto.AadharDroppedColumns...)
	t.Rename(dto.VerifiedColumnRenames)
	canonicalize(t, dto.ColAadharNumber, utils.CanonicalIdentifier)
}

func preparePancard(t *dto.Table) {
	t.Drop(dto.PancardDroppedColumns...)
	t.Rename(dto.VerifiedColumnRenames)
	canonicalize(t, dto.ColPancardNumber, utils.CanonicalIdentifier)
	canonicalize(t, dto.ColDOB, func(v string) string {
		return utils.FormatDate(utils.ParseFlexibleDate(v))
	})
	t.DropDuplicates()
}

func prepareVerifiedAsset(t *dto.Table) {
	t.Rename(dto.VerifiedColumnRenames)
	canonicalize(t, dto.ColAssetMobile, utils.CanonicalMobile)

	if t.Has(dto.ColOwnerName, dto.ColFatherName) {
		t.AddColumn(dto.ColAssetFullName)
		for _, row := range t.Rows {
			row[dto.ColAssetFullName] = utils.FullName(row.Get(dto.ColOwnerName), row.Get(dto.ColFatherName))
		}
	}
}

func prepareApplicationForm(t *dto.Table) {
	canonicalize(t, dto.ColMobileNo, utils.CanonicalMobile)
}

func prepareApplicant(t *dto.Table) {
	canonicalize(t, dto.ColDOB, func(v string) string {
		return utils.FormatDate(utils.ParseCompactDate(v))
	})
	canonicalize(t, dto.ColPancardNumber, utils.CanonicalIdentifier)
	canonicalize(t, dto.ColAadharNumber, utils.CanonicalIdentifier)
	canonicalize(t, dto.ColMobileNumber, utils.CanonicalMobile)

	if t.Has(dto.ColFirstName, dto.ColMiddleName, dto.ColLastName) {
		t.AddColumn(dto.ColFullName)
		for _, row := range t.Rows {
			row[dto.ColFullName] = utils.FullName(
				row.Get(dto.ColFirstName),
				row.Get(dto.ColMiddleName),
				row.Get(dto.ColLastName),
			)
		}
	}
}

// Borrowers returns the applicant rows whose category is "borrower";
// co-borrowers and guarantors are left out.
func Borrowers(applicant *dto.Table) *dto.Table {
	if !applicant.Has(dto.ColApplicantCategory) {
		return dto.NewTable(dto.SheetApplicant)
	}
	return applicant.Filter(func(row dto.Row) bool {
		return strings.EqualFold(strings.TrimSpace(row.Get(dto.ColApplicantCategory)), dto.CategoryBorrower)
	})
}

type formatCheck struct {
	table *dto.Table
	col   string
	valid func(string) bool
}

// formatWarnings counts non-empty values that fail their format check.
// Malformed values still take part in reconciliation as they are.
func formatWarnings(checks ...formatCheck) []string {
	var warnings []string
	for _, c := range checks {
		if !c.table.Has(c.col) {
			continue
		}
		var bad []string
		for _, row := range c.table.Rows {
			if v := row.Get(c.col); v != "" && !c.valid(v) {
				bad = append(bad, row.Get(dto.ColLoanNumber))
			}
		}
		if len(bad) == 0 {
			continue
		}
		w := fmt.Sprintf("%s: %d rows with malformed %s (loans: %s)", c.table.Name, len(bad), c.col, strings.Join(bad, ", "))
		logger.Warn("%s", w)
		warnings = append(warnings, w)
	}
	return warnings
}

func canonicalize(t *dto.Table, col string, fn func(string) string) {
	if !t.Has(col) {
		return
	}
	for _, row := range t.Rows {
		row[col] = fn(row.Get(col))
	}
}
