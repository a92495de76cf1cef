package client

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Aashish23092/loan-reconciliation/dto"
	"github.com/Aashish23092/loan-reconciliation/logger"
	"github.com/xuri/excelize/v2"
)

// ExcelClient reads uploaded workbooks into tables and writes tables back out.
type ExcelClient struct {
	rawValues bool
}

func NewExcelClient() *ExcelClient {
	return &ExcelClient{
		rawValues: true,
	}
}

// Workbook is an opened spreadsheet. Close it when done.
type Workbook struct {
	name   string
	file   *excelize.File
	client *ExcelClient
}

// Open parses a workbook from r. name is only used in errors and logs.
func (c *ExcelClient) Open(r io.Reader, name string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dto.ErrInvalidWorkbook, name, err)
	}

	logger.Debug("Opened workbook %s with sheets %v", name, f.GetSheetList())
	return &Workbook{name: name, file: f, client: c}, nil
}

// Name returns the name the workbook was opened with
func (w *Workbook) Name() string {
	return w.name
}

// SheetNames lists the workbook's sheets in tab order
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether a sheet with exactly this name exists.
func (w *Workbook) HasSheet(sheet string) bool {
	for _, s := range w.file.GetSheetList() {
		if s == sheet {
			return true
		}
	}
	return false
}

// ReadSheet reads a sheet whose first row is the header.
//
// Header names are trimmed; repeated names get ".1", ".2" suffixes and blank
// names become "Unnamed: <index>". Fully empty rows are skipped.
func (w *Workbook) ReadSheet(sheet string) (*dto.Table, error) {
	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: w.client.rawValues})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, w.name, err)
	}
	if len(rows) == 0 {
		return dto.NewTable(sheet), nil
	}

	table := dto.NewTable(sheet, headerNames(rows[0])...)
	for _, cells := range rows[1:] {
		if isBlankRow(cells) {
			continue
		}
		row := make(dto.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(cells) {
				row[col] = strings.TrimSpace(cells[i])
			} else {
				row[col] = ""
			}
		}
		table.Append(row)
	}
	return table, nil
}

// Close releases the workbook
func (w *Workbook) Close() error {
	return w.file.Close()
}

// WriteTable renders t as a single-sheet workbook: a header row followed by
// one row per record, empty cells left blank.
func (c *ExcelClient) WriteTable(t *dto.Table, sheet string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if sheet != "" && sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, fmt.Errorf("failed to name sheet %s: %w", sheet, err)
		}
	} else {
		sheet = defaultSheet
	}

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range t.Rows {
		values := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			if v := row.Get(col); v != "" {
				values[i] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

func headerNames(cells []string) []string {
	names := make([]string, len(cells))
	used := make(map[string]bool, len(cells))
	suffix := make(map[string]int)
	for i, c := range cells {
		name := strings.TrimSpace(c)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if used[name] {
			base := name
			for {
				suffix[base]++
				name = base + "." + strconv.Itoa(suffix[base])
				if !used[name] {
					break
				}
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
