package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/loan-reconciliation/dto"
)

type fixtureSheet struct {
	name string
	rows [][]interface{}
}

// workbook builds an in-memory xlsx with the given sheets in order.
func workbook(t *testing.T, sheets ...fixtureSheet) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(s.name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func aadharSheet() fixtureSheet {
	return fixtureSheet{name: dto.SheetAadhar, rows: [][]interface{}{
		{"PartnerLoanNumber", "AadhaarNumber", "aadhaar_number", "age_range", "state"},
		{"L1", "111122223333", "XXXX3333", "30-40", "Karnataka"},
		{"L2", "999988887777", "XXXX7777", "20-30", "Kerala"},
	}}
}

func pancardSheet() fixtureSheet {
	return fixtureSheet{name: dto.SheetPancard, rows: [][]interface{}{
		{"PartnerLoanNumber", "PancardNumber", "dob", "full_name", "pan_number", "phone_number"},
		{"L1", "abcde1234f", "15-08-1990", "JOHN DOE", "x", "y"},
		{"L1", "abcde1234f", "15-08-1990", "JOHN DOE", "x", "y"},
		{"L2", "PQRSX6789K", "1985-01-02", "MARY SMITH", "x", "y"},
	}}
}

func verifiedAssetSheet() fixtureSheet {
	return fixtureSheet{name: dto.SheetAsset, rows: [][]interface{}{
		{"PartnerLoanNumber", "rc_number", "registration_date", "owner_name", "father_name", "mobile_number",
			"vehicle_engine_number", "vehicle_chasi_number", "permanent_address", "color"},
		{"L1", "KA01AB1234", "2020-01-10", "JOHN", "DOE", "+91 98450 12345", "ENG1", "CH1", "12 MG ROAD BANGALORE", "RED"},
		{"L2", "KL07CD5678", "2021-03-04", "MARY", "SMITH", "9000000002", "ENG2", "CH2", "4 BEACH ROAD KOCHI", "BLUE"},
		{"L3", "MH02EF9012", "2019-07-07", "RAVI", "KUMAR", "9000000003", "ENG3", "CH3", "8 LINK ROAD MUMBAI", "WHITE"},
	}}
}

func verifiedWorkbook(t *testing.T) *bytes.Buffer {
	return workbook(t, aadharSheet(), pancardSheet(), verifiedAssetSheet())
}

func applicationWorkbook(t *testing.T) *bytes.Buffer {
	return workbook(t,
		fixtureSheet{name: dto.SheetApplicationForm, rows: [][]interface{}{
			{"Loan Number", "Customer Name", "Customer Address", "Mobile No."},
			{"L1", "JOHN DOE", "12 MG ROAD BANGALORE", "919845012345"},
			{"L2", "MARY SMITH", "4 BEACH ROAD KOCHI", "9000000002"},
			{"L4", "ANIL DAS", "1 PARK STREET KOLKATA", "9000000004"},
		}},
		fixtureSheet{name: dto.SheetApplicant, rows: [][]interface{}{
			{"Loan Number", dto.ColApplicantCategory, "First Name", "Middle Name", "Last Name", "DOB",
				"Pancard Number", "Aadhar Number", "Mobile Number"},
			{"L1", "Borrower", "John", "", "Doe", 15081990, "ABCDE1234F", 111122223333, "9845012345"},
			{"L2", " borrower ", "Mary", "", "Smith", "2011985", "PQRSX6789K", 999988887777, "9000000002"},
			{"L2", "co-borrower", "Sam", "", "Smith", "", "", "", ""},
		}},
		fixtureSheet{name: dto.SheetAssetDetails, rows: [][]interface{}{
			{"Loan Number", "Registration No", "Registration Date", "Engine No", "Chassis No"},
			{"L1", "ka01ab1234", "2020-01-10", "ENG1", "CH1"},
			{"L2", "KL07CD5678", "2021-03-04", "ENG2", "CH2"},
		}},
	)
}

func table(name string, cols []string, rows ...[]string) *dto.Table {
	t := dto.NewTable(name, cols...)
	for _, r := range rows {
		row := make(dto.Row, len(cols))
		for i, c := range cols {
			if i < len(r) {
				row[c] = r[i]
			}
		}
		t.Append(row)
	}
	return t
}

func emptyVerified() *dto.VerifiedSources {
	return &dto.VerifiedSources{
		Aadhar:  dto.NewTable(dto.SheetAadhar),
		Pancard: dto.NewTable(dto.SheetPancard),
		Asset:   dto.NewTable(dto.SheetAsset),
	}
}

func emptyApplication() *dto.ApplicationSources {
	return &dto.ApplicationSources{
		ApplicationForm: dto.NewTable(dto.SheetApplicationForm),
		Applicant:       dto.NewTable(dto.SheetApplicant),
		AssetDetails:    dto.NewTable(dto.SheetAssetDetails),
		Borrowers:       dto.NewTable(dto.SheetApplicant),
	}
}
