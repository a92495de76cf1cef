package dto

// VerifiedSources holds the third-party verification workbook
// ("Aadhar", "pancard" and "Asset" sheets) after normalization.
type VerifiedSources struct {
	Aadhar  *Table
	Pancard *Table
	Asset   *Table
	Sheets  []string

	// Warnings describe malformed values found while loading.
	Warnings []string
}

// ApplicationSources holds the internally collected application workbook
// ("ApplicationForm", "Applicant" and "Asset" sheets) after normalization.
type ApplicationSources struct {
	ApplicationForm *Table
	Applicant       *Table
	AssetDetails    *Table
	Borrowers       *Table
	Sheets          []string
	Warnings        []string
}

// SourceSheets lists the sheet names found in each uploaded workbook.
type SourceSheets struct {
	AssetDetails    []string `json:"asset_details"`
	ApplicationData []string `json:"application_data"`
}
