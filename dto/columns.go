package dto

// Sheet names expected in the two uploaded workbooks.
const (
	SheetAadhar          = "Aadhar"
	SheetPancard         = "pancard"
	SheetAsset           = "Asset"
	SheetApplicationForm = "ApplicationForm"
	SheetApplicant       = "Applicant"
	SheetAssetDetails    = "Asset"
	SheetFinal           = "Sheet1"
)

// Shared columns
const (
	ColLoanNumber    = "Loan Number"
	ColAadharNumber  = "Aadhar Number"
	ColPancardNumber = "Pancard Number"
	ColDOB           = "DOB"
)

// Applicant sheet
const (
	ColFirstName         = "First Name"
	ColMiddleName        = "Middle Name"
	ColLastName          = "Last Name"
	ColFullName          = "Full Name"
	ColMobileNumber      = "Mobile Number"
	ColApplicantCategory = "Applicant category(borrower/co-borrower/guarantor)"
)

// ApplicationForm sheet
const (
	ColCustomerName    = "Customer Name"
	ColCustomerAddress = "Customer Address"
	ColMobileNo        = "Mobile No."
)

// Asset details sheet of the application workbook
const (
	ColRegistrationNo   = "Registration No"
	ColRegistrationDate = "Registration Date"
	ColEngineNo         = "Engine No"
	ColChassisNo        = "Chassis No"
)

// Verified asset, Aadhar and pancard sheets
const (
	ColOwnerName            = "owner_name"
	ColFatherName           = "father_name"
	ColAssetFullName        = "full_name"
	ColAssetMobile          = "mobile_number"
	ColRCNumber             = "rc_number"
	ColAssetRegDate         = "registration_date"
	ColVehicleEngineNumber  = "vehicle_engine_number"
	ColVehicleChassisNumber = "vehicle_chasi_number"
	ColPermanentAddress     = "permanent_address"
	ColAgeRange             = "age_range"
	ColState                = "state"
	ColPanFullName          = "full_name"
	ColPanDOB               = "PAN DOB"
)

// CategoryBorrower is the applicant category that takes part in consolidation.
const CategoryBorrower = "borrower"

// VerifiedColumnRenames maps the verification vendor's column names onto the
// names used by the application workbook.
var VerifiedColumnRenames = map[string]string{
	"PartnerLoanNumber": ColLoanNumber,
	"AadhaarNumber":     ColAadharNumber,
	"PancardNumber":     ColPancardNumber,
	"dob":               ColDOB,
}

// AadharDroppedColumns are vendor columns never used downstream.
var AadharDroppedColumns = []string{"aadhaar_number"}

// PancardDroppedColumns are vendor columns never used downstream.
var PancardDroppedColumns = []string{
	"full_name_split",
	"masked_aadhaar",
	"pan_number",
	"pan_number.1",
	"phone_number",
}

// FinalAssetColumns is the ordered asset subset carried into the final table.
var FinalAssetColumns = []string{
	ColLoanNumber,
	ColRCNumber,
	ColAssetRegDate,
	ColOwnerName,
	ColAssetMobile,
	"vehicle_category",
	ColVehicleChassisNumber,
	"maker_description",
	"maker_model",
	"color",
	"fuel_type",
	"manufacturing_date_formatted",
	"insurance_company",
	"insurance_upto",
	"permit_number",
	"blacklist_status",
	"rc_status",
	"rto_code",
}
