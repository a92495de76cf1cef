package utils

import "regexp"

var (
	panRegex     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarRegex = regexp.MustCompile(`^[0-9]{12}$`)
	mobileRegex  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// IsPAN reports whether a canonical identifier looks like a PAN (ABCDE1234F).
func IsPAN(id string) bool {
	return panRegex.MatchString(id)
}

// IsAadhaar reports whether a canonical identifier is a 12-digit Aadhaar number.
func IsAadhaar(id string) bool {
	return aadhaarRegex.MatchString(id)
}

// IsMobile reports whether a canonical mobile is a 10-digit Indian mobile number.
func IsMobile(mobile string) bool {
	return mobileRegex.MatchString(mobile)
}
