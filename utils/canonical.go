package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// ISODate is the canonical layout dates are compared in.
const ISODate = "2006-01-02"

// largest Excel serial date (9999-12-31)
const maxExcelSerial = 2958465

// NormalizeName uppercases a name and collapses every whitespace run to a single space.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), " ")
}

// CanonicalIdentifier uppercases an identifier such as a PAN or Aadhaar number.
// Internal whitespace is left untouched.
func CanonicalIdentifier(id string) string {
	return strings.ToUpper(strings.TrimSpace(integralText(id)))
}

// CanonicalMobile reduces a phone number to its digits, keeping the last 10
// so that a leading country code does not cause a mismatch.
func CanonicalMobile(mobile string) string {
	mobile = integralText(strings.TrimSpace(mobile))

	var b strings.Builder
	for _, r := range mobile {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// FullName joins name parts with single spaces, skipping empty parts.
func FullName(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// ParseCompactDate parses a ddmmyyyy numeral. The value is left-padded with
// zeros to 8 digits first, so 1081990 is 01-08-1990.
// ok is false for empty, non-numeric or impossible calendar dates.
func ParseCompactDate(val string) (time.Time, bool) {
	val = integralText(strings.TrimSpace(val))
	if val == "" || len(val) > 8 {
		return time.Time{}, false
	}
	for _, r := range val {
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
	}

	val = strings.Repeat("0", 8-len(val)) + val
	day, _ := strconv.Atoi(val[:2])
	month, _ := strconv.Atoi(val[2:4])
	year, _ := strconv.Atoi(val[4:])
	return calendarDate(year, month, day)
}

// ParseFlexibleDate accepts the date shapes seen in verification exports:
// ISO dates (optionally with a time), dd-mm-yyyy, dd/mm/yyyy, compact
// ddmmyyyy numerals and Excel serial numbers.
func ParseFlexibleDate(val string) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, false
	}

	formats := []string{
		ISODate,
		"2006-01-02 15:04:05",
		time.RFC3339,
		"02-01-2006",
		"02/01/2006",
		"02-Jan-2006",
		"02 Jan 2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, val); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return time.Time{}, false
	}
	if digits := integralText(val); f == math.Trunc(f) && len(digits) >= 7 {
		return ParseCompactDate(digits)
	}
	if f < 1 || f > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// FormatDate renders a parsed date in ISO form, or "" (unknown) when ok is false.
func FormatDate(t time.Time, ok bool) string {
	if !ok {
		return ""
	}
	return t.Format(ISODate)
}

func calendarDate(year, month, day int) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31-02 becomes 03-03); reject those.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// integralText turns numeric cell text such as "15081990.0" or "9.87654321E9"
// into its integer form. Anything else is returned unchanged.
func integralText(s string) string {
	if s == "" {
		return s
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if f != math.Trunc(f) || math.Abs(f) >= 1e15 {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
