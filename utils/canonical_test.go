package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "JOHN DOE", NormalizeName("  john   Doe "))
	assert.Equal(t, "JOHN DOE", NormalizeName("JOHN DOE"))
	assert.Equal(t, "JOHN DOE", NormalizeName("john\tdoe\n"))
	assert.Equal(t, "", NormalizeName("   "))

	for _, in := range []string{"  a  b ", "Ravi Kumar", "x"} {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "idempotent for %q", in)
	}
}

func TestCanonicalIdentifier(t *testing.T) {
	assert.Equal(t, "ABCDE1234F", CanonicalIdentifier("abcde1234f"))
	assert.Equal(t, "ABCDE1234F", CanonicalIdentifier(" AbCdE1234F "))
	assert.Equal(t, "123456789012", CanonicalIdentifier("123456789012"))
	assert.Equal(t, "123456789012", CanonicalIdentifier("1.23456789012E11"))
	assert.Equal(t, "", CanonicalIdentifier(""))
}

func TestCanonicalMobile(t *testing.T) {
	assert.Equal(t, "9876543210", CanonicalMobile("9876543210"))
	assert.Equal(t, "9876543210", CanonicalMobile("+91 98765 43210"))
	assert.Equal(t, "9876543210", CanonicalMobile("9.87654321E9"))
	assert.Equal(t, "9876543210", CanonicalMobile("9876543210.0"))
	assert.Equal(t, "", CanonicalMobile("n/a"))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "John Doe", FullName("John", "", "Doe"))
	assert.Equal(t, "John K Doe", FullName(" John ", "K", "Doe "))
	assert.Equal(t, "Ravi Kumar", FullName("Ravi", "Kumar"))
	assert.Equal(t, "", FullName("", " ", ""))
}

func TestParseCompactDate(t *testing.T) {
	d, ok := ParseCompactDate("15081990")
	assert.True(t, ok)
	assert.Equal(t, time.Date(1990, time.August, 15, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseCompactDate("1081990")
	assert.True(t, ok)
	assert.Equal(t, "1990-08-01", d.Format(ISODate))

	d, ok = ParseCompactDate("15081990.0")
	assert.True(t, ok)
	assert.Equal(t, "1990-08-15", d.Format(ISODate))

	_, ok = ParseCompactDate("29022000")
	assert.True(t, ok)

	for _, bad := range []string{"99999999", "29021991", "31041990", "", "abc", "150819901", "-1081990", "00000000"} {
		_, ok := ParseCompactDate(bad)
		assert.False(t, ok, "expected %q to be unparseable", bad)
	}
}

func TestParseFlexibleDate(t *testing.T) {
	cases := map[string]string{
		"1990-08-15":          "1990-08-15",
		"1990-08-15 00:00:00": "1990-08-15",
		"15-08-1990":          "1990-08-15",
		"15/08/1990":          "1990-08-15",
		"15-Aug-1990":         "1990-08-15",
		"15081990":            "1990-08-15",
		"33100":               "1990-08-15",
	}
	for in, want := range cases {
		d, ok := ParseFlexibleDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, d.Format(ISODate), in)
	}

	for _, bad := range []string{"", "not a date", "99999999", "-5"} {
		_, ok := ParseFlexibleDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestFormatDate(t *testing.T) {
	d, ok := ParseCompactDate("15081990")
	assert.Equal(t, "1990-08-15", FormatDate(d, ok))
	assert.Equal(t, "", FormatDate(time.Time{}, false))
}
