package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPAN(t *testing.T) {
	assert.True(t, IsPAN("ABCDE1234F"))
	assert.False(t, IsPAN("abcde1234f"))
	assert.False(t, IsPAN("ABCDE12345"))
	assert.False(t, IsPAN("XABCDE1234F"))
	assert.False(t, IsPAN(""))
}

func TestIsAadhaar(t *testing.T) {
	assert.True(t, IsAadhaar("111122223333"))
	assert.True(t, IsAadhaar(CanonicalIdentifier("1.11122223333E11")))
	assert.False(t, IsAadhaar("1111 2222 3333"))
	assert.False(t, IsAadhaar("XXXX3333"))
}

func TestIsMobile(t *testing.T) {
	assert.True(t, IsMobile(CanonicalMobile("+91 98450 12345")))
	assert.False(t, IsMobile("1234567890"))
	assert.False(t, IsMobile("98450"))
}
