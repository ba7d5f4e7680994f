package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatIndian(t *testing.T) {
	tests := map[string]string{
		"0":          "0",
		"999":        "999",
		"1000":       "1,000",
		"125000":     "1,25,000",
		"12345678":   "1,23,45,678",
		"1500.5":     "1,500.50",
		"99.999":     "100",
		"-2500":      "-2,500",
		"1000000.05": "10,00,000.05",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatIndian(decimal.RequireFromString(in)), in)
	}
}

func TestPhoneHelpers(t *testing.T) {
	assert.True(t, ValidatePhone("+91 98765-43210"))
	assert.True(t, ValidatePhone("(080) 2345 6789"))
	assert.True(t, ValidatePhone("09876543210"))
	assert.True(t, ValidatePhone("0471-2345678"))
	assert.False(t, ValidatePhone("12345"))
	assert.False(t, ValidatePhone("abc"))
	assert.Equal(t, "919876543210", PhoneDigits("+91 98765 43210"))
	assert.Equal(t, "+919876543210", E164("91-98765-43210"))
	assert.Equal(t, "", E164("n/a"))
}

func TestCivilDay(t *testing.T) {
	ist := time.FixedZone("IST", 19800)
	late := time.Date(2026, 10, 16, 23, 30, 0, 0, ist)

	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), CivilDay(late))
	assert.Equal(t, 3, DaysBetween(CivilDay(late), CivilDay(late).AddDate(0, 0, 3)))
	assert.Equal(t, "16 Oct 2026", FormatDisplayDate(late))

	d, err := ParseDate(" 2026-10-20 ")
	assert.NoError(t, err)
	assert.Equal(t, 4, DaysBetween(CivilDay(late), d))
}
