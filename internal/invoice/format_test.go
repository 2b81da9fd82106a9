package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yatrasutra/invoice-backend/internal/invoice"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-04-10", "10 Apr 2026"},
		{"2026-12-01", "01 Dec 2026"},
		{"2026-04-10T15:30:00Z", "10 Apr 2026"},
		{"2026-04-10 15:30:00", "10 Apr 2026"},
		{"", "N/A"},
		{"   ", "N/A"},
		{"next friday", "N/A"},
		{"2026-13-40", "N/A"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, invoice.FormatDate(tc.in), "input %q", tc.in)
	}
}

func TestFormatCurrencyIndianGrouping(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rs. 0"},
		{100, "Rs. 100"},
		{1000, "Rs. 1,000"},
		{100000, "Rs. 1,00,000"},
		{216000, "Rs. 2,16,000"},
		{12345678, "Rs. 1,23,45,678"},
		{-216000, "Rs. -2,16,000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, invoice.FormatCurrency(decimal.NewFromInt(tc.in)), "input %d", tc.in)
	}
}

func TestFormatCurrencyKeepsNonZeroPaise(t *testing.T) {
	assert.Equal(t, "Rs. 1,499.50", invoice.FormatCurrency(decimal.RequireFromString("1499.5")))
	assert.Equal(t, "Rs. 2,16,000", invoice.FormatCurrency(decimal.RequireFromString("216000.00")))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "4 Nights / 5 Days", invoice.FormatDuration("4"))
	assert.Equal(t, "1 Nights / 2 Days", invoice.FormatDuration("1"))

	// Absent or unparseable stay lengths fall back to the 3-night itinerary.
	assert.Equal(t, "3 Nights / 4 Days", invoice.FormatDuration(""))
	assert.Equal(t, "3 Nights / 4 Days", invoice.FormatDuration("about a week"))
}
