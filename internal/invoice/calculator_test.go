package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yatrasutra/invoice-backend/internal/invoice"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func amount(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func assertAmount(t *testing.T, want decimal.Decimal, got decimal.Decimal, label string) {
	t.Helper()
	assert.True(t, want.Equal(got), "%s: want %s, got %s", label, want, got)
}

func goaRecord() *invoice.BookingRecord {
	return &invoice.BookingRecord{
		ClientName:    "Meera Raghavan",
		ClientEmail:   "meera.r@example.com",
		ClientPhone:   "+91 98450 12345",
		Destination:   "Goa",
		Nights:        "4",
		CheckIn:       "2026-04-10",
		CheckOut:      "2026-04-14",
		Adults:        "8",
		PackageType:   "Deluxe",
		MealPlan:      "Breakfast & Dinner",
		CostPerAdult:  "27000",
		AdvanceAmount: "80000",
	}
}

// =============================================================================
// FINANCIAL CALCULATOR
// =============================================================================

func TestComputePercentageDiscountScenario(t *testing.T) {
	rec := goaRecord()
	rec.DiscountType = "percentage"
	rec.DiscountValue = "10"

	fin := invoice.Compute(rec)

	assertAmount(t, amount(216000), fin.Subtotal, "subtotal")
	assertAmount(t, amount(21600), fin.DiscountAmount, "discount")
	assertAmount(t, amount(194400), fin.TotalPackageValue, "total")
	assertAmount(t, amount(114400), fin.BalancePayable, "balance")
}

func TestComputeFixedDiscount(t *testing.T) {
	rec := goaRecord()
	rec.DiscountType = "fixed"
	rec.DiscountValue = "5000"

	fin := invoice.Compute(rec)

	assertAmount(t, amount(5000), fin.DiscountAmount, "discount")
	assertAmount(t, amount(211000), fin.TotalPackageValue, "total")
	assertAmount(t, amount(131000), fin.BalancePayable, "balance")
}

func TestComputeUnknownDiscountTypeMeansNoDiscount(t *testing.T) {
	for _, typ := range []string{"", "seasonal", "PERCENTAGE"} {
		rec := goaRecord()
		rec.DiscountType = typ
		rec.DiscountValue = "10"

		fin := invoice.Compute(rec)
		assertAmount(t, decimal.Zero, fin.DiscountAmount, "discount for type "+typ)
		assertAmount(t, amount(216000), fin.TotalPackageValue, "total for type "+typ)
	}
}

func TestComputeBalanceMayGoNegative(t *testing.T) {
	rec := goaRecord()
	rec.AdvanceAmount = "250000"

	fin := invoice.Compute(rec)

	// Inconsistent inputs are rendered verbatim, never rejected.
	assertAmount(t, amount(-34000), fin.BalancePayable, "balance")
}

func TestComputeDiscountMayExceedSubtotal(t *testing.T) {
	rec := goaRecord()
	rec.DiscountType = "fixed"
	rec.DiscountValue = "300000"
	rec.AdvanceAmount = "0"

	fin := invoice.Compute(rec)
	assertAmount(t, amount(-84000), fin.TotalPackageValue, "total")
}

func TestComputeMalformedNumbersReadAsZero(t *testing.T) {
	rec := goaRecord()
	rec.CostPerAdult = "twenty seven thousand"
	rec.Adults = ""
	rec.AdvanceAmount = "n/a"

	fin := invoice.Compute(rec)

	assertAmount(t, decimal.Zero, fin.Subtotal, "subtotal")
	assertAmount(t, decimal.Zero, fin.BalancePayable, "balance")
}

func TestComputeNegativeInputsReadAsZero(t *testing.T) {
	rec := goaRecord()
	rec.CostPerAdult = "-27000"

	fin := invoice.Compute(rec)
	assertAmount(t, decimal.Zero, fin.Subtotal, "subtotal")
}

func TestComputeGroupedInputIsAccepted(t *testing.T) {
	rec := goaRecord()
	rec.CostPerAdult = "27,000"

	fin := invoice.Compute(rec)
	assertAmount(t, amount(216000), fin.Subtotal, "subtotal")
}

func TestComputeNilRecordIsTotal(t *testing.T) {
	fin := invoice.Compute(nil)
	assertAmount(t, decimal.Zero, fin.Subtotal, "subtotal")
	assertAmount(t, decimal.Zero, fin.BalancePayable, "balance")
}

func TestComputeIsPure(t *testing.T) {
	rec := goaRecord()
	rec.DiscountType = "percentage"
	rec.DiscountValue = "10"

	before := *rec
	first := invoice.Compute(rec)
	second := invoice.Compute(rec)

	assertAmount(t, first.BalancePayable, second.BalancePayable, "balance")
	assert.Equal(t, before, *rec, "record must not be mutated")
}
