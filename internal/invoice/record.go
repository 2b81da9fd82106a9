// Package invoice renders a booking submission into a paginated PDF
// confirmation receipt. The package is a pure rendering engine: it owns the
// financial arithmetic, the fixed-layout page composition and the display
// formatting, and leaves persistence, authentication and delivery to the
// application layer.
package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BookingRecord is the render-time input describing one travel booking.
// It is a value object composed from a persisted submission, NOT a database
// entity. Every field is an externally supplied form string and is treated
// as untrusted: numeric fields that fail to parse read as zero, so a
// partially filled form still produces a document for human
// review instead of failing the render.
type BookingRecord struct {
	ClientName  string
	ClientEmail string
	ClientPhone string

	Destination string
	Nights      string
	CheckIn     string
	CheckOut    string
	Adults      string
	PackageType string
	MealPlan    string

	CostPerAdult  string
	AdvanceAmount string

	DiscountType   string
	DiscountValue  string
	DiscountReason string

	// TermsOverride replaces the default clauses verbatim when non-empty.
	TermsOverride string
	// AdditionalServices is a free-text note appended to the tour details.
	AdditionalServices string
}

// parseAmount reads a monetary or percentage form field. Group separators
// and surrounding whitespace are tolerated; anything unparseable or
// negative reads as zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// parseCount reads a whole-number form field (adults, nights) with the same
// leniency as parseAmount, truncating any fractional part.
func parseCount(s string) int64 {
	return parseAmount(s).IntPart()
}
