package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	// Convert to lowercase
	s = strings.ToLower(s)

	// Replace spaces with hyphens
	s = strings.ReplaceAll(s, " ", "-")

	// Remove non-alphanumeric characters except hyphens
	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	// Remove multiple consecutive hyphens
	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	// Trim hyphens from start and end
	s = strings.Trim(s, "-")

	return s
}

// GenerateBookingReference builds a sequential booking reference
func GenerateBookingReference(number int) string {
	return fmt.Sprintf("BK-%06d", number)
}

// GenerateInvoiceNo builds the invoice number printed on a receipt,
// e.g. "YS-2026-0042"
func GenerateInvoiceNo(year, number int) string {
	return fmt.Sprintf("YS-%d-%04d", year, number)
}
