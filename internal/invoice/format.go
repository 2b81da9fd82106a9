package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateNotAvailable is rendered wherever a date field is absent or
// unparseable. The engine never rejects a record over a bad date.
const dateNotAvailable = "N/A"

// dateInputLayouts are the accepted wire formats for date fields, tried in
// order. The booking form submits plain ISO dates; API clients sometimes
// send full RFC 3339 timestamps.
var dateInputLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// FormatDate renders an ISO date as the fixed display format used across
// the document, e.g. "14 Mar 2026". Absent or unparseable input renders as
// "N/A".
func FormatDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return dateNotAvailable
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02 Jan 2006")
		}
	}
	return dateNotAvailable
}

// FormatCurrency renders an amount with Indian digit grouping, e.g.
// "Rs. 2,16,000" or "Rs. 1,499.50". Whole amounts drop the paise; negative
// amounts keep their sign in front of the grouped digits.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	s = strings.TrimSuffix(s, ".00")

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	return "Rs. " + sign + groupIndian(intPart) + fracPart
}

// groupIndian inserts commas in the Indian convention: the last three
// digits form one group, every two digits before that form another
// (12,34,567).
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// FormatDuration renders the stay length as "N Nights / N+1 Days". A
// missing or unparseable nights field defaults to a 3-night itinerary.
func FormatDuration(nights string) string {
	n := parseCount(nights)
	if strings.TrimSpace(nights) == "" || n <= 0 {
		n = 3
	}
	return fmt.Sprintf("%d Nights / %d Days", n, n+1)
}
