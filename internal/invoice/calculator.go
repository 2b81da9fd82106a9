package invoice

import "github.com/shopspring/decimal"

// Discount types recognised on a booking form. Any other value, including
// an empty field, means no discount.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Breakdown holds the derived financial figures for one booking. It is
// recomputed on every render and never persisted.
//
// TotalPackageValue and BalancePayable may be negative when the discount or
// advance exceeds the package value. That is deliberate: the engine renders
// inconsistent inputs verbatim and leaves rejection to downstream review.
type Breakdown struct {
	Subtotal          decimal.Decimal
	DiscountAmount    decimal.Decimal
	TotalPackageValue decimal.Decimal
	BalancePayable    decimal.Decimal
}

// Compute derives the financial breakdown from the raw record. It is a
// total function: missing or malformed numeric fields behave as zero and
// no input can make it fail.
//
//	subtotal = costPerAdult x adults
//	discount = subtotal x value/100 ("percentage") | value ("fixed") | 0
//	total    = subtotal - discount
//	balance  = total - advance
func Compute(rec *BookingRecord) Breakdown {
	if rec == nil {
		return Breakdown{
			Subtotal:          decimal.Zero,
			DiscountAmount:    decimal.Zero,
			TotalPackageValue: decimal.Zero,
			BalancePayable:    decimal.Zero,
		}
	}

	costPerAdult := parseAmount(rec.CostPerAdult)
	adults := decimal.NewFromInt(parseCount(rec.Adults))
	subtotal := costPerAdult.Mul(adults)

	var discount decimal.Decimal
	switch rec.DiscountType {
	case DiscountPercentage:
		discount = subtotal.Mul(parseAmount(rec.DiscountValue)).Div(decimal.NewFromInt(100))
	case DiscountFixed:
		discount = parseAmount(rec.DiscountValue)
	default:
		discount = decimal.Zero
	}

	total := subtotal.Sub(discount)
	balance := total.Sub(parseAmount(rec.AdvanceAmount))

	return Breakdown{
		Subtotal:          subtotal,
		DiscountAmount:    discount,
		TotalPackageValue: total,
		BalancePayable:    balance,
	}
}
