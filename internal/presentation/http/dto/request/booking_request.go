package request

// BookingRequest carries the booking form. Itinerary and money fields
// are free-form strings: the form is saved as typed, and the receipt
// renderer decides what each value is worth.
type BookingRequest struct {
	ClientName  string `json:"client_name" binding:"required,max=255"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	ClientPhone string `json:"client_phone" binding:"max=50"`

	Destination string `json:"destination" binding:"max=255"`
	Nights      string `json:"nights" binding:"max=20"`
	CheckIn     string `json:"check_in" binding:"max=40"`
	CheckOut    string `json:"check_out" binding:"max=40"`
	Adults      string `json:"adults" binding:"max=20"`
	PackageType string `json:"package_type" binding:"max=100"`
	MealPlan    string `json:"meal_plan" binding:"max=100"`

	CostPerAdult  string `json:"cost_per_adult" binding:"max=50"`
	AdvanceAmount string `json:"advance_amount" binding:"max=50"`

	DiscountType   string `json:"discount_type" binding:"max=20"`
	DiscountValue  string `json:"discount_value" binding:"max=50"`
	DiscountReason string `json:"discount_reason" binding:"max=255"`

	TermsOverride      *string `json:"terms_override"`
	AdditionalServices *string `json:"additional_services"`
	AttachmentFileID   *string `json:"attachment_file_id" binding:"omitempty,uuid"`
}

// UpdateBookingStatusRequest moves a booking through its lifecycle
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}
