package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/enum"
	"gorm.io/gorm"
)

// Booking represents one travel booking submission. The itinerary and
// money fields are stored exactly as the form supplied them, as strings
// validated only at render time, so a partially filled submission is
// still persisted and can still produce a receipt for human review.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AgentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"agent_id"`
	Reference string    `gorm:"size:100;unique;not null" json:"reference"`

	ClientName  string `gorm:"size:255" json:"client_name"`
	ClientEmail string `gorm:"size:255" json:"client_email"`
	ClientPhone string `gorm:"size:50" json:"client_phone"`

	Destination string `gorm:"size:255;index" json:"destination"`
	Nights      string `gorm:"size:20" json:"nights"`
	CheckIn     string `gorm:"size:40" json:"check_in"`
	CheckOut    string `gorm:"size:40" json:"check_out"`
	Adults      string `gorm:"size:20" json:"adults"`
	PackageType string `gorm:"size:100" json:"package_type"`
	MealPlan    string `gorm:"size:100" json:"meal_plan"`

	CostPerAdult  string `gorm:"size:50" json:"cost_per_adult"`
	AdvanceAmount string `gorm:"size:50" json:"advance_amount"`

	DiscountType   string `gorm:"size:20" json:"discount_type"`
	DiscountValue  string `gorm:"size:50" json:"discount_value"`
	DiscountReason string `gorm:"size:255" json:"discount_reason"`

	TermsOverride      *string `gorm:"type:text" json:"terms_override,omitempty"`
	AdditionalServices *string `gorm:"type:text" json:"additional_services,omitempty"`

	// Attachment is a composite "{fileId}|{url}" reference into the
	// object store (e.g. a scanned ID proof or voucher).
	Attachment *string `gorm:"size:512" json:"attachment,omitempty"`

	Status    enum.BookingStatus `gorm:"default:0" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Agent User `gorm:"foreignKey:AgentID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
