package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles an agency account can hold.
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// User represents an agency staff account. Agents submit bookings and
// issue receipts; admins additionally manage accounts.
type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FirstName  string     `gorm:"size:255;not null" json:"first_name"`
	LastName   string     `gorm:"size:255;not null" json:"last_name"`
	Email      string     `gorm:"size:255;unique;not null" json:"email"`
	Password   string     `gorm:"size:255" json:"-"`
	Role       string     `gorm:"size:50;default:'agent'" json:"role"`
	Provider   string     `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID *string    `gorm:"size:255" json:"-"`
	Photo      *string    `gorm:"size:255" json:"photo,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Bookings []Booking `gorm:"foreignKey:AgentID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
