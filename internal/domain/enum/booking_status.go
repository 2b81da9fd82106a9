package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BookingStatus represents the review state of a booking submission
type BookingStatus int

const (
	BookingStatusPending   BookingStatus = 0
	BookingStatusConfirmed BookingStatus = 1
	BookingStatusCancelled BookingStatus = 2
)

func (s BookingStatus) String() string {
	return [...]string{"Pending", "Confirmed", "Cancelled"}[s]
}

func (s BookingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BookingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BookingStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = BookingStatusPending
	case "Confirmed":
		*s = BookingStatusConfirmed
	case "Cancelled":
		*s = BookingStatusCancelled
	}
	return nil
}

// ParseBookingStatus maps a lowercase wire value to its status,
// defaulting to pending for anything unrecognized
func ParseBookingStatus(s string) BookingStatus {
	switch s {
	case "confirmed":
		return BookingStatusConfirmed
	case "cancelled":
		return BookingStatusCancelled
	default:
		return BookingStatusPending
	}
}

func (s BookingStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BookingStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BookingStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BookingStatus(v)
	case int:
		*s = BookingStatus(v)
	}
	return nil
}
