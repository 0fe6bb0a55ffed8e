package entities

import (
	"time"
)

// BookingStatus represents the status of a booking request
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is a known status value.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in status s may move to next.
// pending may become confirmed or cancelled; both are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	return next == BookingStatusConfirmed || next == BookingStatusCancelled
}

// Booking represents a booking request against a property. There is no
// uniqueness constraint: a user may hold any number of overlapping requests
// for the same property.
type Booking struct {
	ID         string        `json:"id" db:"id"`
	PropertyID string        `json:"property_id" db:"property_id"`
	UserID     string        `json:"user_id" db:"user_id"`
	CheckIn    time.Time     `json:"check_in" db:"check_in"`
	CheckOut   time.Time     `json:"check_out" db:"check_out"`
	Phone      string        `json:"phone" db:"phone"`
	IsWhatsApp bool          `json:"is_whatsapp" db:"is_whatsapp"`
	Notes      string        `json:"notes,omitempty" db:"notes"`
	Status     BookingStatus `json:"status" db:"status"`
	TotalPrice *float64      `json:"total_price,omitempty" db:"total_price"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// Nights returns the stay length in whole nights.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
