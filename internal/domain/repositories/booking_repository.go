package repositories

import (
	"context"

	"github.com/rentora/rentora-backend/internal/domain/entities"
)

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status entities.BookingStatus
	Limit  int
	Offset int
}

// BookingRepository defines the interface for booking persistence. Bookings
// are append-only; status is the only mutable field.
type BookingRepository interface {
	// Create persists a new booking request
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// UpdateStatus mutates the status field in place
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error

	// ListByUser retrieves bookings created by a user, newest first
	ListByUser(ctx context.Context, userID string, filter BookingFilter) ([]*entities.Booking, error)

	// ListByProperty retrieves bookings referencing a property, newest first
	ListByProperty(ctx context.Context, propertyID string, filter BookingFilter) ([]*entities.Booking, error)
}
