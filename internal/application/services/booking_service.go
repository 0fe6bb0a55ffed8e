package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	"github.com/rentora/rentora-backend/internal/infrastructure/observability"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
	"github.com/rentora/rentora-backend/pkg/utils"
)

// BookingService handles booking requests and their status lifecycle.
type BookingService struct {
	repo       repositories.BookingRepository
	properties *PropertyService
	metrics    *observability.Metrics
}

// NewBookingService creates a new booking service
func NewBookingService(
	repo repositories.BookingRepository,
	properties *PropertyService,
	metrics *observability.Metrics,
) *BookingService {
	return &BookingService{
		repo:       repo,
		properties: properties,
		metrics:    metrics,
	}
}

// Create files a booking request for the calling user. The caller must hold
// an active subscription plan. Overlapping requests for the same property are
// allowed; status always starts pending.
func (s *BookingService) Create(ctx context.Context, caller *entities.User, booking *entities.Booking) (*entities.Booking, error) {
	if !caller.HasActivePlan() {
		return nil, apperrors.NewValidationError("no active subscription plan")
	}
	if strings.TrimSpace(booking.PropertyID) == "" {
		return nil, apperrors.NewValidationError("property id is required")
	}
	if booking.CheckIn.IsZero() || booking.CheckOut.IsZero() {
		return nil, apperrors.NewValidationError("check-in and check-out dates are required")
	}
	if !booking.CheckOut.After(booking.CheckIn) {
		return nil, apperrors.NewValidationError("check-out must be after check-in")
	}
	if strings.TrimSpace(booking.Phone) == "" {
		return nil, apperrors.NewValidationError("contact phone is required")
	}

	booking.ID = uuid.New().String()
	booking.UserID = caller.ID
	booking.Status = entities.BookingStatusPending
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	// Price the stay when the property resolves. A dangling property id is
	// tolerated; the booking simply carries no total.
	if property, err := s.properties.GetByID(ctx, booking.PropertyID); err == nil {
		if nights := booking.Nights(); nights > 0 {
			total := float64(nights) * property.Price
			booking.TotalPrice = &total
		}
	} else if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.metrics != nil && s.metrics.BookingCount != nil {
		s.metrics.BookingCount.Add(ctx, 1, metric.WithAttributes(
			attribute.String("property.id", booking.PropertyID),
		))
	}

	return booking, nil
}

// UpdateStatus moves a booking out of pending. Only the owner of the
// referenced property may do this, and confirmed/cancelled are terminal.
func (s *BookingService) UpdateStatus(ctx context.Context, caller *entities.User, bookingID string, status entities.BookingStatus) (*entities.Booking, error) {
	if !entities.ValidBookingStatus(status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown booking status %q", status))
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewForbiddenError("booking references a property you do not own")
		}
		return nil, err
	}
	if property.Owner.Email != utils.NormalizeEmail(caller.Email) {
		return nil, apperrors.NewForbiddenError("booking references a property you do not own")
	}

	if !booking.Status.CanTransitionTo(status) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("cannot change booking status from %s to %s", booking.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	booking.Status = status
	booking.UpdatedAt = time.Now().UTC()
	return booking, nil
}

// ListByUser returns bookings created by a user, newest first. Users may only
// list their own bookings.
func (s *BookingService) ListByUser(ctx context.Context, caller *entities.User, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	if caller.ID != userID {
		return nil, apperrors.NewForbiddenError("cannot list another user's bookings")
	}
	return s.repo.ListByUser(ctx, userID, filter)
}

// ListByProperty returns bookings referencing a property, newest first. Only
// the property owner sees them.
func (s *BookingService) ListByProperty(ctx context.Context, caller *entities.User, propertyID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.Owner.Email != utils.NormalizeEmail(caller.Email) {
		return nil, apperrors.NewForbiddenError("cannot list bookings for a property you do not own")
	}
	return s.repo.ListByProperty(ctx, propertyID, filter)
}
