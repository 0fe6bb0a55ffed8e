package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	"github.com/rentora/rentora-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

var bookingColumns = []interface{}{
	"id", "property_id", "user_id", "check_in", "check_out",
	"phone", "is_whatsapp", "notes", "status", "total_price",
	"created_at", "updated_at",
}

// BookingAdapter implements the BookingRepository interface in Postgres.
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new booking request
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	var totalPrice sql.NullFloat64
	if booking.TotalPrice != nil {
		totalPrice = sql.NullFloat64{Float64: *booking.TotalPrice, Valid: true}
	}

	record := goqu.Record{
		"id":          booking.ID,
		"property_id": booking.PropertyID,
		"user_id":     booking.UserID,
		"check_in":    booking.CheckIn,
		"check_out":   booking.CheckOut,
		"phone":       booking.Phone,
		"is_whatsapp": booking.IsWhatsApp,
		"notes":       booking.Notes,
		"status":      booking.Status,
		"total_price": totalPrice,
		"created_at":  booking.CreatedAt,
		"updated_at":  booking.UpdatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// UpdateStatus mutates the status field in place
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build booking status query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}

	return nil
}

// ListByUser retrieves bookings created by a user, newest first
func (a *BookingAdapter) ListByUser(ctx context.Context, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, goqu.Ex{"user_id": userID}, filter)
}

// ListByProperty retrieves bookings referencing a property, newest first
func (a *BookingAdapter) ListByProperty(ctx context.Context, propertyID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	return a.list(ctx, goqu.Ex{"property_id": propertyID}, filter)
}

func (a *BookingAdapter) list(ctx context.Context, where goqu.Ex, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).From("bookings").Where(where)

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	var notes sql.NullString
	var totalPrice sql.NullFloat64

	err := row.Scan(
		&booking.ID,
		&booking.PropertyID,
		&booking.UserID,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Phone,
		&booking.IsWhatsApp,
		&notes,
		&booking.Status,
		&totalPrice,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Notes = notes.String
	if totalPrice.Valid {
		booking.TotalPrice = &totalPrice.Float64
	}

	return booking, nil
}
