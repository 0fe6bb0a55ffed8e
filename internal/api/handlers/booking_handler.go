package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rentora/rentora-backend/internal/api/middleware"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
)

// BookingService defines the booking operations used by the handler.
type BookingService interface {
	Create(ctx context.Context, caller *entities.User, booking *entities.Booking) (*entities.Booking, error)
	UpdateStatus(ctx context.Context, caller *entities.User, bookingID string, status entities.BookingStatus) (*entities.Booking, error)
	ListByUser(ctx context.Context, caller *entities.User, userID string, filter repositories.BookingFilter) ([]*entities.Booking, error)
	ListByProperty(ctx context.Context, caller *entities.User, propertyID string, filter repositories.BookingFilter) ([]*entities.Booking, error)
}

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookingRequest struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Phone      string `json:"phone"`
	IsWhatsApp bool   `json:"is_whatsapp"`
	Notes      string `json:"notes"`
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	checkIn, err := parseDate(payload.CheckIn)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid check_in date, expected YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(payload.CheckOut)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid check_out date, expected YYYY-MM-DD")
		return
	}

	booking := &entities.Booking{
		PropertyID: payload.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Phone:      payload.Phone,
		IsWhatsApp: payload.IsWhatsApp,
		Notes:      payload.Notes,
	}

	created, err := h.service.Create(r.Context(), caller, booking)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

type bookingStatusRequest struct {
	Status entities.BookingStatus `json:"status"`
}

// UpdateBookingStatus handles PATCH /api/bookings/{id}/status
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload bookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), caller, bookingID, payload.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// GetUserBookings handles GET /api/bookings/user/{userId}
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	bookings, err := h.service.ListByUser(r.Context(), caller, userID, parseBookingFilter(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GetPropertyBookings handles GET /api/bookings/property/{propertyId}
func (h *BookingHandler) GetPropertyBookings(w http.ResponseWriter, r *http.Request) {
	propertyID := r.PathValue("propertyId")
	if propertyID == "" {
		respondWithError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	bookings, err := h.service.ListByProperty(r.Context(), caller, propertyID, parseBookingFilter(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

func parseBookingFilter(r *http.Request) repositories.BookingFilter {
	query := r.URL.Query()
	filter := repositories.BookingFilter{
		Status: entities.BookingStatus(query.Get("status")),
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(query.Get("offset")); err == nil && v > 0 {
		filter.Offset = v
	}
	return filter
}

// parseDate accepts plain dates and full RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
