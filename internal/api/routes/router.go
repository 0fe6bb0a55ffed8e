package routes

import (
	"net/http"

	"github.com/rentora/rentora-backend/internal/api/handlers"
	"github.com/rentora/rentora-backend/internal/api/middleware"
	"github.com/rentora/rentora-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler     *handlers.AuthHandler
	propertyHandler *handlers.PropertyHandler
	bookingHandler  *handlers.BookingHandler
	reviewHandler   *handlers.ReviewHandler
	planHandler     *handlers.PlanHandler
	sseHandler      *handlers.SSEHandler

	authenticator *middleware.Authenticator
	metrics       *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	propertyHandler *handlers.PropertyHandler,
	bookingHandler *handlers.BookingHandler,
	reviewHandler *handlers.ReviewHandler,
	planHandler *handlers.PlanHandler,
	sseHandler *handlers.SSEHandler,
	authenticator *middleware.Authenticator,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		authHandler:     authHandler,
		propertyHandler: propertyHandler,
		bookingHandler:  bookingHandler,
		reviewHandler:   reviewHandler,
		planHandler:     planHandler,
		sseHandler:      sseHandler,
		authenticator:   authenticator,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	auth := r.authenticator.RequireAuth

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/oauth/google", r.authHandler.OAuthLogin)
	r.mux.HandleFunc("GET /api/auth/me", auth(r.authHandler.Me))
	r.mux.HandleFunc("POST /api/auth/logout", auth(r.authHandler.Logout))
	r.mux.HandleFunc("PATCH /api/users/{id}", auth(r.authHandler.UpdateUser))

	// Property catalog endpoints
	r.mux.HandleFunc("GET /api/properties", r.propertyHandler.ListProperties)
	r.mux.HandleFunc("GET /api/properties/{id}", r.propertyHandler.GetProperty)
	r.mux.HandleFunc("POST /api/properties", auth(r.propertyHandler.CreateProperty))
	r.mux.HandleFunc("PUT /api/properties/{id}", auth(r.propertyHandler.UpdateProperty))
	r.mux.HandleFunc("DELETE /api/properties/{id}", auth(r.propertyHandler.DeleteProperty))
	r.mux.HandleFunc("GET /api/owners/{email}/properties", r.propertyHandler.GetOwnerProperties)

	// Booking endpoints
	r.mux.HandleFunc("POST /api/bookings", auth(r.bookingHandler.CreateBooking))
	r.mux.HandleFunc("PATCH /api/bookings/{id}/status", auth(r.bookingHandler.UpdateBookingStatus))
	r.mux.HandleFunc("GET /api/bookings/user/{userId}", auth(r.bookingHandler.GetUserBookings))
	r.mux.HandleFunc("GET /api/bookings/property/{propertyId}", auth(r.bookingHandler.GetPropertyBookings))

	// Review endpoints
	r.mux.HandleFunc("POST /api/reviews", r.reviewHandler.CreateReview)
	r.mux.HandleFunc("GET /api/reviews", r.reviewHandler.ListReviews)

	// Plan endpoints
	r.mux.HandleFunc("GET /api/plans", r.planHandler.ListPlans)
	r.mux.HandleFunc("POST /api/plans/select", auth(r.planHandler.SelectPlan))
	r.mux.HandleFunc("GET /api/plans/net-profit", auth(r.planHandler.GetNetProfit))

	// Real-time listing streams
	r.mux.HandleFunc("GET /api/stream/properties", r.sseHandler.StreamListingUpdates)
	r.mux.HandleFunc("GET /api/stream/properties/{id}", r.sseHandler.StreamListing)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so every response carries the headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
