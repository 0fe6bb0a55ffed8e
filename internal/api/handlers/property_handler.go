package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rentora/rentora-backend/internal/api/middleware"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
)

// PropertyService defines the catalog operations used by the handler.
type PropertyService interface {
	List(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, error)
	GetByID(ctx context.Context, id string) (*entities.Property, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]*entities.Property, error)
	Save(ctx context.Context, caller *entities.User, property *entities.Property) (*entities.Property, error)
	Delete(ctx context.Context, caller *entities.User, id string) error
}

// PropertyHandler handles property catalog HTTP requests
type PropertyHandler struct {
	service PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(service PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// ListProperties handles GET /api/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePropertyFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	properties, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
		"count":      len(properties),
	})
}

// GetProperty handles GET /api/properties/{id}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	property, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, property)
}

// CreateProperty handles POST /api/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	h.saveProperty(w, r, "")
}

// UpdateProperty handles PUT /api/properties/{id}
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "property ID is required")
		return
	}
	h.saveProperty(w, r, id)
}

func (h *PropertyHandler) saveProperty(w http.ResponseWriter, r *http.Request, id string) {
	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var property entities.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if id != "" {
		property.ID = id
	}

	created := property.ID == ""
	saved, err := h.service.Save(r.Context(), caller, &property)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondWithJSON(w, status, saved)
}

// DeleteProperty handles DELETE /api/properties/{id}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "property ID is required")
		return
	}

	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetOwnerProperties handles GET /api/owners/{email}/properties
func (h *PropertyHandler) GetOwnerProperties(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		respondWithError(w, http.StatusBadRequest, "owner email is required")
		return
	}

	properties, err := h.service.ListByOwner(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
		"count":      len(properties),
	})
}

func parsePropertyFilter(r *http.Request) (repositories.PropertyFilter, error) {
	query := r.URL.Query()
	filter := repositories.PropertyFilter{
		City:  query.Get("city"),
		Query: query.Get("q"),
	}

	if raw := query.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errInvalidParam("minPrice")
		}
		filter.MinPrice = &v
	}
	if raw := query.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errInvalidParam("maxPrice")
		}
		filter.MaxPrice = &v
	}
	if raw := query.Get("bedrooms"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errInvalidParam("bedrooms")
		}
		filter.Bedrooms = &v
	}
	if raw := query.Get("amenities"); raw != "" {
		for _, amenity := range strings.Split(raw, ",") {
			if amenity = strings.TrimSpace(amenity); amenity != "" {
				filter.Amenities = append(filter.Amenities, amenity)
			}
		}
	}
	if raw := query.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return filter, errInvalidParam("limit")
		}
		filter.Limit = v
	}
	if raw := query.Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return filter, errInvalidParam("offset")
		}
		filter.Offset = v
	}

	return filter, nil
}

type invalidParamError string

func errInvalidParam(name string) error { return invalidParamError(name) }

func (e invalidParamError) Error() string { return "invalid " + string(e) + " parameter" }
