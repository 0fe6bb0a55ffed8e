package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rentora/rentora-backend/internal/api/middleware"
	"github.com/rentora/rentora-backend/internal/application/services"
	"github.com/rentora/rentora-backend/internal/domain/entities"
)

// AuthService defines the account operations used by the handler.
type AuthService interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	OAuthLogin(ctx context.Context, accessToken string) (*services.AuthResult, error)
	Logout(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, callerID, targetID string, update entities.UserUpdate) (*entities.User, error)
}

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.Register(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type oauthRequest struct {
	AccessToken string `json:"access_token"`
}

// OAuthLogin handles POST /api/auth/oauth/google
func (h *AuthHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	var payload oauthRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.AccessToken == "" {
		respondWithError(w, http.StatusBadRequest, "access_token is required")
		return
	}

	result, err := h.service.OAuthLogin(r.Context(), payload.AccessToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		respondWithError(w, http.StatusBadRequest, "missing bearer token")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// UpdateUser handles PATCH /api/users/{id}
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")
	if targetID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var update entities.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), caller.ID, targetID, update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
