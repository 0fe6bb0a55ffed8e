package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rentora/rentora-backend/internal/api/middleware"
	"github.com/rentora/rentora-backend/internal/domain/entities"
)

// PlanService defines the subscription operations used by the handler.
type PlanService interface {
	List() []entities.Plan
	Select(ctx context.Context, caller *entities.User, planID entities.PlanID) (*entities.User, error)
	CalculateNetProfit(user *entities.User, gross float64) float64
}

// PlanHandler handles subscription plan HTTP requests
type PlanHandler struct {
	service PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(service PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// ListPlans handles GET /api/plans
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"plans": h.service.List(),
	})
}

type selectPlanRequest struct {
	PlanID entities.PlanID `json:"plan_id"`
}

// SelectPlan handles POST /api/plans/select
func (h *PlanHandler) SelectPlan(w http.ResponseWriter, r *http.Request) {
	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload selectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.service.Select(r.Context(), caller, payload.PlanID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// GetNetProfit handles GET /api/plans/net-profit?gross=N
func (h *PlanHandler) GetNetProfit(w http.ResponseWriter, r *http.Request) {
	caller := middleware.UserFromContext(r.Context())
	if caller == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	gross, err := strconv.ParseFloat(r.URL.Query().Get("gross"), 64)
	if err != nil || gross < 0 {
		respondWithError(w, http.StatusBadRequest, "invalid gross parameter")
		return
	}

	net := h.service.CalculateNetProfit(caller, gross)
	respondWithJSON(w, http.StatusOK, map[string]float64{
		"gross": gross,
		"net":   net,
	})
}
