package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora-backend/internal/api/handlers"
	"github.com/rentora/rentora-backend/internal/api/middleware"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

type stubPlanService struct {
	selectResult *entities.User
	selectErr    error
	netProfit    float64
}

func (s *stubPlanService) List() []entities.Plan {
	return entities.Plans()
}

func (s *stubPlanService) Select(ctx context.Context, caller *entities.User, planID entities.PlanID) (*entities.User, error) {
	return s.selectResult, s.selectErr
}

func (s *stubPlanService) CalculateNetProfit(user *entities.User, gross float64) float64 {
	return s.netProfit
}

func TestPlanHandler_ListPlans(t *testing.T) {
	handler := handlers.NewPlanHandler(&stubPlanService{})

	req := httptest.NewRequest("GET", "/api/plans", nil)
	w := httptest.NewRecorder()

	handler.ListPlans(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Plans []entities.Plan `json:"plans"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Len(t, response.Plans, 4)
}

func TestPlanHandler_SelectPlan(t *testing.T) {
	t.Run("selects plan", func(t *testing.T) {
		service := &stubPlanService{
			selectResult: &entities.User{
				ID:                 "owner-1",
				ActivePlan:         entities.PlanStandard,
				SubscriptionStatus: entities.SubscriptionFreeTrial,
			},
		}
		handler := handlers.NewPlanHandler(service)

		req := httptest.NewRequest("POST", "/api/plans/select", strings.NewReader(`{"plan_id":"standard"}`))
		req = req.WithContext(middleware.WithUser(req.Context(), &entities.User{ID: "owner-1"}))
		w := httptest.NewRecorder()

		handler.SelectPlan(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "FreeTrial")
	})

	t.Run("unknown plan rejected", func(t *testing.T) {
		service := &stubPlanService{selectErr: apperrors.NewValidationError(`unknown plan "platinum"`)}
		handler := handlers.NewPlanHandler(service)

		req := httptest.NewRequest("POST", "/api/plans/select", strings.NewReader(`{"plan_id":"platinum"}`))
		req = req.WithContext(middleware.WithUser(req.Context(), &entities.User{ID: "owner-1"}))
		w := httptest.NewRecorder()

		handler.SelectPlan(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPlanHandler_GetNetProfit(t *testing.T) {
	t.Run("returns gross and net", func(t *testing.T) {
		handler := handlers.NewPlanHandler(&stubPlanService{netProfit: 99500})

		req := httptest.NewRequest("GET", "/api/plans/net-profit?gross=100000", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), &entities.User{
			ID:                 "owner-1",
			SubscriptionStatus: entities.SubscriptionBasic,
		}))
		w := httptest.NewRecorder()

		handler.GetNetProfit(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]float64
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, 100000.0, response["gross"])
		assert.Equal(t, 99500.0, response["net"])
	})

	t.Run("rejects missing gross", func(t *testing.T) {
		handler := handlers.NewPlanHandler(&stubPlanService{})

		req := httptest.NewRequest("GET", "/api/plans/net-profit", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), &entities.User{ID: "owner-1"}))
		w := httptest.NewRecorder()

		handler.GetNetProfit(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
