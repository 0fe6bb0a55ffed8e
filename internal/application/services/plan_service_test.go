package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora-backend/internal/application/services"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

func TestPlanService_Select(t *testing.T) {
	t.Run("first selection starts the free trial", func(t *testing.T) {
		users := new(MockUserRepository)
		service := services.NewPlanService(users)

		caller := &entities.User{ID: "owner-1", Role: entities.RoleOwner}
		users.On("Update", mock.Anything, "owner-1", mock.MatchedBy(func(u entities.UserUpdate) bool {
			return u.ActivePlan != nil && *u.ActivePlan == entities.PlanStandard &&
				u.SubscriptionStatus != nil && *u.SubscriptionStatus == entities.SubscriptionFreeTrial
		})).Return(&entities.User{
			ID:                 "owner-1",
			ActivePlan:         entities.PlanStandard,
			SubscriptionStatus: entities.SubscriptionFreeTrial,
		}, nil)

		updated, err := service.Select(context.Background(), caller, entities.PlanStandard)

		require.NoError(t, err)
		assert.Equal(t, entities.SubscriptionFreeTrial, updated.SubscriptionStatus)
		users.AssertExpectations(t)
	})

	t.Run("plan switch keeps existing billing status", func(t *testing.T) {
		users := new(MockUserRepository)
		service := services.NewPlanService(users)

		caller := &entities.User{
			ID:                 "owner-1",
			ActivePlan:         entities.PlanSimple,
			SubscriptionStatus: entities.SubscriptionActive,
		}
		users.On("Update", mock.Anything, "owner-1", mock.MatchedBy(func(u entities.UserUpdate) bool {
			return u.SubscriptionStatus == nil
		})).Return(caller, nil)

		_, err := service.Select(context.Background(), caller, entities.PlanPremium)

		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		users := new(MockUserRepository)
		service := services.NewPlanService(users)

		_, err := service.Select(context.Background(), &entities.User{ID: "owner-1"}, "platinum")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		users.AssertNotCalled(t, "Update")
	})
}

func TestPlanService_CalculateNetProfit(t *testing.T) {
	service := services.NewPlanService(new(MockUserRepository))

	tests := []struct {
		name string
		user entities.User
		want float64
	}{
		{"active keeps gross", entities.User{SubscriptionStatus: entities.SubscriptionActive}, 100000},
		{"free trial keeps gross", entities.User{SubscriptionStatus: entities.SubscriptionFreeTrial}, 100000},
		{"basic pays half a percent", entities.User{SubscriptionStatus: entities.SubscriptionBasic}, 99500},
		{"first month overrides basic", entities.User{IsFirstMonth: true, SubscriptionStatus: entities.SubscriptionBasic}, 100000},
		{"no status keeps gross", entities.User{}, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, service.CalculateNetProfit(&tt.user, 100000), 0.0001)
		})
	}
}

func TestPlanService_List(t *testing.T) {
	service := services.NewPlanService(new(MockUserRepository))

	plans := service.List()
	require.Len(t, plans, 4)
	assert.Equal(t, entities.PlanSimple, plans[0].ID)
	assert.Equal(t, entities.PlanUltimate, plans[3].ID)
	assert.Zero(t, plans[3].MaxListings, "ultimate is unlimited")
}
