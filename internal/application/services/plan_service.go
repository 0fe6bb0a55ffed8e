package services

import (
	"context"
	"fmt"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

// basicCommissionRate is withheld from gross earnings on the Basic tier.
const basicCommissionRate = 0.005

// PlanService handles subscription plan selection and the commission rule.
type PlanService struct {
	users repositories.UserRepository
}

// NewPlanService creates a new plan service
func NewPlanService(users repositories.UserRepository) *PlanService {
	return &PlanService{users: users}
}

// List returns the fixed plan catalog.
func (s *PlanService) List() []entities.Plan {
	return entities.Plans()
}

// Select sets the caller's active plan. The first selection starts the free
// trial; later switches keep whatever billing status the account already has.
func (s *PlanService) Select(ctx context.Context, caller *entities.User, planID entities.PlanID) (*entities.User, error) {
	if !entities.ValidPlanID(planID) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan %q", planID))
	}

	update := entities.UserUpdate{ActivePlan: &planID}
	if caller.SubscriptionStatus == "" {
		trial := entities.SubscriptionFreeTrial
		update.SubscriptionStatus = &trial
	}

	return s.users.Update(ctx, caller.ID, update)
}

// CalculateNetProfit applies the commission rule to a gross amount. The first
// month is always commission-free, as are the FreeTrial and Active tiers; the
// Basic tier pays a 0.5% commission.
func (s *PlanService) CalculateNetProfit(user *entities.User, gross float64) float64 {
	if user.IsFirstMonth {
		return gross
	}
	switch user.SubscriptionStatus {
	case entities.SubscriptionFreeTrial, entities.SubscriptionActive:
		return gross
	case entities.SubscriptionBasic:
		return gross * (1 - basicCommissionRate)
	default:
		return gross
	}
}
