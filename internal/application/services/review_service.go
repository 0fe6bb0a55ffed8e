package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

// ReviewService handles review submissions. Reviews are append-only; nothing
// updates or deletes them.
type ReviewService struct {
	repo repositories.ReviewRepository
}

// NewReviewService creates a new review service
func NewReviewService(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// Create stores a review.
func (s *ReviewService) Create(ctx context.Context, review *entities.Review) (*entities.Review, error) {
	if strings.TrimSpace(review.UserName) == "" {
		return nil, apperrors.NewValidationError("reviewer name is required")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if strings.TrimSpace(review.Text) == "" {
		return nil, apperrors.NewValidationError("review text is required")
	}

	review.ID = uuid.New().String()
	review.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// List returns reviews, newest first.
func (s *ReviewService) List(ctx context.Context, limit, offset int) ([]*entities.Review, error) {
	return s.repo.List(ctx, limit, offset)
}
