package repositories

import (
	"context"

	"github.com/rentora/rentora-backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review persistence. Reviews are
// append-only; there is no update or delete operation.
type ReviewRepository interface {
	// Create persists a new review
	Create(ctx context.Context, review *entities.Review) error

	// List returns reviews, newest first
	List(ctx context.Context, limit, offset int) ([]*entities.Review, error)
}
