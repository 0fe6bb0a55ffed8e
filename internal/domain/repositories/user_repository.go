package repositories

import (
	"context"

	"github.com/rentora/rentora-backend/internal/domain/entities"
)

// UserRepository defines the interface for account persistence. Emails are
// unique case-insensitively; Create must fail with a conflict when the
// address is already registered.
type UserRepository interface {
	// Create persists a new account
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email, matched case-insensitively
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// EmailExists reports whether an account with this email exists,
	// matched case-insensitively
	EmailExists(ctx context.Context, email string) (bool, error)

	// Update applies a shallow partial update and returns the stored record
	Update(ctx context.Context, id string, update entities.UserUpdate) (*entities.User, error)

	// List returns all accounts in registration order
	List(ctx context.Context) ([]*entities.User, error)
}
