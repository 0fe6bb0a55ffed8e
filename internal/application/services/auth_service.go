package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/providers"
	"github.com/rentora/rentora-backend/internal/domain/repositories"
	"github.com/rentora/rentora-backend/pkg/auth"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
	"github.com/rentora/rentora-backend/pkg/utils"
)

const revokedTokenKeyPrefix = "auth:revoked:"

// AuthResult is returned by every operation that establishes a session.
type AuthResult struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"`
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string            `json:"name"`
	Username string            `json:"username"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Password string            `json:"password"`
	Role     entities.UserRole `json:"role"`
	Location string            `json:"location"`
}

// AuthService handles registration, login and session lifecycle.
type AuthService struct {
	users    repositories.UserRepository
	identity providers.IdentityProvider
	tokens   *auth.TokenManager
	cache    providers.CacheProvider
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	identity providers.IdentityProvider,
	tokens *auth.TokenManager,
	cache providers.CacheProvider,
) *AuthService {
	return &AuthService{
		users:    users,
		identity: identity,
		tokens:   tokens,
		cache:    cache,
	}
}

// Register creates an account and opens a session for it. Emails are unique
// case-insensitively across all accounts.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := utils.NormalizeEmail(input.Email)
	if !utils.ValidEmail(email) {
		return nil, apperrors.NewValidationError("invalid email address")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.NewValidationError("password must be at least 6 characters")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name is required")
	}

	role := input.Role
	if role == "" {
		role = entities.RoleUser
	}
	if role != entities.RoleUser && role != entities.RoleOwner {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", input.Role))
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(input.Name),
		Username:     strings.TrimSpace(input.Username),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		Location:     strings.TrimSpace(input.Location),
		Role:         role,
		IsFirstMonth: true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.openSession(user)
}

// Login authenticates an email/password pair and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	return s.openSession(user)
}

// OAuthLogin verifies a third-party access token and opens a session for the
// matching account, creating the account on first login.
func (s *AuthService) OAuthLogin(ctx context.Context, accessToken string) (*AuthResult, error) {
	identity, err := s.identity.Verify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	email := utils.NormalizeEmail(identity.Email)
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return s.openSession(user)
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	// First login through this provider: provision the account. The random
	// password hash keeps the password login path closed until the user sets
	// one explicitly.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	user = &entities.User{
		ID:           uuid.New().String(),
		Name:         identity.Name,
		Email:        email,
		Avatar:       identity.Picture,
		Role:         entities.RoleUser,
		IsFirstMonth: true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Name == "" {
		user.Name = strings.SplitN(email, "@", 2)[0]
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.openSession(user)
}

// Logout revokes the session token. The revocation marker lives only as long
// as the token itself would have.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		// An unparseable token is already unusable; nothing to revoke.
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	// Without a revocation store the token simply runs out its lifetime
	if s.cache == nil {
		return nil
	}

	key := revokedTokenKeyPrefix + claims.ID
	if err := s.cache.Set(ctx, key, []byte("1"), int(remaining.Seconds())+1); err != nil {
		return apperrors.NewInternalError("failed to revoke session", err)
	}
	return nil
}

// IsRevoked reports whether a token id was revoked by a logout.
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	return s.cache.Exists(ctx, revokedTokenKeyPrefix+jti)
}

// GetUser loads an account by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update. Accounts may only update
// themselves.
func (s *AuthService) UpdateProfile(ctx context.Context, callerID, targetID string, update entities.UserUpdate) (*entities.User, error) {
	if callerID != targetID {
		return nil, apperrors.NewForbiddenError("cannot update another account")
	}
	if update.Empty() {
		return nil, apperrors.NewValidationError("no fields to update")
	}
	if update.ActivePlan != nil && *update.ActivePlan != "" && !entities.ValidPlanID(*update.ActivePlan) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan %q", *update.ActivePlan))
	}
	return s.users.Update(ctx, targetID, update)
}

func (s *AuthService) openSession(user *entities.User) (*AuthResult, error) {
	token, _, err := s.tokens.Sign(user.ID, string(user.Role), user.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to sign token", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
