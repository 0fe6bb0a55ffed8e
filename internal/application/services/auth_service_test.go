package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentora/rentora-backend/internal/application/services"
	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/internal/domain/providers"
	"github.com/rentora/rentora-backend/pkg/auth"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

func newAuthService(users *MockUserRepository, identity *MockIdentityProvider, cache *MockCacheProvider) *services.AuthService {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	// Pass nil mocks through as nil interfaces so the service sees the same
	// shape main wires when Redis or the provider is absent
	var identityProvider providers.IdentityProvider
	if identity != nil {
		identityProvider = identity
	}
	var cacheProvider providers.CacheProvider
	if cache != nil {
		cacheProvider = cache
	}
	return services.NewAuthService(users, identityProvider, tokens, cacheProvider)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates account and returns token", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newAuthService(users, nil, nil)

		users.On("EmailExists", mock.Anything, "a@x.com").Return(false, nil)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Email == "a@x.com" &&
				u.Role == entities.RoleUser &&
				u.IsFirstMonth &&
				u.PasswordHash != "" &&
				u.PasswordHash != "secret123"
		})).Return(nil)

		result, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "Asha",
			Email:    "A@X.com",
			Password: "secret123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "a@x.com", result.User.Email)
		users.AssertExpectations(t)
	})

	t.Run("rejects duplicate email case-insensitively", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newAuthService(users, nil, nil)

		users.On("EmailExists", mock.Anything, "a@x.com").Return(true, nil)

		_, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "Asha",
			Email:    "A@X.com",
			Password: "secret123",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		users.AssertNotCalled(t, "Create")
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		service := newAuthService(new(MockUserRepository), nil, nil)

		_, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "Asha",
			Email:    "not-an-email",
			Password: "secret123",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects short password", func(t *testing.T) {
		service := newAuthService(new(MockUserRepository), nil, nil)

		_, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "Asha",
			Email:    "a@x.com",
			Password: "short",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		service := newAuthService(new(MockUserRepository), nil, nil)

		_, err := service.Register(context.Background(), services.RegisterInput{
			Name:     "Asha",
			Email:    "a@x.com",
			Password: "secret123",
			Role:     "admin",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &entities.User{
		ID:           "user-1",
		Email:        "a@x.com",
		Role:         entities.RoleUser,
		PasswordHash: string(hash),
	}

	t.Run("succeeds with matching password", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newAuthService(users, nil, nil)

		users.On("GetByEmail", mock.Anything, "a@x.com").Return(stored, nil)

		result, err := service.Login(context.Background(), "A@X.com", "secret123")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "user-1", result.User.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newAuthService(users, nil, nil)

		users.On("GetByEmail", mock.Anything, "a@x.com").Return(stored, nil)

		_, err := service.Login(context.Background(), "a@x.com", "wrong")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("unknown email surfaces account not found", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newAuthService(users, nil, nil)

		users.On("GetByEmail", mock.Anything, "b@x.com").
			Return(nil, apperrors.NewNotFoundError("account not found"))

		_, err := service.Login(context.Background(), "b@x.com", "secret123")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		assert.Contains(t, err.Error(), "account not found")
	})
}

func TestAuthService_OAuthLogin(t *testing.T) {
	t.Run("signs in existing account", func(t *testing.T) {
		users := new(MockUserRepository)
		identity := new(MockIdentityProvider)
		service := newAuthService(users, identity, nil)

		identity.On("Verify", mock.Anything, "provider-token").Return(&providers.Identity{
			Subject: "sub-1",
			Email:   "A@X.com",
			Name:    "Asha",
		}, nil)
		users.On("GetByEmail", mock.Anything, "a@x.com").
			Return(&entities.User{ID: "user-1", Email: "a@x.com", Role: entities.RoleUser}, nil)

		result, err := service.OAuthLogin(context.Background(), "provider-token")

		require.NoError(t, err)
		assert.Equal(t, "user-1", result.User.ID)
		users.AssertNotCalled(t, "Create")
	})

	t.Run("auto-registers on first login", func(t *testing.T) {
		users := new(MockUserRepository)
		identity := new(MockIdentityProvider)
		service := newAuthService(users, identity, nil)

		identity.On("Verify", mock.Anything, "provider-token").Return(&providers.Identity{
			Subject: "sub-1",
			Email:   "new@x.com",
			Name:    "New User",
		}, nil)
		users.On("GetByEmail", mock.Anything, "new@x.com").
			Return(nil, apperrors.NewNotFoundError("account not found"))
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Email == "new@x.com" && u.Name == "New User" && u.Role == entities.RoleUser
		})).Return(nil)

		result, err := service.OAuthLogin(context.Background(), "provider-token")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		users.AssertExpectations(t)
	})

	t.Run("propagates verification failure", func(t *testing.T) {
		identity := new(MockIdentityProvider)
		service := newAuthService(new(MockUserRepository), identity, nil)

		identity.On("Verify", mock.Anything, "bad-token").
			Return(nil, apperrors.NewUnauthorizedError("invalid access token"))

		_, err := service.OAuthLogin(context.Background(), "bad-token")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes token for its remaining lifetime", func(t *testing.T) {
		cache := new(MockCacheProvider)
		users := new(MockUserRepository)
		tokens := auth.NewTokenManager("test-secret", time.Hour)
		service := services.NewAuthService(users, nil, tokens, cache)

		token, jti, err := tokens.Sign("user-1", "user", "a@x.com")
		require.NoError(t, err)

		cache.On("Set", mock.Anything, "auth:revoked:"+jti, mock.Anything, mock.MatchedBy(func(ttl int) bool {
			return ttl > 0 && ttl <= int(time.Hour.Seconds())+1
		})).Return(nil)

		require.NoError(t, service.Logout(context.Background(), token))

		cache.On("Exists", mock.Anything, "auth:revoked:"+jti).Return(true, nil)
		revoked, err := service.IsRevoked(context.Background(), jti)
		require.NoError(t, err)
		assert.True(t, revoked)
		cache.AssertExpectations(t)
	})

	t.Run("garbage token is a no-op", func(t *testing.T) {
		cache := new(MockCacheProvider)
		service := newAuthService(new(MockUserRepository), nil, cache)

		assert.NoError(t, service.Logout(context.Background(), "not-a-token"))
		cache.AssertNotCalled(t, "Set")
	})

	t.Run("works without a revocation store", func(t *testing.T) {
		tokens := auth.NewTokenManager("test-secret", time.Hour)
		service := services.NewAuthService(new(MockUserRepository), nil, tokens, nil)

		token, jti, err := tokens.Sign("user-1", "user", "a@x.com")
		require.NoError(t, err)

		// Redis-less deployments: logout succeeds, nothing is ever revoked
		require.NoError(t, service.Logout(context.Background(), token))

		revoked, err := service.IsRevoked(context.Background(), jti)
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("updates own profile", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newAuthService(users, nil, nil)

		name := "Renamed"
		users.On("Update", mock.Anything, "user-1", mock.Anything).
			Return(&entities.User{ID: "user-1", Name: name}, nil)

		updated, err := service.UpdateProfile(context.Background(), "user-1", "user-1", entities.UserUpdate{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
	})

	t.Run("rejects updating another account", func(t *testing.T) {
		users := new(MockUserRepository)
		service := newAuthService(users, nil, nil)

		name := "Renamed"
		_, err := service.UpdateProfile(context.Background(), "user-1", "user-2", entities.UserUpdate{Name: &name})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
		users.AssertNotCalled(t, "Update")
	})

	t.Run("rejects empty update", func(t *testing.T) {
		service := newAuthService(new(MockUserRepository), nil, nil)

		_, err := service.UpdateProfile(context.Background(), "user-1", "user-1", entities.UserUpdate{})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
