package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rentora/rentora-backend/internal/domain/entities"
	"github.com/rentora/rentora-backend/pkg/auth"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// SessionResolver checks token revocation and loads the account behind a
// token. The auth service implements it.
type SessionResolver interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
}

// Authenticator validates bearer tokens and loads the calling user into the
// request context.
type Authenticator struct {
	tokens   *auth.TokenManager
	sessions SessionResolver
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(tokens *auth.TokenManager, sessions SessionResolver) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions}
}

// RequireAuth rejects requests without a valid, unrevoked bearer token.
func (a *Authenticator) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := BearerToken(r)
		if tokenStr == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		claims, err := a.tokens.Parse(tokenStr)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		revoked, err := a.sessions.IsRevoked(r.Context(), claims.ID)
		if err == nil && revoked {
			unauthorized(w, "session has been logged out")
			return
		}

		user, err := a.sessions.GetUser(r.Context(), claims.Subject)
		if err != nil {
			unauthorized(w, "account no longer exists")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *entities.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, or nil on unauthenticated
// requests.
func UserFromContext(ctx context.Context) *entities.User {
	user, _ := ctx.Value(userContextKey).(*entities.User)
	return user
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
