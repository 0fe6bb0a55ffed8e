package identity

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rentora/rentora-backend/internal/domain/providers"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

// MockProvider accepts self-describing tokens for local development. A token
// is either a bare email address or a JSON document matching the Identity
// shape. Never use this outside development.
type MockProvider struct{}

// NewMockProvider creates a mock identity provider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Verify decodes the development token into an identity.
func (p *MockProvider) Verify(_ context.Context, accessToken string) (*providers.Identity, error) {
	token := strings.TrimSpace(accessToken)
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("empty access token")
	}

	identity := providers.Identity{Provider: "mock"}
	if strings.HasPrefix(token, "{") {
		if err := json.Unmarshal([]byte(token), &identity); err != nil {
			return nil, apperrors.NewUnauthorizedError("malformed identity token")
		}
		identity.Provider = "mock"
	} else {
		identity.Email = token
		identity.Subject = token
		identity.Name = strings.SplitN(token, "@", 2)[0]
	}

	if !strings.Contains(identity.Email, "@") {
		return nil, apperrors.NewUnauthorizedError("identity has no verified email")
	}

	return &identity, nil
}
