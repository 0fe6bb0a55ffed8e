package providers

import (
	"context"
)

// Identity is a verified external identity returned by an OAuth provider.
type Identity struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
	Provider string `json:"provider"`
}

// IdentityProvider verifies third-party access tokens and resolves them to a
// verified email identity. The core only ever sees the resulting Identity;
// the authorization-code exchange happens client-side.
type IdentityProvider interface {
	Verify(ctx context.Context, accessToken string) (*Identity, error)
}
