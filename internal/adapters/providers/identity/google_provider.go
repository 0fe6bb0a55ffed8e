package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/rentora/rentora-backend/internal/domain/providers"
	apperrors "github.com/rentora/rentora-backend/pkg/errors"
)

// GoogleProvider verifies Google OAuth access tokens by calling the
// userinfo endpoint. Calls go through a circuit breaker so a Google
// outage does not tie up login requests.
type GoogleProvider struct {
	userInfoURL string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
}

// NewGoogleProvider creates a Google identity provider
func NewGoogleProvider(userInfoURL string) *GoogleProvider {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "google-userinfo",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &GoogleProvider{
		userInfoURL: userInfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		breaker:     breaker,
	}
}

// Verify resolves an access token to a verified Google identity.
func (p *GoogleProvider) Verify(ctx context.Context, accessToken string) (*providers.Identity, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetchUserInfo(ctx, accessToken)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, apperrors.NewExternalError("identity provider temporarily unavailable", err)
		}
		return nil, err
	}

	identity := result.(*providers.Identity)
	identity.Provider = "google"
	return identity, nil
}

func (p *GoogleProvider) fetchUserInfo(ctx context.Context, accessToken string) (*providers.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to reach identity provider", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.NewUnauthorizedError("invalid access token")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("userinfo request failed with status %d: %s", resp.StatusCode, body), nil)
	}

	var identity providers.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	if identity.Email == "" {
		return nil, apperrors.NewUnauthorizedError("identity has no verified email")
	}

	return &identity, nil
}
