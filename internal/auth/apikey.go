package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockline/stockline/internal/models"
)

// SessionLookup finds the user owning an API key.
type SessionLookup interface {
	GetSessionByAPIKey(ctx context.Context, apiKey string) (*models.Session, error)
}

// APIKeyResolver resolves opaque API keys through the identity store.
type APIKeyResolver struct {
	lookup SessionLookup
}

// NewAPIKeyResolver creates an APIKeyResolver.
func NewAPIKeyResolver(lookup SessionLookup) *APIKeyResolver {
	return &APIKeyResolver{lookup: lookup}
}

// Resolve implements Resolver.
func (r *APIKeyResolver) Resolve(ctx context.Context, credential string) (*models.Session, error) {
	if credential == "" {
		return nil, fmt.Errorf("%w: missing credential", models.ErrAuthentication)
	}

	sess, err := r.lookup.GetSessionByAPIKey(ctx, credential)
	if err != nil {
		if errors.Is(err, models.ErrAuthentication) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", models.ErrIdentityUnavailable, err)
	}

	if err := checkSession(sess); err != nil {
		return nil, err
	}

	return sess, nil
}
