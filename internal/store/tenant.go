package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stockline/stockline/internal/models"
)

// IdentityStore resolves API keys to user sessions.
type IdentityStore struct {
	Base
}

// NewIdentityStore creates a new IdentityStore.
func NewIdentityStore(base Base) *IdentityStore {
	return &IdentityStore{Base: base}
}

// HashAPIKey returns the hex SHA-256 digest stored in users.api_key_hash.
func HashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))

	return hex.EncodeToString(hash[:])
}

// GetSessionByAPIKey looks up the user owning apiKey. Unknown keys return an
// error wrapping models.ErrAuthentication.
func (s *IdentityStore) GetSessionByAPIKey(ctx context.Context, apiKey string) (*models.Session, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var sess models.Session
	var role string

	err := s.Pool.QueryRow(ctx,
		`SELECT id, tenant_id, role, display_name FROM users WHERE api_key_hash = $1`,
		HashAPIKey(apiKey),
	).Scan(&sess.UserID, &sess.TenantID, &role, &sess.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: unknown api key", models.ErrAuthentication)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user by API key: %w", err)
	}

	sess.Role = models.Role(role)

	return &sess, nil
}
