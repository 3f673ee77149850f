// Package auth turns bearer credentials into caller sessions.
package auth

import (
	"context"
	"fmt"

	"github.com/stockline/stockline/internal/models"
)

// Resolver resolves a bearer credential into a session. A rejected credential
// wraps models.ErrAuthentication; a lookup that could not complete wraps
// models.ErrIdentityUnavailable instead.
type Resolver interface {
	Resolve(ctx context.Context, credential string) (*models.Session, error)
}

// checkSession rejects sessions that are unsafe to scope queries with.
func checkSession(s *models.Session) error {
	if s == nil || s.UserID == "" {
		return fmt.Errorf("%w: session has no user", models.ErrAuthentication)
	}

	if err := models.ValidateTenantID(s.TenantID); err != nil {
		return fmt.Errorf("%w: %w", models.ErrAuthentication, err)
	}

	if s.Role == "" {
		s.Role = models.RoleStaff
	}

	return nil
}
