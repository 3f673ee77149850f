package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockline/stockline/internal/models"
)

// Claims is the token payload issued to staff users.
type Claims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTResolver validates HS256 tokens signed with a shared secret.
type JWTResolver struct {
	secret []byte
}

// NewJWTResolver creates a JWTResolver.
func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

// Resolve implements Resolver.
func (r *JWTResolver) Resolve(_ context.Context, credential string) (*models.Session, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(credential, claims, func(_ *jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", models.ErrAuthentication)
	}

	sess := &models.Session{
		UserID:      claims.UserID,
		TenantID:    claims.TenantID,
		Role:        models.Role(claims.Role),
		DisplayName: claims.Name,
	}
	if err := checkSession(sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Sign issues a token for sess that expires after ttl.
func (r *JWTResolver) Sign(sess models.Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   sess.UserID,
		TenantID: sess.TenantID,
		Role:     string(sess.Role),
		Name:     sess.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}
