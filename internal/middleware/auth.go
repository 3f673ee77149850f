package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/auth"
	"github.com/stockline/stockline/internal/models"
	"github.com/stockline/stockline/internal/security"
)

// SessionKey is the gin context key holding the caller's models.Session.
const SessionKey = "session"

// authTimingFloor is the minimum response time for rejected credentials so
// valid and invalid keys cannot be told apart by latency.
const authTimingFloor = 50 * time.Millisecond

// truncateKey returns at most the first 4 characters of key followed by "...".
func truncateKey(key string) string {
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return key
}

// enforceTimingFloor sleeps if needed so the response takes at least authTimingFloor.
func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// AuthMiddleware resolves the bearer credential into a session and stores it
// on the context. If a BruteForceGuard is provided, rejected credentials are
// tracked per credential digest. An unavailable identity store yields 503 and
// is not counted against the credential.
func AuthMiddleware(resolver auth.Resolver, log *logrus.Logger, guards ...*security.BruteForceGuard) gin.HandlerFunc {
	var guard *security.BruteForceGuard
	if len(guards) > 0 {
		guard = guards[0]
	}

	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				enforceTimingFloor(start)
			}
		}()

		credential := ExtractBearerToken(c)
		if credential == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "Authentication failed: missing or invalid authorization header")
			return
		}

		sess, err := resolver.Resolve(c.Request.Context(), credential)
		if errors.Is(err, models.ErrIdentityUnavailable) {
			logAuthFailure(log, c, credential, err)
			respondError(c, http.StatusServiceUnavailable, "identity_unavailable", "Authentication is temporarily unavailable, please retry")
			return
		}
		if err != nil {
			logAuthFailure(log, c, credential, err)

			if guard != nil {
				guard.RecordFailure(credential)
			}

			respondError(c, http.StatusUnauthorized, "unauthorized", "Authentication failed: invalid credential")
			return
		}

		if guard != nil {
			guard.Reset(credential)
		}

		c.Set(SessionKey, *sess)
		c.Set("tenant_id", sess.TenantID)
		c.Set("user_id", sess.UserID)
		c.Next()
	}
}

// SessionFrom returns the session stored by AuthMiddleware.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return models.Session{}, false
	}

	sess, ok := v.(models.Session)

	return sess, ok
}

// ExtractBearerToken extracts the credential from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// logAuthFailure logs a failed authentication attempt without the credential.
func logAuthFailure(log *logrus.Logger, c *gin.Context, credential string, err error) {
	log.WithFields(logrus.Fields{
		"client_ip":  c.ClientIP(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"request_id": c.GetString(RequestIDKey),
		"key_prefix": truncateKey(credential),
		"error_kind": models.Kind(err),
	}).WithError(err).Warn("authentication failed")
}
