package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockline/stockline/internal/security"
)

// BruteForceMiddleware rejects requests whose bearer credential is locked out.
func BruteForceMiddleware(guard *security.BruteForceGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ExtractBearerToken(c)
		if credential != "" && guard.IsBlocked(credential) {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many failed authentication attempts")
			return
		}

		c.Next()
	}
}
