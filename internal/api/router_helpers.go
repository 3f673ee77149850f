package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/middleware"
	"github.com/stockline/stockline/internal/models"
)

// requireSession returns the authenticated session or writes a 401.
func requireSession(c *gin.Context) (models.Session, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication failed: no session")
		return models.Session{}, false
	}

	return sess, true
}

func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if rid, exists := c.Get(middleware.RequestIDKey); exists {
			fields["request_id"] = rid
		}
		if tid := c.GetString("tenant_id"); tid != "" {
			fields["tenant_id"] = tid
		}
		if uid := c.GetString("user_id"); uid != "" {
			fields["user_id"] = uid
		}
		log.WithFields(fields).Info("request")
	}
}

// wildcardCORS stamps the permissive headers on every response. The cors
// middleware only writes them when the request carries an Origin header.
func wildcardCORS() gin.HandlerFunc {
	allowHeaders := strings.Join(corsAllowHeaders, ", ")

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Next()
	}
}

// preflight answers every OPTIONS request with 204. The CORS middleware in
// front of it has already written the allow headers.
func preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// maxPaginationLimit caps the maximum number of items per page.
const maxPaginationLimit = 1000

// maxPaginationOffset caps the maximum offset for paginated queries.
const maxPaginationOffset = 100000

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	if v > maxPaginationLimit {
		return maxPaginationLimit
	}

	return v
}

func parseOffset(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}

	if v > maxPaginationOffset {
		return maxPaginationOffset
	}

	return v
}
