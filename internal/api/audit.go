package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/middleware"
	"github.com/stockline/stockline/internal/models"
)

// AuditHandler serves audit log endpoints.
type AuditHandler struct {
	repo AuditRepository
	log  *logrus.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(repo AuditRepository, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{repo: repo, log: log}
}

// Query handles GET /api/v1/audit. Super-admins may pass tenant_id to read
// another tenant's log.
func (h *AuditHandler) Query(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	scope, ok := auditScope(c, sess)
	if !ok {
		return
	}

	opts := models.AuditQueryOpts{
		UserID: c.Query("user_id"),
		Action: c.Query("action"),
		Limit:  parseInt(c.Query("limit"), 50),
		Offset: parseOffset(c.Query("offset")),
	}

	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid since format, use RFC3339")
			return
		}
		opts.Since = &t
	}

	entries, hasMore, err := h.repo.QueryAudit(c.Request.Context(), scope, opts)
	if err != nil {
		h.log.WithError(err).WithField("request_id", c.GetString(middleware.RequestIDKey)).Error("failed to query audit log")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "failed to query audit log")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     entries,
		"has_more": hasMore,
	})
}

// auditScope resolves the tenant_id query parameter against the session.
// The log is append-only, so reading is the only operation it scopes.
func auditScope(c *gin.Context, sess models.Session) (models.QueryScope, bool) {
	tid := c.Query("tenant_id")

	if tid == "" {
		return models.TenantScope(sess.TenantID), true
	}

	if tid != sess.TenantID && !sess.IsSuperAdmin() {
		respondError(c, http.StatusForbidden, ErrCodeForbidden, "cannot read another tenant's audit log")
		return models.QueryScope{}, false
	}

	if err := models.ValidateTenantID(tid); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid tenant id")
		return models.QueryScope{}, false
	}

	return models.TenantScope(tid), true
}
