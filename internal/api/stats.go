package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler serves the tenant dashboard endpoint.
type StatsHandler struct {
	repo StatsRepository
	log  *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given dependencies.
func NewStatsHandler(repo StatsRepository, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{repo: repo, log: log}
}

// GetStats handles GET /api/v1/stats — returns aggregate counts for the
// caller's tenant.
func (h *StatsHandler) GetStats(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	stats, err := h.repo.TenantStats(c.Request.Context(), sess.TenantID)
	if err != nil {
		h.log.WithError(err).WithField("tenant_id", sess.TenantID).Error("stats: tenant query")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, stats)
}
