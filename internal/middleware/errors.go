package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/stockline/stockline/internal/httputil"
	"github.com/stockline/stockline/internal/metrics"
)

// respondError delegates to the shared httputil.RespondError helper.
func respondError(c *gin.Context, code int, errCode, message string) {
	metrics.ErrorsTotal.WithLabelValues(errCode).Inc()
	httputil.RespondError(c, code, errCode, message)
}
