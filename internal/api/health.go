// Package api provides HTTP handlers for the stockline server.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthInfo is static process information reported by the health endpoint.
type HealthInfo struct {
	Version       string
	SchemaVersion int
	ModelProvider string
	Model         string
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db        Pinger
	log       *logrus.Logger
	info      HealthInfo
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db Pinger, log *logrus.Logger, info HealthInfo) *HealthHandler {
	return &HealthHandler{
		db:        db,
		log:       log,
		info:      info,
		startTime: time.Now(),
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version"`
	ModelProvider string  `json:"model_provider"`
	Model         string  `json:"model"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health — returns status with db, model, and uptime info.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.info.Version,
		Database:      "connected",
		SchemaVersion: h.info.SchemaVersion,
		ModelProvider: h.info.ModelProvider,
		Model:         h.info.Model,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	} else {
		resp.Database = "not_configured"
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready — checks the database and that a
// language model is configured.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{
		"database": "ok",
		"model":    "ok",
	}
	status := "ready"
	statusCode := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if h.db == nil {
		checks["database"] = "not_configured"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	} else if err := h.db.HealthCheck(ctx); err != nil {
		h.log.WithError(err).Error("readiness: database health check failed")
		checks["database"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	if h.info.ModelProvider == "" {
		checks["model"] = "not_configured"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}
