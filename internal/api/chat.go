package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/assistant"
	"github.com/stockline/stockline/internal/httputil"
	"github.com/stockline/stockline/internal/metrics"
	"github.com/stockline/stockline/internal/middleware"
	"github.com/stockline/stockline/internal/models"
)

// ChatHandler serves the assistant endpoint.
type ChatHandler struct {
	svc ChatService
	log *logrus.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc ChatService, log *logrus.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: log}
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		h.fail(c, models.Session{}, fmt.Errorf("%w: no session", models.ErrAuthentication))
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, sess, fmt.Errorf("%w: request body must be a JSON object", models.ErrInvalidRequest))
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		h.fail(c, sess, fmt.Errorf("%w: %w", models.ErrInvalidRequest, err))
		return
	}

	resp, err := h.svc.Chat(c.Request.Context(), sess, req)
	if err != nil {
		h.fail(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// fail logs err with request context and writes the chat error envelope.
func (h *ChatHandler) fail(c *gin.Context, sess models.Session, err error) {
	kind := models.Kind(err)
	status := statusFor(err)

	entry := h.log.WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"tenant_id":  sess.TenantID,
		"user_id":    sess.UserID,
		"error_kind": kind,
		"status":     status,
	}).WithError(err)

	switch {
	case errors.Is(err, models.ErrSecurityViolation):
		entry.Warn("chat rejected by security gate")
	case status >= http.StatusInternalServerError:
		entry.Error("chat failed")
	default:
		entry.Info("chat request rejected")
	}

	metrics.ErrorsTotal.WithLabelValues(kind).Inc()

	httputil.RespondChatError(c, status, assistant.UserMessage(err))
}
