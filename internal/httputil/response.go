// Package httputil provides shared HTTP response helpers.
package httputil

import (
	"github.com/gin-gonic/gin"

	"github.com/stockline/stockline/internal/models"
)

const (
	envelopeKey  = "error_envelope"
	envelopeChat = "chat"
)

// UseChatEnvelope switches error responses for the rest of the chain to the
// chat shape {type:"error", content}.
func UseChatEnvelope() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(envelopeKey, envelopeChat)
		c.Next()
	}
}

// RespondError writes a standardized JSON error response and aborts the request.
// Routes behind UseChatEnvelope get the chat error shape instead.
func RespondError(c *gin.Context, status int, code, message string) {
	if c.GetString(envelopeKey) == envelopeChat {
		RespondChatError(c, status, message)
		return
	}

	resp := map[string]string{
		"code":    code,
		"message": message,
	}

	if requestID := c.GetString("request_id"); requestID != "" {
		resp["request_id"] = requestID
	}

	c.AbortWithStatusJSON(status, resp)
}

// RespondChatError writes the chat failure shape and aborts the request.
func RespondChatError(c *gin.Context, status int, content string) {
	c.AbortWithStatusJSON(status, models.ChatResponse{
		Type:    models.ResponseTypeError,
		Content: content,
	})
}
