package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents an error response from the Stockline API. Chat
// failures ({type:"error", content}) are mapped to Code "chat_error".
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("stockline: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("stockline: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func statusOf(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsUnauthorized returns true if the error is a 401.
func IsUnauthorized(err error) bool { return statusOf(err) == 401 }

// IsForbidden returns true if the error is a 403.
func IsForbidden(err error) bool { return statusOf(err) == 403 }

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool { return statusOf(err) == 429 }

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var chat struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	if json.Unmarshal(body, &chat) == nil && chat.Type == ResponseError {
		apiErr.Code = "chat_error"
		apiErr.Message = chat.Content
		return apiErr
	}

	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
