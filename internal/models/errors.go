package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced at the HTTP boundary. Callers wrap these with context
// and classify with errors.Is.
var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrConfiguration     = errors.New("configuration error")
	ErrModel             = errors.New("language model error")
	ErrSecurityViolation = errors.New("security violation")
	ErrQueryExecution    = errors.New("query execution failed")
	ErrInvalidRequest    = errors.New("invalid request")
)

// ErrIdentityUnavailable means a credential could not be checked at all, for
// example because the identity store was unreachable. It never wraps
// ErrAuthentication, so callers must not count it as a rejected credential.
var ErrIdentityUnavailable = errors.New("identity lookup unavailable")

// Sentinel errors for request validation.
var (
	ErrMissingMessage  = errors.New("message is required")
	ErrInvalidUserType = errors.New("userType must be \"internal\" or \"customer\"")
	ErrInvalidTenantID = errors.New("invalid tenant id")
)

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// Kind returns a short label for the error kind, used in logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIdentityUnavailable):
		return "identity_unavailable"
	case errors.Is(err, ErrAuthentication):
		return "authentication"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrSecurityViolation):
		return "security_violation"
	case errors.Is(err, ErrModel):
		return "model"
	case errors.Is(err, ErrQueryExecution):
		return "query_execution"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "internal"
	}
}
