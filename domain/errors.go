package domain

import (
	"errors"
	"fmt"
)

// Token errors
var (
	ErrTokenInvalid        = errors.New("invalid token")
	ErrTokenMalformed      = errors.New("malformed token")
	ErrRefreshTokenMissing = errors.New("refresh token missing")
	ErrRefreshFailed       = errors.New("token refresh failed")
)

// Session errors
var (
	ErrSessionExpired  = errors.New("session has expired")
	ErrSessionNotFound = errors.New("session not found")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Storage errors
var (
	ErrKeyNotFound = errors.New("key not found")
)

// HTTPError tags a non-2xx response with its status code and carries the
// parsed body for caller inspection. A 401 on an authenticated call never
// surfaces as an HTTPError directly: the pipeline recovers it once via
// refresh, then escalates to ErrSessionExpired if recovery fails.
type HTTPError struct {
	StatusCode int
	Response   *APIResponse
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api call failed with status %d", e.StatusCode)
}

// AsHTTPError unwraps err into an *HTTPError when it is one
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
