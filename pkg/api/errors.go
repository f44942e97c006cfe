package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a non-success HTTP status from the remote API. The
// caller treats every non-success status uniformly as a fetch or creation
// failure; Status is carried for diagnostics and the auth distinction.
type StatusError struct {
	// Status is the HTTP status code the remote API returned.
	Status int

	// Body is the raw response body, kept for logs.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("remote api: status %d", e.Status)
}

// Unauthorized reports whether the remote API rejected the credential.
func (e *StatusError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is a StatusError carrying a 401.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Unauthorized()
}
