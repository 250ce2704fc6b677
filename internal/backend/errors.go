package backend

import (
	"errors"
	"strconv"
)

var (
	// ErrUnavailable indicates the staffing backend is unreachable.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrTokenExpired indicates the stored bearer token has expired;
	// raised before any network call is attempted.
	ErrTokenExpired = errors.New("bearer token expired, run `crewctl login`")

	// ErrNotFound indicates the backend has no document for the id.
	ErrNotFound = errors.New("not found")
)

// APIError carries a structured rejection from the backend (non-2xx with a
// JSON error body).
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "backend returned status " + strconv.Itoa(e.StatusCode)
}
