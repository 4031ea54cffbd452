package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"sweetshop/internal/errors"
)

// APIError is a non-2xx backend response after the interceptor has
// given up on it: a client error (4xx) or a transient error whose
// retries are exhausted.
type APIError struct {
	StatusCode int    // HTTP status of the final attempt.
	Code       string // Backend error token, e.g. "Unauthorized". May be empty.
	Message    string // Backend message, or a raw body snippet.
}

// apiErrorBody matches the backend's JSON error envelope.
type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var decoded apiErrorBody
	if err := json.Unmarshal(body, &decoded); err == nil && (decoded.Error != "" || decoded.Message != "") {
		apiErr.Code = decoded.Error
		apiErr.Message = decoded.Message

		return apiErr
	}

	// Not every endpoint wraps errors in JSON; keep a short raw snippet.
	const maxSnippet = 200
	snippet := string(body)
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}
	apiErr.Message = snippet

	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Transient reports whether the error class is retry-resolvable.
func (e *APIError) Transient() bool {
	return e.StatusCode >= 500 && e.StatusCode <= 599
}

// AsAPIError extracts an APIError from anywhere in err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// HasStatus reports whether err carries a backend response with the
// given HTTP status.
func HasStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.StatusCode == status
}

// IsNotFound is a convenience check for 404 responses.
func IsNotFound(err error) bool {
	return HasStatus(err, http.StatusNotFound)
}

// IsBadRequest is a convenience check for 400 responses.
func IsBadRequest(err error) bool {
	return HasStatus(err, http.StatusBadRequest)
}

// IsForbidden is a convenience check for 403 responses.
func IsForbidden(err error) bool {
	return HasStatus(err, http.StatusForbidden)
}
