package api

import (
	"fmt"
	"net/http"
)

// AuthError indicates the server rejected the caller's credentials, either
// on login or after an unrecoverable token renewal failure. Callers must
// clear the session and re-authenticate.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return "authentication failed: " + e.Detail
	}
	return "authentication failed"
}

// ValidationError indicates the server rejected the request input, e.g. a
// duplicate registration email. Detail carries the server message verbatim.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "invalid request"
}

// NotFoundError indicates the server has no questions for the requested
// language. Non-fatal: the test controller routes it to its error stage.
type NotFoundError struct {
	Language string
}

func (e *NotFoundError) Error() string {
	if e.Language != "" {
		return fmt.Sprintf("no questions found for %s", e.Language)
	}
	return "no questions found for selected language"
}

// StatusError is the generic failure for any other non-2xx response.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// errorFromStatus maps a failed response to the error taxonomy.
func errorFromStatus(status int, detail string) error {
	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{Detail: detail}
	case status >= 400 && status < 500:
		return &ValidationError{Detail: detail}
	default:
		return &StatusError{StatusCode: status, Detail: detail}
	}
}
