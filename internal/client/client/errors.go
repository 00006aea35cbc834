package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers every failure that says nothing about the
	// credential: transport errors, timeouts, 5xx, undecodable bodies.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the backend rejected the bearer credential (401/403).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken means a magic-link token was expired, used or malformed.
	ErrInvalidToken = errors.New("invalid or expired magic link")
	// ErrRejected is any other 4xx answer.
	ErrRejected = errors.New("request rejected")
	// ErrValidation is raised locally, before any request is sent.
	ErrValidation = errors.New("validation error")
)

// APIError is a non-2xx answer from the backend. It unwraps to one of the
// sentinels above so callers can keep using errors.Is.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (status %d)", e.Err, e.Status)
	}
	return fmt.Sprintf("%v (status %d): %s", e.Err, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Message returns the backend's own message for err, if it carried one.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// statusClassifier maps a non-2xx status to a sentinel. Each endpoint has its own.
type statusClassifier func(status int) error

func isClientError(status int) bool {
	return status >= 400 && status < 500
}

func classifyLinkRequest(status int) error {
	if isClientError(status) {
		return ErrRejected
	}
	return ErrUnavailable
}

func classifyRedeem(status int) error {
	if isClientError(status) {
		return ErrInvalidToken
	}
	return ErrUnavailable
}

// classifyWhoAmI is the rule the bootstrapper depends on: only 401 and 403
// prove the credential bad.
func classifyWhoAmI(status int) error {
	switch status {
	case 401, 403:
		return ErrUnauthorized
	default:
		return ErrUnavailable
	}
}

func classifyGeneric(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case isClientError(status):
		return ErrRejected
	default:
		return ErrUnavailable
	}
}
