package inference

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNoAPIKey     = errors.New("no API key provided")
	ErrUnauthorized = errors.New("invalid API key")
	ErrTooLarge     = errors.New("document is too large to process")
	ErrRateLimited  = errors.New("rate limited by inference provider")
)

// StatusError is a non-2xx reply from the provider.
type StatusError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	if e.Type != "" {
		return fmt.Sprintf("inference status %d: %s: %s", e.StatusCode, e.Type, msg)
	}
	return fmt.Sprintf("inference status %d: %s", e.StatusCode, msg)
}

// Unwrap exposes the sentinel matching the status so callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode == http.StatusRequestEntityTooLarge:
		return ErrTooLarge
	case e.StatusCode == http.StatusBadRequest && tooLong(e.Message):
		return ErrTooLarge
	}
	return nil
}

// Retryable reports rate limiting and server-side failures.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func tooLong(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "prompt is too long") || strings.Contains(msg, "too many tokens")
}
