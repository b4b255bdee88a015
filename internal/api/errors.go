package api

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failed provider call. The retry policy keys off this.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUnauthorized
	KindRateLimited
	KindServer
	KindNetwork
	KindNotConfigured
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server_error"
	case KindNetwork:
		return "network_error"
	case KindNotConfigured:
		return "not_configured"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every client call.
type Error struct {
	Kind       Kind
	StatusCode int
	// RetryAfter carries the provider's 429 hint, or the time until the
	// hard-throttle window reopens.
	RetryAfter time.Duration
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("riot api %s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("riot api %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Retryable reports whether the failure is worth another attempt at all.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindServer, KindNetwork:
		return true
	default:
		return false
	}
}

// KindOf extracts the failure kind from any error in the chain.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// RetryAfterOf returns the rate-limit hint carried by err, if any.
func RetryAfterOf(err error) time.Duration {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter
	}
	return 0
}

// ErrNotConfigured short-circuits every call when no API key is present.
var ErrNotConfigured = &Error{Kind: KindNotConfigured, Message: "riot api key not configured"}
