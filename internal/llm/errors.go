package llm

import (
	"fmt"
	"time"
)

// AuthError indicates a missing or invalid credential. It is fatal to any
// generative call but not to direct-mapping fills.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "auth error: API key is not configured"
	}
	return fmt.Sprintf("auth error: %s", e.Message)
}

// RateLimitedError indicates the service refused the call and when a retry
// may succeed. The resolver records a cooldown and fails fast until it passes.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter)
}

// ServiceError indicates a transient server-side failure (5xx). Callers retry
// exactly once before surfacing it.
type ServiceError struct {
	Status int
	Cause  error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("service error (status %d): %v", e.Status, e.Cause)
	}
	return fmt.Sprintf("service error (status %d)", e.Status)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
