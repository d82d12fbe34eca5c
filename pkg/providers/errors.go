package providers

import (
	"fmt"
	"time"
)

// Errors returned by SendCompletion reach the chat endpoint unchanged: the
// handler answers 500 with {"error":"Internal Server Error","message":err.Error()}.
// The texts below are therefore what a browser sees when Groq fails, and
// they must never include the API key.

// AuthError is a 401 or 403 from Groq, which is also what a missing
// GROQ_API_KEY looks like. It is never retried.
type AuthError struct {
	Provider string
	Message  string // Groq's error.message, or the HTTP status text
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("provider %q authentication failed: %s", e.Provider, e.Message)
}

// RateLimitError is a 429 that survived every retry. RetryAfter mirrors the
// Retry-After header and is zero when Groq omitted it.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider %q rate limit exceeded (retry after %s): %s",
			e.Provider, e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("provider %q rate limit exceeded: %s", e.Provider, e.Message)
}

// ProviderError covers every other failed exchange: 4xx/5xx answers and
// transport failures. StatusCode is 0 when no response arrived, in which
// case Cause holds the dial or read error.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %q error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %q error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// TimeoutError means the per-request deadline (provider.timeout) expired
// before Groq answered. Cause is usually context.DeadlineExceeded.
type TimeoutError struct {
	Provider string
	Timeout  time.Duration
	Cause    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %q request timeout after %s", e.Provider, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Cause }

// ParseError is a 2xx whose body is not a chat completion. RawResponse keeps
// the body for logs only; it is left out of Error.
type ParseError struct {
	Provider    string
	RawResponse string
	Cause       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %q response parse error: %v", e.Provider, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ValidationError rejects a completion request before it leaves the process,
// for example an empty model or message list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %q: %s", e.Field, e.Message)
}

// ConfigError is returned at startup when the provider section cannot build
// a client. It never reaches the chat endpoint.
type ConfigError struct {
	Provider string
	Field    string
	Message  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q configuration error for field %q: %s",
		e.Provider, e.Field, e.Message)
}
