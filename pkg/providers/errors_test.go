package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestProviderError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &ProviderError{
			Provider:   "groq",
			StatusCode: 500,
			Message:    "internal error",
		}

		expected := `provider "groq" error (status 500): internal error`
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("without status code", func(t *testing.T) {
		err := &ProviderError{
			Provider: "groq",
			Message:  "connection refused",
		}

		expected := `provider "groq" error: connection refused`
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := &ProviderError{
			Provider: "groq",
			Message:  "request failed",
			Cause:    cause,
		}

		if !errors.Is(err, cause) {
			t.Error("expected error to wrap cause")
		}
	})
}

func TestAuthError(t *testing.T) {
	err := &AuthError{
		Provider: "groq",
		Message:  "Invalid API Key",
	}

	expected := `provider "groq" authentication failed: Invalid API Key`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestRateLimitError(t *testing.T) {
	t.Run("with retry after", func(t *testing.T) {
		err := &RateLimitError{
			Provider:   "groq",
			RetryAfter: 10 * time.Second,
			Message:    "Rate limit reached",
		}

		errStr := err.Error()
		if !strings.Contains(errStr, "rate limit exceeded") {
			t.Errorf("expected error to contain 'rate limit exceeded', got %q", errStr)
		}
		if !strings.Contains(errStr, "10s") {
			t.Errorf("expected error to contain retry duration, got %q", errStr)
		}
	})

	t.Run("without retry after", func(t *testing.T) {
		err := &RateLimitError{
			Provider: "groq",
			Message:  "Rate limit reached",
		}

		expected := `provider "groq" rate limit exceeded: Rate limit reached`
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})
}

func TestTimeoutError(t *testing.T) {
	err := &TimeoutError{
		Provider: "groq",
		Timeout:  30 * time.Second,
		Cause:    context.DeadlineExceeded,
	}

	expected := `provider "groq" request timeout after 30s`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected error to wrap context.DeadlineExceeded")
	}
}

func TestParseError(t *testing.T) {
	cause := errors.New("invalid JSON")
	err := &ParseError{
		Provider:    "groq",
		RawResponse: `{"invalid": json}`,
		Cause:       cause,
	}

	if !strings.Contains(err.Error(), "parse error") {
		t.Errorf("expected error to contain 'parse error', got %q", err.Error())
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("expected unwrapped error to be %v", cause)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "model", Message: "model is required"}

	expected := `validation error for field "model": model is required`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Provider: "groq", Field: "name", Message: "provider name is required"}

	expected := `provider "groq" configuration error for field "name": provider name is required`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
