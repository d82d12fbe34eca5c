package providers

import "time"

// Message represents a single message in a conversation.
type Message struct {
	// Role is the message author: "system", "user" or "assistant".
	Role string `json:"role"`

	// Content is the text content of the message.
	Content string `json:"content"`
}

// TokenUsage represents token consumption for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionRequest represents a provider-agnostic completion request.
type CompletionRequest struct {
	// Model is the model identifier (e.g., "llama-3.1-8b-instant").
	Model string `json:"model"`

	// Messages is the ordered conversation sent to the model.
	Messages []Message `json:"messages"`

	// Temperature controls randomness (0.0 to 2.0).
	Temperature float64 `json:"temperature"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens,omitempty"`

	// User is an end-user identifier forwarded to the provider for abuse
	// monitoring. Optional.
	User string `json:"user,omitempty"`
}

// CompletionResponse represents a provider-agnostic completion response.
type CompletionResponse struct {
	// ID is the provider-assigned response identifier.
	ID string `json:"id"`

	// Model is the model that produced the response.
	Model string `json:"model"`

	// Content is the first choice's message content. Empty when the
	// provider returned no choices or no content.
	Content string `json:"content"`

	// FinishReason is the normalized finish reason of the first choice.
	FinishReason string `json:"finish_reason"`

	// Usage is the token accounting reported by the provider.
	Usage TokenUsage `json:"usage"`

	// Created is the Unix timestamp reported by the provider.
	Created int64 `json:"created"`
}

// ProviderHealth represents the health status of a provider.
type ProviderHealth struct {
	IsHealthy             bool
	LastCheck             time.Time
	LastError             error
	ConsecutiveFailures   int
	LastSuccessfulRequest time.Time
	TotalRequests         int64
	FailedRequests        int64
}

// ProviderConfig contains configuration for an HTTP provider.
type ProviderConfig struct {
	// Name is the unique provider name used in logs and metrics.
	Name string

	// Type is the provider implementation (e.g., "groq").
	Type string

	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// APIKey is the bearer credential. May be empty.
	APIKey string

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after a transient failure.
	MaxRetries int

	// RetryBackoff is the delay before the first retry. Doubles per retry.
	RetryBackoff time.Duration

	// MaxRetryWait caps how long a Retry-After header may delay a retry.
	// Longer waits are not retried.
	MaxRetryWait time.Duration

	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections stay open.
	IdleConnTimeout time.Duration

	// OnRetry, when set, is called before every retry with the 1-based retry
	// number and the error that caused it.
	OnRetry func(retry int, cause error)
}

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Normalized finish reasons.
const (
	FinishReasonStop   = "stop"
	FinishReasonLength = "length"
	FinishReasonError  = "error"
)
