package providers

import "context"

// Provider is the interface implemented by completion provider adapters.
//
// All methods that perform I/O accept a context.Context and must return
// promptly once it is cancelled.
type Provider interface {
	// SendCompletion sends a completion request and returns the normalized
	// response. Transient failures are retried up to the configured bound.
	SendCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// HealthCheck performs a lightweight request to verify the provider is
	// reachable and accepts the configured credentials.
	HealthCheck(ctx context.Context) error

	// GetName returns the provider's configured name.
	GetName() string

	// GetType returns the provider's implementation type.
	GetType() string

	// IsHealthy returns the current health status.
	IsHealthy() bool

	// GetHealth returns detailed health information.
	GetHealth() ProviderHealth

	// Close releases idle connections. The provider must not be used afterwards.
	Close() error
}
