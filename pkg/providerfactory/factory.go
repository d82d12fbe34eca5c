package providerfactory

import (
	"fmt"
	"log/slog"

	"aircause/backend/pkg/config"
	"aircause/backend/pkg/providers"
	"aircause/backend/pkg/providers/groq"
)

// NewProvider creates a provider instance for the configured type.
//
// Supported provider types:
//   - "groq": Groq chat completions API
//
// An empty config.Type selects groq.
func NewProvider(cfg providers.ProviderConfig) (providers.Provider, error) {
	providerType := cfg.Type
	if providerType == "" {
		providerType = groq.ProviderType
		cfg.Type = providerType
	}

	slog.Debug("creating provider",
		"name", cfg.Name,
		"type", providerType,
		"base_url", cfg.BaseURL,
	)

	var provider providers.Provider
	var err error

	switch providerType {
	case groq.ProviderType:
		provider, err = groq.NewProvider(cfg)

	default:
		return nil, &providers.ConfigError{
			Provider: cfg.Name,
			Field:    "type",
			Message:  fmt.Sprintf("unsupported provider type: %q (supported: groq)", providerType),
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", cfg.Name, err)
	}

	return provider, nil
}

// FromConfig builds a provider from the application configuration.
// onRetry is invoked before every retry and may be nil.
func FromConfig(cfg config.ProviderConfig, onRetry func(retry int, cause error)) (providers.Provider, error) {
	return NewProvider(ProviderConfig(cfg, onRetry))
}

// ProviderConfig translates application settings into the transport-level
// provider configuration.
func ProviderConfig(cfg config.ProviderConfig, onRetry func(retry int, cause error)) providers.ProviderConfig {
	return providers.ProviderConfig{
		Name:         cfg.Name,
		BaseURL:      cfg.BaseURL,
		APIKey:       cfg.APIKey,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		OnRetry:      onRetry,
	}
}
