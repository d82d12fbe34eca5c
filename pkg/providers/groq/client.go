package groq

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"aircause/backend/pkg/providers"
)

const (
	// ProviderType identifies this adapter in configuration and metrics.
	ProviderType = "groq"

	// DefaultBaseURL is Groq's OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
)

// Provider is the Groq provider adapter.
// It implements providers.Provider for Groq's chat completions API.
type Provider struct {
	*providers.HTTPProvider
}

// NewProvider creates a new Groq provider instance.
//
// An empty API key is accepted; Groq rejects the request at call time and
// the failure surfaces as a providers.AuthError.
func NewProvider(config providers.ProviderConfig) (*Provider, error) {
	if config.Name == "" {
		return nil, &providers.ConfigError{
			Provider: ProviderType,
			Field:    "name",
			Message:  "provider name is required",
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Type == "" {
		config.Type = ProviderType
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(config),
	}

	if config.APIKey == "" {
		slog.Warn("Groq provider has no API key; completions will be rejected",
			"provider", config.Name,
		)
	}

	slog.Info("Groq provider initialized",
		"provider", config.Name,
		"base_url", p.GetConfig().BaseURL,
	)

	return p, nil
}

// SendCompletion sends a chat completion request to Groq.
func (p *Provider) SendCompletion(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/chat/completions", p.GetConfig().BaseURL)

	var chatResp ChatResponse
	if err := p.DoJSONRequest(ctx, http.MethodPost, url, transformRequest(req), &chatResp, p.AuthHeaders()); err != nil {
		return nil, err
	}

	resp := transformResponse(&chatResp)

	slog.DebugContext(ctx, "completion request succeeded",
		"provider", p.GetName(),
		"model", resp.Model,
		"tokens", resp.Usage.TotalTokens,
		"finish_reason", resp.FinishReason,
	)

	return resp, nil
}

// HealthCheck lists models to verify connectivity and credentials.
func (p *Provider) HealthCheck(ctx context.Context) error {
	return p.Probe(ctx, "/models")
}

// validateRequest validates the completion request.
func validateRequest(req *providers.CompletionRequest) error {
	if req == nil {
		return &providers.ValidationError{
			Field:   "request",
			Message: "request cannot be nil",
		}
	}

	if req.Model == "" {
		return &providers.ValidationError{
			Field:   "model",
			Message: "model is required",
		}
	}

	if len(req.Messages) == 0 {
		return &providers.ValidationError{
			Field:   "messages",
			Message: "at least one message is required",
		}
	}

	return nil
}

var _ providers.Provider = (*Provider)(nil)
