package providers

import (
	"context"
	"fmt"
	"sync"

	"aircause/backend/pkg/providers"
)

// MockProvider is an in-memory providers.Provider for handler tests.
// It returns a scripted reply or error and records every request.
type MockProvider struct {
	name    string
	reply   string
	err     error
	healthy bool

	mu       sync.Mutex
	requests []*providers.CompletionRequest
	health   providers.ProviderHealth
}

// NewMockProvider creates a healthy mock provider that replies with reply.
func NewMockProvider(name, reply string) *MockProvider {
	return &MockProvider{
		name:    name,
		reply:   reply,
		healthy: true,
		health:  providers.ProviderHealth{IsHealthy: true},
	}
}

// SetReply changes the scripted reply.
func (m *MockProvider) SetReply(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply = reply
}

// SetError makes subsequent calls fail with err. A nil err clears it.
func (m *MockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetHealthy sets the health status reported by HealthCheck.
func (m *MockProvider) SetHealthy(healthy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthy = healthy
	m.health.IsHealthy = healthy
}

// Requests returns the requests received so far.
func (m *MockProvider) Requests() []*providers.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*providers.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// SendCompletion records req and returns the scripted reply or error.
func (m *MockProvider) SendCompletion(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	m.health.TotalRequests++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		m.health.FailedRequests++
		return nil, m.err
	}
	return &providers.CompletionResponse{
		ID:           "mock-1",
		Model:        req.Model,
		Content:      m.reply,
		FinishReason: providers.FinishReasonStop,
		Usage:        providers.TokenUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
	}, nil
}

// HealthCheck fails when the provider is marked unhealthy.
func (m *MockProvider) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.healthy {
		return fmt.Errorf("provider %s is unhealthy", m.name)
	}
	return nil
}

// GetName returns the provider name.
func (m *MockProvider) GetName() string {
	return m.name
}

// GetType returns "mock".
func (m *MockProvider) GetType() string {
	return "mock"
}

// IsHealthy returns the current health status.
func (m *MockProvider) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy
}

// GetHealth returns detailed health information.
func (m *MockProvider) GetHealth() providers.ProviderHealth {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.health
}

// Close is a no-op.
func (m *MockProvider) Close() error {
	return nil
}

var _ providers.Provider = (*MockProvider)(nil)
