package metrics

import (
	"context"
	"errors"
	"time"

	"aircause/backend/pkg/config"
	"aircause/backend/pkg/providers"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderMetrics tracks provider health and performance.
//
// Metrics:
//   - aircause_provider_health: Provider health status (1=healthy, 0=unhealthy)
//   - aircause_provider_latency_seconds: Provider call latency
//   - aircause_provider_requests_total: Provider calls by result
//   - aircause_provider_errors_total: Provider error count by type
//   - aircause_provider_retries_total: Retries issued against the provider
//   - aircause_provider_tokens_total: Tokens reported by the provider
type ProviderMetrics struct {
	health   *prometheus.GaugeVec
	latency  *prometheus.HistogramVec
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	retries  *prometheus.CounterVec
	tokens   *prometheus.CounterVec
}

// NewProviderMetrics creates and registers provider metrics with the provided registry.
func NewProviderMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProviderMetrics {
	pm := &ProviderMetrics{
		health: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "provider_health",
				Help:      "Provider health status (1=healthy, 0=unhealthy)",
			},
			[]string{"provider"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "provider_latency_seconds",
				Help:      "Provider API call latency in seconds, including retries",
				Buckets:   cfg.LatencyBuckets,
			},
			[]string{"provider", "model"},
		),

		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "provider_requests_total",
				Help:      "Total number of provider calls by result",
			},
			[]string{"provider", "model", "result"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "provider_errors_total",
				Help:      "Total number of provider errors by type",
			},
			[]string{"provider", "error_type"},
		),

		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "provider_retries_total",
				Help:      "Total number of retried provider attempts",
			},
			[]string{"provider"},
		),

		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "provider_tokens_total",
				Help:      "Total number of tokens reported by the provider",
			},
			[]string{"provider", "model", "type"},
		),
	}

	registry.MustRegister(pm.health, pm.latency, pm.requests, pm.errors, pm.retries, pm.tokens)
	return pm
}

// UpdateHealth updates the health status of a provider.
func (pm *ProviderMetrics) UpdateHealth(provider string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	pm.health.WithLabelValues(provider).Set(value)
}

// RecordCall records a completed provider call.
func (pm *ProviderMetrics) RecordCall(provider, model string, latency time.Duration, err error) {
	pm.latency.WithLabelValues(provider, model).Observe(latency.Seconds())

	if err == nil {
		pm.requests.WithLabelValues(provider, model, "success").Inc()
		return
	}
	pm.requests.WithLabelValues(provider, model, "error").Inc()
	pm.errors.WithLabelValues(provider, ErrorType(err)).Inc()
}

// RecordRetry records a retried attempt.
func (pm *ProviderMetrics) RecordRetry(provider string) {
	pm.retries.WithLabelValues(provider).Inc()
}

// RecordTokens records prompt and completion token counts.
func (pm *ProviderMetrics) RecordTokens(provider, model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		pm.tokens.WithLabelValues(provider, model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		pm.tokens.WithLabelValues(provider, model, "completion").Add(float64(completionTokens))
	}
}

// ErrorType classifies a provider error into a low-cardinality label:
// "auth", "rate_limit", "timeout", "cancelled", "server_error",
// "client_error", "network", "parse" or "unknown".
func ErrorType(err error) string {
	var (
		authErr      *providers.AuthError
		rateLimitErr *providers.RateLimitError
		timeoutErr   *providers.TimeoutError
		parseErr     *providers.ParseError
		providerErr  *providers.ProviderError
	)

	switch {
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &rateLimitErr):
		return "rate_limit"
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &providerErr):
		switch {
		case providerErr.StatusCode >= 500:
			return "server_error"
		case providerErr.StatusCode >= 400:
			return "client_error"
		default:
			return "network"
		}
	default:
		return "unknown"
	}
}
