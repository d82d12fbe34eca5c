package metrics

import (
	"time"

	"aircause/backend/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns every Prometheus metric exported by the backend.
// A nil *Collector is valid and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	httpMetrics     *HTTPMetrics
	chatMetrics     *ChatMetrics
	providerMetrics *ProviderMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil a fresh registry is created. Go runtime and process
// collectors are registered alongside the application metrics.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = config.DefaultLatencyBuckets
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		config:          cfg,
		registry:        registry,
		httpMetrics:     NewHTTPMetrics(cfg, registry),
		chatMetrics:     NewChatMetrics(cfg, registry),
		providerMetrics: NewProviderMetrics(cfg, registry),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordHTTPRequest records a served HTTP request. route is the matched
// route pattern, not the raw path.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.httpMetrics.Record(method, route, status, duration)
}

// RecordChat records the outcome of one /api/chat request.
//
// kind is the prompt category ("greeting", "district", "generic") and
// outcome one of the Outcome constants.
func (c *Collector) RecordChat(kind, outcome string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.chatMetrics.Record(kind, outcome, duration)
}

// RecordProviderCall records a completed provider call, successful or not.
func (c *Collector) RecordProviderCall(provider, model string, latency time.Duration, err error) {
	if !c.enabled() {
		return
	}
	c.providerMetrics.RecordCall(provider, model, latency, err)
}

// RecordTokens records token usage reported by the provider.
func (c *Collector) RecordTokens(provider, model string, promptTokens, completionTokens int) {
	if !c.enabled() {
		return
	}
	c.providerMetrics.RecordTokens(provider, model, promptTokens, completionTokens)
}

// RecordProviderRetry records one retry against the provider.
func (c *Collector) RecordProviderRetry(provider string) {
	if !c.enabled() {
		return
	}
	c.providerMetrics.RecordRetry(provider)
}

// UpdateProviderHealth updates the provider health gauge (1=healthy, 0=unhealthy).
func (c *Collector) UpdateProviderHealth(provider string, healthy bool) {
	if !c.enabled() {
		return
	}
	c.providerMetrics.UpdateHealth(provider, healthy)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
