package metrics

import (
	"strconv"
	"time"

	"aircause/backend/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Chat outcomes.
const (
	OutcomeAnswered   = "answered"
	OutcomeFallback   = "fallback"
	OutcomeBadRequest = "bad_request"
	OutcomeError      = "error"
)

// HTTPMetrics tracks served HTTP requests.
//
// Metrics:
//   - aircause_http_requests_total: Request count by method, route, status
//   - aircause_http_request_duration_seconds: Request duration histogram
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers HTTP metrics with the provided registry.
func NewHTTPMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HTTPMetrics {
	hm := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   cfg.LatencyBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(hm.requestsTotal, hm.requestDuration)
	return hm
}

// Record records a served request.
func (hm *HTTPMetrics) Record(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	hm.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	hm.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ChatMetrics tracks chat endpoint outcomes.
//
// Metrics:
//   - aircause_chat_requests_total: Chat requests by prompt kind and outcome
//   - aircause_chat_duration_seconds: End-to-end chat latency by prompt kind
type ChatMetrics struct {
	requestsTotal *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewChatMetrics creates and registers chat metrics with the provided registry.
func NewChatMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ChatMetrics {
	cm := &ChatMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "chat_requests_total",
				Help:      "Total number of chat requests by prompt kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "chat_duration_seconds",
				Help:      "End-to-end chat request duration in seconds",
				Buckets:   cfg.LatencyBuckets,
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(cm.requestsTotal, cm.duration)
	return cm
}

// Record records one chat request.
func (cm *ChatMetrics) Record(kind, outcome string, duration time.Duration) {
	cm.requestsTotal.WithLabelValues(kind, outcome).Inc()
	cm.duration.WithLabelValues(kind).Observe(duration.Seconds())
}
