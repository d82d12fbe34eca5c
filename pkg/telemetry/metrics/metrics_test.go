package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aircause/backend/pkg/config"
	"aircause/backend/pkg/providers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:        true,
		Namespace:      "test",
		LatencyBuckets: []float64{0.1, 0.5, 1.0, 5.0},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if cfg.Namespace != "aircause" {
		t.Errorf("expected default namespace, got %q", cfg.Namespace)
	}
	if len(cfg.LatencyBuckets) == 0 {
		t.Error("expected default latency buckets")
	}
	if collector.Registry() == nil {
		t.Error("expected a registry to be created")
	}
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordHTTPRequest(http.MethodPost, "/api/chat", 200, 120*time.Millisecond)
	collector.RecordHTTPRequest(http.MethodPost, "/api/chat", 200, 80*time.Millisecond)
	collector.RecordHTTPRequest(http.MethodGet, "", 404, time.Millisecond)

	if got := testutil.ToFloat64(collector.httpMetrics.requestsTotal.WithLabelValues("POST", "/api/chat", "200")); got != 2 {
		t.Errorf("expected 2 chat requests, got %f", got)
	}
	if got := testutil.ToFloat64(collector.httpMetrics.requestsTotal.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("expected unmatched route label, got %f", got)
	}
}

func TestCollector_RecordChat(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	tests := []struct {
		kind    string
		outcome string
	}{
		{"greeting", OutcomeAnswered},
		{"district", OutcomeFallback},
		{"generic", OutcomeError},
		{"generic", OutcomeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.outcome, func(t *testing.T) {
			collector.RecordChat(tt.kind, tt.outcome, 300*time.Millisecond)

			count := testutil.ToFloat64(collector.chatMetrics.requestsTotal.WithLabelValues(tt.kind, tt.outcome))
			if count != 1 {
				t.Errorf("Expected chat counter 1, got %f", count)
			}
		})
	}
}

func TestCollector_ProviderMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	t.Run("update health", func(t *testing.T) {
		collector.UpdateProviderHealth("groq", true)
		if got := testutil.ToFloat64(collector.providerMetrics.health.WithLabelValues("groq")); got != 1.0 {
			t.Errorf("Expected health=1.0, got %f", got)
		}

		collector.UpdateProviderHealth("groq", false)
		if got := testutil.ToFloat64(collector.providerMetrics.health.WithLabelValues("groq")); got != 0.0 {
			t.Errorf("Expected health=0.0, got %f", got)
		}
	})

	t.Run("record call", func(t *testing.T) {
		collector.RecordProviderCall("groq", "m", 200*time.Millisecond, nil)
		collector.RecordProviderCall("groq", "m", time.Second, &providers.RateLimitError{Provider: "groq"})

		if got := testutil.ToFloat64(collector.providerMetrics.requests.WithLabelValues("groq", "m", "success")); got != 1 {
			t.Errorf("expected 1 success, got %f", got)
		}
		if got := testutil.ToFloat64(collector.providerMetrics.requests.WithLabelValues("groq", "m", "error")); got != 1 {
			t.Errorf("expected 1 error, got %f", got)
		}
		if got := testutil.ToFloat64(collector.providerMetrics.errors.WithLabelValues("groq", "rate_limit")); got != 1 {
			t.Errorf("expected rate_limit error counted, got %f", got)
		}
	})

	t.Run("record retry", func(t *testing.T) {
		collector.RecordProviderRetry("groq")
		if got := testutil.ToFloat64(collector.providerMetrics.retries.WithLabelValues("groq")); got != 1 {
			t.Errorf("expected 1 retry, got %f", got)
		}
	})

	t.Run("record tokens", func(t *testing.T) {
		collector.RecordTokens("groq", "m", 10, 20)
		collector.RecordTokens("groq", "m", 0, 5)
		if got := testutil.ToFloat64(collector.providerMetrics.tokens.WithLabelValues("groq", "m", "prompt")); got != 10 {
			t.Errorf("expected 10 prompt tokens, got %f", got)
		}
		if got := testutil.ToFloat64(collector.providerMetrics.tokens.WithLabelValues("groq", "m", "completion")); got != 25 {
			t.Errorf("expected 25 completion tokens, got %f", got)
		}
	})
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordChat("generic", OutcomeAnswered, time.Second)
	collector.UpdateProviderHealth("groq", true)

	if got := testutil.CollectAndCount(collector.chatMetrics.requestsTotal); got != 0 {
		t.Errorf("expected no chat series when disabled, got %d", got)
	}
}

func TestCollector_Nil(t *testing.T) {
	var collector *Collector

	// None of these may panic.
	collector.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	collector.RecordChat("generic", OutcomeAnswered, time.Second)
	collector.RecordProviderCall("groq", "m", time.Second, nil)
	collector.RecordProviderRetry("groq")
	collector.RecordTokens("groq", "m", 1, 1)
	collector.UpdateProviderHealth("groq", true)
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&providers.AuthError{Provider: "groq"}, "auth"},
		{&providers.RateLimitError{Provider: "groq"}, "rate_limit"},
		{&providers.TimeoutError{Provider: "groq"}, "timeout"},
		{context.DeadlineExceeded, "timeout"},
		{fmt.Errorf("wrapped: %w", context.Canceled), "cancelled"},
		{&providers.ParseError{Provider: "groq"}, "parse"},
		{&providers.ProviderError{Provider: "groq", StatusCode: 503}, "server_error"},
		{&providers.ProviderError{Provider: "groq", StatusCode: 400}, "client_error"},
		{&providers.ProviderError{Provider: "groq", Message: "connection refused"}, "network"},
		{errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ErrorType(tt.err); got != tt.want {
				t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordChat("greeting", OutcomeAnswered, 50*time.Millisecond)

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `test_chat_requests_total{kind="greeting",outcome="answered"} 1`) {
		t.Errorf("expected chat counter in exposition, got:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("expected Go runtime metrics in exposition")
	}
}
