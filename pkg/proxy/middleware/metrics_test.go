package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aircause/backend/pkg/config"
	"aircause/backend/pkg/telemetry/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func scrape(t *testing.T, collector *metrics.Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestMetricsMiddleware_RoutePattern(t *testing.T) {
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "mw"}, prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(collector))
	r.Get("/districts/{name}", func(w http.ResponseWriter, r *http.Request) {})

	for _, path := range []string{"/districts/anand-vihar", "/districts/rohini", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := scrape(t, collector)
	for _, want := range []string{
		`mw_http_requests_total{method="GET",route="/districts/{name}",status="200"} 2`,
		`mw_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in scrape output", want)
		}
	}
}

func TestMetricsMiddleware_PanicCountedAs500(t *testing.T) {
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "mwp"}, prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(RecoveryMiddleware, MetricsMiddleware(collector))
	r.Post("/api/chat", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	want := `mwp_http_requests_total{method="POST",route="/api/chat",status="500"} 1`
	if out := scrape(t, collector); !strings.Contains(out, want) {
		t.Errorf("expected %q in scrape output", want)
	}
}

func TestMetricsMiddleware_NilCollector(t *testing.T) {
	called := false
	h := MetricsMiddleware(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("expected pass-through")
	}
}
