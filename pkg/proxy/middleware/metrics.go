package middleware

import (
	"net/http"
	"time"

	"aircause/backend/pkg/telemetry/metrics"
)

// MetricsMiddleware records request count and latency per chi route
// pattern, so path parameters never explode label cardinality. A panicking
// handler is counted as a 500 before the panic continues to
// RecoveryMiddleware.
//
// Example usage:
//
//	handler = MetricsMiddleware(collector)(handler)
func MetricsMiddleware(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			defer func() {
				if p := recover(); p != nil {
					collector.RecordHTTPRequest(r.Method, routePattern(r), http.StatusInternalServerError, time.Since(start))
					panic(p)
				}
			}()

			next.ServeHTTP(rw, r)
			collector.RecordHTTPRequest(r.Method, routePattern(r), rw.statusCode, time.Since(start))
		})
	}
}
