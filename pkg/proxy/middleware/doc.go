// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// # Middleware Chain
//
// The server applies the middleware in this order, outermost first:
//
//	Recovery → Metrics → Logging → RequestID → Tracing → CORS → Timeout → handler
//
//   - RecoveryMiddleware turns a panic into a 500 with message "internal error".
//   - MetricsMiddleware counts requests per chi route pattern.
//   - LoggingMiddleware writes one line per request with status and latency.
//   - RequestIDMiddleware sets X-Request-ID and puts the ID in the logging context.
//   - TracingMiddleware opens a server span and continues incoming trace context.
//   - CORSMiddleware answers preflight requests and sets CORS headers.
//   - TimeoutMiddleware answers 504 when a request exceeds server.request_timeout.
//
// Tracing, Metrics and Timeout become pass-through when disabled, so the
// chain shape never depends on configuration.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(
//	    middleware.RecoveryMiddleware,
//	    middleware.MetricsMiddleware(collector),
//	    middleware.LoggingMiddleware,
//	    middleware.RequestIDMiddleware,
//	    middleware.TracingMiddleware(tracer),
//	    middleware.CORSMiddleware(cfg.Server.CORS),
//	    middleware.TimeoutMiddleware(cfg.Server.RequestTimeout),
//	)
package middleware
