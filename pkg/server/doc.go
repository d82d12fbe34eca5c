// Package server provides the HTTP server for the AirCause chat backend.
//
// The server ties together the chat handler, the health and version
// endpoints, the Prometheus scrape endpoint and the middleware chain, and
// manages the listener lifecycle.
//
// # Routes
//
//   - POST /api/chat - Answer a question about Delhi air quality
//   - GET /health/live - Liveness probe (configurable path)
//   - GET /health/ready - Readiness probe, reflects the provider probe
//   - GET /version - Build information
//   - GET /metrics - Prometheus metrics when enabled
//
// # Middleware Chain
//
// Requests pass through the following middleware, outermost first:
//  1. Recovery: turns panics into 500 responses
//  2. Metrics: records request counts and latency per route
//  3. Logging: logs one line per completed request
//  4. RequestID: assigns or propagates X-Request-ID
//  5. Tracing: starts a server span and continues W3C trace context
//  6. CORS: answers preflights and adds CORS headers
//  7. Timeout: bounds handling time when request_timeout is set
//
// # Basic Usage
//
//	srv, err := server.NewServer(cfg, server.Dependencies{
//	    Provider: provider,
//	    Metrics:  collector,
//	    Health:   checker,
//	})
//	if err != nil {
//	    return err
//	}
//	return srv.Start(ctx) // returns after ctx is cancelled and shutdown completes
package server
