// Package metrics provides Prometheus metrics for the chat backend.
//
// # Metrics Categories
//
//   - HTTP: request count and duration by method, route and status
//   - Chat: requests by prompt kind and outcome, end-to-end latency
//   - Provider: health, latency, errors by type, retries and token usage
//
// Go runtime and process metrics are registered on the same registry.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	router.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
//	collector.RecordChat("district", metrics.OutcomeAnswered, time.Since(start))
//	collector.RecordProviderCall("groq", "llama-3.1-8b-instant", latency, err)
//
// Route labels use the router's pattern so cardinality stays bounded.
// A nil *Collector accepts every call and records nothing.
package metrics
