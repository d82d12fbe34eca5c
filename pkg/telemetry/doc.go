// Package telemetry groups the observability packages of the AirCause
// backend.
//
// # Components
//
//   - logging: slog-based structured logging with secret redaction and a
//     runtime-adjustable level
//   - metrics: Prometheus collectors for HTTP traffic, chat outcomes and the
//     Groq provider
//   - tracing: OpenTelemetry spans exported over OTLP gRPC
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	logger, _ := logging.New(logging.ConfigFrom(cfg.Telemetry.Logging, os.Stdout))
//	slog.SetDefault(logger.Slog())
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	collector.RecordChat("district", metrics.OutcomeAnswered, time.Since(start))
//
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing, version)
//	ctx, span := tracer.Start(ctx, "chat.answer")
//	defer span.End()
//
// # Secret Protection
//
// Groq API keys, bearer tokens and values stored under credential-like keys
// are masked before log lines are written. Custom redaction patterns can be
// configured.
package telemetry
