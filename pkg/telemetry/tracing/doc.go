// Package tracing provides OpenTelemetry tracing for the chat backend.
//
// A Tracer is built from config.TracingConfig. When tracing is disabled the
// package hands out a noop tracer, so callers never need to branch on it.
// When enabled, spans are batched to an OTLP gRPC collector and the W3C
// Trace Context and Baggage propagators are installed globally.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "chat.answer")
//	defer span.End()
//	tracing.SetChatAttributes(span, "district", "Delhi")
//
// # Sampling
//
// Three strategies are supported: always, never and ratio. All of them
// respect the sampling decision of an incoming parent span.
package tracing
