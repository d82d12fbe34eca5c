package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Custom attribute keys use the "aircause.*" namespace. HTTP attributes
// follow OpenTelemetry semantic conventions and are set by the middleware.
const (
	// Provider attributes
	AttrProvider = "aircause.provider"
	AttrModel    = "aircause.model"

	// Request attributes
	AttrRequestID = "aircause.request_id"

	// Chat attributes
	AttrChatKind     = "aircause.chat.kind"
	AttrChatDistrict = "aircause.chat.district"
	AttrChatFallback = "aircause.chat.fallback"

	// Token attributes
	AttrTokensPrompt     = "aircause.tokens.prompt"
	AttrTokensCompletion = "aircause.tokens.completion"
	AttrTokensTotal      = "aircause.tokens.total"

	// Error attributes
	AttrErrorType    = "aircause.error.type"
	AttrErrorMessage = "error.message"

	AttrFinishReason = "aircause.finish_reason"
	AttrRetryCount   = "aircause.retry_count"
)

// SetProviderAttributes sets provider-related attributes on a span.
//
// Example:
//
//	SetProviderAttributes(span, "groq", "llama-3.1-8b-instant")
func SetProviderAttributes(span trace.Span, provider, model string) {
	span.SetAttributes(
		attribute.String(AttrProvider, provider),
		attribute.String(AttrModel, model),
	)
}

// SetRequestAttributes tags a span with the request ID, if any.
func SetRequestAttributes(span trace.Span, requestID string) {
	if requestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, requestID))
	}
}

// SetChatAttributes records how a chat question was classified. The district
// name is only set for district questions.
func SetChatAttributes(span trace.Span, kind, district string) {
	attrs := []attribute.KeyValue{attribute.String(AttrChatKind, kind)}
	if district != "" {
		attrs = append(attrs, attribute.String(AttrChatDistrict, district))
	}
	span.SetAttributes(attrs...)
}

// SetFallbackAttribute marks whether the fallback reply was served.
func SetFallbackAttribute(span trace.Span, fallback bool) {
	span.SetAttributes(attribute.Bool(AttrChatFallback, fallback))
}

// SetTokenAttributes sets token count attributes on a span.
//
// Example:
//
//	SetTokenAttributes(span, 120, 48)
func SetTokenAttributes(span trace.Span, promptTokens, completionTokens int) {
	span.SetAttributes(
		attribute.Int(AttrTokensPrompt, promptTokens),
		attribute.Int(AttrTokensCompletion, completionTokens),
		attribute.Int(AttrTokensTotal, promptTokens+completionTokens),
	)
}

// SetFinishReason records the provider's normalized finish reason.
func SetFinishReason(span trace.Span, reason string) {
	if reason != "" {
		span.SetAttributes(attribute.String(AttrFinishReason, reason))
	}
}

// SetRetryAttribute sets the retry count attribute on a span.
func SetRetryAttribute(span trace.Span, retryCount int) {
	span.SetAttributes(attribute.Int(AttrRetryCount, retryCount))
}

// SetErrorAttributes sets error-related attributes on a span.
// This also records the error using span.RecordError() and sets the span status.
//
// Example:
//
//	SetErrorAttributes(span, err, "rate_limit")
func SetErrorAttributes(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}

	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String(AttrErrorType, errorType),
		attribute.String(AttrErrorMessage, err.Error()),
	)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddEvent adds a named event to the span with optional attributes.
//
//	AddEvent(span, "provider_retry", attribute.Int("retry", 1))
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
