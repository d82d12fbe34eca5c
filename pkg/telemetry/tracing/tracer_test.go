package tracing

import (
	"context"
	"errors"
	"testing"

	"aircause/backend/pkg/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func newTestTracer(t *testing.T) (*Tracer, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := NewWithExporter(&config.TracingConfig{
		Enabled:     true,
		Sampler:     SamplerAlways,
		ServiceName: "aircause-test",
	}, "1.2.3", exporter)
	if err != nil {
		t.Fatalf("NewWithExporter() error = %v", err)
	}
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })
	return tracer, exporter
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestNew(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		if _, err := New(nil, "dev"); err == nil {
			t.Error("expected error for nil config")
		}
	})

	t.Run("disabled returns noop tracer", func(t *testing.T) {
		tracer, err := New(&config.TracingConfig{Enabled: false}, "dev")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if tracer.Enabled() {
			t.Error("disabled tracer reports Enabled")
		}

		ctx, span := tracer.Start(context.Background(), "noop")
		span.End()
		if span.SpanContext().IsValid() {
			t.Error("noop span has a valid span context")
		}
		if id := TraceID(ctx); id != "" {
			t.Errorf("TraceID = %q, want empty", id)
		}
		if err := tracer.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	})

	t.Run("invalid sampler", func(t *testing.T) {
		_, err := NewWithExporter(&config.TracingConfig{
			Enabled: true,
			Sampler: "sometimes",
		}, "dev", tracetest.NewInMemoryExporter())
		if err == nil {
			t.Error("expected error for unknown sampler")
		}
	})
}

func TestNilTracer(t *testing.T) {
	var tracer *Tracer
	ctx, span := tracer.Start(context.Background(), "nil")
	span.End()
	if ctx == nil {
		t.Error("expected non-nil context")
	}
	if tracer.Enabled() {
		t.Error("nil tracer reports Enabled")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestTracer_Start(t *testing.T) {
	tracer, exporter := newTestTracer(t)
	if !tracer.Enabled() {
		t.Fatal("expected tracer to be enabled")
	}

	ctx, parent := tracer.Start(context.Background(), "http.request")
	_, child := tracer.Start(ctx, "chat.answer")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name != "chat.answer" || spans[1].Name != "http.request" {
		t.Errorf("span names = %q, %q", spans[0].Name, spans[1].Name)
	}
	if spans[0].SpanContext.TraceID() != spans[1].SpanContext.TraceID() {
		t.Error("child span is not in the parent's trace")
	}
	if spans[0].Parent.SpanID() != spans[1].SpanContext.SpanID() {
		t.Error("child span parent does not match")
	}

	res := attrMap(spans[0].Resource.Attributes())
	if got := res[semconv.ServiceNameKey].AsString(); got != "aircause-test" {
		t.Errorf("service.name = %q", got)
	}
	if got := res[semconv.ServiceVersionKey].AsString(); got != "1.2.3" {
		t.Errorf("service.version = %q", got)
	}
	if got := spans[0].InstrumentationScope.Name; got != InstrumentationName {
		t.Errorf("instrumentation scope = %q, want %q", got, InstrumentationName)
	}
}

func TestTraceIDAndSpanID(t *testing.T) {
	tracer, _ := newTestTracer(t)

	if TraceID(context.Background()) != "" || SpanID(context.Background()) != "" {
		t.Error("expected empty IDs without a span")
	}

	ctx, span := tracer.Start(context.Background(), "ids")
	defer span.End()

	if got := TraceID(ctx); len(got) != 32 {
		t.Errorf("TraceID = %q, want 32 hex chars", got)
	}
	if got := SpanID(ctx); len(got) != 16 {
		t.Errorf("SpanID = %q, want 16 hex chars", got)
	}
	if TraceID(ctx) != span.SpanContext().TraceID().String() {
		t.Error("TraceID does not match the span")
	}
	if SpanFromContext(ctx) != span {
		t.Error("SpanFromContext did not return the active span")
	}
}

func TestSetError(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.Start(context.Background(), "ok")
	SetError(span, nil)
	span.End()

	_, span = tracer.Start(context.Background(), "failed")
	SetError(span, errors.New("groq unavailable"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Unset {
		t.Errorf("nil error set status %v", spans[0].Status.Code)
	}

	failed := spans[1]
	if failed.Status.Code != codes.Error || failed.Status.Description != "groq unavailable" {
		t.Errorf("status = %v %q", failed.Status.Code, failed.Status.Description)
	}
	if len(failed.Events) != 1 || failed.Events[0].Name != "exception" {
		t.Errorf("events = %v, want one exception event", failed.Events)
	}
	if got := attrMap(failed.Attributes)[AttrErrorMessage].AsString(); got != "groq unavailable" {
		t.Errorf("%s = %q", AttrErrorMessage, got)
	}
}

func TestSetStatus(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.Start(context.Background(), "ok")
	SetStatus(span, nil)
	span.End()

	_, span = tracer.Start(context.Background(), "failed")
	SetStatus(span, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Ok {
		t.Errorf("ok span status = %v", spans[0].Status.Code)
	}
	if spans[1].Status.Code != codes.Error {
		t.Errorf("failed span status = %v", spans[1].Status.Code)
	}
}

func TestAttributes(t *testing.T) {
	tracer, exporter := newTestTracer(t)

	_, span := tracer.Start(context.Background(), "chat.answer")
	SetProviderAttributes(span, "groq", "llama-3.1-8b-instant")
	SetRequestAttributes(span, "req-1")
	SetChatAttributes(span, "district", "Delhi")
	SetFallbackAttribute(span, false)
	SetTokenAttributes(span, 120, 48)
	SetFinishReason(span, "stop")
	SetRetryAttribute(span, 1)
	AddEvent(span, "provider_retry", attribute.Int("retry", 1))
	span.End()

	_, span = tracer.Start(context.Background(), "chat.answer")
	SetChatAttributes(span, "greeting", "")
	SetRequestAttributes(span, "")
	SetFinishReason(span, "")
	SetErrorAttributes(span, errors.New("rate limited"), "rate_limit")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	first := attrMap(spans[0].Attributes)
	strs := map[attribute.Key]string{
		AttrProvider:     "groq",
		AttrModel:        "llama-3.1-8b-instant",
		AttrRequestID:    "req-1",
		AttrChatKind:     "district",
		AttrChatDistrict: "Delhi",
		AttrFinishReason: "stop",
	}
	for key, want := range strs {
		if got := first[key].AsString(); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if first[AttrChatFallback].AsBool() {
		t.Errorf("%s = true, want false", AttrChatFallback)
	}
	if got := first[AttrTokensTotal].AsInt64(); got != 168 {
		t.Errorf("%s = %d, want 168", AttrTokensTotal, got)
	}
	if got := first[AttrRetryCount].AsInt64(); got != 1 {
		t.Errorf("%s = %d, want 1", AttrRetryCount, got)
	}
	if len(spans[0].Events) != 1 || spans[0].Events[0].Name != "provider_retry" {
		t.Errorf("events = %v, want one provider_retry event", spans[0].Events)
	}

	second := attrMap(spans[1].Attributes)
	if got := second[AttrChatKind].AsString(); got != "greeting" {
		t.Errorf("%s = %q, want greeting", AttrChatKind, got)
	}
	for _, key := range []attribute.Key{AttrChatDistrict, AttrRequestID, AttrFinishReason} {
		if _, found := second[key]; found {
			t.Errorf("empty value should not set %s", key)
		}
	}
	if got := second[AttrErrorType].AsString(); got != "rate_limit" {
		t.Errorf("%s = %q, want rate_limit", AttrErrorType, got)
	}
	if spans[1].Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[1].Status.Code)
	}
}
