package tracing

import (
	"context"
	"testing"

	"aircause/backend/pkg/config"

	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		ratio    float64
		wantErr  bool
	}{
		{"always", SamplerAlways, 0, false},
		{"never", SamplerNever, 0, false},
		{"ratio zero", SamplerRatio, 0, false},
		{"ratio half", SamplerRatio, 0.5, false},
		{"ratio one", SamplerRatio, 1, false},
		{"ratio negative", SamplerRatio, -0.1, true},
		{"ratio above one", SamplerRatio, 1.5, true},
		{"unknown strategy", "sometimes", 0.5, true},
		{"empty strategy", "", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := createSampler(tt.strategy, tt.ratio)
			if tt.wantErr {
				if err == nil {
					t.Errorf("createSampler(%q, %v) expected error", tt.strategy, tt.ratio)
				}
				return
			}
			if err != nil {
				t.Fatalf("createSampler(%q, %v) error = %v", tt.strategy, tt.ratio, err)
			}
			if sampler == nil {
				t.Error("expected non-nil sampler")
			}
		})
	}
}

func TestSampler_Decisions(t *testing.T) {
	tests := []struct {
		name     string
		sampler  string
		ratio    float64
		recorded int
	}{
		{"always records", SamplerAlways, 0, 1},
		{"never drops", SamplerNever, 0, 0},
		{"full ratio records", SamplerRatio, 1, 1},
		{"zero ratio drops", SamplerRatio, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := tracetest.NewInMemoryExporter()
			cfg := &config.TracingConfig{
				Enabled:     true,
				Sampler:     tt.sampler,
				SampleRatio: tt.ratio,
				ServiceName: "aircause-test",
			}
			tracer, err := NewWithExporter(cfg, "test", exporter)
			if err != nil {
				t.Fatalf("NewWithExporter() error = %v", err)
			}

			_, span := tracer.Start(context.Background(), "chat.answer")
			span.End()

			if got := len(exporter.GetSpans()); got != tt.recorded {
				t.Errorf("recorded %d spans, want %d", got, tt.recorded)
			}
			if err := tracer.Shutdown(context.Background()); err != nil {
				t.Errorf("Shutdown() error = %v", err)
			}
		})
	}
}
