package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"aircause/backend/pkg/config"
)

func newTestLogger(t *testing.T, cfg Config) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cfg.Writer = buf
	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return logger, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "json", config: Config{Level: "info", Format: "json", RedactSecrets: true}},
		{name: "text", config: Config{Level: "debug", Format: "text"}},
		{name: "console alias", config: Config{Level: "warn", Format: "console"}},
		{name: "defaults", config: Config{}},
		{name: "invalid level", config: Config{Level: "verbose"}, wantErr: true},
		{name: "invalid format", config: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "warn", Format: "json"})

	logger.Debug("debug")
	logger.Info("info")
	if buf.Len() != 0 {
		t.Errorf("expected debug and info to be filtered, got %q", buf.String())
	}

	logger.Warn("warn")
	if !strings.Contains(buf.String(), `"msg":"warn"`) {
		t.Errorf("expected warn to be written, got %q", buf.String())
	}
}

func TestLogger_SetLevel(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "json"})

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}

	if err := logger.SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel() error = %v", err)
	}
	if logger.Level() != slog.LevelDebug {
		t.Errorf("expected level debug, got %v", logger.Level())
	}

	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug output after SetLevel, got %q", buf.String())
	}

	if err := logger.SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if logger.Level() != slog.LevelDebug {
		t.Error("invalid SetLevel must not change the level")
	}
}

func TestLogger_SetLevelAffectsDerived(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "error", Format: "json"})
	child := logger.With("component", "handler")

	child.Info("before")
	_ = logger.SetLevel("info")
	child.Info("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Error("expected first message to be filtered")
	}
	if !strings.Contains(out, "after") || !strings.Contains(out, `"component":"handler"`) {
		t.Errorf("expected derived logger to follow level change, got %q", out)
	}
}

func TestLogger_ContextFields(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "json"})

	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithProvider(ctx, "groq")
	logger.InfoContext(ctx, "chat answered", "kind", "district")

	entry := decodeLine(t, buf)
	if entry["request_id"] != "req-42" {
		t.Errorf("expected request_id req-42, got %v", entry["request_id"])
	}
	if entry["provider"] != "groq" {
		t.Errorf("expected provider groq, got %v", entry["provider"])
	}
	if entry["kind"] != "district" {
		t.Errorf("expected kind district, got %v", entry["kind"])
	}
}

func TestLogger_DefaultSlogUsesContext(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "json"})

	ctx := WithRequestID(context.Background(), "req-7")
	logger.Slog().InfoContext(ctx, "via slog")

	entry := decodeLine(t, buf)
	if entry["request_id"] != "req-7" {
		t.Errorf("expected request_id from context, got %v", entry["request_id"])
	}
}

func TestLogger_Redaction(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		logger, buf := newTestLogger(t, Config{Level: "info", Format: "json", RedactSecrets: true})

		logger.Info("calling provider",
			"api_key", "gsk_abcdef123456",
			"header", "Bearer gsk_abcdef123456",
			"error", errors.New("rejected key gsk_abcdef123456"),
			"prompt_tokens", 12,
		)

		out := buf.String()
		if strings.Contains(out, "abcdef123456") {
			t.Errorf("expected key to be redacted, got %q", out)
		}
		entry := decodeLine(t, buf)
		if entry["api_key"] != "gsk_***" {
			t.Errorf("expected api_key prefix only, got %v", entry["api_key"])
		}
		if entry["prompt_tokens"] != float64(12) {
			t.Errorf("token counts must not be redacted, got %v", entry["prompt_tokens"])
		}
	})

	t.Run("disabled", func(t *testing.T) {
		logger, buf := newTestLogger(t, Config{Level: "info", Format: "json"})

		logger.Info("raw", "api_key", "gsk_abcdef123456")
		if !strings.Contains(buf.String(), "gsk_abcdef123456") {
			t.Errorf("expected raw value when redaction is off, got %q", buf.String())
		}
	})

	t.Run("with attrs", func(t *testing.T) {
		logger, buf := newTestLogger(t, Config{Level: "info", Format: "json", RedactSecrets: true})

		logger.With("authorization", "Bearer xyz").Info("msg")
		if strings.Contains(buf.String(), "xyz") {
			t.Errorf("expected With attrs to be redacted, got %q", buf.String())
		}
	})
}

func TestLogger_TextFormat(t *testing.T) {
	logger, buf := newTestLogger(t, Config{Level: "info", Format: "text"})

	logger.Info("backend running", "port", "3002")
	out := buf.String()
	if !strings.Contains(out, `msg="backend running"`) || !strings.Contains(out, "port=3002") {
		t.Errorf("unexpected text output %q", out)
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := config.LoggingConfig{
		Level:         "debug",
		Format:        "text",
		AddSource:     true,
		RedactSecrets: true,
		RedactPatterns: []config.RedactPattern{
			{Name: "district_code", Pattern: `DL-\d+`, Replacement: "DL-***"},
		},
	}

	buf := &bytes.Buffer{}
	lc := ConfigFrom(cfg, buf)
	if lc.Level != "debug" || lc.Format != "text" || !lc.AddSource || !lc.RedactSecrets {
		t.Errorf("fields not carried over: %+v", lc)
	}
	if len(lc.RedactPatterns) != 1 || lc.Writer != buf {
		t.Errorf("patterns or writer not carried over: %+v", lc)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Error("expected error for unknown level")
	}
}
