package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aircause/backend/pkg/telemetry/logging"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var ctxID string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", nil))

	headerID := rec.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if _, err := uuid.Parse(headerID); err != nil {
		t.Errorf("expected a UUID, got %q: %v", headerID, err)
	}
	if ctxID != headerID {
		t.Errorf("context ID %q does not match header %q", ctxID, headerID)
	}
	if logging.GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()) != "" {
		t.Error("fresh context must not carry a request ID")
	}
}

func TestRequestIDMiddleware_UniquePerRequest(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get("X-Request-ID")
		if seen[id] {
			t.Fatalf("duplicate request ID %q", id)
		}
		seen[id] = true
	}
}

func TestRequestIDMiddleware_ClientSuppliedID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		reused bool
	}{
		{"valid id", "frontend-123", true},
		{"uuid", "0b8f2a6e-9d3c-4c1e-8f1a-2b3c4d5e6f70", true},
		{"contains space", "bad id", false},
		{"contains newline", "bad\nid", false},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"max length", strings.Repeat("a", maxRequestIDLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequestIDMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get("X-Request-ID")
			if tt.reused && got != tt.header {
				t.Errorf("expected client ID to be reused, got %q", got)
			}
			if !tt.reused && got == tt.header {
				t.Errorf("expected invalid client ID to be replaced")
			}
		})
	}
}
