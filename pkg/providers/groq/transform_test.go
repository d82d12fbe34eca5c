package groq

import (
	"testing"

	"aircause/backend/pkg/providers"
)

func TestTransformRequest(t *testing.T) {
	req := &providers.CompletionRequest{
		Model: "llama-3.1-8b-instant",
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: "sys"},
			{Role: providers.RoleUser, Content: "hi"},
		},
		Temperature: 0,
		MaxTokens:   350,
	}

	out := transformRequest(req)
	if out.N != 1 {
		t.Errorf("expected n=1, got %d", out.N)
	}
	if out.Temperature != 0 {
		t.Errorf("expected temperature 0, got %v", out.Temperature)
	}
	if len(out.Messages) != 2 || out.Messages[1].Content != "hi" {
		t.Errorf("messages not copied: %+v", out.Messages)
	}
}

func TestNormalizeFinishReason(t *testing.T) {
	tests := map[string]string{
		"stop":           providers.FinishReasonStop,
		"eos":            providers.FinishReasonStop,
		"length":         providers.FinishReasonLength,
		"content_filter": "content_filter",
		"":               "",
	}
	for in, want := range tests {
		if got := normalizeFinishReason(in); got != want {
			t.Errorf("normalizeFinishReason(%q) = %q, want %q", in, got, want)
		}
	}
}
