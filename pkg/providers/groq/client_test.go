package groq

import (
	"context"
	"net/http"
	"testing"
	"time"

	testhelpers "aircause/backend/internal/providers"
	"aircause/backend/pkg/providers"
)

const testModel = "llama-3.1-8b-instant"

func newTestProvider(t *testing.T, mock *testhelpers.MockServer) *Provider {
	t.Helper()
	provider, err := NewProvider(testhelpers.TestConfigWithURL("groq", ProviderType, mock.URL()))
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Close() })
	return provider
}

func TestGroqProvider_SendCompletion(t *testing.T) {
	mock := testhelpers.NewMockServer()
	defer mock.Close()

	mock.SetResponse("/chat/completions", testhelpers.MockOK(testhelpers.MockChatResponse("Hello, world!", testModel)))

	provider := newTestProvider(t, mock)

	req := testhelpers.TestCompletionRequest(testModel, "be brief", "hello")
	resp, err := provider.SendCompletion(context.Background(), req)
	if err != nil {
		t.Fatalf("SendCompletion failed: %v", err)
	}

	if resp.Content != "Hello, world!" {
		t.Errorf("expected content %q, got %q", "Hello, world!", resp.Content)
	}
	if resp.Model != testModel {
		t.Errorf("expected model %s, got %s", testModel, resp.Model)
	}
	if resp.Usage.TotalTokens != 30 {
		t.Errorf("expected total tokens 30, got %d", resp.Usage.TotalTokens)
	}
	if resp.FinishReason != providers.FinishReasonStop {
		t.Errorf("expected finish reason %q, got %q", providers.FinishReasonStop, resp.FinishReason)
	}

	recorded, ok := mock.LastRequest()
	if !ok {
		t.Fatal("expected a recorded request")
	}
	if recorded.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", recorded.Method)
	}
	if got := recorded.Header.Get("Authorization"); got != "Bearer gsk_test" {
		t.Errorf("expected bearer auth header, got %q", got)
	}
	if got := recorded.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON content type, got %q", got)
	}

	var body ChatRequest
	if err := recorded.Decode(&body); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	if body.Model != testModel {
		t.Errorf("expected model %s in body, got %s", testModel, body.Model)
	}
	if body.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %v", body.Temperature)
	}
	if body.MaxTokens != 350 {
		t.Errorf("expected max_tokens 350, got %d", body.MaxTokens)
	}
	if len(body.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(body.Messages))
	}
	if body.Messages[0].Role != providers.RoleSystem || body.Messages[0].Content != "be brief" {
		t.Errorf("unexpected system message: %+v", body.Messages[0])
	}
	if body.Messages[1].Role != providers.RoleUser || body.Messages[1].Content != "hello" {
		t.Errorf("unexpected user message: %+v", body.Messages[1])
	}
}

func TestGroqProvider_EmptyAnswers(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "no choices",
			body: testhelpers.MockEmptyChoicesResponse(testModel),
		},
		{
			name: "null content",
			body: `{"id":"x","model":"llama-3.1-8b-instant","choices":[{"index":0,"message":{"role":"assistant","content":null},"finish_reason":"stop"}]}`,
		},
		{
			name: "empty content",
			body: testhelpers.MockChatResponse("", testModel),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testhelpers.NewMockServer()
			defer mock.Close()
			mock.SetResponse("/chat/completions", testhelpers.MockOK(tt.body))

			provider := newTestProvider(t, mock)
			resp, err := provider.SendCompletion(context.Background(), testhelpers.TestCompletionRequest(testModel, "s", "u"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.Content != "" {
				t.Errorf("expected empty content, got %q", resp.Content)
			}
		})
	}
}

func TestGroqProvider_Errors(t *testing.T) {
	t.Run("auth error is not retried", func(t *testing.T) {
		mock := testhelpers.NewMockServer()
		defer mock.Close()
		mock.SetResponse("/chat/completions", testhelpers.MockAuthError())

		provider := newTestProvider(t, mock)
		_, err := provider.SendCompletion(context.Background(), testhelpers.TestCompletionRequest(testModel, "s", "u"))

		var authErr *providers.AuthError
		testhelpers.AssertErrorAs(t, err, &authErr)
		if authErr.Message != "Invalid API Key" {
			t.Errorf("expected provider message, got %q", authErr.Message)
		}
		if mock.GetRequestCount() != 1 {
			t.Errorf("expected 1 request, got %d", mock.GetRequestCount())
		}
	})

	t.Run("server error is retried once", func(t *testing.T) {
		mock := testhelpers.NewMockServer()
		defer mock.Close()
		mock.QueueResponses("/chat/completions",
			testhelpers.MockServerError(),
			testhelpers.MockOK(testhelpers.MockChatResponse("recovered", testModel)),
		)

		provider := newTestProvider(t, mock)
		resp, err := provider.SendCompletion(context.Background(), testhelpers.TestCompletionRequest(testModel, "s", "u"))
		if err != nil {
			t.Fatalf("expected success after retry, got %v", err)
		}
		if resp.Content != "recovered" {
			t.Errorf("expected recovered content, got %q", resp.Content)
		}
		if mock.GetRequestCount() != 2 {
			t.Errorf("expected 2 requests, got %d", mock.GetRequestCount())
		}
	})

	t.Run("persistent server error", func(t *testing.T) {
		mock := testhelpers.NewMockServer()
		defer mock.Close()
		mock.SetResponse("/chat/completions", testhelpers.MockServerError())

		provider := newTestProvider(t, mock)
		_, err := provider.SendCompletion(context.Background(), testhelpers.TestCompletionRequest(testModel, "s", "u"))

		var provErr *providers.ProviderError
		testhelpers.AssertErrorAs(t, err, &provErr)
		if provErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", provErr.StatusCode)
		}
		if mock.GetRequestCount() != 2 {
			t.Errorf("expected 2 requests, got %d", mock.GetRequestCount())
		}
	})

	t.Run("bad request", func(t *testing.T) {
		mock := testhelpers.NewMockServer()
		defer mock.Close()
		mock.SetResponse("/chat/completions", testhelpers.MockErrorResponse(http.StatusBadRequest, "model not found"))

		provider := newTestProvider(t, mock)
		_, err := provider.SendCompletion(context.Background(), testhelpers.TestCompletionRequest(testModel, "s", "u"))

		var provErr *providers.ProviderError
		testhelpers.AssertErrorAs(t, err, &provErr)
		if provErr.Message != "model not found" {
			t.Errorf("expected extracted message, got %q", provErr.Message)
		}
		if mock.GetRequestCount() != 1 {
			t.Errorf("expected 1 request, got %d", mock.GetRequestCount())
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		mock := testhelpers.NewMockServer()
		defer mock.Close()
		mock.SetResponse("/chat/completions", testhelpers.MockOK("not json"))

		provider := newTestProvider(t, mock)
		_, err := provider.SendCompletion(context.Background(), testhelpers.TestCompletionRequest(testModel, "s", "u"))

		var parseErr *providers.ParseError
		testhelpers.AssertErrorAs(t, err, &parseErr)
	})

	t.Run("timeout", func(t *testing.T) {
		mock := testhelpers.NewMockServer()
		defer mock.Close()
		mock.SetResponse("/chat/completions", testhelpers.MockSlowResponse(2*time.Second))

		config := testhelpers.TestConfigWithURL("groq", ProviderType, mock.URL())
		config.Timeout = 50 * time.Millisecond
		config.MaxRetries = 0
		provider, err := NewProvider(config)
		if err != nil {
			t.Fatalf("failed to create provider: %v", err)
		}
		defer provider.Close()

		_, err = provider.SendCompletion(context.Background(), testhelpers.TestCompletionRequest(testModel, "s", "u"))

		var timeoutErr *providers.TimeoutError
		testhelpers.AssertErrorAs(t, err, &timeoutErr)
	})
}

func TestGroqProvider_NoAPIKey(t *testing.T) {
	mock := testhelpers.NewMockServer()
	defer mock.Close()
	mock.SetResponse("/chat/completions", testhelpers.MockAuthError())

	config := testhelpers.TestConfigWithURL("groq", ProviderType, mock.URL())
	config.APIKey = ""
	provider, err := NewProvider(config)
	if err != nil {
		t.Fatalf("empty API key must not fail construction: %v", err)
	}
	defer provider.Close()

	_, err = provider.SendCompletion(context.Background(), testhelpers.TestCompletionRequest(testModel, "s", "u"))

	var authErr *providers.AuthError
	testhelpers.AssertErrorAs(t, err, &authErr)

	recorded, _ := mock.LastRequest()
	if got := recorded.Header.Get("Authorization"); got != "" {
		t.Errorf("expected no Authorization header, got %q", got)
	}
}

func TestGroqProvider_HealthCheck(t *testing.T) {
	mock := testhelpers.NewMockServer()
	defer mock.Close()
	mock.SetResponse("/models", testhelpers.MockOK(testhelpers.MockModelsResponse(testModel)))

	provider := newTestProvider(t, mock)
	if err := provider.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected healthy provider, got %v", err)
	}

	recorded, _ := mock.LastRequest()
	if recorded.Method != http.MethodGet || recorded.Path != "/models" {
		t.Errorf("expected GET /models, got %s %s", recorded.Method, recorded.Path)
	}
}

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(providers.ProviderConfig{})

	var cfgErr *providers.ConfigError
	testhelpers.AssertErrorAs(t, err, &cfgErr)
	if cfgErr.Field != "name" {
		t.Errorf("expected name field error, got %q", cfgErr.Field)
	}

	p, err := NewProvider(providers.ProviderConfig{Name: "groq"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer p.Close()
	if p.GetConfig().BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %s", p.GetConfig().BaseURL)
	}
	if p.GetType() != ProviderType {
		t.Errorf("expected type %s, got %s", ProviderType, p.GetType())
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name  string
		req   *providers.CompletionRequest
		field string
	}{
		{"nil request", nil, "request"},
		{"missing model", &providers.CompletionRequest{Messages: []providers.Message{{Role: "user", Content: "x"}}}, "model"},
		{"no messages", &providers.CompletionRequest{Model: testModel}, "messages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			var valErr *providers.ValidationError
			testhelpers.AssertErrorAs(t, err, &valErr)
			if valErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, valErr.Field)
			}
		})
	}
}
