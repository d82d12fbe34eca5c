package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"aircause/backend/pkg/chat"
	"aircause/backend/pkg/config"
	"aircause/backend/pkg/providers"
	"aircause/backend/pkg/proxy"
	"aircause/backend/pkg/telemetry/metrics"
	"aircause/backend/pkg/telemetry/tracing"
)

// kindUnknown labels requests rejected before classification.
const kindUnknown = "unknown"

// ChatOptions configures a ChatHandler.
type ChatOptions struct {
	// Model, Temperature and MaxTokens are sent with every completion.
	Model       string
	Temperature float64
	MaxTokens   int

	// FallbackReply is returned with 200 when the model produces no content.
	FallbackReply string

	// MaxBodyBytes bounds the request body.
	MaxBodyBytes int64

	// Metrics and Tracer are optional.
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
}

// ChatOptionsFromConfig builds handler options from the loaded configuration.
func ChatOptionsFromConfig(cfg *config.Config) ChatOptions {
	return ChatOptions{
		Model:         cfg.Provider.Model,
		Temperature:   cfg.Provider.Temperature,
		MaxTokens:     cfg.Provider.MaxTokens,
		FallbackReply: cfg.Assistant.FallbackReply,
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
	}
}

// ChatHandler serves POST /api/chat. It holds no per-request state and is
// safe for concurrent use.
type ChatHandler struct {
	provider providers.Provider
	prompts  *chat.Builder
	opts     ChatOptions
}

// NewChatHandler creates a chat handler that answers through provider using
// the prompts rendered by prompts.
func NewChatHandler(provider providers.Provider, prompts *chat.Builder, opts ChatOptions) *ChatHandler {
	if opts.FallbackReply == "" {
		opts.FallbackReply = config.DefaultFallbackReply
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = proxy.DefaultMaxBodyBytes
	}
	if prompts == nil {
		prompts = chat.NewBuilder("")
	}
	return &ChatHandler{provider: provider, prompts: prompts, opts: opts}
}

// ServeHTTP implements http.Handler.
//
// A greeting, a district question or a generic question is turned into a
// system and user message and sent to the provider once; retries happen
// inside the provider client. The first choice's text is returned as
// {"reply": ...}. Empty model output yields the fallback reply.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := h.opts.Tracer.Start(r.Context(), "chat.answer")
	defer span.End()

	req, err := proxy.ParseChatRequest(r, h.opts.MaxBodyBytes)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		status, body := proxy.HandleError(err)
		outcome := metrics.OutcomeError
		if status == http.StatusBadRequest {
			outcome = metrics.OutcomeBadRequest
			slog.WarnContext(ctx, "invalid chat request", "error", err)
		} else {
			slog.ErrorContext(ctx, "failed to read chat request", "error", err)
		}
		tracing.SetErrorAttributes(span, err, outcome)
		h.opts.Metrics.RecordChat(kindUnknown, outcome, time.Since(start))
		h.write(w, r, status, body)
		return
	}

	pair := h.prompts.Build(req)
	kind := pair.Kind.String()

	district := ""
	if pair.Kind == chat.KindDistrict && !req.District.Name.IsZero() {
		district = req.District.NameText()
	}
	tracing.SetChatAttributes(span, kind, district)
	tracing.SetProviderAttributes(span, h.provider.GetName(), h.opts.Model)

	completionReq := &providers.CompletionRequest{
		Model: h.opts.Model,
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: pair.SystemInstruction},
			{Role: providers.RoleUser, Content: pair.UserPrompt},
		},
		Temperature: h.opts.Temperature,
		MaxTokens:   h.opts.MaxTokens,
	}

	providerStart := time.Now()
	resp, err := h.provider.SendCompletion(ctx, completionReq)
	providerLatency := time.Since(providerStart)
	h.opts.Metrics.RecordProviderCall(h.provider.GetName(), h.opts.Model, providerLatency, err)

	if err != nil {
		slog.ErrorContext(ctx, "chat completion failed",
			"kind", kind,
			"provider", h.provider.GetName(),
			"model", h.opts.Model,
			"provider_latency_ms", providerLatency.Milliseconds(),
			"error", err,
		)
		tracing.SetErrorAttributes(span, err, metrics.ErrorType(err))
		h.opts.Metrics.RecordChat(kind, metrics.OutcomeError, time.Since(start))

		status, body := proxy.HandleError(err)
		h.write(w, r, status, body)
		return
	}

	h.opts.Metrics.RecordTokens(h.provider.GetName(), h.opts.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	tracing.SetTokenAttributes(span, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	tracing.SetFinishReason(span, resp.FinishReason)

	reply := resp.Content
	outcome := metrics.OutcomeAnswered
	if reply == "" {
		reply = h.opts.FallbackReply
		outcome = metrics.OutcomeFallback
		slog.WarnContext(ctx, "model returned no content, using fallback reply",
			"kind", kind,
			"finish_reason", resp.FinishReason,
		)
	}
	tracing.SetFallbackAttribute(span, outcome == metrics.OutcomeFallback)
	h.opts.Metrics.RecordChat(kind, outcome, time.Since(start))

	slog.InfoContext(ctx, "chat answered",
		"kind", kind,
		"provider", h.provider.GetName(),
		"model", h.opts.Model,
		"finish_reason", resp.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"provider_latency_ms", providerLatency.Milliseconds(),
		"total_latency_ms", time.Since(start).Milliseconds(),
	)

	h.write(w, r, http.StatusOK, proxy.ChatResponse{Reply: reply})
}

func (h *ChatHandler) write(w http.ResponseWriter, r *http.Request, status int, body any) {
	if err := proxy.WriteJSONResponse(w, status, body); err != nil {
		slog.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}
