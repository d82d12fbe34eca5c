package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultRetryBackoff is the delay before the first retry.
	DefaultRetryBackoff = 500 * time.Millisecond

	// DefaultMaxRetryWait caps Retry-After driven waits.
	DefaultMaxRetryWait = 10 * time.Second

	// unhealthyThreshold is the number of consecutive failures after which a
	// provider is reported unhealthy.
	unhealthyThreshold = 3

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10

	// maxErrorMessage bounds the raw body echoed in error messages.
	maxErrorMessage = 512
)

// HTTPProvider is the base implementation for HTTP-based provider adapters.
// It provides connection pooling, bounded retries, timeout handling and
// health tracking. Concrete adapters embed it.
type HTTPProvider struct {
	config ProviderConfig
	client *http.Client

	health   ProviderHealth
	healthMu sync.RWMutex
}

// NewHTTPProvider creates a new base HTTP provider with connection pooling.
func NewHTTPProvider(config ProviderConfig) *HTTPProvider {
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = DefaultRetryBackoff
	}
	if config.MaxRetryWait <= 0 {
		config.MaxRetryWait = DefaultMaxRetryWait
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	now := time.Now()
	return &HTTPProvider{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		health: ProviderHealth{
			IsHealthy:             true,
			LastCheck:             now,
			LastSuccessfulRequest: now,
		},
	}
}

// GetName returns the provider's configured name.
func (p *HTTPProvider) GetName() string {
	return p.config.Name
}

// GetType returns the provider's type.
func (p *HTTPProvider) GetType() string {
	return p.config.Type
}

// GetConfig returns the provider's configuration.
func (p *HTTPProvider) GetConfig() ProviderConfig {
	return p.config
}

// IsHealthy returns the current health status.
func (p *HTTPProvider) IsHealthy() bool {
	p.healthMu.RLock()
	defer p.healthMu.RUnlock()
	return p.health.IsHealthy
}

// GetHealth returns detailed health information.
func (p *HTTPProvider) GetHealth() ProviderHealth {
	p.healthMu.RLock()
	defer p.healthMu.RUnlock()
	return p.health
}

// updateHealth records the outcome of a request or probe.
func (p *HTTPProvider) updateHealth(success bool, err error) {
	p.healthMu.Lock()
	defer p.healthMu.Unlock()

	p.health.LastCheck = time.Now()

	if success {
		if !p.health.IsHealthy {
			slog.Info("provider marked healthy",
				"provider", p.config.Name,
				"previous_failures", p.health.ConsecutiveFailures,
			)
		}
		p.health.IsHealthy = true
		p.health.ConsecutiveFailures = 0
		p.health.LastError = nil
		p.health.LastSuccessfulRequest = time.Now()
		return
	}

	p.health.ConsecutiveFailures++
	p.health.LastError = err

	if p.health.ConsecutiveFailures >= unhealthyThreshold && p.health.IsHealthy {
		p.health.IsHealthy = false
		slog.Warn("provider marked unhealthy",
			"provider", p.config.Name,
			"consecutive_failures", p.health.ConsecutiveFailures,
			"error", err,
		)
	}
}

func (p *HTTPProvider) recordRequest(success bool) {
	p.healthMu.Lock()
	defer p.healthMu.Unlock()

	p.health.TotalRequests++
	if !success {
		p.health.FailedRequests++
	}
}

// DoRequest performs an HTTP request with bounded retries.
//
// Network errors, per-attempt timeouts, 408, 429 and 5xx responses are
// retried up to MaxRetries times with exponential backoff. Other 4xx
// responses are returned immediately. Cancellation of ctx stops the loop.
func (p *HTTPProvider) DoRequest(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	var lastErr error
	delay := p.config.RetryBackoff

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			slog.DebugContext(ctx, "retrying provider request",
				"provider", p.config.Name,
				"retry", attempt,
				"max_retries", p.config.MaxRetries,
				"backoff", delay,
			)
			if p.config.OnRetry != nil {
				p.config.OnRetry(attempt, lastErr)
			}
			if err := sleepContext(ctx, delay); err != nil {
				return nil, p.contextError(ctx)
			}
			delay *= 2
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}
		if req.Header.Get("Content-Type") == "" && body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := p.client.Do(req)
		if err != nil {
			p.recordRequest(false)

			if ctx.Err() != nil {
				return nil, p.contextError(ctx)
			}

			lastErr = p.transportError(err)
			slog.WarnContext(ctx, "provider request failed",
				"provider", p.config.Name,
				"attempt", attempt+1,
				"error", err,
			)
		} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			p.recordRequest(true)
			p.updateHealth(true, nil)
			return resp, nil
		} else {
			p.recordRequest(false)

			errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			resp.Body.Close()
			message := extractErrorMessage(resp.StatusCode, errorBody)

			retryable := false
			switch {
			case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
				err := &AuthError{Provider: p.config.Name, Message: message}
				p.updateHealth(false, err)
				return nil, err

			case resp.StatusCode == http.StatusTooManyRequests:
				retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
				lastErr = &RateLimitError{
					Provider:   p.config.Name,
					RetryAfter: retryAfter,
					Message:    message,
				}
				retryable = retryAfter <= p.config.MaxRetryWait
				if retryAfter > delay {
					delay = retryAfter
				}

			case resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode >= 500:
				lastErr = &ProviderError{
					Provider:   p.config.Name,
					StatusCode: resp.StatusCode,
					Message:    message,
				}
				retryable = true

			default:
				return nil, &ProviderError{
					Provider:   p.config.Name,
					StatusCode: resp.StatusCode,
					Message:    message,
				}
			}

			if !retryable {
				break
			}

			slog.WarnContext(ctx, "provider returned error status",
				"provider", p.config.Name,
				"status", resp.StatusCode,
				"attempt", attempt+1,
			)
		}

		if attempt >= p.config.MaxRetries {
			break
		}
	}

	p.updateHealth(false, lastErr)
	return nil, lastErr
}

// DoJSONRequest performs a JSON request and decodes the response into respBody.
func (p *HTTPProvider) DoJSONRequest(ctx context.Context, method, url string, reqBody interface{}, respBody interface{}, headers map[string]string) error {
	var bodyBytes []byte
	if reqBody != nil {
		var err error
		bodyBytes, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := p.DoRequest(ctx, method, url, bodyBytes, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return p.contextError(ctx)
		}
		return &ParseError{
			Provider: p.config.Name,
			Cause:    fmt.Errorf("failed to read response: %w", err),
		}
	}

	if respBody != nil {
		if err := json.Unmarshal(responseBytes, respBody); err != nil {
			return &ParseError{
				Provider:    p.config.Name,
				RawResponse: truncate(string(responseBytes), maxErrorMessage),
				Cause:       fmt.Errorf("failed to unmarshal response: %w", err),
			}
		}
	}

	return nil
}

// Probe issues an authenticated GET against path relative to the base URL
// and records the outcome in the provider's health.
func (p *HTTPProvider) Probe(ctx context.Context, path string) error {
	resp, err := p.DoRequest(ctx, http.MethodGet, p.config.BaseURL+path, nil, p.AuthHeaders())
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// AuthHeaders returns the bearer authorization header, or none when no key
// is configured.
func (p *HTTPProvider) AuthHeaders() map[string]string {
	headers := make(map[string]string, 1)
	if p.config.APIKey != "" {
		headers["Authorization"] = "Bearer " + p.config.APIKey
	}
	return headers
}

// Close releases idle connections.
func (p *HTTPProvider) Close() error {
	p.client.CloseIdleConnections()
	slog.Debug("provider closed", "provider", p.config.Name)
	return nil
}

func (p *HTTPProvider) contextError(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{
			Provider: p.config.Name,
			Timeout:  p.config.Timeout,
			Cause:    err,
		}
	}
	return fmt.Errorf("provider %q request cancelled: %w", p.config.Name, err)
}

func (p *HTTPProvider) transportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{
			Provider: p.config.Name,
			Timeout:  p.config.Timeout,
			Cause:    err,
		}
	}
	return &ProviderError{
		Provider: p.config.Name,
		Message:  err.Error(),
		Cause:    err,
	}
}

// extractErrorMessage pulls a human-readable message out of an
// OpenAI-compatible error body, falling back to the raw body or status text.
func extractErrorMessage(status int, body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &flat); err == nil {
		if flat.Message != "" {
			return flat.Message
		}
		if flat.Error != "" {
			return flat.Error
		}
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		return truncate(msg, maxErrorMessage)
	}
	return http.StatusText(status)
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
