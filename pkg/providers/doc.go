// Package providers defines the provider-agnostic completion interface and
// the shared HTTP plumbing used by provider adapters.
//
// HTTPProvider supplies connection pooling, a bounded retry loop and health
// tracking. Adapters such as groq embed it and only translate request and
// response formats.
//
// # Retries
//
// Network errors, per-attempt timeouts, 408, 429 and 5xx responses are
// retried up to ProviderConfig.MaxRetries times with doubling backoff. A 429
// whose Retry-After exceeds MaxRetryWait is returned immediately. 401 and 403
// map to AuthError and are never retried.
//
// # Error Types
//
// Failures are reported as typed errors and should be matched with errors.As:
//
//	var authErr *providers.AuthError
//	if errors.As(err, &authErr) {
//	    // bad or missing GROQ_API_KEY
//	}
//
// # Probing
//
// Prober runs HealthCheck on a cron schedule and exposes the last result in
// the shape of a readiness check.
package providers
