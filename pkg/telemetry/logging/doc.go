// Package logging provides structured logging with secret redaction.
//
// The logger wraps log/slog. Records logged with a context pick up the
// request ID, provider, model and trace identifiers stored there, and every
// attribute passes through a Redactor before it is written:
//
//   - Groq keys: gsk_abc123 → gsk_***
//   - Bearer tokens: Bearer abc → Bearer ***
//   - Emails: user@example.com → u***@example.com
//   - IP addresses: 192.168.1.100 → 192.*.*.*
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json", RedactSecrets: true})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Slog())
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	slog.InfoContext(ctx, "chat answered", "kind", "district")
//
// The level can be changed at runtime with SetLevel, which is how
// configuration reloads take effect.
package logging
