package logging

import (
	"log/slog"
	"regexp"
	"strings"

	"aircause/backend/pkg/config"
)

// Redactor masks credentials and personal data in log fields.
type Redactor struct {
	patterns []*redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
	replaceFunc func(string) string
}

// Built-in pattern names.
const (
	PatternGroqKey     = "groq_key"
	PatternAPIKey      = "api_key"
	PatternBearerToken = "bearer_token"
	PatternEmail       = "email"
	PatternIPv4        = "ipv4"
	PatternPassword    = "password"
)

// NewRedactor creates a Redactor with the built-in patterns followed by
// customPatterns. Custom patterns that fail to compile are skipped.
func NewRedactor(customPatterns []config.RedactPattern) *Redactor {
	r := &Redactor{}
	r.addDefaultPatterns()

	for _, p := range customPatterns {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}

	return r
}

// Order matters: bearer tokens are masked before the bare key patterns see them.
func (r *Redactor) addDefaultPatterns() {
	r.patterns = append(r.patterns,
		&redactPattern{
			name:        PatternBearerToken,
			regex:       regexp.MustCompile(`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
			replacement: "Bearer ***",
		},
		&redactPattern{
			name:        PatternGroqKey,
			regex:       regexp.MustCompile(`gsk_[a-zA-Z0-9]+`),
			replacement: "gsk_***",
		},
		&redactPattern{
			name:        PatternAPIKey,
			regex:       regexp.MustCompile(`(sk-[a-zA-Z0-9]+|api[-_]?key[-_:=]\s*[a-zA-Z0-9]+)`),
			replacement: "sk-***",
		},
		&redactPattern{
			name:        PatternEmail,
			regex:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
			replaceFunc: RedactEmail,
		},
		&redactPattern{
			name:        PatternIPv4,
			regex:       regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			replaceFunc: RedactIPv4,
		},
		&redactPattern{
			name:        PatternPassword,
			regex:       regexp.MustCompile(`(password|passwd|pwd)[:=]\s*[^\s]+`),
			replacement: "$1: ***",
		},
	)
}

// RedactString masks every pattern match in value.
func (r *Redactor) RedactString(value string) string {
	if r == nil || value == "" {
		return value
	}

	redacted := value
	for _, p := range r.patterns {
		if p.replaceFunc != nil {
			redacted = p.regex.ReplaceAllStringFunc(redacted, p.replaceFunc)
			continue
		}
		redacted = p.regex.ReplaceAllString(redacted, p.replacement)
	}
	return redacted
}

// RedactAttr masks a single slog attribute. Values under sensitive keys are
// replaced outright; strings and errors are pattern-matched; groups recurse.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	if r == nil {
		return a
	}

	v := a.Value.Resolve()

	if isSensitiveKey(a.Key) && v.Kind() != slog.KindGroup {
		return slog.String(a.Key, redactValue(v))
	}

	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, r.RedactString(v.String()))
	case slog.KindGroup:
		group := v.Group()
		attrs := make([]slog.Attr, len(group))
		for i, ga := range group {
			attrs[i] = r.RedactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(attrs...)}
	case slog.KindAny:
		if err, ok := v.Any().(error); ok && err != nil {
			return slog.String(a.Key, r.RedactString(err.Error()))
		}
	}

	return slog.Attr{Key: a.Key, Value: v}
}

// RedactArgs masks variadic key-value log arguments.
func (r *Redactor) RedactArgs(args ...any) []any {
	if r == nil || len(args) == 0 {
		return args
	}

	redacted := make([]any, 0, len(args))
	rec := slog.Record{}
	rec.Add(args...)
	rec.Attrs(func(a slog.Attr) bool {
		redacted = append(redacted, r.RedactAttr(a))
		return true
	})
	return redacted
}

var sensitiveKeys = map[string]bool{
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"auth":          true,
	"authorization": true,
	"private_key":   true,
}

var sensitiveSuffixes = []string{"_key", "_secret", "_token", "_password"}

// isSensitiveKey reports whether a field name holds a credential.
// Token counters such as "prompt_tokens" are not sensitive.
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	if sensitiveKeys[lowerKey] {
		return true
	}
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(lowerKey, suffix) {
			return true
		}
	}
	return false
}

func redactValue(v slog.Value) string {
	if v.Kind() == slog.KindString {
		return RedactAPIKey(v.String())
	}
	return "***"
}

// RedactEmail redacts an email address partially (shows first char and domain).
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	username := parts[0]
	domain := parts[1]

	if len(username) == 0 {
		return "***@" + domain
	}

	return string(username[0]) + "***@" + domain
}

// RedactAPIKey redacts an API key, keeping only a prefix.
func RedactAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 4 {
		return "***"
	}
	return apiKey[:4] + "***"
}

// RedactIPv4 redacts an IPv4 address, keeping only the first octet.
func RedactIPv4(ip string) string {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return ip
	}

	return parts[0] + ".*.*.*"
}
