package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"aircause/backend/pkg/chat"
)

const (
	// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
	DefaultMaxBodyBytes = 100 * 1024

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"
)

// RequestError describes a body that could not be read or decoded.
type RequestError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ParseChatRequest reads and decodes the body of POST /api/chat.
//
// At most maxBytes are read; a larger body is a RequestError. An empty body
// or a JSON value that is not an object decodes to an empty request, which
// then fails validation. Malformed JSON is a RequestError.
func ParseChatRequest(r *http.Request, maxBytes int64) (chat.Request, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	var req chat.Request
	if r.Body == nil {
		return req, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return req, &RequestError{Message: "failed to read request body", Cause: err}
	}
	if int64(len(body)) > maxBytes {
		return req, &RequestError{Message: fmt.Sprintf("request body exceeds maximum size of %d bytes", maxBytes)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return chat.Request{}, &RequestError{Message: "invalid JSON body", Cause: err}
	}

	return req, nil
}

// ExtractRequestID returns the client supplied X-Request-ID header, if any.
func ExtractRequestID(r *http.Request) string {
	return r.Header.Get(RequestIDHeader)
}
