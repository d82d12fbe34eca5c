package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error labels used in the "error" field of failure bodies.
const (
	ErrorInternal       = "Internal Server Error"
	ErrorGatewayTimeout = "Gateway Timeout"
)

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is the failure body. Message is omitted for validation
// errors, which only carry the error text.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSONResponse writes data as JSON with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteErrorResponse writes an error body with the given status code.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, errResp ErrorResponse) error {
	return WriteJSONResponse(w, statusCode, errResp)
}
