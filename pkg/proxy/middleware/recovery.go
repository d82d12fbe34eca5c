package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"aircause/backend/pkg/proxy"
)

// RecoveryMessage is the message returned to clients after a panic.
const RecoveryMessage = "internal error"

// RecoveryMiddleware recovers from panics in handlers and answers 500 with
// the standard error body. The panic value and stack are logged but never
// sent to the client. http.ErrAbortHandler is re-raised so net/http can
// abort the connection.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "panic in handler",
				"error", rec,
				"request_id", w.Header().Get(proxy.RequestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)

			_ = proxy.WriteErrorResponse(w, http.StatusInternalServerError, proxy.ErrorResponse{
				Error:   proxy.ErrorInternal,
				Message: RecoveryMessage,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
