package proxy

import (
	"errors"
	"net/http"

	"aircause/backend/pkg/chat"
)

// HandleError maps an error to the status code and body returned to the
// client. Validation failures are 400 with the fixed validation text.
// Everything else, provider failures included, is a 500 carrying the
// error text so the frontend can show it.
//
// Example usage:
//
//	if err != nil {
//	    status, body := HandleError(err)
//	    WriteErrorResponse(w, status, body)
//	    return
//	}
func HandleError(err error) (int, ErrorResponse) {
	if errors.Is(err, chat.ErrUserQuestionRequired) {
		return http.StatusBadRequest, ErrorResponse{Error: chat.ErrUserQuestionRequired.Error()}
	}

	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return http.StatusInternalServerError, ErrorResponse{
		Error:   ErrorInternal,
		Message: message,
	}
}
