package proxy

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"farmgenius/gateway/pkg/proxy/types"
)

// Client-facing messages shared by both proxy endpoints.
const (
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgRequestTooLarge  = "Request too large"
	MsgTooManyRequests  = "Too many requests. Please try again in a minute."
	MsgInvalidJSON      = "Invalid JSON in request body"
)

// StatusClientClosedRequest is recorded when the client went away before
// the body was read. Nothing is written for it.
const StatusClientClosedRequest = 499

// RequestError is a client error with the status and message to answer.
type RequestError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// BadRequest returns a 400 RequestError.
func BadRequest(message string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message}
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to write response body", "error", err)
	}
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, types.NewErrorResponse(message))
}
