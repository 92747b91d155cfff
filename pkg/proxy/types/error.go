package types

// ErrorResponse is the body of every JSON error answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error body.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// NotFoundResponse is the body returned for unknown paths under /api/.
type NotFoundResponse struct {
	Error              string   `json:"error"`
	Path               string   `json:"path"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}
