package handlers

import (
	"context"
	"errors"
	"log/slog"

	"farmgenius/gateway/pkg/providers"
)

var errEmptyTranslation = &providers.EmptyResponseError{Provider: "translate", Reason: "empty translation"}

// backendOutcome labels a backend call result for metrics.
func backendOutcome(err error) string {
	var timeoutErr *providers.TimeoutError
	var emptyErr *providers.EmptyResponseError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &emptyErr):
		return "empty"
	default:
		return "error"
	}
}

func logger(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
