package providers

import "context"

// ChatModel answers one user message under a system prompt.
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)

	// Name identifies the backend in logs and metrics.
	Name() string

	// Health returns the backend's call counters.
	Health() ClientHealth
}

// ChatBackend is either configured with a model or unconfigured. The
// variant is decided once at startup; an unconfigured backend makes the
// chat endpoint answer with a fixed reply instead of failing.
type ChatBackend struct {
	model ChatModel
}

// Configured returns a backend that calls model.
func Configured(model ChatModel) ChatBackend {
	return ChatBackend{model: model}
}

// Unconfigured returns a backend without a credential.
func Unconfigured() ChatBackend {
	return ChatBackend{}
}

// Model returns the configured model, or false when unconfigured.
func (b ChatBackend) Model() (ChatModel, bool) {
	return b.model, b.model != nil
}

// IsConfigured reports whether a model is available.
func (b ChatBackend) IsConfigured() bool {
	return b.model != nil
}
