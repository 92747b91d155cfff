package translate

import (
	"context"
	"fmt"

	"farmgenius/gateway/pkg/config"
	"farmgenius/gateway/pkg/providers"
)

// Translator translates text between language codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)

	// Name identifies the backend in logs and metrics.
	Name() string
}

// New selects the translator named by cfg.Backend. The "llm" backend needs
// a configured chat model.
func New(cfg *config.TranslateProviderConfig, chat providers.ChatBackend) (Translator, error) {
	switch cfg.Backend {
	case BackendGoogle:
		return NewGoogleTranslator(cfg), nil
	case BackendModel:
		model, ok := chat.Model()
		if !ok {
			return nil, &providers.ConfigError{
				Provider: BackendModel,
				Field:    "backend",
				Message:  "the llm translator needs a chat API key",
			}
		}
		return NewModelTranslator(model), nil
	default:
		return nil, fmt.Errorf("unknown translate backend %q", cfg.Backend)
	}
}
