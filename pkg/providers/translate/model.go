package translate

import (
	"context"
	"fmt"
	"strings"

	"farmgenius/gateway/pkg/providers"
)

const modelSystemPrompt = "You are a translation engine. Return ONLY the translation, nothing else."

// ModelTranslator prompts the chat model to translate.
type ModelTranslator struct {
	model providers.ChatModel
}

// NewModelTranslator creates a translator backed by model.
func NewModelTranslator(model providers.ChatModel) *ModelTranslator {
	return &ModelTranslator{model: model}
}

// Translate implements Translator.
func (m *ModelTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	prompt := fmt.Sprintf("Translate the following text from %s to %s: %s", source, target, text)
	out, err := m.model.Complete(ctx, modelSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Name implements Translator.
func (m *ModelTranslator) Name() string {
	return BackendModel
}
