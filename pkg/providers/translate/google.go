package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"farmgenius/gateway/pkg/config"
	"farmgenius/gateway/pkg/providers"
)

// Backend names accepted by providers.translate.backend.
const (
	BackendGoogle = "google"
	BackendModel  = "llm"
)

// GoogleTranslator calls the public translate_a/single endpoint with the
// gtx client, which needs no credential.
type GoogleTranslator struct {
	http     *providers.HTTPClient
	endpoint string
}

// NewGoogleTranslator creates a translator paced at cfg.RequestsPerSecond.
func NewGoogleTranslator(cfg *config.TranslateProviderConfig) *GoogleTranslator {
	return newGoogleTranslator(cfg, providers.ClientConfig{
		Name:              BackendGoogle,
		Timeout:           cfg.Timeout,
		MaxRetries:        cfg.MaxRetries,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
}

func newGoogleTranslator(cfg *config.TranslateProviderConfig, clientCfg providers.ClientConfig) *GoogleTranslator {
	return &GoogleTranslator{
		http:     providers.NewHTTPClient(clientCfg),
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/translate_a/single",
	}
}

// Translate returns the concatenated translated segments.
func (g *GoogleTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	data, err := g.http.Do(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil, nil)
	if err != nil {
		return "", err
	}

	translated, err := parseSegments(data)
	if err != nil {
		return "", &providers.ParseError{Provider: BackendGoogle, Cause: err}
	}
	if strings.TrimSpace(translated) == "" {
		return "", &providers.EmptyResponseError{Provider: BackendGoogle, Reason: "no translated segments"}
	}
	return translated, nil
}

// Name implements Translator.
func (g *GoogleTranslator) Name() string {
	return BackendGoogle
}

// Close releases idle connections.
func (g *GoogleTranslator) Close() error {
	return g.http.Close()
}

// parseSegments reads [[["translated","original",...],...],...] and joins
// the translated parts in order.
func parseSegments(data []byte) (string, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(top) == 0 || string(top[0]) == "null" {
		return "", nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(top[0], &rows); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var sb strings.Builder
	for _, row := range rows {
		var cells []json.RawMessage
		if err := json.Unmarshal(row, &cells); err != nil || len(cells) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(cells[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}
	return sb.String(), nil
}
