package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"farmgenius/gateway/pkg/config"
	"farmgenius/gateway/pkg/providers"
)

// ProviderName identifies this adapter in errors, logs and metrics.
const ProviderName = "openai"

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	http      *providers.HTTPClient
	endpoint  string
	model     string
	maxTokens int
	headers   map[string]string
}

// Option configures a Client.
type Option func(*providers.ClientConfig)

// WithRetryBackoff sets the first retry delay.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *providers.ClientConfig) { c.RetryBackoff = d }
}

// New creates a client from the chat provider configuration. It fails with
// a ConfigError when no credential is set; callers use that to choose the
// unconfigured backend instead.
func New(cfg *config.ChatProviderConfig, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &providers.ConfigError{Provider: ProviderName, Field: "api_key", Message: "API key is required"}
	}
	if cfg.BaseURL == "" {
		return nil, &providers.ConfigError{Provider: ProviderName, Field: "base_url", Message: "base URL is required"}
	}

	clientCfg := providers.ClientConfig{
		Name:       ProviderName,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	}
	for _, opt := range opts {
		opt(&clientCfg)
	}

	headers := map[string]string{"Authorization": "Bearer " + cfg.APIKey}
	if cfg.Referer != "" {
		headers["HTTP-Referer"] = cfg.Referer
	}
	if cfg.Title != "" {
		headers["X-Title"] = cfg.Title
	}

	return &Client{
		http:      providers.NewHTTPClient(clientCfg),
		endpoint:  strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		headers:   headers,
	}, nil
}

// Complete sends the system prompt and user message and returns the first
// choice's content verbatim.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var resp ChatResponse
	req := buildRequest(c.model, c.maxTokens, system, user)
	if err := c.http.DoJSON(ctx, http.MethodPost, c.endpoint, req, &resp, c.headers); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", &providers.EmptyResponseError{Provider: ProviderName, Reason: "no choices"}
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", &providers.EmptyResponseError{Provider: ProviderName, Reason: "empty message content"}
	}
	return content, nil
}

// Name implements providers.ChatModel.
func (c *Client) Name() string {
	return ProviderName
}

// Model returns the model identifier sent with each request.
func (c *Client) Model() string {
	return c.model
}

// Health implements providers.ChatModel.
func (c *Client) Health() providers.ClientHealth {
	return c.http.Health()
}

// Close releases idle connections.
func (c *Client) Close() error {
	return c.http.Close()
}
